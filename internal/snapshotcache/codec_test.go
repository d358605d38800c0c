package snapshotcache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-player-tracker/internal/models"
)

func sampleProfile() *models.Profile {
	return &models.Profile{
		Username: "zezima",
		LoggedIn: true,
		Activities: []models.Activity{
			{Date: "16-Oct-2026 10:00", Details: "I levelled my Attack skill, I am now level 99.", Text: "Levelled up Attack."},
		},
		Skills: models.SkillSummary{
			Rank:        1234,
			XP:          200000000,
			Level:       2000,
			CombatLevel: 138,
			Skills: []models.Skill{
				{JagexID: 0, HumanName: models.SkillAttack, XP: 13034431, Rank: 10, Level: 99},
			},
		},
		Quests: models.QuestSummary{
			Completed: 1,
			Quests: []models.Quest{
				{Title: "Cook's Assistant", Status: models.QuestStatusCompleted, QuestPoints: 1, Eligible: true},
			},
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		codec, err := NewCodec(compress)
		require.NoError(t, err)
		defer codec.Close()

		data, err := codec.Encode(sampleProfile())
		require.NoError(t, err)
		assert.Equal(t, compress, bytes.HasPrefix(data, zstdMagic))

		decoded, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, sampleProfile(), decoded)
	}
}

func TestCodec_DecodesEitherFormat(t *testing.T) {
	plain, err := NewCodec(false)
	require.NoError(t, err)
	defer plain.Close()
	compressed, err := NewCodec(true)
	require.NoError(t, err)
	defer compressed.Close()

	fromCompressed, err := compressed.Encode(sampleProfile())
	require.NoError(t, err)
	fromPlain, err := plain.Encode(sampleProfile())
	require.NoError(t, err)

	got, err := plain.Decode(fromCompressed)
	require.NoError(t, err)
	assert.Equal(t, "zezima", got.Username)

	got, err = compressed.Decode(fromPlain)
	require.NoError(t, err)
	assert.Equal(t, "zezima", got.Username)
}

func TestCodec_DecodeGarbage(t *testing.T) {
	codec, err := NewCodec(false)
	require.NoError(t, err)
	defer codec.Close()

	_, err = codec.Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = codec.Decode(append(append([]byte{}, zstdMagic...), 0x00, 0x01))
	assert.Error(t, err)
}
