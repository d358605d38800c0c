package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillMap_CoversAllIDs(t *testing.T) {
	assert.Len(t, SkillMap, 29)
	for id := 0; id <= 28; id++ {
		_, ok := SkillMap[id]
		assert.True(t, ok, "missing skill id %d", id)
	}
	assert.Equal(t, SkillAttack, SkillMap[0])
	assert.Equal(t, SkillNecromancy, SkillMap[28])
}

func TestSkillCategories_EverySkillOnce(t *testing.T) {
	seen := map[SkillName]SkillCategory{}
	for category, skills := range SkillCategories {
		for _, s := range skills {
			prev, dup := seen[s]
			assert.False(t, dup, "%s listed in %s and %s", s, prev, category)
			seen[s] = category
		}
	}
	assert.Len(t, seen, len(SkillMap))
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		skill SkillName
		want  SkillCategory
	}{
		{SkillAttack, CategoryCombat},
		{SkillNecromancy, CategoryCombat},
		{SkillDivination, CategoryGathering},
		{SkillHerblore, CategoryArtisan},
		{SkillInvention, CategorySupport},
	}

	for _, tt := range tests {
		t.Run(string(tt.skill), func(t *testing.T) {
			got, ok := CategoryOf(tt.skill)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := CategoryOf("Sailing")
	assert.False(t, ok)
}
