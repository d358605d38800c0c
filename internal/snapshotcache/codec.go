package snapshotcache

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"go-player-tracker/internal/models"
)

// zstd frame magic number
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Codec serializes profiles as JSON, optionally zstd-compressed.
// Decode accepts both forms regardless of the compression setting.
type Codec struct {
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewCodec creates a codec; compress selects the write format
func NewCodec(compress bool) (*Codec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Codec{
		compress: compress,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// Encode serializes the profile
func (c *Codec) Encode(profile *models.Profile) ([]byte, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	if !c.compress {
		return data, nil
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decode parses a value produced by Encode
func (c *Codec) Decode(data []byte) (*models.Profile, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress profile: %w", err)
		}
		data = raw
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Close releases the zstd resources
func (c *Codec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
