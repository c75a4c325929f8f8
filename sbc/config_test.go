// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesMarshal(t *testing.T) {
	blob := Capabilities().Marshal()
	assert.Equal(t, []byte{0xff, 0xff, BitpoolMin, BitpoolMax}, blob)
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Config{
		ChannelMode:      ChannelModeJointStereo,
		Frequency:        Frequency44100,
		AllocationMethod: AllocationLoudness,
		Subbands:         Subbands8,
		BlockLength:      Blocks16,
		MinBitpool:       2,
		MaxBitpool:       53,
	}

	blob := cfg.Marshal()
	require.Len(t, blob, ConfigSize)
	assert.Equal(t, []byte{0x21, 0x15, 2, 53}, blob)

	decoded, err := Unmarshal(blob)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestUnmarshalBadLength(t *testing.T) {
	_, err := Unmarshal([]byte{0x21, 0x15, 2})
	assert.Error(t, err)

	_, err = Unmarshal(nil)
	assert.Error(t, err)
}

func TestSelectPrefersHighQuality(t *testing.T) {
	cfg, err := Select(Capabilities())
	require.NoError(t, err)

	assert.Equal(t, ChannelModeJointStereo, cfg.ChannelMode)
	assert.Equal(t, Frequency44100, cfg.Frequency)
	assert.Equal(t, Blocks16, cfg.BlockLength)
	assert.Equal(t, Subbands8, cfg.Subbands)
	assert.Equal(t, AllocationLoudness, cfg.AllocationMethod)
	assert.Equal(t, byte(BitpoolMin), cfg.MinBitpool)
	assert.Equal(t, byte(BitpoolMaxDefault), cfg.MaxBitpool)
}

func TestSelectConstrainedPeer(t *testing.T) {
	caps := Config{
		ChannelMode:      ChannelModeMono,
		Frequency:        Frequency48000,
		AllocationMethod: AllocationSNR,
		Subbands:         Subbands4,
		BlockLength:      Blocks8,
		MinBitpool:       18,
		MaxBitpool:       35,
	}

	cfg, err := Select(caps)
	require.NoError(t, err)
	assert.Equal(t, ChannelModeMono, cfg.ChannelMode)
	assert.Equal(t, Frequency48000, cfg.Frequency)
	assert.Equal(t, Subbands4, cfg.Subbands)
	assert.Equal(t, Blocks8, cfg.BlockLength)
	assert.Equal(t, AllocationSNR, cfg.AllocationMethod)
	assert.Equal(t, byte(18), cfg.MinBitpool)
	assert.Equal(t, byte(35), cfg.MaxBitpool)
}

func TestSelectNoCommonGround(t *testing.T) {
	_, err := Select(Config{})
	assert.Error(t, err)

	caps := Capabilities()
	caps.Frequency = 0
	_, err = Select(caps)
	assert.Error(t, err)

	caps = Capabilities()
	caps.MinBitpool = 60
	caps.MaxBitpool = 64
	_, err = Select(caps)
	assert.Error(t, err)
}

func TestFrameMath(t *testing.T) {
	cfg := Config{
		ChannelMode:      ChannelModeJointStereo,
		Frequency:        Frequency44100,
		AllocationMethod: AllocationLoudness,
		Subbands:         Subbands8,
		BlockLength:      Blocks16,
		MinBitpool:       2,
		MaxBitpool:       53,
	}

	assert.Equal(t, 119, cfg.FrameLength())
	assert.Equal(t, 512, cfg.CodeSize())

	rate, err := cfg.Bitrate()
	require.NoError(t, err)
	assert.Equal(t, 327993, rate)
}

func TestFrameMathMono(t *testing.T) {
	cfg := Config{
		ChannelMode:      ChannelModeMono,
		Frequency:        Frequency48000,
		AllocationMethod: AllocationSNR,
		Subbands:         Subbands4,
		BlockLength:      Blocks8,
		MinBitpool:       2,
		MaxBitpool:       32,
	}

	assert.Equal(t, 38, cfg.FrameLength())
	assert.Equal(t, 64, cfg.CodeSize())

	rate, err := cfg.Bitrate()
	require.NoError(t, err)
	assert.Equal(t, 456000, rate)
}

func TestFrequencyHzUnselected(t *testing.T) {
	cfg := Capabilities()
	_, err := cfg.FrequencyHz()
	assert.Error(t, err)
}
