// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sbc

import (
	"golang.org/x/xerrors"
)

// A2DP SBC capability bit values. A capability element may carry several
// bits per field; a selected configuration carries exactly one.

// ChannelMode bits (capability octet 0, low nibble).
type ChannelMode byte

const (
	ChannelModeMono        ChannelMode = 1 << 3
	ChannelModeDualChannel ChannelMode = 1 << 2
	ChannelModeStereo      ChannelMode = 1 << 1
	ChannelModeJointStereo ChannelMode = 1 << 0
)

// Frequency bits (capability octet 0, high nibble).
type Frequency byte

const (
	Frequency16000 Frequency = 1 << 3
	Frequency32000 Frequency = 1 << 2
	Frequency44100 Frequency = 1 << 1
	Frequency48000 Frequency = 1 << 0
)

// BlockLength bits (capability octet 1, high nibble).
type BlockLength byte

const (
	Blocks4  BlockLength = 1 << 3
	Blocks8  BlockLength = 1 << 2
	Blocks12 BlockLength = 1 << 1
	Blocks16 BlockLength = 1 << 0
)

// Subbands bits (capability octet 1, bits 2-3).
type Subbands byte

const (
	Subbands4 Subbands = 1 << 1
	Subbands8 Subbands = 1 << 0
)

// AllocationMethod bits (capability octet 1, bits 0-1).
type AllocationMethod byte

const (
	AllocationSNR      AllocationMethod = 1 << 1
	AllocationLoudness AllocationMethod = 1 << 0
)

// Bitpool limits from the A2DP specification. BlueZ caps the default
// maximum at 53 to stay within the recommended frame sizes.
const (
	BitpoolMin        = 2
	BitpoolMax        = 64
	BitpoolMaxDefault = 53
)

// Config is the SBC media codec information element: either a capability
// set (multiple bits per field) or a selected configuration (one bit per
// field).
type Config struct {
	ChannelMode      ChannelMode
	Frequency        Frequency
	AllocationMethod AllocationMethod
	Subbands         Subbands
	BlockLength      BlockLength
	MinBitpool       byte
	MaxBitpool       byte
}

// ConfigSize is the wire size of the SBC information element.
const ConfigSize = 4

// Capabilities returns the capability element advertising everything this
// implementation supports.
func Capabilities() Config {
	return Config{
		ChannelMode: ChannelModeMono | ChannelModeDualChannel |
			ChannelModeStereo | ChannelModeJointStereo,
		Frequency: Frequency16000 | Frequency32000 |
			Frequency44100 | Frequency48000,
		AllocationMethod: AllocationSNR | AllocationLoudness,
		Subbands:         Subbands4 | Subbands8,
		BlockLength:      Blocks4 | Blocks8 | Blocks12 | Blocks16,
		MinBitpool:       BitpoolMin,
		MaxBitpool:       BitpoolMax,
	}
}

// Marshal encodes the element into its 4-byte wire form.
func (c Config) Marshal() []byte {
	return []byte{
		byte(c.Frequency)<<4 | byte(c.ChannelMode)&0x0f,
		byte(c.BlockLength)<<4 | byte(c.Subbands)&0x03<<2 |
			byte(c.AllocationMethod)&0x03,
		c.MinBitpool,
		c.MaxBitpool,
	}
}

// Unmarshal decodes a 4-byte information element.
func Unmarshal(blob []byte) (Config, error) {
	if len(blob) != ConfigSize {
		return Config{}, xerrors.Errorf("sbc: capability element must be %d bytes, got %d",
			ConfigSize, len(blob))
	}
	return Config{
		Frequency:        Frequency(blob[0] >> 4),
		ChannelMode:      ChannelMode(blob[0] & 0x0f),
		BlockLength:      BlockLength(blob[1] >> 4),
		Subbands:         Subbands(blob[1] >> 2 & 0x03),
		AllocationMethod: AllocationMethod(blob[1] & 0x03),
		MinBitpool:       blob[2],
		MaxBitpool:       blob[3],
	}, nil
}

// Select picks a single configuration out of a remote capability set,
// preferring joint stereo, 44100 Hz, 16 blocks, 8 subbands and loudness
// allocation, with the bitpool clamped to the BlueZ default maximum.
func Select(caps Config) (Config, error) {
	var cfg Config

	switch {
	case caps.ChannelMode&ChannelModeJointStereo != 0:
		cfg.ChannelMode = ChannelModeJointStereo
	case caps.ChannelMode&ChannelModeStereo != 0:
		cfg.ChannelMode = ChannelModeStereo
	case caps.ChannelMode&ChannelModeDualChannel != 0:
		cfg.ChannelMode = ChannelModeDualChannel
	case caps.ChannelMode&ChannelModeMono != 0:
		cfg.ChannelMode = ChannelModeMono
	default:
		return Config{}, xerrors.New("sbc: no common channel mode")
	}

	switch {
	case caps.Frequency&Frequency44100 != 0:
		cfg.Frequency = Frequency44100
	case caps.Frequency&Frequency48000 != 0:
		cfg.Frequency = Frequency48000
	case caps.Frequency&Frequency32000 != 0:
		cfg.Frequency = Frequency32000
	case caps.Frequency&Frequency16000 != 0:
		cfg.Frequency = Frequency16000
	default:
		return Config{}, xerrors.New("sbc: no common frequency")
	}

	switch {
	case caps.BlockLength&Blocks16 != 0:
		cfg.BlockLength = Blocks16
	case caps.BlockLength&Blocks12 != 0:
		cfg.BlockLength = Blocks12
	case caps.BlockLength&Blocks8 != 0:
		cfg.BlockLength = Blocks8
	case caps.BlockLength&Blocks4 != 0:
		cfg.BlockLength = Blocks4
	default:
		return Config{}, xerrors.New("sbc: no common block length")
	}

	switch {
	case caps.Subbands&Subbands8 != 0:
		cfg.Subbands = Subbands8
	case caps.Subbands&Subbands4 != 0:
		cfg.Subbands = Subbands4
	default:
		return Config{}, xerrors.New("sbc: no common subband count")
	}

	switch {
	case caps.AllocationMethod&AllocationLoudness != 0:
		cfg.AllocationMethod = AllocationLoudness
	case caps.AllocationMethod&AllocationSNR != 0:
		cfg.AllocationMethod = AllocationSNR
	default:
		return Config{}, xerrors.New("sbc: no common allocation method")
	}

	cfg.MinBitpool = caps.MinBitpool
	if cfg.MinBitpool < BitpoolMin {
		cfg.MinBitpool = BitpoolMin
	}
	cfg.MaxBitpool = caps.MaxBitpool
	if cfg.MaxBitpool > BitpoolMaxDefault {
		cfg.MaxBitpool = BitpoolMaxDefault
	}
	if cfg.MaxBitpool < cfg.MinBitpool {
		return Config{}, xerrors.Errorf("sbc: bitpool range %d-%d is empty",
			cfg.MinBitpool, cfg.MaxBitpool)
	}
	return cfg, nil
}

// FrequencyHz returns the sampling rate of a selected configuration.
func (c Config) FrequencyHz() (int, error) {
	switch c.Frequency {
	case Frequency16000:
		return 16000, nil
	case Frequency32000:
		return 32000, nil
	case Frequency44100:
		return 44100, nil
	case Frequency48000:
		return 48000, nil
	}
	return 0, xerrors.Errorf("sbc: frequency %#x is not a single selection", byte(c.Frequency))
}

// Channels returns the channel count of a selected configuration.
func (c Config) Channels() int {
	if c.ChannelMode == ChannelModeMono {
		return 1
	}
	return 2
}

// SubbandCount returns the subband count of a selected configuration.
func (c Config) SubbandCount() int {
	if c.Subbands == Subbands4 {
		return 4
	}
	return 8
}

// BlockCount returns the block count of a selected configuration.
func (c Config) BlockCount() int {
	switch c.BlockLength {
	case Blocks4:
		return 4
	case Blocks8:
		return 8
	case Blocks12:
		return 12
	}
	return 16
}

// FrameLength returns the encoded frame size in bytes of a selected
// configuration at its maximum bitpool.
func (c Config) FrameLength() int {
	subbands := c.SubbandCount()
	blocks := c.BlockCount()
	channels := c.Channels()
	bitpool := int(c.MaxBitpool)

	length := 4 + (4*subbands*channels)/8
	switch c.ChannelMode {
	case ChannelModeMono, ChannelModeDualChannel:
		length += ceilDiv(blocks*channels*bitpool, 8)
	case ChannelModeStereo:
		length += ceilDiv(blocks*bitpool, 8)
	default: // joint stereo
		length += ceilDiv(subbands+blocks*bitpool, 8)
	}
	return length
}

// CodeSize returns the PCM bytes consumed per frame (16-bit samples).
func (c Config) CodeSize() int {
	return c.BlockCount() * c.SubbandCount() * c.Channels() * 2
}

// Bitrate returns the encoded bitrate in bits per second of a selected
// configuration at its maximum bitpool.
func (c Config) Bitrate() (int, error) {
	rate, err := c.FrequencyHz()
	if err != nil {
		return 0, err
	}
	return 8 * c.FrameLength() * rate / (c.SubbandCount() * c.BlockCount()), nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
