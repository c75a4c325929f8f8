// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sbc

// #cgo LDFLAGS: -lsbc
// #include <stdlib.h>
// #include <sbc/sbc.h>
import "C"

import (
	"time"
	"unsafe"

	"golang.org/x/xerrors"
)

// Codec wraps a native SBC codec context. A Codec must be configured
// before encoding or decoding and closed when no longer needed.
type Codec struct {
	sbc  C.sbc_t
	open bool
}

// New initialises a codec context with the library defaults.
func New() (*Codec, error) {
	c := &Codec{}
	if C.sbc_init(&c.sbc, 0) != 0 {
		return nil, xerrors.New("sbc: codec initialisation failed")
	}
	c.open = true
	return c, nil
}

// Configure applies a selected configuration to the codec. The
// configuration must carry exactly one bit per capability field.
func (c *Codec) Configure(cfg Config) error {
	if !c.open {
		return xerrors.New("sbc: codec is closed")
	}

	switch cfg.Frequency {
	case Frequency16000:
		c.sbc.frequency = C.SBC_FREQ_16000
	case Frequency32000:
		c.sbc.frequency = C.SBC_FREQ_32000
	case Frequency44100:
		c.sbc.frequency = C.SBC_FREQ_44100
	case Frequency48000:
		c.sbc.frequency = C.SBC_FREQ_48000
	default:
		return xerrors.Errorf("sbc: invalid frequency selection %#x", byte(cfg.Frequency))
	}

	switch cfg.ChannelMode {
	case ChannelModeMono:
		c.sbc.mode = C.SBC_MODE_MONO
	case ChannelModeDualChannel:
		c.sbc.mode = C.SBC_MODE_DUAL_CHANNEL
	case ChannelModeStereo:
		c.sbc.mode = C.SBC_MODE_STEREO
	case ChannelModeJointStereo:
		c.sbc.mode = C.SBC_MODE_JOINT_STEREO
	default:
		return xerrors.Errorf("sbc: invalid channel mode selection %#x", byte(cfg.ChannelMode))
	}

	switch cfg.BlockLength {
	case Blocks4:
		c.sbc.blocks = C.SBC_BLK_4
	case Blocks8:
		c.sbc.blocks = C.SBC_BLK_8
	case Blocks12:
		c.sbc.blocks = C.SBC_BLK_12
	case Blocks16:
		c.sbc.blocks = C.SBC_BLK_16
	default:
		return xerrors.Errorf("sbc: invalid block length selection %#x", byte(cfg.BlockLength))
	}

	switch cfg.Subbands {
	case Subbands4:
		c.sbc.subbands = C.SBC_SB_4
	case Subbands8:
		c.sbc.subbands = C.SBC_SB_8
	default:
		return xerrors.Errorf("sbc: invalid subband selection %#x", byte(cfg.Subbands))
	}

	switch cfg.AllocationMethod {
	case AllocationSNR:
		c.sbc.allocation = C.SBC_AM_SNR
	case AllocationLoudness:
		c.sbc.allocation = C.SBC_AM_LOUDNESS
	default:
		return xerrors.Errorf("sbc: invalid allocation selection %#x", byte(cfg.AllocationMethod))
	}

	c.sbc.bitpool = C.uint8_t(cfg.MaxBitpool)
	c.sbc.endian = C.SBC_LE

	if C.sbc_reinit(&c.sbc, 0) != 0 {
		return xerrors.New("sbc: codec reinitialisation failed")
	}
	return nil
}

// Encode compresses one or more PCM frames from pcm into out. It returns
// the PCM bytes consumed and the encoded bytes written. out must hold at
// least FrameLength bytes.
func (c *Codec) Encode(pcm, out []byte) (consumed, written int, err error) {
	if !c.open {
		return 0, 0, xerrors.New("sbc: codec is closed")
	}
	if len(pcm) == 0 || len(out) == 0 {
		return 0, 0, xerrors.New("sbc: empty buffer")
	}
	var n C.ssize_t
	read := C.sbc_encode(&c.sbc,
		unsafe.Pointer(&pcm[0]), C.size_t(len(pcm)),
		unsafe.Pointer(&out[0]), C.size_t(len(out)), &n)
	if read < 0 {
		return 0, 0, xerrors.Errorf("sbc: encode failed: %d", int(read))
	}
	return int(read), int(n), nil
}

// Decode decompresses a single SBC frame from data into out. It returns
// the frame bytes consumed and the PCM bytes written. out must hold at
// least CodeSize bytes.
func (c *Codec) Decode(data, out []byte) (consumed, written int, err error) {
	if !c.open {
		return 0, 0, xerrors.New("sbc: codec is closed")
	}
	if len(data) == 0 || len(out) == 0 {
		return 0, 0, xerrors.New("sbc: empty buffer")
	}
	var n C.size_t
	read := C.sbc_decode(&c.sbc,
		unsafe.Pointer(&data[0]), C.size_t(len(data)),
		unsafe.Pointer(&out[0]), C.size_t(len(out)), &n)
	if read < 0 {
		return 0, 0, xerrors.Errorf("sbc: decode failed: %d", int(read))
	}
	return int(read), int(n), nil
}

// Reinit resets the codec state while keeping the current configuration,
// for reuse across streams.
func (c *Codec) Reinit() error {
	if !c.open {
		return xerrors.New("sbc: codec is closed")
	}
	if C.sbc_reinit(&c.sbc, 0) != 0 {
		return xerrors.New("sbc: codec reinitialisation failed")
	}
	return nil
}

// FrameLength returns the encoded frame size in bytes for the current
// configuration.
func (c *Codec) FrameLength() int {
	return int(C.sbc_get_frame_length(&c.sbc))
}

// CodeSize returns the PCM bytes consumed per encoded frame.
func (c *Codec) CodeSize() int {
	return int(C.sbc_get_codesize(&c.sbc))
}

// FrameDuration returns the play time of one frame.
func (c *Codec) FrameDuration() time.Duration {
	return time.Duration(C.sbc_get_frame_duration(&c.sbc)) * time.Microsecond
}

// Implementation reports which native primitives the library selected.
func (c *Codec) Implementation() string {
	return C.GoString(C.sbc_get_implementation_info(&c.sbc))
}

// Close releases the native codec context.
func (c *Codec) Close() {
	if c.open {
		C.sbc_finish(&c.sbc)
		c.open = false
	}
}
