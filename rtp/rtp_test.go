// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		PayloadType:    PayloadTypeSBC,
		Marker:         true,
		SequenceNumber: 0xbeef,
		Timestamp:      0x12345678,
		SSRC:           0xcafebabe,
	}

	buf := h.Marshal(nil)
	require.Len(t, buf, HeaderSize)
	assert.Equal(t, byte(0x80), buf[0])
	assert.Equal(t, byte(0x80|PayloadTypeSBC), buf[1])

	decoded, offset, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
	assert.Equal(t, HeaderSize, offset)
}

func TestParseHeaderErrors(t *testing.T) {
	_, _, err := ParseHeader([]byte{0x80, 0x60})
	assert.Error(t, err)

	bad := Header{}.Marshal(nil)
	bad[0] = 0x40 // version 1
	_, _, err = ParseHeader(bad)
	assert.Error(t, err)
}

func TestParseHeaderSkipsCSRCAndExtension(t *testing.T) {
	buf := Header{SequenceNumber: 7}.Marshal(nil)
	buf[0] |= 0x02 // two CSRC entries
	buf = append(buf, make([]byte, 8)...)
	buf = append(buf, 0xde, 0xad) // payload

	h, offset, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), h.SequenceNumber)
	assert.Equal(t, HeaderSize+8, offset)

	buf = Header{}.Marshal(nil)
	buf[0] |= 0x10                            // extension present
	buf = append(buf, 0x00, 0x00, 0x00, 0x01) // one extension word
	buf = append(buf, 0x01, 0x02, 0x03, 0x04) // extension body
	buf = append(buf, 0x0b)                   // payload

	_, offset, err = ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, HeaderSize+8, offset)
}

func TestPacketizeProgression(t *testing.T) {
	const frameLength = 119
	const samplesPerFrame = 128 // 16 blocks x 8 subbands

	p, err := NewPacketizer(672, samplesPerFrame, 0x11223344)
	require.NoError(t, err)
	assert.Equal(t, 5, p.FramesPerPacket(frameLength))

	frames := bytes.Repeat([]byte{0x9c}, 5*frameLength)
	pkt, err := p.Packetize(frames, 5)
	require.NoError(t, err)
	require.Len(t, pkt, HeaderSize+PayloadHeaderSize+len(frames))

	h, offset, err := ParseHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), h.SequenceNumber)
	assert.Equal(t, uint32(0), h.Timestamp)
	assert.Equal(t, uint32(0x11223344), h.SSRC)
	assert.Equal(t, byte(5), pkt[offset])

	pkt, err = p.Packetize(frames, 5)
	require.NoError(t, err)
	h, _, err = ParseHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), h.SequenceNumber)
	assert.Equal(t, uint32(5*samplesPerFrame), h.Timestamp)
}

func TestPacketizeBounds(t *testing.T) {
	p, err := NewPacketizer(120, 128, 0)
	require.NoError(t, err)

	_, err = p.Packetize(make([]byte, 200), 2)
	assert.Error(t, err)

	_, err = p.Packetize(make([]byte, 10), 0)
	assert.Error(t, err)

	_, err = NewPacketizer(8, 128, 0)
	assert.Error(t, err)
}

func TestDepacketize(t *testing.T) {
	p, err := NewPacketizer(672, 128, 0)
	require.NoError(t, err)

	frames := bytes.Repeat([]byte{0x9c, 0x01}, 60)
	pkt, err := p.Packetize(frames, 3)
	require.NoError(t, err)

	count, payload, err := Depacketize(pkt)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, frames, payload)

	_, _, err = Depacketize(pkt[:HeaderSize])
	assert.Error(t, err)

	zero := Header{}.Marshal(nil)
	zero = append(zero, 0x00)
	_, _, err = Depacketize(zero)
	assert.Error(t, err)
}
