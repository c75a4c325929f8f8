// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package rtp assembles and parses the RTP framing used on A2DP media
// transports. Audio payloads are carried as RFC 3550 packets with a
// one-byte SBC payload header holding the frame count.
package rtp

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// HeaderSize is the fixed RTP header size without CSRC entries.
const HeaderSize = 12

// PayloadHeaderSize is the SBC media payload header size.
const PayloadHeaderSize = 1

// rtpVersion is the only protocol version in use.
const rtpVersion = 2

// PayloadTypeSBC is the dynamic payload type BlueZ assigns to SBC audio.
const PayloadTypeSBC = 96

// MaxFramesPerPacket caps the SBC frame count field (4 bits on the wire).
const MaxFramesPerPacket = 15

// Header is a fixed RTP packet header.
type Header struct {
	PayloadType    byte
	Marker         bool
	SequenceNumber uint16
	Timestamp      uint32
	SSRC           uint32
}

// Marshal appends the wire form of the header to buf.
func (h Header) Marshal(buf []byte) []byte {
	b0 := byte(rtpVersion << 6)
	b1 := h.PayloadType & 0x7f
	if h.Marker {
		b1 |= 0x80
	}
	buf = append(buf, b0, b1)
	buf = binary.BigEndian.AppendUint16(buf, h.SequenceNumber)
	buf = binary.BigEndian.AppendUint32(buf, h.Timestamp)
	buf = binary.BigEndian.AppendUint32(buf, h.SSRC)
	return buf
}

// ParseHeader decodes the fixed header and returns the payload offset.
func ParseHeader(pkt []byte) (Header, int, error) {
	if len(pkt) < HeaderSize {
		return Header{}, 0, xerrors.Errorf("rtp: packet too short: %d bytes", len(pkt))
	}
	if pkt[0]>>6 != rtpVersion {
		return Header{}, 0, xerrors.Errorf("rtp: unsupported version %d", pkt[0]>>6)
	}

	h := Header{
		PayloadType:    pkt[1] & 0x7f,
		Marker:         pkt[1]&0x80 != 0,
		SequenceNumber: binary.BigEndian.Uint16(pkt[2:]),
		Timestamp:      binary.BigEndian.Uint32(pkt[4:]),
		SSRC:           binary.BigEndian.Uint32(pkt[8:]),
	}

	offset := HeaderSize + 4*int(pkt[0]&0x0f)
	if pkt[0]&0x10 != 0 {
		// header extension: 16-bit profile id, 16-bit length in words
		if len(pkt) < offset+4 {
			return Header{}, 0, xerrors.New("rtp: truncated header extension")
		}
		offset += 4 + 4*int(binary.BigEndian.Uint16(pkt[offset+2:]))
	}
	if len(pkt) < offset {
		return Header{}, 0, xerrors.Errorf("rtp: truncated packet: %d bytes", len(pkt))
	}
	return h, offset, nil
}
