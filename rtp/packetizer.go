// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package rtp

import (
	"golang.org/x/xerrors"
)

// Packetizer builds outgoing SBC media packets. It keeps the sequence
// number and timestamp progression across packets. Not safe for
// concurrent use.
type Packetizer struct {
	mtu            int
	samplesPerFrm  uint32
	sequenceNumber uint16
	timestamp      uint32
	ssrc           uint32
}

// NewPacketizer returns a packetizer bound to the transport write MTU.
// samplesPerFrame is the PCM sample count one SBC frame covers
// (blocks times subbands).
func NewPacketizer(mtu int, samplesPerFrame int, ssrc uint32) (*Packetizer, error) {
	if mtu < HeaderSize+PayloadHeaderSize+1 {
		return nil, xerrors.Errorf("rtp: MTU %d too small for a media packet", mtu)
	}
	if samplesPerFrame <= 0 {
		return nil, xerrors.Errorf("rtp: invalid samples per frame %d", samplesPerFrame)
	}
	return &Packetizer{
		mtu:           mtu,
		samplesPerFrm: uint32(samplesPerFrame),
		ssrc:          ssrc,
	}, nil
}

// FramesPerPacket reports how many SBC frames of the given encoded size
// fit in one packet.
func (p *Packetizer) FramesPerPacket(frameLength int) int {
	if frameLength <= 0 {
		return 0
	}
	n := (p.mtu - HeaderSize - PayloadHeaderSize) / frameLength
	if n > MaxFramesPerPacket {
		n = MaxFramesPerPacket
	}
	return n
}

// Packetize wraps the given SBC frames into a single media packet. All
// frames must be complete and of equal length; the caller bounds the
// count with FramesPerPacket.
func (p *Packetizer) Packetize(frames []byte, frameCount int) ([]byte, error) {
	if frameCount <= 0 || frameCount > MaxFramesPerPacket {
		return nil, xerrors.Errorf("rtp: invalid frame count %d", frameCount)
	}
	if HeaderSize+PayloadHeaderSize+len(frames) > p.mtu {
		return nil, xerrors.Errorf("rtp: payload of %d bytes exceeds MTU %d",
			len(frames), p.mtu)
	}

	h := Header{
		PayloadType:    PayloadTypeSBC,
		SequenceNumber: p.sequenceNumber,
		Timestamp:      p.timestamp,
		SSRC:           p.ssrc,
	}
	pkt := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(frames))
	pkt = h.Marshal(pkt)
	pkt = append(pkt, byte(frameCount)&0x0f)
	pkt = append(pkt, frames...)

	p.sequenceNumber++
	p.timestamp += uint32(frameCount) * p.samplesPerFrm
	return pkt, nil
}

// Depacketize strips the RTP and SBC payload headers from an incoming
// media packet, returning the frame count and the concatenated frames.
func Depacketize(pkt []byte) (int, []byte, error) {
	_, offset, err := ParseHeader(pkt)
	if err != nil {
		return 0, nil, err
	}
	if len(pkt) < offset+PayloadHeaderSize {
		return 0, nil, xerrors.New("rtp: missing payload header")
	}
	count := int(pkt[offset] & 0x0f)
	if count == 0 {
		return 0, nil, xerrors.New("rtp: zero frame count")
	}
	return count, pkt[offset+PayloadHeaderSize:], nil
}
