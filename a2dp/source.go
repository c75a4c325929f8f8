// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"errors"
	"io"
	"os"

	"golang.org/x/xerrors"

	"github.com/bluezkit/btmanager/bluez"
	"github.com/bluezkit/btmanager/rtp"
	"github.com/bluezkit/btmanager/sbc"
)

// Source streams PCM audio out to a remote sink: it acquires the media
// transport, encodes 16-bit little-endian PCM into SBC frames and writes
// them as media packets. Stop and Wait come from the shared stream
// lifecycle; a Source whose pump has finished can be started again.
type Source struct {
	transport *bluez.MediaTransport
	config    sbc.Config
	stream
}

// NewSource wraps a configured transport for sending.
func NewSource(transport *bluez.MediaTransport, config sbc.Config) *Source {
	return &Source{
		transport: transport,
		config:    config,
	}
}

// Start acquires the transport and begins pumping PCM from r until the
// reader is drained or Stop is called. When r implements io.Closer it is
// closed by Stop to unblock a pending read.
func (s *Source) Start(r io.Reader) error {
	fd, _, writeMTU, err := s.transport.Acquire(bluez.AccessWriteOnly)
	if err != nil {
		return xerrors.Errorf("acquire transport: %w", err)
	}

	codec, err := sbc.New()
	if err != nil {
		closeTransport(s.transport, fd, bluez.AccessWriteOnly)
		return err
	}
	err = codec.Configure(s.config)
	if err != nil {
		codec.Close()
		closeTransport(s.transport, fd, bluez.AccessWriteOnly)
		return err
	}

	samplesPerFrame := s.config.BlockCount() * s.config.SubbandCount()
	packetizer, err := rtp.NewPacketizer(int(writeMTU), samplesPerFrame, 0)
	if err != nil {
		codec.Close()
		closeTransport(s.transport, fd, bluez.AccessWriteOnly)
		return err
	}

	closers := []io.Closer{fd}
	if c, ok := r.(io.Closer); ok {
		closers = append(closers, c)
	}
	stop, done, err := s.stream.start(closers...)
	if err != nil {
		codec.Close()
		closeTransport(s.transport, fd, bluez.AccessWriteOnly)
		return err
	}
	go s.run(r, fd, codec, packetizer, stop, done)
	return nil
}

func (s *Source) run(r io.Reader, fd io.WriteCloser, codec *sbc.Codec,
	packetizer *rtp.Packetizer, stop, done chan struct{}) {
	defer s.finish(stop, done)
	defer codec.Close()
	defer closeTransport(s.transport, fd, bluez.AccessWriteOnly)

	frameLength := codec.FrameLength()
	codeSize := codec.CodeSize()
	framesPerPacket := packetizer.FramesPerPacket(frameLength)
	if framesPerPacket == 0 {
		s.fail(xerrors.Errorf("a2dp: frame of %d bytes exceeds transport MTU", frameLength))
		return
	}

	pcm := make([]byte, codeSize*framesPerPacket)
	frames := make([]byte, frameLength*framesPerPacket)

	for {
		if stopped(stop) {
			return
		}

		n, err := io.ReadFull(r, pcm)
		if err == io.EOF {
			return
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			if !stopped(stop) {
				s.fail(xerrors.Errorf("read pcm: %w", err))
			}
			return
		}
		// drop a trailing partial frame
		n -= n % codeSize
		if n == 0 {
			return
		}

		count := 0
		written := 0
		for off := 0; off < n; off += codeSize {
			_, w, err := codec.Encode(pcm[off:off+codeSize], frames[written:])
			if err != nil {
				s.fail(err)
				return
			}
			written += w
			count++
		}

		pkt, err := packetizer.Packetize(frames[:written], count)
		if err != nil {
			s.fail(err)
			return
		}
		_, err = fd.Write(pkt)
		if err != nil {
			if !stopped(stop) {
				s.fail(xerrors.Errorf("write transport: %w", err))
			}
			return
		}
	}
}

func closeTransport(t *bluez.MediaTransport, fd io.Closer, access string) {
	err := fd.Close()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Warning(err)
	}
	err = t.Release(access)
	if err != nil {
		logger.Warning("release transport:", err)
	}
}
