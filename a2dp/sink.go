// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"io"

	"golang.org/x/xerrors"

	"github.com/bluezkit/btmanager/bluez"
	"github.com/bluezkit/btmanager/rtp"
	"github.com/bluezkit/btmanager/sbc"
)

// Sink receives audio from a remote source: it acquires the media
// transport, strips the packet framing, decodes the SBC frames and
// writes 16-bit little-endian PCM to the given writer. Stop and Wait
// come from the shared stream lifecycle; a Sink whose pump has finished
// can be started again.
type Sink struct {
	transport *bluez.MediaTransport
	config    sbc.Config
	stream
}

// NewSink wraps a configured transport for receiving.
func NewSink(transport *bluez.MediaTransport, config sbc.Config) *Sink {
	return &Sink{
		transport: transport,
		config:    config,
	}
}

// Start acquires the transport and begins pumping decoded PCM into w
// until the transport closes or Stop is called. Stop closes the
// transport descriptor, so a pump parked on a quiet link unblocks.
func (s *Sink) Start(w io.Writer) error {
	fd, readMTU, _, err := s.transport.Acquire(bluez.AccessReadOnly)
	if err != nil {
		return xerrors.Errorf("acquire transport: %w", err)
	}

	codec, err := sbc.New()
	if err != nil {
		closeTransport(s.transport, fd, bluez.AccessReadOnly)
		return err
	}
	err = codec.Configure(s.config)
	if err != nil {
		codec.Close()
		closeTransport(s.transport, fd, bluez.AccessReadOnly)
		return err
	}

	stop, done, err := s.stream.start(fd)
	if err != nil {
		codec.Close()
		closeTransport(s.transport, fd, bluez.AccessReadOnly)
		return err
	}
	go s.run(w, fd, codec, int(readMTU), stop, done)
	return nil
}

func (s *Sink) run(w io.Writer, fd io.ReadCloser, codec *sbc.Codec,
	readMTU int, stop, done chan struct{}) {
	defer s.finish(stop, done)
	defer codec.Close()
	defer closeTransport(s.transport, fd, bluez.AccessReadOnly)

	pkt := make([]byte, readMTU)
	pcm := make([]byte, codec.CodeSize())

	for {
		if stopped(stop) {
			return
		}

		n, err := fd.Read(pkt)
		if err == io.EOF {
			return
		}
		if err != nil {
			if !stopped(stop) {
				s.fail(xerrors.Errorf("read transport: %w", err))
			}
			return
		}

		count, frames, err := rtp.Depacketize(pkt[:n])
		if err != nil {
			logger.Warning(err)
			continue
		}

		for i := 0; i < count && len(frames) > 0; i++ {
			consumed, written, err := codec.Decode(frames, pcm)
			if err != nil {
				logger.Warning(err)
				break
			}
			_, err = w.Write(pcm[:written])
			if err != nil {
				if !stopped(stop) {
					s.fail(xerrors.Errorf("write pcm: %w", err))
				}
				return
			}
			frames = frames[consumed:]
		}
	}
}
