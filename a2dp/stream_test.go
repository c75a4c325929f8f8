// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamStopUnblocksParkedPump(t *testing.T) {
	// a pipe with no writer parks the pump in Read, like an idle
	// transport that sends nothing
	pr, pw := io.Pipe()
	defer pw.Close()

	var s stream
	stop, done, err := s.start(pr)
	require.NoError(t, err)

	go func() {
		defer s.finish(stop, done)
		buf := make([]byte, 16)
		for {
			_, err := pr.Read(buf)
			if err != nil {
				if !stopped(stop) {
					s.fail(err)
				}
				return
			}
		}
	}()

	finished := make(chan error, 1)
	go func() { finished <- s.Stop() }()

	select {
	case err := <-finished:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return while the pump was blocked reading")
	}
}

func TestStreamRestartAfterFinish(t *testing.T) {
	var s stream

	stop, done, err := s.start()
	require.NoError(t, err)

	// a second start while the pump is running is refused
	_, _, err = s.start()
	assert.Error(t, err)

	// the pump finishing on its own releases the stream
	s.finish(stop, done)
	assert.NoError(t, s.Wait())

	stop, done, err = s.start()
	require.NoError(t, err)
	s.finish(stop, done)

	// stopping an already finished stream is a no-op
	assert.NoError(t, s.Stop())
}

func TestStreamStopReportsPumpError(t *testing.T) {
	var s stream
	stop, done, err := s.start()
	require.NoError(t, err)

	s.fail(io.ErrUnexpectedEOF)
	s.finish(stop, done)

	assert.Equal(t, io.ErrUnexpectedEOF, s.Wait())
	assert.Equal(t, io.ErrUnexpectedEOF, s.Stop())
}
