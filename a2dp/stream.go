// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"io"
	"sync"

	"golang.org/x/xerrors"
)

// stream carries the pump lifecycle shared by Source and Sink: the stop
// and done channels, the closers that unblock a parked pump, and the
// first error the pump hit. Once a pump finishes the state resets, so
// the owner can be started again.
type stream struct {
	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	closers []io.Closer
	lastErr error
}

// start claims the stream for a new pump. The closers are closed by Stop
// to unblock a pump parked in a read or write.
func (s *stream) start(closers ...io.Closer) (stop, done chan struct{}, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil, nil, xerrors.New("a2dp: stream already running")
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.closers = closers
	s.lastErr = nil
	return s.stop, s.done, nil
}

// finish releases the stream from the pump goroutine and wakes waiters.
// The channels must be the ones handed out by start.
func (s *stream) finish(stop, done chan struct{}) {
	s.mu.Lock()
	if s.stop == stop {
		s.stop, s.done, s.closers = nil, nil, nil
	}
	s.mu.Unlock()
	close(done)
}

func (s *stream) fail(err error) {
	logger.Warning(err)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *stream) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Stop ends the stream and waits for the pump to exit. A pump parked in
// a blocking read or write is unblocked by closing its descriptors, so
// Stop returns even on a quiet link. It returns the first error the pump
// hit, if any; stopping a finished or never-started stream just returns
// that error.
func (s *stream) Stop() error {
	s.mu.Lock()
	stop, done, closers := s.stop, s.done, s.closers
	s.stop, s.done, s.closers = nil, nil, nil
	s.mu.Unlock()

	if stop == nil {
		return s.err()
	}
	close(stop)
	for _, c := range closers {
		_ = c.Close()
	}
	<-done
	return s.err()
}

// Wait blocks until the pump finishes on its own (input drained,
// transport closed or error) and returns the first error it hit.
func (s *stream) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
	return s.err()
}

// stopped reports whether Stop has been requested on the channel handed
// to the pump.
func stopped(stop chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
