// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// BlueZ 4 audio profile interfaces. BlueZ 5 dropped the whole org.bluez.Audio*
// family in favour of Device1.Connect plus media endpoints, so every
// constructor here refuses to run against a generation-5 daemon.

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Audio profile signal names (BlueZ 4).
const (
	SignalAudioConnected    = "Connected"
	SignalAudioDisconnected = "Disconnected"
	SignalAudioPlaying      = "Playing"
	SignalAudioStopped      = "Stopped"
)

// Audio wraps org.bluez.Audio, the generic audio connection interface of a
// device. Its State property is one of "disconnected", "connecting",
// "connected".
type Audio struct {
	*busObject
}

// NewAudio wraps the audio interface of the device at path. BlueZ 4 only.
func NewAudio(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Audio, error) {
	o, err := newAudioObject(sigLoop, path, audioInterfaceBluez4)
	if err != nil {
		return nil, err
	}
	return &Audio{busObject: o}, nil
}

func newAudioObject(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath,
	iface string) (*busObject, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}
	if !v4 {
		return nil, ErrNotSupported
	}
	o := newDeviceObject(sigLoop, path, iface, true)
	o.registerSignal(SignalAudioConnected, SignalAudioDisconnected)
	return o, nil
}

// Connect connects all supported audio profiles of the device.
func (a *Audio) Connect() error {
	return a.call("Connect")
}

// Disconnect disconnects all audio profiles of the device.
func (a *Audio) Disconnect() error {
	return a.call("Disconnect")
}

// State returns the audio connection state.
func (a *Audio) State() (string, error) {
	return a.getStringProperty("State")
}

// AudioSource wraps org.bluez.AudioSource, the A2DP source role of a
// remote device.
type AudioSource struct {
	Audio
}

// NewAudioSource wraps the audio source interface of the device at path.
// BlueZ 4 only.
func NewAudioSource(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*AudioSource, error) {
	o, err := newAudioObject(sigLoop, path, audioSourceInterfaceBluez4)
	if err != nil {
		return nil, err
	}
	o.registerSignal(SignalAudioPlaying, SignalAudioStopped)
	return &AudioSource{Audio{busObject: o}}, nil
}

// AudioSink wraps org.bluez.AudioSink, the A2DP sink role of a remote
// device.
type AudioSink struct {
	Audio
}

// NewAudioSink wraps the audio sink interface of the device at path.
// BlueZ 4 only.
func NewAudioSink(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*AudioSink, error) {
	o, err := newAudioObject(sigLoop, path, audioSinkInterfaceBluez4)
	if err != nil {
		return nil, err
	}
	o.registerSignal(SignalAudioPlaying, SignalAudioStopped)
	return &AudioSink{Audio{busObject: o}}, nil
}

// IsConnected reports whether a stream to the sink is set up.
func (s *AudioSink) IsConnected() (bool, error) {
	var connected bool
	err := s.callStore("IsConnected", []interface{}{&connected})
	return connected, err
}
