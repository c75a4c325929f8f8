// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Headset signal names (BlueZ 4).
const (
	SignalAnswerRequested = "AnswerRequested"
	SignalCallTerminated  = "CallTerminated"
	SignalRing            = "Ring"
)

// Headset wraps org.bluez.Headset, the HSP/HFP headset role of a remote
// device. BlueZ 4 only; BlueZ 5 moved headset support out of the daemon.
//
// Properties: State, Connected, Playing, SpeakerGain, MicrophoneGain.
type Headset struct {
	*busObject
}

// NewHeadset wraps the headset interface of the device at path. BlueZ 4
// only.
func NewHeadset(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Headset, error) {
	o, err := newAudioObject(sigLoop, path, headsetInterfaceBluez4)
	if err != nil {
		return nil, err
	}
	o.registerSignal(SignalAudioPlaying, SignalAudioStopped,
		SignalAnswerRequested)
	return &Headset{busObject: o}, nil
}

// Connect establishes the headset control channel.
func (h *Headset) Connect() error {
	return h.call("Connect")
}

// Disconnect drops the headset connection.
func (h *Headset) Disconnect() error {
	return h.call("Disconnect")
}

// IsConnected reports whether the control channel is up.
func (h *Headset) IsConnected() (bool, error) {
	var connected bool
	err := h.callStore("IsConnected", []interface{}{&connected})
	return connected, err
}

// IndicateCall starts the ring indication on the headset.
func (h *Headset) IndicateCall() error {
	return h.call("IndicateCall")
}

// CancelCall stops the ring indication.
func (h *Headset) CancelCall() error {
	return h.call("CancelCall")
}

// Play opens the SCO audio channel to the headset.
func (h *Headset) Play() error {
	return h.call("Play")
}

// Stop closes the SCO audio channel.
func (h *Headset) Stop() error {
	return h.call("Stop")
}

// IsPlaying reports whether the SCO channel is open.
func (h *Headset) IsPlaying() (bool, error) {
	var playing bool
	err := h.callStore("IsPlaying", []interface{}{&playing})
	return playing, err
}

// SpeakerGain returns the headset speaker gain.
func (h *Headset) SpeakerGain() (uint16, error) {
	value, err := h.GetProperty("SpeakerGain")
	if err != nil {
		return 0, err
	}
	gain, ok := value.Value().(uint16)
	if !ok {
		return 0, dbus.Error{
			Name: ErrNameDoesNotExist,
			Body: []interface{}{"SpeakerGain"},
		}
	}
	return gain, nil
}

// SetSpeakerGain sets the headset speaker gain (0-15).
func (h *Headset) SetSpeakerGain(gain uint16) error {
	return h.SetProperty("SpeakerGain", gain)
}

// MicrophoneGain returns the headset microphone gain.
func (h *Headset) MicrophoneGain() (uint16, error) {
	value, err := h.GetProperty("MicrophoneGain")
	if err != nil {
		return 0, err
	}
	gain, ok := value.Value().(uint16)
	if !ok {
		return 0, dbus.Error{
			Name: ErrNameDoesNotExist,
			Body: []interface{}{"MicrophoneGain"},
		}
	}
	return gain, nil
}

// SetMicrophoneGain sets the headset microphone gain (0-15).
func (h *Headset) SetMicrophoneGain(gain uint16) error {
	return h.SetProperty("MicrophoneGain", gain)
}

// HeadsetGateway wraps org.bluez.HeadsetGateway, the audio gateway role
// towards a remote phone. BlueZ 4 only.
type HeadsetGateway struct {
	*busObject
}

// NewHeadsetGateway wraps the gateway interface of the device at path.
// BlueZ 4 only.
func NewHeadsetGateway(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*HeadsetGateway, error) {
	o, err := newAudioObject(sigLoop, path, headsetGWInterfaceBluez4)
	if err != nil {
		return nil, err
	}
	o.registerSignal(SignalRing, SignalCallTerminated)
	return &HeadsetGateway{busObject: o}, nil
}

// AnswerCall answers an incoming call.
func (g *HeadsetGateway) AnswerCall() error {
	return g.call("AnswerCall")
}

// TerminateCall hangs up the active call.
func (g *HeadsetGateway) TerminateCall() error {
	return g.call("TerminateCall")
}

// Call dials the given number.
func (g *HeadsetGateway) Call(number string) error {
	return g.call("Call", number)
}

// GetOperatorName returns the network operator name.
func (g *HeadsetGateway) GetOperatorName() (string, error) {
	var name string
	err := g.callStore("GetOperatorName", []interface{}{&name})
	return name, err
}

// SendDTMF sends DTMF digits over the active call.
func (g *HeadsetGateway) SendDTMF(digits string) error {
	return g.call("SendDTMF", digits)
}

// GetSubscriberNumber returns the subscriber number of the gateway.
func (g *HeadsetGateway) GetSubscriberNumber() (string, error) {
	var number string
	err := g.callStore("GetSubscriberNumber", []interface{}{&number})
	return number, err
}
