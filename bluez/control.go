// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Control signal names (BlueZ 4).
const (
	SignalControlConnected    = "Connected"
	SignalControlDisconnected = "Disconnected"
)

// Control wraps the AVRCP control interface of a device:
// org.bluez.Control on BlueZ 4, org.bluez.MediaControl1 on BlueZ 5.
type Control struct {
	*busObject
}

// NewControl wraps the control interface of the device at path.
func NewControl(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Control, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	c := &Control{}
	if v4 {
		c.busObject = newDeviceObject(sigLoop, path, controlInterfaceBluez4, true)
		c.registerSignal(SignalControlConnected, SignalControlDisconnected)
	} else {
		c.busObject = newDeviceObject(sigLoop, path, mediaControlInterfaceBluez5, false)
	}
	return c, nil
}

// NewControlFromAddress wraps the control interface of the device with the
// given address.
func NewControlFromAddress(sigLoop *dbusutil.SignalLoop, adapterID,
	address string) (*Control, error) {
	path, err := resolveDevicePath(sigLoop, adapterID, address)
	if err != nil {
		return nil, err
	}
	return NewControl(sigLoop, path)
}

// IsConnected reports whether an AVRCP session with the device exists.
func (c *Control) IsConnected() (bool, error) {
	if c.v4 {
		var connected bool
		err := c.callStore("IsConnected", []interface{}{&connected})
		return connected, err
	}
	return c.getBoolProperty("Connected")
}

// VolumeUp adjusts the remote volume one step up.
func (c *Control) VolumeUp() error {
	return c.call("VolumeUp")
}

// VolumeDown adjusts the remote volume one step down.
func (c *Control) VolumeDown() error {
	return c.call("VolumeDown")
}

// Play resumes playback on the remote device.
func (c *Control) Play() error {
	return c.call("Play")
}

// Pause pauses playback on the remote device.
func (c *Control) Pause() error {
	return c.call("Pause")
}

// Stop stops playback on the remote device.
func (c *Control) Stop() error {
	return c.call("Stop")
}

// Next skips to the next track.
func (c *Control) Next() error {
	return c.call("Next")
}

// Previous skips to the previous track.
func (c *Control) Previous() error {
	return c.call("Previous")
}

// Rewind starts rewinding.
func (c *Control) Rewind() error {
	return c.call("Rewind")
}

// FastForward starts fast forwarding.
func (c *Control) FastForward() error {
	return c.call("FastForward")
}
