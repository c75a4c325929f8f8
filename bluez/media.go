// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Media wraps the media endpoint registry on an adapter:
// org.bluez.Media on BlueZ 4, org.bluez.Media1 on BlueZ 5.
type Media struct {
	*busObject
}

// NewMedia wraps the media interface of the adapter at path.
func NewMedia(sigLoop *dbusutil.SignalLoop, adapterPath dbus.ObjectPath) (*Media, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	m := &Media{}
	if v4 {
		m.busObject = newBusObject(sigLoop, adapterPath, mediaInterfaceBluez4, true)
	} else {
		m.busObject = newBusObject(sigLoop, adapterPath, mediaInterfaceBluez5, false)
	}
	return m, nil
}

// RegisterEndpoint registers a media endpoint exported by this process.
// The properties dictionary carries UUID, Codec and Capabilities.
func (m *Media) RegisterEndpoint(endpointPath dbus.ObjectPath,
	properties map[string]dbus.Variant) error {
	return m.call("RegisterEndpoint", endpointPath, properties)
}

// UnregisterEndpoint removes a registered media endpoint.
func (m *Media) UnregisterEndpoint(endpointPath dbus.ObjectPath) error {
	return m.call("UnregisterEndpoint", endpointPath)
}

// RegisterPlayer registers a media player. BlueZ 5 only.
func (m *Media) RegisterPlayer(playerPath dbus.ObjectPath,
	properties map[string]dbus.Variant) error {
	if m.v4 {
		return ErrNotSupported
	}
	return m.call("RegisterPlayer", playerPath, properties)
}

// UnregisterPlayer removes a registered media player. BlueZ 5 only.
func (m *Media) UnregisterPlayer(playerPath dbus.ObjectPath) error {
	if m.v4 {
		return ErrNotSupported
	}
	return m.call("UnregisterPlayer", playerPath)
}

// Transport access modes for BlueZ 4 MediaTransport.Acquire.
const (
	AccessReadOnly  = "r"
	AccessWriteOnly = "w"
	AccessReadWrite = "rw"
)

// MediaTransport wraps a media transport object created by the daemon when
// an endpoint configuration is set: org.bluez.MediaTransport on BlueZ 4,
// org.bluez.MediaTransport1 on BlueZ 5.
//
// Properties: Device, UUID, Codec, Configuration, State, Delay, Volume.
type MediaTransport struct {
	*busObject
}

// NewMediaTransport wraps the transport at the given object path.
func NewMediaTransport(sigLoop *dbusutil.SignalLoop,
	path dbus.ObjectPath) (*MediaTransport, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	t := &MediaTransport{}
	if v4 {
		t.busObject = newBusObject(sigLoop, path, transportInterfaceBluez4, true)
		t.registerSignal(SignalPropertyChanged)
	} else {
		t.busObject = newBusObject(sigLoop, path, transportInterfaceBluez5, false)
		t.registerSignalOn(dbusPropertiesInterface, path, SignalPropertiesChanged)
	}
	return t, nil
}

// Acquire obtains the transport file descriptor together with the read and
// write MTUs. The accessType is only meaningful on BlueZ 4 ("r", "w" or
// "rw") and ignored on BlueZ 5.
func (t *MediaTransport) Acquire(accessType string) (*os.File, uint16, uint16, error) {
	var fd dbus.UnixFD
	var readMTU, writeMTU uint16
	var err error
	if t.v4 {
		err = t.callStore("Acquire", []interface{}{&fd, &readMTU, &writeMTU}, accessType)
	} else {
		err = t.callStore("Acquire", []interface{}{&fd, &readMTU, &writeMTU})
	}
	if err != nil {
		return nil, 0, 0, err
	}
	return os.NewFile(uintptr(fd), string(t.path)), readMTU, writeMTU, nil
}

// TryAcquire is like Acquire but fails with org.bluez.Error.NotAvailable
// instead of forcing the stream active. BlueZ 5 only.
func (t *MediaTransport) TryAcquire() (*os.File, uint16, uint16, error) {
	if t.v4 {
		return nil, 0, 0, ErrNotSupported
	}
	var fd dbus.UnixFD
	var readMTU, writeMTU uint16
	err := t.callStore("TryAcquire", []interface{}{&fd, &readMTU, &writeMTU})
	if err != nil {
		return nil, 0, 0, err
	}
	return os.NewFile(uintptr(fd), string(t.path)), readMTU, writeMTU, nil
}

// Release gives the transport back to the daemon. The accessType mirrors
// the one passed to Acquire on BlueZ 4 and is ignored on BlueZ 5.
func (t *MediaTransport) Release(accessType string) error {
	if t.v4 {
		return t.call("Release", accessType)
	}
	return t.call("Release")
}

// State returns the transport state: "idle", "pending" or "active".
func (t *MediaTransport) State() (string, error) {
	return t.getStringProperty("State")
}

// Configuration returns the codec configuration blob negotiated through
// the endpoint.
func (t *MediaTransport) Configuration() ([]byte, error) {
	value, err := t.GetProperty("Configuration")
	if err != nil {
		return nil, err
	}
	blob, ok := value.Value().([]byte)
	if !ok {
		return nil, dbus.Error{
			Name: ErrNameDoesNotExist,
			Body: []interface{}{"Configuration"},
		}
	}
	return blob, nil
}
