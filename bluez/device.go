// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Device signal names (BlueZ 4).
const (
	SignalDisconnectRequested = "DisconnectRequested"
	SignalNodeCreated         = "NodeCreated"
	SignalNodeRemoved         = "NodeRemoved"
)

// newDeviceObject builds the shared plumbing for interfaces living on a
// device object path (Device, Control, Input, the audio profiles). The
// interface name is chosen by the caller per daemon generation.
func newDeviceObject(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath,
	iface string, v4 bool) *busObject {
	o := newBusObject(sigLoop, path, iface, v4)
	if v4 {
		o.registerSignal(SignalPropertyChanged)
	} else {
		o.registerSignalOn(dbusPropertiesInterface, path, SignalPropertiesChanged)
	}
	return o
}

// resolveDevicePath turns an adapter id + device address into a device
// object path.
func resolveDevicePath(sigLoop *dbusutil.SignalLoop, adapterID,
	address string) (dbus.ObjectPath, error) {
	adapter, err := NewAdapterFromID(sigLoop, adapterID)
	if err != nil {
		return "", err
	}
	return adapter.FindDevice(address)
}

// Device wraps org.bluez.Device (BlueZ 4) or org.bluez.Device1.
//
// Properties: Address, Name, Alias, Icon, Class, UUIDs, Paired, Connected,
// Trusted, Blocked, Adapter, LegacyPairing and the rest of the BlueZ
// device schema.
type Device struct {
	*busObject
}

// NewDevice wraps the device at the given object path.
func NewDevice(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Device, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	d := &Device{}
	if v4 {
		d.busObject = newDeviceObject(sigLoop, path, deviceInterfaceBluez4, true)
		d.registerSignal(SignalDisconnectRequested, SignalNodeCreated,
			SignalNodeRemoved)
	} else {
		d.busObject = newDeviceObject(sigLoop, path, deviceInterfaceBluez5, false)
	}
	return d, nil
}

// NewDeviceFromAddress wraps the device with the given address on the
// adapter identified by adapterID ("hci0" or adapter address).
func NewDeviceFromAddress(sigLoop *dbusutil.SignalLoop, adapterID,
	address string) (*Device, error) {
	path, err := resolveDevicePath(sigLoop, adapterID, address)
	if err != nil {
		return nil, err
	}
	return NewDevice(sigLoop, path)
}

// Address returns the remote device address.
func (d *Device) Address() (string, error) {
	return d.getStringProperty("Address")
}

// Connected reports whether the device is connected.
func (d *Device) Connected() (bool, error) {
	return d.getBoolProperty("Connected")
}

// Paired reports whether the device is paired.
func (d *Device) Paired() (bool, error) {
	return d.getBoolProperty("Paired")
}

// SetTrusted marks the device trusted or untrusted.
func (d *Device) SetTrusted(trusted bool) error {
	return d.SetProperty("Trusted", trusted)
}

// DiscoverServices starts SDP service discovery and returns the service
// records as XML, keyed by record handle. BlueZ 4 only; BlueZ 5 resolves
// services during Connect.
func (d *Device) DiscoverServices(pattern string) (map[uint32]string, error) {
	if !d.v4 {
		return nil, ErrNotSupported
	}
	var records map[uint32]string
	err := d.callStore("DiscoverServices", []interface{}{&records}, pattern)
	return records, err
}

// CancelDiscovery cancels a DiscoverServices transaction. BlueZ 4 only.
func (d *Device) CancelDiscovery() error {
	if !d.v4 {
		return ErrNotSupported
	}
	return d.call("CancelDiscovery")
}

// Connect connects all connectable profiles of the device. BlueZ 5 only;
// on BlueZ 4 connections are made per profile interface.
func (d *Device) Connect() error {
	if d.v4 {
		return ErrNotSupported
	}
	return d.call("Connect")
}

// Disconnect terminates the low-level connection to the device.
func (d *Device) Disconnect() error {
	return d.call("Disconnect")
}

// ConnectProfile connects a specific profile by UUID. BlueZ 5 only.
func (d *Device) ConnectProfile(uuid string) error {
	if d.v4 {
		return ErrNotSupported
	}
	return d.call("ConnectProfile", uuid)
}

// DisconnectProfile disconnects a specific profile by UUID. BlueZ 5 only.
func (d *Device) DisconnectProfile(uuid string) error {
	if d.v4 {
		return ErrNotSupported
	}
	return d.call("DisconnectProfile", uuid)
}

// Pair initiates pairing with the device. BlueZ 5 only; on BlueZ 4 use
// Adapter.CreatePairedDevice.
func (d *Device) Pair() error {
	if d.v4 {
		return ErrNotSupported
	}
	return d.call("Pair")
}

// CancelPairing cancels an ongoing pairing. BlueZ 5 only.
func (d *Device) CancelPairing() error {
	if d.v4 {
		return ErrNotSupported
	}
	return d.call("CancelPairing")
}
