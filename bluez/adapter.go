// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Adapter signal names (BlueZ 4).
const (
	SignalDeviceFound       = "DeviceFound"
	SignalDeviceRemoved     = "DeviceRemoved"
	SignalDeviceCreated     = "DeviceCreated"
	SignalDeviceDisappeared = "DeviceDisappeared"
)

// Adapter wraps org.bluez.Adapter (BlueZ 4) or org.bluez.Adapter1.
//
// Properties (through GetProperty/SetProperty): Address, Name, Alias,
// Class, Powered, Discoverable, Pairable, PairableTimeout,
// DiscoverableTimeout, Discovering, UUIDs, Modalias.
type Adapter struct {
	*busObject
	manager  *Manager
	agentMgr dbus.BusObject // BlueZ 5 only
}

// NewAdapter wraps the adapter at the given object path.
func NewAdapter(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Adapter, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	a := &Adapter{}
	if v4 {
		a.busObject = newBusObject(sigLoop, path, adapterInterfaceBluez4, true)
		a.registerSignal(SignalPropertyChanged, SignalDeviceFound,
			SignalDeviceRemoved, SignalDeviceCreated, SignalDeviceDisappeared)
	} else {
		a.busObject = newBusObject(sigLoop, path, adapterInterfaceBluez5, false)
		a.registerSignalOn(dbusPropertiesInterface, path, SignalPropertiesChanged)
		a.registerSignalOn(objectManagerInterface, "/",
			SignalInterfacesAdded, SignalInterfacesRemoved)
		a.agentMgr = a.conn.Object(bluezDBusServiceName, bluezDBusPath)
	}

	a.manager, err = NewManager(sigLoop)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewAdapterFromID wraps the adapter matching an id like "hci0" or its
// address.
func NewAdapterFromID(sigLoop *dbusutil.SignalLoop, id string) (*Adapter, error) {
	manager, err := NewManager(sigLoop)
	if err != nil {
		return nil, err
	}
	path, err := manager.FindAdapter(id)
	if err != nil {
		return nil, err
	}
	return NewAdapter(sigLoop, path)
}

// Address returns the adapter's bluetooth address.
func (a *Adapter) Address() (string, error) {
	return a.getStringProperty("Address")
}

// Powered reports whether the adapter is switched on.
func (a *Adapter) Powered() (bool, error) {
	return a.getBoolProperty("Powered")
}

// SetPowered switches the adapter on or off.
func (a *Adapter) SetPowered(powered bool) error {
	return a.SetProperty("Powered", powered)
}

// StartDiscovery starts a device discovery session.
func (a *Adapter) StartDiscovery() error {
	return a.call("StartDiscovery")
}

// StopDiscovery releases a discovery session started by StartDiscovery.
func (a *Adapter) StopDiscovery() error {
	return a.call("StopDiscovery")
}

// ListDevices returns the object paths of the adapter's devices.
func (a *Adapter) ListDevices() ([]dbus.ObjectPath, error) {
	if a.v4 {
		var devices []dbus.ObjectPath
		err := a.callStore("ListDevices", []interface{}{&devices})
		return devices, err
	}

	objects, err := a.manager.getManagedObjects()
	if err != nil {
		return nil, err
	}
	var devices []dbus.ObjectPath
	for path, ifaces := range objects {
		props, ok := ifaces[deviceInterfaceBluez5]
		if !ok {
			continue
		}
		if adapterPath, ok := props["Adapter"].Value().(dbus.ObjectPath); ok &&
			adapterPath != a.path {
			continue
		}
		devices = append(devices, path)
	}
	return devices, nil
}

// FindDevice returns the object path of the device with the given address.
func (a *Adapter) FindDevice(address string) (dbus.ObjectPath, error) {
	return a.FindDeviceByProperty("Address", address)
}

// FindDeviceByProperty returns the path of the first device whose named
// string property equals value. On BlueZ 4 only Address lookup is native;
// other properties fall back to a per-device query.
func (a *Adapter) FindDeviceByProperty(property, value string) (dbus.ObjectPath, error) {
	if a.v4 && property == "Address" {
		var path dbus.ObjectPath
		err := a.callStore("FindDevice", []interface{}{&path}, value)
		return path, err
	}

	if a.v4 {
		devices, err := a.ListDevices()
		if err != nil {
			return "", err
		}
		for _, path := range devices {
			dev := newBusObject(a.sigLoop, path, deviceInterfaceBluez4, true)
			got, err := dev.getStringProperty(property)
			if err == nil && got == value {
				return path, nil
			}
		}
		return "", dbus.Error{
			Name: ErrNameDoesNotExist,
			Body: []interface{}{value},
		}
	}

	objects, err := a.manager.getManagedObjects()
	if err != nil {
		return "", err
	}
	for path, ifaces := range objects {
		props, ok := ifaces[deviceInterfaceBluez5]
		if !ok {
			continue
		}
		if got, ok := props[property].Value().(string); ok && got == value {
			return path, nil
		}
	}
	return "", dbus.Error{
		Name: ErrNameDoesNotExist,
		Body: []interface{}{value},
	}
}

// RemoveDevice removes the device object and its pairing information.
func (a *Adapter) RemoveDevice(devPath dbus.ObjectPath) error {
	return a.call("RemoveDevice", devPath)
}

// CreatePairedDevice creates a device object and initiates pairing with it.
// BlueZ 5 removed this call; pair through Device.Pair instead.
func (a *Adapter) CreatePairedDevice(address string, agentPath dbus.ObjectPath,
	capability string) (dbus.ObjectPath, error) {
	if !a.v4 {
		return "", ErrNotSupported
	}
	var devPath dbus.ObjectPath
	err := a.callStore("CreatePairedDevice", []interface{}{&devPath},
		address, agentPath, capability)
	return devPath, err
}

// RegisterAgent registers a pairing agent. The capability is one of
// "DisplayOnly", "DisplayYesNo", "KeyboardOnly", "NoInputNoOutput" or empty
// for the default.
func (a *Adapter) RegisterAgent(agentPath dbus.ObjectPath, capability string) error {
	if a.v4 {
		return a.call("RegisterAgent", agentPath, capability)
	}
	return a.agentMgr.Call(agentManagerInterface+".RegisterAgent", 0,
		agentPath, capability).Err
}

// RequestDefaultAgent makes a registered agent the default one. BlueZ 4 has
// no default-agent concept.
func (a *Adapter) RequestDefaultAgent(agentPath dbus.ObjectPath) error {
	if a.v4 {
		return ErrNotSupported
	}
	return a.agentMgr.Call(agentManagerInterface+".RequestDefaultAgent", 0,
		agentPath).Err
}

// UnregisterAgent removes a previously registered agent.
func (a *Adapter) UnregisterAgent(agentPath dbus.ObjectPath) error {
	if a.v4 {
		return a.call("UnregisterAgent", agentPath)
	}
	return a.agentMgr.Call(agentManagerInterface+".UnregisterAgent", 0,
		agentPath).Err
}
