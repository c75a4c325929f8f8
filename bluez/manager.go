// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Signal names shared across object kinds.
const (
	SignalPropertyChanged   = "PropertyChanged"   // BlueZ 4
	SignalPropertiesChanged = "PropertiesChanged" // BlueZ 5
	SignalInterfacesAdded   = "InterfacesAdded"   // BlueZ 5
	SignalInterfacesRemoved = "InterfacesRemoved" // BlueZ 5
)

// Manager signal names (BlueZ 4).
const (
	SignalAdapterAdded          = "AdapterAdded"
	SignalAdapterRemoved        = "AdapterRemoved"
	SignalDefaultAdapterChanged = "DefaultAdapterChanged"
)

// managedObjects is the payload of ObjectManager.GetManagedObjects.
type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// Manager enumerates bluetooth adapters. On BlueZ 4 it wraps
// org.bluez.Manager; on BlueZ 5 that interface is gone and adapters are
// found through org.freedesktop.DBus.ObjectManager.
type Manager struct {
	*busObject
}

// NewManager creates the manager for the running daemon generation.
func NewManager(sigLoop *dbusutil.SignalLoop) (*Manager, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	m := &Manager{}
	if v4 {
		m.busObject = newBusObject(sigLoop, "/", managerInterfaceBluez4, true)
		m.registerSignal(SignalAdapterAdded, SignalAdapterRemoved,
			SignalDefaultAdapterChanged, SignalPropertyChanged)
	} else {
		m.busObject = newBusObject(sigLoop, "/", objectManagerInterface, false)
		m.registerSignal(SignalInterfacesAdded, SignalInterfacesRemoved)
	}
	return m, nil
}

// GetProperties returns the manager properties. On BlueZ 5 the manager has
// no properties of its own; the adapter list is synthesised.
func (m *Manager) GetProperties() (map[string]dbus.Variant, error) {
	if m.v4 {
		return m.busObject.GetProperties()
	}
	adapters, err := m.ListAdapters()
	if err != nil {
		return nil, err
	}
	return map[string]dbus.Variant{
		"Adapters": dbus.MakeVariant(adapters),
	}, nil
}

func (m *Manager) getManagedObjects() (managedObjects, error) {
	var objects managedObjects
	err := m.obj.Call(objectManagerInterface+".GetManagedObjects", 0).Store(&objects)
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// ListAdapters returns the object paths of all attached adapters.
func (m *Manager) ListAdapters() ([]dbus.ObjectPath, error) {
	if m.v4 {
		var adapters []dbus.ObjectPath
		err := m.callStore("ListAdapters", []interface{}{&adapters})
		return adapters, err
	}

	objects, err := m.getManagedObjects()
	if err != nil {
		return nil, err
	}
	var adapters []dbus.ObjectPath
	for path, ifaces := range objects {
		if _, ok := ifaces[adapterInterfaceBluez5]; ok {
			adapters = append(adapters, path)
		}
	}
	return adapters, nil
}

// FindAdapter resolves an adapter path from a pattern, either an interface
// name like "hci0" or the adapter address "00:11:22:33:44:55".
func (m *Manager) FindAdapter(pattern string) (dbus.ObjectPath, error) {
	if m.v4 {
		var path dbus.ObjectPath
		err := m.callStore("FindAdapter", []interface{}{&path}, pattern)
		return path, err
	}

	objects, err := m.getManagedObjects()
	if err != nil {
		return "", err
	}
	for path, ifaces := range objects {
		props, ok := ifaces[adapterInterfaceBluez5]
		if !ok {
			continue
		}
		if strings.HasSuffix(string(path), "/"+pattern) {
			return path, nil
		}
		if addr, ok := props["Address"].Value().(string); ok && addr == pattern {
			return path, nil
		}
	}
	return "", dbus.Error{
		Name: "org.bluez.Error.NoSuchAdapter",
		Body: []interface{}{pattern},
	}
}

// DefaultAdapter returns the default adapter path. BlueZ 5 has no notion
// of a default adapter, so the first managed adapter is used.
func (m *Manager) DefaultAdapter() (dbus.ObjectPath, error) {
	if m.v4 {
		var path dbus.ObjectPath
		err := m.callStore("DefaultAdapter", []interface{}{&path})
		return path, err
	}

	adapters, err := m.ListAdapters()
	if err != nil {
		return "", err
	}
	if len(adapters) == 0 {
		return "", dbus.Error{
			Name: "org.bluez.Error.NoSuchAdapter",
			Body: []interface{}{"no adapter available"},
		}
	}
	return adapters[0], nil
}
