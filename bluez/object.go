// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"golang.org/x/xerrors"
)

// signalSpec describes one signal an object may emit: the interface the
// signal lives on and the object path it is emitted from. Most signals use
// the object's own interface and path; ObjectManager signals come from "/".
type signalSpec struct {
	iface string
	path  dbus.ObjectPath
}

type signalHandler struct {
	id   dbusutil.SignalHandlerId
	rule dbusutil.MatchRule
}

// busObject wraps one remote BlueZ object on one interface. It owns the
// dictionary-style property access and the signal subscription bookkeeping
// shared by every façade type in this package.
type busObject struct {
	sigLoop *dbusutil.SignalLoop
	conn    *dbus.Conn
	obj     dbus.BusObject
	path    dbus.ObjectPath
	iface   string
	v4      bool

	mu       sync.Mutex
	signals  map[string]signalSpec
	handlers map[string]*signalHandler
}

func newBusObject(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath, iface string, v4 bool) *busObject {
	conn := sigLoop.Conn()
	return &busObject{
		sigLoop:  sigLoop,
		conn:     conn,
		obj:      conn.Object(bluezDBusServiceName, path),
		path:     path,
		iface:    iface,
		v4:       v4,
		signals:  make(map[string]signalSpec),
		handlers: make(map[string]*signalHandler),
	}
}

// Path returns the remote object path.
func (o *busObject) Path() dbus.ObjectPath {
	return o.path
}

// Interface returns the concrete BlueZ interface name for the running
// daemon generation.
func (o *busObject) Interface() string {
	return o.iface
}

func (o *busObject) call(method string, args ...interface{}) error {
	return o.obj.Call(o.iface+"."+method, 0, args...).Err
}

func (o *busObject) callStore(method string, retvalues []interface{}, args ...interface{}) error {
	return o.obj.Call(o.iface+"."+method, 0, args...).Store(retvalues...)
}

// registerSignal declares signal names the object may emit on its own
// interface and path.
func (o *busObject) registerSignal(names ...string) {
	o.registerSignalOn(o.iface, o.path, names...)
}

func (o *busObject) registerSignalOn(iface string, path dbus.ObjectPath, names ...string) {
	o.mu.Lock()
	for _, name := range names {
		o.signals[name] = signalSpec{iface: iface, path: path}
	}
	o.mu.Unlock()
}

// ConnectSignal subscribes handler to the named signal. The name must be
// one the object emits in the running daemon generation, otherwise
// ErrSignalUnknown is returned. A second subscription to the same name
// replaces the first.
func (o *busObject) ConnectSignal(name string, handler func(sig *dbus.Signal)) error {
	o.mu.Lock()
	spec, ok := o.signals[name]
	o.mu.Unlock()
	if !ok {
		return ErrSignalUnknown
	}

	err := o.disconnectSignal(name)
	if err != nil {
		return err
	}

	rule := dbusutil.NewMatchRuleBuilder().Type("signal").
		Sender(bluezDBusServiceName).
		Path(string(spec.path)).
		Interface(spec.iface).
		Member(name).Build()
	err = rule.AddTo(o.conn)
	if err != nil {
		return xerrors.Errorf("add match rule: %w", err)
	}

	path := spec.path
	id := o.sigLoop.AddHandler(&dbusutil.SignalRule{
		Name: spec.iface + "." + name,
	}, func(sig *dbus.Signal) {
		if sig.Path != path {
			return
		}
		handler(sig)
	})

	o.mu.Lock()
	o.handlers[name] = &signalHandler{id: id, rule: rule}
	o.mu.Unlock()
	return nil
}

// DisconnectSignal removes a previously installed subscription. Removing a
// known but unconnected signal is a no-op; an unknown name returns
// ErrSignalUnknown.
func (o *busObject) DisconnectSignal(name string) error {
	o.mu.Lock()
	_, ok := o.signals[name]
	o.mu.Unlock()
	if !ok {
		return ErrSignalUnknown
	}
	return o.disconnectSignal(name)
}

func (o *busObject) disconnectSignal(name string) error {
	o.mu.Lock()
	h, ok := o.handlers[name]
	delete(o.handlers, name)
	o.mu.Unlock()
	if !ok {
		return nil
	}

	o.sigLoop.RemoveHandler(h.id)
	err := h.rule.RemoveFrom(o.conn)
	if err != nil {
		return xerrors.Errorf("remove match rule: %w", err)
	}
	return nil
}

// Destroy removes all installed signal subscriptions.
func (o *busObject) Destroy() {
	o.mu.Lock()
	handlers := o.handlers
	o.handlers = make(map[string]*signalHandler)
	o.mu.Unlock()

	for name, h := range handlers {
		o.sigLoop.RemoveHandler(h.id)
		err := h.rule.RemoveFrom(o.conn)
		if err != nil {
			logger.Warningf("failed to remove match rule for %s: %v", name, err)
		}
	}
}

// GetProperties returns all properties of the object as a map.
func (o *busObject) GetProperties() (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	var err error
	if o.v4 {
		err = o.obj.Call(o.iface+".GetProperties", 0).Store(&props)
	} else {
		err = o.obj.Call(dbusPropertiesInterface+".GetAll", 0, o.iface).Store(&props)
	}
	if err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single property value by name.
func (o *busObject) GetProperty(name string) (dbus.Variant, error) {
	if o.v4 {
		props, err := o.GetProperties()
		if err != nil {
			return dbus.Variant{}, err
		}
		value, ok := props[name]
		if !ok {
			return dbus.Variant{}, dbus.Error{
				Name: ErrNameDoesNotExist,
				Body: []interface{}{name},
			}
		}
		return value, nil
	}

	var value dbus.Variant
	err := o.obj.Call(dbusPropertiesInterface+".Get", 0, o.iface, name).Store(&value)
	if err != nil {
		return dbus.Variant{}, err
	}
	return value, nil
}

// SetProperty assigns a property by name. The value is converted to the
// D-Bus type of the property's current value, so callers can pass plain Go
// strings, bools and integers.
func (o *busObject) SetProperty(name string, value interface{}) error {
	current, err := o.GetProperty(name)
	if err != nil {
		return err
	}
	variant, err := translateValue(current, value)
	if err != nil {
		return err
	}
	if o.v4 {
		return o.obj.Call(o.iface+".SetProperty", 0, name, variant).Err
	}
	return o.obj.Call(dbusPropertiesInterface+".Set", 0, o.iface, name, variant).Err
}

func (o *busObject) getStringProperty(name string) (string, error) {
	value, err := o.GetProperty(name)
	if err != nil {
		return "", err
	}
	s, ok := value.Value().(string)
	if !ok {
		return "", xerrors.Errorf("property %s is not a string", name)
	}
	return s, nil
}

func (o *busObject) getBoolProperty(name string) (bool, error) {
	value, err := o.GetProperty(name)
	if err != nil {
		return false, err
	}
	b, ok := value.Value().(bool)
	if !ok {
		return false, xerrors.Errorf("property %s is not a bool", name)
	}
	return b, nil
}

// translateValue converts a native Go value into a variant carrying the
// same D-Bus type as the property's current value.
func translateValue(current dbus.Variant, value interface{}) (dbus.Variant, error) {
	if v, ok := value.(dbus.Variant); ok {
		value = v.Value()
	}

	switch current.Value().(type) {
	case string:
		v, ok := value.(string)
		if !ok {
			return dbus.Variant{}, xerrors.Errorf("expected string, got %T", value)
		}
		return dbus.MakeVariant(v), nil
	case bool:
		v, ok := value.(bool)
		if !ok {
			return dbus.Variant{}, xerrors.Errorf("expected bool, got %T", value)
		}
		return dbus.MakeVariant(v), nil
	case uint32:
		v, err := toUint64(value)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(uint32(v)), nil
	case uint16:
		v, err := toUint64(value)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(uint16(v)), nil
	case byte:
		v, err := toUint64(value)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(byte(v)), nil
	case int16:
		v, err := toInt64(value)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(int16(v)), nil
	case int32:
		v, err := toInt64(value)
		if err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(int32(v)), nil
	case []string:
		v, ok := value.([]string)
		if !ok {
			return dbus.Variant{}, xerrors.Errorf("expected []string, got %T", value)
		}
		return dbus.MakeVariant(v), nil
	default:
		return dbus.Variant{}, xerrors.Errorf("unsupported property type %T", current.Value())
	}
}

func toUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, xerrors.Errorf("negative value %d for unsigned property", v)
		}
		return uint64(v), nil
	case int16:
		if v < 0 {
			return 0, xerrors.Errorf("negative value %d for unsigned property", v)
		}
		return uint64(v), nil
	case int32:
		if v < 0 {
			return 0, xerrors.Errorf("negative value %d for unsigned property", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, xerrors.Errorf("negative value %d for unsigned property", v)
		}
		return uint64(v), nil
	case byte:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, xerrors.Errorf("expected integer, got %T", value)
	}
}

func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case byte:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	default:
		return 0, xerrors.Errorf("expected integer, got %T", value)
	}
}
