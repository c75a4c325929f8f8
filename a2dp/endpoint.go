// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"

	"github.com/bluezkit/btmanager/bluez"
	"github.com/bluezkit/btmanager/sbc"
)

const (
	endpointInterfaceBluez4 = "org.bluez.MediaEndpoint"
	endpointInterfaceBluez5 = "org.bluez.MediaEndpoint1"
)

// Advanced audio profile service UUIDs.
const (
	UUIDSource = "0000110a-0000-1000-8000-00805f9b34fb"
	UUIDSink   = "0000110b-0000-1000-8000-00805f9b34fb"
)

// CodecSBC is the A2DP codec id for SBC audio.
const CodecSBC byte = 0x00

var errInvalidArguments = &dbus.Error{
	Name: "org.bluez.Error.InvalidArguments",
	Body: []interface{}{"invalid arguments"},
}

// EndpointHandlers carries optional callbacks fired when the daemon
// drives the endpoint through a transport lifecycle.
type EndpointHandlers struct {
	Configured func(transport dbus.ObjectPath, cfg sbc.Config)
	Cleared    func(transport dbus.ObjectPath)
	Released   func()
}

// Endpoint implements the SBC media endpoint the daemon calls back into
// during stream setup: org.bluez.MediaEndpoint on BlueZ 4,
// org.bluez.MediaEndpoint1 on BlueZ 5. Register it with an adapter
// through its Register method.
type Endpoint struct {
	service *dbusutil.Service
	path    dbus.ObjectPath
	uuid    string
	v4      bool

	mu        sync.Mutex
	transport dbus.ObjectPath
	config    sbc.Config

	handlers EndpointHandlers
}

// NewEndpoint creates and exports a media endpoint for the given profile
// UUID (UUIDSource or UUIDSink). The handlers may be nil.
func NewEndpoint(service *dbusutil.Service, path dbus.ObjectPath,
	uuid string, handlers *EndpointHandlers) (*Endpoint, error) {
	v4, err := bluez.IsBluez4()
	if err != nil {
		return nil, err
	}

	e := &Endpoint{
		service: service,
		path:    path,
		uuid:    uuid,
		v4:      v4,
	}
	if handlers != nil {
		e.handlers = *handlers
	}

	err = service.Export(path, e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Path returns the object path the endpoint is exported at.
func (e *Endpoint) Path() dbus.ObjectPath {
	return e.path
}

// GetInterfaceName returns the endpoint interface of the running daemon
// generation.
func (e *Endpoint) GetInterfaceName() string {
	if e.v4 {
		return endpointInterfaceBluez4
	}
	return endpointInterfaceBluez5
}

// Register announces the endpoint to the daemon with the full SBC
// capability set.
func (e *Endpoint) Register(media *bluez.Media) error {
	return media.RegisterEndpoint(e.path, map[string]dbus.Variant{
		"UUID":         dbus.MakeVariant(e.uuid),
		"Codec":        dbus.MakeVariant(CodecSBC),
		"Capabilities": dbus.MakeVariant(sbc.Capabilities().Marshal()),
	})
}

// Unregister withdraws the endpoint from the daemon.
func (e *Endpoint) Unregister(media *bluez.Media) error {
	return media.UnregisterEndpoint(e.path)
}

// Destroy stops exporting the endpoint.
func (e *Endpoint) Destroy() {
	err := e.service.StopExport(e)
	if err != nil {
		logger.Warning(err)
	}
}

// Transport returns the media transport path set by the daemon, or ""
// when no stream is configured.
func (e *Endpoint) Transport() dbus.ObjectPath {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport
}

// Config returns the codec configuration negotiated for the current
// transport.
func (e *Endpoint) Config() sbc.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// SelectConfiguration gets called by the daemon during stream setup with
// the remote capability element; the reply is the configuration to use.
func (e *Endpoint) SelectConfiguration(caps []byte) ([]byte, *dbus.Error) {
	logger.Debugf("endpoint SelectConfiguration %x", caps)
	remote, err := sbc.Unmarshal(caps)
	if err != nil {
		logger.Warning(err)
		return nil, errInvalidArguments
	}
	cfg, err := sbc.Select(remote)
	if err != nil {
		logger.Warning(err)
		return nil, errInvalidArguments
	}
	return cfg.Marshal(), nil
}

// SetConfiguration gets called when the daemon binds the endpoint to a
// transport with a negotiated configuration.
func (e *Endpoint) SetConfiguration(transport dbus.ObjectPath,
	properties map[string]dbus.Variant) *dbus.Error {
	logger.Debug("endpoint SetConfiguration", transport)

	blob, ok := properties["Configuration"].Value().([]byte)
	if !ok {
		return errInvalidArguments
	}
	cfg, err := sbc.Unmarshal(blob)
	if err != nil {
		logger.Warning(err)
		return errInvalidArguments
	}

	e.mu.Lock()
	e.transport = transport
	e.config = cfg
	e.mu.Unlock()

	if e.handlers.Configured != nil {
		e.handlers.Configured(transport, cfg)
	}
	return nil
}

// ClearConfiguration gets called when the transport goes away.
func (e *Endpoint) ClearConfiguration(transport dbus.ObjectPath) *dbus.Error {
	logger.Debug("endpoint ClearConfiguration", transport)

	e.mu.Lock()
	if e.transport == transport {
		e.transport = ""
		e.config = sbc.Config{}
	}
	e.mu.Unlock()

	if e.handlers.Cleared != nil {
		e.handlers.Cleared(transport)
	}
	return nil
}

// Release gets called when the daemon shuts down the media subsystem; no
// unregistration is needed afterwards.
func (e *Endpoint) Release() *dbus.Error {
	logger.Debug("endpoint Release")
	if e.handlers.Released != nil {
		e.handlers.Released()
	}
	return nil
}
