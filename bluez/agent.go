// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Agent capabilities accepted by RegisterAgent.
const (
	CapDisplayOnly     = "DisplayOnly"
	CapDisplayYesNo    = "DisplayYesNo"
	CapKeyboardOnly    = "KeyboardOnly"
	CapNoInputNoOutput = "NoInputNoOutput"
)

// toAgentErr maps a handler error onto a D-Bus error the daemon accepts.
// Anything that is not already Rejected or Canceled is forced to Rejected.
func toAgentErr(err error) *dbus.Error {
	if err == nil {
		return nil
	}
	busErr, ok := err.(dbus.Error)
	if !ok {
		return &dbus.Error{
			Name: ErrNameRejected,
			Body: []interface{}{err.Error()},
		}
	}
	if busErr.Name == ErrNameRejected || busErr.Name == ErrNameCanceled {
		return &busErr
	}
	return &dbus.Error{
		Name: ErrNameRejected,
		Body: []interface{}{fmt.Sprintf("[%s] %s", busErr.Name, busErr.Error())},
	}
}

// AgentHandlers carries the user callbacks driving a pairing agent. Every
// field is optional; missing callbacks fall back to the agent defaults
// (fixed pin code, fixed passkey, auto-accept).
type AgentHandlers struct {
	Release              func()
	RequestPinCode       func(device dbus.ObjectPath) (string, error)
	DisplayPinCode       func(device dbus.ObjectPath, pinCode string) error
	RequestPasskey       func(device dbus.ObjectPath) (uint32, error)
	DisplayPasskey       func(device dbus.ObjectPath, passkey uint32, entered uint16) error
	RequestConfirmation  func(device dbus.ObjectPath, passkey uint32) error
	RequestAuthorization func(device dbus.ObjectPath) error
	AuthorizeService     func(device dbus.ObjectPath, uuid string) error
	Cancel               func()
}

// Agent implements the BlueZ pairing agent: org.bluez.Agent on BlueZ 4,
// org.bluez.Agent1 on BlueZ 5. It is exported on a dbusutil.Service and
// registered with an adapter through Adapter.RegisterAgent.
type Agent struct {
	service *dbusutil.Service
	path    dbus.ObjectPath
	v4      bool

	// defaults used when no handler is installed
	PinCode string
	Passkey uint32

	handlers AgentHandlers
}

// NewAgent creates an agent exported at the given object path. The
// handlers may be nil for a fully automatic agent.
func NewAgent(service *dbusutil.Service, path dbus.ObjectPath,
	handlers *AgentHandlers) (*Agent, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	a := &Agent{
		service: service,
		path:    path,
		v4:      v4,
		PinCode: "0000",
		Passkey: 0,
	}
	if handlers != nil {
		a.handlers = *handlers
	}

	err = service.Export(path, a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Path returns the object path the agent is exported at.
func (a *Agent) Path() dbus.ObjectPath {
	return a.path
}

// Destroy stops exporting the agent.
func (a *Agent) Destroy() {
	err := a.service.StopExport(a)
	if err != nil {
		logger.Warning(err)
	}
}

// GetInterfaceName returns the agent interface of the running daemon
// generation.
func (a *Agent) GetInterfaceName() string {
	if a.v4 {
		return agentInterfaceBluez4
	}
	return agentInterfaceBluez5
}

// Release gets called when the daemon unregisters the agent. No
// re-registration is needed; it is merely a cleanup notification.
func (a *Agent) Release() *dbus.Error {
	logger.Debug("agent Release")
	if a.handlers.Release != nil {
		a.handlers.Release()
	}
	return nil
}

// RequestPinCode gets called when the daemon needs a pin code for
// legacy pairing. The answer must be 1-16 alphanumeric characters.
func (a *Agent) RequestPinCode(device dbus.ObjectPath) (string, *dbus.Error) {
	logger.Debug("agent RequestPinCode", device)
	if a.handlers.RequestPinCode != nil {
		pinCode, err := a.handlers.RequestPinCode(device)
		return pinCode, toAgentErr(err)
	}
	return a.PinCode, nil
}

// DisplayPinCode gets called when a pin code must be shown to the user,
// used by pre-2.1 keyboards.
func (a *Agent) DisplayPinCode(device dbus.ObjectPath, pinCode string) *dbus.Error {
	logger.Debug("agent DisplayPinCode", device, pinCode)
	if a.handlers.DisplayPinCode != nil {
		return toAgentErr(a.handlers.DisplayPinCode(device, pinCode))
	}
	return nil
}

// RequestPasskey gets called when the daemon needs a numeric passkey
// (0-999999) for an authentication.
func (a *Agent) RequestPasskey(device dbus.ObjectPath) (uint32, *dbus.Error) {
	logger.Debug("agent RequestPasskey", device)
	if a.handlers.RequestPasskey != nil {
		passkey, err := a.handlers.RequestPasskey(device)
		return passkey, toAgentErr(err)
	}
	return a.Passkey, nil
}

// DisplayPasskey gets called when a passkey must be shown to the user;
// entered counts the keys already typed on the remote side.
func (a *Agent) DisplayPasskey(device dbus.ObjectPath, passkey uint32,
	entered uint16) *dbus.Error {
	logger.Debug("agent DisplayPasskey", device, passkey, entered)
	if a.handlers.DisplayPasskey != nil {
		return toAgentErr(a.handlers.DisplayPasskey(device, passkey, entered))
	}
	return nil
}

// RequestConfirmation gets called to confirm that the displayed passkey
// matches the remote one.
func (a *Agent) RequestConfirmation(device dbus.ObjectPath, passkey uint32) *dbus.Error {
	logger.Debug("agent RequestConfirmation", device, passkey)
	if a.handlers.RequestConfirmation != nil {
		return toAgentErr(a.handlers.RequestConfirmation(device, passkey))
	}
	return nil
}

// RequestAuthorization gets called to authorize an incoming pairing
// attempt that would otherwise trigger the just-works model (BlueZ 5).
func (a *Agent) RequestAuthorization(device dbus.ObjectPath) *dbus.Error {
	logger.Debug("agent RequestAuthorization", device)
	if a.handlers.RequestAuthorization != nil {
		return toAgentErr(a.handlers.RequestAuthorization(device))
	}
	return nil
}

// AuthorizeService gets called when a connection to a service must be
// authorized (BlueZ 5; BlueZ 4 names it Authorize).
func (a *Agent) AuthorizeService(device dbus.ObjectPath, uuid string) *dbus.Error {
	logger.Debugf("agent AuthorizeService %q %q", device, uuid)
	if a.handlers.AuthorizeService != nil {
		return toAgentErr(a.handlers.AuthorizeService(device, uuid))
	}
	return nil
}

// Authorize is the BlueZ 4 spelling of AuthorizeService.
func (a *Agent) Authorize(device dbus.ObjectPath, uuid string) *dbus.Error {
	return a.AuthorizeService(device, uuid)
}

// ConfirmModeChange gets called on BlueZ 4 when a mode change (e.g.
// discoverable) initiated by a remote device needs confirmation.
func (a *Agent) ConfirmModeChange(mode string) *dbus.Error {
	logger.Debug("agent ConfirmModeChange", mode)
	return nil
}

// Cancel gets called when an ongoing agent request failed before a reply
// was returned.
func (a *Agent) Cancel() *dbus.Error {
	logger.Debug("agent Cancel")
	if a.handlers.Cancel != nil {
		a.handlers.Cancel()
	}
	return nil
}
