// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Input wraps the HID host interface of a device: org.bluez.Input on
// BlueZ 4, org.bluez.Input1 on BlueZ 5. The BlueZ 5 interface only carries
// the ReconnectMode property; connections go through Device.Connect.
type Input struct {
	*busObject
}

// NewInput wraps the input interface of the device at path.
func NewInput(sigLoop *dbusutil.SignalLoop, path dbus.ObjectPath) (*Input, error) {
	v4, err := IsBluez4()
	if err != nil {
		return nil, err
	}

	in := &Input{}
	if v4 {
		in.busObject = newDeviceObject(sigLoop, path, inputInterfaceBluez4, true)
	} else {
		in.busObject = newDeviceObject(sigLoop, path, inputInterfaceBluez5, false)
	}
	return in, nil
}

// Connect connects the input device. BlueZ 4 only.
func (in *Input) Connect() error {
	if !in.v4 {
		return ErrNotSupported
	}
	return in.call("Connect")
}

// Disconnect disconnects the input device. BlueZ 4 only.
func (in *Input) Disconnect() error {
	if !in.v4 {
		return ErrNotSupported
	}
	return in.call("Disconnect")
}
