// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"path/filepath"

	"github.com/linuxdeepin/go-lib/keyfile"
)

var bluetoothPrefixDir = "/var/lib/bluetooth"

const (
	kfSectionGeneral  = "General"
	kfKeyTechnologies = "SupportedTechnologies"
	kfKeyName         = "Name"
)

func deviceInfoFile(adapterAddress, deviceAddress string) string {
	return filepath.Join(bluetoothPrefixDir, adapterAddress, deviceAddress, "info")
}

// DeviceTechnologies reads the supported technologies ("BR/EDR", "LE") of
// a paired device from the daemon's storage under /var/lib/bluetooth.
// Needs read access to the daemon state, so usually root.
func DeviceTechnologies(adapterAddress, deviceAddress string) ([]string, error) {
	kf := keyfile.NewKeyFile()
	err := kf.LoadFromFile(deviceInfoFile(adapterAddress, deviceAddress))
	if err != nil {
		return nil, err
	}
	return kf.GetStringList(kfSectionGeneral, kfKeyTechnologies)
}

// DeviceStoredName reads the cached remote name of a paired device from
// the daemon's storage.
func DeviceStoredName(adapterAddress, deviceAddress string) (string, error) {
	kf := keyfile.NewKeyFile()
	err := kf.LoadFromFile(deviceInfoFile(adapterAddress, deviceAddress))
	if err != nil {
		return "", err
	}
	return kf.GetString(kfSectionGeneral, kfKeyName)
}
