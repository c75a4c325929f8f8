// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDeviceInfo = `[General]
Name=MX Keys
SupportedTechnologies=BR/EDR;LE;

[DeviceID]
Source=2
Vendor=1133
`

func TestDeviceInfoHelpers(t *testing.T) {
	oldPrefix := bluetoothPrefixDir
	bluetoothPrefixDir = t.TempDir()
	defer func() { bluetoothPrefixDir = oldPrefix }()

	const adapterAddr = "00:1A:7D:DA:71:13"
	const deviceAddr = "F4:73:35:8B:41:A0"

	dir := filepath.Join(bluetoothPrefixDir, adapterAddr, deviceAddr)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info"),
		[]byte(testDeviceInfo), 0644))

	technologies, err := DeviceTechnologies(adapterAddr, deviceAddr)
	assert.NoError(t, err)
	assert.Equal(t, []string{"BR/EDR", "LE"}, technologies)

	name, err := DeviceStoredName(adapterAddr, deviceAddr)
	assert.NoError(t, err)
	assert.Equal(t, "MX Keys", name)

	_, err = DeviceTechnologies(adapterAddr, "11:22:33:44:55:66")
	assert.Error(t, err)
}
