// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOfDeviceHeadphones(t *testing.T) {
	// Audio service class, Audio/Video major, Headphones minor
	cod := ClassOfDevice(0x200418)

	assert.Equal(t, []string{"Audio"}, cod.MajorServiceClasses())
	assert.Equal(t, "Audio/Video", cod.MajorDeviceClass())
	assert.Equal(t, "Headphones", cod.MinorDeviceClass())
}

func TestClassOfDeviceSmartphone(t *testing.T) {
	// Networking|Object Transfer|Telephony, Phone major, Smart phone minor
	cod := ClassOfDevice(0x5a020c)

	assert.ElementsMatch(t,
		[]string{"Networking", "Capturing", "Object Transfer", "Telephony"},
		cod.MajorServiceClasses())
	assert.Equal(t, "Phone", cod.MajorDeviceClass())
	assert.Equal(t, "Smart phone", cod.MinorDeviceClass())
}

func TestClassOfDeviceKeyboard(t *testing.T) {
	// Peripheral major with keyboard bit
	cod := ClassOfDevice(0x000540)

	assert.Equal(t, "Peripheral", cod.MajorDeviceClass())
	assert.Equal(t, "Keyboard", cod.MinorDeviceClass())
	assert.Empty(t, cod.MajorServiceClasses())
}

func TestClassOfDeviceUnknown(t *testing.T) {
	cod := ClassOfDevice(0x001f00)
	assert.Equal(t, "Uncategorized", cod.MajorDeviceClass())

	cod = ClassOfDevice(0x000a00)
	assert.Equal(t, "Reserved", cod.MajorDeviceClass())
}
