// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestTranslateValueString(t *testing.T) {
	current := dbus.MakeVariant("old alias")

	v, err := translateValue(current, "new alias")
	assert.NoError(t, err)
	assert.Equal(t, "new alias", v.Value())

	_, err = translateValue(current, 42)
	assert.Error(t, err)
}

func TestTranslateValueBool(t *testing.T) {
	current := dbus.MakeVariant(false)

	v, err := translateValue(current, true)
	assert.NoError(t, err)
	assert.Equal(t, true, v.Value())

	_, err = translateValue(current, "true")
	assert.Error(t, err)
}

func TestTranslateValueIntegers(t *testing.T) {
	// DiscoverableTimeout is uint32; plain Go ints must convert
	v, err := translateValue(dbus.MakeVariant(uint32(180)), 300)
	assert.NoError(t, err)
	assert.Equal(t, uint32(300), v.Value())

	_, err = translateValue(dbus.MakeVariant(uint32(180)), -1)
	assert.Error(t, err)

	// SpeakerGain is uint16
	v, err = translateValue(dbus.MakeVariant(uint16(7)), uint16(15))
	assert.NoError(t, err)
	assert.Equal(t, uint16(15), v.Value())

	// RSSI is int16
	v, err = translateValue(dbus.MakeVariant(int16(-60)), -42)
	assert.NoError(t, err)
	assert.Equal(t, int16(-42), v.Value())
}

func TestTranslateValueStringList(t *testing.T) {
	current := dbus.MakeVariant([]string{"a"})

	v, err := translateValue(current, []string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Value())
}

func TestTranslateValueVariantPassThrough(t *testing.T) {
	current := dbus.MakeVariant("x")

	v, err := translateValue(current, dbus.MakeVariant("y"))
	assert.NoError(t, err)
	assert.Equal(t, "y", v.Value())
}

func TestTranslateValueUnsupported(t *testing.T) {
	current := dbus.MakeVariant(map[string]dbus.Variant{})
	_, err := translateValue(current, "whatever")
	assert.Error(t, err)
}
