// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID16(t *testing.T) {
	u := UUID16(0x110b)
	assert.Equal(t, UUID("0000110b-0000-1000-8000-00805f9b34fb"), u)

	value, ok := u.UUID16Value()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x110b), value)
}

func TestUUID32(t *testing.T) {
	u := UUID32(0x12345678)
	assert.Equal(t, UUID("12345678-0000-1000-8000-00805f9b34fb"), u)

	value, ok := u.Short()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x12345678), value)

	_, ok = u.UUID16Value()
	assert.False(t, ok)
}

func TestParseUUID(t *testing.T) {
	for _, input := range []string{"0x110B", "110b", "0000110b",
		"0000110B-0000-1000-8000-00805F9B34FB"} {
		u, err := ParseUUID(input)
		assert.NoError(t, err, input)
		assert.True(t, u.Equal(UUID16(0x110b)), input)
	}

	_, err := ParseUUID("not a uuid")
	assert.Error(t, err)

	_, err = ParseUUID("")
	assert.Error(t, err)
}

func TestUUIDShortVendorSpecific(t *testing.T) {
	u := UUID("f000aa00-0451-4000-b000-000000000000")
	_, ok := u.Short()
	assert.False(t, ok)
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "AudioSink", ServiceName(UUID16(UUIDAudioSink)))
	assert.Equal(t, "AudioSource", ServiceName(UUID16(UUIDAudioSource)))
	assert.Equal(t, "", ServiceName(UUID16(0xffff)))
	assert.Equal(t, "", ServiceName(UUID("f000aa00-0451-4000-b000-000000000000")))
}

func TestUUIDString(t *testing.T) {
	assert.Equal(t, "0000110b-0000-1000-8000-00805f9b34fb (AudioSink)",
		UUID16(UUIDAudioSink).String())
}
