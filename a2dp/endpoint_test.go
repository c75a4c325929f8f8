// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package a2dp

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluezkit/btmanager/sbc"
)

func TestEndpointSelectConfiguration(t *testing.T) {
	e := &Endpoint{uuid: UUIDSink}

	blob, busErr := e.SelectConfiguration(sbc.Capabilities().Marshal())
	require.Nil(t, busErr)

	cfg, err := sbc.Unmarshal(blob)
	require.NoError(t, err)
	assert.Equal(t, sbc.ChannelModeJointStereo, cfg.ChannelMode)
	assert.Equal(t, sbc.Frequency44100, cfg.Frequency)
	assert.Equal(t, byte(sbc.BitpoolMaxDefault), cfg.MaxBitpool)
}

func TestEndpointSelectConfigurationInvalid(t *testing.T) {
	e := &Endpoint{uuid: UUIDSink}

	_, busErr := e.SelectConfiguration([]byte{0x21})
	require.NotNil(t, busErr)
	assert.Equal(t, "org.bluez.Error.InvalidArguments", busErr.Name)

	_, busErr = e.SelectConfiguration([]byte{0x00, 0x00, 2, 53})
	require.NotNil(t, busErr)
}

func TestEndpointConfigurationLifecycle(t *testing.T) {
	var configured, cleared dbus.ObjectPath
	e := &Endpoint{
		uuid: UUIDSink,
		handlers: EndpointHandlers{
			Configured: func(transport dbus.ObjectPath, cfg sbc.Config) {
				configured = transport
			},
			Cleared: func(transport dbus.ObjectPath) {
				cleared = transport
			},
		},
	}

	const transport = dbus.ObjectPath("/org/bluez/hci0/dev_00_11_22_33_44_55/fd0")
	cfg := sbc.Config{
		ChannelMode:      sbc.ChannelModeJointStereo,
		Frequency:        sbc.Frequency44100,
		AllocationMethod: sbc.AllocationLoudness,
		Subbands:         sbc.Subbands8,
		BlockLength:      sbc.Blocks16,
		MinBitpool:       2,
		MaxBitpool:       53,
	}

	busErr := e.SetConfiguration(transport, map[string]dbus.Variant{
		"Configuration": dbus.MakeVariant(cfg.Marshal()),
	})
	require.Nil(t, busErr)
	assert.Equal(t, transport, e.Transport())
	assert.Equal(t, cfg, e.Config())
	assert.Equal(t, transport, configured)

	// a clear for some other transport leaves the state alone
	busErr = e.ClearConfiguration("/other")
	require.Nil(t, busErr)
	assert.Equal(t, transport, e.Transport())

	busErr = e.ClearConfiguration(transport)
	require.Nil(t, busErr)
	assert.Equal(t, dbus.ObjectPath(""), e.Transport())
	assert.Equal(t, sbc.Config{}, e.Config())
	assert.Equal(t, transport, cleared)
}

func TestEndpointSetConfigurationInvalid(t *testing.T) {
	e := &Endpoint{uuid: UUIDSink}

	busErr := e.SetConfiguration("/fd0", map[string]dbus.Variant{})
	require.NotNil(t, busErr)

	busErr = e.SetConfiguration("/fd0", map[string]dbus.Variant{
		"Configuration": dbus.MakeVariant([]byte{1, 2}),
	})
	require.NotNil(t, busErr)
}
