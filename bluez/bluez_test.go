// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersionOutput(t *testing.T) {
	ver, err := parseVersionOutput("5.66\n")
	assert.NoError(t, err)
	assert.Equal(t, 5, ver)

	ver, err = parseVersionOutput("bluetoothd: 4.101")
	assert.NoError(t, err)
	assert.Equal(t, 4, ver)

	ver, err = parseVersionOutput("5")
	assert.NoError(t, err)
	assert.Equal(t, 5, ver)

	_, err = parseVersionOutput("")
	assert.Error(t, err)

	_, err = parseVersionOutput("not-a-version")
	assert.Error(t, err)
}
