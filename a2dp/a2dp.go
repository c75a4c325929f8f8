// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package a2dp implements the advanced audio distribution profile on top
// of the BlueZ media API: SBC endpoint registration, stream negotiation
// and the encode/decode pumps moving audio over an acquired transport.
package a2dp

import (
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("btmanager/a2dp")
