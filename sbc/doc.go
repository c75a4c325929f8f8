// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sbc binds the native low-complexity subband codec used by the
// A2DP profile and implements the codec capability negotiation defined
// for its media information element.
package sbc
