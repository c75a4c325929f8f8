// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// BaseUUID is the Bluetooth base UUID from which all 16-bit and 32-bit
// short UUIDs are derived.
const BaseUUID UUID = "00000000-0000-1000-8000-00805f9b34fb"

const baseUUIDSuffix = "-0000-1000-8000-00805f9b34fb"

// UUID is a 128-bit bluetooth UUID in canonical lowercase textual form.
type UUID string

var uuidRegexp = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// UUID16 expands a 16-bit short UUID against the base UUID.
func UUID16(value uint16) UUID {
	return UUID32(uint32(value))
}

// UUID32 expands a 32-bit short UUID against the base UUID.
func UUID32(value uint32) UUID {
	return UUID(fmt.Sprintf("%08x%s", value, baseUUIDSuffix))
}

// ParseUUID accepts a full 128-bit UUID, or a short form like "0x110b",
// "110b" or "0000110b", and returns the canonical 128-bit UUID.
func ParseUUID(s string) (UUID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if uuidRegexp.MatchString(s) {
		return UUID(s), nil
	}

	short := strings.TrimPrefix(s, "0x")
	if len(short) <= 8 {
		value, err := strconv.ParseUint(short, 16, 32)
		if err == nil {
			return UUID32(uint32(value)), nil
		}
	}
	return "", xerrors.Errorf("malformed uuid %q", s)
}

// Normalize lowercases the UUID.
func (u UUID) Normalize() UUID {
	return UUID(strings.ToLower(string(u)))
}

// Equal compares two UUIDs ignoring case.
func (u UUID) Equal(other UUID) bool {
	return strings.EqualFold(string(u), string(other))
}

// Short returns the 32-bit short form of a UUID derived from the base
// UUID. ok is false for vendor-specific UUIDs.
func (u UUID) Short() (value uint32, ok bool) {
	s := string(u.Normalize())
	if len(s) != 36 || !strings.HasSuffix(s, baseUUIDSuffix) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:8], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// UUID16Value returns the 16-bit short form, if the UUID has one.
func (u UUID) UUID16Value() (uint16, bool) {
	value, ok := u.Short()
	if !ok || value > 0xffff {
		return 0, false
	}
	return uint16(value), true
}

// String implements fmt.Stringer; known service UUIDs are annotated with
// their profile name.
func (u UUID) String() string {
	name := ServiceName(u)
	if name == "" {
		return string(u.Normalize())
	}
	return fmt.Sprintf("%s (%s)", string(u.Normalize()), name)
}
