// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package bluez is a thin façade over the BlueZ daemon's D-Bus interfaces.

It supports both interface generations: the org.bluez.Manager/Adapter/Device
family of BlueZ 4 and the ObjectManager-based Adapter1/Device1 family of
BlueZ 5. The running generation is detected once from the daemon itself and
every object dispatches to the matching interface, so callers never branch
on the version themselves.

All state lives in the daemon. Objects here only carry the connection, the
object path and the signal subscription bookkeeping; property reads and
writes are forwarded as D-Bus calls and daemon errors are returned
unmodified.
*/
package bluez
