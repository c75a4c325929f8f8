// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bluez

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("btmanager/bluez")

const (
	bluezDBusServiceName = "org.bluez"
	bluezDBusPath        = "/org/bluez"

	dbusDaemonInterface     = "org.freedesktop.DBus"
	dbusPropertiesInterface = "org.freedesktop.DBus.Properties"
	objectManagerInterface  = "org.freedesktop.DBus.ObjectManager"

	managerInterfaceBluez4      = "org.bluez.Manager"
	adapterInterfaceBluez4      = "org.bluez.Adapter"
	adapterInterfaceBluez5      = "org.bluez.Adapter1"
	deviceInterfaceBluez4       = "org.bluez.Device"
	deviceInterfaceBluez5       = "org.bluez.Device1"
	controlInterfaceBluez4      = "org.bluez.Control"
	mediaControlInterfaceBluez5 = "org.bluez.MediaControl1"
	mediaInterfaceBluez4        = "org.bluez.Media"
	mediaInterfaceBluez5        = "org.bluez.Media1"
	transportInterfaceBluez4    = "org.bluez.MediaTransport"
	transportInterfaceBluez5    = "org.bluez.MediaTransport1"
	inputInterfaceBluez4        = "org.bluez.Input"
	inputInterfaceBluez5        = "org.bluez.Input1"
	audioInterfaceBluez4        = "org.bluez.Audio"
	audioSourceInterfaceBluez4  = "org.bluez.AudioSource"
	audioSinkInterfaceBluez4    = "org.bluez.AudioSink"
	headsetInterfaceBluez4      = "org.bluez.Headset"
	headsetGWInterfaceBluez4    = "org.bluez.HeadsetGateway"
	agentInterfaceBluez4        = "org.bluez.Agent"
	agentInterfaceBluez5        = "org.bluez.Agent1"
	agentManagerInterface       = "org.bluez.AgentManager1"
)

// D-Bus error names raised by the daemon, passed through unmodified.
const (
	ErrNameRejected     = "org.bluez.Error.Rejected"
	ErrNameCanceled     = "org.bluez.Error.Canceled"
	ErrNameDoesNotExist = "org.bluez.Error.DoesNotExist"
)

var (
	// ErrNotSupported is returned for operations the running BlueZ
	// generation does not implement.
	ErrNotSupported = xerrors.New("bluez: operation not supported by this daemon generation")

	// ErrSignalUnknown is returned when connecting or disconnecting a
	// signal name the object does not emit.
	ErrSignalUnknown = xerrors.New("bluez: signal name not recognised")
)

// the last BlueZ major version using the generation-4 interfaces
const bluez4MajorVersion = 4

var (
	versionOnce sync.Once
	versionVal  int
	versionErr  error
)

// Version returns the major version of the running bluetoothd. The daemon
// is probed once per process: its PID is obtained from the bus, the
// executable resolved through /proc and asked for its version string.
func Version() (int, error) {
	versionOnce.Do(func() {
		versionVal, versionErr = detectVersion()
		if versionErr != nil {
			logger.Warning("failed to detect bluetoothd version:", versionErr)
		} else {
			logger.Debug("bluetoothd major version:", versionVal)
		}
	})
	return versionVal, versionErr
}

func detectVersion() (int, error) {
	sysBus, err := dbus.SystemBus()
	if err != nil {
		return 0, xerrors.Errorf("connect system bus: %w", err)
	}

	var pid uint32
	err = sysBus.BusObject().Call(dbusDaemonInterface+".GetConnectionUnixProcessID",
		0, bluezDBusServiceName).Store(&pid)
	if err != nil {
		return 0, xerrors.Errorf("get bluetoothd pid: %w", err)
	}

	exe, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return 0, xerrors.Errorf("resolve bluetoothd executable: %w", err)
	}

	out, err := exec.Command(exe, "--version").Output()
	if err != nil {
		return 0, xerrors.Errorf("run %s --version: %w", exe, err)
	}

	return parseVersionOutput(string(out))
}

// parseVersionOutput extracts the major version from bluetoothd --version
// output, e.g. "5.66" or "bluetoothd: 4.101".
func parseVersionOutput(out string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return 0, xerrors.New("empty version output")
	}
	ver := fields[len(fields)-1]
	major := ver
	if idx := strings.IndexByte(ver, '.'); idx != -1 {
		major = ver[:idx]
	}
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, xerrors.Errorf("malformed version %q: %w", ver, err)
	}
	return n, nil
}

// IsBluez4 reports whether the running daemon still uses the
// generation-4 interfaces.
func IsBluez4() (bool, error) {
	ver, err := Version()
	if err != nil {
		return false, err
	}
	return ver <= bluez4MajorVersion, nil
}

// NewSystemSignalLoop connects to the system bus and starts a signal loop
// suitable for all object constructors in this package.
func NewSystemSignalLoop() (*dbusutil.SignalLoop, error) {
	sysBus, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	sigLoop := dbusutil.NewSignalLoop(sysBus, 10)
	sigLoop.Start()
	return sigLoop, nil
}
