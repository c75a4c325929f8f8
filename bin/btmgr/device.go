// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/bluez"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the adapter's known devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		paths, err := adapter.ListDevices()
		if err != nil {
			return err
		}
		for _, path := range paths {
			device, err := bluez.NewDevice(sigLoop, path)
			if err != nil {
				return err
			}
			address, err := device.Address()
			if err != nil {
				logger.Warning(err)
				continue
			}
			name := ""
			if v, err := device.GetProperty("Name"); err == nil {
				name, _ = v.Value().(string)
			}
			state := ""
			if connected, _ := device.Connected(); connected {
				state = "connected"
			}
			fmt.Printf("%s\t%s\t%s\n", address, name, state)
		}
		return nil
	},
}

var deviceCmd = &cobra.Command{
	Use:   "device <address>",
	Short: "Operate on a single device by address",
}

// resolveDevice wraps the device with the given address on the selected
// adapter.
func resolveDevice(address string) (*bluez.Device, error) {
	adapter, err := currentAdapter()
	if err != nil {
		return nil, err
	}
	path, err := adapter.FindDevice(address)
	if err != nil {
		return nil, err
	}
	return bluez.NewDevice(sigLoop, path)
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info <address>",
	Short: "Show device properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := resolveDevice(args[0])
		if err != nil {
			return err
		}
		props, err := device.GetProperties()
		if err != nil {
			return err
		}
		printProperties(props)
		if class, ok := props["Class"].Value().(uint32); ok {
			cod := bluez.ClassOfDevice(class)
			fmt.Printf("DeviceClass: %s / %s\n",
				cod.MajorDeviceClass(), cod.MinorDeviceClass())
		}
		return nil
	},
}

var deviceConnectCmd = &cobra.Command{
	Use:   "connect <address> [profile-uuid]",
	Short: "Connect a device, optionally a single profile",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := resolveDevice(args[0])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			uuid, err := bluez.ParseUUID(args[1])
			if err != nil {
				return err
			}
			return device.ConnectProfile(string(uuid))
		}
		return device.Connect()
	},
}

var deviceDisconnectCmd = &cobra.Command{
	Use:   "disconnect <address>",
	Short: "Disconnect a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := resolveDevice(args[0])
		if err != nil {
			return err
		}
		return device.Disconnect()
	},
}

var devicePairCmd = &cobra.Command{
	Use:   "pair <address>",
	Short: "Pair with a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPair(args[0])
	},
	Args: cobra.ExactArgs(1),
}

var deviceRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "Remove a device and its pairing information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		path, err := adapter.FindDevice(args[0])
		if err != nil {
			return err
		}
		return adapter.RemoveDevice(path)
	},
}

var deviceTrustCmd = &cobra.Command{
	Use:       "trust <address> <yes|no>",
	Short:     "Mark a device trusted or untrusted",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"yes", "no"},
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := resolveDevice(args[0])
		if err != nil {
			return err
		}
		return device.SetTrusted(args[1] == "yes")
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceInfoCmd)
	deviceCmd.AddCommand(deviceConnectCmd)
	deviceCmd.AddCommand(deviceDisconnectCmd)
	deviceCmd.AddCommand(devicePairCmd)
	deviceCmd.AddCommand(deviceRemoveCmd)
	deviceCmd.AddCommand(deviceTrustCmd)
}
