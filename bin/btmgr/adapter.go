// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/bluez"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List bluetooth adapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := bluez.NewManager(sigLoop)
		if err != nil {
			return err
		}
		paths, err := manager.ListAdapters()
		if err != nil {
			return err
		}
		for _, path := range paths {
			adapter, err := bluez.NewAdapter(sigLoop, path)
			if err != nil {
				return err
			}
			address, err := adapter.Address()
			if err != nil {
				logger.Warning(err)
				continue
			}
			powered, _ := adapter.Powered()
			state := "off"
			if powered {
				state = "on"
			}
			fmt.Printf("%s\t%s\t%s\n", path, address, state)
		}
		return nil
	},
}

var adapterCmd = &cobra.Command{
	Use:   "adapter",
	Short: "Operate on a single adapter",
}

var adapterInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show adapter properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		props, err := adapter.GetProperties()
		if err != nil {
			return err
		}
		printProperties(props)
		return nil
	},
}

var adapterPowerCmd = &cobra.Command{
	Use:       "power <on|off>",
	Short:     "Switch the adapter on or off",
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		return adapter.SetPowered(args[0] == "on")
	},
}

var adapterSetCmd = &cobra.Command{
	Use:   "set <property> <value>",
	Short: "Assign an adapter property",
	Long: `Assign a writable adapter property, e.g. Alias, Discoverable,
Pairable, DiscoverableTimeout. Booleans are given as true/false, numbers
in decimal; the value is converted to the property's D-Bus type.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		return adapter.SetProperty(args[0], parsePropertyValue(args[1]))
	},
}

// parsePropertyValue guesses the Go kind of a command line value; the
// façade converts it to the property's actual D-Bus type.
func parsePropertyValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

var scanOpts struct {
	timeout time.Duration
}

var adapterScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover nearby devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}

		seen := make(map[string]bool)
		report := func(address, name string) {
			if seen[address] {
				return
			}
			seen[address] = true
			fmt.Printf("%s\t%s\n", address, name)
		}

		v4, err := bluez.IsBluez4()
		if err != nil {
			return err
		}
		if v4 {
			err = adapter.ConnectSignal(bluez.SignalDeviceFound,
				func(sig *dbus.Signal) {
					if len(sig.Body) < 2 {
						return
					}
					address, _ := sig.Body[0].(string)
					props, _ := sig.Body[1].(map[string]dbus.Variant)
					name, _ := props["Name"].Value().(string)
					report(address, name)
				})
		} else {
			err = adapter.ConnectSignal(bluez.SignalInterfacesAdded,
				func(sig *dbus.Signal) {
					if len(sig.Body) < 2 {
						return
					}
					ifaces, _ := sig.Body[1].(map[string]map[string]dbus.Variant)
					props, ok := ifaces["org.bluez.Device1"]
					if !ok {
						return
					}
					address, _ := props["Address"].Value().(string)
					name, _ := props["Name"].Value().(string)
					report(address, name)
				})
		}
		if err != nil {
			return err
		}
		defer adapter.Destroy()

		err = adapter.StartDiscovery()
		if err != nil {
			return err
		}
		defer func() {
			if err := adapter.StopDiscovery(); err != nil {
				logger.Warning(err)
			}
		}()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		select {
		case <-time.After(scanOpts.timeout):
		case <-interrupt:
		}
		return nil
	},
}

func printProperties(props map[string]dbus.Variant) {
	for name, value := range props {
		fmt.Printf("%s: %v\n", name, value.Value())
	}
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
	rootCmd.AddCommand(adapterCmd)
	adapterCmd.AddCommand(adapterInfoCmd)
	adapterCmd.AddCommand(adapterPowerCmd)
	adapterCmd.AddCommand(adapterSetCmd)
	adapterCmd.AddCommand(adapterScanCmd)

	adapterScanCmd.Flags().DurationVar(&scanOpts.timeout, "timeout", 30*time.Second,
		"How long to scan before stopping")
}
