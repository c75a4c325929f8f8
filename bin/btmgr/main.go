// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package main provides the btmgr command line tool driving the BlueZ
// daemon: adapter and device management, media control and a pairing
// agent.
package main

import (
	"fmt"
	"os"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/bluez"
)

var logger = log.NewLogger("btmgr")

var globalOpts struct {
	verbose bool
	adapter string
}

var sigLoop *dbusutil.SignalLoop

var rootCmd = &cobra.Command{
	Use:   "btmgr",
	Short: "Manage bluetooth adapters, devices and audio through BlueZ",
	Long: `btmgr drives the BlueZ daemon over D-Bus. It works against both the
generation-4 and generation-5 daemon interfaces and picks the right one
at runtime.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if globalOpts.verbose {
			logger.SetLogLevel(log.LevelDebug)
		}
		var err error
		sigLoop, err = bluez.NewSystemSignalLoop()
		if err != nil {
			return fmt.Errorf("connect system bus: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the running bluetoothd major version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ver, err := bluez.Version()
		if err != nil {
			return err
		}
		fmt.Printf("bluetoothd major version: %d\n", ver)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.adapter, "adapter", "a", "",
		"Adapter id or address (default: the default adapter)")
	rootCmd.AddCommand(versionCmd)
}

// currentAdapter resolves the --adapter flag to an adapter, falling back
// to the daemon's default one.
func currentAdapter() (*bluez.Adapter, error) {
	if globalOpts.adapter != "" {
		return bluez.NewAdapterFromID(sigLoop, globalOpts.adapter)
	}
	manager, err := bluez.NewManager(sigLoop)
	if err != nil {
		return nil, err
	}
	path, err := manager.DefaultAdapter()
	if err != nil {
		return nil, err
	}
	return bluez.NewAdapter(sigLoop, path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
