// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/bluez"
)

var controlCmd = &cobra.Command{
	Use:   "control <address> <action>",
	Short: "Drive the AVRCP remote control of a device",
	Long: `Send a remote control command to an audio device. Actions:
play, pause, stop, next, previous, rewind, fastforward, volumeup,
volumedown, status.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		path, err := adapter.FindDevice(args[0])
		if err != nil {
			return err
		}
		control, err := bluez.NewControl(sigLoop, path)
		if err != nil {
			return err
		}

		switch args[1] {
		case "play":
			return control.Play()
		case "pause":
			return control.Pause()
		case "stop":
			return control.Stop()
		case "next":
			return control.Next()
		case "previous":
			return control.Previous()
		case "rewind":
			return control.Rewind()
		case "fastforward":
			return control.FastForward()
		case "volumeup":
			return control.VolumeUp()
		case "volumedown":
			return control.VolumeDown()
		case "status":
			connected, err := control.IsConnected()
			if err != nil {
				return err
			}
			if connected {
				fmt.Println("connected")
			} else {
				fmt.Println("not connected")
			}
			return nil
		default:
			return fmt.Errorf("unknown control action %q", args[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(controlCmd)
}
