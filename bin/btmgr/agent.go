// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/bluez"
)

const agentPath = dbus.ObjectPath("/com/bluezkit/btmanager/agent")

var agentOpts struct {
	capability string
	pinCode    string
	passkey    uint32
	auto       bool
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run a pairing agent until interrupted",
	Long: `Register a pairing agent with the daemon and answer its requests.
With --auto every request is answered with the fixed pin code and
passkey; otherwise confirmations are asked on the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := dbusutil.NewSystemService()
		if err != nil {
			return err
		}

		var handlers *bluez.AgentHandlers
		if !agentOpts.auto {
			handlers = &bluez.AgentHandlers{
				RequestConfirmation: confirmOnTerminal,
				RequestAuthorization: func(device dbus.ObjectPath) error {
					return confirmOnTerminal(device, 0)
				},
			}
		}

		agent, err := bluez.NewAgent(service, agentPath, handlers)
		if err != nil {
			return err
		}
		agent.PinCode = agentOpts.pinCode
		agent.Passkey = agentOpts.passkey
		defer agent.Destroy()

		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		err = adapter.RegisterAgent(agentPath, agentOpts.capability)
		if err != nil {
			return err
		}
		defer func() {
			if err := adapter.UnregisterAgent(agentPath); err != nil {
				logger.Warning(err)
			}
		}()

		err = adapter.RequestDefaultAgent(agentPath)
		if err != nil && err != bluez.ErrNotSupported {
			logger.Warning(err)
		}

		fmt.Println("agent registered, waiting for requests")
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		<-interrupt
		return nil
	},
}

func confirmOnTerminal(device dbus.ObjectPath, passkey uint32) error {
	if passkey != 0 {
		fmt.Printf("confirm passkey %06d for %s [y/N]: ", passkey, device)
	} else {
		fmt.Printf("authorize %s [y/N]: ", device)
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return err
	}
	if strings.TrimSpace(strings.ToLower(line)) != "y" {
		return dbus.Error{Name: bluez.ErrNameRejected}
	}
	return nil
}

// runPair pairs with a device, registering a temporary automatic agent
// for the daemon to talk to.
func runPair(address string) error {
	service, err := dbusutil.NewSystemService()
	if err != nil {
		return err
	}
	agent, err := bluez.NewAgent(service, agentPath, nil)
	if err != nil {
		return err
	}
	agent.PinCode = agentOpts.pinCode
	agent.Passkey = agentOpts.passkey
	defer agent.Destroy()

	adapter, err := currentAdapter()
	if err != nil {
		return err
	}

	v4, err := bluez.IsBluez4()
	if err != nil {
		return err
	}
	if v4 {
		_, err = adapter.CreatePairedDevice(address, agentPath, agentOpts.capability)
		return err
	}

	err = adapter.RegisterAgent(agentPath, agentOpts.capability)
	if err != nil {
		return err
	}
	defer func() {
		if err := adapter.UnregisterAgent(agentPath); err != nil {
			logger.Warning(err)
		}
	}()

	device, err := resolveDevice(address)
	if err != nil {
		return err
	}
	return device.Pair()
}

func init() {
	rootCmd.AddCommand(agentCmd)

	for _, cmd := range []*cobra.Command{agentCmd, devicePairCmd} {
		cmd.Flags().StringVar(&agentOpts.capability, "capability",
			bluez.CapKeyboardOnly, "Agent input/output capability")
		cmd.Flags().StringVar(&agentOpts.pinCode, "pin", "0000",
			"Pin code answered to legacy pairing requests")
		cmd.Flags().Uint32Var(&agentOpts.passkey, "passkey", 0,
			"Passkey answered to passkey requests")
	}
	agentCmd.Flags().BoolVar(&agentOpts.auto, "auto", false,
		"Answer every request without asking")
}
