// SPDX-FileCopyrightText: 2024 btmanager contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/spf13/cobra"

	"github.com/bluezkit/btmanager/a2dp"
	"github.com/bluezkit/btmanager/bluez"
	"github.com/bluezkit/btmanager/sbc"
)

const endpointPath = dbus.ObjectPath("/com/bluezkit/btmanager/endpoint")

var streamOpts struct {
	setupTimeout time.Duration
}

var streamCmd = &cobra.Command{
	Use:   "stream <address> <pcm-file>",
	Short: "Stream raw PCM audio to a remote sink",
	Long: `Register an SBC media endpoint, connect the advanced audio profile
of the given device and stream a raw 16-bit little-endian PCM file to
it. The sample rate and channel layout are taken from the negotiated
codec configuration.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pcm, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer pcm.Close()

		service, err := dbusutil.NewSystemService()
		if err != nil {
			return err
		}

		configured := make(chan struct{}, 1)
		endpoint, err := a2dp.NewEndpoint(service, endpointPath, a2dp.UUIDSource,
			&a2dp.EndpointHandlers{
				Configured: func(transport dbus.ObjectPath, cfg sbc.Config) {
					configured <- struct{}{}
				},
			})
		if err != nil {
			return err
		}
		defer endpoint.Destroy()

		adapter, err := currentAdapter()
		if err != nil {
			return err
		}
		media, err := bluez.NewMedia(sigLoop, adapter.Path())
		if err != nil {
			return err
		}
		err = endpoint.Register(media)
		if err != nil {
			return fmt.Errorf("register endpoint: %w", err)
		}
		defer func() {
			if err := endpoint.Unregister(media); err != nil {
				logger.Warning(err)
			}
		}()

		err = connectAudio(args[0])
		if err != nil {
			return err
		}

		select {
		case <-configured:
		case <-time.After(streamOpts.setupTimeout):
			return fmt.Errorf("no transport configured within %v", streamOpts.setupTimeout)
		}

		transport, err := bluez.NewMediaTransport(sigLoop, endpoint.Transport())
		if err != nil {
			return err
		}
		source := a2dp.NewSource(transport, endpoint.Config())
		err = source.Start(pcm)
		if err != nil {
			return err
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		finished := make(chan error, 1)
		go func() { finished <- source.Wait() }()

		select {
		case err = <-finished:
			return err
		case <-interrupt:
			return source.Stop()
		}
	},
}

// connectAudio brings up the audio link to the device: the sink profile
// on BlueZ 5, the AudioSink interface on BlueZ 4.
func connectAudio(address string) error {
	v4, err := bluez.IsBluez4()
	if err != nil {
		return err
	}

	adapter, err := currentAdapter()
	if err != nil {
		return err
	}
	path, err := adapter.FindDevice(address)
	if err != nil {
		return err
	}

	if v4 {
		sink, err := bluez.NewAudioSink(sigLoop, path)
		if err != nil {
			return err
		}
		return sink.Connect()
	}

	device, err := bluez.NewDevice(sigLoop, path)
	if err != nil {
		return err
	}
	return device.ConnectProfile(a2dp.UUIDSink)
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().DurationVar(&streamOpts.setupTimeout, "setup-timeout",
		30*time.Second, "How long to wait for the transport to be configured")
}
