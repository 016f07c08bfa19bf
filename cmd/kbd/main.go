// Command kbd wires the input, output, waiter, and config packages to
// kbd.Engine, implementing the driver loop the surrounding program needs:
// read physical events, inject Poll at a cadence shorter than the shortest
// configured threshold, and write the resulting actions to a virtual
// device.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joeycumines/go-kbd"
	"github.com/joeycumines/go-kbd/config"
	"github.com/joeycumines/go-kbd/input"
	"github.com/joeycumines/go-kbd/output"
	"github.com/joeycumines/go-kbd/waiter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		devicePath string
		deviceName string
		configPath string
		grab       bool
	)

	cmd := &cobra.Command{
		Use:   "kbd",
		Short: "Remap a physical keyboard through a virtual output device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(devicePath, deviceName, configPath, grab)
		},
	}

	cmd.Flags().StringVar(&devicePath, "device", "", "Linux input event source (e.g. /dev/input/event4)")
	cmd.Flags().StringVar(&deviceName, "name", "go-kbd virtual keyboard", "name advertised by the virtual output device")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML key mapping file")
	cmd.Flags().BoolVar(&grab, "grab", true, "exclusively grab the input device")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}

func run(devicePath, deviceName, configPath string, grab bool) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	kbdLogger := kbd.NewZerologLogger(logger)

	mapper, err := loadMapper(configPath)
	if err != nil {
		return fmt.Errorf("load mapping: %w", err)
	}

	src, err := input.Open(devicePath, grab)
	if err != nil {
		return fmt.Errorf("open input device: %w", err)
	}
	defer src.Close()

	sink, err := output.Open("/dev/uinput", deviceName)
	if err != nil {
		return fmt.Errorf("open output device: %w", err)
	}
	defer sink.Close()

	w, err := waiter.New(src.Fd())
	if err != nil {
		return fmt.Errorf("init waiter: %w", err)
	}
	defer w.Close()

	settings := kbd.NewSettings()
	engine := kbd.NewEngine[uint16, uint16](0, mapper, kbd.WithSettings(settings), kbd.WithLogger(kbdLogger))

	pollInterval := waiter.PollInterval(settings)
	logger.Info().Dur("poll_interval", pollInterval).Str("device", devicePath).Msg("starting")

	return driveLoop(engine, src, sink, w, pollInterval)
}

func loadMapper(configPath string) (*kbd.MapOrEchoMapper[uint16], error) {
	if configPath == "" {
		return kbd.NewMapOrEchoMapper[uint16](), nil
	}
	return config.Load(configPath)
}

// driveLoop implements the source/waiter/sink contract: block on the
// waiter up to pollInterval, read events from the source until ReadEvent
// returns no key event (no data left, or a record it discards such as
// EV_SYN; any records behind it are read on a later iteration, since the
// source is still readable), and inject a Poll either way so timeout-based
// transitions fire
// promptly at least once per pollInterval even under a steady stream of
// key traffic.
func driveLoop(engine *kbd.Engine[uint16, uint16], src *input.Device, sink *output.Device, w *waiter.Waiter, pollInterval time.Duration) error {
	for {
		ready, err := w.Wait(pollInterval)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}

		var actions []kbd.Action[uint16]
		if ready {
			for {
				event, ok, err := src.ReadEvent()
				if err != nil {
					return fmt.Errorf("read event: %w", err)
				}
				if !ok {
					break
				}
				actions = append(actions, engine.Transition(event)...)
			}
		}
		actions = append(actions, engine.Transition(kbd.PollEvent[uint16]())...)

		if len(actions) > 0 {
			if err := sink.EmitActions(actions); err != nil {
				return fmt.Errorf("emit actions: %w", err)
			}
		}
	}
}
