package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/roffe/slcan"
	"github.com/roffe/slcan/internal/logging"
	"github.com/roffe/slcan/pkg/serialport"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var rootCmd = &cobra.Command{
	Use:          "slcantool",
	Short:        "Talk to SLCAN adapters",
	Long:         `Configure LAWICEL/SLCAN compatible CAN adapters, send frames and dump bus traffic.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, err := cmd.Flags().GetBool(flagDebug)
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(debug))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		slog.Error("command failed", logging.Err(err))
	}
	return err
}

const (
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagCANRate  = "canrate"
	flagDebug    = "debug"
	flagTimeout  = "timeout"
	flagRetries  = "retries"
	flagLatency  = "latency"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "", "com-port, * = print available, empty = select")
	pf.IntP(flagBaudrate, "b", serialport.DefaultBaudrate, "baudrate")
	pf.Float64P(flagCANRate, "c", 500, "CAN rate in kbit/s")
	pf.BoolP(flagDebug, "d", false, "debug mode")
	pf.Duration(flagTimeout, serialport.DefaultReadTimeout, "serial read timeout")
	pf.Uint(flagRetries, 1, "attempts per command when the adapter does not answer")
	pf.Int(flagLatency, 0, "FTDI latency timer in ms, 0 = leave as is (linux only)")
}

// toolConfig is the flag state shared by all commands
type toolConfig struct {
	serial  serialport.Config
	canRate slcan.BitRate
	debug   bool
	retries uint
}

func getConfig(cmd *cobra.Command) (*toolConfig, error) {
	f := cmd.Flags()
	port, err := f.GetString(flagPort)
	if err != nil {
		return nil, err
	}
	baudrate, err := f.GetInt(flagBaudrate)
	if err != nil {
		return nil, err
	}
	kbit, err := f.GetFloat64(flagCANRate)
	if err != nil {
		return nil, err
	}
	rate, err := slcan.ParseBitRate(kbit)
	if err != nil {
		return nil, err
	}
	debug, err := f.GetBool(flagDebug)
	if err != nil {
		return nil, err
	}
	timeout, err := f.GetDuration(flagTimeout)
	if err != nil {
		return nil, err
	}
	retries, err := f.GetUint(flagRetries)
	if err != nil {
		return nil, err
	}
	latency, err := f.GetInt(flagLatency)
	if err != nil {
		return nil, err
	}
	return &toolConfig{
		serial: serialport.Config{
			Port:         port,
			Baudrate:     baudrate,
			ReadTimeout:  timeout,
			LatencyTimer: latency,
		},
		canRate: rate,
		debug:   debug,
		retries: max(retries, 1),
	}, nil
}

var errPortsListed = errors.New("ports listed, pick one with --port")

// selectPort resolves the port flag, * prints the available ports and an empty
// value prompts for one
func selectPort(name string) (string, error) {
	ports, err := serialport.List()
	if err != nil {
		return "", err
	}
	switch name {
	case "*":
		printPorts(ports)
		return "", errPortsListed
	case "":
		items := make([]string, len(ports))
		for i, p := range ports {
			items[i] = serialport.Describe(p)
		}
		prompt := promptui.Select{
			Label:    "Select port",
			HideHelp: true,
			Items:    items,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return "", fmt.Errorf("prompt failed: %w", err)
		}
		return ports[idx].Name, nil
	default:
		return serialport.Resolve(name, ports)
	}
}

type adapter struct {
	*slcan.SLCan
	port serial.Port
	cfg  *toolConfig
}

func openAdapter(cmd *cobra.Command) (*adapter, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.serial.Port, err = selectPort(cfg.serial.Port)
	if err != nil {
		return nil, err
	}
	p, err := serialport.Open(cfg.serial)
	if err != nil {
		return nil, err
	}
	slog.Debug("port opened", "port", cfg.serial.Port, "baudrate", cfg.serial.Baudrate, "canrate", cfg.canRate)
	return &adapter{
		SLCan: slcan.New(p, slcan.OptLogger(slog.Default()), slcan.OptDebug(cfg.debug)),
		port:  p,
		cfg:   cfg,
	}, nil
}

// shutdown closes the channel if it is open and releases the port. It still runs
// when ctx is already cancelled.
func (a *adapter) shutdown(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	if a.State() == slcan.StateOpen {
		if err := do(ctx, a.cfg.retries, a.Close); err != nil {
			errs = append(errs, err)
		}
	}
	time.Sleep(10 * time.Millisecond)
	if err := a.port.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// start sets the bit rate and opens the channel
func (a *adapter) start(ctx context.Context, setup ...func() error) error {
	steps := append([]func() error{
		func() error { return a.SetupBitrate(a.cfg.canRate) },
	}, setup...)
	steps = append(steps, a.Open)
	for _, step := range steps {
		if err := do(ctx, a.cfg.retries, step); err != nil {
			return err
		}
	}
	return nil
}
