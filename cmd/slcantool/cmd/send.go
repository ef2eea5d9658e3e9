package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roffe/slcan"
	"github.com/roffe/slcan/pkg/bar"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <id> [hex data]",
	Short: "Open the channel and transmit a frame",
	Example: `  slcantool send 7E0 0210010000000000
  slcantool send --extended 18DB33F1 0201
  slcantool send --rtr --length 8 123`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := cmd.Flags()

		frame, err := frameFromArgs(cmd, args)
		if err != nil {
			return err
		}
		if err := frame.Validate(); err != nil {
			return err
		}
		repeat, _ := f.GetInt("repeat")
		interval, _ := f.GetDuration("interval")

		a, err := openAdapter(cmd)
		if err != nil {
			return err
		}
		defer a.shutdown(ctx)

		if err := a.start(ctx); err != nil {
			return err
		}

		if repeat <= 1 {
			if err := do(ctx, a.cfg.retries, func() error { return a.Write(frame) }); err != nil {
				return err
			}
			fmt.Println(frame.ColorString())
			return nil
		}

		pb := bar.New(repeat, "sending")
		for i := 0; i < repeat; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := do(ctx, a.cfg.retries, func() error { return a.Write(frame) }); err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			pb.Add(1)
			if interval > 0 {
				time.Sleep(interval)
			}
		}
		pb.Finish()
		slog.Info("frames sent", "count", repeat, "frame", frame.String(), "stats", a.Stats().String())
		return nil
	},
}

func init() {
	f := sendCmd.Flags()
	f.BoolP("extended", "e", false, "29-bit identifier")
	f.BoolP("rtr", "r", false, "remote transmission request")
	f.IntP("length", "l", 0, "data length for remote frames")
	f.IntP("repeat", "n", 1, "number of times to send the frame")
	f.Duration("interval", 0, "delay between repeated frames")
	rootCmd.AddCommand(sendCmd)
}

func frameFromArgs(cmd *cobra.Command, args []string) (*slcan.CANFrame, error) {
	f := cmd.Flags()
	extended, _ := f.GetBool("extended")
	rtr, _ := f.GetBool("rtr")
	length, _ := f.GetInt("length")

	id, err := parseHexID(args[0])
	if err != nil {
		return nil, err
	}
	if rtr {
		if len(args) > 1 {
			return nil, fmt.Errorf("remote frames carry no data, use --length")
		}
		if length < 0 || length > slcan.MaxDataLength {
			return nil, fmt.Errorf("invalid length %d", length)
		}
		return slcan.NewRemoteFrame(id, extended, length), nil
	}
	var data []byte
	if len(args) > 1 {
		data, err = slcan.DecodeHex(args[1])
		if err != nil {
			return nil, err
		}
	}
	if extended {
		return slcan.NewExtendedFrame(id, data), nil
	}
	return slcan.NewFrame(id, data), nil
}
