package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roffe/slcan"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Open the channel and print received frames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := cmd.Flags()

		count, _ := f.GetInt("count")
		timestamp, _ := f.GetBool("timestamp")
		filters, _ := f.GetStringSlice("filter")
		ids, err := parseIDs(filters)
		if err != nil {
			return err
		}

		a, err := openAdapter(cmd)
		if err != nil {
			return err
		}
		defer a.shutdown(ctx)

		if err := a.start(ctx,
			func() error { return a.SetTimestamp(timestamp) },
			func() error { return a.SetFilter(ids...) },
		); err != nil {
			return err
		}
		slog.Info("channel open", "canrate", a.cfg.canRate, "filters", len(ids))

		frames := make(chan *slcan.CANFrame, 100)
		errg, gctx := errgroup.WithContext(ctx)
		errg.Go(func() error {
			defer close(frames)
			return readFrames(gctx, a.SLCan, frames, count)
		})
		errg.Go(func() error {
			n := 0
			for frame := range frames {
				n++
				fmt.Println(frame.ColorString())
			}
			slog.Info("dump done", "frames", n)
			return nil
		})
		err = errg.Wait()
		slog.Info("adapter stats", "stats", a.Stats().String())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	f := dumpCmd.Flags()
	f.IntP("count", "n", 0, "stop after this many frames, 0 = until interrupted")
	f.Bool("timestamp", false, "enable adapter timestamps")
	f.StringSlice("filter", nil, "11-bit hex ids to accept")
	rootCmd.AddCommand(dumpCmd)
}

// frameReader is the part of the codec readFrames needs
type frameReader interface {
	Read() (*slcan.CANFrame, error)
}

// readFrames is the only caller of Read while dumping. Reads that time out or
// return something other than a frame are skipped.
func readFrames(ctx context.Context, r frameReader, out chan<- *slcan.CANFrame, count int) error {
	n := 0
	for ctx.Err() == nil {
		frame, err := r.Read()
		if err != nil {
			if errors.Is(err, slcan.ErrInvalidData) {
				slog.Debug("skipped line", "err", err)
				continue
			}
			return err
		}
		select {
		case out <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
		n++
		if count > 0 && n >= count {
			return nil
		}
	}
	return ctx.Err()
}
