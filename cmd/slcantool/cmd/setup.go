package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure bit rate, timestamps and acceptance filter without opening the channel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := cmd.Flags()

		a, err := openAdapter(cmd)
		if err != nil {
			return err
		}
		defer a.shutdown(ctx)

		steps := []func() error{
			func() error { return a.SetupBitrate(a.cfg.canRate) },
		}
		if f.Changed("timestamp") {
			on, _ := f.GetBool("timestamp")
			steps = append(steps, func() error { return a.SetTimestamp(on) })
		}
		filters, _ := f.GetStringSlice("filter")
		ids, err := parseIDs(filters)
		if err != nil {
			return err
		}
		switch {
		case len(ids) > 0:
			steps = append(steps, func() error { return a.SetFilter(ids...) })
		case f.Changed("code") || f.Changed("mask"):
			code, err := parseRegister(f.Lookup("code").Value.String())
			if err != nil {
				return err
			}
			mask, err := parseRegister(f.Lookup("mask").Value.String())
			if err != nil {
				return err
			}
			steps = append(steps,
				func() error { return a.SetAcceptanceMask(code) },
				func() error { return a.SetAcceptanceID(mask) },
			)
		}

		for _, step := range steps {
			if err := do(ctx, a.cfg.retries, step); err != nil {
				return err
			}
		}
		slog.Info("adapter configured", "canrate", a.cfg.canRate, "steps", len(steps))
		return nil
	},
}

func init() {
	f := setupCmd.Flags()
	f.Bool("timestamp", false, "enable adapter timestamps on received frames")
	f.StringSlice("filter", nil, "11-bit hex ids to accept, computes code and mask")
	f.String("code", "00000000", "raw acceptance code register, hex")
	f.String("mask", "FFFFFFFF", "raw acceptance mask register, hex")
	rootCmd.AddCommand(setupCmd)
}

func parseRegister(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid register value %q: %w", s, err)
	}
	return uint32(v), nil
}

// parseHexID parses an identifier written as hex, with or without 0x prefix
func parseHexID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseIDs(in []string) ([]uint32, error) {
	ids := make([]uint32, 0, len(in))
	for _, s := range in {
		id, err := parseHexID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
