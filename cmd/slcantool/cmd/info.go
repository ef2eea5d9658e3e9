package cmd

import (
	"fmt"

	"github.com/roffe/slcan"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print adapter version, serial number and bus status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openAdapter(cmd)
		if err != nil {
			return err
		}
		defer a.shutdown(ctx)

		var version slcan.Version
		if err := do(ctx, a.cfg.retries, func() (err error) {
			version, err = a.Version()
			return err
		}); err != nil {
			return err
		}
		var serialNumber string
		if err := do(ctx, a.cfg.retries, func() (err error) {
			serialNumber, err = a.SerialNumber()
			return err
		}); err != nil {
			return err
		}
		fmt.Println("version:", version)
		fmt.Println("serial: ", serialNumber)

		status, _ := cmd.Flags().GetBool("status")
		if !status {
			return nil
		}
		if err := a.start(ctx); err != nil {
			return err
		}
		var flags slcan.StatusFlags
		if err := do(ctx, a.cfg.retries, func() (err error) {
			flags, err = a.Status()
			return err
		}); err != nil {
			return err
		}
		fmt.Println("status: ", flags)
		return nil
	},
}

func init() {
	infoCmd.Flags().Bool("status", false, "open the channel and read the status flags")
	rootCmd.AddCommand(infoCmd)
}
