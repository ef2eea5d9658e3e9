package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/roffe/slcan/pkg/serialport"
	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serialport.List()
		if err != nil {
			return err
		}
		printPorts(ports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func printPorts(ports []*enumerator.PortDetails) {
	fmt.Println("discovered com ports:")
	usb := color.New(color.FgGreen).SprintFunc()
	for _, p := range ports {
		if p.IsUSB {
			fmt.Println("  " + usb(serialport.Describe(p)))
			continue
		}
		fmt.Println("  " + serialport.Describe(p))
	}
}
