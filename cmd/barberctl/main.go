package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "barberctl",
		Short: "Command-line client for the barberbook booking service",
	}
	root.PersistentFlags().String("server", "http://localhost:8080", "base URL of the barberbook server")

	root.AddCommand(newBarbersCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newSeedCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
