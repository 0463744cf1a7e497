package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vow",
		Short: "A specification-weaving front end for interface files",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newWeaveCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
