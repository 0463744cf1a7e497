package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/vow/ml/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an interface file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read interface file: %w", err)
			}

			p := parser.ParseInterface(data, parser.WithFile(filename))
			node := p.Finish()
			if includePositions {
				fmt.Print(node.StringWithPositions())
			} else {
				fmt.Print(node.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source positions in the dump")

	return cmd
}
