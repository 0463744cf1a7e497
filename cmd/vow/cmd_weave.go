package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/vow/format"
	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/weave"
	"github.com/spf13/cobra"
)

func newWeaveCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "weave <file>",
		Short: "Weave specification annotations into the interface and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read interface file: %w", err)
			}

			items, err := ml.InterfaceFromSource(data, parser.WithFile(filename))
			if err != nil {
				return fmt.Errorf("parse interface: %w", err)
			}

			reporter := &weave.CollectReporter{}
			woven, err := weave.Weave(items, reporter)
			for _, warning := range reporter.Warnings {
				fmt.Fprintf(os.Stderr, "%s: warning: %s\n", warning.Span.Start, warning.Msg)
			}
			if err != nil {
				return fmt.Errorf("weave: %w", err)
			}

			switch outputFormat {
			case "json":
				enc := format.NewItemsJSONEncoder(os.Stdout)
				if err := enc.Encode(woven); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "text":
				for _, item := range woven {
					fmt.Print(item.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")

	return cmd
}
