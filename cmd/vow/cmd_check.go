package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/project"
	"github.com/dhamidi/vow/weave"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|dir]...",
		Short: "Check interface files and report weaving diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			failed := false
			for _, filename := range files {
				if !checkFile(filename) {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("checks failed")
			}
			return nil
		},
	}
}

// collectFiles expands directory arguments into the interface files
// they contain; plain file arguments pass through unchanged.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		proj, err := project.LoadFrom(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, proj.Files...)
	}
	return files, nil
}

func checkFile(filename string) bool {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, err)
		return false
	}

	items, err := ml.InterfaceFromSource(data, parser.WithFile(filename))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	reporter := &weave.CollectReporter{}
	_, werr := weave.Weave(items, reporter)
	for _, warning := range reporter.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", warning.Span.Start, warning.Msg)
	}
	if werr != nil {
		fmt.Fprintln(os.Stderr, werr)
		return false
	}
	return true
}
