package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canarysec/canary/internal/patterns"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate [patterns.yml]",
		Short: "Validate a pattern file without scanning",
		Long:  "Checks every entry of a pattern source (confidence labels, regex compilation, duplicate rule IDs) and reports the usable pattern count. With no argument the built-in ruleset is checked.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	src := patterns.BuiltinSource()
	name := "built-in ruleset"
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("pattern source: %w", err)
		}
		src = b
		name = args[0]
	}

	v := patterns.Validate(src)
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return err
		}
	} else {
		fmt.Printf("%s: %d usable patterns\n", name, v.PatternCount)
		for _, e := range v.Errors {
			fmt.Println("  invalid:", e.Error())
		}
	}
	if !v.Valid {
		return fmt.Errorf("%d invalid pattern entries", len(v.Errors))
	}
	return nil
}
