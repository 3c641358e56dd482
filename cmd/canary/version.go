package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the canary version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("canary", version)
		},
	})
}
