package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lowering result cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop all cached lowering results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("lumen")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
