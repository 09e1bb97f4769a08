package main

import (
	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage input datasets",
	Long:  "Downloads the TIGER archives that have a known URL and reports which configured datasets are present on disk.",
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
