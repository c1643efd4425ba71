package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/consensys/chroma"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the chromad version",
	Run: func(*cobra.Command, []string) {
		fmt.Printf("chromad %s %s/%s\n", chroma.Version.String(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
