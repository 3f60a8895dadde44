package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:           "gtmctl",
	Short:         "Operate the GTM Strategy Portfolio API",
	Long:          "Seed the portfolio store and validate a running GTM Strategy Portfolio API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var args struct {
	envFile string
}

func main() {
	if err := Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	Cmd.PersistentFlags().StringVar(
		&args.envFile,
		"env-file",
		".env",
		"Path of the .env file to load before reading the environment",
	)

	Cmd.AddCommand(seedCmd, checkCmd)
}
