package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	demo       bool
	background bool
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:          "jumpin",
	Short:        "Meeting dashboard with reminders and a natural-language scheduler",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesktop(rootFlags.demo, rootFlags.background)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&rootFlags.demo, "demo", false, "seed two sample meetings")
	rootCmd.Flags().BoolVar(&rootFlags.background, "background", false, "start in the system tray without opening the main window")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "debug, info, warn or error (overrides the saved setting)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
