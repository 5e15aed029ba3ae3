package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "bybit-sniper",
	Short: "Bybit listing-launch limit-sell bot",
	Long: `Bybit listing-launch bot that schedules a single limit sell for the
moment a new spot pair becomes tradeable.

The bot validates API credentials, waits until the configured launch time
(measured on Bybit server time), polls the spot catalog until the pair is
listed, prices a limit sell a fixed percentage below market, places it, and
supervises the order until it fills or a timeout cancels it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
