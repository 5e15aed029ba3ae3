package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serverTimeCmd = &cobra.Command{
	Use:   "server-time",
	Short: "Show Bybit server time and local clock skew",
	Long: `Fetches the exchange clock the launch scheduler runs on and compares
it with the local clock. Large skew is harmless to the bot (it never trusts
the local clock) but worth knowing about.`,
	Args: cobra.NoArgs,
	RunE: runServerTime,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serverTimeCmd)
}

func runServerTime(cmd *cobra.Command, args []string) error {
	err := loadDotEnv()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client := newPublicClient(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverNow, err := client.GetServerTime(ctx)
	if err != nil {
		return fmt.Errorf("fetch server time: %w", err)
	}

	localNow := time.Now().UTC()

	fmt.Printf("Server time: %s\n", serverNow.Format(time.RFC3339Nano))
	fmt.Printf("Local time:  %s\n", localNow.Format(time.RFC3339Nano))
	fmt.Printf("Skew:        %s\n", localNow.Sub(serverNow))

	return nil
}
