package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/internal/preflight"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var checkKeysCmd = &cobra.Command{
	Use:   "check-keys",
	Short: "Verify API key validity and permissions",
	Long: `Runs the same credential check the run command performs before
committing to the timed sequence, then prints the wallet balances the key can
see. Use this well before launch time so a bad key is found early.`,
	Args: cobra.NoArgs,
	RunE: runCheckKeys,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(checkKeysCmd)
}

func runCheckKeys(cmd *cobra.Command, args []string) error {
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

	client, err := newSignedClient(logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = preflight.New(client, logger).Check(ctx)
	if err != nil {
		return err
	}

	accounts, err := client.GetWalletBalance(ctx)
	if err != nil {
		return fmt.Errorf("fetch wallet balance: %w", err)
	}

	for _, account := range accounts {
		fmt.Printf("Account %s (total equity %s USD):\n", account.AccountType, account.TotalEquity)
		for _, coin := range account.Coins {
			fmt.Printf("  %-8s %s\n", coin.Coin, coin.WalletBalance)
		}
	}

	fmt.Println("\n✅ API keys are valid and have the necessary permissions.")

	return nil
}
