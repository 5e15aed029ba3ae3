package cmd

import (
	"fmt"

	"github.com/mselser95/bybit-sniper/internal/app"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduled launch sell",
	Long: `Runs the full pipeline:
1. Check API key validity and permissions
2. Wait until LAUNCH_TIME minus PRE_LAUNCH_LEAD, on Bybit server time
3. Poll the spot catalog until SYMBOL is listed
4. Sample the market price
5. Size a limit sell PRICE_OFFSET_PERCENT below market, at exchange precision
6. Place the order (up to 3 attempts)
7. Wait for the fill, cancelling after ORDER_TIMEOUT

Configuration comes from the environment (a .env file is honored).`,
	Args: cobra.NoArgs,
	RunE: runSniper,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runSniper(cmd *cobra.Command, args []string) error {
	err := loadDotEnv()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
