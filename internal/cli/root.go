// Package cli wires the scan pipeline behind a cobra command surface. This
// layer is thin glue: it parses arguments, loads configuration, and maps
// failures to exit codes; the scanning itself lives in internal/scan.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bsc-wallet-scanner/internal/bscscan"
	"bsc-wallet-scanner/internal/config"
	bwsslog "bsc-wallet-scanner/internal/logging/slog"
	"bsc-wallet-scanner/internal/output"
	"bsc-wallet-scanner/internal/ui"
	"bsc-wallet-scanner/internal/wallet"
)

// Version is the current release. Overridable via build ldflags.
var Version = "1.0.0"

// Exit codes. Each failure kind gets its own code so callers can script
// against the scanner.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitNetwork    = 3
	ExitAPI        = 4
	ExitFile       = 5
)

var (
	cfgPath string
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "BSC wallet token-transfer scanner",
	Long: `scanner — retrieve token-transfer history for a BSC wallet address.

Results are written to a file either as full transaction records or as the
deduplicated list of counterparty addresses. Requests against the explorer
API are rate limited and retried with exponential backoff.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(bwsslog.NewHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
	}

	return exitCode(err)
}

// exitCode maps the error taxonomy onto distinct exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		validationErr *wallet.ValidationError
		networkErr    *bscscan.NetworkError
		apiErr        *bscscan.APIError
		fileErr       *output.FileError
	)

	switch {
	case errors.As(err, &validationErr), errors.Is(err, output.ErrInvalidMode):
		return ExitValidation
	case errors.As(err, &networkErr):
		return ExitNetwork
	case errors.As(err, &apiErr):
		return ExitAPI
	case errors.As(err, &fileErr):
		return ExitFile
	default:
		return ExitFailure
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to the credentials file (default: credentials/bscscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(scanCmd)
}
