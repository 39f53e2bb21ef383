package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"bsc-wallet-scanner/internal/bscscan"
	"bsc-wallet-scanner/internal/output"
	"bsc-wallet-scanner/internal/ratelimit"
	"bsc-wallet-scanner/internal/scan"
	"bsc-wallet-scanner/internal/ui"
	"bsc-wallet-scanner/internal/wallet"
)

var (
	scanMode       string
	scanIgnoreFile string
	scanNoPartial  bool
	scanAssumeYes  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <address> <output-file>",
	Short: "Scan a wallet's token transfers and write them to a file",
	Long: `Scan retrieves the token-transfer history for the given wallet address
and writes it to the output file. Relative output paths are placed under the
configured output directory.

Modes:
  full          one block per transaction (hash, method, age, from, to, token)
  address-only  one line per unique counterparty (from) address`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args[0], args[1])
	},
}

func runScan(cmd *cobra.Command, rawAddress string, outputFile string) error {
	ctx := cmd.Context()

	mode, err := output.ParseMode(scanMode)
	if err != nil {
		return err
	}

	address, err := wallet.ParseAddress(rawAddress)
	if err != nil {
		return err
	}

	var ignoreList *scan.IgnoreList
	if scanIgnoreFile != "" {
		ignoreList, err = loadIgnoreList(scanIgnoreFile)
		if err != nil {
			return err
		}
	}

	if !scanAssumeYes {
		fmt.Println(ui.Banner(Version))
		fmt.Printf("Wallet: %s\nMode:   %s\n", ui.Addr(address.String()), ui.Meta(mode.String()))

		proceed, err := confirmScan()
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Println(ui.Meta("Scan canceled."))

			return nil
		}
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	limiter := ratelimit.NewPerSecond(cfg.RateLimit)

	client := bscscan.NewClient(
		httpClient,
		cfg.BaseURL,
		cfg.APIKey,
		limiter,
		bscscan.WithMaxRetries(cfg.MaxRetries),
		bscscan.WithInitialBackoff(cfg.InitialBackoff()),
	)

	scanner := scan.NewScanner(
		client,
		scan.WithPageSize(cfg.PageSize),
		scan.WithMaxResults(cfg.MaxResults),
		scan.WithScanIgnoreList(ignoreList),
	)

	result, scanErr := scanner.Run(ctx, address)

	destination := resolveOutputPath(outputFile)

	if scanErr != nil {
		if scanNoPartial || len(result.Transactions) == 0 {
			return scanErr
		}

		// emit what was collected, then surface the failure
		if writeErr := output.WriteFile(destination, result.Transactions, mode, time.Now()); writeErr != nil {
			return errors.Join(scanErr, writeErr)
		}

		fmt.Println(ui.Warn(fmt.Sprintf(
			"scan failed mid-way; partial results (%d transactions) saved to %s",
			len(result.Transactions),
			destination,
		)))

		return scanErr
	}

	if err := output.WriteFile(destination, result.Transactions, mode, time.Now()); err != nil {
		// the data was fetched; only saving it failed
		fmt.Println(ui.Warn(fmt.Sprintf("%d transactions were fetched but could not be saved", len(result.Transactions))))

		return err
	}

	fmt.Println(ui.Summary(len(result.Transactions), result.Skipped, result.Truncated, destination))

	return nil
}

func confirmScan() (bool, error) {
	selector := promptui.Select{
		Label: "Start scan?",
		Items: []string{"Scan", "Cancel"},
	}

	selIdx, _, err := selector.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}

		return false, fmt.Errorf("scan confirmation prompt failed: %w", err)
	}

	return selIdx == 0, nil
}

func loadIgnoreList(path string) (*scan.IgnoreList, error) {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore list file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return scan.IgnoreListFromYAML(file)
}

// resolveOutputPath places bare file names under the configured output
// directory; explicit paths are honored as given.
func resolveOutputPath(outputFile string) string {
	if filepath.IsAbs(outputFile) || filepath.Dir(outputFile) != "." {
		return outputFile
	}

	return filepath.Join(cfg.OutputDir, outputFile)
}

func init() {
	scanCmd.Flags().StringVar(&scanMode, "mode", "full", "output mode: full or address-only")
	scanCmd.Flags().StringVar(&scanIgnoreFile, "ignore-file", "", "YAML file of transaction hashes to exclude")
	scanCmd.Flags().BoolVar(&scanNoPartial, "no-partial", false, "do not write partial results when a scan fails mid-way")
	scanCmd.Flags().BoolVarP(&scanAssumeYes, "yes", "y", false, "skip the confirmation prompt")
}
