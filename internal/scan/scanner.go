// Package scan contains the scan pipeline: the pager walks the explorer's
// result pages, the normalizer turns raw records into canonical
// Transactions, and the Scanner composes the two into one Result.
package scan

import (
	"context"
	"fmt"
	"log/slog"

	"bsc-wallet-scanner/internal/wallet"
)

const (
	defaultPageSize   = 1000
	defaultMaxResults = 10000
)

// Scanner orchestrates a single wallet scan. Pages are fetched strictly
// sequentially; the rate limiter inside the fetcher is the only suspension
// point.
type Scanner struct {
	fetcher    Fetcher
	pageSize   int
	maxResults int
	ignoreList *IgnoreList
}

// ScannerOption customizes a Scanner.
type ScannerOption func(*Scanner)

// WithPageSize sets the number of records requested per page.
func WithPageSize(size int) ScannerOption {
	return func(s *Scanner) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxResults caps the number of raw records fetched in one scan; results
// hitting the cap are marked truncated. A non-positive value removes the cap.
func WithMaxResults(maxResults int) ScannerOption {
	return func(s *Scanner) {
		s.maxResults = maxResults
	}
}

// WithScanIgnoreList excludes the listed transaction hashes from results.
func WithScanIgnoreList(list *IgnoreList) ScannerOption {
	return func(s *Scanner) {
		s.ignoreList = list
	}
}

// NewScanner returns a Scanner that fetches through the given Fetcher.
func NewScanner(fetcher Fetcher, opts ...ScannerOption) *Scanner {
	scanner := &Scanner{
		fetcher:    fetcher,
		pageSize:   defaultPageSize,
		maxResults: defaultMaxResults,
	}

	for _, opt := range opts {
		opt(scanner)
	}

	return scanner
}

// Run scans the given address and returns the collected Result. On a
// mid-scan failure the Result holds everything collected up to that point
// alongside the error, so callers can still emit partial output.
func (s *Scanner) Run(ctx context.Context, address wallet.Address) (*Result, error) {
	slog.InfoContext(ctx, "Starting wallet scan", "address", address.String())

	normalizer := NewNormalizer(WithIgnoreList(s.ignoreList))
	pager := NewPager(s.fetcher, address, s.pageSize, s.maxResults)

	result := &Result{}

	for pager.Next(ctx) {
		page := pager.Page()
		slog.DebugContext(ctx, "Fetched page", "records", len(page))

		for _, raw := range page {
			if tx, ok := normalizer.Normalize(ctx, raw); ok {
				result.Transactions = append(result.Transactions, *tx)
			}
		}
	}

	result.TotalFetched = pager.TotalFetched()
	result.Skipped = normalizer.Skipped()
	result.Truncated = pager.Truncated()

	if err := pager.Err(); err != nil {
		return result, fmt.Errorf("scan of '%s' failed after %d records: %w", address.String(), result.TotalFetched, err)
	}

	slog.InfoContext(
		ctx,
		"Scan complete",
		"fetched", result.TotalFetched,
		"transactions", len(result.Transactions),
		"skipped", result.Skipped,
		"duplicates", normalizer.Duplicates(),
		"ignored", normalizer.Ignored(),
		"truncated", result.Truncated,
	)

	return result, nil
}
