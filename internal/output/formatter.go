// Package output renders scan results to their destination file in one of
// two modes: full per-transaction blocks, or the deduplicated list of
// counterparty addresses.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bsc-wallet-scanner/internal/scan"
)

// Mode selects the output rendering.
type Mode int

const (
	// ModeFullRecord writes one multi-line block per transaction.
	ModeFullRecord Mode = iota
	// ModeAddressOnly writes each unique from-address once, first-seen order.
	ModeAddressOnly
)

// ErrInvalidMode indicates an unrecognized output mode name.
var ErrInvalidMode = errors.New("invalid output mode")

// ParseMode resolves a mode name. The short aliases match the original
// command surface this tool replaces.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full", "vv":
		return ModeFullRecord, nil
	case "address-only", "addresses", "vf":
		return ModeAddressOnly, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidMode, name)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeFullRecord:
		return "full"
	case ModeAddressOnly:
		return "address-only"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	headerRule = 80
	blockRule  = 50
)

// Write renders the transactions to w in the given mode. Lines are
// newline-terminated UTF-8; relative ages are computed against now.
func Write(w io.Writer, transactions []scan.Transaction, mode Mode, now time.Time) error {
	buffered := bufio.NewWriter(w)

	switch mode {
	case ModeFullRecord:
		writeFullRecords(buffered, transactions, now)
	case ModeAddressOnly:
		writeAddressesOnly(buffered, transactions)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func writeFullRecords(w *bufio.Writer, transactions []scan.Transaction, now time.Time) {
	fmt.Fprintln(w, "Token Transfer History")
	fmt.Fprintln(w, strings.Repeat("=", headerRule))
	fmt.Fprintln(w)

	for _, tx := range transactions {
		fmt.Fprintf(w, "Hash: %s\n", tx.Hash)
		fmt.Fprintf(w, "Method: %s\n", tx.Method)
		fmt.Fprintf(w, "Age: %s\n", FormatAge(now, tx.Timestamp))
		fmt.Fprintf(w, "From: %s\n", tx.From.String())
		fmt.Fprintf(w, "To: %s\n", tx.To.String())
		fmt.Fprintf(w, "Token: %s\n", tx.FormatTokenLine())
		fmt.Fprintln(w, strings.Repeat("-", blockRule))
	}
}

func writeAddressesOnly(w *bufio.Writer, transactions []scan.Transaction) {
	fmt.Fprintln(w, "Counterparty Addresses")
	fmt.Fprintln(w, strings.Repeat("=", headerRule))
	fmt.Fprintln(w)

	seen := make(map[string]struct{}, len(transactions))
	for _, tx := range transactions {
		addr := tx.From.String()
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}

		fmt.Fprintln(w, addr)
	}
}

// FormatAge renders the elapsed time between now and then as a coarse
// human-relative age.
func FormatAge(now time.Time, then time.Time) string {
	elapsed := now.Sub(then)
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours())/24)
	case elapsed >= time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed >= time.Minute:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	default:
		return "Just now"
	}
}
