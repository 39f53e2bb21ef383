package scan

import (
	"context"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	bwsbig "bsc-wallet-scanner/internal/big"
	"bsc-wallet-scanner/internal/bscscan"
	"bsc-wallet-scanner/internal/wallet"
)

const (
	defaultTokenDecimals = 18
	defaultMethod        = "transfer"
	selectorHexLength    = 10 // "0x" + 4 selector bytes
)

// selector-to-method mapping for the transfer functions commonly seen on
// token contracts; anything else renders as "unknown".
var methodBySelector = map[string]string{
	"0xa9059cbb": "transfer",
	"0x23b872dd": "transferFrom",
	"0x095ea7b3": "approve",
	"0xa0712d68": "mint",
	"0x42966c68": "burn",
}

// Normalizer maps raw API records into Transactions. Records with unusable
// required fields are skipped with a diagnostic rather than failing the
// scan; duplicate hashes are dropped silently, first occurrence winning.
// A Normalizer carries per-scan state and is not reused across scans.
type Normalizer struct {
	ignoreList *IgnoreList
	seen       map[string]struct{}
	skipped    int
	duplicates int
	ignored    int
}

// NormalizerOption customizes a Normalizer.
type NormalizerOption func(*Normalizer)

// WithIgnoreList makes the normalizer drop transactions whose hashes appear
// on the given list.
func WithIgnoreList(list *IgnoreList) NormalizerOption {
	return func(n *Normalizer) {
		n.ignoreList = list
	}
}

// NewNormalizer returns a Normalizer ready for a single scan.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	normalizer := &Normalizer{
		seen: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(normalizer)
	}

	return normalizer
}

// Normalize converts one raw record into a Transaction. The second return
// value is false when the record was skipped, deduplicated, or ignored.
func (n *Normalizer) Normalize(ctx context.Context, raw bscscan.TokenTransferRecord) (*Transaction, bool) {
	hash := strings.TrimSpace(raw.Hash)
	if hash == "" {
		n.skip(ctx, raw, "missing transaction hash")

		return nil, false
	}

	if _, dup := n.seen[hash]; dup {
		n.duplicates++

		return nil, false
	}

	if reason, isIgnored := n.ignoreList.IsIgnored(hash); isIgnored {
		n.ignored++
		slog.DebugContext(ctx, "Skipping ignored transaction", "hash", hash, "reason", reason)

		return nil, false
	}

	from, err := wallet.ParseAddress(raw.From)
	if err != nil {
		n.skip(ctx, raw, "unparseable from address")

		return nil, false
	}

	to, err := wallet.ParseAddress(raw.To)
	if err != nil {
		n.skip(ctx, raw, "unparseable to address")

		return nil, false
	}

	unixSeconds, err := strconv.ParseInt(strings.TrimSpace(raw.TimeStamp), 10, 64)
	if err != nil {
		n.skip(ctx, raw, "unparseable timestamp")

		return nil, false
	}

	n.seen[hash] = struct{}{}

	return &Transaction{
		Hash:        hash,
		Method:      extractMethod(raw),
		Timestamp:   time.Unix(unixSeconds, 0).UTC(),
		From:        from,
		To:          to,
		Amount:      parseAmount(ctx, raw),
		Decimals:    parseDecimals(raw.TokenDecimal),
		TokenSymbol: valueOrDefault(raw.TokenSymbol, "UNK"),
		TokenName:   valueOrDefault(raw.TokenName, "Unknown"),
	}, true
}

// Skipped returns the number of records dropped for unusable required fields.
func (n *Normalizer) Skipped() int {
	return n.skipped
}

// Duplicates returns the number of records dropped for repeating an
// already-seen hash.
func (n *Normalizer) Duplicates() int {
	return n.duplicates
}

// Ignored returns the number of records dropped by the ignore list.
func (n *Normalizer) Ignored() int {
	return n.ignored
}

func (n *Normalizer) skip(ctx context.Context, raw bscscan.TokenTransferRecord, reason string) {
	n.skipped++
	slog.WarnContext(ctx, "Skipping unusable transfer record", "reason", reason, "hash", raw.Hash)
}

// parseAmount parses the record's value in base units. An unparseable amount
// becomes zero rather than discarding the record; the counterparty addresses
// remain informative even without the amount.
func parseAmount(ctx context.Context, raw bscscan.TokenTransferRecord) *big.Int {
	amount, err := bwsbig.BigIntFromString(strings.TrimSpace(raw.Value))
	if err != nil {
		slog.WarnContext(ctx, "Defaulting unparseable token amount to zero", "hash", raw.Hash, "value", raw.Value)

		return big.NewInt(0)
	}

	return amount
}

func parseDecimals(tokenDecimal string) int {
	decimals, err := strconv.Atoi(strings.TrimSpace(tokenDecimal))
	if err != nil || decimals < 0 {
		return defaultTokenDecimals
	}

	return decimals
}

// extractMethod resolves the contract method name from the declared function
// name when present, falling back to the input data's 4-byte selector.
func extractMethod(raw bscscan.TokenTransferRecord) string {
	if name := strings.TrimSpace(raw.FunctionName); name != "" {
		if idx := strings.Index(name, "("); idx > 0 {
			return name[:idx]
		}

		return name
	}

	if len(raw.Input) >= selectorHexLength {
		if method, known := methodBySelector[strings.ToLower(raw.Input[:selectorHexLength])]; known {
			return method
		}

		return "unknown"
	}

	return defaultMethod
}

func valueOrDefault(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}

	return fallback
}
