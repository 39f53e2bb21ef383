package scan

import (
	"math/big"
	"time"

	bwsbig "bsc-wallet-scanner/internal/big"
	"bsc-wallet-scanner/internal/wallet"
)

const amountDisplayPlaces = 6

// Transaction is the canonical token-transfer record produced by the
// normalizer. Instances are immutable once built; Hash is non-empty and
// unique within a single scan's result set.
type Transaction struct {
	Hash        string         // transaction hash, hex-encoded
	Method      string         // contract method name, e.g. "transfer"
	Timestamp   time.Time      // execution time
	From        wallet.Address // the address that sent the token
	To          wallet.Address // the address that received the token
	Amount      *big.Int       // transferred amount in the token's base units
	Decimals    int            // the token's decimal precision
	TokenSymbol string
	TokenName   string
}

// FormatTokenLine renders the transfer's token information as
// "<amount> <symbol> (<name>)" with a fixed six decimal places.
func (t *Transaction) FormatTokenLine() string {
	return bwsbig.FormatBaseUnits(t.Amount, t.Decimals, amountDisplayPlaces) +
		" " + t.TokenSymbol + " (" + t.TokenName + ")"
}

// Result is the outcome of one scan. Transactions preserve API order;
// partially collected results survive a mid-scan failure.
type Result struct {
	Transactions []Transaction
	TotalFetched int  // raw records fetched, before skips and dedup
	Skipped      int  // records dropped because required fields were unusable
	Truncated    bool // true when the result cap stopped pagination early
}
