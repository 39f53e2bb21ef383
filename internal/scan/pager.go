package scan

import (
	"context"

	"bsc-wallet-scanner/internal/bscscan"
	"bsc-wallet-scanner/internal/wallet"
)

// Fetcher retrieves one page of raw transfer records. *bscscan.Client
// satisfies this.
type Fetcher interface {
	TokenTransfers(ctx context.Context, address wallet.Address, page int, pageSize int) ([]bscscan.TokenTransferRecord, error)
}

// Pager drives sequential page fetches for one address. It follows the
// bufio.Scanner shape: Next advances to the following page, Page exposes it,
// and Err reports the terminal failure, if any, once Next returns false.
// End of data is signaled by Next returning false with a nil Err, never by
// an error value. A Pager is finite and not restartable.
type Pager struct {
	fetcher    Fetcher
	address    wallet.Address
	pageSize   int
	maxResults int

	page      int
	fetched   int
	current   []bscscan.TokenTransferRecord
	err       error
	done      bool
	truncated bool
}

// NewPager returns a Pager that fetches pages of pageSize records, stopping
// once maxResults records have been fetched (maxResults <= 0 means no cap).
func NewPager(fetcher Fetcher, address wallet.Address, pageSize int, maxResults int) *Pager {
	return &Pager{
		fetcher:    fetcher,
		address:    address,
		pageSize:   pageSize,
		maxResults: maxResults,
	}
}

// Next fetches the next page, returning true when a non-empty page is
// available via Page. Cancellation is honored between requests.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done {
		return false
	}

	if err := ctx.Err(); err != nil {
		p.err = err
		p.done = true

		return false
	}

	p.page++

	records, err := p.fetcher.TokenTransfers(ctx, p.address, p.page, p.pageSize)
	if err != nil {
		p.err = err
		p.done = true

		return false
	}

	if len(records) == 0 {
		p.done = true

		return false
	}

	if p.maxResults > 0 && p.fetched+len(records) >= p.maxResults {
		// hitting the cap is always reported as truncation; no extra request
		// is spent probing whether the data happened to end exactly there
		records = records[:p.maxResults-p.fetched]
		p.truncated = true
		p.done = true
	} else if len(records) < p.pageSize {
		// a short page means the data is exhausted; emit it, then stop
		p.done = true
	}

	p.current = records
	p.fetched += len(records)

	return true
}

// Page returns the records fetched by the most recent successful Next call.
func (p *Pager) Page() []bscscan.TokenTransferRecord {
	return p.current
}

// Err returns the failure that terminated paging, or nil when paging ended
// because the data was exhausted.
func (p *Pager) Err() error {
	return p.err
}

// Truncated reports whether the result cap stopped pagination early.
func (p *Pager) Truncated() bool {
	return p.truncated
}

// TotalFetched returns the number of records fetched so far.
func (p *Pager) TotalFetched() int {
	return p.fetched
}
