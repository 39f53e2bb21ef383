// Package bscscan fetches token-transfer records from the BscScan HTTP API.
// The client owns the request/retry mechanics; it knows nothing about how
// pages are sequenced or how records are rendered.
package bscscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	bwshttp "bsc-wallet-scanner/internal/http"
	"bsc-wallet-scanner/internal/ratelimit"
	"bsc-wallet-scanner/internal/wallet"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
	maxBackoffInterval    = 8 * time.Second

	// the block range the original client always requests
	startBlock = "0"
	endBlock   = "999999999"
)

// Client retrieves token-transfer pages for an account. Every attempt passes
// through the injected rate limiter before touching the network.
type Client struct {
	doer           bwshttp.Doer
	baseURL        string
	apiKey         string
	limiter        ratelimit.Limiter
	maxRetries     uint64
	initialBackoff time.Duration
}

// ClientOption customizes client construction.
type ClientOption func(*Client)

// WithMaxRetries caps the number of retries after the initial attempt of a
// transient failure.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = uint64(retries)
		}
	}
}

// WithInitialBackoff sets the delay before the first retry; subsequent
// delays double up to a fixed cap.
func WithInitialBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.initialBackoff = d
		}
	}
}

// NewClient returns a Client that issues requests through the given Doer,
// throttled by the given limiter.
func NewClient(
	doer bwshttp.Doer,
	baseURL string,
	apiKey string,
	limiter ratelimit.Limiter,
	opts ...ClientOption,
) *Client {
	client := &Client{
		doer:           doer,
		baseURL:        baseURL,
		apiKey:         apiKey,
		limiter:        limiter,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// envelope is the JSON wrapper around every explorer response. On failure
// statuses the result is usually a string elaborating on the message.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// TokenTransfers fetches one page of token-transfer records for the given
// account address. Transient failures (transport errors, HTTP error
// statuses, provider rate limiting) are retried with exponential backoff up
// to the configured maximum; all other API failures are surfaced immediately.
// An empty page is returned as an empty slice, not an error.
func (c *Client) TokenTransfers(
	ctx context.Context,
	address wallet.Address,
	page int,
	pageSize int,
) ([]TokenTransferRecord, error) {
	operation := func() ([]TokenTransferRecord, error) {
		c.limiter.Take()

		records, err := c.fetchPage(ctx, address, page, pageSize)
		if err != nil && !isTransient(err) {
			return nil, backoff.Permanent(err)
		}

		return records, err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.initialBackoff
	expBackoff.MaxInterval = maxBackoffInterval
	expBackoff.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, c.maxRetries), ctx)

	return backoff.RetryWithData(operation, policy)
}

func (c *Client) fetchPage(
	ctx context.Context,
	address wallet.Address,
	page int,
	pageSize int,
) ([]TokenTransferRecord, error) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL '%s': %w", c.baseURL, err)
	}

	q := reqURL.Query()
	q.Set("module", "account")
	q.Set("action", "tokentx")
	q.Set("address", address.String())
	q.Set("startblock", startBlock)
	q.Set("endblock", endBlock)
	q.Set("page", strconv.Itoa(page))
	q.Set("offset", strconv.Itoa(pageSize))
	q.Set("sort", "desc")
	q.Set("apikey", c.apiKey)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create token transfer request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// only server errors are worth retrying; a 4xx will not heal
		return nil, &NetworkError{
			Err:       fmt.Errorf("explorer returned HTTP status %d", resp.StatusCode),
			Permanent: resp.StatusCode < http.StatusInternalServerError,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{Message: err.Error(), Malformed: true}
	}

	if env.Status != "1" {
		failure := classifyAPIFailure(env)
		if errors.Is(failure, errNoTransactions) {
			// "no data" arrives on the failure status; it is a normal empty page
			return []TokenTransferRecord{}, nil
		}

		return nil, failure
	}

	var records []TokenTransferRecord
	if err := json.Unmarshal(env.Result, &records); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("unexpected result payload: %v", err), Malformed: true}
	}

	return records, nil
}

// classifyAPIFailure turns a non-success envelope into either a graceful
// empty page or a typed APIError. The explorer reports "no data" through the
// same status it uses for real failures, and elaborates rate limiting in the
// result field rather than the message.
func classifyAPIFailure(env envelope) error {
	detail := env.Message

	var resultText string
	if len(env.Result) > 0 && json.Unmarshal(env.Result, &resultText) == nil && resultText != "" {
		if detail == "" {
			detail = resultText
		} else {
			detail = detail + ": " + resultText
		}
	}

	lowered := strings.ToLower(detail)

	if strings.Contains(lowered, "no transactions found") {
		return errNoTransactions
	}

	if strings.Contains(lowered, "rate limit") {
		return &APIError{Message: detail, RateLimited: true}
	}

	if detail == "" {
		detail = "unknown API error"
	}

	return &APIError{Message: detail}
}

// errNoTransactions is an internal marker so TokenTransfers can distinguish
// "nothing to return" from a failure; it never escapes this package.
var errNoTransactions = &emptyPageError{}

type emptyPageError struct{}

func (e *emptyPageError) Error() string { return "no transactions found" }
