package tonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tonkeeper/tongo/ton"
)

// Client is a minimal TonAPI HTTP client, used to re-fetch full events
// when a webhook delivery carries only a transaction hash.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// GetEventByHash returns an event by transaction hash.
func (c *Client) GetEventByHash(ctx context.Context, txHash string) (*Event, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/events/"+txHash)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &event, nil
}

// JettonUnitsToAmount converts raw jetton units to a human-readable amount.
func JettonUnitsToAmount(units string, decimals int) float64 {
	val, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0
	}
	divisor := 1.0
	for i := 0; i < decimals; i++ {
		divisor *= 10
	}
	return float64(val) / divisor
}

// NormalizeAddress converts any TON address format to raw (0:...) so two
// spellings of the same account compare equal.
func NormalizeAddress(addr string) string {
	if addr == "" {
		return ""
	}
	acc, err := ton.ParseAccountID(addr)
	if err != nil {
		return addr
	}
	return acc.String()
}

// RawToFriendly converts a raw address to the bounceable user-facing form.
func RawToFriendly(raw string) string {
	if raw == "" {
		return ""
	}
	acc, err := ton.ParseAccountID(raw)
	if err != nil {
		return raw
	}
	return acc.ToHuman(true, false)
}
