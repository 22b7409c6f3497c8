// Package gateway provides a read-only client for the MultiversX gateway
// (proxy) REST API.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/pkg/tx"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// DefaultTimeout bounds every request when no timeout is given.
const DefaultTimeout = 10 * time.Second

// codeSuccessful is the envelope code of a successful response.
const codeSuccessful = "successful"

// Client is a gateway HTTP client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new gateway client targeting the given base URL.
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, DefaultTimeout)
}

// NewWithTimeout creates a new gateway client with a custom HTTP timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the common gateway response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

// APIError is returned when the gateway reports a failure.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway error (http %d, code %q)", e.Status, e.Code)
	}
	return fmt.Sprintf("gateway error (http %d, code %q): %s", e.Status, e.Code, e.Message)
}

// get fetches path and unmarshals the envelope data into result.
func (c *Client) get(ctx context.Context, path string, result any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	klog.Gateway.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("gateway request")

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode/100 != 2 {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode/100 != 2 || env.Code != codeSuccessful {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Error}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// GetNonce returns the current nonce of an account.
func (c *Client) GetNonce(ctx context.Context, addr types.Address) (uint64, error) {
	var data struct {
		Nonce uint64 `json:"nonce"`
	}
	if err := c.get(ctx, "/address/"+addr.String()+"/nonce", &data); err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return data.Nonce, nil
}

// NetworkConfig is the subset of /network/config used to build transactions.
type NetworkConfig struct {
	ChainID          string `json:"erd_chain_id"`
	MinGasLimit      uint64 `json:"erd_min_gas_limit"`
	MinGasPrice      uint64 `json:"erd_min_gas_price"`
	GasPerDataByte   uint64 `json:"erd_gas_per_data_byte"`
	GasPriceModifier string `json:"erd_gas_price_modifier"`
	MinTxVersion     uint32 `json:"erd_min_transaction_version"`
}

// GetNetworkConfig returns the network configuration.
func (c *Client) GetNetworkConfig(ctx context.Context) (*NetworkConfig, error) {
	var data struct {
		Config NetworkConfig `json:"config"`
	}
	if err := c.get(ctx, "/network/config", &data); err != nil {
		return nil, fmt.Errorf("get network config: %w", err)
	}
	return &data.Config, nil
}

// GasConfig converts the network configuration into a fee schedule. Missing
// values fall back to the defaults.
func (nc *NetworkConfig) GasConfig() (tx.GasConfig, error) {
	cfg := tx.DefaultGasConfig()
	if nc.MinGasLimit > 0 {
		cfg.MinGasLimit = nc.MinGasLimit
	}
	if nc.GasPerDataByte > 0 {
		cfg.GasPerDataByte = nc.GasPerDataByte
	}
	if nc.GasPriceModifier != "" {
		m, err := decimal.NewFromString(nc.GasPriceModifier)
		if err != nil {
			return tx.GasConfig{}, fmt.Errorf("gas price modifier %q: %w", nc.GasPriceModifier, err)
		}
		cfg.GasPriceModifier = m
	}
	return cfg, nil
}
