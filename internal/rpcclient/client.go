// Package rpcclient provides a JSON-RPC 2.0 client for querying klingnet
// nodes about restored addresses.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds a single call when no timeout is given.
const DefaultTimeout = 10 * time.Second

// maxResponseSize caps the response body read from a node.
const maxResponseSize = 4 << 20

// Client is a JSON-RPC 2.0 HTTP client.
type Client struct {
	endpoint string
	http     *http.Client
	nextID   atomic.Int64
}

// New creates a new RPC client targeting the given endpoint URL.
func New(endpoint string) *Client {
	return NewWithTimeout(endpoint, DefaultTimeout)
}

// NewWithTimeout creates a new RPC client with a custom HTTP timeout.
func NewWithTimeout(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int64       `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int64           `json:"id"`
}

// RPCError is returned when the server responds with an error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call invokes a JSON-RPC method and unmarshals the result into the provided pointer.
// If result is nil, the response result is discarded.
func (c *Client) Call(ctx context.Context, method string, params, result interface{}) error {
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http status %d", resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if rpcResp.ID != req.ID {
		return fmt.Errorf("response id %d does not match request id %d", rpcResp.ID, req.ID)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

// AddressParam is the parameter of utxo_getBalance.
type AddressParam struct {
	Address string `json:"address"`
}

// BalanceResult is returned by utxo_getBalance. Amounts are in base units.
type BalanceResult struct {
	Address   string `json:"address"`
	Balance   uint64 `json:"balance"`
	Spendable uint64 `json:"spendable"`
	Immature  uint64 `json:"immature"`
	Staked    uint64 `json:"staked"`
	Locked    uint64 `json:"locked"`
}

// GetBalance asks the node for the balance of addr.
func (c *Client) GetBalance(ctx context.Context, addr string) (*BalanceResult, error) {
	var res BalanceResult
	if err := c.Call(ctx, "utxo_getBalance", AddressParam{Address: addr}, &res); err != nil {
		return nil, fmt.Errorf("utxo_getBalance: %w", err)
	}
	return &res, nil
}
