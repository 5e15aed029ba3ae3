package bybit

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mselser95/bybit-sniper/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Bybit mainnet REST endpoint.
	DefaultBaseURL = "https://api.bybit.com"

	categorySpot = "spot"
	recvWindow   = "5000"
)

// Client is an HTTP client for the Bybit v5 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the Bybit client.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Logger    *zap.Logger
}

// NewClient creates a new Bybit v5 REST client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// sign computes the v5 request signature: HMAC-SHA256 over
// timestamp + apiKey + recvWindow + payload, hex encoded. The payload is the
// raw query string for GET requests and the JSON body for POST requests.
func (c *Client) sign(timestamp, payload string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(timestamp + c.apiKey + recvWindow + payload))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, signed bool, out any) error {
	endpoint := c.baseURL + path
	rawQuery := ""
	if query != nil {
		rawQuery = query.Encode()
		endpoint += "?" + rawQuery
	}

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if signed {
		timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

		payload := rawQuery
		if method == http.MethodPost {
			payload = string(reqBody)
		}

		req.Header.Set("X-BAPI-API-KEY", c.apiKey)
		req.Header.Set("X-BAPI-TIMESTAMP", timestamp)
		req.Header.Set("X-BAPI-RECV-WINDOW", recvWindow)
		req.Header.Set("X-BAPI-SIGN", c.sign(timestamp, payload))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, string(respBody))
	}

	err = json.Unmarshal(respBody, out)
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}

func checkRetCode(e envelope) error {
	if e.RetCode != RetCodeOK {
		return &APIError{RetCode: e.RetCode, RetMsg: e.RetMsg}
	}

	return nil
}

// GetServerTime fetches the exchange's clock. Used as the clock of record for
// launch scheduling so local clock skew cannot shift the countdown.
func (c *Client) GetServerTime(ctx context.Context) (time.Time, error) {
	var resp serverTimeResponse
	err := c.do(ctx, http.MethodGet, "/v5/market/time", nil, nil, false, &resp)
	if err != nil {
		return time.Time{}, fmt.Errorf("get server time: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return time.Time{}, err
	}

	nanos, err := strconv.ParseInt(resp.Result.TimeNano, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timeNano %q: %w", resp.Result.TimeNano, err)
	}

	return time.Unix(0, nanos).UTC(), nil
}

// GetWalletBalance fetches unified account balances. A successful call also
// proves the API key is valid and has read permission.
func (c *Client) GetWalletBalance(ctx context.Context) ([]WalletAccount, error) {
	query := url.Values{}
	query.Set("accountType", "UNIFIED")

	var resp walletBalanceResponse
	err := c.do(ctx, http.MethodGet, "/v5/account/wallet-balance", query, nil, true, &resp)
	if err != nil {
		return nil, fmt.Errorf("get wallet balance: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return nil, err
	}

	return resp.Result.List, nil
}

// GetInstrumentsInfo fetches the full spot instrument catalog.
func (c *Client) GetInstrumentsInfo(ctx context.Context) ([]Instrument, error) {
	query := url.Values{}
	query.Set("category", categorySpot)

	var resp instrumentsResponse
	err := c.do(ctx, http.MethodGet, "/v5/market/instruments-info", query, nil, false, &resp)
	if err != nil {
		return nil, fmt.Errorf("get instruments info: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return nil, err
	}

	return resp.Result.List, nil
}

// GetTickerPrice fetches the last traded price for a spot symbol as an exact
// decimal.
func (c *Client) GetTickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("category", categorySpot)
	query.Set("symbol", symbol)

	var resp tickersResponse
	err := c.do(ctx, http.MethodGet, "/v5/market/tickers", query, nil, false, &resp)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get tickers: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return decimal.Zero, err
	}

	if len(resp.Result.List) == 0 {
		return decimal.Zero, fmt.Errorf("no ticker returned for %s", symbol)
	}

	price, err := decimal.NewFromString(resp.Result.List[0].LastPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse lastPrice %q: %w", resp.Result.List[0].LastPrice, err)
	}

	return price, nil
}

// PlaceLimitSell places a spot limit sell order and returns the
// exchange-assigned order ID.
func (c *Client) PlaceLimitSell(ctx context.Context, symbol string, qty, price decimal.Decimal) (string, error) {
	body := map[string]string{
		"category":    categorySpot,
		"symbol":      symbol,
		"side":        "Sell",
		"orderType":   "Limit",
		"qty":         qty.String(),
		"price":       price.String(),
		"orderLinkId": uuid.NewString(),
	}

	var resp orderCreateResponse
	err := c.do(ctx, http.MethodPost, "/v5/order/create", nil, body, true, &resp)
	if err != nil {
		return "", fmt.Errorf("place order: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return "", err
	}

	c.logger.Info("order-placed",
		zap.String("symbol", symbol),
		zap.String("order-id", resp.Result.OrderID),
		zap.String("qty", qty.String()),
		zap.String("price", price.String()))

	return resp.Result.OrderID, nil
}

// GetOrderHistory queries the spot order history for a single order.
// Returns (nil, nil) when the exchange has no record for the ID yet.
func (c *Client) GetOrderHistory(ctx context.Context, orderID string) (*types.OrderRecord, error) {
	query := url.Values{}
	query.Set("category", categorySpot)
	query.Set("orderId", orderID)
	query.Set("limit", "1")

	var resp orderHistoryResponse
	err := c.do(ctx, http.MethodGet, "/v5/order/history", query, nil, true, &resp)
	if err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}

	err = checkRetCode(resp.envelope)
	if err != nil {
		return nil, err
	}

	if len(resp.Result.List) == 0 {
		return nil, nil
	}

	entry := resp.Result.List[0]

	return &types.OrderRecord{
		Symbol:       entry.Symbol,
		OrderID:      entry.OrderID,
		OrderLinkID:  entry.OrderLinkID,
		Status:       types.OrderStatus(entry.OrderStatus),
		Side:         entry.Side,
		OrderType:    entry.OrderType,
		Qty:          entry.Qty,
		Price:        entry.Price,
		CumExecQty:   entry.CumExecQty,
		CumExecValue: entry.CumExecValue,
		TimeInForce:  entry.TimeInForce,
		RecordedAt:   time.Now().UTC(),
	}, nil
}

// CancelOrder cancels a resting spot order.
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) error {
	body := map[string]string{
		"category": categorySpot,
		"symbol":   symbol,
		"orderId":  orderID,
	}

	var resp orderCancelResponse
	err := c.do(ctx, http.MethodPost, "/v5/order/cancel", nil, body, true, &resp)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	return checkRetCode(resp.envelope)
}
