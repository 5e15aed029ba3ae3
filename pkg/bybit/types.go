package bybit

// envelope is the common Bybit v5 response wrapper.
type envelope struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
}

// serverTimeResponse wraps GET /v5/market/time.
type serverTimeResponse struct {
	envelope
	Result struct {
		TimeSecond string `json:"timeSecond"`
		TimeNano   string `json:"timeNano"`
	} `json:"result"`
}

// PriceFilter holds the minimum price increment for a symbol.
type PriceFilter struct {
	TickSize string `json:"tickSize"`
}

// LotSizeFilter holds the quantity constraints for a symbol. Spot symbols
// report basePrecision; derivatives report qtyStep. Either one is the minimum
// quantity increment.
type LotSizeFilter struct {
	BasePrecision string `json:"basePrecision"`
	QtyStep       string `json:"qtyStep"`
	MinOrderQty   string `json:"minOrderQty"`
	MaxOrderQty   string `json:"maxOrderQty"`
}

// QtyIncrement returns the minimum quantity increment reported for the symbol.
func (f LotSizeFilter) QtyIncrement() string {
	if f.QtyStep != "" {
		return f.QtyStep
	}

	return f.BasePrecision
}

// Instrument is one entry of the instruments-info catalog.
type Instrument struct {
	Symbol        string        `json:"symbol"`
	Status        string        `json:"status"`
	BaseCoin      string        `json:"baseCoin"`
	QuoteCoin     string        `json:"quoteCoin"`
	PriceFilter   PriceFilter   `json:"priceFilter"`
	LotSizeFilter LotSizeFilter `json:"lotSizeFilter"`
}

// instrumentsResponse wraps GET /v5/market/instruments-info.
type instrumentsResponse struct {
	envelope
	Result struct {
		Category string       `json:"category"`
		List     []Instrument `json:"list"`
	} `json:"result"`
}

// Ticker is one entry of the tickers endpoint.
type Ticker struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	Bid1Price string `json:"bid1Price"`
	Ask1Price string `json:"ask1Price"`
}

// tickersResponse wraps GET /v5/market/tickers.
type tickersResponse struct {
	envelope
	Result struct {
		Category string   `json:"category"`
		List     []Ticker `json:"list"`
	} `json:"result"`
}

// walletBalanceResponse wraps GET /v5/account/wallet-balance. Only the fields
// the preflight check and balance display need are decoded.
type walletBalanceResponse struct {
	envelope
	Result struct {
		List []WalletAccount `json:"list"`
	} `json:"result"`
}

// WalletAccount is one account entry of the wallet-balance response.
type WalletAccount struct {
	AccountType    string `json:"accountType"`
	TotalEquity    string `json:"totalEquity"`
	TotalWalletUSD string `json:"totalWalletBalance"`
	Coins          []struct {
		Coin          string `json:"coin"`
		WalletBalance string `json:"walletBalance"`
	} `json:"coin"`
}

// orderCreateResponse wraps POST /v5/order/create.
type orderCreateResponse struct {
	envelope
	Result struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	} `json:"result"`
}

// orderHistoryEntry is one entry of the order history endpoint.
type orderHistoryEntry struct {
	Symbol       string `json:"symbol"`
	OrderID      string `json:"orderId"`
	OrderLinkID  string `json:"orderLinkId"`
	OrderStatus  string `json:"orderStatus"`
	Side         string `json:"side"`
	OrderType    string `json:"orderType"`
	Qty          string `json:"qty"`
	Price        string `json:"price"`
	CumExecQty   string `json:"cumExecQty"`
	CumExecValue string `json:"cumExecValue"`
	TimeInForce  string `json:"timeInForce"`
}

// orderHistoryResponse wraps GET /v5/order/history.
type orderHistoryResponse struct {
	envelope
	Result struct {
		Category string              `json:"category"`
		List     []orderHistoryEntry `json:"list"`
	} `json:"result"`
}

// orderCancelResponse wraps POST /v5/order/cancel.
type orderCancelResponse struct {
	envelope
	Result struct {
		OrderID string `json:"orderId"`
	} `json:"result"`
}
