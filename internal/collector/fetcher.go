package collector

import (
	"context"

	"friday/internal/model"
)

// StockSource searches and fetches equity price history.
type StockSource interface {
	Name() string
	// SearchStocks returns candidates listed on exchange only.
	SearchStocks(ctx context.Context, query string, exchange model.Exchange) ([]model.Candidate, error)
	FetchStockBars(ctx context.Context, inst model.Instrument) ([]model.OHLCV, error)
}

// FundSource searches and fetches mutual fund NAV history.
type FundSource interface {
	Name() string
	SearchFunds(ctx context.Context, query string) ([]model.FundCandidate, error)
	FetchFund(ctx context.Context, code model.FundCode) (*model.FundHistory, error)
}
