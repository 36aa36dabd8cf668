package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/mbtistock/internal/cache"
	"github.com/wonny/mbtistock/internal/external/dart"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/internal/store"
	"github.com/wonny/mbtistock/pkg/kst"
	"github.com/wonny/mbtistock/pkg/logger"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// StockHandler serves stock list, price history and financials
// ⭐ SSOT: 종목 데이터 API 핸들러는 이 구조체에서만
type StockHandler struct {
	stocks     StockReader
	prices     PriceReader
	financials FinancialReader
	cache      *cache.Cache
	logger     *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stocks StockReader, prices PriceReader, financials FinancialReader, c *cache.Cache, log *logger.Logger) *StockHandler {
	return &StockHandler{
		stocks:     stocks,
		prices:     prices,
		financials: financials,
		cache:      c,
		logger:     log,
	}
}

// ListStocks returns every stock
// GET /api/stocks
func (h *StockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	var stocks []store.Stock
	err := h.cache.GetOrLoad(r.Context(), cache.StocksKey, &stocks, func(ctx context.Context) (interface{}, error) {
		return h.stocks.ListAll(ctx)
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to list stocks")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve stocks")
		return
	}
	if stocks == nil {
		stocks = []store.Stock{}
	}

	respondData(w, stocks)
}

// GetHistory returns daily prices for the last N days
// GET /api/stocks/{ticker}/history?days=30
func (h *StockHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	if !validTicker(ticker) {
		respondError(w, http.StatusBadRequest, "invalid ticker")
		return
	}

	days, ok := intParam(r, "days", defaultHistoryDays, maxHistoryDays)
	if !ok {
		respondError(w, http.StatusBadRequest, "days must be a positive integer")
		return
	}

	to := kst.Truncate(kst.Now())
	from := to.AddDate(0, 0, -days)

	prices, err := h.prices.GetHistory(r.Context(), ticker, from, to)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"days":   days,
		}).Error("Failed to get price history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve price history")
		return
	}
	if prices == nil {
		prices = []store.Price{}
	}

	respondData(w, prices)
}

// GetFinancials returns the latest ratio record
// GET /api/stocks/{ticker}/financials
func (h *StockHandler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	if !validTicker(ticker) {
		respondError(w, http.StatusBadRequest, "invalid ticker")
		return
	}

	stock, err := h.stocks.Get(r.Context(), ticker)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "unknown ticker "+ticker)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get stock")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve financials")
		return
	}

	rec, err := h.financials.GetLatest(r.Context(), ticker)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no financial data for "+ticker)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get financials")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve financials")
		return
	}

	resp := financialsResponse{RatioRecord: *rec, Name: stock.Name, Sector: stock.Sector}
	if rec.ReceiptNo != "" {
		resp.DARTURL = dart.GetDARTURL(rec.ReceiptNo)
	}
	respondData(w, resp)
}

// financialsResponse is the ratio record plus stock identity and the source filing link
type financialsResponse struct {
	financial.RatioRecord
	Name    string `json:"name"`
	Sector  string `json:"sector"`
	DARTURL string `json:"dart_url,omitempty"`
}
