package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/wonny/mbtistock/internal/external/naver"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/internal/store"
)

// StockReader is the read side of the stocks table
type StockReader interface {
	ListAll(ctx context.Context) ([]store.Stock, error)
	Get(ctx context.Context, ticker string) (*store.Stock, error)
}

// PriceReader reads daily price history
type PriceReader interface {
	GetHistory(ctx context.Context, ticker string, from, to time.Time) ([]store.Price, error)
}

// FinancialReader reads ratio records
type FinancialReader interface {
	GetLatest(ctx context.Context, ticker string) (*financial.RatioRecord, error)
	ListLatest(ctx context.Context) ([]financial.RatioRecord, error)
}

// QuoteFetcher fetches a live Naver quote
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*naver.Quote, error)
}

// KRX 단축코드: 6 chars, digits or upper-case letters
var tickerPattern = regexp.MustCompile(`^[0-9A-Z]{6}$`)

func validTicker(ticker string) bool {
	return tickerPattern.MatchString(ticker)
}

// intParam reads a positive int query param; def when absent, ok=false when malformed
func intParam(r *http.Request, name string, def, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}

func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
