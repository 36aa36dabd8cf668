package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/mbtistock/internal/external/naver"
	"github.com/wonny/mbtistock/pkg/logger"
)

// NaverHandler proxies the EUC-KR Naver item page as UTF-8 JSON
type NaverHandler struct {
	quotes QuoteFetcher
	logger *logger.Logger
}

// NewNaverHandler creates a new proxy handler
func NewNaverHandler(quotes QuoteFetcher, log *logger.Logger) *NaverHandler {
	return &NaverHandler{quotes: quotes, logger: log}
}

// GetQuote returns the current Naver quote
// GET /api/naver/quote/{ticker}
func (h *NaverHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	if !validTicker(ticker) {
		respondError(w, http.StatusBadRequest, "invalid ticker")
		return
	}

	quote, err := h.quotes.FetchQuote(r.Context(), ticker)
	if errors.Is(err, naver.ErrQuoteNotFound) {
		respondError(w, http.StatusNotFound, "no quote for "+ticker)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Naver quote failed")
		respondError(w, http.StatusBadGateway, "Failed to fetch quote")
		return
	}

	respondData(w, quote)
}
