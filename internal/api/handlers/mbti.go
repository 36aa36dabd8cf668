package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/mbtistock/internal/cache"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/internal/mbti"
	"github.com/wonny/mbtistock/pkg/kst"
	"github.com/wonny/mbtistock/pkg/logger"
)

// MBTIHandler serves themes, portfolios and daily insights
// ⭐ SSOT: MBTI API 핸들러는 이 구조체에서만
type MBTIHandler struct {
	stocks     StockReader
	financials FinancialReader
	cache      *cache.Cache
	insights   *mbti.InsightRotator
	now        func() time.Time
	logger     *logger.Logger
}

// NewMBTIHandler creates a new MBTI handler
func NewMBTIHandler(stocks StockReader, financials FinancialReader, c *cache.Cache, insights *mbti.InsightRotator, log *logger.Logger) *MBTIHandler {
	return &MBTIHandler{
		stocks:     stocks,
		financials: financials,
		cache:      c,
		insights:   insights,
		now:        kst.Now,
		logger:     log,
	}
}

// ListThemes returns all 16 themes
// GET /api/mbti
func (h *MBTIHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	respondData(w, mbti.AllThemes())
}

// GetPortfolio builds the theme portfolio from each stock's latest financials
// GET /api/mbti/{type}/portfolio?size=5
func (h *MBTIHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	t, err := mbti.ParseType(mux.Vars(r)["type"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	size, ok := intParam(r, "size", mbti.DefaultPortfolioSize, mbti.MaxPortfolioSize)
	if !ok {
		respondError(w, http.StatusBadRequest, "size must be a positive integer")
		return
	}

	key := cache.PortfolioKey(t.String(), size)
	var portfolio mbti.Portfolio
	err = h.cache.GetOrLoad(r.Context(), key, &portfolio, func(ctx context.Context) (interface{}, error) {
		candidates, err := h.candidates(ctx)
		if err != nil {
			return nil, err
		}
		return mbti.BuildPortfolio(mbti.ThemeFor(t), candidates, size), nil
	})
	if err != nil {
		h.logger.WithError(err).WithField("type", t).Error("Failed to build portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to build portfolio")
		return
	}
	if portfolio.Holdings == nil {
		portfolio.Holdings = []mbti.Holding{}
	}

	respondData(w, portfolio)
}

// candidates joins stocks with their latest ratio record; stocks without one are skipped
func (h *MBTIHandler) candidates(ctx context.Context) ([]mbti.Candidate, error) {
	stocks, err := h.stocks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	records, err := h.financials.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list financials: %w", err)
	}

	byTicker := make(map[string]financial.RatioRecord, len(records))
	for _, rec := range records {
		byTicker[rec.Ticker] = rec
	}

	out := make([]mbti.Candidate, 0, len(records))
	for _, s := range stocks {
		rec, ok := byTicker[s.Ticker]
		if !ok {
			continue
		}
		out = append(out, mbti.Candidate{Ticker: s.Ticker, Name: s.Name, Sector: s.Sector, Record: rec})
	}
	return out, nil
}

// GetInsight returns today's insight card for the type
// GET /api/mbti/{type}/insight
func (h *MBTIHandler) GetInsight(w http.ResponseWriter, r *http.Request) {
	t, err := mbti.ParseType(mux.Vars(r)["type"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondData(w, h.insights.For(t, h.now()))
}
