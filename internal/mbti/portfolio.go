package mbti

import (
	"sort"

	"github.com/wonny/mbtistock/internal/financial"
)

const (
	DefaultPortfolioSize = 5
	MaxPortfolioSize     = 10
)

// Candidate is a stock with its latest ratio record
type Candidate struct {
	Ticker string
	Name   string
	Sector string
	Record financial.RatioRecord
}

// Holding is one weighted position
type Holding struct {
	Ticker             string                       `json:"ticker"`
	Name               string                       `json:"name"`
	Sector             string                       `json:"sector"`
	Weight             float64                      `json:"weight"`
	Score              int                          `json:"score"`
	ProfitabilityLevel financial.ProfitabilityLevel `json:"profitability_level"`
	StabilityLevel     financial.StabilityLevel     `json:"stability_level"`
	Reasons            []string                     `json:"reasons"`
}

// Portfolio is a theme applied to the current universe
type Portfolio struct {
	Theme    Theme     `json:"theme"`
	Holdings []Holding `json:"holdings"`
}

var profitabilityPoints = map[financial.ProfitabilityLevel]int{
	financial.ProfitabilityHigh:   2,
	financial.ProfitabilityMedium: 1,
	financial.ProfitabilityLow:    0,
	financial.ProfitabilityLoss:   -1,
}

// score: sector +3, preferred stability +2, profitability high +2 / medium +1 / loss -1.
// Conservative themes take a further -2 on risky balance sheets.
func score(th Theme, c Candidate) (int, []string) {
	var (
		total   int
		reasons []string
	)

	if th.prefersSector(c.Sector) {
		total += 3
		reasons = append(reasons, "선호 섹터: "+c.Sector)
	}
	if th.prefersStability(c.Record.StabilityLevel) {
		total += 2
		reasons = append(reasons, "재무 안정성: "+string(c.Record.StabilityLevel))
	}

	total += profitabilityPoints[c.Record.ProfitabilityLevel]
	switch c.Record.ProfitabilityLevel {
	case financial.ProfitabilityHigh, financial.ProfitabilityMedium:
		reasons = append(reasons, "수익성: "+string(c.Record.ProfitabilityLevel))
	}

	if th.RiskAppetite == RiskConservative && c.Record.StabilityLevel == financial.StabilityRisky {
		total -= 2
	}

	return total, reasons
}

// BuildPortfolio ranks candidates for the theme and weights the top size equally.
// Ties break on ticker so the result is stable for the same input.
func BuildPortfolio(th Theme, candidates []Candidate, size int) Portfolio {
	if size <= 0 {
		size = DefaultPortfolioSize
	}
	if size > MaxPortfolioSize {
		size = MaxPortfolioSize
	}

	ranked := make([]Holding, 0, len(candidates))
	for _, c := range candidates {
		s, reasons := score(th, c)
		ranked = append(ranked, Holding{
			Ticker:             c.Ticker,
			Name:               c.Name,
			Sector:             c.Sector,
			Score:              s,
			ProfitabilityLevel: c.Record.ProfitabilityLevel,
			StabilityLevel:     c.Record.StabilityLevel,
			Reasons:            reasons,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})

	if len(ranked) > size {
		ranked = ranked[:size]
	}
	assignWeights(ranked)

	return Portfolio{Theme: th, Holdings: ranked}
}

// assignWeights splits 100% in basis points; leftover points go to the top holdings
func assignWeights(holdings []Holding) {
	n := len(holdings)
	if n == 0 {
		return
	}
	each := 10000 / n
	rest := 10000 - each*n
	for i := range holdings {
		bp := each
		if i < rest {
			bp++
		}
		holdings[i].Weight = float64(bp) / 100
	}
}
