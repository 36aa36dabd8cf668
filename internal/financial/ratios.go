package financial

import "math"

var incomeDivisions = []StatementDivision{DivisionIncomeStatement, DivisionComprehensiveIncome}
var balanceDivisions = []StatementDivision{DivisionBalanceSheet}

// Account lookups used by CalculateRatios. Label variants differ between filers,
// and loss-making filers often label the same line "영업손실" or "당기순손실".
var (
	TotalAssetsQuery = AccountQuery{
		Divisions: balanceDivisions,
		Names:     []string{"자산총계"},
		Tags:      []string{"ifrs-full_Assets"},
	}
	TotalLiabilitiesQuery = AccountQuery{
		Divisions: balanceDivisions,
		Names:     []string{"부채총계"},
		Tags:      []string{"ifrs-full_Liabilities"},
	}
	TotalEquityQuery = AccountQuery{
		Divisions: balanceDivisions,
		Names:     []string{"자본총계"},
		Tags:      []string{"ifrs-full_Equity"},
	}
	RevenueQuery = AccountQuery{
		Divisions: incomeDivisions,
		Names:     []string{"매출액", "수익(매출액)", "영업수익", "매출"},
		Tags:      []string{"ifrs-full_Revenue"},
	}
	OperatingIncomeQuery = AccountQuery{
		Divisions: incomeDivisions,
		Names:     []string{"영업이익", "영업이익(손실)", "영업손실", "영업손익"},
		Tags:      []string{"dart_OperatingIncomeLoss"},
	}
	NetIncomeQuery = AccountQuery{
		Divisions: incomeDivisions,
		Names:     []string{"당기순이익", "당기순이익(손실)", "당기순손실", "연결당기순이익", "당기순손익"},
		Tags:      []string{"ifrs-full_ProfitLoss"},
	}
)

const wonPerMillion = 1_000_000

// CalculateRatios resolves the fixed account set and derives ratios and levels.
// Pure: the same items always give the same Ratios.
func CalculateRatios(items []StatementLineItem) Ratios {
	totalAssets := FindAccount(items, TotalAssetsQuery)
	totalLiabilities := FindAccount(items, TotalLiabilitiesQuery)
	totalEquity := FindAccount(items, TotalEquityQuery)
	revenue := FindAccount(items, RevenueQuery)
	operatingIncome := FindAccount(items, OperatingIncomeQuery)
	netIncome := FindAccount(items, NetIncomeQuery)

	var operatingMargin, netProfitMargin, debtRatio, roe float64
	if revenue > 0 {
		operatingMargin = float64(operatingIncome) / float64(revenue) * 100
		netProfitMargin = float64(netIncome) / float64(revenue) * 100
	}
	if totalEquity > 0 {
		debtRatio = float64(totalLiabilities) / float64(totalEquity) * 100
		roe = float64(netIncome) / float64(totalEquity) * 100
	}

	// levels are decided on the unrounded ratios
	return Ratios{
		Revenue:          toMillions(revenue),
		OperatingIncome:  toMillions(operatingIncome),
		NetIncome:        toMillions(netIncome),
		TotalAssets:      toMillions(totalAssets),
		TotalLiabilities: toMillions(totalLiabilities),
		TotalEquity:      toMillions(totalEquity),

		OperatingMargin: Round2(operatingMargin),
		NetProfitMargin: Round2(netProfitMargin),
		DebtRatio:       Round2(debtRatio),
		ROE:             Round2(roe),

		ProfitabilityLevel: ClassifyProfitability(operatingMargin),
		StabilityLevel:     ClassifyStability(debtRatio),
		GrowthLevel:        GrowthStable,
	}
}

// ClassifyProfitability buckets an operating margin (%)
func ClassifyProfitability(operatingMargin float64) ProfitabilityLevel {
	switch {
	case operatingMargin >= 15:
		return ProfitabilityHigh
	case operatingMargin >= 5:
		return ProfitabilityMedium
	case operatingMargin > 0:
		return ProfitabilityLow
	default:
		return ProfitabilityLoss
	}
}

// ClassifyStability buckets a debt ratio (%)
func ClassifyStability(debtRatio float64) StabilityLevel {
	switch {
	case debtRatio <= 50:
		return StabilityStable
	case debtRatio <= 150:
		return StabilityModerate
	default:
		return StabilityRisky
	}
}

// Round2 rounds half-up to 2 decimal places
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func toMillions(won int64) int64 {
	return int64(math.Floor(float64(won)/wonPerMillion + 0.5))
}
