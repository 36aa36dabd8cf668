package financial

import "time"

// StatementDivision identifies which primary statement a line item belongs to (DART sj_div)
type StatementDivision string

const (
	DivisionBalanceSheet        StatementDivision = "BS"  // 재무상태표
	DivisionIncomeStatement     StatementDivision = "IS"  // 손익계산서
	DivisionComprehensiveIncome StatementDivision = "CIS" // 포괄손익계산서
)

// StatementLineItem is one disclosed account row. Rows are read-only once fetched.
type StatementLineItem struct {
	ReceiptNo         string            `json:"rcept_no"`
	ReportCode        string            `json:"reprt_code"`
	BusinessYear      string            `json:"bsns_year"`
	CorpCode          string            `json:"corp_code"`
	StatementDivision StatementDivision `json:"sj_div"`
	AccountName       string            `json:"account_nm"`
	AccountID         string            `json:"account_id"` // 표준계정코드, empty when the filer used none
	CurrentAmount     string            `json:"thstrm_amount"`
}

// ProfitabilityLevel buckets operating margin
type ProfitabilityLevel string

const (
	ProfitabilityHigh   ProfitabilityLevel = "high"
	ProfitabilityMedium ProfitabilityLevel = "medium"
	ProfitabilityLow    ProfitabilityLevel = "low"
	ProfitabilityLoss   ProfitabilityLevel = "loss"
)

// StabilityLevel buckets debt ratio
type StabilityLevel string

const (
	StabilityStable   StabilityLevel = "stable"
	StabilityModerate StabilityLevel = "moderate"
	StabilityRisky    StabilityLevel = "risky"
)

// GrowthLevel is not derived from data yet; growth needs a prior-year comparison.
type GrowthLevel string

const GrowthStable GrowthLevel = "stable"

// Ratios is the output of CalculateRatios.
// Amounts are in millions of KRW, ratios are percentages rounded to 2 decimals.
type Ratios struct {
	Revenue          int64 `json:"revenue"`
	OperatingIncome  int64 `json:"operating_income"`
	NetIncome        int64 `json:"net_income"`
	TotalAssets      int64 `json:"total_assets"`
	TotalLiabilities int64 `json:"total_liabilities"`
	TotalEquity      int64 `json:"total_equity"`

	OperatingMargin float64 `json:"operating_margin"`
	NetProfitMargin float64 `json:"net_profit_margin"`
	DebtRatio       float64 `json:"debt_ratio"`
	ROE             float64 `json:"roe"`

	ProfitabilityLevel ProfitabilityLevel `json:"profitability_level"`
	StabilityLevel     StabilityLevel     `json:"stability_level"`
	GrowthLevel        GrowthLevel        `json:"growth_level"`
}

// RatioRecord is Ratios keyed by (Ticker, FiscalYear). It is always written whole.
type RatioRecord struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	ReceiptNo  string `json:"rcept_no,omitempty"` // filing the ratios were computed from
	Ratios
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRatioRecord attaches the persistence key to computed ratios
func NewRatioRecord(ticker string, fiscalYear int, r Ratios) RatioRecord {
	return RatioRecord{Ticker: ticker, FiscalYear: fiscalYear, Ratios: r}
}
