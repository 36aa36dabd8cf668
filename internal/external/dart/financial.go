package dart

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/wonny/mbtistock/internal/financial"
)

// AccountItem is one row of fnlttSinglAcntAll (단일회사 전체 재무제표)
type AccountItem struct {
	ReceiptNo     string `json:"rcept_no"`
	ReportCode    string `json:"reprt_code"`
	BusinessYear  string `json:"bsns_year"`
	CorpCode      string `json:"corp_code"`
	SjDiv         string `json:"sj_div"`
	SjName        string `json:"sj_nm"`
	AccountID     string `json:"account_id"`
	AccountName   string `json:"account_nm"`
	AccountDetail string `json:"account_detail"`
	ThstrmName    string `json:"thstrm_nm"`
	ThstrmAmount  string `json:"thstrm_amount"`
	FrmtrmAmount  string `json:"frmtrm_amount"`
	Ord           string `json:"ord"`
	Currency      string `json:"currency"`
}

// FinancialStatementResponse is the fnlttSinglAcntAll envelope
type FinancialStatementResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	List    []AccountItem `json:"list"`
}

// nonStandardAccountID is what DART puts in account_id when the filer used no taxonomy tag
const nonStandardAccountID = "-표준계정코드 미사용-"

// ToLineItem converts a DART row into the extractor's input shape
func (a AccountItem) ToLineItem() financial.StatementLineItem {
	accountID := a.AccountID
	if accountID == nonStandardAccountID {
		accountID = ""
	}
	return financial.StatementLineItem{
		ReceiptNo:         a.ReceiptNo,
		ReportCode:        a.ReportCode,
		BusinessYear:      a.BusinessYear,
		CorpCode:          a.CorpCode,
		StatementDivision: financial.StatementDivision(a.SjDiv),
		AccountName:       a.AccountName,
		AccountID:         accountID,
		CurrentAmount:     a.ThstrmAmount,
	}
}

// StatementQuery selects one filing
type StatementQuery struct {
	CorpCode   string
	Year       int
	ReportCode string // default ReportAnnual
	FsDiv      string // default FsDivConsolidated
}

// FetchFinancialStatements fetches every disclosed account of one filing.
// Returns ErrNoData for status 013 and *APIError for other non-000 statuses.
// ⭐ SSOT: DART 재무제표 호출은 이 함수에서만
func (c *Client) FetchFinancialStatements(ctx context.Context, q StatementQuery) ([]financial.StatementLineItem, error) {
	if q.ReportCode == "" {
		q.ReportCode = ReportAnnual
	}
	if q.FsDiv == "" {
		q.FsDiv = FsDivConsolidated
	}

	params := url.Values{}
	params.Set("crtfc_key", c.apiKey)
	params.Set("corp_code", q.CorpCode)
	params.Set("bsns_year", strconv.Itoa(q.Year))
	params.Set("reprt_code", q.ReportCode)
	params.Set("fs_div", q.FsDiv)

	fullURL := fmt.Sprintf("%s/api/fnlttSinglAcntAll.json?%s", c.baseURL, params.Encode())

	var result FinancialStatementResponse
	if err := c.http.GetJSON(ctx, fullURL, &result); err != nil {
		return nil, fmt.Errorf("fetch statements %s/%d: %w", q.CorpCode, q.Year, err)
	}

	switch result.Status {
	case statusOK:
	case statusNoData:
		return nil, ErrNoData
	default:
		return nil, &APIError{Status: result.Status, Message: result.Message}
	}

	if len(result.List) == 0 {
		return nil, ErrNoData
	}

	items := make([]financial.StatementLineItem, 0, len(result.List))
	for _, row := range result.List {
		items = append(items, row.ToLineItem())
	}

	c.logger.WithFields(map[string]interface{}{
		"corp_code": q.CorpCode,
		"year":      q.Year,
		"count":     len(items),
	}).Debug("Fetched financial statements")

	return items, nil
}
