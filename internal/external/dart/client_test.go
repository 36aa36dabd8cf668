package dart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
)

const statementsOK = `{
  "status": "000",
  "message": "정상",
  "list": [
    {"rcept_no":"20240312000736","reprt_code":"11011","bsns_year":"2023","corp_code":"00126380","sj_div":"BS","sj_nm":"재무상태표","account_id":"ifrs-full_Assets","account_nm":"자산총계","thstrm_amount":"455905980000000"},
    {"rcept_no":"20240312000736","reprt_code":"11011","bsns_year":"2023","corp_code":"00126380","sj_div":"CIS","sj_nm":"포괄손익계산서","account_id":"-표준계정코드 미사용-","account_nm":"기타영업수익","thstrm_amount":"1,000"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL, logger.Nop())
}

func TestFetchFinancialStatements(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fnlttSinglAcntAll.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("crtfc_key"))
		assert.Equal(t, "00126380", q.Get("corp_code"))
		assert.Equal(t, "2023", q.Get("bsns_year"))
		assert.Equal(t, ReportAnnual, q.Get("reprt_code"))
		assert.Equal(t, FsDivConsolidated, q.Get("fs_div"))
		w.Write([]byte(statementsOK))
	})

	items, err := client.FetchFinancialStatements(context.Background(), StatementQuery{CorpCode: "00126380", Year: 2023})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, financial.DivisionBalanceSheet, items[0].StatementDivision)
	assert.Equal(t, "ifrs-full_Assets", items[0].AccountID)
	assert.Equal(t, "455905980000000", items[0].CurrentAmount)
	assert.Equal(t, "", items[1].AccountID, "non-standard marker is cleared")
	assert.Equal(t, financial.DivisionComprehensiveIncome, items[1].StatementDivision)
}

func TestFetchFinancialStatements_NoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"013","message":"조회된 데이타가 없습니다."}`))
	})

	_, err := client.FetchFinancialStatements(context.Background(), StatementQuery{CorpCode: "x", Year: 2023})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetchFinancialStatements_EmptyListIsNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"000","message":"정상","list":[]}`))
	})

	_, err := client.FetchFinancialStatements(context.Background(), StatementQuery{CorpCode: "x", Year: 2023})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetchFinancialStatements_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"020","message":"요청 제한을 초과하였습니다."}`))
	})

	_, err := client.FetchFinancialStatements(context.Background(), StatementQuery{CorpCode: "x", Year: 2023})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "020", apiErr.Status)
}

func TestFetchFinancialStatements_TransportStatus(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchFinancialStatements(context.Background(), StatementQuery{CorpCode: "x", Year: 2023})
	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, 1, calls, "no retries")
}

func TestGetDARTURL(t *testing.T) {
	assert.Equal(t, "https://dart.fss.or.kr/dsaf001/main.do?rcpNo=20240115000123", GetDARTURL("20240115000123"))
}
