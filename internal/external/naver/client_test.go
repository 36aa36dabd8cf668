package naver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
)

const itemPage = `<html><head><meta charset="euc-kr"></head><body>
<div class="wrap_company"><h2><a href="#">삼성전자</a></h2></div>
<div class="rate_info">
  <p class="no_today"><em class="no_down"><span class="blind">76,600</span></em></p>
  <p class="no_exday">전일대비
    <em class="no_down"><span class="ico down">하락</span><span class="blind">1,000</span></em>
    <em class="no_down"><span class="ico minus">-</span><span class="blind">1.29</span><span class="per">%</span></em>
  </p>
</div>
</body></html>`

func encodeEUCKR(t *testing.T, s string) []byte {
	t.Helper()
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	return NewClient(httputil.New(log), srv.URL, log)
}

func TestDecodeEUCKR(t *testing.T) {
	got, err := DecodeEUCKR(encodeEUCKR(t, "삼성전자 주가"))
	require.NoError(t, err)
	assert.Equal(t, "삼성전자 주가", got)
}

func TestFetchQuote(t *testing.T) {
	body := encodeEUCKR(t, itemPage)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/main.naver", r.URL.Path)
		assert.Equal(t, "005930", r.URL.Query().Get("code"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		_, _ = w.Write(body)
	})

	q, err := client.FetchQuote(context.Background(), "005930")
	require.NoError(t, err)

	assert.Equal(t, "005930", q.Ticker)
	assert.Equal(t, "삼성전자", q.Name)
	assert.Equal(t, int64(76600), q.Price)
	assert.Equal(t, int64(-1000), q.Change)
	assert.InDelta(t, -1.29, q.ChangeRate, 1e-9)
	assert.False(t, q.FetchedAt.IsZero())
}

func TestFetchQuote_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodeEUCKR(t, `<html><body><p>종목을 찾을 수 없습니다</p></body></html>`))
	})

	_, err := client.FetchQuote(context.Background(), "999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuoteNotFound))
}

func TestFetchQuote_UpstreamStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchQuote(context.Background(), "005930")
	require.Error(t, err)

	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestParseQuote_Rising(t *testing.T) {
	html := `<div class="wrap_company"><h2><a>SK하이닉스</a></h2></div>
<p class="no_today"><span class="blind">130,500</span></p>
<p class="no_exday"><em class="no_up"><span class="blind">2,500</span></em>
<em class="no_up"><span class="blind">+1.95</span></em></p>`

	q, err := parseQuote(html)
	require.NoError(t, err)
	assert.Equal(t, "SK하이닉스", q.Name)
	assert.Equal(t, int64(130500), q.Price)
	assert.Equal(t, int64(2500), q.Change)
	assert.InDelta(t, 1.95, q.ChangeRate, 1e-9)
}
