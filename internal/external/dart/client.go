package dart

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
)

// Client handles communication with the OpenDART API
// ⭐ SSOT: DART API 호출은 이 클라이언트에서만
type Client struct {
	http    *httputil.Client
	logger  *logger.Logger
	apiKey  string
	baseURL string
}

// Report codes (reprt_code)
const (
	ReportAnnual      = "11011" // 사업보고서
	ReportHalf        = "11012" // 반기보고서
	ReportQ1          = "11013" // 1분기보고서
	ReportQ3          = "11014" // 3분기보고서
	FsDivConsolidated = "CFS"
	FsDivSeparate     = "OFS"
)

// Status codes returned in the JSON envelope
const (
	statusOK     = "000"
	statusNoData = "013"
)

// ErrNoData is returned when DART answers 013 (조회된 데이타가 없습니다)
var ErrNoData = errors.New("dart: no data")

// APIError is any non-000/013 status in the DART envelope
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dart API error: %s - %s", e.Status, e.Message)
}

// NewClient creates a new DART API client.
// DART requires legacy TLS configuration (RSA key exchange).
func NewClient(apiKey, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://opendart.fss.or.kr"
	}
	return &Client{
		http:    httputil.NewWithHTTPClient(newLegacyCompatibleClient(30*time.Second), log),
		logger:  log.Module("dart"),
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// newLegacyCompatibleClient creates an HTTP client compatible with legacy TLS servers.
// DART server requires RSA key exchange cipher suites which Go 1.22+ no longer offers by default.
func newLegacyCompatibleClient(timeout time.Duration) *http.Client {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,

			// RSA KEX (legacy) - required for DART API
			tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_RSA_WITH_AES_128_CBC_SHA,
			tls.TLS_RSA_WITH_AES_256_CBC_SHA,
		},
	}

	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		ForceAttemptHTTP2: false,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		TLSClientConfig:       tlsCfg,
		MaxIdleConns:          10,
		MaxConnsPerHost:       2,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// GetDARTURL builds the DART disclosure viewer URL for a receipt number
func GetDARTURL(rceptNo string) string {
	return "https://dart.fss.or.kr/dsaf001/main.do?rcpNo=" + rceptNo
}
