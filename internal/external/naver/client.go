package naver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
)

// Client handles communication with Naver Finance
// ⭐ SSOT: Naver Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Naver Finance client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://finance.naver.com"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.Module("naver"),
		baseURL:    baseURL,
	}
}

// fetchHTML fetches a page and returns it as UTF-8.
// finance.naver.com serves EUC-KR.
func (c *Client) fetchHTML(ctx context.Context, path string, params url.Values) (string, error) {
	fullURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", fullURL, params.Encode())
	}

	header := http.Header{}
	header.Set("Referer", c.baseURL+"/")

	body, err := c.httpClient.GetBytes(ctx, fullURL, header)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}

	html, err := DecodeEUCKR(body)
	if err != nil {
		return "", fmt.Errorf("decode EUC-KR: %w", err)
	}

	return html, nil
}

// DecodeEUCKR converts an EUC-KR byte stream to a UTF-8 string
func DecodeEUCKR(data []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), korean.EUCKR.NewDecoder())
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(utf8Data), nil
}
