package dataportal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
)

// Client talks to 공공데이터포털 금융위원회_주식시세정보 (GetStockSecuritiesInfoService)
// ⭐ SSOT: 공공데이터포털 호출은 이 클라이언트에서만
type Client struct {
	http       *httputil.Client
	logger     *logger.Logger
	serviceKey string
	baseURL    string
	pageSize   int
}

// NewClient creates a client. serviceKey is the *decoded* key from the portal;
// it is URL-encoded once when the request is built.
func NewClient(httpClient *httputil.Client, serviceKey, baseURL string, pageSize int, log *logger.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		http:       httpClient,
		logger:     log.Module("dataportal"),
		serviceKey: serviceKey,
		baseURL:    baseURL,
		pageSize:   pageSize,
	}
}

const resultCodeOK = "00"

// APIError is a non-00 resultCode in the response header
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data portal error: %s - %s", e.Code, e.Message)
}

type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			NumOfRows  int        `json:"numOfRows"`
			PageNo     int        `json:"pageNo"`
			TotalCount int        `json:"totalCount"`
			Items      priceItems `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type priceItems struct {
	Item []PriceItem `json:"item"`
}

// UnmarshalJSON tolerates the portal's `"items": ""` for empty result pages
func (p *priceItems) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		p.Item = nil
		return nil
	}

	type plain priceItems
	var out plain
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*p = priceItems(out)
	return nil
}

// PriceItem is one getStockPriceInfo row; every field arrives as a string
type PriceItem struct {
	BasDt      string `json:"basDt"`
	SrtnCd     string `json:"srtnCd"`
	IsinCd     string `json:"isinCd"`
	ItmsNm     string `json:"itmsNm"`
	MrktCtg    string `json:"mrktCtg"`
	Clpr       string `json:"clpr"`
	Vs         string `json:"vs"`
	FltRt      string `json:"fltRt"`
	Mkp        string `json:"mkp"`
	Hipr       string `json:"hipr"`
	Lopr       string `json:"lopr"`
	Trqu       string `json:"trqu"`
	TrPrc      string `json:"trPrc"`
	LstgStCnt  string `json:"lstgStCnt"`
	MrktTotAmt string `json:"mrktTotAmt"`
}
