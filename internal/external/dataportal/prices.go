package dataportal

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/mbtistock/pkg/kst"
)

// DailyPrice is one trading day of one stock
type DailyPrice struct {
	Ticker       string
	Name         string
	Market       string
	TradeDate    time.Time
	Open         int64
	High         int64
	Low          int64
	Close        int64
	Change       int64
	ChangeRate   float64
	Volume       int64
	TradingValue int64
	MarketCap    int64
}

// PriceQuery selects a ticker over an inclusive date range
type PriceQuery struct {
	Ticker string
	From   time.Time
	To     time.Time
}

// FetchPrices pages through getStockPriceInfo until totalCount rows are read.
// ⭐ SSOT: 일별 시세 호출은 이 함수에서만
func (c *Client) FetchPrices(ctx context.Context, q PriceQuery) ([]DailyPrice, error) {
	var prices []DailyPrice

	for page := 1; ; page++ {
		env, err := c.fetchPage(ctx, q, page)
		if err != nil {
			return nil, err
		}

		body := env.Response.Body
		for _, item := range body.Items.Item {
			// likeSrtnCd is a prefix match
			if item.SrtnCd != q.Ticker {
				continue
			}
			p, ok := item.toDailyPrice()
			if !ok {
				continue
			}
			prices = append(prices, p)
		}

		if len(body.Items.Item) == 0 || page*c.pageSize >= body.TotalCount {
			break
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": q.Ticker,
		"from":   q.From.Format("2006-01-02"),
		"to":     q.To.Format("2006-01-02"),
		"count":  len(prices),
	}).Debug("Fetched daily prices")

	return prices, nil
}

func (c *Client) fetchPage(ctx context.Context, q PriceQuery, page int) (*envelope, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("resultType", "json")
	params.Set("numOfRows", strconv.Itoa(c.pageSize))
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("likeSrtnCd", q.Ticker)
	params.Set("beginBasDt", q.From.In(kst.Location).Format("20060102"))
	// endBasDt is exclusive
	params.Set("endBasDt", q.To.In(kst.Location).AddDate(0, 0, 1).Format("20060102"))

	fullURL := fmt.Sprintf("%s/getStockPriceInfo?%s", c.baseURL, params.Encode())

	var env envelope
	if err := c.http.GetJSON(ctx, fullURL, &env); err != nil {
		return nil, fmt.Errorf("fetch prices %s page %d: %w", q.Ticker, page, err)
	}

	if code := env.Response.Header.ResultCode; code != resultCodeOK {
		return nil, &APIError{Code: code, Message: env.Response.Header.ResultMsg}
	}

	return &env, nil
}

func (item PriceItem) toDailyPrice() (DailyPrice, bool) {
	date, err := time.ParseInLocation("20060102", item.BasDt, kst.Location)
	if err != nil {
		return DailyPrice{}, false
	}

	rate, _ := strconv.ParseFloat(strings.TrimSpace(item.FltRt), 64)

	return DailyPrice{
		Ticker:       item.SrtnCd,
		Name:         item.ItmsNm,
		Market:       item.MrktCtg,
		TradeDate:    date,
		Open:         parseInt(item.Mkp),
		High:         parseInt(item.Hipr),
		Low:          parseInt(item.Lopr),
		Close:        parseInt(item.Clpr),
		Change:       parseInt(item.Vs),
		ChangeRate:   rate,
		Volume:       parseInt(item.Trqu),
		TradingValue: parseInt(item.TrPrc),
		MarketCap:    parseInt(item.MrktTotAmt),
	}, true
}

// parseInt reads "1,234" style integers; anything else is 0
func parseInt(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
