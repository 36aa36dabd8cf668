package naver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrQuoteNotFound means the item page had no price block (delisted or unknown code)
var ErrQuoteNotFound = errors.New("naver quote not found")

// Quote is the headline quote from the Naver item page
type Quote struct {
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Change     int64     `json:"change"`
	ChangeRate float64   `json:"change_rate"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// FetchQuote scrapes /item/main.naver for the current price
// ⭐ SSOT: Naver 시세 조회는 이 함수에서만
func (c *Client) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	params := url.Values{}
	params.Set("code", ticker)

	html, err := c.fetchHTML(ctx, "/item/main.naver", params)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", ticker, err)
	}

	quote, err := parseQuote(html)
	if err != nil {
		return nil, fmt.Errorf("parse quote %s: %w", ticker, err)
	}
	quote.Ticker = ticker
	quote.FetchedAt = time.Now()

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  quote.Price,
	}).Debug("Fetched quote")

	return quote, nil
}

func parseQuote(html string) (*Quote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	priceText := doc.Find("p.no_today .blind").First().Text()
	if strings.TrimSpace(priceText) == "" {
		return nil, ErrQuoteNotFound
	}

	q := &Quote{
		Name:  strings.TrimSpace(doc.Find("div.wrap_company h2 a").First().Text()),
		Price: parseNumber(priceText),
	}

	// no_exday: 1st em = 전일대비 금액, 2nd em = 등락률
	doc.Find("p.no_exday em").EachWithBreak(func(i int, em *goquery.Selection) bool {
		sign := int64(1)
		if em.HasClass("no_down") {
			sign = -1
		}
		value := em.Find(".blind").First().Text()

		switch i {
		case 0:
			q.Change = sign * parseNumber(value)
		case 1:
			rate, _ := strconv.ParseFloat(cleanNumber(value), 64)
			q.ChangeRate = float64(sign) * rate
			return false
		}
		return true
	})

	return q, nil
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	return strings.TrimPrefix(s, "-")
}

func parseNumber(s string) int64 {
	n, _ := strconv.ParseInt(cleanNumber(s), 10, 64)
	return n
}
