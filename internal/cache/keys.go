package cache

import "fmt"

// StocksKey holds the stock list, including has_financial_data
const StocksKey = "stocks"

// PortfolioKey holds one theme portfolio of the given size
func PortfolioKey(mbtiType string, size int) string {
	return fmt.Sprintf("portfolio:%s:%d", mbtiType, size)
}

// FinancialKeys lists every key a financial sync makes stale: the stock list
// and each portfolio size of each type.
func FinancialKeys(types []string, maxSize int) []string {
	keys := make([]string, 0, 1+len(types)*maxSize)
	keys = append(keys, StocksKey)
	for _, t := range types {
		for size := 1; size <= maxSize; size++ {
			keys = append(keys, PortfolioKey(t, size))
		}
	}
	return keys
}
