package financial

import (
	"strconv"
	"strings"
)

// AccountQuery describes one account to resolve.
// Divisions, Names and Tags are tried in the order given.
type AccountQuery struct {
	Divisions []StatementDivision
	Names     []string
	Tags      []string
}

// matcher is one resolution strategy: which candidates it reads from the query
// and how a single line item is tested against one candidate.
type matcher struct {
	name       string
	candidates func(q AccountQuery) []string
	match      func(item StatementLineItem, candidate string) bool
}

// matchers run in priority order; the first hit of the first matcher wins.
var matchers = []matcher{
	{
		name:       "exact_name",
		candidates: func(q AccountQuery) []string { return q.Names },
		match: func(item StatementLineItem, candidate string) bool {
			return item.AccountName == candidate
		},
	},
	{
		name:       "standard_tag",
		candidates: func(q AccountQuery) []string { return q.Tags },
		match: func(item StatementLineItem, candidate string) bool {
			return item.AccountID == candidate
		},
	},
	{
		name:       "name_contains",
		candidates: func(q AccountQuery) []string { return q.Names },
		match: func(item StatementLineItem, candidate string) bool {
			return strings.Contains(item.AccountName, candidate)
		},
	},
}

// FindAccount returns the parsed amount of the first line item matching q, or 0.
func FindAccount(items []StatementLineItem, q AccountQuery) int64 {
	item, ok := ResolveAccount(items, q)
	if !ok {
		return 0
	}
	return ParseAmount(item.CurrentAmount)
}

// ResolveAccount is FindAccount without the amount parsing, for callers that need the row.
func ResolveAccount(items []StatementLineItem, q AccountQuery) (StatementLineItem, bool) {
	for _, m := range matchers {
		candidates := m.candidates(q)
		if len(candidates) == 0 {
			continue
		}
		for _, div := range q.Divisions {
			for _, candidate := range candidates {
				for _, item := range items {
					if item.StatementDivision == div && m.match(item, candidate) {
						return item, true
					}
				}
			}
		}
	}
	return StatementLineItem{}, false
}

// ParseAmount converts a disclosed amount ("1,234,567", "-12,000", "-", "") to int64.
// Anything unparseable is 0.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
