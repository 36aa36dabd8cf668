package commands

import (
	"fmt"
	"strings"

	"github.com/wonny/mbtistock/internal/syncer"
)

// ═══════════════════════════════════════════════════════════
// 공통 출력 포맷
// ═══════════════════════════════════════════════════════════

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────"
)

// PrintJobHeader prints a formatted job header
func PrintJobHeader(title string, lines ...string) {
	fmt.Println()
	fmt.Println(ruleHeavy)
	fmt.Printf("  %s\n", title)
	if len(lines) > 0 {
		fmt.Println(ruleLight)
		for _, l := range lines {
			fmt.Printf("  %s\n", l)
		}
	}
	fmt.Println(ruleLight)
}

// PrintSummary prints the aggregate result of a sync run
func PrintSummary(title string, s syncer.Summary) {
	fmt.Println()
	fmt.Println(ruleLight)
	fmt.Printf("  %s\n", title)
	if s.FiscalYear != 0 {
		fmt.Printf("  Fiscal Year : %d\n", s.FiscalYear)
	}
	fmt.Printf("  Total       : %d\n", s.Total)
	fmt.Printf("  Success     : %d\n", s.Succeeded)
	fmt.Printf("  Failed      : %d\n", s.Failed)
	if len(s.FailedTickers) > 0 {
		fmt.Printf("  Failed List : %s\n", strings.Join(s.FailedTickers, ", "))
	}
	fmt.Printf("  Duration    : %.2fs\n", s.Duration.Seconds())
	fmt.Println(ruleHeavy)
}
