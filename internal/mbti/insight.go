package mbti

import (
	"time"

	"github.com/wonny/mbtistock/pkg/kst"
)

// InsightCard is one gamified tip
type InsightCard struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// DailyInsight is the card picked for a type on a date
type DailyInsight struct {
	Type Type        `json:"type"`
	Date string      `json:"date"`
	Card InsightCard `json:"card"`
}

// InsightRotator picks one card per KST day. Same date and type, same card.
type InsightRotator struct {
	cards []InsightCard
}

// NewInsightRotator uses DefaultInsightCards when cards is empty
func NewInsightRotator(cards []InsightCard) *InsightRotator {
	if len(cards) == 0 {
		cards = DefaultInsightCards()
	}
	return &InsightRotator{cards: cards}
}

// For returns the card of the day; each type is offset by its canonical index
// so different types see different cards on the same day.
func (r *InsightRotator) For(t Type, now time.Time) DailyInsight {
	day := kst.Truncate(now)
	offset := t.index()
	if offset < 0 {
		offset = 0
	}
	n := len(r.cards)
	idx := ((daysSinceEpoch(day)+offset)%n + n) % n

	return DailyInsight{
		Type: t,
		Date: day.Format("2006-01-02"),
		Card: r.cards[idx],
	}
}

// daysSinceEpoch counts calendar days of a KST date
func daysSinceEpoch(day time.Time) int {
	civil := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(civil.Unix() / 86400)
}

// DefaultInsightCards is the built-in deck
func DefaultInsightCards() []InsightCard {
	return []InsightCard{
		{ID: "op-margin", Category: "재무", Title: "영업이익률 읽기",
			Body: "영업이익률 15% 이상이면 본업 경쟁력이 높은 편이에요. 매출이 늘어도 이익률이 떨어진다면 원가 부담을 의심해 보세요."},
		{ID: "debt-ratio", Category: "재무", Title: "부채비율의 기준선",
			Body: "부채비율 50% 이하는 안정, 150%를 넘으면 위험 신호로 봐요. 다만 금융업은 구조상 부채비율이 높게 나와요."},
		{ID: "roe", Category: "재무", Title: "ROE는 주주의 수익률",
			Body: "ROE는 자기자본으로 얼마를 벌었는지 보여줘요. 부채를 늘려 ROE를 끌어올린 건 아닌지 부채비율과 함께 확인하세요."},
		{ID: "diversify", Category: "전략", Title: "한 바구니에 담지 않기",
			Body: "같은 섹터만 담으면 업황 하나에 포트폴리오 전체가 흔들려요. 성향에 맞는 섹터라도 2~3개로 나눠 보세요."},
		{ID: "fiscal-lag", Category: "데이터", Title: "왜 2년 전 재무제표일까",
			Body: "사업보고서는 결산 후 3개월 뒤에 공시되고 정정도 잦아요. 확정된 숫자를 쓰려면 한 해 더 여유를 두는 게 안전해요."},
		{ID: "volume", Category: "시장", Title: "거래량이 말해주는 것",
			Body: "가격이 오를 때 거래량도 함께 늘면 추세에 힘이 실린 거예요. 거래량 없는 급등은 쉽게 되돌려질 수 있어요."},
		{ID: "market-cap", Category: "시장", Title: "시가총액으로 체급 보기",
			Body: "시가총액은 회사 전체의 몸값이에요. 같은 주가라도 발행 주식 수에 따라 기업 규모는 전혀 달라요."},
		{ID: "emotion", Category: "심리", Title: "감정과 거리 두기",
			Body: "급등 뉴스에 바로 사고 싶다면 하루만 기다려 보세요. 성향과 맞지 않는 매매는 후회로 남기 쉬워요."},
	}
}
