package mbti

import "github.com/wonny/mbtistock/internal/financial"

// RiskAppetite is how much balance-sheet risk a theme tolerates
type RiskAppetite string

const (
	RiskConservative RiskAppetite = "conservative"
	RiskBalanced     RiskAppetite = "balanced"
	RiskAggressive   RiskAppetite = "aggressive"
)

// Theme is the investment persona for one type
type Theme struct {
	Type               Type                       `json:"type"`
	Title              string                     `json:"title"`
	Description        string                     `json:"description"`
	Sectors            []string                   `json:"sectors"`
	PreferredStability []financial.StabilityLevel `json:"preferred_stability"`
	RiskAppetite       RiskAppetite               `json:"risk_appetite"`
}

var (
	safeOnly  = []financial.StabilityLevel{financial.StabilityStable}
	safeOrMid = []financial.StabilityLevel{financial.StabilityStable, financial.StabilityModerate}
	anyLevel  = []financial.StabilityLevel{financial.StabilityStable, financial.StabilityModerate, financial.StabilityRisky}
)

// ⭐ SSOT: MBTI → 투자 테마 매핑은 여기서만
var themes = map[Type]Theme{
	"INTJ": {Title: "전략적 설계자", Description: "장기 기술 패권에 베팅하는 구조적 성장 투자",
		Sectors: []string{"반도체", "IT"}, PreferredStability: safeOrMid, RiskAppetite: RiskBalanced},
	"INTP": {Title: "논리적 탐구자", Description: "기술의 원리를 파고드는 딥테크 투자",
		Sectors: []string{"반도체", "바이오"}, PreferredStability: anyLevel, RiskAppetite: RiskAggressive},
	"ENTJ": {Title: "대담한 지휘관", Description: "업종 1위 대형주 중심의 주도주 투자",
		Sectors: []string{"반도체", "자동차", "금융"}, PreferredStability: safeOrMid, RiskAppetite: RiskAggressive},
	"ENTP": {Title: "혁신적 발명가", Description: "새 시장을 여는 플랫폼과 신산업 투자",
		Sectors: []string{"IT", "2차전지", "게임"}, PreferredStability: anyLevel, RiskAppetite: RiskAggressive},
	"INFJ": {Title: "통찰력 있는 옹호자", Description: "사회적 가치와 실적을 함께 보는 ESG 투자",
		Sectors: []string{"바이오", "2차전지"}, PreferredStability: safeOrMid, RiskAppetite: RiskBalanced},
	"INFP": {Title: "이상주의 중재자", Description: "좋아하는 브랜드와 콘텐츠에 투자",
		Sectors: []string{"엔터", "게임", "바이오"}, PreferredStability: safeOrMid, RiskAppetite: RiskBalanced},
	"ENFJ": {Title: "정의로운 리더", Description: "생활 인프라를 책임지는 기업과 동행하는 투자",
		Sectors: []string{"통신", "금융", "바이오"}, PreferredStability: safeOrMid, RiskAppetite: RiskBalanced},
	"ENFP": {Title: "재기발랄한 활동가", Description: "트렌드를 먼저 타는 성장 테마 투자",
		Sectors: []string{"엔터", "IT", "게임"}, PreferredStability: anyLevel, RiskAppetite: RiskAggressive},
	"ISTJ": {Title: "청렴결백한 관리자", Description: "숫자로 검증된 저부채 우량주 투자",
		Sectors: []string{"금융", "통신", "철강"}, PreferredStability: safeOnly, RiskAppetite: RiskConservative},
	"ISFJ": {Title: "용감한 수호자", Description: "배당과 안정성을 우선하는 방어적 투자",
		Sectors: []string{"통신", "금융"}, PreferredStability: safeOnly, RiskAppetite: RiskConservative},
	"ESTJ": {Title: "엄격한 관리자", Description: "실적과 재무 규율이 확실한 대형 가치주 투자",
		Sectors: []string{"금융", "자동차", "철강"}, PreferredStability: safeOrMid, RiskAppetite: RiskConservative},
	"ESFJ": {Title: "사교적인 외교관", Description: "모두가 아는 국민 기업 중심의 투자",
		Sectors: []string{"통신", "자동차", "IT"}, PreferredStability: safeOnly, RiskAppetite: RiskConservative},
	"ISTP": {Title: "만능 재주꾼", Description: "제조 경쟁력이 뚜렷한 하드웨어 기업 투자",
		Sectors: []string{"자동차", "반도체", "화학"}, PreferredStability: safeOrMid, RiskAppetite: RiskBalanced},
	"ISFP": {Title: "호기심 많은 예술가", Description: "취향이 담긴 콘텐츠와 소비 기업 투자",
		Sectors: []string{"엔터", "게임"}, PreferredStability: anyLevel, RiskAppetite: RiskBalanced},
	"ESTP": {Title: "모험을 즐기는 사업가", Description: "변동성을 기회로 삼는 모멘텀 투자",
		Sectors: []string{"2차전지", "반도체", "화학"}, PreferredStability: anyLevel, RiskAppetite: RiskAggressive},
	"ESFP": {Title: "자유로운 연예인", Description: "지금 가장 핫한 소비·엔터 섹터 투자",
		Sectors: []string{"엔터", "게임", "IT"}, PreferredStability: anyLevel, RiskAppetite: RiskAggressive},
}

// ThemeFor returns the theme of a parsed type
func ThemeFor(t Type) Theme {
	th := themes[t]
	th.Type = t
	return th
}

// AllThemes returns the 16 themes in canonical type order
func AllThemes() []Theme {
	out := make([]Theme, 0, len(allTypes))
	for _, t := range allTypes {
		out = append(out, ThemeFor(t))
	}
	return out
}

func (th Theme) prefersSector(sector string) bool {
	for _, s := range th.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

func (th Theme) prefersStability(level financial.StabilityLevel) bool {
	for _, l := range th.PreferredStability {
		if l == level {
			return true
		}
	}
	return false
}
