package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(DefaultProfile())

	first := b.Build("반려동물 산책 대행", "바쁜 직장인을 위한 반려견 산책 매칭 앱")
	second := b.Build("반려동물 산책 대행", "바쁜 직장인을 위한 반려견 산책 매칭 앱")

	assert.Equal(t, first, second)
}

func TestBuildDiffersByInput(t *testing.T) {
	b := NewBuilder(DefaultProfile())

	assert.NotEqual(t, b.Build("idea one", "desc"), b.Build("idea two", "desc"))
}

func TestBuildEmbedsDirectives(t *testing.T) {
	out := NewBuilder(DefaultProfile()).Build("  Meal kits  ", "  Weekly healthy meal kits  ")

	for _, want := range []string{
		"RESPOND ALL TEXT IN KOREAN",
		"South Korea market only",
		"population (51.7M)",
		"Idea: Meal kits\n",
		"Description: Weekly healthy meal kits\n",
		`"valueProposition"`,
		`"timeframe": "Year 3-5"`,
		"PLACEHOLDER",
		"must resolve arithmetically",
		"3-5 real competitors",
		"http:// or https://",
		"X (action scale",
		"10 to 1,000 명",
		"100,000 to 30,000,000 KRW",
		"scaled-business",
	} {
		assert.Contains(t, out, want)
	}
}

func TestBuildUsesProfile(t *testing.T) {
	p := Profile{
		Language:   "English",
		Region:     "Japan",
		Market:     "Japanese",
		Population: "124M",
		Currency:   "JPY",
		Units:      Units{Money: "JPY", People: "people", Percent: "%", Frequency: "times"},
		Bands:      []Band{{Leg: "y", Label: "audience", Min: 50, Max: 5000, Unit: "people"}},
	}

	out := NewBuilder(p).Build("idea", "description")

	assert.Contains(t, out, "RESPOND ALL TEXT IN ENGLISH")
	assert.Contains(t, out, "Japan market only")
	assert.Contains(t, out, `"unit": "JPY"`)
	assert.Contains(t, out, "Y (audience): 50 to 5,000 people")
	assert.False(t, strings.Contains(out, "KRW"))
}

func TestBuildGroupsBandBounds(t *testing.T) {
	p := DefaultProfile()
	p.Bands = []Band{
		{Leg: "x", Label: "small", Min: 0, Max: 999, Unit: "명"},
		{Leg: "z", Label: "revenue", Min: 1234.5, Max: 30000000, Unit: "KRW"},
	}

	out := NewBuilder(p).Build("idea", "description")

	assert.Contains(t, out, "X (small): 0 to 999 명")
	assert.Contains(t, out, "Z (revenue): 1,234.5 to 30,000,000 KRW")
}

func TestSystemInstructionDemandsJSONOnly(t *testing.T) {
	assert.Contains(t, SystemInstruction, "valid JSON only")
}
