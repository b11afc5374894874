package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityMarshalKeepsLiteral(t *testing.T) {
	b, err := json.Marshal(struct {
		A Quantity `json:"a"`
		B Quantity `json:"b"`
	}{A: NumberQuantity("1000000000000"), B: TextQuantity("약 1조")})
	require.NoError(t, err)

	assert.JSONEq(t, `{"a":1000000000000,"b":"약 1조"}`, string(b))
}

func TestQuantityFloat64(t *testing.T) {
	v, ok := NumberQuantity("2.5").Float64()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = TextQuantity("unknown").Float64()
	assert.False(t, ok)
}

func TestOrderingViolationsReportsWithoutMutating(t *testing.T) {
	m := &MarketSize{
		TAM: &Tier{Value: NumberQuantity("100")},
		SAM: &Tier{Value: NumberQuantity("200")},
		SOM: &Tier{Value: NumberQuantity("300")},
	}

	assert.Equal(t, []string{"SAM exceeds TAM", "SOM exceeds SAM"}, m.OrderingViolations())
	assert.Equal(t, "100", m.TAM.Value.String())
	assert.Equal(t, "300", m.SOM.Value.String())
}

func TestOrderingViolationsToleratesMissingTiers(t *testing.T) {
	m := &MarketSize{TAM: &Tier{Value: NumberQuantity("10")}, SOM: &Tier{Value: TextQuantity("n/a")}}

	assert.Empty(t, m.OrderingViolations())

	var nilSize *MarketSize
	assert.Empty(t, nilSize.OrderingViolations())
}

func TestPackJSONOmitsAbsentSections(t *testing.T) {
	simple := "x"
	p := StartupPack{
		BusinessModel: BusinessModel{Kind: BusinessModelNarrative, Simple: &simple},
		MVP:           "y",
		Competitors:   []Competitor{},
		Hypothesis:    Hypothesis{Kind: HypothesisLegacy, Text: "z"},
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"bm": {"kind": "narrative", "simple": "x"},
		"mvp": "y",
		"competitors": [],
		"xyz": {"kind": "legacy", "text": "z"}
	}`, string(b))
}
