package render

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func samplePack() *models.StartupPack {
	return &models.StartupPack{
		BusinessModel: models.BusinessModel{
			Kind:             models.BusinessModelStructured,
			ValueProposition: strPtr("Walks booked in two taps"),
			RevenueStreams:   strPtr("Per-walk fee"),
		},
		MarketSize: &models.MarketSize{
			TAM: &models.Tier{Value: models.NumberQuantity("1200000000000"), Unit: "KRW", Description: "All dog owners", Calculation: "6M × 200k"},
			SAM: &models.Tier{Value: models.NumberQuantity("360000000000"), Unit: "KRW"},
			SOM: &models.Tier{Value: models.NumberQuantity("7200000000"), Unit: "KRW", Timeframe: "Year 3-5"},
		},
		MVP: "[Book a walk]",
		Competitors: []models.Competitor{
			{Kind: models.CompetitorDetailed, Name: "Rover", URL: "https://rover.com", Description: "Pet sitting marketplace"},
			{Kind: models.CompetitorName, Name: "Wag"},
		},
		Hypothesis: models.Hypothesis{
			Kind: models.HypothesisStructured,
			X:    &models.ActionLeg{Action: "Launch beta", Metric: "Signups", Value: models.NumberQuantity("200"), Unit: "명"},
			Y:    &models.TargetLeg{Target: "Gangnam dog owners", Metric: "Reachable", Value: models.NumberQuantity("30000"), Unit: "명"},
			Z:    &models.OutcomeLeg{Outcome: "Paid conversion", Metric: "Revenue", Value: models.NumberQuantity("5000000"), Unit: "KRW", Timeframe: "3개월"},
		},
		Validation: strPtr("Phase 1 (Week 1-2): interviews"),
	}
}

func TestMarkdownSections(t *testing.T) {
	out := Markdown(samplePack(), "Dog walking")

	assert.True(t, strings.HasPrefix(out, "# Startup Pack: Dog walking\n"))
	for _, want := range []string{
		"## 01. Business Model Canvas",
		"## 02. Market Size",
		"## 03. MVP Plan",
		"## 04. Competitors",
		"## 05. XYZ Hypothesis",
		"## 06. Validation Plan",
		"**Value Proposition:** Walks booked in two taps",
		"**Customer Segments:** N/A",
		"- **TAM: ₩1.20조**",
		"  - Calculation: 6M × 200k",
		"- **SOM: ₩72.0억** (Year 3-5)",
		"```text\n[Book a walk]\n```",
		"- [Rover](https://rover.com): Pet sitting marketplace",
		"- Wag\n",
		"- Signups: 200명",
		"- Reachable: 3.0만명",
		"- Revenue: ₩500.0만 (3개월)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "> Note:")
}

func TestMarkdownOmitsAbsentSections(t *testing.T) {
	pack := &models.StartupPack{
		BusinessModel: models.BusinessModel{Kind: models.BusinessModelNarrative, Simple: strPtr("A marketplace")},
		MVP:           "m",
		Competitors:   []models.Competitor{},
		Hypothesis:    models.Hypothesis{Kind: models.HypothesisLegacy, Text: "If X then Y"},
	}

	out := Markdown(pack, "")

	assert.True(t, strings.HasPrefix(out, "# Startup Pack\n"))
	assert.NotContains(t, out, "Market Size")
	assert.NotContains(t, out, "Validation Plan")
	assert.Contains(t, out, "## 02. MVP Plan")
	assert.Contains(t, out, "A marketplace")
	assert.Contains(t, out, "If X then Y")
	assert.Contains(t, out, "## 03. Competitors\n\nN/A")
}

func TestMarkdownWithoutBusinessModel(t *testing.T) {
	out := Markdown(&models.StartupPack{BusinessModel: models.BusinessModel{Kind: models.BusinessModelNarrative}}, "x")

	assert.Contains(t, out, "No business model data available")
}

func TestMarkdownNotesOrderingViolations(t *testing.T) {
	pack := samplePack()
	pack.MarketSize.SAM.Value = models.NumberQuantity("2000000000000")

	out := Markdown(pack, "x")

	assert.Contains(t, out, "> Note: SAM exceeds TAM; figures are shown as generated.")
	assert.Contains(t, out, "- **SAM: ₩2.00조**")
}

func TestMarkdownStripsMarkup(t *testing.T) {
	pack := samplePack()
	pack.MVP = "<script>alert(1)</script><b>Home</b> &amp; search"

	out := Markdown(pack, "<i>Dogs</i>")

	assert.Contains(t, out, "# Startup Pack: Dogs")
	assert.Contains(t, out, "Home & search")
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, "script")
}

func TestMarkdownIsDeterministic(t *testing.T) {
	assert.Equal(t, Markdown(samplePack(), "x"), Markdown(samplePack(), "x"))
}

func TestMarkdownNilPack(t *testing.T) {
	assert.Equal(t, "No startup pack generated.", Markdown(nil, "x"))
}

func TestMarkdownFencesMVPContainingBackticks(t *testing.T) {
	pack := samplePack()
	pack.MVP = "Home\n```\n[Book a walk]\n```"

	out := Markdown(pack, "x")

	assert.Contains(t, out, "````text\nHome\n```\n[Book a walk]\n```\n````\n")
	assert.Contains(t, out, "## 04. Competitors")
}

func TestCodeFence(t *testing.T) {
	assert.Equal(t, "```", codeFence("plain"))
	assert.Equal(t, "```", codeFence("a `b` c"))
	assert.Equal(t, "````", codeFence("```"))
	assert.Equal(t, "``````", codeFence("x`````y"))
}
