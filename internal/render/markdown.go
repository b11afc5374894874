package render

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const notAvailable = "N/A"

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Markdown renders a pack as a markdown document. title is optional.
func Markdown(pack *models.StartupPack, title string) string {
	if pack == nil {
		return "No startup pack generated."
	}

	var builder strings.Builder
	if title = clean(title); title != "" {
		builder.WriteString(fmt.Sprintf("# Startup Pack: %s\n\n", title))
	} else {
		builder.WriteString("# Startup Pack\n\n")
	}

	section := 0
	next := func(name string) {
		section++
		builder.WriteString(fmt.Sprintf("## %02d. %s\n\n", section, name))
	}

	next("Business Model Canvas")
	writeBusinessModel(&builder, pack.BusinessModel)

	if pack.MarketSize != nil {
		next("Market Size")
		writeMarketSize(&builder, pack.MarketSize)
	}

	next("MVP Plan")
	if mvp := clean(pack.MVP); mvp != "" {
		fence := codeFence(mvp)
		builder.WriteString(fence + "text\n" + mvp + "\n" + fence + "\n\n")
	} else {
		builder.WriteString(notAvailable + "\n\n")
	}

	next("Competitors")
	writeCompetitors(&builder, pack.Competitors)

	next("XYZ Hypothesis")
	writeHypothesis(&builder, pack.Hypothesis)

	if pack.Validation != nil {
		next("Validation Plan")
		builder.WriteString(orNA(*pack.Validation) + "\n")
	}

	return strings.TrimRight(builder.String(), "\n") + "\n"
}

func writeBusinessModel(builder *strings.Builder, bm models.BusinessModel) {
	if bm.Kind == models.BusinessModelStructured {
		for _, field := range bm.Canvas() {
			value := notAvailable
			if field.Value != nil {
				value = orNA(*field.Value)
			}
			builder.WriteString(fmt.Sprintf("**%s:** %s\n\n", field.Label, value))
		}
		return
	}
	if bm.Simple != nil && clean(*bm.Simple) != "" {
		builder.WriteString(clean(*bm.Simple) + "\n\n")
		return
	}
	builder.WriteString("No business model data available\n\n")
}

func writeMarketSize(builder *strings.Builder, ms *models.MarketSize) {
	tiers := []struct {
		name string
		tier *models.Tier
	}{
		{"TAM", ms.TAM},
		{"SAM", ms.SAM},
		{"SOM", ms.SOM},
	}
	for _, t := range tiers {
		if t.tier == nil {
			builder.WriteString(fmt.Sprintf("- **%s:** %s\n", t.name, notAvailable))
			continue
		}
		builder.WriteString(fmt.Sprintf("- **%s: %s**", t.name, FormatAmount(t.tier.Value, t.tier.Unit)))
		if tf := clean(t.tier.Timeframe); tf != "" {
			builder.WriteString(fmt.Sprintf(" (%s)", tf))
		}
		builder.WriteString("\n")
		if d := clean(t.tier.Description); d != "" {
			builder.WriteString(fmt.Sprintf("  - %s\n", d))
		}
		if c := clean(t.tier.Calculation); c != "" {
			builder.WriteString(fmt.Sprintf("  - Calculation: %s\n", c))
		}
	}
	for _, v := range ms.OrderingViolations() {
		builder.WriteString(fmt.Sprintf("\n> Note: %s; figures are shown as generated.\n", v))
	}
	builder.WriteString("\n")
}

func writeCompetitors(builder *strings.Builder, competitors []models.Competitor) {
	if len(competitors) == 0 {
		builder.WriteString(notAvailable + "\n\n")
		return
	}
	for _, c := range competitors {
		name := orNA(c.Name)
		switch c.Kind {
		case models.CompetitorDetailed:
			if url := clean(c.URL); url != "" {
				builder.WriteString(fmt.Sprintf("- [%s](%s)", name, url))
			} else {
				builder.WriteString("- " + name)
			}
			if d := clean(c.Description); d != "" {
				builder.WriteString(": " + d)
			}
			builder.WriteString("\n")
		default:
			builder.WriteString("- " + name + "\n")
		}
	}
	builder.WriteString("\n")
}

func writeHypothesis(builder *strings.Builder, h models.Hypothesis) {
	if h.Kind != models.HypothesisStructured {
		builder.WriteString(orNA(h.Text) + "\n\n")
		return
	}
	if h.X != nil {
		builder.WriteString(fmt.Sprintf("**X (Action):** %s\n", orNA(h.X.Action)))
		builder.WriteString(fmt.Sprintf("- %s: %s\n\n", orNA(h.X.Metric), FormatValue(h.X.Value, h.X.Unit)))
	}
	if h.Y != nil {
		builder.WriteString(fmt.Sprintf("**Y (Target):** %s\n", orNA(h.Y.Target)))
		builder.WriteString(fmt.Sprintf("- %s: %s\n\n", orNA(h.Y.Metric), FormatValue(h.Y.Value, h.Y.Unit)))
	}
	if h.Z != nil {
		builder.WriteString(fmt.Sprintf("**Z (Outcome):** %s\n", orNA(h.Z.Outcome)))
		builder.WriteString(fmt.Sprintf("- %s: %s", orNA(h.Z.Metric), FormatValue(h.Z.Value, h.Z.Unit)))
		if tf := clean(h.Z.Timeframe); tf != "" {
			builder.WriteString(fmt.Sprintf(" (%s)", tf))
		}
		builder.WriteString("\n\n")
	}
}

// codeFence returns a backtick fence longer than any backtick run in text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

func orNA(s string) string {
	if s = clean(s); s == "" {
		return notAvailable
	}
	return s
}

// clean strips any markup the model slipped into a narrative field.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(s)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
