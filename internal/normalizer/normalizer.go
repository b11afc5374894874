// Package normalizer turns raw model output into a models.StartupPack.
//
// Only syntax is strict: text that is not a JSON object is rejected. Past
// that point every field is read leniently. Absent optional sections stay
// absent, wrong-typed values degrade to their text, and nothing is invented
// or recomputed.
package normalizer

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
)

var ErrNotObject = errors.New("top-level JSON value is not an object")

// Normalize parses raw and shapes it into a pack. It fails with a
// malformed-response error when raw is not a single JSON object.
func Normalize(raw string) (*models.StartupPack, error) {
	root, err := decode(stripCodeFence(raw))
	if err != nil {
		return nil, apierr.MalformedResponse(err)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, apierr.MalformedResponse(ErrNotObject)
	}

	return &models.StartupPack{
		BusinessModel: businessModel(obj["bm"]),
		MarketSize:    marketSize(obj["marketSize"]),
		MVP:           textOf(obj["mvp"], "\n"),
		Competitors:   competitors(obj["competitors"]),
		Hypothesis:    hypothesis(obj["xyz"]),
		Validation:    optText(obj["validation"], "\n"),
	}, nil
}

func decode(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return root, nil
}

// stripCodeFence removes one surrounding ``` block, with or without a
// language tag.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(s)
}

func businessModel(v any) models.BusinessModel {
	switch t := v.(type) {
	case map[string]any:
		bm := models.BusinessModel{
			ValueProposition: optText(t["valueProposition"], ", "),
			RevenueStreams:   optText(t["revenueStreams"], ", "),
			CustomerSegments: optText(t["customerSegments"], ", "),
			Channels:         optText(t["channels"], ", "),
			KeyPartners:      optText(t["keyPartners"], ", "),
			KeyActivities:    optText(t["keyActivities"], ", "),
			KeyResources:     optText(t["keyResources"], ", "),
			CostStructure:    optText(t["costStructure"], ", "),
			Simple:           optText(t["simple"], "\n"),
		}
		bm.Kind = models.BusinessModelNarrative
		for _, f := range bm.Canvas() {
			if f.Value != nil {
				bm.Kind = models.BusinessModelStructured
				break
			}
		}
		return bm
	default:
		return models.BusinessModel{Kind: models.BusinessModelNarrative, Simple: optText(v, "\n")}
	}
}

func marketSize(v any) *models.MarketSize {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	ms := &models.MarketSize{
		TAM: tier(m["tam"]),
		SAM: tier(m["sam"]),
		SOM: tier(m["som"]),
	}
	if ms.TAM == nil && ms.SAM == nil && ms.SOM == nil {
		return nil
	}
	return ms
}

func tier(v any) *models.Tier {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &models.Tier{
		Value:       quantity(m["value"]),
		Unit:        textOf(m["unit"], " "),
		Description: textOf(m["description"], "\n"),
		Calculation: textOf(m["calculation"], "\n"),
		Timeframe:   textOf(m["timeframe"], " "),
	}
}

func competitors(v any) []models.Competitor {
	out := []models.Competitor{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case map[string]any:
			out = append(out, models.Competitor{
				Kind:        models.CompetitorDetailed,
				Name:        textOf(t["name"], " "),
				URL:         strings.TrimSpace(textOf(t["url"], " ")),
				Description: textOf(t["description"], "\n"),
			})
		default:
			out = append(out, models.Competitor{Kind: models.CompetitorName, Name: textOf(t, " ")})
		}
	}
	return out
}

func hypothesis(v any) models.Hypothesis {
	m, ok := v.(map[string]any)
	if !ok {
		return models.Hypothesis{Kind: models.HypothesisLegacy, Text: textOf(v, "\n")}
	}

	h := models.Hypothesis{Kind: models.HypothesisStructured}
	if x, ok := m["x"].(map[string]any); ok {
		h.X = &models.ActionLeg{
			Action: textOf(x["action"], " "),
			Metric: textOf(x["metric"], " "),
			Value:  quantity(x["value"]),
			Unit:   textOf(x["unit"], " "),
		}
	}
	if y, ok := m["y"].(map[string]any); ok {
		h.Y = &models.TargetLeg{
			Target: textOf(y["target"], " "),
			Metric: textOf(y["metric"], " "),
			Value:  quantity(y["value"]),
			Unit:   textOf(y["unit"], " "),
		}
	}
	if z, ok := m["z"].(map[string]any); ok {
		h.Z = &models.OutcomeLeg{
			Outcome:   textOf(z["outcome"], " "),
			Metric:    textOf(z["metric"], " "),
			Value:     quantity(z["value"]),
			Unit:      textOf(z["unit"], " "),
			Timeframe: textOf(z["timeframe"], " "),
		}
	}
	if h.X == nil && h.Y == nil && h.Z == nil {
		return models.Hypothesis{Kind: models.HypothesisLegacy, Text: textOf(m, "\n")}
	}
	return h
}

func quantity(v any) models.Quantity {
	switch t := v.(type) {
	case nil:
		return models.Quantity{}
	case json.Number:
		return models.NumberQuantity(t.String())
	default:
		return models.TextQuantity(textOf(t, " "))
	}
}

// optText is textOf for fields whose absence must be preserved.
func optText(v any, sep string) *string {
	if v == nil {
		return nil
	}
	s := textOf(v, sep)
	return &s
}

// textOf renders any decoded JSON value as text. Lists of scalars are joined
// with sep; objects and nested lists fall back to their JSON encoding.
func textOf(v any, sep string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case map[string]any, []any:
				return encode(v)
			case nil:
				continue
			}
			parts = append(parts, textOf(item, sep))
		}
		return strings.Join(parts, sep)
	default:
		return encode(v)
	}
}

func encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
