package models

import (
	"encoding/json"
	"fmt"
)

// GenerationRequest is the input to one pack generation.
type GenerationRequest struct {
	Idea        string `json:"idea" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// StartupPack is the normalized result of one generation call. It is built
// once by the normalizer and only read afterwards.
type StartupPack struct {
	BusinessModel BusinessModel `json:"bm"`
	MarketSize    *MarketSize   `json:"marketSize,omitempty"`
	MVP           string        `json:"mvp"`
	Competitors   []Competitor  `json:"competitors"`
	Hypothesis    Hypothesis    `json:"xyz"`
	Validation    *string       `json:"validation,omitempty"`
}

type BusinessModelKind string

const (
	BusinessModelStructured BusinessModelKind = "structured"
	BusinessModelNarrative  BusinessModelKind = "narrative"
)

// BusinessModel is either a structured canvas or a single narrative string.
// Canvas fields the model did not return stay nil.
type BusinessModel struct {
	Kind             BusinessModelKind `json:"kind"`
	ValueProposition *string           `json:"valueProposition,omitempty"`
	RevenueStreams   *string           `json:"revenueStreams,omitempty"`
	CustomerSegments *string           `json:"customerSegments,omitempty"`
	Channels         *string           `json:"channels,omitempty"`
	KeyPartners      *string           `json:"keyPartners,omitempty"`
	KeyActivities    *string           `json:"keyActivities,omitempty"`
	KeyResources     *string           `json:"keyResources,omitempty"`
	CostStructure    *string           `json:"costStructure,omitempty"`
	Simple           *string           `json:"simple,omitempty"`
}

// CanvasField is one labelled business-model cell.
type CanvasField struct {
	Key   string
	Label string
	Value *string
}

// Canvas returns the eight canvas cells in display order.
func (b BusinessModel) Canvas() []CanvasField {
	return []CanvasField{
		{"valueProposition", "Value Proposition", b.ValueProposition},
		{"customerSegments", "Customer Segments", b.CustomerSegments},
		{"channels", "Channels", b.Channels},
		{"revenueStreams", "Revenue Streams", b.RevenueStreams},
		{"keyPartners", "Key Partners", b.KeyPartners},
		{"keyActivities", "Key Activities", b.KeyActivities},
		{"keyResources", "Key Resources", b.KeyResources},
		{"costStructure", "Cost Structure", b.CostStructure},
	}
}

// MarketSize holds the TAM/SAM/SOM estimate. Values are kept exactly as the
// model produced them, including out-of-order tiers.
type MarketSize struct {
	TAM *Tier `json:"tam,omitempty"`
	SAM *Tier `json:"sam,omitempty"`
	SOM *Tier `json:"som,omitempty"`
}

type Tier struct {
	Value       Quantity `json:"value"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	Calculation string   `json:"calculation"`
	Timeframe   string   `json:"timeframe,omitempty"`
}

// OrderingViolations lists the pairs breaking som <= sam <= tam. It is meant
// for display notes only and never changes the values.
func (m *MarketSize) OrderingViolations() []string {
	if m == nil {
		return nil
	}
	var out []string
	check := func(lowName string, low *Tier, highName string, high *Tier) {
		if low == nil || high == nil {
			return
		}
		lv, lok := low.Value.Float64()
		hv, hok := high.Value.Float64()
		if lok && hok && lv > hv {
			out = append(out, fmt.Sprintf("%s exceeds %s", lowName, highName))
		}
	}
	check("SAM", m.SAM, "TAM", m.TAM)
	check("SOM", m.SOM, "SAM", m.SAM)
	return out
}

type CompetitorKind string

const (
	CompetitorName     CompetitorKind = "name"
	CompetitorDetailed CompetitorKind = "detailed"
)

// Competitor is either a bare name or a name with a URL and description.
type Competitor struct {
	Kind        CompetitorKind `json:"kind"`
	Name        string         `json:"name"`
	URL         string         `json:"url,omitempty"`
	Description string         `json:"description,omitempty"`
}

type HypothesisKind string

const (
	HypothesisLegacy     HypothesisKind = "legacy"
	HypothesisStructured HypothesisKind = "structured"
)

// Hypothesis is the XYZ growth hypothesis, either free text (legacy) or the
// three measurable legs.
type Hypothesis struct {
	Kind HypothesisKind `json:"kind"`
	Text string         `json:"text,omitempty"`
	X    *ActionLeg     `json:"x,omitempty"`
	Y    *TargetLeg     `json:"y,omitempty"`
	Z    *OutcomeLeg    `json:"z,omitempty"`
}

type ActionLeg struct {
	Action string   `json:"action"`
	Metric string   `json:"metric"`
	Value  Quantity `json:"value"`
	Unit   string   `json:"unit,omitempty"`
}

type TargetLeg struct {
	Target string   `json:"target"`
	Metric string   `json:"metric"`
	Value  Quantity `json:"value"`
	Unit   string   `json:"unit,omitempty"`
}

type OutcomeLeg struct {
	Outcome   string   `json:"outcome"`
	Metric    string   `json:"metric"`
	Value     Quantity `json:"value"`
	Unit      string   `json:"unit,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
}

// Quantity is a value the model may emit as a number or, when it could not
// compute one, as text. Numbers keep their exact literal.
type Quantity struct {
	Number json.Number
	Text   string
}

func NumberQuantity(literal string) Quantity { return Quantity{Number: json.Number(literal)} }
func TextQuantity(text string) Quantity      { return Quantity{Text: text} }

func (q Quantity) IsNumber() bool { return q.Number != "" }

func (q Quantity) Float64() (float64, bool) {
	if !q.IsNumber() {
		return 0, false
	}
	f, err := q.Number.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func (q Quantity) String() string {
	if q.IsNumber() {
		return q.Number.String()
	}
	return q.Text
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsNumber() {
		return []byte(q.Number), nil
	}
	return json.Marshal(q.Text)
}
