package prompt

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// SystemInstruction is sent as the system-role message on every call.
const SystemInstruction = "You are a startup cofounder AI assistant. Always respond with valid JSON only, no additional text, no markdown code fences."

// Builder renders generation prompts for one market profile.
type Builder struct {
	profile Profile
}

func NewBuilder(profile Profile) *Builder {
	return &Builder{profile: profile}
}

func (b *Builder) Profile() Profile { return b.profile }

// Build renders the user prompt for an idea and its description. The output
// depends only on the profile and the two inputs.
func (b *Builder) Build(idea, description string) string {
	p := b.profile
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a startup cofounder AI. Given the following idea and description, output a structured startup pack. RESPOND ALL TEXT IN %s.\n\n", strings.ToUpper(p.Language))
	fmt.Fprintf(&sb, "IMPORTANT: All market size calculations (TAM, SAM, SOM) MUST be based on the %s market only. Use realistic %s market data: population (%s), GDP, and industry-specific statistics. Every run must use this same baseline so numbers stay comparable.\n\n", p.Region, p.Market, p.Population)
	fmt.Fprintf(&sb, "Idea: %s\n\n", strings.TrimSpace(idea))
	fmt.Fprintf(&sb, "Description: %s\n\n", strings.TrimSpace(description))

	sb.WriteString("Respond strictly in the following JSON format:\n\n")
	sb.WriteString(b.schema())

	sb.WriteString("\n\nIMPORTANT about the example values above:\n")
	sb.WriteString("- Every number in the format above is a PLACEHOLDER, not an answer. Never copy it.\n")
	sb.WriteString("- Compute fresh numbers from this specific idea and market.\n")
	sb.WriteString("- CORRECTNESS REQUIREMENT: each \"calculation\" must resolve arithmetically to exactly the \"value\" next to it. Before answering, redo every multiplication and percentage in the calculation text and confirm the result equals \"value\". If it does not, fix the value or the calculation.\n")

	sb.WriteString("\nIMPORTANT for marketSize:\n")
	fmt.Fprintf(&sb, "- All values must be whole numbers in %s\n", p.Currency)
	fmt.Fprintf(&sb, "- TAM is the total %s market opportunity\n", p.Market)
	sb.WriteString("- SAM is a realistic subset of TAM (typically 20-50% of TAM)\n")
	sb.WriteString("- SOM is a realistic market share goal (typically 1-10% of SAM for an early-stage startup)\n")
	sb.WriteString("- Keep SOM <= SAM <= TAM\n")
	fmt.Fprintf(&sb, "- Write the calculations in %s and explain the methodology\n", p.Language)
	fmt.Fprintf(&sb, "- Consider %s demographics, GDP and industry-specific data\n", p.Market)

	sb.WriteString("\nIMPORTANT for competitors:\n")
	sb.WriteString("- Provide 3-5 real competitors that operate in the same or a similar space\n")
	sb.WriteString("- Use real organizations only, never invented names\n")
	sb.WriteString("- Include each competitor's actual website as an absolute URL starting with http:// or https://\n")
	sb.WriteString("- Describe what each competitor does and how it makes money\n")
	fmt.Fprintf(&sb, "- Prefer %s competitors; include international ones when relevant or when local ones are lacking\n", p.Market)

	sb.WriteString("\nIMPORTANT for the xyz hypothesis:\n")
	sb.WriteString("- The hypothesis describes an EARLY VALIDATION experiment for a pre-traction startup\n")
	sb.WriteString("- X is a specific, measurable action; Y is the target audience; Z is the measurable outcome\n")
	sb.WriteString("- Every value must stay inside these inclusive ranges:\n")
	for _, band := range p.Bands {
		fmt.Fprintf(&sb, "  - %s (%s): %s to %s %s\n", strings.ToUpper(band.Leg), band.Label, humanize.Commaf(band.Min), humanize.Commaf(band.Max), band.Unit)
	}
	if p.ScaledBusiness != "" {
		fmt.Fprintf(&sb, "- Do not use scaled-business numbers: %s\n", p.ScaledBusiness)
	}
	fmt.Fprintf(&sb, "- Use these units: %s for money, %s for people, %s for percentages, %s for frequency\n", p.Units.Money, p.Units.People, p.Units.Percent, p.Units.Frequency)
	sb.WriteString("- Use a number for \"value\" whenever it can be computed; use a short string only when it cannot\n")
	sb.WriteString("- Include a timeframe for Z\n")
	sb.WriteString("- The hypothesis must be testable and measurable\n")

	sb.WriteString("\nIMPORTANT for validation:\n")
	sb.WriteString("- List early validation experiments as phases, one per line block, in the form \"Phase N (Week A-B): goal / method / success metric\"\n")

	return sb.String()
}

func (b *Builder) schema() string {
	p := b.profile
	return fmt.Sprintf(`{
  "bm": {
    "valueProposition": "What unique value does this startup provide to customers?",
    "revenueStreams": "How will the startup make money? (e.g., subscription, commission, ads)",
    "customerSegments": "Who are the target customers?",
    "channels": "How will customers be reached? (e.g., website, app stores, partnerships)",
    "keyPartners": "Who are the key partners or suppliers?",
    "keyActivities": "What are the most important activities to make this work?",
    "keyResources": "What key resources are needed? (e.g., technology, team, capital)",
    "costStructure": "What are the main costs? (e.g., development, marketing, operations)"
  },
  "marketSize": {
    "tam": {
      "value": 1000000000000,
      "unit": "%[1]s",
      "description": "Total addressable market in %[2]s",
      "calculation": "Step-by-step calculation from %[3]s market data (e.g., population x average spending x penetration) that equals value"
    },
    "sam": {
      "value": 300000000000,
      "unit": "%[1]s",
      "description": "Serviceable addressable market in %[2]s (realistically reachable portion of TAM)",
      "calculation": "TAM x addressable percentage, equal to value"
    },
    "som": {
      "value": 9000000000,
      "unit": "%[1]s",
      "description": "Serviceable obtainable market in %[2]s (realistic market share goal)",
      "calculation": "SAM x target market share percentage, equal to value",
      "timeframe": "Year 3-5"
    }
  },
  "mvp": "Simple MVP plan. Include a mockup-style screen layout drawn with text.",
  "competitors": [
    {
      "name": "Competitor Name",
      "url": "https://www.example.com",
      "description": "What this competitor does and how it operates"
    }
  ],
  "xyz": {
    "x": {
      "action": "Concrete action to run",
      "metric": "Metric for the action (e.g., beta users onboarded)",
      "value": 100,
      "unit": "%[4]s"
    },
    "y": {
      "target": "Target customers for the experiment",
      "metric": "Audience size metric",
      "value": 2000,
      "unit": "%[4]s"
    },
    "z": {
      "outcome": "Expected measurable outcome",
      "metric": "Outcome metric (e.g., paying customers, revenue, retention)",
      "value": 5000000,
      "unit": "%[1]s",
      "timeframe": "3 months"
    }
  },
  "validation": "Phase 1 (Week 1-2): ...\nPhase 2 (Week 3-4): ..."
}`, p.Currency, p.Region, p.Market, p.Units.People)
}
