package a2a

// AgentCard is served at /.well-known/agent.json.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	Provider           AgentProvider     `json:"provider"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []AgentSkill      `json:"skills"`
	Endpoints          map[string]string `json:"endpoints"`
}

type AgentProvider struct {
	Organization string `json:"organization"`
}

type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
	InputModes  []string `json:"inputModes"`
	OutputModes []string `json:"outputModes"`
}

const (
	AgentVersion = "1.0.0"
	TaskPath     = "/a2a/startup-pack"
	CardPath     = "/.well-known/agent.json"
)

// NewAgentCard describes this agent. baseURL is the externally visible
// scheme and host, without a trailing slash.
func NewAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:        "Startup Pack Agent",
		Description: "Turns a startup idea into a starter pack: business model canvas, TAM/SAM/SOM market size, MVP wireframe, competitors, an XYZ hypothesis and a validation plan.",
		URL:         baseURL + TaskPath,
		Version:     AgentVersion,
		Provider:    AgentProvider{Organization: "startup-pack-agent"},
		Capabilities: AgentCapabilities{
			Streaming:              false,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		DefaultInputModes:  []string{"text", "data"},
		DefaultOutputModes: []string{"text", "data"},
		Skills: []AgentSkill{
			{
				ID:          "startup-pack",
				Name:        "Generate startup pack",
				Description: "Send the idea on the first line and a description on the following lines, or a data part {\"idea\", \"description\"}.",
				Tags:        []string{"startup", "business-model", "market-size", "mvp"},
				Examples: []string{
					"Dog walking app\nOn-demand dog walks for busy single-person households in Seoul",
				},
				InputModes:  []string{"text", "data"},
				OutputModes: []string{"text", "data"},
			},
		},
		Endpoints: map[string]string{
			"task":      baseURL + TaskPath,
			"agentCard": baseURL + CardPath,
		},
	}
}
