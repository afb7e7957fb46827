package a2a

import "strings"

// AgentCard describes this agent at /.well-known/agent.json.
type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	ProtocolVersion    string       `json:"protocolVersion"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Capabilities       Capabilities `json:"capabilities"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

const (
	AgentVersion  = "1.0.0"
	EndpointPath  = "/a2a/idea-generator"
	AgentCardPath = "/.well-known/agent.json"
)

// NewAgentCard builds the card advertised for baseURL, e.g. "https://ideas.example.com".
func NewAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:               "Startup Idea Generator",
		Description:        "Generates a startup idea (name, description, target audience, monetization model) from an area of interest.",
		URL:                strings.TrimRight(baseURL, "/") + EndpointPath,
		Version:            AgentVersion,
		ProtocolVersion:    "0.3.0",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain", "application/json"},
		Capabilities:       Capabilities{},
		Skills: []Skill{
			{
				ID:          "generate-startup-idea",
				Name:        "Generate startup idea",
				Description: "Send an area of interest as text and receive one startup idea.",
				Tags:        []string{"startup", "ideas", "brainstorming"},
				Examples:    []string{"Sustainability", "Healthcare for remote workers"},
			},
		},
	}
}
