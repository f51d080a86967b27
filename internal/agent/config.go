package agent

// Configuration is the synthesized description of a generated chat agent.
// It is extracted from pipeline output and bound directly by the builder UI.
type Configuration struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Personality  Personality  `json:"personality"`
	Capabilities Capabilities `json:"capabilities"`
	Design       Design       `json:"design"`
	Deployment   Deployment   `json:"deployment"`
}

// Personality tunes how the agent speaks.
type Personality struct {
	Tone           string `json:"tone"`
	Style          string `json:"style"`
	Expertise      string `json:"expertise"`
	ResponseLength string `json:"response_length"`
	Creativity     int    `json:"creativity"`
	Formality      int    `json:"formality"`
}

// Capabilities lists what the agent can do.
type Capabilities struct {
	Skills       []string `json:"skills"`
	Languages    []string `json:"languages"`
	Integrations []string `json:"integrations"`
}

// Design holds the widget's visual configuration.
type Design struct {
	Avatar string `json:"avatar"`
	Theme  Theme  `json:"theme"`
	Widget Widget `json:"widget"`
}

// Theme holds the widget color scheme.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Widget holds the chat interface copy.
type Widget struct {
	Greeting    string `json:"greeting"`
	Placeholder string `json:"placeholder"`
}

// DeploymentStatus tracks the publish state of an agent.
type DeploymentStatus string

const (
	DeploymentPending  DeploymentStatus = "pending"
	DeploymentDeployed DeploymentStatus = "deployed"
	DeploymentFailed   DeploymentStatus = "failed"
)

// Deployment records where (and whether) the agent is published.
type Deployment struct {
	Platform     string           `json:"platform"`
	Status       DeploymentStatus `json:"status"`
	URL          string           `json:"url,omitempty"`
	DeploymentID string           `json:"deployment_id,omitempty"`
}

// ClampLevels forces creativity and formality into [0,100].
func (c *Configuration) ClampLevels() {
	c.Personality.Creativity = clamp(c.Personality.Creativity)
	c.Personality.Formality = clamp(c.Personality.Formality)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
