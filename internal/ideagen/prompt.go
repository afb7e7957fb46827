package ideagen

import (
	"fmt"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
)

// SystemPrompt fixes the model's role for every generation.
const SystemPrompt = `You are a creative startup idea generator. Generate unique and innovative startup ideas based on user interests.`

// Prompt is a single-turn instruction: one system message and one user message.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt embeds the area of interest, and the preferred name when given,
// into the user message together with the four-line output template.
func BuildPrompt(req models.IdeaRequest) Prompt {
	userInput := fmt.Sprintf("Area of Interest: %s", req.AreaOfInterest)
	if req.StartupName != "" {
		userInput = fmt.Sprintf("Area of Interest: %s, Preferred Startup Name: %s", req.AreaOfInterest, req.StartupName)
	}

	return Prompt{
		System: SystemPrompt,
		User: fmt.Sprintf(`Generate a creative startup idea based on the following user interests: %s.
Please return the response in this format:
%s ...
%s ...
%s ...
%s ...`, userInput, MarkerName, MarkerDescription, MarkerTargetAudience, MarkerMonetization),
	}
}
