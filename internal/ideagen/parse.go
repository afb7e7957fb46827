package ideagen

import (
	"strings"

	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
)

const (
	MarkerName           = "Startup Name:"
	MarkerDescription    = "Description:"
	MarkerTargetAudience = "Target Audience:"
	MarkerMonetization   = "Monetization Model:"
)

type marker struct {
	label  string
	assign func(idea *models.Idea, value string)
}

// Order matters: a line carrying several labels is credited to the first one listed.
var markers = []marker{
	{MarkerName, func(i *models.Idea, v string) { i.Name = v }},
	{MarkerDescription, func(i *models.Idea, v string) { i.Description = v }},
	{MarkerTargetAudience, func(i *models.Idea, v string) { i.TargetAudience = v }},
	{MarkerMonetization, func(i *models.Idea, v string) { i.Monetization = v }},
}

// ParseIdea extracts the four labeled fields from a free-form model reply.
// Lines without a marker are ignored, fields whose marker never appears stay
// empty, and when a marker repeats the later line wins.
func ParseIdea(text string) models.Idea {
	var idea models.Idea

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, m := range markers {
			if strings.Contains(line, m.label) {
				m.assign(&idea, strings.TrimSpace(strings.Replace(line, m.label, "", 1)))
				break
			}
		}
	}

	return idea
}
