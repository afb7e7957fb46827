package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IdeaRequest is the body of a generate call.
type IdeaRequest struct {
	AreaOfInterest string `json:"areaOfInterest"`
	StartupName    string `json:"startupName,omitempty"`
}

// Normalize trims both fields. A whitespace-only value counts as absent.
func (r *IdeaRequest) Normalize() {
	r.AreaOfInterest = strings.TrimSpace(r.AreaOfInterest)
	r.StartupName = strings.TrimSpace(r.StartupName)
}

// Idea is the four-field result parsed from the model reply.
// Any field may be empty when its marker never appeared.
type Idea struct {
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Monetization   string `json:"monetization,omitempty"`
}

// IdeaResponse is the 200 body of the generate endpoint.
type IdeaResponse struct {
	Idea Idea `json:"idea"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SavedIdea is a generated idea persisted for a user.
type SavedIdea struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	StartupName    string    `json:"startupName"`
	AreaOfInterest string    `json:"areaOfInterest"`
	Idea           Idea      `json:"idea"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SaveIdeaRequest is the body of POST /ideas.
type SaveIdeaRequest struct {
	StartupName    string `json:"startupName,omitempty" validate:"max=200"`
	AreaOfInterest string `json:"areaOfInterest" validate:"required,max=500"`
	Idea           Idea   `json:"idea"`
}

var validate = validator.New()

// Validate trims the request and checks field constraints.
func (r *SaveIdeaRequest) Validate() error {
	r.StartupName = strings.TrimSpace(r.StartupName)
	r.AreaOfInterest = strings.TrimSpace(r.AreaOfInterest)

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fe.Field(), Message: describeTag(fe)}
		}
		return err
	}
	if r.Idea == (Idea{}) {
		return &ValidationError{Field: "Idea", Message: "idea must not be empty"}
	}
	return nil
}

// DisplayName is the name stored with a saved idea: the user's preferred
// name when given, otherwise the generated one.
func (r *SaveIdeaRequest) DisplayName() string {
	if r.StartupName != "" {
		return r.StartupName
	}
	return r.Idea.Name
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// ValidationError indicates request validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
}
