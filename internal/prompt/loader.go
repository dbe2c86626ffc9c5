package prompt

import (
	"strings"

	"github.com/resonata-labs/resonata-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the advisory system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.AdvisorSystemPromptTxt)), nil
}

// GetStructuralPlanTemplate loads the structural plan prompt template.
// The template has two verbs: mood (%s) and innovation level (%.2f).
func (l *Loader) GetStructuralPlanTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.StructuralPlanPromptTxt)), nil
}
