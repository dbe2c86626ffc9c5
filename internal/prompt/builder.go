package prompt

import "fmt"

// Builder builds prompts for the plan advisory
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildSystemPrompt returns the advisory system prompt
func (b *Builder) BuildSystemPrompt() (string, error) {
	return b.loader.GetSystemPrompt()
}

// BuildStructuralPlanPrompt renders the plan request for a mood and
// innovation level
func (b *Builder) BuildStructuralPlanPrompt(mood string, innovation float64) (string, error) {
	tmpl, err := b.loader.GetStructuralPlanTemplate()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, mood, innovation), nil
}
