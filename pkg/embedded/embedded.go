package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/advisor_system_prompt.txt
var AdvisorSystemPromptTxt []byte

//go:embed data/prompts/structural_plan_prompt.txt
var StructuralPlanPromptTxt []byte
