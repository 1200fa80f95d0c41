package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/tip_instruction.txt
	tipInstructionRaw string

	//go:embed template/assessment.txt
	assessmentRaw string

	//go:embed template/interview.txt
	interviewRaw string
)

// PromptSet holds loaded prompt and message templates.
type PromptSet struct {
	TipInstruction string
	Assessment     string
	Interview      string
}

// LoadPromptSet returns a PromptSet with trimmed template strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		TipInstruction: strings.TrimSpace(tipInstructionRaw),
		Assessment:     strings.TrimSpace(assessmentRaw),
		Interview:      strings.TrimSpace(interviewRaw),
	}
}

// Render substitutes {{KEY}} placeholders in a single pass, so values that
// themselves contain placeholders are left untouched.
func Render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
