package draft

import (
	"fmt"
	"strings"

	"github.com/ctwg/ditagen/internal/source"
)

// SystemPrompt frames the model as a technical writer producing a
// customer-facing first draft from internal source material.
const SystemPrompt = `You are a technical writer producing a customer-facing first draft from internal engineering source material.

Rules:
- Write clear, neutral, customer-facing prose
- Remove internal codenames, bug identifiers, employee names, and confidential details
- Keep factual technical content: versions, commands, configuration, behavior
- Organize the draft with short headings and paragraphs
- Do not invent information that is not in the source
- Respond with the draft only, no preamble`

// Request carries the inputs for one draft generation.
type Request struct {
	Product      string
	Instructions string
	Source       *source.Document
}

// BuildPrompt assembles the user prompt: product context, optional
// instructions, and the extracted source text trimmed to the token
// budget.
func BuildPrompt(req Request, sourceTokenBudget int) string {
	var sb strings.Builder
	if req.Product != "" {
		fmt.Fprintf(&sb, "Product: %s\n", req.Product)
	}
	if req.Instructions != "" {
		fmt.Fprintf(&sb, "Instructions: %s\n", req.Instructions)
	}
	if req.Source != nil {
		fmt.Fprintf(&sb, "Source document: %q\n", req.Source.Title)
		sb.WriteString("---\n")
		sb.WriteString(TruncateToBudget(req.Source.Text, sourceTokenBudget))
		sb.WriteString("\n---\n")
	}
	sb.WriteString("Write the first draft.")
	return sb.String()
}
