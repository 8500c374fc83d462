package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGenerate wraps failures of the answer-generation model.
var ErrGenerate = errors.New("generator: generation failed")

// Generator produces an answer to a question grounded in retrieved context.
type Generator interface {
	Answer(question, context string) (string, error)
}

// buildPrompt assembles the grounding prompt shared by all backends.
func buildPrompt(question, context string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant answering questions about a document.\n")
	sb.WriteString("Use ONLY the following context passages to answer the question.\n")
	sb.WriteString("If the answer cannot be found in the context, say \"I cannot find this information in the provided text.\"\n")
	sb.WriteString("Be concise and accurate.\n\n")

	sb.WriteString("Context:\n")
	sb.WriteString("---\n")
	sb.WriteString(context)
	sb.WriteString("\n---\n\n")

	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	sb.WriteString("Answer:")

	return sb.String()
}
