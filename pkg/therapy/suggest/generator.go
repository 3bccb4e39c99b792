// FILE: pkg/therapy/suggest/generator.go
// Produces personalized conversation-starter suggestions from the user's
// recent exchanges via the LLM.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anantara-be/pkg/llm"
)

// Count is how many suggestions one generation yields.
const Count = 3

// maxLength caps each suggestion so the frontend can render them as
// tappable chips.
const maxLength = 80

// ErrNoHistory is returned when the user has no messages to personalize
// from. Callers fall back to a fixed suggestion set.
var ErrNoHistory = errors.New("suggest: no conversation history")

// ErrMalformedOutput is returned when the model's answer does not contain
// enough usable lines. Callers fall back to a fixed suggestion set.
var ErrMalformedOutput = errors.New("suggest: malformed model output")

// TranscriptMessage is one turn of the conversation in timestamp order.
type TranscriptMessage struct {
	Content string
	IsUser  bool
}

type Generator struct {
	provider       llm.LLMProvider
	patientLabel   string
	therapistLabel string
}

func NewGenerator(provider llm.LLMProvider, patientLabel, therapistLabel string) *Generator {
	return &Generator{
		provider:       provider,
		patientLabel:   patientLabel,
		therapistLabel: therapistLabel,
	}
}

// Generate asks the model for Count short conversation starters grounded
// in the recent transcript, one per line.
func (g *Generator) Generate(ctx context.Context, messages []TranscriptMessage) ([]string, error) {
	if len(messages) == 0 {
		return nil, ErrNoHistory
	}

	var transcript strings.Builder
	for _, m := range messages {
		label := g.therapistLabel
		if m.IsUser {
			label = g.patientLabel
		}
		transcript.WriteString(fmt.Sprintf("%s: %s\n", label, m.Content))
	}

	prompt := fmt.Sprintf(`Com base nas conversas recentes abaixo, sugira %d frases curtas em português do Brasil que o paciente poderia usar para iniciar a próxima conversa com seu terapeuta. As frases devem ser pessoais, acolhedoras e relacionadas aos temas que o paciente trouxe. Responda apenas com as %d frases, uma por linha, sem numeração e com no máximo %d caracteres cada.

CONVERSAS RECENTES:
%s
SUGESTÕES:`, Count, Count, maxLength, transcript.String())

	result, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggestion generation failed: %w", err)
	}

	suggestions := parseLines(result)
	if len(suggestions) < Count {
		return nil, ErrMalformedOutput
	}
	return suggestions[:Count], nil
}

// parseLines extracts clean suggestion lines, stripping the numbering,
// bullets and quotes models like to add despite instructions.
func parseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.)-• ")
		line = strings.Trim(line, `"“”`)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len([]rune(line)) > maxLength {
			continue
		}
		out = append(out, line)
	}
	return out
}
