// FILE: pkg/therapy/summary/generator.go
// Turns a session transcript into a therapeutic summary via the LLM.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anantara-be/pkg/llm"
)

// MinMessages is the minimum transcript length that yields a summary.
// Below it there is not enough material to summarize.
const MinMessages = 4

// ErrNotEnoughMessages is returned when the transcript is shorter than
// MinMessages. Callers treat it as "no summary", not as a failure.
var ErrNotEnoughMessages = errors.New("summary: not enough messages")

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

// Generate renders the transcript and asks the model for a summary in a
// single user turn, without any session context.
func (g *Generator) Generate(ctx context.Context, messages []TranscriptMessage) (string, error) {
	if len(messages) < MinMessages {
		return "", ErrNotEnoughMessages
	}

	var transcript strings.Builder
	for _, m := range messages {
		label := g.therapistLabel
		if m.IsUser {
			label = g.patientLabel
		}
		transcript.WriteString(fmt.Sprintf("%s: %s\n\n", label, m.Content))
	}

	prompt := fmt.Sprintf(`Você é um assistente que resume sessões de terapia emocional. Leia a transcrição abaixo e produza um resumo conciso em português do Brasil cobrindo:

1. Questões emocionais trazidas pelo paciente
2. Insights ou percepções alcançadas
3. Técnicas ou investigações aplicadas (especialmente auto-investigação)
4. Progresso observado
5. Pontos para acompanhar na próxima sessão

TRANSCRIÇÃO:
%s
RESUMO:`, transcript.String())

	result, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return strings.TrimSpace(result), nil
}
