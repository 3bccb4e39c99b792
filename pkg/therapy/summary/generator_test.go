package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anantara-be/pkg/llm"
)

type stubProvider struct {
	lastPrompt string
	reply      string
	err        error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func transcript(n int) []TranscriptMessage {
	msgs := make([]TranscriptMessage, n)
	for i := range msgs {
		msgs[i] = TranscriptMessage{Content: "mensagem", IsUser: i%2 == 0}
	}
	return msgs
}

func TestGenerateRejectsShortTranscripts(t *testing.T) {
	g := NewGenerator(&stubProvider{}, "Paciente", "Terapeuta")

	for _, n := range []int{0, 1, 2, 3} {
		_, err := g.Generate(context.Background(), transcript(n))
		if !errors.Is(err, ErrNotEnoughMessages) {
			t.Errorf("Generate with %d messages: err = %v, want ErrNotEnoughMessages", n, err)
		}
	}
}

func TestGenerateRendersLabeledTranscript(t *testing.T) {
	provider := &stubProvider{reply: "  resumo da sessão  "}
	g := NewGenerator(provider, "Paciente", "Terapeuta")

	msgs := []TranscriptMessage{
		{Content: "estou ansioso", IsUser: true},
		{Content: "quem está ansioso?", IsUser: false},
		{Content: "eu, acho", IsUser: true},
		{Content: "investigue esse eu", IsUser: false},
	}

	got, err := g.Generate(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got != "resumo da sessão" {
		t.Errorf("result = %q, want trimmed reply", got)
	}
	if !strings.Contains(provider.lastPrompt, "Paciente: estou ansioso") {
		t.Error("user turns must carry the patient label")
	}
	if !strings.Contains(provider.lastPrompt, "Terapeuta: quem está ansioso?") {
		t.Error("assistant turns must carry the therapist label")
	}
	if !strings.Contains(provider.lastPrompt, "TRANSCRIÇÃO:") {
		t.Error("prompt must embed the transcript section")
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("model offline")}
	g := NewGenerator(provider, "Paciente", "Terapeuta")

	_, err := g.Generate(context.Background(), transcript(4))
	if err == nil {
		t.Fatal("expected error from provider")
	}
	if errors.Is(err, ErrNotEnoughMessages) {
		t.Error("provider failure must not look like a short transcript")
	}
}
