package suggest

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

func history() []TranscriptMessage {
	return []TranscriptMessage{
		{Content: "estou muito ansioso ultimamente", IsUser: true},
		{Content: "o que acontece quando a ansiedade surge?", IsUser: false},
		{Content: "minha mente não para de pensar", IsUser: true},
	}
}

func TestGenerateRequiresHistory(t *testing.T) {
	g := NewGenerator(&stubProvider{}, "Paciente", "Terapeuta")

	_, err := g.Generate(context.Background(), nil)
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("err = %v, want ErrNoHistory", err)
	}
}

func TestGenerateParsesThreeSuggestions(t *testing.T) {
	provider := &stubProvider{reply: `1. "Quero falar sobre minha ansiedade"
2) Como posso acalmar minha mente?
- Quem é aquele que não para de pensar?`}
	g := NewGenerator(provider, "Paciente", "Terapeuta")

	got, err := g.Generate(context.Background(), history())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{
		"Quero falar sobre minha ansiedade",
		"Como posso acalmar minha mente?",
		"Quem é aquele que não para de pensar?",
	}
	if len(got) != Count {
		t.Fatalf("got %d suggestions, want %d", len(got), Count)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, got[i], want[i])
		}
	}

	if !strings.Contains(provider.lastPrompt, "Paciente: estou muito ansioso ultimamente") {
		t.Error("user turns must carry the patient label")
	}
	if !strings.Contains(provider.lastPrompt, "SUGESTÕES:") {
		t.Error("prompt must embed the suggestions section")
	}
}

func TestGenerateTruncatesExtraLines(t *testing.T) {
	provider := &stubProvider{reply: "um\ndois\ntrês\nquatro\ncinco"}
	g := NewGenerator(provider, "Paciente", "Terapeuta")

	got, err := g.Generate(context.Background(), history())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != Count {
		t.Errorf("got %d suggestions, want %d", len(got), Count)
	}
}

func TestGenerateRejectsSparseOutput(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"two lines", "uma sugestão\noutra sugestão"},
		{"overlong lines dropped", "ok\nok também\n" + strings.Repeat("x", 200)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(&stubProvider{reply: tc.reply}, "Paciente", "Terapeuta")
			_, err := g.Generate(context.Background(), history())
			if !errors.Is(err, ErrMalformedOutput) {
				t.Errorf("err = %v, want ErrMalformedOutput", err)
			}
		})
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("model offline")}
	g := NewGenerator(provider, "Paciente", "Terapeuta")

	_, err := g.Generate(context.Background(), history())
	if err == nil {
		t.Fatal("expected error from provider")
	}
	if errors.Is(err, ErrNoHistory) || errors.Is(err, ErrMalformedOutput) {
		t.Error("provider failure must not look like a parse problem")
	}
}
