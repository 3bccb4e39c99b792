package prompt

import (
	"strings"
	"testing"
	"time"
)

func newTestBuilder() *Builder {
	return NewBuilder("PERSONA PADRÃO", "SUPORTE PADRÃO")
}

func TestBuildUsesDefaultsWhenSettingsEmpty(t *testing.T) {
	b := newTestBuilder()

	out := b.Build(BuildInput{})

	if !strings.HasPrefix(out, "PERSONA PADRÃO") {
		t.Error("expected default persona at the start of the prompt")
	}
	if !strings.Contains(out, "SUPORTE PADRÃO") {
		t.Error("expected default support document")
	}
	if !strings.Contains(out, "INSTRUÇÃO FINAL") {
		t.Error("expected closing instruction")
	}
}

func TestBuildPrefersConfiguredSettings(t *testing.T) {
	b := newTestBuilder()

	out := b.Build(BuildInput{
		BasePrompt:      "PERSONA CONFIGURADA",
		SupportDocument: "FAQ CONFIGURADO",
	})

	if strings.Contains(out, "PERSONA PADRÃO") {
		t.Error("default persona should be replaced by the configured one")
	}
	if !strings.HasPrefix(out, "PERSONA CONFIGURADA") {
		t.Error("expected configured persona at the start")
	}
	if !strings.Contains(out, "FAQ CONFIGURADO") {
		t.Error("expected configured support document")
	}
}

func TestBuildSectionOrder(t *testing.T) {
	b := newTestBuilder()

	out := b.Build(BuildInput{
		BasePrompt:       "BASE",
		AdditionalPrompt: "ADICIONAL",
		TheoryDocument:   "TEORIA",
		Documents: []NamedDocument{
			{Title: "Manual", Content: "CONTEUDO-MANUAL"},
		},
		SupportDocument: "SUPORTE",
		SessionSummaries: []SessionSummary{
			{Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Summary: "RESUMO-ANTIGO"},
		},
		CurrentContext: "CONTEXTO-ATUAL",
	})

	markers := []string{
		"BASE",
		"ADICIONAL",
		"TEORIA",
		"=== DOCUMENTO: Manual ===",
		"CONTEUDO-MANUAL",
		"SUPORTE",
		"RESUMO-ANTIGO",
		"CONTEXTO-ATUAL",
		"INSTRUÇÃO FINAL",
	}

	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		if idx < 0 {
			t.Fatalf("marker %q not found in prompt", m)
		}
		if idx < last {
			t.Errorf("marker %q appeared out of order", m)
		}
		last = idx
	}
}

func TestBuildSummaryDateFormat(t *testing.T) {
	b := newTestBuilder()

	out := b.Build(BuildInput{
		SessionSummaries: []SessionSummary{
			{Date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), Summary: "algo"},
		},
	})

	if !strings.Contains(out, "[Sessão de 03/02/2025]") {
		t.Error("expected dd/mm/yyyy session date tag")
	}
}

func TestBuildSupportMode(t *testing.T) {
	b := newTestBuilder()

	withSupport := b.Build(BuildInput{SupportMode: true})
	withoutSupport := b.Build(BuildInput{SupportMode: false})

	if !strings.Contains(withSupport, "MODO SUPORTE") {
		t.Error("expected support-mode block when SupportMode is set")
	}
	if strings.Contains(withoutSupport, "MODO SUPORTE") {
		t.Error("support-mode block must be absent for therapy turns")
	}
}

func TestBuildSkipsEmptySections(t *testing.T) {
	b := newTestBuilder()

	out := b.Build(BuildInput{
		AdditionalPrompt: "   ",
		TheoryDocument:   "",
		Documents: []NamedDocument{
			{Title: "Vazio", Content: "  "},
		},
	})

	if strings.Contains(out, "ORIENTAÇÕES ADICIONAIS") {
		t.Error("blank additional prompt should not emit its section")
	}
	if strings.Contains(out, "BASE TEÓRICA") {
		t.Error("empty theory document should not emit its section")
	}
	if strings.Contains(out, "DOCUMENTO: Vazio") {
		t.Error("documents with blank content should be skipped")
	}
}
