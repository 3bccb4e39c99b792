// FILE: pkg/therapy/prompt/builder.go
// Assembles the system prompt for a chat turn. Section order is fixed;
// sections with no source text are skipped entirely.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

// NamedDocument is an admin-managed reference document injected verbatim
// between title delimiters.
type NamedDocument struct {
	Title   string
	Content string
}

// SessionSummary is one prior session's summary tagged with its date.
type SessionSummary struct {
	Date    time.Time
	Summary string
}

type BuildInput struct {
	BasePrompt       string
	AdditionalPrompt string
	TheoryDocument   string
	Documents        []NamedDocument
	SupportDocument  string
	SessionSummaries []SessionSummary
	CurrentContext   string
	SupportMode      bool
}

type Builder struct {
	defaultPersona string
	defaultSupport string
}

// NewBuilder creates a Builder with the fallback texts used when the admin
// has not configured a base prompt or a support document.
func NewBuilder(defaultPersona, defaultSupport string) *Builder {
	return &Builder{
		defaultPersona: defaultPersona,
		defaultSupport: defaultSupport,
	}
}

func (b *Builder) Build(in BuildInput) string {
	var sb strings.Builder

	persona := in.BasePrompt
	if strings.TrimSpace(persona) == "" {
		persona = b.defaultPersona
	}
	sb.WriteString(persona)

	if s := strings.TrimSpace(in.AdditionalPrompt); s != "" {
		sb.WriteString("\n\nORIENTAÇÕES ADICIONAIS:\n")
		sb.WriteString(s)
	}

	if s := strings.TrimSpace(in.TheoryDocument); s != "" {
		sb.WriteString("\n\nBASE TEÓRICA:\n")
		sb.WriteString(s)
	}

	for _, doc := range in.Documents {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n\n=== DOCUMENTO: %s ===\n", doc.Title))
		sb.WriteString(doc.Content)
		sb.WriteString(fmt.Sprintf("\n=== FIM DO DOCUMENTO: %s ===", doc.Title))
	}

	support := in.SupportDocument
	if strings.TrimSpace(support) == "" {
		support = b.defaultSupport
	}
	sb.WriteString("\n\n")
	sb.WriteString(support)

	if len(in.SessionSummaries) > 0 {
		sb.WriteString("\n\nMEMÓRIA DE SESSÕES ANTERIORES (use para dar continuidade ao acompanhamento):\n")
		for _, s := range in.SessionSummaries {
			if strings.TrimSpace(s.Summary) == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n[Sessão de %s]\n%s\n", s.Date.Format("02/01/2006"), s.Summary))
		}
	}

	if s := strings.TrimSpace(in.CurrentContext); s != "" {
		sb.WriteString("\n\nCONTEXTO DA SESSÃO ATUAL:\n")
		sb.WriteString(s)
	}

	if in.SupportMode {
		sb.WriteString("\n\nMODO SUPORTE: a mensagem atual é uma dúvida sobre planos, pagamentos, limites ou problemas técnicos. Responda de forma objetiva usando as informações de suporte acima, sem conduzir investigação terapêutica nesta resposta. Informe que mensagens de suporte não consomem o limite do plano.")
	}

	sb.WriteString("\n\nINSTRUÇÃO FINAL: você possui memória das sessões anteriores deste paciente; use-a com naturalidade. Se o paciente relatar risco a si mesmo ou a terceiros, acolha e recomende com firmeza a busca de um profissional de saúde mental ou do CVV (188).")

	return sb.String()
}
