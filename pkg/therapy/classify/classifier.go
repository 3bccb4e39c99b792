// FILE: pkg/therapy/classify/classifier.go
// Detects support/billing questions so they bypass the therapy quota.
package classify

import "strings"

type Kind int

const (
	KindTherapy Kind = iota
	KindSupport
)

// Classifier decides whether a message is a therapy turn or a support
// question. The same instance must serve both the pre-quota check and the
// post-exchange accounting so the two decisions always agree.
type Classifier interface {
	Classify(text string) Kind
}

// KeywordClassifier matches a fixed Portuguese vocabulary of billing,
// limits and technical terms by case-insensitive substring.
type KeywordClassifier struct {
	keywords []string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		keywords: []string{
			"cancelar",
			"cancelamento",
			"assinatura",
			"plano",
			"pagamento",
			"cobrança",
			"cobranca",
			"fatura",
			"reembolso",
			"estorno",
			"limite",
			"mensagens restantes",
			"quantas mensagens",
			"como funciona",
			"suporte",
			"problema técnico",
			"problema tecnico",
			"não consigo acessar",
			"nao consigo acessar",
			"erro no app",
			"erro no site",
			"upgrade",
			"mudar de plano",
			"trocar de plano",
			"preço",
			"preco",
			"quanto custa",
		},
	}
}

func (c *KeywordClassifier) Classify(text string) Kind {
	lowered := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return KindSupport
		}
	}
	return KindTherapy
}
