package classify

import "testing"

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"therapy sharing", "Estou me sentindo muito ansioso ultimamente", KindTherapy},
		{"therapy question", "Por que eu sinto tanto medo de falhar?", KindTherapy},
		{"cancel subscription", "Quero cancelar minha assinatura", KindSupport},
		{"billing", "Fui cobrado duas vezes no pagamento", KindSupport},
		{"refund", "Como peço reembolso?", KindSupport},
		{"limits", "Qual é o limite de mensagens do meu plano?", KindSupport},
		{"how it works", "Como funciona o aplicativo?", KindSupport},
		{"price", "Quanto custa o plano premium?", KindSupport},
		{"uppercase keyword", "PRECISO DE SUPORTE URGENTE", KindSupport},
		{"technical issue", "Estou com um problema técnico no app", KindSupport},
		{"keyword inside larger word context", "Meu plano de vida mudou muito", KindSupport},
		{"empty message", "", KindTherapy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifierIsDeterministic(t *testing.T) {
	c := NewKeywordClassifier()
	msg := "quero mudar de plano"
	first := c.Classify(msg)
	for i := 0; i < 10; i++ {
		if c.Classify(msg) != first {
			t.Fatal("classification changed between calls for identical input")
		}
	}
}
