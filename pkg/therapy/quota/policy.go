// FILE: pkg/therapy/quota/policy.go
// Pure plan/quota policy. All counter mutations happen in the repository
// layer as single-statement SQL updates; this package only decides.
package quota

import (
	"fmt"
	"time"
)

const (
	PlanFree      = "free"
	PlanBasico    = "basico"
	PlanPremium   = "premium"
	PlanIlimitado = "ilimitado"

	// Unlimited is the remaining-messages sentinel for the ilimitado plan.
	Unlimited = -1
)

// Plan describes one subscription tier of the catalog.
type Plan struct {
	Id           string
	Name         string
	Price        float64
	Currency     string
	DailyLimit   int // -1 means not limited per day
	MonthlyLimit int // -1 means not limited per month
	Description  string
}

// Catalog is the static plan table, in display order.
var Catalog = []Plan{
	{
		Id:           PlanFree,
		Name:         "Gratuito",
		Price:        0,
		Currency:     "brl",
		DailyLimit:   -1,
		MonthlyLimit: 7,
		Description:  "7 mensagens por mês para conhecer a terapia.",
	},
	{
		Id:           PlanBasico,
		Name:         "Básico",
		Price:        29.90,
		Currency:     "brl",
		DailyLimit:   7,
		MonthlyLimit: -1,
		Description:  "7 mensagens por dia.",
	},
	{
		Id:           PlanPremium,
		Name:         "Premium",
		Price:        49.90,
		Currency:     "brl",
		DailyLimit:   30,
		MonthlyLimit: -1,
		Description:  "30 mensagens por dia.",
	},
	{
		Id:           PlanIlimitado,
		Name:         "Ilimitado",
		Price:        99.90,
		Currency:     "brl",
		DailyLimit:   -1,
		MonthlyLimit: -1,
		Description:  "Mensagens ilimitadas.",
	},
}

// FindPlan returns the catalog entry for the given plan id. Unknown ids
// fall back to the free plan so a corrupted user row degrades to the most
// restrictive tier instead of an unlimited one.
func FindPlan(planId string) Plan {
	for _, p := range Catalog {
		if p.Id == planId {
			return p
		}
	}
	return Catalog[0]
}

// IsPaid reports whether the plan can be purchased through checkout.
func IsPaid(planId string) bool {
	return planId == PlanBasico || planId == PlanPremium || planId == PlanIlimitado
}

// IsKnown reports whether the plan id exists in the catalog.
func IsKnown(planId string) bool {
	for _, p := range Catalog {
		if p.Id == planId {
			return true
		}
	}
	return false
}

// NeedsDailyReset reports whether the daily counter belongs to a previous
// UTC calendar day. A nil last-message date counts as stale, so accounts
// that never sent a message start from a freshly stamped window.
func NeedsDailyReset(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	l := last.UTC()
	n := now.UTC()
	if l.Year() != n.Year() || l.Month() != n.Month() || l.Day() != n.Day() {
		// Only dates strictly before today count; a clock skewed into the
		// future must not wipe today's usage.
		return l.Before(time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC))
	}
	return false
}

// Remaining returns how many messages the user may still send in the
// current window, or Unlimited for the ilimitado plan. Callers must apply
// NeedsDailyReset before passing usedToday.
func Remaining(planId string, usedToday, usedThisMonth int) int {
	p := FindPlan(planId)
	if p.DailyLimit < 0 && p.MonthlyLimit < 0 {
		return Unlimited
	}
	var remaining int
	if p.DailyLimit >= 0 {
		remaining = p.DailyLimit - usedToday
	} else {
		remaining = p.MonthlyLimit - usedThisMonth
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Allowed reports whether one more therapy message fits in the quota.
func Allowed(planId string, usedToday, usedThisMonth int) bool {
	r := Remaining(planId, usedToday, usedThisMonth)
	return r == Unlimited || r > 0
}

// LimitMessage returns the plan-specific upgrade message shown when the
// quota is exhausted.
func LimitMessage(planId string) string {
	switch planId {
	case PlanBasico:
		return "Você atingiu o limite de 7 mensagens diárias do plano Básico. Faça upgrade para o Premium ou Ilimitado, ou volte amanhã para continuar nossa conversa."
	case PlanPremium:
		return "Você atingiu o limite de 30 mensagens diárias do plano Premium. Faça upgrade para o Ilimitado, ou volte amanhã para continuar nossa conversa."
	case PlanIlimitado:
		return ""
	default:
		p := FindPlan(planId)
		return fmt.Sprintf("Você atingiu o limite de %d mensagens mensais do plano Gratuito. Assine um de nossos planos para continuar conversando.", p.MonthlyLimit)
	}
}
