package billing

import (
	"fmt"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// CompetencyLayout formato de la competencia (mes de referencia).
const CompetencyLayout = "2006-01"

// ParseCompetency interpreta "YYYY-MM" y devuelve el primer día del mes (UTC).
func ParseCompetency(s string) (time.Time, error) {
	t, err := time.Parse(CompetencyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("competencia %q: %w", s, err)
	}
	return t, nil
}

// MonthOf devuelve el primer día del mes de t.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth devuelve el último día del mes de t.
func LastDayOfMonth(t time.Time) time.Time {
	return MonthOf(t).AddDate(0, 1, -1)
}

// dayInMonth devuelve la fecha del día indicado dentro del mes, limitada al último día
// (día 31 en febrero -> 28/29).
func dayInMonth(month time.Time, day int) time.Time {
	last := LastDayOfMonth(month)
	if day > last.Day() {
		day = last.Day()
	}
	return time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
}

// IssueDate fecha de emisión del faturamento de la competencia.
// Sin BillingDay se usa la fecha actual.
func IssueDate(c *entity.Contract, competency, today time.Time) time.Time {
	if c.BillingDay <= 0 {
		y, m, d := today.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return dayInMonth(competency, c.BillingDay)
}

// DueDate primera fecha en o después de la emisión cuyo día coincide con DueDay
// (limitado al último día del mes). Sin DueDay vence en la emisión.
func DueDate(c *entity.Contract, issue time.Time) time.Time {
	if c.DueDay <= 0 {
		return issue
	}
	due := dayInMonth(issue, c.DueDay)
	if due.Before(issue) {
		due = dayInMonth(MonthOf(issue).AddDate(0, 1, 0), c.DueDay)
	}
	return due
}

// WithinValidity indica si la vigencia del contrato intersecta el mes de competencia.
// Contratos sin inicio o sin duración siempre se facturan.
func WithinValidity(c *entity.Contract, competency time.Time) bool {
	end, ok := c.EndDate()
	if !ok {
		return true
	}
	start := *c.StartDate
	first := MonthOf(competency)
	last := LastDayOfMonth(competency)
	return !last.Before(dateOnly(start)) && !first.After(dateOnly(end))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
