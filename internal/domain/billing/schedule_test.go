package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCompetency(t *testing.T) {
	got, err := billing.ParseCompetency("2024-02")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 1), got)

	_, err = billing.ParseCompetency("02/2024")
	assert.Error(t, err)
}

func TestWithinValidity(t *testing.T) {
	start := date(2024, time.January, 1)
	c := &entity.Contract{StartDate: &start, DurationMonths: 3}

	tests := []struct {
		name  string
		month time.Time
		want  bool
	}{
		{"antes del inicio", date(2023, time.December, 1), false},
		{"primer mes", date(2024, time.January, 1), true},
		{"último mes (vigente hasta 31/03)", date(2024, time.March, 1), true},
		{"mes siguiente al fin", date(2024, time.April, 1), false},
		{"junio fuera de vigencia", date(2024, time.June, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.WithinValidity(c, tt.month))
		})
	}
}

func TestWithinValidity_InicioAMitadDeMes(t *testing.T) {
	start := date(2024, time.January, 15)
	c := &entity.Contract{StartDate: &start, DurationMonths: 1}

	// vigente 15/01 a 14/02: enero y febrero se tocan, marzo no
	assert.True(t, billing.WithinValidity(c, date(2024, time.January, 1)))
	assert.True(t, billing.WithinValidity(c, date(2024, time.February, 1)))
	assert.False(t, billing.WithinValidity(c, date(2024, time.March, 1)))
}

func TestWithinValidity_SinVigenciaSiempreFactura(t *testing.T) {
	start := date(2020, time.January, 1)
	assert.True(t, billing.WithinValidity(&entity.Contract{}, date(2030, time.May, 1)))
	assert.True(t, billing.WithinValidity(&entity.Contract{StartDate: &start}, date(2030, time.May, 1)))
}

func TestIssueDate(t *testing.T) {
	today := date(2024, time.July, 9)

	assert.Equal(t, date(2024, time.February, 29),
		billing.IssueDate(&entity.Contract{BillingDay: 31}, date(2024, time.February, 1), today),
		"día 31 en febrero bisiesto se limita al 29")
	assert.Equal(t, date(2023, time.February, 28),
		billing.IssueDate(&entity.Contract{BillingDay: 30}, date(2023, time.February, 1), today))
	assert.Equal(t, date(2024, time.March, 10),
		billing.IssueDate(&entity.Contract{BillingDay: 10}, date(2024, time.March, 1), today))
	assert.Equal(t, today,
		billing.IssueDate(&entity.Contract{}, date(2024, time.March, 1), today),
		"sin día de facturación usa la fecha actual")
}

func TestDueDate(t *testing.T) {
	issue := date(2024, time.January, 25)

	assert.Equal(t, issue, billing.DueDate(&entity.Contract{}, issue))
	assert.Equal(t, date(2024, time.January, 30), billing.DueDate(&entity.Contract{DueDay: 30}, issue))
	assert.Equal(t, date(2024, time.February, 10), billing.DueDate(&entity.Contract{DueDay: 10}, issue))
	assert.Equal(t, date(2024, time.February, 29), billing.DueDate(&entity.Contract{DueDay: 31}, date(2024, time.February, 5)))
}
