package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleCSV = `company_id;work_site_id;description;monthly_base_value;billing_day;due_day;retain_iss;iss_rate;retain_inss
empresa-1;posto-1;Vigilância 24h;10.000,50;5;15;sim;5;x
empresa-2;posto-9;Portaria;7500;0;0;não;;
`

func TestParseContractsCSV(t *testing.T) {
	list, err := parseContractsCSV(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, "empresa-1", first.CompanyID)
	assert.Equal(t, "Vigilância 24h", first.Description)
	assert.Equal(t, "10000.5", first.MonthlyBaseValue.String())
	assert.Equal(t, 5, first.BillingDay)
	assert.Equal(t, 15, first.DueDay)
	assert.True(t, first.RetainISS)
	assert.True(t, first.RetainINSS)
	assert.Equal(t, "5", first.ISSRate.String())

	second := list[1]
	assert.Equal(t, "7500", second.MonthlyBaseValue.String())
	assert.False(t, second.RetainISS)
	assert.True(t, second.ISSRate.IsZero())
}

func TestParseContractsCSV_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(sampleCSV)
	require.NoError(t, err)

	list, err := parseContractsCSV(bytes.NewReader([]byte(encoded)), true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Vigilância 24h", list[0].Description)
}

func TestParseContractsCSV_Errores(t *testing.T) {
	_, err := parseContractsCSV(strings.NewReader("company_id;description\nx;y\n"), false)
	assert.ErrorContains(t, err, "monthly_base_value")

	_, err = parseContractsCSV(strings.NewReader("company_id;work_site_id;monthly_base_value\na;b;abc\n"), false)
	assert.ErrorContains(t, err, "línea 2")
}
