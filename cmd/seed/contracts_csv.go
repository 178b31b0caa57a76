package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
)

var requiredColumns = []string{"company_id", "work_site_id", "monthly_base_value"}

// parseContractsCSV lee un contrato por fila. La primera fila es la cabecera;
// las columnas se ubican por nombre, así que el orden no importa.
func parseContractsCSV(r io.Reader, latin1 bool) ([]dto.ContractRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("falta la columna %q", name)
		}
	}

	var out []dto.ContractRequest
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := csvRow{cols: cols, record: record}
		in, err := row.contract()
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}

type csvRow struct {
	cols   map[string]int
	record []string
}

func (r csvRow) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r csvRow) contract() (dto.ContractRequest, error) {
	var in dto.ContractRequest
	var err error
	in.CompanyID = r.get("company_id")
	in.WorkSiteID = r.get("work_site_id")
	in.Description = r.get("description")
	in.StartDate = r.get("start_date")

	if in.MonthlyBaseValue, err = r.decimal("monthly_base_value"); err != nil {
		return in, err
	}
	if in.ISSRate, err = r.decimal("iss_rate"); err != nil {
		return in, err
	}
	if in.EscrowRate, err = r.decimal("escrow_rate"); err != nil {
		return in, err
	}
	if in.BillingDay, err = r.int("billing_day"); err != nil {
		return in, err
	}
	if in.DueDay, err = r.int("due_day"); err != nil {
		return in, err
	}
	if in.DurationMonths, err = r.int("duration_months"); err != nil {
		return in, err
	}

	in.RetainISS = r.bool("retain_iss")
	in.RetainPIS = r.bool("retain_pis")
	in.RetainCOFINS = r.bool("retain_cofins")
	in.RetainCSLL = r.bool("retain_csll")
	in.RetainIRPJ = r.bool("retain_irpj")
	in.RetainINSS = r.bool("retain_inss")
	in.RetainEscrow = r.bool("retain_escrow")
	return in, nil
}

// decimal acepta "10.000,50" (pt-BR) y "10000.50".
func (r csvRow) decimal(name string) (decimal.Decimal, error) {
	s := r.get(name)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func (r csvRow) int(name string) (int, error) {
	s := r.get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func (r csvRow) bool(name string) bool {
	switch strings.ToLower(r.get(name)) {
	case "s", "sim", "x", "1", "true":
		return true
	}
	return false
}
