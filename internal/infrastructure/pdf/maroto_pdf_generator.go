// Package pdf genera el espelho (demostrativo) de un faturamento en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Competência + Situação  │  Emissão / Vencimento    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRATO: descrição / empresa / posto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Valor bruto e retenções                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Líquido da nota / Líquido a receber                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

var _ appbilling.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBillingStatement genera el PDF del faturamento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillingStatement(
	_ context.Context,
	b *entity.Billing,
	c *entity.Contract,
) ([]byte, error) {
	if b == nil || c == nil {
		return nil, fmt.Errorf("pdf: faturamento y contrato son obligatorios")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Faturamento "+b.CompetencyMonth.Format("01/2006"), true).
		WithAuthor("Gestão Segurança", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contractRows(c)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(tableHeaderRow())
	m.AddRows(deductionRows(b)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRow(b))
	if b.Notes != "" {
		m.AddRows(notesRow(b.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: competencia y situación a la izquierda, fechas a la derecha.
func headerRow(b *entity.Billing) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New("DEMONSTRATIVO DE FATURAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
			text.New("Competência: "+b.CompetencyMonth.Format("01/2006"), props.Text{
				Size: 10, Top: 10,
			}),
			text.New("Situação: "+statusLabel(b.Status), props.Text{
				Size: 9, Top: 16, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emissão: "+b.IssueDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 4,
			}),
			text.New("Vencimento: "+b.DueDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 10,
			}),
		),
	)
}

func contractRows(c *entity.Contract) []core.Row {
	label := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}
	value := props.Text{Size: 8, Top: 1}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONTRATO", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
		)),
		row.New(5).Add(
			col.New(3).Add(text.New("Descrição:", label)),
			col.New(9).Add(text.New(nonEmpty(c.Description, "-"), value)),
		),
		row.New(5).Add(
			col.New(3).Add(text.New("Empresa:", label)),
			col.New(9).Add(text.New(c.CompanyID, value)),
		),
		row.New(5).Add(
			col.New(3).Add(text.New("Posto:", label)),
			col.New(9).Add(text.New(nonEmpty(c.WorkSiteID, "-"), value)),
		),
		row.New(5).Add(
			col.New(3).Add(text.New("Valor mensal:", label)),
			col.New(9).Add(text.New(formatBRL(c.MonthlyBaseValue), value)),
		),
	}
}

// tableHeaderRow: cabecera con fondo de color primario.
func tableHeaderRow() core.Row {
	style := &props.Cell{BackgroundColor: colorPrimary}
	return row.New(7).WithStyle(style).Add(
		col.New(8).Add(text.New("Descrição", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Left: 1,
		})),
		col.New(4).Add(text.New("Valor", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Align: align.Right, Right: 1,
		})),
	)
}

// deductionRows: valor bruto seguido de cada retención del faturamento.
func deductionRows(b *entity.Billing) []core.Row {
	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Valor bruto", b.GrossValue},
		{"(-) ISS", b.ISSValue},
		{"(-) PIS", b.PISValue},
		{"(-) COFINS", b.COFINSValue},
		{"(-) CSLL", b.CSLLValue},
		{"(-) IRPJ", b.IRPJValue},
		{"(-) INSS", b.INSSValue},
		{"(-) Caução", b.EscrowValue},
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(8).Add(text.New(l.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatBRL(l.value), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func totalsRow(b *entity.Billing) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 7,
		})
	}
	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Líquido da nota:"),
			grandLabel("LÍQUIDO A RECEBER:"),
		),
		col.New(4).Add(
			text.New(formatBRL(b.NetInvoiceValue), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(formatBRL(b.NetReceivableValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 7,
			}),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Observações: "+notes, props.Text{Size: 7.5, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea un monto con separadores pt-BR. Ej: 9335.5 → "R$ 9.335,50".
func formatBRL(v decimal.Decimal) string {
	return brl.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

func statusLabel(status string) string {
	switch status {
	case entity.BillingStatusBilled:
		return "Emitido"
	case entity.BillingStatusPending:
		return "Pendente"
	default:
		return status
	}
}
