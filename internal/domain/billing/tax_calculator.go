// Package billing contiene las reglas puras de facturación: cálculo de retenciones
// y calendario (competencia, emisión, vencimiento, vigencia del contrato).
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// StatutoryRates alícuotas legales de retención (fracción, no porcentaje).
type StatutoryRates struct {
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	CSLL   decimal.Decimal
	IRPJ   decimal.Decimal
	INSS   decimal.Decimal
}

// DefaultStatutoryRates: PIS 0,65%, COFINS 3%, CSLL 1%, IRPJ 1,5%, INSS 11%.
var DefaultStatutoryRates = StatutoryRates{
	PIS:    decimal.RequireFromString("0.0065"),
	COFINS: decimal.RequireFromString("0.0300"),
	CSLL:   decimal.RequireFromString("0.0100"),
	IRPJ:   decimal.RequireFromString("0.0150"),
	INSS:   decimal.RequireFromString("0.1100"),
}

// TaxConfig banderas y alícuotas configuradas en el contrato.
type TaxConfig struct {
	RetainISS    bool
	ISSRate      decimal.Decimal // porcentaje
	RetainPIS    bool
	RetainCOFINS bool
	RetainCSLL   bool
	RetainIRPJ   bool
	RetainINSS   bool
	RetainEscrow bool
	EscrowRate   decimal.Decimal // porcentaje
}

// TaxConfigFromContract extrae la configuración tributaria del contrato.
func TaxConfigFromContract(c *entity.Contract) TaxConfig {
	return TaxConfig{
		RetainISS:    c.RetainISS,
		ISSRate:      c.ISSRate,
		RetainPIS:    c.RetainPIS,
		RetainCOFINS: c.RetainCOFINS,
		RetainCSLL:   c.RetainCSLL,
		RetainIRPJ:   c.RetainIRPJ,
		RetainINSS:   c.RetainINSS,
		RetainEscrow: c.RetainEscrow,
		EscrowRate:   c.EscrowRate,
	}
}

// TaxBreakdown retenciones itemizadas y valores líquidos de un faturamento.
type TaxBreakdown struct {
	Gross           decimal.Decimal
	ISS             decimal.Decimal
	PIS             decimal.Decimal
	COFINS          decimal.Decimal
	CSLL            decimal.Decimal
	IRPJ            decimal.Decimal
	INSS            decimal.Decimal
	Escrow          decimal.Decimal
	TotalDeductions decimal.Decimal
	NetInvoice      decimal.Decimal
	NetReceivable   decimal.Decimal
}

// ComputeTaxes calcula las retenciones con las alícuotas legales por defecto.
func ComputeTaxes(gross decimal.Decimal, cfg TaxConfig) TaxBreakdown {
	return DefaultStatutoryRates.Compute(gross, cfg)
}

// Compute calcula las retenciones sobre el valor bruto.
//
// ISS se calcula siempre (referencia) pero solo descuenta si RetainISS.
// La caução no reduce la nota, solo el valor a recibir.
// Valores negativos se tratan como cero. El bruto se lleva a centavos antes de calcular
// y cada parcela se redondea a centavos.
func (r StatutoryRates) Compute(gross decimal.Decimal, cfg TaxConfig) TaxBreakdown {
	gross = money(nonNegative(gross))

	var t TaxBreakdown
	t.Gross = gross
	t.ISS = money(gross.Mul(nonNegative(cfg.ISSRate)).Div(hundred))
	t.PIS = withheld(cfg.RetainPIS, gross, r.PIS)
	t.COFINS = withheld(cfg.RetainCOFINS, gross, r.COFINS)
	t.CSLL = withheld(cfg.RetainCSLL, gross, r.CSLL)
	t.IRPJ = withheld(cfg.RetainIRPJ, gross, r.IRPJ)
	t.INSS = withheld(cfg.RetainINSS, gross, r.INSS)
	if cfg.RetainEscrow {
		t.Escrow = money(gross.Mul(nonNegative(cfg.EscrowRate)).Div(hundred))
	}

	t.TotalDeductions = t.PIS.Add(t.COFINS).Add(t.CSLL).Add(t.IRPJ).Add(t.INSS)
	if cfg.RetainISS {
		t.TotalDeductions = t.TotalDeductions.Add(t.ISS)
	}
	t.NetInvoice = gross.Sub(t.TotalDeductions)
	t.NetReceivable = t.NetInvoice.Sub(t.Escrow)
	return t
}

// Apply copia el desglose en las columnas del faturamento.
func (t TaxBreakdown) Apply(b *entity.Billing) {
	b.GrossValue = t.Gross
	b.ISSValue = t.ISS
	b.PISValue = t.PIS
	b.COFINSValue = t.COFINS
	b.CSLLValue = t.CSLL
	b.IRPJValue = t.IRPJ
	b.INSSValue = t.INSS
	b.EscrowValue = t.Escrow
	b.NetInvoiceValue = t.NetInvoice
	b.NetReceivableValue = t.NetReceivable
}

func withheld(retain bool, gross, rate decimal.Decimal) decimal.Decimal {
	if !retain {
		return decimal.Zero
	}
	return money(gross.Mul(nonNegative(rate)))
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
