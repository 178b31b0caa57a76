package billing

import (
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
)

func toBillingResponse(b *entity.Billing) dto.BillingResponse {
	return dto.BillingResponse{
		ID:                 b.ID,
		ContractID:         b.ContractID,
		CompanyID:          b.CompanyID,
		Competency:         b.CompetencyMonth.Format(rules.CompetencyLayout),
		GrossValue:         b.GrossValue,
		IssueDate:          dto.FormatDate(b.IssueDate),
		DueDate:            dto.FormatDate(b.DueDate),
		Status:             b.Status,
		Notes:              b.Notes,
		ISSValue:           b.ISSValue,
		PISValue:           b.PISValue,
		COFINSValue:        b.COFINSValue,
		CSLLValue:          b.CSLLValue,
		IRPJValue:          b.IRPJValue,
		INSSValue:          b.INSSValue,
		EscrowValue:        b.EscrowValue,
		NetInvoiceValue:    b.NetInvoiceValue,
		NetReceivableValue: b.NetReceivableValue,
	}
}

func toBillingResponses(list []*entity.Billing) []dto.BillingResponse {
	out := make([]dto.BillingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBillingResponse(b))
	}
	return out
}

func toReceivableResponse(r *entity.Receivable, today time.Time) dto.ReceivableResponse {
	return dto.ReceivableResponse{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		BillingID:    r.BillingID,
		Value:        r.Value,
		DueDate:      dto.FormatDate(r.DueDate),
		Status:       r.Status,
		ReceivedDate: dto.FormatOptionalDate(r.ReceivedDate),
		Overdue:      r.IsOverdue(today),
	}
}

func toContractResponse(c *entity.Contract) *dto.ContractResponse {
	resp := &dto.ContractResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		WorkSiteID:       c.WorkSiteID,
		Description:      c.Description,
		MonthlyBaseValue: c.MonthlyBaseValue,
		BillingDay:       c.BillingDay,
		DueDay:           c.DueDay,
		StartDate:        dto.FormatOptionalDate(c.StartDate),
		DurationMonths:   c.DurationMonths,
		Active:           c.Active,
		RetainISS:        c.RetainISS,
		ISSRate:          c.ISSRate,
		RetainPIS:        c.RetainPIS,
		RetainCOFINS:     c.RetainCOFINS,
		RetainCSLL:       c.RetainCSLL,
		RetainIRPJ:       c.RetainIRPJ,
		RetainINSS:       c.RetainINSS,
		RetainEscrow:     c.RetainEscrow,
		EscrowRate:       c.EscrowRate,
	}
	if end, ok := c.EndDate(); ok {
		resp.EndDate = dto.FormatOptionalDate(&end)
	}
	return resp
}
