package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// PDFUseCase genera el espelho (demostrativo) PDF de un faturamento con su desglose de retenciones.
type PDFUseCase struct {
	billingRepo  repository.BillingRepository
	contractRepo repository.ContractRepository
	generator    StatementPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	billingRepo repository.BillingRepository,
	contractRepo repository.ContractRepository,
	generator StatementPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		billingRepo:  billingRepo,
		contractRepo: contractRepo,
		generator:    generator,
	}
}

// DownloadStatementPDF carga el faturamento y su contrato y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el faturamento o su contrato no existen.
func (uc *PDFUseCase) DownloadStatementPDF(ctx context.Context, billingID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar faturamento ─────────────────────────────────────────────────
	b, err := uc.billingRepo.GetByID(ctx, billingID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener faturamento: %w", err)
	}
	if b == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar contrato ────────────────────────────────────────────────────
	contract, err := uc.contractRepo.GetByID(ctx, b.ContractID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener contrato: %w", err)
	}
	if contract == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateBillingStatement(ctx, b, contract)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("faturamento_%s_%s.pdf", b.CompetencyMonth.Format(rules.CompetencyLayout), shortID(b.ID))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
