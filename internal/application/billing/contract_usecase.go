package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// ContractUseCase casos de uso para contratos (fuente del faturamento mensual).
type ContractUseCase struct {
	repo repository.ContractRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository) *ContractUseCase {
	return &ContractUseCase{repo: repo}
}

// Create crea un contrato. Por defecto queda activo.
func (uc *ContractUseCase) Create(ctx context.Context, in dto.ContractRequest) (*dto.ContractResponse, error) {
	now := time.Now()
	c := &entity.Contract{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
	}
	if err := applyContractRequest(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// Update reemplaza los datos del contrato. Los faturamentos ya generados no cambian.
func (uc *ContractUseCase) Update(ctx context.Context, id string, in dto.ContractRequest) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyContractRequest(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// GetByID obtiene un contrato.
func (uc *ContractUseCase) GetByID(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toContractResponse(c), nil
}

// List lista contratos, opcionalmente solo activos o de una empresa.
func (uc *ContractUseCase) List(ctx context.Context, activeOnly bool, companyID string) ([]*dto.ContractResponse, error) {
	list, err := uc.repo.List(ctx, repository.ContractFilter{ActiveOnly: activeOnly, CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContractResponse(c))
	}
	return out, nil
}

func applyContractRequest(c *entity.Contract, in dto.ContractRequest) error {
	if in.CompanyID == "" || in.WorkSiteID == "" {
		return domain.ErrInvalidInput
	}
	if in.MonthlyBaseValue.IsNegative() || in.ISSRate.IsNegative() || in.EscrowRate.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.BillingDay < 0 || in.BillingDay > 31 || in.DueDay < 0 || in.DueDay > 31 || in.DurationMonths < 0 {
		return domain.ErrInvalidInput
	}
	start, err := dto.ParseOptionalDate(in.StartDate)
	if err != nil {
		return domain.ErrInvalidInput
	}

	c.CompanyID = in.CompanyID
	c.WorkSiteID = in.WorkSiteID
	c.Description = in.Description
	c.MonthlyBaseValue = in.MonthlyBaseValue.Round(2)
	c.BillingDay = in.BillingDay
	c.DueDay = in.DueDay
	c.StartDate = start
	c.DurationMonths = in.DurationMonths
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.RetainISS = in.RetainISS
	c.ISSRate = in.ISSRate
	c.RetainPIS = in.RetainPIS
	c.RetainCOFINS = in.RetainCOFINS
	c.RetainCSLL = in.RetainCSLL
	c.RetainIRPJ = in.RetainIRPJ
	c.RetainINSS = in.RetainINSS
	c.RetainEscrow = in.RetainEscrow
	c.EscrowRate = in.EscrowRate
	return nil
}
