package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/entity"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Emitir y deshacer son varias escrituras dependientes: o se aplican todas o ninguna.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		contractRepo repository.ContractRepository,
		billingRepo repository.BillingRepository,
		receivableRepo repository.ReceivableRepository,
	) error) error
}

// StatementPDFGenerator genera el espelho (demostrativo) de un faturamento.
type StatementPDFGenerator interface {
	GenerateBillingStatement(ctx context.Context, billing *entity.Billing, contract *entity.Contract) ([]byte, error)
}

// Clock fuente de la fecha actual (inyectable en tests).
type Clock func() time.Time

func today(now Clock) time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
