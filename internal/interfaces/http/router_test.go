package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/dto"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
	rules "github.com/jhoicas/Gestao-Seguranca-api/internal/domain/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Gestao-Seguranca-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Gestao-Seguranca-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Gestao-Seguranca-api/pkg/jwt"
	"github.com/jhoicas/Gestao-Seguranca-api/pkg/logger"
)

func fixedNow() time.Time { return time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newAPI arma la aplicación completa sobre el store en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	generate := billing.NewGenerateBillingsUseCase(runner, rules.DefaultStatutoryRates, log)
	lifecycle := billing.NewBillingLifecycleUseCase(runner, store.Billings(), rules.DefaultStatutoryRates, log)
	receivables := billing.NewReceivableUseCase(store.Receivables(), log)
	stockUC := inventory.NewStockLedgerUseCase(runner, store.StockProducts(), store.StockMovements(), log)
	equipmentUC := inventory.NewEquipmentUseCase(runner, store.Equipment(), store.EquipmentMovements(), log)
	generate.SetClock(fixedNow)
	lifecycle.SetClock(fixedNow)
	receivables.SetClock(fixedNow)
	stockUC.SetClock(fixedNow)
	equipmentUC.SetClock(fixedNow)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ContractUC:       billing.NewContractUseCase(store.Contracts()),
		GenerateBillings: generate,
		BillingLifecycle: lifecycle,
		BillingPDF:       billing.NewPDFUseCase(store.Billings(), store.Contracts(), infrapdf.NewMarotoPDFGenerator()),
		ReceivableUC:     receivables,
		StockUC:          stockUC,
		EquipmentUC:      equipmentUC,
		JWTSecret:        testJWTSecret,
		ServiceName:      "gestao-test",
	})
	return app
}

// call ejecuta una petición con el rol indicado ("" = sin token) y decodifica la respuesta en out.
func call(t *testing.T, app *fiber.App, role, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createContract(t *testing.T, app *fiber.App) dto.ContractResponse {
	t.Helper()
	var contract dto.ContractResponse
	status := call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/contracts", map[string]interface{}{
		"company_id":         "empresa-1",
		"work_site_id":       "posto-1",
		"description":        "Vigilância 24h",
		"monthly_base_value": 10000,
		"billing_day":        5,
		"due_day":            15,
		"retain_iss":         true,
		"iss_rate":           5,
		"retain_pis":         true,
		"retain_inss":        true,
	}, &contract)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, contract.ID)
	return contract
}

func TestHealth_EsPublico(t *testing.T) {
	app := newAPI(t)
	var body map[string]string
	status := call(t, app, "", http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_RequiereToken(t *testing.T) {
	app := newAPI(t)
	var body dto.ErrorResponse
	status := call(t, app, "", http.MethodGet, "/api/billings", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

func TestAPI_AlmoxarifeNoAccedeAFaturamento(t *testing.T) {
	app := newAPI(t)
	status := call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/billings", nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, app, pkgjwt.RoleFinance, http.MethodGet, "/api/stock/products", nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestBillingFlow_GenerarEmitirDeshacer(t *testing.T) {
	app := newAPI(t)
	createContract(t, app)

	var gen dto.GenerateBillingsResponse
	status := call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-05"}, &gen)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, gen.Generated)
	billingID := gen.Billings[0].ID
	assert.Equal(t, "2024-05-05", gen.Billings[0].IssueDate)
	assert.Equal(t, "2024-05-15", gen.Billings[0].DueDate)
	assert.True(t, gen.Billings[0].NetReceivableValue.Equal(dec("8335")))

	// Idempotente
	var again dto.GenerateBillingsResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-05"}, &again)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, again.Generated)
	assert.True(t, again.NothingToDo)

	var issued dto.IssueBillingResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/"+billingID+"/issue", nil, &issued)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "BILLED", issued.Billing.Status)
	assert.True(t, issued.Receivable.Value.Equal(dec("8335")))

	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/"+billingID+"/issue", nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Emitido: no editable
	var errBody dto.ErrorResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodDelete, "/api/billings/"+billingID, nil, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "BILLING_NOT_PENDING", errBody.Code)

	var undone dto.BillingResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/"+billingID+"/undo", nil, &undone)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PENDING", undone.Status)

	var list []dto.ReceivableResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodGet, "/api/receivables", nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}

func TestReceivableFlow_RecibirYDeshacer(t *testing.T) {
	app := newAPI(t)
	createContract(t, app)

	var gen dto.GenerateBillingsResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-05"}, &gen))
	var issued dto.IssueBillingResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleAdmin, http.MethodPost,
		"/api/billings/"+gen.Billings[0].ID+"/issue", nil, &issued))
	receivableID := issued.Receivable.ID

	var received dto.ReceivableResponse
	status := call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/receivables/"+receivableID+"/receive",
		dto.ReceiveRequest{ReceivedDate: "2024-05-14"}, &received)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "RECEIVED", received.Status)
	require.NotNil(t, received.ReceivedDate)
	assert.Equal(t, "2024-05-14", *received.ReceivedDate)

	// Recebimento liquidado: deshacer la emisión está bloqueado
	var errBody dto.ErrorResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/"+gen.Billings[0].ID+"/undo", nil, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "RECEIVABLE_SETTLED", errBody.Code)

	var reopened dto.ReceivableResponse
	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/receivables/"+receivableID+"/undo", nil, &reopened)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PENDING", reopened.Status)
	assert.Nil(t, reopened.ReceivedDate)
}

func TestBillingPDF_Descarga(t *testing.T) {
	app := newAPI(t)
	createContract(t, app)

	var gen dto.GenerateBillingsResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-05"}, &gen))

	req := httptest.NewRequest(http.MethodGet, "/api/billings/"+gen.Billings[0].ID+"/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleFinance))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "faturamento_2024-05_")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestBilling_ErroresMapeados(t *testing.T) {
	app := newAPI(t)

	var errBody dto.ErrorResponse
	status := call(t, app, pkgjwt.RoleFinance, http.MethodGet, "/api/billings/no-existe", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-13"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)

	status = call(t, app, pkgjwt.RoleFinance, http.MethodPost, "/api/billings/generate",
		dto.GenerateBillingsRequest{Competency: "2024-05"}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "NO_ACTIVE_CONTRACTS", errBody.Code)
}

func TestStockFlow_EntregarYDevolver(t *testing.T) {
	app := newAPI(t)

	var product dto.StockProductResponse
	status := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/stock/products", dto.CreateStockProductRequest{
		Type: "INDIVIDUAL", Category: "Uniforme", Name: "Camisa", Variation: "M", InitialQuantity: 10,
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 10, product.BaseStock)

	employee := "colaborador-1"
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/stock/movements", dto.RegisterStockMovementRequest{
		ProductID: product.ID, Type: "ENTREGAR", Quantity: 4, EmployeeID: &employee,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var errBody dto.ErrorResponse
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/stock/movements", dto.RegisterStockMovementRequest{
		ProductID: product.ID, Type: "DEVOLVER", Quantity: 5, EmployeeID: &employee,
	}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_POSSESSION", errBody.Code)

	var possession dto.PossessionResponse
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/stock/possession?employee_id="+employee, nil, &possession)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, possession.Items, 1)
	assert.Equal(t, 4, possession.Items[0].Quantity)

	var current dto.StockProductResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/stock/products/"+product.ID, nil, &current))
	assert.Equal(t, 6, current.BaseStock)
	assert.Equal(t, 4, current.InUseStock)

	// Poseedor ambiguo
	site := "posto-1"
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/stock/movements", dto.RegisterStockMovementRequest{
		ProductID: product.ID, Type: "ENTREGAR", Quantity: 1, EmployeeID: &employee, WorkSiteID: &site,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEquipmentFlow_TrasladoDeLote(t *testing.T) {
	app := newAPI(t)

	var lot dto.EquipmentResponse
	status := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/equipment/lots", dto.AddAmmoLotRequest{
		Description: "Munição .38", Caliber: ".38", Quantity: 50,
	}, &lot)
	require.Equal(t, http.StatusCreated, status)
	assert.Nil(t, lot.WorkSiteID)

	site := "posto-1"
	var errBody dto.ErrorResponse
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/equipment/lots/transfer", dto.TransferLotRequest{
		Description: "Munição .38", ToWorkSiteID: &site, Quantity: 51,
	}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var moved dto.EquipmentResponse
	status = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/equipment/lots/transfer", dto.TransferLotRequest{
		Description: "Munição .38", ToWorkSiteID: &site, Quantity: 20,
	}, &moved)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 20, moved.Quantity)
	require.NotNil(t, moved.WorkSiteID)
	assert.Equal(t, site, *moved.WorkSiteID)

	var audit []dto.EquipmentMovementResponse
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/equipment/movements", nil, &audit))
	require.Len(t, audit, 1)
	assert.Equal(t, 20, audit[0].Quantity)
	assert.Equal(t, testUserID, audit[0].CreatedBy)
}

func TestEquipment_SerieDuplicada(t *testing.T) {
	app := newAPI(t)
	in := dto.CreateEquipmentRequest{Type: "ARMA", Description: "Revólver .38", SerialNumber: "ABC123"}

	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/equipment", in, nil))

	var errBody dto.ErrorResponse
	status := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/equipment", in, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errBody.Code)
}

func TestContract_CuerpoInvalido(t *testing.T) {
	app := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/contracts", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
