// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/worldbooks/backend/internal/application/usecase/currency"
	"github.com/worldbooks/backend/internal/application/usecase/dashboard"
	"github.com/worldbooks/backend/internal/application/usecase/invoice"
	"github.com/worldbooks/backend/internal/application/usecase/seed"
	"github.com/worldbooks/backend/internal/application/usecase/transaction"
	"github.com/worldbooks/backend/internal/infra/server/router"
	"github.com/worldbooks/backend/internal/integration/adapters"
	"github.com/worldbooks/backend/internal/integration/entrypoint/controller"
	"github.com/worldbooks/backend/internal/integration/persistence"
	"github.com/worldbooks/backend/internal/integration/persistence/model"
	"github.com/worldbooks/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Backing services
	db    *mock.Db
	redis *redis.Client
	clock *mock.Time
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			db:    mock.NewDb(&model.TransactionModel{}, &model.InvoiceModel{}),
			redis: mock.NewRedis(),
			clock: mock.NewTime(),
		}
		if err := tc.db.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(tc.redis); err != nil {
			return ctx, err
		}

		tc.engine = buildEngine(tc)
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerLedgerSteps(ctx)
	registerResponseSteps(ctx)
}

// buildEngine wires the full application stack against the scenario's
// mocked database, redis, and clock.
func buildEngine(tc *TestContext) *gin.Engine {
	revision := persistence.NewRevision()
	transactionRepo := persistence.NewTransactionRepository(tc.db.DbConn, revision)
	invoiceRepo := persistence.NewInvoiceRepository(tc.db.DbConn, revision)

	rateSource := adapters.NewRedisRateSource(tc.redis)
	normalizer := currency.NewNormalizer(rateSource, time.Second)

	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(transactionRepo),
		transaction.NewGetTransactionUseCase(transactionRepo),
		transaction.NewUpdateTransactionUseCase(transactionRepo),
		transaction.NewDeleteTransactionUseCase(transactionRepo),
		transaction.NewRecentTransactionsUseCase(transactionRepo),
	)

	invoiceController := controller.NewInvoiceController(
		invoice.NewListInvoicesUseCase(invoiceRepo).WithClock(tc.clock.Now),
		invoice.NewCreateInvoiceUseCase(invoiceRepo),
		invoice.NewGetInvoiceUseCase(invoiceRepo).WithClock(tc.clock.Now),
		invoice.NewUpdateInvoiceUseCase(invoiceRepo),
		invoice.NewDeleteInvoiceUseCase(invoiceRepo),
		invoice.NewRecentInvoicesUseCase(invoiceRepo).WithClock(tc.clock.Now),
	)

	kpisUseCase := dashboard.NewGetDashboardKPIsUseCase(transactionRepo, invoiceRepo, normalizer).
		WithClock(tc.clock.Now)
	dashboardController := controller.NewDashboardController(kpisUseCase)

	seedUseCase := seed.NewSeedSampleDataUseCase(transactionRepo, invoiceRepo).
		WithClock(tc.clock.Now)
	ledgerController := controller.NewLedgerController(revision, seedUseCase, true)

	healthController := controller.NewHealthController(gormHealth{tc.db.DbConn}, revision)

	r := router.NewRouter(
		healthController,
		transactionController,
		invoiceController,
		dashboardController,
		ledgerController,
	)
	return r.Setup("test")
}

// gormHealth adapts the scenario's gorm connection to the health check
// contract.
type gormHealth struct {
	db *gorm.DB
}

func (g gormHealth) HealthCheck() bool {
	sqlDB, err := g.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerLedgerSteps registers ledger fixture steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the ledger is empty$`, theLedgerIsEmpty)
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^the exchange rate from "([^"]*)" to "([^"]*)" is "([^"]*)"$`, theExchangeRateIs)
	ctx.Step(`^a transaction exists with:$`, aTransactionExistsWith)
	ctx.Step(`^an invoice exists with:$`, anInvoiceExistsWith)
	ctx.Step(`^the first listed invoice should have status "([^"]*)" and effective status "([^"]*)"$`, theFirstListedInvoiceShouldHaveStatuses)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, bytes.NewBufferString(body.Content))
}

func theLedgerIsEmpty(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.db.Reset()
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(t.UTC())
	return nil
}

func theExchangeRateIs(ctx context.Context, from, to, rate string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	key := fmt.Sprintf("fx:rate:%s:%s", from, to)
	return tc.redis.Set(context.Background(), key, rate, 0).Err()
}

func aTransactionExistsWith(ctx context.Context, body *godog.DocString) error {
	return createFixture(ctx, "/api/v1/transactions", body)
}

func anInvoiceExistsWith(ctx context.Context, body *godog.DocString) error {
	return createFixture(ctx, "/api/v1/invoices", body)
}

func createFixture(ctx context.Context, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(http.MethodPost, endpoint, bytes.NewBufferString(body.Content)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("fixture creation failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theFirstListedInvoiceShouldHaveStatuses(ctx context.Context, status, effectiveStatus string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data struct {
		Invoices []struct {
			Status          string `json:"status"`
			EffectiveStatus string `json:"effective_status"`
		} `json:"invoices"`
	}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if len(data.Invoices) == 0 {
		return fmt.Errorf("no invoices in response. Body: %s", string(tc.responseBody))
	}

	first := data.Invoices[0]
	if first.Status != status {
		return fmt.Errorf("expected stored status %q, got %q", status, first.Status)
	}
	if first.EffectiveStatus != effectiveStatus {
		return fmt.Errorf("expected effective status %q, got %q", effectiveStatus, first.EffectiveStatus)
	}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if _, ok := data[field]; !ok {
		return fmt.Errorf("field '%s' not found in response", field)
	}

	return nil
}
