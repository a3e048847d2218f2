//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "northwind-orders-api"
	ConsumerName = "orders-portal"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 301 exists"
	StateOrderMissing   = "no order with id 999"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999
)

const (
	ExampleCustomerID  = "ALFKI"
	ExampleEmployeeID  = 5
	ExampleShipperID   = 2
	ExampleOrderDate   = "2024-03-04T00:00:00Z"
	ExampleRequireDate = "2024-04-01T00:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the orders portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for order interactions.
func ExampleOrderPayload(id int64) map[string]any {
	return map[string]any{
		"id":             id,
		"customerId":     ExampleCustomerID,
		"employeeId":     ExampleEmployeeID,
		"orderDate":      ExampleOrderDate,
		"requiredDate":   ExampleRequireDate,
		"shipperId":      ExampleShipperID,
		"freight":        12.5,
		"shipName":       "Alfreds Futterkiste",
		"shipAddress":    "Obere Str. 57",
		"shipCity":       "Berlin",
		"shipPostalCode": "12209",
		"shipCountry":    "Germany",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
