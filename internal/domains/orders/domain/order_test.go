package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validOrderArgs() (Customer, Employee, Shipper, time.Time, time.Time) {
	code, _ := NewCustomerCode("ALFKI")
	customer := Customer{Code: code, CompanyName: "Alfreds Futterkiste"}
	employee := Employee{ID: 5, FirstName: "Steven", LastName: "Buchanan", Country: "UK"}
	shipper := Shipper{ID: 2, CompanyName: "United Package"}
	orderDate := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	requiredDate := orderDate.AddDate(0, 0, 14)
	return customer, employee, shipper, orderDate, requiredDate
}

func TestNewCustomerCode_TrimsAndRejectsEmpty(t *testing.T) {
	code, err := NewCustomerCode("  ALFKI ")
	require.NoError(t, err)
	require.Equal(t, "ALFKI", code.String())

	_, err = NewCustomerCode("   ")
	require.ErrorIs(t, err, ErrEmptyCustomerCode)
}

func TestCustomerCode_JSONRoundTrip(t *testing.T) {
	code, err := NewCustomerCode("ALFKI")
	require.NoError(t, err)

	raw, err := json.Marshal(code)
	require.NoError(t, err)
	require.Equal(t, `"ALFKI"`, string(raw))

	var decoded CustomerCode
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "ALFKI", decoded.String())
	require.False(t, decoded.IsZero())
}

func TestOrder_JSONRoundTripKeepsCustomerCode(t *testing.T) {
	customer, employee, shipper, orderDate, requiredDate := validOrderArgs()
	order, err := NewOrder(42, customer, employee, shipper, orderDate, requiredDate, nil,
		12.50, "Alfreds Futterkiste", NewShippingAddress("Obere Str. 57", "Berlin", "", "12209", "Germany"))
	require.NoError(t, err)

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded Order
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "ALFKI", decoded.Customer.Code.String())
	require.NoError(t, decoded.Validate())
}

func TestNewOrder_Valid(t *testing.T) {
	customer, employee, shipper, orderDate, requiredDate := validOrderArgs()

	order, err := NewOrder(0, customer, employee, shipper, orderDate, requiredDate, nil,
		12.50, "Alfreds Futterkiste", NewShippingAddress("Obere Str. 57", "Berlin", "", "12209", "Germany"))
	require.NoError(t, err)
	require.Equal(t, "ALFKI", order.Customer.Code.String())
	require.Empty(t, order.Details)
}

func TestNewOrder_Invariants(t *testing.T) {
	customer, employee, shipper, orderDate, requiredDate := validOrderArgs()
	addr := NewShippingAddress("", "", "", "", "")

	_, err := NewOrder(0, Customer{}, employee, shipper, orderDate, requiredDate, nil, 0, "", addr)
	require.ErrorIs(t, err, ErrEmptyCustomerCode)

	_, err = NewOrder(0, customer, Employee{}, shipper, orderDate, requiredDate, nil, 0, "", addr)
	require.ErrorIs(t, err, ErrMissingEmployee)

	_, err = NewOrder(0, customer, employee, Shipper{}, orderDate, requiredDate, nil, 0, "", addr)
	require.ErrorIs(t, err, ErrMissingShipper)

	_, err = NewOrder(0, customer, employee, shipper, orderDate, requiredDate, nil, -1, "", addr)
	require.ErrorIs(t, err, ErrNegativeFreight)

	_, err = NewOrder(0, customer, employee, shipper, time.Time{}, requiredDate, nil, 0, "", addr)
	require.ErrorIs(t, err, ErrMissingOrderDate)

	_, err = NewOrder(0, customer, employee, shipper, orderDate, orderDate.AddDate(0, 0, -1), nil, 0, "", addr)
	require.ErrorIs(t, err, ErrRequiredDateBefore)

	early := orderDate.AddDate(0, 0, -2)
	_, err = NewOrder(0, customer, employee, shipper, orderDate, requiredDate, &early, 0, "", addr)
	require.ErrorIs(t, err, ErrShippedDateBefore)
}

func TestNewOrderDetail_Invariants(t *testing.T) {
	product := Product{ID: 11, Name: "Queso Cabrales"}

	_, err := NewOrderDetail(1, product, decimal.NewFromInt(-1), 1, 0)
	require.ErrorIs(t, err, ErrNegativeUnitPrice)

	_, err = NewOrderDetail(1, product, decimal.NewFromInt(21), 0, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrderDetail(1, product, decimal.NewFromInt(21), 1, 1.0)
	require.ErrorIs(t, err, ErrInvalidDiscount)

	detail, err := NewOrderDetail(1, product, decimal.RequireFromString("21.00"), 12, 0.05)
	require.NoError(t, err)
	require.Equal(t, int64(11), detail.ProductID)
}

func TestWithDetails_RejectsDuplicateProduct(t *testing.T) {
	customer, employee, shipper, orderDate, requiredDate := validOrderArgs()
	order, err := NewOrder(10, customer, employee, shipper, orderDate, requiredDate, nil,
		0, "", NewShippingAddress("", "", "", "", ""))
	require.NoError(t, err)

	product := Product{ID: 11, Name: "Queso Cabrales"}
	first, err := NewOrderDetail(10, product, decimal.NewFromInt(21), 1, 0)
	require.NoError(t, err)
	second, err := NewOrderDetail(10, product, decimal.NewFromInt(21), 2, 0)
	require.NoError(t, err)

	_, err = order.WithDetails([]OrderDetail{first, second})
	require.ErrorIs(t, err, ErrDuplicateProduct)

	withOne, err := order.WithDetails([]OrderDetail{first})
	require.NoError(t, err)
	require.Len(t, withOne.Details, 1)
	require.Empty(t, order.Details)
}
