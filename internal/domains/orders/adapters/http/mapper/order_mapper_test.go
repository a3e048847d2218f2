package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

func briefPayload() BriefOrder {
	orderDate := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return BriefOrder{
		CustomerID:     "ALFKI",
		EmployeeID:     5,
		OrderDate:      orderDate,
		RequiredDate:   orderDate.AddDate(0, 0, 14),
		ShipperID:      2,
		Freight:        12.50,
		ShipName:       "Alfreds Futterkiste",
		ShipAddress:    "Obere Str. 57",
		ShipCity:       "Berlin",
		ShipPostalCode: "12209",
		ShipCountry:    "Germany",
	}
}

func TestToDomainOrder_RoundTripsThroughBrief(t *testing.T) {
	payload := briefPayload()

	order, err := ToDomainOrder(payload)
	require.NoError(t, err)
	require.Equal(t, "ALFKI", order.Customer.Code.String())
	require.Equal(t, "Berlin", order.ShippingAddress.City)

	back := FromDomainBrief(order)
	require.Equal(t, payload, back)
}

func TestToDomainOrder_RejectsMalformedPayloads(t *testing.T) {
	missingCustomer := briefPayload()
	missingCustomer.CustomerID = "  "
	_, err := ToDomainOrder(missingCustomer)
	require.ErrorIs(t, err, ordersdomain.ErrEmptyCustomerCode)

	badDates := briefPayload()
	badDates.RequiredDate = badDates.OrderDate.AddDate(0, 0, -1)
	_, err = ToDomainOrder(badDates)
	require.ErrorIs(t, err, ordersdomain.ErrRequiredDateBefore)
}

func TestFromDomainFull_IncludesSnapshotsAndDetails(t *testing.T) {
	order, err := ToDomainOrder(briefPayload())
	require.NoError(t, err)
	order.ID = 10248
	order.Customer.CompanyName = "Alfreds Futterkiste"
	order.Employee.FirstName = "Steven"
	order.Shipper.CompanyName = "United Package"

	detail, err := ordersdomain.NewOrderDetail(order.ID, ordersdomain.Product{
		ID:                  11,
		Name:                "Queso Cabrales",
		CategoryID:          4,
		CategoryName:        "Dairy Products",
		SupplierID:          5,
		SupplierCompanyName: "Cooperativa de Quesos 'Las Cabras'",
	}, decimal.RequireFromString("21.00"), 12, 0.05)
	require.NoError(t, err)
	withDetails, err := order.WithDetails([]ordersdomain.OrderDetail{detail})
	require.NoError(t, err)

	full := FromDomainFull(withDetails)
	require.Equal(t, int64(10248), full.ID)
	require.Equal(t, "Alfreds Futterkiste", full.Customer.CompanyName)
	require.Equal(t, "Steven", full.Employee.FirstName)
	require.Equal(t, "United Package", full.Shipper.CompanyName)
	require.Len(t, full.OrderDetails, 1)
	require.Equal(t, "Queso Cabrales", full.OrderDetails[0].ProductName)
	require.Equal(t, 21.0, full.OrderDetails[0].UnitPrice)
	require.Equal(t, int16(12), full.OrderDetails[0].Quantity)
}

func TestFromDomainBriefList_EmptyStaysEmpty(t *testing.T) {
	require.Empty(t, FromDomainBriefList(nil))
	require.NotNil(t, FromDomainBriefList(nil))
}
