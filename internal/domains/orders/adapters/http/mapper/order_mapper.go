package mapper

import (
	"time"

	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

// BriefOrder is the transport-layer list projection and the create/update
// request body. Line items never travel on it.
type BriefOrder struct {
	ID             int64      `json:"id"`
	CustomerID     string     `json:"customerId"`
	EmployeeID     int64      `json:"employeeId"`
	OrderDate      time.Time  `json:"orderDate"`
	RequiredDate   time.Time  `json:"requiredDate"`
	ShippedDate    *time.Time `json:"shippedDate,omitempty"`
	ShipperID      int64      `json:"shipperId"`
	Freight        float64    `json:"freight"`
	ShipName       string     `json:"shipName"`
	ShipAddress    string     `json:"shipAddress"`
	ShipCity       string     `json:"shipCity"`
	ShipRegion     string     `json:"shipRegion"`
	ShipPostalCode string     `json:"shipPostalCode"`
	ShipCountry    string     `json:"shipCountry"`
}

// Customer is the nested customer snapshot on a FullOrder.
type Customer struct {
	Code        string `json:"code"`
	CompanyName string `json:"companyName"`
}

// Employee is the nested employee snapshot on a FullOrder.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country"`
}

// Shipper is the nested shipper snapshot on a FullOrder.
type Shipper struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
}

// FullOrderDetail is one line item with its product snapshot resolved.
type FullOrderDetail struct {
	ProductID           int64   `json:"productId"`
	ProductName         string  `json:"productName"`
	CategoryID          int64   `json:"categoryId"`
	CategoryName        string  `json:"categoryName"`
	SupplierID          int64   `json:"supplierId"`
	SupplierCompanyName string  `json:"supplierCompanyName"`
	UnitPrice           float64 `json:"unitPrice"`
	Quantity            int16   `json:"quantity"`
	Discount            float32 `json:"discount"`
}

// FullOrder is the single-order retrieval shape: the brief header plus the
// nested snapshots and line items.
type FullOrder struct {
	BriefOrder
	Customer     Customer          `json:"customer"`
	Employee     Employee          `json:"employee"`
	Shipper      Shipper           `json:"shipper"`
	OrderDetails []FullOrderDetail `json:"orderDetails"`
}

// AddOrderResult is returned on successful creation.
type AddOrderResult struct {
	OrderID int64 `json:"orderId"`
}

// ToDomainOrder converts a transport order into the domain aggregate through
// the validating constructor, so malformed payloads never reach storage.
func ToDomainOrder(payload BriefOrder) (*ordersdomain.Order, error) {
	code, err := ordersdomain.NewCustomerCode(payload.CustomerID)
	if err != nil {
		return nil, err
	}
	return ordersdomain.NewOrder(
		payload.ID,
		ordersdomain.Customer{Code: code},
		ordersdomain.Employee{ID: payload.EmployeeID},
		ordersdomain.Shipper{ID: payload.ShipperID},
		payload.OrderDate,
		payload.RequiredDate,
		payload.ShippedDate,
		payload.Freight,
		payload.ShipName,
		ordersdomain.NewShippingAddress(
			payload.ShipAddress,
			payload.ShipCity,
			payload.ShipRegion,
			payload.ShipPostalCode,
			payload.ShipCountry,
		),
	)
}

// FromDomainBrief converts a domain order to the brief transport shape.
func FromDomainBrief(order *ordersdomain.Order) BriefOrder {
	if order == nil {
		return BriefOrder{}
	}
	return BriefOrder{
		ID:             order.ID,
		CustomerID:     order.Customer.Code.String(),
		EmployeeID:     order.Employee.ID,
		OrderDate:      order.OrderDate,
		RequiredDate:   order.RequiredDate,
		ShippedDate:    order.ShippedDate,
		ShipperID:      order.Shipper.ID,
		Freight:        order.Freight,
		ShipName:       order.ShipName,
		ShipAddress:    order.ShippingAddress.Address,
		ShipCity:       order.ShippingAddress.City,
		ShipRegion:     order.ShippingAddress.Region,
		ShipPostalCode: order.ShippingAddress.PostalCode,
		ShipCountry:    order.ShippingAddress.Country,
	}
}

// FromDomainBriefList converts a page of domain orders.
func FromDomainBriefList(orders []*ordersdomain.Order) []BriefOrder {
	list := make([]BriefOrder, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomainBrief(order))
	}
	return list
}

// FromDomainFull converts a domain order to the full transport shape.
// UnitPrice crosses the wire as a JSON number; the fixed-point representation
// lives only on the domain and storage sides.
func FromDomainFull(order *ordersdomain.Order) FullOrder {
	if order == nil {
		return FullOrder{}
	}
	full := FullOrder{
		BriefOrder: FromDomainBrief(order),
		Customer: Customer{
			Code:        order.Customer.Code.String(),
			CompanyName: order.Customer.CompanyName,
		},
		Employee: Employee{
			ID:        order.Employee.ID,
			FirstName: order.Employee.FirstName,
			LastName:  order.Employee.LastName,
			Country:   order.Employee.Country,
		},
		Shipper: Shipper{
			ID:          order.Shipper.ID,
			CompanyName: order.Shipper.CompanyName,
		},
		OrderDetails: make([]FullOrderDetail, 0, len(order.Details)),
	}
	for _, detail := range order.Details {
		full.OrderDetails = append(full.OrderDetails, FullOrderDetail{
			ProductID:           detail.ProductID,
			ProductName:         detail.Product.Name,
			CategoryID:          detail.Product.CategoryID,
			CategoryName:        detail.Product.CategoryName,
			SupplierID:          detail.Product.SupplierID,
			SupplierCompanyName: detail.Product.SupplierCompanyName,
			UnitPrice:           detail.UnitPrice.InexactFloat64(),
			Quantity:            detail.Quantity,
			Discount:            detail.Discount,
		})
	}
	return full
}
