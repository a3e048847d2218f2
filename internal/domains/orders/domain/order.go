package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomerCode  = errors.New("customer code must not be empty")
	ErrMissingOrderDate   = errors.New("order date must be set")
	ErrMissingEmployee    = errors.New("employee id must be greater than zero")
	ErrMissingShipper     = errors.New("shipper id must be greater than zero")
	ErrNegativeFreight    = errors.New("freight must not be negative")
	ErrRequiredDateBefore = errors.New("required date must not precede order date")
	ErrShippedDateBefore  = errors.New("shipped date must not precede order date")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrNegativeUnitPrice  = errors.New("unit price must not be negative")
	ErrInvalidDiscount    = errors.New("discount must be in [0, 1)")
	ErrDuplicateProduct   = errors.New("product appears more than once in order details")
)

// CustomerCode is the natural key of a customer. It is never empty once constructed.
type CustomerCode struct {
	value string
}

// NewCustomerCode validates and wraps a customer code.
func NewCustomerCode(code string) (CustomerCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return CustomerCode{}, ErrEmptyCustomerCode
	}
	return CustomerCode{value: code}, nil
}

func (c CustomerCode) String() string { return c.value }

// IsZero reports whether the code was never assigned.
func (c CustomerCode) IsZero() bool { return c.value == "" }

// MarshalJSON encodes the code as a plain JSON string so the value survives
// serialization boundaries such as workflow payloads.
func (c CustomerCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes a plain JSON string. An empty string yields the zero
// code; Validate rejects it downstream.
func (c *CustomerCode) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	c.value = strings.TrimSpace(value)
	return nil
}

// Customer is a denormalized snapshot embedded in the order aggregate.
type Customer struct {
	Code        CustomerCode
	CompanyName string
}

// Employee is a denormalized snapshot embedded in the order aggregate.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Country   string
}

// Shipper is a denormalized snapshot embedded in the order aggregate.
type Shipper struct {
	ID          int64
	CompanyName string
}

// Product is the snapshot carried by a line item for display purposes.
type Product struct {
	ID                  int64
	Name                string
	CategoryID          int64
	CategoryName        string
	SupplierID          int64
	SupplierCompanyName string
}

// ShippingAddress is a value object; absent components are empty strings.
type ShippingAddress struct {
	Address    string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// NewShippingAddress constructs the address value, coalescing nothing: callers
// pass empty strings for unknown components.
func NewShippingAddress(address, city, region, postalCode, country string) ShippingAddress {
	return ShippingAddress{
		Address:    address,
		City:       city,
		Region:     region,
		PostalCode: postalCode,
		Country:    country,
	}
}

// OrderDetail is a line item identified by the (OrderID, ProductID) pair.
type OrderDetail struct {
	OrderID   int64
	ProductID int64
	Product   Product
	UnitPrice decimal.Decimal
	Quantity  int16
	Discount  float32
}

// NewOrderDetail validates and constructs a line item.
func NewOrderDetail(orderID int64, product Product, unitPrice decimal.Decimal, quantity int16, discount float32) (OrderDetail, error) {
	detail := OrderDetail{
		OrderID:   orderID,
		ProductID: product.ID,
		Product:   product,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Discount:  discount,
	}
	if err := detail.Validate(); err != nil {
		return OrderDetail{}, err
	}
	return detail, nil
}

// Validate enforces the line item invariants.
func (d OrderDetail) Validate() error {
	if d.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if d.Discount < 0 || d.Discount >= 1 {
		return ErrInvalidDiscount
	}
	return nil
}

// Order models the Northwind order aggregate. The three reference snapshots
// are always populated once loaded from storage.
type Order struct {
	ID              int64
	Customer        Customer
	Employee        Employee
	Shipper         Shipper
	OrderDate       time.Time
	RequiredDate    time.Time
	ShippedDate     *time.Time
	Freight         float64
	ShipName        string
	ShippingAddress ShippingAddress
	Details         []OrderDetail
}

// NewOrder validates and constructs an order aggregate in one step so a
// partially initialized aggregate is never observable. The storage engine
// assigns the identity on add, so id may be zero.
func NewOrder(
	id int64,
	customer Customer,
	employee Employee,
	shipper Shipper,
	orderDate, requiredDate time.Time,
	shippedDate *time.Time,
	freight float64,
	shipName string,
	address ShippingAddress,
) (*Order, error) {
	order := &Order{
		ID:              id,
		Customer:        customer,
		Employee:        employee,
		Shipper:         shipper,
		OrderDate:       orderDate,
		RequiredDate:    requiredDate,
		ShippedDate:     shippedDate,
		Freight:         freight,
		ShipName:        shipName,
		ShippingAddress: address,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// WithDetails returns a copy of the order carrying the given line items,
// rejecting duplicate products. Line items keep their supplied order.
func (o *Order) WithDetails(details []OrderDetail) (*Order, error) {
	seen := make(map[int64]struct{}, len(details))
	for _, detail := range details {
		if err := detail.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[detail.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		seen[detail.ProductID] = struct{}{}
	}
	clone := *o
	clone.Details = make([]OrderDetail, len(details))
	copy(clone.Details, details)
	return &clone, nil
}

// Validate enforces the header invariants.
func (o *Order) Validate() error {
	if o.Customer.Code.IsZero() {
		return ErrEmptyCustomerCode
	}
	if o.Employee.ID <= 0 {
		return ErrMissingEmployee
	}
	if o.Shipper.ID <= 0 {
		return ErrMissingShipper
	}
	if o.Freight < 0 {
		return ErrNegativeFreight
	}
	if o.OrderDate.IsZero() {
		return ErrMissingOrderDate
	}
	if !o.RequiredDate.IsZero() && o.RequiredDate.Before(o.OrderDate) {
		return ErrRequiredDateBefore
	}
	if o.ShippedDate != nil && o.ShippedDate.Before(o.OrderDate) {
		return ErrShippedDateBefore
	}
	return nil
}
