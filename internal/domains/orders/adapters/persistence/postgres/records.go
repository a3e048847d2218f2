package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

// The record structs map the Northwind relational schema. Optional text
// columns are nullable in storage and coalesced to empty strings at the
// domain boundary.

type customerRecord struct {
	Code        string  `gorm:"primaryKey;column:customer_id;type:varchar(5)"`
	CompanyName *string `gorm:"column:company_name"`
}

func (customerRecord) TableName() string { return "customers" }

type employeeRecord struct {
	EmployeeID int64   `gorm:"primaryKey;column:employee_id"`
	FirstName  *string `gorm:"column:first_name"`
	LastName   *string `gorm:"column:last_name"`
	Country    *string `gorm:"column:country"`
}

func (employeeRecord) TableName() string { return "employees" }

type shipperRecord struct {
	ShipperID   int64   `gorm:"primaryKey;column:shipper_id"`
	CompanyName *string `gorm:"column:company_name"`
}

func (shipperRecord) TableName() string { return "shippers" }

type categoryRecord struct {
	CategoryID   int64   `gorm:"primaryKey;column:category_id"`
	CategoryName *string `gorm:"column:category_name"`
}

func (categoryRecord) TableName() string { return "categories" }

type supplierRecord struct {
	SupplierID  int64   `gorm:"primaryKey;column:supplier_id"`
	CompanyName *string `gorm:"column:company_name"`
}

func (supplierRecord) TableName() string { return "suppliers" }

type productRecord struct {
	ProductID   int64   `gorm:"primaryKey;column:product_id"`
	ProductName *string `gorm:"column:product_name"`
	CategoryID  *int64  `gorm:"column:category_id;index"`
	SupplierID  *int64  `gorm:"column:supplier_id;index"`

	Category *categoryRecord `gorm:"foreignKey:CategoryID;references:CategoryID"`
	Supplier *supplierRecord `gorm:"foreignKey:SupplierID;references:SupplierID"`
}

func (productRecord) TableName() string { return "products" }

// orderDetailRecord carries the composite (order_id, product_id) key, so a
// product appears at most once per order.
type orderDetailRecord struct {
	OrderID   int64           `gorm:"primaryKey;column:order_id"`
	ProductID int64           `gorm:"primaryKey;column:product_id"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,4)"`
	Quantity  int16           `gorm:"column:quantity"`
	Discount  float32         `gorm:"column:discount"`

	Product *productRecord `gorm:"foreignKey:ProductID;references:ProductID"`
}

func (orderDetailRecord) TableName() string { return "order_details" }

type orderRecord struct {
	OrderID        int64      `gorm:"primaryKey;column:order_id;autoIncrement"`
	CustomerID     *string    `gorm:"column:customer_id;type:varchar(5);index"`
	EmployeeID     int64      `gorm:"column:employee_id;index"`
	OrderDate      time.Time  `gorm:"column:order_date"`
	RequiredDate   time.Time  `gorm:"column:required_date"`
	ShippedDate    *time.Time `gorm:"column:shipped_date"`
	ShipVia        int64      `gorm:"column:ship_via;index"`
	Freight        float64    `gorm:"column:freight"`
	ShipName       *string    `gorm:"column:ship_name"`
	ShipAddress    *string    `gorm:"column:ship_address"`
	ShipCity       *string    `gorm:"column:ship_city"`
	ShipRegion     *string    `gorm:"column:ship_region"`
	ShipPostalCode *string    `gorm:"column:ship_postal_code"`
	ShipCountry    *string    `gorm:"column:ship_country"`

	Customer *customerRecord     `gorm:"foreignKey:CustomerID;references:Code"`
	Employee *employeeRecord     `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
	Shipper  *shipperRecord      `gorm:"foreignKey:ShipVia;references:ShipperID"`
	Details  []orderDetailRecord `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

// Models lists every record in foreign key order, referenced tables first,
// so schema migration resolves the order constraints. Migration reuses these
// definitions so the migrated schema cannot drift from what the repository
// reads and writes.
func Models() []any {
	return []any{
		&customerRecord{},
		&employeeRecord{},
		&shipperRecord{},
		&categoryRecord{},
		&supplierRecord{},
		&productRecord{},
		&orderRecord{},
		&orderDetailRecord{},
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r orderRecord) toDomain(withDetails bool) *domain.Order {
	code, _ := domain.NewCustomerCode(strOrEmpty(r.CustomerID))
	order := &domain.Order{
		ID:           r.OrderID,
		Customer:     domain.Customer{Code: code},
		Employee:     domain.Employee{ID: r.EmployeeID},
		Shipper:      domain.Shipper{ID: r.ShipVia},
		OrderDate:    r.OrderDate,
		RequiredDate: r.RequiredDate,
		ShippedDate:  r.ShippedDate,
		Freight:      r.Freight,
		ShipName:     strOrEmpty(r.ShipName),
		ShippingAddress: domain.NewShippingAddress(
			strOrEmpty(r.ShipAddress),
			strOrEmpty(r.ShipCity),
			strOrEmpty(r.ShipRegion),
			strOrEmpty(r.ShipPostalCode),
			strOrEmpty(r.ShipCountry),
		),
	}
	if r.Customer != nil {
		order.Customer.CompanyName = strOrEmpty(r.Customer.CompanyName)
	}
	if r.Employee != nil {
		order.Employee.FirstName = strOrEmpty(r.Employee.FirstName)
		order.Employee.LastName = strOrEmpty(r.Employee.LastName)
		order.Employee.Country = strOrEmpty(r.Employee.Country)
	}
	if r.Shipper != nil {
		order.Shipper.CompanyName = strOrEmpty(r.Shipper.CompanyName)
	}
	if withDetails {
		order.Details = make([]domain.OrderDetail, 0, len(r.Details))
		for i := range r.Details {
			order.Details = append(order.Details, r.Details[i].toDomain())
		}
	}
	return order
}

func (r orderDetailRecord) toDomain() domain.OrderDetail {
	detail := domain.OrderDetail{
		OrderID:   r.OrderID,
		ProductID: r.ProductID,
		Product:   domain.Product{ID: r.ProductID},
		UnitPrice: r.UnitPrice,
		Quantity:  r.Quantity,
		Discount:  r.Discount,
	}
	if r.Product != nil {
		detail.Product.Name = strOrEmpty(r.Product.ProductName)
		if r.Product.CategoryID != nil {
			detail.Product.CategoryID = *r.Product.CategoryID
		}
		if r.Product.SupplierID != nil {
			detail.Product.SupplierID = *r.Product.SupplierID
		}
		if r.Product.Category != nil {
			detail.Product.CategoryName = strOrEmpty(r.Product.Category.CategoryName)
		}
		if r.Product.Supplier != nil {
			detail.Product.SupplierCompanyName = strOrEmpty(r.Product.Supplier.CompanyName)
		}
	}
	return detail
}

func headerRecord(order *domain.Order) orderRecord {
	return orderRecord{
		OrderID:        order.ID,
		CustomerID:     strOrNil(order.Customer.Code.String()),
		EmployeeID:     order.Employee.ID,
		OrderDate:      order.OrderDate,
		RequiredDate:   order.RequiredDate,
		ShippedDate:    order.ShippedDate,
		ShipVia:        order.Shipper.ID,
		Freight:        order.Freight,
		ShipName:       strOrNil(order.ShipName),
		ShipAddress:    strOrNil(order.ShippingAddress.Address),
		ShipCity:       strOrNil(order.ShippingAddress.City),
		ShipRegion:     strOrNil(order.ShippingAddress.Region),
		ShipPostalCode: strOrNil(order.ShippingAddress.PostalCode),
		ShipCountry:    strOrNil(order.ShippingAddress.Country),
	}
}
