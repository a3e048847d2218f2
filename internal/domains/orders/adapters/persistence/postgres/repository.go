package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the PostgreSQL persistence schema adapter. It translates the
// order aggregate to and from rows across the Northwind tables using GORM.
// Each operation runs as a single unit of work; snapshot upserts and header
// writes share one transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle; schema setup belongs to platform migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrder fetches one order with customer, employee, shipper and ordered
// line items (with product/category/supplier snapshots) populated.
func (r *Repository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Shipper").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_details.product_id ASC")
		}).
		Preload("Details.Product").
		Preload("Details.Product.Category").
		Preload("Details.Product.Supplier").
		First(&record, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, ports.WrapStorageErr("get order", err)
	}
	return record.toDomain(true), nil
}

// ListOrders returns a brief projection page ordered by ascending identity.
// Line items are never materialized for list results.
func (r *Repository) ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if skip < 0 || count <= 0 {
		return nil, ports.ErrInvalidRange
	}
	var records []orderRecord
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Shipper").
		Order("order_id ASC").
		Offset(skip).
		Limit(count).
		Find(&records).Error
	if err != nil {
		return nil, ports.WrapStorageErr("list orders", err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(false))
	}
	return orders, nil
}

// AddOrder inserts a new order header and upserts the denormalized customer
// and employee snapshots in the same transaction. The storage engine assigns
// the identity, which is returned.
func (r *Repository) AddOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if order == nil {
		return 0, errors.New("order is nil")
	}
	var assignedID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertSnapshots(tx, order); err != nil {
			return err
		}
		record := headerRecord(order)
		record.OrderID = 0
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		assignedID = record.OrderID
		return nil
	})
	if err != nil {
		return 0, ports.WrapStorageErr("add order", err)
	}
	return assignedID, nil
}

// UpdateOrder overwrites every mutable header field of an existing order and
// re-asserts the customer/employee snapshots. Line items are not touched.
func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing orderRecord
		if err := tx.Select("order_id").First(&existing, "order_id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrOrderNotFound
			}
			return err
		}
		if err := upsertSnapshots(tx, order); err != nil {
			return err
		}
		record := headerRecord(order)
		// Column map rather than struct update: zero values must overwrite too.
		return tx.Model(&orderRecord{}).
			Where("order_id = ?", order.ID).
			Updates(map[string]any{
				"customer_id":      record.CustomerID,
				"employee_id":      record.EmployeeID,
				"order_date":       record.OrderDate,
				"required_date":    record.RequiredDate,
				"shipped_date":     record.ShippedDate,
				"ship_via":         record.ShipVia,
				"freight":          record.Freight,
				"ship_name":        record.ShipName,
				"ship_address":     record.ShipAddress,
				"ship_city":        record.ShipCity,
				"ship_region":      record.ShipRegion,
				"ship_postal_code": record.ShipPostalCode,
				"ship_country":     record.ShipCountry,
			}).Error
	})
	return ports.WrapStorageErr("update order", err)
}

// RemoveOrder deletes the order header. Detail rows follow through the
// schema-level ON DELETE CASCADE constraint.
func (r *Repository) RemoveOrder(ctx context.Context, orderID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "order_id = ?", orderID)
	if result.Error != nil {
		return ports.WrapStorageErr("remove order", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

// upsertSnapshots re-asserts the customer and employee rows embedded in the
// aggregate on every write, keyed by their natural keys.
func upsertSnapshots(tx *gorm.DB, order *domain.Order) error {
	customer := customerRecord{
		Code:        order.Customer.Code.String(),
		CompanyName: strOrNil(order.Customer.CompanyName),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name"}),
	}).Create(&customer).Error; err != nil {
		return err
	}
	employee := employeeRecord{
		EmployeeID: order.Employee.ID,
		FirstName:  strOrNil(order.Employee.FirstName),
		LastName:   strOrNil(order.Employee.LastName),
		Country:    strOrNil(order.Employee.Country),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "country"}),
	}).Create(&employee).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
