package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Foreign keys resolve only when referenced tables migrate first, so the
// model order is part of the contract.
func TestModels_CoversSchemaInForeignKeyOrder(t *testing.T) {
	var tables []string
	for _, model := range Models() {
		named, ok := model.(interface{ TableName() string })
		require.True(t, ok, "%T must pin its table name", model)
		tables = append(tables, named.TableName())
	}
	require.Equal(t, []string{
		"customers",
		"employees",
		"shippers",
		"categories",
		"suppliers",
		"products",
		"orders",
		"order_details",
	}, tables)
}
