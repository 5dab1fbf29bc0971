package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gormTag returns the gorm struct tag for a field.
func gormTag(t *testing.T, model interface{}, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	require.True(t, ok, "field %s not found", field)
	return f.Tag.Get("gorm")
}

func TestOrderNumberUniquePerShop(t *testing.T) {
	// Order numbers restart at ORD-0001 for every shop, so the unique
	// index must span (shop_id, order_number), not order_number alone.
	shopTag := gormTag(t, Order{}, "ShopID")
	numberTag := gormTag(t, Order{}, "OrderNumber")

	assert.Contains(t, shopTag, "uniqueIndex:idx_shop_order_number")
	assert.Contains(t, numberTag, "uniqueIndex:idx_shop_order_number")
	assert.False(t, strings.Contains(numberTag, "uniqueIndex;"),
		"order_number must not carry a standalone unique index")
}

func TestClientPhoneUniquePerShop(t *testing.T) {
	shopTag := gormTag(t, Client{}, "ShopID")
	phoneTag := gormTag(t, Client{}, "Phone")

	assert.Contains(t, shopTag, "uniqueIndex:idx_shop_phone")
	assert.Contains(t, phoneTag, "uniqueIndex:idx_shop_phone")
}
