package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
	"github.com/shopspring/decimal"

	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

var customerFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name_contains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email_contains": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"phone_prefix":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"created_at_gte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"created_at_lte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name_contains": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price_gte":     &graphql.InputObjectFieldConfig{Type: decimalType},
		"price_lte":     &graphql.InputObjectFieldConfig{Type: decimalType},
		"stock_gte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"stock_lte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customer_name":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"total_amount_gte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"total_amount_lte": &graphql.InputObjectFieldConfig{Type: decimalType},
		"order_date_gte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"order_date_lte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"product_id":       &graphql.InputObjectFieldConfig{Type: graphql.ID},
	},
})

// connectionArgs merges relay's pagination arguments with field-specific ones.
func connectionArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for k, v := range relay.ConnectionArgs {
		args[k] = v
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

func customerFilterFromArgs(args map[string]interface{}) (repositories.CustomerFilter, error) {
	var f repositories.CustomerFilter
	m, _ := args["filter"].(map[string]interface{})
	if m == nil {
		return f, nil
	}
	f.NameContains = mapString(m, "name_contains")
	f.EmailContains = mapString(m, "email_contains")
	f.PhonePrefix = mapString(m, "phone_prefix")
	f.CreatedFrom = mapTime(m, "created_at_gte")
	f.CreatedTo = mapTime(m, "created_at_lte")
	return f, nil
}

func productFilterFromArgs(args map[string]interface{}) (repositories.ProductFilter, error) {
	var f repositories.ProductFilter
	m, _ := args["filter"].(map[string]interface{})
	if m == nil {
		return f, nil
	}
	f.NameContains = mapString(m, "name_contains")

	var err error
	if f.PriceMin, err = mapDecimal(m, "price_gte"); err != nil {
		return f, err
	}
	if f.PriceMax, err = mapDecimal(m, "price_lte"); err != nil {
		return f, err
	}
	f.StockMin = mapInt32(m, "stock_gte")
	f.StockMax = mapInt32(m, "stock_lte")
	return f, nil
}

func orderFilterFromArgs(args map[string]interface{}) (repositories.OrderFilter, error) {
	var f repositories.OrderFilter
	m, _ := args["filter"].(map[string]interface{})
	if m == nil {
		return f, nil
	}
	f.CustomerNameContains = mapString(m, "customer_name")

	var err error
	if f.TotalMin, err = mapDecimal(m, "total_amount_gte"); err != nil {
		return f, err
	}
	if f.TotalMax, err = mapDecimal(m, "total_amount_lte"); err != nil {
		return f, err
	}
	f.DateFrom = mapTime(m, "order_date_gte")
	f.DateTo = mapTime(m, "order_date_lte")

	if raw := mapString(m, "product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, fmt.Errorf("product_id: invalid id %q", raw)
		}
		f.ProductID = &id
	}
	return f, nil
}

func mapString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapTime(m map[string]interface{}, key string) *time.Time {
	if t, ok := m[key].(time.Time); ok {
		return &t
	}
	return nil
}

func mapInt32(m map[string]interface{}, key string) *int32 {
	if n, ok := m[key].(int); ok {
		v := int32(n)
		return &v
	}
	return nil
}

func mapDecimal(m map[string]interface{}, key string) (*decimal.Decimal, error) {
	raw, ok := m[key].(string)
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid decimal %q", key, raw)
	}
	return &d, nil
}
