package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"

	"github.com/ghuser/crmgraph/services/crm/domain/models"
)

func (b *builder) buildTypes() {
	b.customerType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Customer).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Customer).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Customer).Email, nil
				},
			},
			"phone": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Customer).Phone, nil
				},
			},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Customer).CreatedAt, nil
				},
			},
		},
	})

	b.productType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Product).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Product).Name, nil
				},
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Product).Price, nil
				},
			},
			"stock": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*models.Product).Stock), nil
				},
			},
		},
	})

	b.orderType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Order).ID.String(), nil
				},
			},
			"total_amount": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Order).TotalAmount, nil
				},
			},
			"order_date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Order).OrderDate, nil
				},
			},
			"customer": &graphql.Field{
				Type: graphql.NewNonNull(b.customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o := p.Source.(*models.Order)
					return b.svcs.Order.Customer(p.Context, o.CustomerID)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.productType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o := p.Source.(*models.Order)
					if len(o.Products) > 0 {
						return o.Products, nil
					}
					return b.svcs.Order.Products(p.Context, o.ID)
				},
			},
		},
	})

	b.customerConn = relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     "Customer",
		NodeType: b.customerType,
	})
	b.productConn = relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     "Product",
		NodeType: b.productType,
	})
	b.orderConn = relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     "Order",
		NodeType: b.orderType,
	})
}
