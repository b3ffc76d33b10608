package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"

	"github.com/ghuser/crmgraph/services/crm/application/services"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
)

// builder assembles the CRM schema around an injected service container, so
// every process owns its schema instance instead of sharing package state.
type builder struct {
	svcs *services.Services

	customerType *graphql.Object
	productType  *graphql.Object
	orderType    *graphql.Object

	customerConn *relay.GraphQLConnectionDefinitions
	productConn  *relay.GraphQLConnectionDefinitions
	orderConn    *relay.GraphQLConnectionDefinitions
}

// NewSchema builds the executable CRM schema on top of the given services.
func NewSchema(svcs *services.Services) (graphql.Schema, error) {
	b := &builder{svcs: svcs}
	b.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryRoot(),
		Mutation: b.mutationRoot(),
	})
}

func (b *builder) queryRoot() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"all_customers": &graphql.Field{
				Type: b.customerConn.ConnectionType,
				Args: connectionArgs(graphql.FieldConfigArgument{
					"filter":   &graphql.ArgumentConfig{Type: customerFilterInput},
					"order_by": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter, err := customerFilterFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					customers, err := b.svcs.Customer.List(p.Context, filter, mapString(p.Args, "order_by"))
					if err != nil {
						return nil, err
					}
					nodes := make([]interface{}, len(customers))
					for i, c := range customers {
						nodes[i] = c
					}
					return relay.ConnectionFromArray(nodes, relay.NewConnectionArguments(p.Args)), nil
				},
			},
			"all_products": &graphql.Field{
				Type: b.productConn.ConnectionType,
				Args: connectionArgs(graphql.FieldConfigArgument{
					"filter":   &graphql.ArgumentConfig{Type: productFilterInput},
					"order_by": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter, err := productFilterFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					products, err := b.svcs.Product.List(p.Context, filter, mapString(p.Args, "order_by"))
					if err != nil {
						return nil, err
					}
					nodes := make([]interface{}, len(products))
					for i, pr := range products {
						nodes[i] = pr
					}
					return relay.ConnectionFromArray(nodes, relay.NewConnectionArguments(p.Args)), nil
				},
			},
			"all_orders": &graphql.Field{
				Type: b.orderConn.ConnectionType,
				Args: connectionArgs(graphql.FieldConfigArgument{
					"filter":   &graphql.ArgumentConfig{Type: orderFilterInput},
					"order_by": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter, err := orderFilterFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					orders, err := b.svcs.Order.List(p.Context, filter, mapString(p.Args, "order_by"))
					if err != nil {
						return nil, err
					}
					nodes := make([]interface{}, len(orders))
					for i, o := range orders {
						nodes[i] = o
					}
					return relay.ConnectionFromArray(nodes, relay.NewConnectionArguments(p.Args)), nil
				},
			},
		},
	})
}

type customerPayload struct {
	Customer *models.Customer
	Message  string
	Success  bool
}

type bulkCustomersPayload struct {
	Customers []*models.Customer
	Errors    []string
	Success   bool
}

type productPayload struct {
	Product *models.Product
	Message string
	Success bool
}

type orderPayload struct {
	Order   *models.Order
	Message string
	Success bool
}

var createCustomerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateCustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createProductInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var createOrderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateOrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customer_id": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"product_ids": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		"order_date":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

func (b *builder) mutationRoot() *graphql.Object {
	createCustomerPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{
				Type: b.customerType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c := p.Source.(*customerPayload).Customer
					if c == nil {
						return nil, nil
					}
					return c, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*customerPayload).Message, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*customerPayload).Success, nil
				},
			},
		},
	})

	bulkCreateCustomersPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.customerType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bulkCustomersPayload).Customers, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bulkCustomersPayload).Errors, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bulkCustomersPayload).Success, nil
				},
			},
		},
	})

	createProductPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: b.productType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pr := p.Source.(*productPayload).Product
					if pr == nil {
						return nil, nil
					}
					return pr, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*productPayload).Message, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*productPayload).Success, nil
				},
			},
		},
	})

	createOrderPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{
				Type: b.orderType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o := p.Source.(*orderPayload).Order
					if o == nil {
						return nil, nil
					}
					return o, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*orderPayload).Message, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*orderPayload).Success, nil
				},
			},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"create_customer": &graphql.Field{
				Type: graphql.NewNonNull(createCustomerPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCustomerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := customerInputFromMap(p.Args["input"].(map[string]interface{}))
					c, err := b.svcs.Customer.Create(p.Context, in)
					if err != nil {
						if isBusinessRule(err) {
							return &customerPayload{Message: messageFor(err)}, nil
						}
						return nil, err
					}
					return &customerPayload{Customer: c, Message: msgCustomerCreated, Success: true}, nil
				},
			},
			"bulk_create_customers": &graphql.Field{
				Type: graphql.NewNonNull(bulkCreateCustomersPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(createCustomerInput)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw := p.Args["input"].([]interface{})
					inputs := make([]services.CreateCustomerInput, 0, len(raw))
					for _, item := range raw {
						inputs = append(inputs, customerInputFromMap(item.(map[string]interface{})))
					}

					created, errs := b.svcs.Customer.BulkCreate(p.Context, inputs)
					msgs := make([]string, 0, len(errs))
					for _, e := range errs {
						if !isBusinessRule(e) {
							return nil, e
						}
						msgs = append(msgs, bulkMessageFor(e))
					}
					return &bulkCustomersPayload{
						Customers: created,
						Errors:    msgs,
						Success:   len(msgs) == 0,
					}, nil
				},
			},
			"create_product": &graphql.Field{
				Type: graphql.NewNonNull(createProductPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProductInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m := p.Args["input"].(map[string]interface{})
					in := services.CreateProductInput{
						Name:  mapString(m, "name"),
						Price: mapString(m, "price"),
					}
					if n, ok := m["stock"].(int); ok {
						in.Stock = int32(n)
					}

					pr, err := b.svcs.Product.Create(p.Context, in)
					if err != nil {
						if isBusinessRule(err) {
							return &productPayload{Message: messageFor(err)}, nil
						}
						return nil, err
					}
					return &productPayload{Product: pr, Message: msgProductCreated, Success: true}, nil
				},
			},
			"create_order": &graphql.Field{
				Type: graphql.NewNonNull(createOrderPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createOrderInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m := p.Args["input"].(map[string]interface{})
					in := services.CreateOrderInput{
						CustomerID: mapString(m, "customer_id"),
					}
					if rawIDs, ok := m["product_ids"].([]interface{}); ok {
						in.ProductIDs = make([]string, 0, len(rawIDs))
						for _, id := range rawIDs {
							s, _ := id.(string)
							in.ProductIDs = append(in.ProductIDs, s)
						}
					}
					if t, ok := m["order_date"].(time.Time); ok {
						in.OrderDate = &t
					}

					o, err := b.svcs.Order.Create(p.Context, in)
					if err != nil {
						if isBusinessRule(err) {
							return &orderPayload{Message: messageFor(err)}, nil
						}
						return nil, err
					}
					return &orderPayload{Order: o, Message: msgOrderCreated, Success: true}, nil
				},
			},
		},
	})
}

func customerInputFromMap(m map[string]interface{}) services.CreateCustomerInput {
	return services.CreateCustomerInput{
		Name:  mapString(m, "name"),
		Email: mapString(m, "email"),
		Phone: mapString(m, "phone"),
	}
}
