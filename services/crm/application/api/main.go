package api

import (
	"github.com/go-chi/chi/v5"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/ghuser/crmgraph/pkg/app"
	"github.com/ghuser/crmgraph/services/crm/application/graph"
	appsvcs "github.com/ghuser/crmgraph/services/crm/application/services"
)

// CRMRoutes builds the CRM schema once and mounts the query endpoint on the
// provided chi router. GraphiQL is only exposed in development.
func CRMRoutes(r chi.Router, a *app.Application, graphiql bool) error {
	svcs := appsvcs.New(a)
	schema, err := graph.NewSchema(svcs)
	if err != nil {
		return err
	}

	h := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   graphiql,
		GraphiQL: graphiql,
	})

	r.Group(func(r chi.Router) {
		r.Handle("/graphql", h)
	})
	return nil
}
