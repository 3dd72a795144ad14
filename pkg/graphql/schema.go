// Package graphql wraps graphql-go with the small surface the catalog
// endpoint needs: build a query-only schema and execute one request.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// NewSchema builds a query-only schema from the given root object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Do executes one query against schema. Resolver errors end up in
// result.Errors, never as a Go error.
func Do(ctx context.Context, schema graphql.Schema, query string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}
