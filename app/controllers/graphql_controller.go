package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/muthuvel/santhai/app/graph"
	"github.com/muthuvel/santhai/app/services"
	gql "github.com/muthuvel/santhai/pkg/graphql"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/response"
)

// GraphQLController serves the read-only catalog query endpoint.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(catalog *services.CatalogService) (*GraphQLController, error) {
	schema, err := graph.NewSchema(catalog)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid GraphQL request")
		return
	}

	result := gql.Do(r.Context(), c.schema, body.Query, body.Variables)
	if len(result.Errors) > 0 {
		logger.WithCtx(r.Context()).Warn("graphql query errors", "errors", result.Errors)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
