// Package graph exposes the read-only catalog GraphQL API: the products
// and categories queries over active rows.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/collection"
	gql "github.com/muthuvel/santhai/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"nameTamil":  &graphql.Field{Type: graphql.String},
		"imageUrl":   &graphql.Field{Type: graphql.String},
		"sortOrder":  &graphql.Field{Type: graphql.Int},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"sku":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"nameTamil":    &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"categoryId":   &graphql.Field{Type: graphql.Int},
		"price":        &graphql.Field{Type: graphql.Float},
		"stock":        &graphql.Field{Type: graphql.Float},
		"minQuantity":  &graphql.Field{Type: graphql.Float},
		"maxQuantity":  &graphql.Field{Type: graphql.Float},
		"quantityStep": &graphql.Field{Type: graphql.Float},
		"unit":         &graphql.Field{Type: graphql.String},
		"taxRate":      &graphql.Field{Type: graphql.Float},
		"imageUrl":     &graphql.Field{Type: graphql.String},
		"featured":     &graphql.Field{Type: graphql.Boolean},
	},
})

// NewSchema builds the catalog schema against the given service.
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cats, err := catalog.ActiveCategories()
					if err != nil {
						return nil, fmt.Errorf("categories: %w", err)
					}
					return collection.Map(cats, func(c models.Category) map[string]interface{} {
						return map[string]interface{}{
							"id":        int(c.ID),
							"name":      c.Name,
							"nameTamil": c.NameTamil,
							"imageUrl":  c.ImageURL,
							"sortOrder": c.SortOrder,
						}
					}), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.Int},
					"search":     &graphql.ArgumentConfig{Type: graphql.String},
					"featured":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"page":       &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var categoryID uint
					if v, ok := p.Args["categoryId"].(int); ok && v > 0 {
						categoryID = uint(v)
					}
					search, _ := p.Args["search"].(string)
					featured, _ := p.Args["featured"].(bool)
					page, _ := p.Args["page"].(int)
					perPage, _ := p.Args["perPage"].(int)

					products, _, err := catalog.Products(categoryID, search, featured, page, perPage)
					if err != nil {
						return nil, fmt.Errorf("products: %w", err)
					}
					return collection.Map(products, func(pr models.Product) map[string]interface{} {
						return map[string]interface{}{
							"id":           int(pr.ID),
							"sku":          pr.SKU,
							"name":         pr.Name,
							"nameTamil":    pr.NameTamil,
							"description":  pr.Description,
							"categoryId":   int(pr.CategoryID),
							"price":        pr.Price,
							"stock":        pr.Stock,
							"minQuantity":  pr.MinQuantity,
							"maxQuantity":  pr.MaxQuantity,
							"quantityStep": pr.QuantityStep,
							"unit":         pr.Unit,
							"taxRate":      pr.TaxRate,
							"imageUrl":     pr.ImageURL,
							"featured":     pr.Featured,
						}
					}), nil
				},
			},
		},
	})

	return gql.NewSchema(root)
}
