package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	gql "github.com/shashiranjanraj/ameya/pkg/graphql"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
)

// GraphQLController exposes a read-only catalogue query endpoint:
//
//	{ products(category: "gummy") { id name price stock } }
//	{ product(id: "gummy-001") { name description } }
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(products *repositories.ProductRepository) (*GraphQLController, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Int},
			"category":    &graphql.Field{Type: graphql.String},
			"imageUrl":    &graphql.Field{Type: graphql.String},
			"stock":       &graphql.Field{Type: graphql.Int},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if raw, ok := p.Args["category"].(string); ok && raw != "" {
						return products.FindByCategory(models.Category(raw))
					}
					return products.All()
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.FindByID(p.Args["id"].(string))
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query executes a GraphQL query. ?query= for GET, raw body for POST.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" && r.Body != nil {
		var body struct {
			Query string `json:"query"`
		}
		// A malformed body falls through to the empty-query error below.
		decodeJSONBody(r, &body)
		query = body.Query
	}
	if query == "" {
		response.Error(w, http.StatusBadRequest, "Missing query")
		return
	}

	result := graphql.Do(graphql.Params{Schema: c.schema, RequestString: query})
	if len(result.Errors) > 0 {
		logger.WithCtx(r.Context()).Warn("graphql query failed", "errors", result.Errors)
	}
	response.Success(w, result)
}
