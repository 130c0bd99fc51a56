package graph

import (
	"time"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

// NewSchema builds the storefront GraphQL schema. Queries are open;
// every mutation consults the admin guard before touching the service.
func NewSchema(service *services.ProductService, guard *auth.AdminGuard) (graphql.Schema, error) {
	productType := newProductType()
	createInput := newCreateInput()
	updateInput := newUpdateInput()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.List()
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, err := service.Get(id)
					if err != nil {
						return nil, classify(err)
					}
					if product == nil {
						// A miss on a read is an absent result, not an error.
						return nil, nil
					}
					return product, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := guard.Authorize(AdminKeyFromContext(p.Context)); err != nil {
						return nil, classify(err)
					}
					input, _ := p.Args["input"].(map[string]interface{})
					product, err := service.Create(createInputFromArgs(input))
					if err != nil {
						return nil, classify(err)
					}
					return product, nil
				},
			},
			"updateProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := guard.Authorize(AdminKeyFromContext(p.Context)); err != nil {
						return nil, classify(err)
					}
					input, _ := p.Args["input"].(map[string]interface{})
					product, err := service.Update(updateInputFromArgs(input))
					if err != nil {
						return nil, classify(err)
					}
					return product, nil
				},
			},
			"removeProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := guard.Authorize(AdminKeyFromContext(p.Context)); err != nil {
						return nil, classify(err)
					}
					id, _ := p.Args["id"].(string)
					product, err := service.Remove(id)
					if err != nil {
						return nil, classify(err)
					}
					return product, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.ID, nil
				}),
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.Name, nil
				}),
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return derefOrNil(p.Description), nil
				}),
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.Price.InexactFloat64(), nil
				}),
			},
			"imageUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return derefOrNil(p.ImageURL), nil
				}),
			},
			"category": &graphql.Field{
				Type: graphql.String,
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return derefOrNil(p.Category), nil
				}),
			},
			"stockQuantity": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.StockQuantity, nil
				}),
			},
			"isActive": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.IsActive, nil
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.CreatedAt.Format(time.RFC3339Nano), nil
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: resolveProduct(func(p *models.Product) (interface{}, error) {
					return p.UpdatedAt.Format(time.RFC3339Nano), nil
				}),
			},
		},
	})
}

func newCreateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"imageUrl":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"category":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"stockQuantity": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"isActive":      &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
}

func newUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":         &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"imageUrl":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"category":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"stockQuantity": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"isActive":      &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
}

// createInputFromArgs maps the coerced GraphQL argument map onto the
// service input. Key presence in the map is what distinguishes an omitted
// field from a supplied one; a value of the wrong dynamic type (including
// an explicit null) counts as omitted.
func createInputFromArgs(args map[string]interface{}) services.CreateProductInput {
	input := services.CreateProductInput{
		Description:   optString(args, "description"),
		ImageURL:      optString(args, "imageUrl"),
		Category:      optString(args, "category"),
		StockQuantity: optInt(args, "stockQuantity"),
		IsActive:      optBool(args, "isActive"),
	}
	if name, ok := args["name"].(string); ok {
		input.Name = name
	}
	if price, ok := toFloat(args["price"]); ok {
		d := decimal.NewFromFloat(price).Round(2)
		input.Price = &d
	}
	return input
}

func updateInputFromArgs(args map[string]interface{}) services.UpdateProductInput {
	input := services.UpdateProductInput{
		Name:          optString(args, "name"),
		Description:   optString(args, "description"),
		ImageURL:      optString(args, "imageUrl"),
		Category:      optString(args, "category"),
		StockQuantity: optInt(args, "stockQuantity"),
		IsActive:      optBool(args, "isActive"),
	}
	if id, ok := args["id"].(string); ok {
		input.ID = id
	}
	if price, ok := toFloat(args["price"]); ok {
		d := decimal.NewFromFloat(price).Round(2)
		input.Price = &d
	}
	return input
}

// resolveProduct adapts a typed resolver to graphql-go's untyped source.
// List items arrive by value, single results by pointer.
func resolveProduct(fn func(*models.Product) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case models.Product:
			return fn(&src)
		case *models.Product:
			return fn(src)
		}
		return nil, nil
	}
}

func derefOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func optString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optBool(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
