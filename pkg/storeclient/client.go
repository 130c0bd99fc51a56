// Package storeclient is the storefront's client-side data access layer:
// typed wrappers around the products GraphQL API. Read operations need no
// credential; mutations send the admin key header.
package storeclient

import (
	"context"
	"time"

	"github.com/machinebox/graphql"
)

// AdminKeyHeader is the request header carrying the shared admin secret.
const AdminKeyHeader = "X-Admin-Key"

// Product mirrors the API's Product type with client-friendly field types.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"imageUrl"`
	Category      *string   `json:"category"`
	StockQuantity int       `json:"stockQuantity"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateProductInput carries the fields for CreateProduct. Nil optional
// fields are omitted from the request entirely.
type CreateProductInput struct {
	Name          string
	Price         float64
	Description   *string
	ImageURL      *string
	Category      *string
	StockQuantity *int
	IsActive      *bool
}

// UpdateProductInput carries a product ID plus any subset of fields to
// change. Nil fields are omitted and keep their server-side value.
type UpdateProductInput struct {
	ID            string
	Name          *string
	Price         *float64
	Description   *string
	ImageURL      *string
	Category      *string
	StockQuantity *int
	IsActive      *bool
}

// Client issues the five product operations against a storefront backend.
type Client struct {
	gql      *graphql.Client
	adminKey string
}

// New creates a client for the GraphQL endpoint at url (e.g.
// "http://localhost:8080/graphql"). adminKey may be empty for read-only use.
func New(url, adminKey string) *Client {
	return &Client{
		gql:      graphql.NewClient(url),
		adminKey: adminKey,
	}
}

const productFields = `
	id
	name
	description
	price
	imageUrl
	category
	stockQuantity
	isActive
	createdAt
	updatedAt
`

// Products lists every product in the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	req := graphql.NewRequest(`
		query {
			products {` + productFields + `}
		}`)

	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Product fetches a single product by ID. A missing product yields
// (nil, nil).
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	req := graphql.NewRequest(`
		query ($id: ID!) {
			product(id: $id) {` + productFields + `}
		}`)
	req.Var("id", id)

	var resp struct {
		Product *Product `json:"product"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// CreateProduct creates a new product. Requires the admin key.
func (c *Client) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	req := graphql.NewRequest(`
		mutation ($input: CreateProductInput!) {
			createProduct(input: $input) {` + productFields + `}
		}`)
	req.Var("input", createInputVars(input))
	req.Header.Set(AdminKeyHeader, c.adminKey)

	var resp struct {
		CreateProduct Product `json:"createProduct"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreateProduct, nil
}

// UpdateProduct applies a partial update to an existing product. Requires
// the admin key.
func (c *Client) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	req := graphql.NewRequest(`
		mutation ($input: UpdateProductInput!) {
			updateProduct(input: $input) {` + productFields + `}
		}`)
	req.Var("input", updateInputVars(input))
	req.Header.Set(AdminKeyHeader, c.adminKey)

	var resp struct {
		UpdateProduct Product `json:"updateProduct"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp.UpdateProduct, nil
}

// RemoveProduct deletes a product and returns its pre-deletion snapshot.
// Requires the admin key.
func (c *Client) RemoveProduct(ctx context.Context, id string) (*Product, error) {
	req := graphql.NewRequest(`
		mutation ($id: ID!) {
			removeProduct(id: $id) {` + productFields + `}
		}`)
	req.Var("id", id)
	req.Header.Set(AdminKeyHeader, c.adminKey)

	var resp struct {
		RemoveProduct Product `json:"removeProduct"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp.RemoveProduct, nil
}

// createInputVars builds the input variable map, leaving omitted fields
// out entirely so the server sees them as absent rather than null.
func createInputVars(input CreateProductInput) map[string]interface{} {
	vars := map[string]interface{}{
		"name":  input.Name,
		"price": input.Price,
	}
	setOptional(vars, "description", input.Description)
	setOptional(vars, "imageUrl", input.ImageURL)
	setOptional(vars, "category", input.Category)
	if input.StockQuantity != nil {
		vars["stockQuantity"] = *input.StockQuantity
	}
	if input.IsActive != nil {
		vars["isActive"] = *input.IsActive
	}
	return vars
}

func updateInputVars(input UpdateProductInput) map[string]interface{} {
	vars := map[string]interface{}{
		"id": input.ID,
	}
	setOptional(vars, "name", input.Name)
	setOptional(vars, "description", input.Description)
	setOptional(vars, "imageUrl", input.ImageURL)
	setOptional(vars, "category", input.Category)
	if input.Price != nil {
		vars["price"] = *input.Price
	}
	if input.StockQuantity != nil {
		vars["stockQuantity"] = *input.StockQuantity
	}
	if input.IsActive != nil {
		vars["isActive"] = *input.IsActive
	}
	return vars
}

func setOptional(vars map[string]interface{}, key string, value *string) {
	if value != nil {
		vars[key] = *value
	}
}
