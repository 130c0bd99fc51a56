package graph_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/graph"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-secret"

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

type productPayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      *string `json:"imageUrl"`
	Category      *string `json:"category"`
	StockQuantity int     `json:"stockQuantity"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

func newTestApp(t *testing.T) (*fiber.App, *repositories.MockProductRepository) {
	t.Helper()

	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)
	guard := auth.NewAdminGuard(testAdminKey)

	schema, err := graph.NewSchema(service, guard)
	require.NoError(t, err)

	app := fiber.New()
	graph.RegisterRoutes(app, schema)
	return app, repo
}

func doGraphQL(t *testing.T, app *fiber.App, query string, variables map[string]interface{}, adminKey string) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed gqlResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

func createProduct(t *testing.T, app *fiber.App, input map[string]interface{}) productPayload {
	t.Helper()

	resp := doGraphQL(t, app, `
		mutation ($input: CreateProductInput!) {
			createProduct(input: $input) {`+productFields+`}
		}`, map[string]interface{}{"input": input}, testAdminKey)
	require.Empty(t, resp.Errors)

	var product productPayload
	require.NoError(t, json.Unmarshal(resp.Data["createProduct"], &product))
	return product
}

func errorCode(t *testing.T, resp gqlResponse) string {
	t.Helper()
	require.NotEmpty(t, resp.Errors)
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

func TestMutationWithoutAdminKeyIsUnauthorized(t *testing.T) {
	app, repo := newTestApp(t)

	resp := doGraphQL(t, app, `
		mutation ($input: CreateProductInput!) {
			createProduct(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{"name": "Bead Necklace", "price": 45.99},
	}, "")

	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	// No store write happened
	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMutationWithWrongAdminKeyIsUnauthorized(t *testing.T) {
	app, repo := newTestApp(t)

	resp := doGraphQL(t, app, `
		mutation ($id: ID!) {
			removeProduct(id: $id) { id }
		}`, map[string]interface{}{"id": "anything"}, "wrong-key")

	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestQueriesAreUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGraphQL(t, app, `query { products { id name } }`, nil, "")

	assert.Empty(t, resp.Errors)
	var products []productPayload
	require.NoError(t, json.Unmarshal(resp.Data["products"], &products))
	assert.Empty(t, products)
}

func TestCreateAppliesDefaults(t *testing.T) {
	app, _ := newTestApp(t)

	product := createProduct(t, app, map[string]interface{}{
		"name":  "Bead Necklace",
		"price": 45.99,
	})

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Bead Necklace", product.Name)
	assert.InDelta(t, 45.99, product.Price, 0.001)
	assert.Equal(t, 1, product.StockQuantity)
	assert.True(t, product.IsActive)
	assert.Nil(t, product.Description)
	assert.Nil(t, product.ImageURL)
	assert.Nil(t, product.Category)
	assert.NotEmpty(t, product.CreatedAt)
	assert.NotEmpty(t, product.UpdatedAt)
}

func TestCreateGetRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	created := createProduct(t, app, map[string]interface{}{
		"name":        "Clay Pot",
		"price":       15.00,
		"description": "Hand thrown",
		"category":    "pottery",
	})

	resp := doGraphQL(t, app, `
		query ($id: ID!) {
			product(id: $id) {`+productFields+`}
		}`, map[string]interface{}{"id": created.ID}, "")
	require.Empty(t, resp.Errors)

	var fetched productPayload
	require.NoError(t, json.Unmarshal(resp.Data["product"], &fetched))
	assert.Equal(t, created, fetched)
}

func TestGetAbsentProductIsNullNotError(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGraphQL(t, app, `
		query ($id: ID!) {
			product(id: $id) { id }
		}`, map[string]interface{}{"id": "does-not-exist"}, "")

	assert.Empty(t, resp.Errors)
	assert.Equal(t, "null", string(resp.Data["product"]))
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	app, _ := newTestApp(t)

	created := createProduct(t, app, map[string]interface{}{
		"name":  "Bead Necklace",
		"price": 45.99,
	})

	time.Sleep(5 * time.Millisecond)

	resp := doGraphQL(t, app, `
		mutation ($input: UpdateProductInput!) {
			updateProduct(input: $input) {`+productFields+`}
		}`, map[string]interface{}{
		"input": map[string]interface{}{"id": created.ID, "stockQuantity": 10},
	}, testAdminKey)
	require.Empty(t, resp.Errors)

	var updated productPayload
	require.NoError(t, json.Unmarshal(resp.Data["updateProduct"], &updated))

	assert.Equal(t, 10, updated.StockQuantity)
	assert.Equal(t, "Bead Necklace", updated.Name)
	assert.InDelta(t, 45.99, updated.Price, 0.001)
	assert.True(t, updated.IsActive)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	before, err := time.Parse(time.RFC3339Nano, created.UpdatedAt)
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, after.After(before))
}

func TestUpdateNonexistentIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGraphQL(t, app, `
		mutation ($input: UpdateProductInput!) {
			updateProduct(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{"id": "ghost", "stockQuantity": 5},
	}, testAdminKey)

	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
	assert.Contains(t, resp.Errors[0].Message, "ghost")
}

func TestRemoveReturnsSnapshotThenProductIsGone(t *testing.T) {
	app, _ := newTestApp(t)

	created := createProduct(t, app, map[string]interface{}{
		"name":  "Bead Necklace",
		"price": 45.99,
	})

	// Bump the stock so the snapshot reflects the latest state
	resp := doGraphQL(t, app, `
		mutation ($input: UpdateProductInput!) {
			updateProduct(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{"id": created.ID, "stockQuantity": 10},
	}, testAdminKey)
	require.Empty(t, resp.Errors)

	resp = doGraphQL(t, app, `
		mutation ($id: ID!) {
			removeProduct(id: $id) {`+productFields+`}
		}`, map[string]interface{}{"id": created.ID}, testAdminKey)
	require.Empty(t, resp.Errors)

	var snapshot productPayload
	require.NoError(t, json.Unmarshal(resp.Data["removeProduct"], &snapshot))
	assert.Equal(t, 10, snapshot.StockQuantity)
	assert.Equal(t, "Bead Necklace", snapshot.Name)

	resp = doGraphQL(t, app, `
		query ($id: ID!) {
			product(id: $id) { id }
		}`, map[string]interface{}{"id": created.ID}, "")
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "null", string(resp.Data["product"]))
}

func TestRemoveNonexistentIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGraphQL(t, app, `
		mutation ($id: ID!) {
			removeProduct(id: $id) { id }
		}`, map[string]interface{}{"id": "ghost"}, testAdminKey)

	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestListReflectsCreatesAndRemoves(t *testing.T) {
	app, _ := newTestApp(t)

	a := createProduct(t, app, map[string]interface{}{"name": "Product A", "price": 10.00})
	b := createProduct(t, app, map[string]interface{}{"name": "Product B", "price": 20.00})

	resp := doGraphQL(t, app, `
		mutation ($id: ID!) {
			removeProduct(id: $id) { id }
		}`, map[string]interface{}{"id": a.ID}, testAdminKey)
	require.Empty(t, resp.Errors)

	resp = doGraphQL(t, app, `query { products { id name } }`, nil, "")
	require.Empty(t, resp.Errors)

	var products []productPayload
	require.NoError(t, json.Unmarshal(resp.Data["products"], &products))
	require.Len(t, products, 1)
	assert.Equal(t, b.ID, products[0].ID)
	assert.Equal(t, "Product B", products[0].Name)
}

func TestCreateValidationFailureCarriesFieldDetail(t *testing.T) {
	app, repo := newTestApp(t)

	// Empty name clears GraphQL's non-null check but fails validation
	resp := doGraphQL(t, app, `
		mutation ($input: CreateProductInput!) {
			createProduct(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{"name": "", "price": 5.00},
	}, testAdminKey)

	assert.Equal(t, "BAD_USER_INPUT", errorCode(t, resp))
	fields, ok := resp.Errors[0].Extensions["invalidFields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "Name")

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}
