package graph

import (
	"context"
	"log"

	"storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

type ctxKey int

const adminKeyCtxKey ctxKey = iota

// AdminKeyFromContext returns the admin key carried in the resolver
// context, or an empty string when the request supplied none.
func AdminKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	key, _ := ctx.Value(adminKeyCtxKey).(string)
	return key
}

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves the GraphQL endpoint. Execution outcomes, including
// Unauthorized and NotFound, travel in the response's errors array with an
// HTTP 200; only an unreadable request body yields a 400.
func Handler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req graphqlRequest
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing GraphQL request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}

		ctx := context.WithValue(c.UserContext(), adminKeyCtxKey, middleware.AdminKeyFromCtx(c))

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        ctx,
		})
		return c.JSON(result)
	}
}

// RegisterRoutes registers the GraphQL endpoint on the given router.
func RegisterRoutes(router fiber.Router, schema graphql.Schema) {
	router.Post("/graphql", middleware.ExtractAdminKey(), Handler(schema))
}
