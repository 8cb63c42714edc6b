package module

import (
	"tjmwatch/internal/modkit/swaggerkit"
)

// marketPaths are the routes markethttp.Register mounts
var marketPaths = map[string]bool{
	"/stats":             true,
	"/offers":            true,
	"/best-offers":       true,
	"/technologies":      true,
	"/companies":         true,
	"/rate-distribution": true,
}

func init() { swaggerkit.Register(describeMarket) }

// describeMarket documents what the binder actually rejects on market routes.
// period and page never fail, only search length and cap do.
func describeMarket(spec map[string]any) {
	swaggerkit.EachOperation(spec, func(path, _ string, op map[string]any) {
		if !marketPaths[path] {
			return
		}
		field, msg := "search", "search must be at most 200"
		if path == "/rate-distribution" {
			field, msg = "cap", "cap must be at least 100"
		}
		swaggerkit.Responses(op)["400"] = map[string]any{
			"description": "Invalid " + field,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
					"example": map[string]any{
						"status_code": 400,
						"status":      "Bad Request",
						"code":        8,
						"error":       msg,
						"field":       field,
					},
				},
			},
		}
		// success bodies are written without the envelope
		op["x-bare-response"] = true
	})
}
