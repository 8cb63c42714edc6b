package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"tjmwatch/internal/platform/config"

	docs "tjmwatch/internal/services/api/docs"
)

// SpecMutator adjusts the parsed OpenAPI document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a test seam over the generated docs
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a mutator; modules call it from init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// EachOperation calls fn for every operation under paths
func EachOperation(spec map[string]any, fn func(path, method string, op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for path, node := range paths {
		methods, ok := node.(map[string]any)
		if !ok {
			continue
		}
		for method, opAny := range methods {
			if op, ok := opAny.(map[string]any); ok {
				fn(path, method, op)
			}
		}
	}
}

// Responses returns the responses object of op, creating it when absent
func Responses(op map[string]any) map[string]any {
	resps, ok := op["responses"].(map[string]any)
	if !ok {
		resps = map[string]any{}
		op["responses"] = resps
	}
	return resps
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalize(spec, "/api/v1")
		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorSchema(spec)
		for code, resp := range defaultErrors {
			EachOperation(spec, func(_, _ string, op map[string]any) {
				if _, ok := op["parameters"]; !ok && code == "400" {
					return
				}
				resps := Responses(op)
				if _, ok := resps[code]; !ok {
					resps[code] = resp
				}
			})
		}

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalize serves 3.0.3 with a servers entry; the bundled UI cannot render 3.1
func normalize(spec map[string]any, base string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

// ensureErrorSchema mirrors phttp.Envelope as written for errors
func ensureErrorSchema(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(description string, example map[string]any) map[string]any {
	example["request_id"] = "7c1f0e2a9b44/req-000001"
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

// defaultErrors are added to every operation that does not declare them; 400 only where parameters exist
var defaultErrors = map[string]map[string]any{
	"400": errorResponse("Invalid query parameter", map[string]any{
		"status_code": 400,
		"status":      "Bad Request",
		"code":        8,
		"error":       "limit must be at most 100",
		"field":       "limit",
	}),
	"500": errorResponse("Query failed", map[string]any{
		"status_code": 500,
		"status":      "Internal Server Error",
		"code":        12,
		"error":       "market: stats",
	}),
	"503": errorResponse("Store unreachable", map[string]any{
		"status_code": 503,
		"status":      "Service Unavailable",
		"code":        2,
		"error":       "market: stats",
	}),
}
