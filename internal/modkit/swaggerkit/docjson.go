package swaggerkit

import (
	"encoding/json"
	"net/http"

	docs "galaxy/internal/services/api/docs"
)

// docReader is a seam for tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// failure is one shared error response stamped onto every report operation
type failure struct {
	status      string
	description string
	code        int
	message     string
}

// every report can fail validation, lose its source or run out of time
var failures = []failure{
	{"400", "Bad Request", 5, "hashtags must contain at least 1 item"},
	{"500", "Internal Server Error", 7, "database error"},
	{"503", "Service Unavailable", 2, "source tm is not configured"},
	{"504", "Gateway Timeout", 8, "statement timed out"},
}

// buildDoc decorates the generated document with the error envelope
func buildDoc(titleSuffix string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}
	if info, ok := spec["info"].(map[string]any); ok && titleSuffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + titleSuffix
		}
	}

	comps, _ := spec["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, _ := comps["schemas"].(map[string]any)
	if schemas == nil {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	schemas["ErrorResponse"] = errorSchema()

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, _ := op["responses"].(map[string]any)
			if resps == nil {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for _, f := range failures {
				if _, exists := resps[f.status]; !exists {
					resps[f.status] = f.response()
				}
			}
		}
	}
	return json.Marshal(spec)
}

func (f failure) response() map[string]any {
	return map[string]any{
		"description": f.description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": json.Number(f.status),
					"status":      f.description,
					"code":        f.code,
					"error":       f.message,
					"request_id":  "galaxy-api/8Zx3kq-000042",
				},
			},
		},
	}
}

// errorSchema mirrors phttp.Envelope on failure
func errorSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"db_code":     map[string]any{"type": "string", "description": "SQLSTATE when the database rejected the query"},
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status", "error"},
	}
}

// serveDocJSON renders once and serves the cached bytes
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	doc, err := buildDoc(titleSuffix)
	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	}
}
