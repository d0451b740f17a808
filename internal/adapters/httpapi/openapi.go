package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/metro-cards/internal/buildinfo"
	"github.com/Guilhem-Bonnet/metro-cards/internal/httpjson"
)

// handleOpenAPI renvoie un document OpenAPI minimal de l'API.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	str := map[string]any{"type": "string"}

	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "metro-cards API",
			"version": buildinfo.Current().Version,
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Error": map[string]any{
					"type":       "object",
					"properties": map[string]any{"error": str},
					"required":   []any{"error"},
				},
				"Station": map[string]any{
					"type":       "object",
					"properties": map[string]any{"key": str, "label": str},
					"required":   []any{"key", "label"},
				},
				"StationList": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/Station"},
				},
				"Card": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          str,
						"key":         str,
						"label":       str,
						"title":       str,
						"subtitle":    str,
						"lastUpdated": str,
						"messages":    map[string]any{"type": "array", "items": str, "maxItems": 4},
						"source":      map[string]any{"type": "string", "enum": []any{"cache", "network", "default"}},
						"revision":    map[string]any{"type": "integer"},
						"updatedAt":   map[string]any{"type": "string", "format": "date-time"},
					},
				},
				"Board": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"loading": map[string]any{"type": "boolean"},
						"cards":   map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Card"}},
					},
				},
				"AuditResult": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":             str,
						"title":          str,
						"displayValueMs": map[string]any{"type": "number"},
						"score":          map[string]any{"type": "integer", "enum": []any{0, 1}},
						"passed":         map[string]any{"type": "boolean"},
					},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}}},
			"/api/v1/stations": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/StationList")}},
				"post": map[string]any{
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{"schema": map[string]any{"$ref": "#/components/schemas/Station"}},
						},
					},
					"responses": map[string]any{"201": map[string]any{"description": "Created"}, "400": jsonErr},
				},
			},
			"/api/v1/cards":   map[string]any{"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Board")}}},
			"/api/v1/cards/{key}": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Card"), "404": jsonErr}},
			},
			"/api/v1/refresh": map[string]any{"post": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Board")}}},
			"/api/v1/audit/card": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/AuditResult"), "404": jsonErr}},
			},
			"/api/v1/schedules/{key}": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "Upstream schedule payload"}, "502": jsonErr}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{
					"description": "SSE stream (card.created, card.updated, loading.cleared)",
					"content":     map[string]any{"text/event-stream": map[string]any{}},
				}}},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, doc)
}
