package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Gradebook API",
        "description": "Score computation and gradebook service for course documents",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Scores", "description": "Computed item scores and summaries"},
        {"name": "Overrides", "description": "Manual score overrides"},
        {"name": "Reports", "description": "Course grade report downloads"},
        {"name": "Metrics", "description": "Runtime metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/courses/{courseId}/students/{email}/summary": {
            "get": {
                "tags": ["Scores"],
                "summary": "Full gradebook summary for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "email", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found or not loaded"}
                }
            }
        },
        "/courses/{courseId}/students/{email}/items/{itemId}/score": {
            "get": {
                "tags": ["Scores"],
                "summary": "Compute one item's score",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "email", "in": "path", "type": "string", "required": true},
                    {"name": "itemId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Item score", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Item not configured"}
                }
            }
        },
        "/courses/{courseId}/students/{email}/items/{itemId}/completion": {
            "get": {
                "tags": ["Scores"],
                "summary": "Report item completion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "email", "in": "path", "type": "string", "required": true},
                    {"name": "itemId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Completion status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{courseId}/students/{email}/items/{itemId}/override": {
            "put": {
                "tags": ["Overrides"],
                "summary": "Apply a manual score override",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "email", "in": "path", "type": "string", "required": true},
                    {"name": "itemId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyOverrideRequest"}}
                ],
                "responses": {
                    "200": {"description": "Override applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or session-scored item"},
                    "403": {"description": "Staff only"}
                }
            },
            "delete": {
                "tags": ["Overrides"],
                "summary": "Remove a manual score override",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "email", "in": "path", "type": "string", "required": true},
                    {"name": "itemId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Override removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No override present"}
                }
            }
        },
        "/courses/{courseId}/report": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a per-category grade report",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courseId", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered report"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Aggregated runtime metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ApplyOverrideRequest": {
            "type": "object",
            "required": ["score", "total"],
            "properties": {
                "score": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
