// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/app/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/state": {
            "post": {
                "description": "Verifies the Telegram initData, optionally harvests a crop or buys an animal, and returns the player's farm.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["farm"],
                "summary": "Read farm state or perform an action",
                "parameters": [
                    {"type": "string", "description": "initData, if not sent in the body", "name": "X-Telegram-Init-Data", "in": "header"},
                    {"description": "State request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.StateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/farm.Snapshot"}},
                    "400": {"description": "invalid_request or unknown_item", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "bad_signature, expired or malformed_assertion", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "cooldown_active or insufficient_funds", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "balance_overflow", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "try_again", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["farm"],
                "summary": "Game catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CatalogResponse"}}
                }
            }
        },
        "/api/v1/invoice": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Create a Stars invoice",
                "parameters": [
                    {"description": "Invoice request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.InvoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.InvoiceResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "unknown_product", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "invoice_failed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/payments/unsettled": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List unsettled payments",
                "parameters": [
                    {"type": "integer", "default": 100, "description": "Maximum rows", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UnsettledResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Build information",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionInfo"}}}
            }
        }
    },
    "definitions": {
        "cooldown.Status": {
            "type": "object",
            "properties": {
                "ready": {"type": "boolean"},
                "readyAt": {"type": "string"},
                "remainingSeconds": {"type": "integer"}
            }
        },
        "farm.Snapshot": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "coins": {"type": "integer"},
                "inventory": {"type": "object", "additionalProperties": {"type": "integer"}},
                "cooldowns": {"type": "object", "additionalProperties": {"$ref": "#/definitions/cooldown.Status"}}
            }
        },
        "handler.ActionParams": {
            "type": "object",
            "properties": {
                "crop": {"type": "string"},
                "animal": {"type": "string"}
            }
        },
        "handler.StateRequest": {
            "type": "object",
            "properties": {
                "identityAssertion": {"type": "string"},
                "action": {"type": "string", "enum": ["harvest", "purchase"]},
                "params": {"$ref": "#/definitions/handler.ActionParams"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "retryAfterSeconds": {"type": "integer"}
            }
        },
        "handler.CatalogResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "crops": {"type": "array", "items": {"$ref": "#/definitions/handler.CropView"}},
                "animals": {"type": "array", "items": {"$ref": "#/definitions/handler.AnimalView"}},
                "products": {"type": "array", "items": {"$ref": "#/definitions/handler.ProductView"}}
            }
        },
        "handler.CropView": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "yield": {"type": "integer"},
                "cooldownSeconds": {"type": "integer"}
            }
        },
        "handler.AnimalView": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "price": {"type": "integer"}
            }
        },
        "handler.ProductView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "priceStars": {"type": "integer"}
            }
        },
        "handler.InvoiceRequest": {
            "type": "object",
            "required": ["productId"],
            "properties": {
                "identityAssertion": {"type": "string"},
                "productId": {"type": "string", "maxLength": 64}
            }
        },
        "handler.InvoiceResponse": {
            "type": "object",
            "properties": {"invoiceLink": {"type": "string"}}
        },
        "handler.UnsettledResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "payments": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.VersionInfo": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "environment": {"type": "string"},
                "go_version": {"type": "string"},
                "build_time": {"type": "string"},
                "git_commit": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FarmBot API",
	Description:      "Backend for the FarmBot Telegram Mini-App.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
