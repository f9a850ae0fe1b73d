// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user and return JWT token",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.RegisterResult"}},
                    "400": {"description": "Invalid input"},
                    "409": {"description": "User exists"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate user and return JWT token",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "List visible items",
                "parameters": [
                    {"type": "string", "in": "query", "name": "q"},
                    {"type": "integer", "in": "query", "name": "minQty"},
                    {"type": "integer", "in": "query", "name": "maxQty"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ItemsSearchResult"}},
                    "400": {"description": "Invalid filter"},
                    "503": {"description": "Store unavailable"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Add an item",
                "parameters": [{"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/handlers.ItemRequest"}}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handlers.ItemCreatedResult"}},
                    "400": {"description": "Validation errors", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.ValidationError"}}},
                    "503": {"description": "Store unavailable"}
                }
            }
        },
        "/items/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Delete an item",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "Deleted, or already gone"}, "503": {"description": "Store unavailable"}}
            }
        },
        "/items/{id}/increment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Increase an item's quantity by one",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"202": {"description": "Accepted"}, "404": {"description": "Not found"}, "503": {"description": "Store unavailable"}}
            }
        },
        "/items/{id}/decrement": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Decrease an item's quantity by one, never below one",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"202": {"description": "Accepted"}, "404": {"description": "Not found"}, "503": {"description": "Store unavailable"}}
            }
        },
        "/items/{id}/adjust": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Change an item's quantity by delta",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "adjustment", "required": true, "schema": {"$ref": "#/definitions/handlers.QuantityAdjustmentRequest"}}
                ],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Invalid input"}, "404": {"description": "Not found"}, "503": {"description": "Store unavailable"}}
            }
        },
        "/items/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["import"],
                "summary": "Import items via CSV",
                "parameters": [{"type": "file", "in": "formData", "name": "file", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportItemsResult"}}, "400": {"description": "Invalid file"}}
            }
        },
        "/items/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Dashboard counters for the pantry",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.Summary"}}, "503": {"description": "Store unavailable"}}
            }
        },
        "/items/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Live item list over WebSocket",
                "parameters": [
                    {"type": "string", "in": "query", "name": "q"},
                    {"type": "string", "in": "query", "name": "token"}
                ],
                "responses": {"101": {"description": "Switching Protocols", "schema": {"$ref": "#/definitions/handlers.StreamMessage"}}}
            }
        },
        "/recipes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "Suggest recipes for a dish or ingredient",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RecipeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecipesResult"}},
                    "400": {"description": "EmptyRequest", "schema": {"$ref": "#/definitions/handlers.RecipeErrorResult"}},
                    "429": {"description": "Too many requests"},
                    "502": {"description": "Generation or parse failure", "schema": {"$ref": "#/definitions/handlers.RecipeErrorResult"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CredentialsRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.LoginResult": {"type": "object", "properties": {"token": {"type": "string"}}},
        "handlers.RegisterResult": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}}},
        "handlers.ItemRequest": {"type": "object", "properties": {"name": {"type": "string"}, "quantity": {"type": "integer"}, "expiry_date": {"type": "string", "example": "2026-12-31"}}},
        "handlers.ItemResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "quantity": {"type": "integer"}, "expiry_date": {"type": "string"}}},
        "handlers.Meta": {"type": "object", "properties": {"total_count": {"type": "integer"}}},
        "handlers.ItemsSearchResult": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handlers.ItemResponse"}}, "meta": {"$ref": "#/definitions/handlers.Meta"}}},
        "handlers.StreamMessage": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handlers.ItemResponse"}}, "meta": {"$ref": "#/definitions/handlers.Meta"}}},
        "handlers.ItemCreatedResult": {"type": "object", "properties": {"id": {"type": "string"}}},
        "handlers.QuantityAdjustmentRequest": {"type": "object", "properties": {"delta": {"type": "integer"}}},
        "handlers.ValidationError": {"type": "object", "properties": {"field": {"type": "string"}, "description": {"type": "string"}}},
        "handlers.ImportItemsResult": {"type": "object", "properties": {"imported": {"type": "integer"}, "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.ValidationError"}}}},
        "handlers.RecipeRequest": {"type": "object", "properties": {"text": {"type": "string"}}},
        "handlers.RecipeErrorResult": {"type": "object", "properties": {"kind": {"type": "string"}, "message": {"type": "string"}}},
        "handlers.RecipesResult": {"type": "object", "properties": {"recipes": {"type": "array", "items": {"$ref": "#/definitions/models.Recipe"}}}},
        "models.Recipe": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "ingredients": {"type": "array", "items": {"type": "string"}}, "instructions": {"type": "array", "items": {"type": "string"}}}},
        "inventory.Summary": {"type": "object", "properties": {"total_items": {"type": "integer"}, "total_units": {"type": "integer"}, "expiring_soon": {"type": "integer"}, "expired": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pantry Tracker API",
	Description:      "Shared pantry inventory with live updates and recipe suggestions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
