// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/gl_backend/main.go -o cmd/docs --parseInternal
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
        "/companies/{company_id}/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/accounts/{account_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Update an account", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Deactivate an account", "responses": {"204": {"description": "No Content"}}}
        },
        "/companies/{company_id}/journals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "List journals", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Create a journal", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/journals/{journal_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Get a journal by ID", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Update a journal", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/journals/{journal_id}/lines": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Add a line to a journal", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/journals/{journal_id}/lines/{line_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Delete a line from a journal", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/journals/{journal_id}/post": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Post a journal", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/journals/{journal_id}/cancel": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Cancel a journal", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/journals/{journal_id}/reverse": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Reverse a posted journal", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/batches": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "List batches", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Create a batch", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/batches/{batch_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Get a batch by ID", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/batches/{batch_id}/journals": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Add a journal to a batch", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/batches/{batch_id}/journals/{journal_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Remove a journal from a batch", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/batches/{batch_id}/ready": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Mark a batch ready", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/batches/{batch_id}/post": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Post a batch", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/batches/{batch_id}/cancel": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["batches"], "summary": "Cancel a batch", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/mappings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["mappings"], "summary": "List label mappings", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["mappings"], "summary": "Map an imported label to an account", "responses": {"201": {"description": "Created"}}}
        },
        "/companies/{company_id}/mappings/{mapping_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["mappings"], "summary": "Delete a label mapping", "responses": {"204": {"description": "No Content"}}}
        },
        "/companies/{company_id}/mappings/unmatched": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["mappings"], "summary": "List unmatched import labels", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/mappings/auto": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["mappings"], "summary": "Auto-map obvious labels", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/balances/recalculate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["balances"], "summary": "Recalculate account balances", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/settings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Get ledger settings", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Update ledger settings", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{company_id}/imports": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["imports"], "summary": "Import a general-ledger export", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "General Ledger API",
	Description:      "Double-entry general ledger: journals, batches, label mappings and balance recalculation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
