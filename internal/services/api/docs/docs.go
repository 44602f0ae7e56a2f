// Package docs holds the OpenAPI document served by swaggerkit.
// Keep it in step with the swag annotations on the dummies handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/dummy": {
            "get": {
                "tags": ["Dummy"],
                "summary": "List dummies with offset pagination",
                "parameters": [
                    {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1, "minimum": 1}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20, "minimum": 1, "maximum": 100}},
                    {"name": "searchTerm", "in": "query", "schema": {"type": "string"}},
                    {"name": "searchFields", "in": "query", "description": "comma separated subset of name,description", "schema": {"type": "string"}},
                    {"name": "sortField", "in": "query", "schema": {"type": "string", "enum": ["id", "name", "description", "createdAt", "updatedAt"]}},
                    {"name": "sortDirection", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"]}},
                    {"name": "name", "in": "query", "description": "name contains", "schema": {"type": "string"}},
                    {"name": "description", "in": "query", "description": "description contains", "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OffsetPage"}}}}
                }
            },
            "post": {
                "tags": ["Dummy"],
                "summary": "Create a dummy",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateInput"}}}},
                "responses": {
                    "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DummyEnvelope"}}}},
                    "409": {"description": "Conflict", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/dummy/cursor": {
            "get": {
                "tags": ["Dummy"],
                "summary": "List dummies with cursor pagination",
                "parameters": [
                    {"name": "cursor", "in": "query", "description": "id of the last record of the previous page", "schema": {"type": "string", "format": "uuid"}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 20, "minimum": 1, "maximum": 100}},
                    {"name": "searchTerm", "in": "query", "schema": {"type": "string"}},
                    {"name": "sortField", "in": "query", "schema": {"type": "string"}},
                    {"name": "sortDirection", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"]}}
                ],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CursorPage"}}}}
                }
            }
        },
        "/dummy/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
            ],
            "get": {
                "tags": ["Dummy"],
                "summary": "Get a dummy",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DummyEnvelope"}}}},
                    "404": {"description": "Not Found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "put": {
                "tags": ["Dummy"],
                "summary": "Update a dummy",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/UpdateInput"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DummyEnvelope"}}}},
                    "404": {"description": "Not Found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "delete": {
                "tags": ["Dummy"],
                "summary": "Delete a dummy and return it",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DummyEnvelope"}}}},
                    "404": {"description": "Not Found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        }
    },
    "components": {
        "schemas": {
            "Dummy": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string", "example": "alpha"},
                    "description": {"type": "string", "nullable": true},
                    "createdAt": {"type": "string", "format": "date-time"},
                    "updatedAt": {"type": "string", "format": "date-time"}
                }
            },
            "CreateInput": {
                "type": "object",
                "required": ["name"],
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string", "minLength": 3, "maxLength": 255},
                    "description": {"type": "string", "minLength": 15, "maxLength": 2000}
                }
            },
            "UpdateInput": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "minLength": 3, "maxLength": 255},
                    "description": {"type": "string", "minLength": 15, "maxLength": 2000}
                }
            },
            "Pagination": {
                "type": "object",
                "properties": {
                    "total": {"type": "integer", "format": "int64"},
                    "page": {"type": "integer"},
                    "limit": {"type": "integer"}
                }
            },
            "DummyEnvelope": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer"},
                    "status": {"type": "string"},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"},
                    "data": {"$ref": "#/components/schemas/Dummy"}
                }
            },
            "OffsetPage": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer"},
                    "status": {"type": "string"},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"},
                    "data": {"type": "array", "items": {"$ref": "#/components/schemas/Dummy"}},
                    "pagination": {"$ref": "#/components/schemas/Pagination"}
                }
            },
            "CursorPage": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer"},
                    "status": {"type": "string"},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"},
                    "data": {"type": "array", "items": {"$ref": "#/components/schemas/Dummy"}},
                    "nextCursor": {"type": "string", "nullable": true}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "dashkit API",
	Description:      "Paginated listings with search, filters, sorting and cursors.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
