// Package docs registers the solna OpenAPI document with swag
// keep paths in step with the swagger annotations on the handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/file-changed": {
            "post": {
                "tags": ["Files"],
                "summary": "Ingest a file change notification",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/ChangeNotification"}
                        }
                    }
                },
                "responses": {
                    "200": {"description": "persisted", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/IngestedResponse"}}}},
                    "409": {"description": "DuplicateEntry", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "StoreUnavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "504": {"description": "StoreTimeout", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/photos": {
            "get": {
                "tags": ["Files"],
                "summary": "List persisted file records newest first",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/PhotoResponse"}}}}}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Files"],
                "summary": "Pool status and database connectivity",
                "responses": {
                    "200": {"description": "healthy", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}},
                    "503": {"description": "unhealthy", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info and uptime",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness probe with dependency checks",
                "responses": {"200": {"description": "ok"}}
            }
        }
    },
    "components": {
        "schemas": {
            "ChangeNotification": {
                "type": "object",
                "required": ["file", "event"],
                "properties": {
                    "file": {"type": "string", "example": "/home/foo/upload/motion/cam1.jpg"},
                    "event": {"type": "string", "example": "CREATE"}
                }
            },
            "IngestedResponse": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "file": {"type": "string"},
                    "event": {"type": "string", "example": "motion"},
                    "change_type": {"type": "string", "example": "CREATE"},
                    "timestamp": {"type": "string", "format": "date-time"}
                }
            },
            "PhotoResponse": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "filename": {"type": "string"},
                    "event_type": {"type": "string"},
                    "timestamp": {"type": "string", "format": "date-time"}
                }
            },
            "HealthResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "healthy"},
                    "database": {"type": "string", "example": "connected"},
                    "pool": {
                        "type": "object",
                        "properties": {
                            "total_connections": {"type": "integer"},
                            "idle_connections": {"type": "integer"},
                            "waiting_requests": {"type": "integer"}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "solna API",
	Description:      "File change ingestion and read-back",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
