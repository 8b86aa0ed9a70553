// Package docs holds the Swagger description served at /swagger.
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
        "/api/v1/inbox/route": {
            "post": {
                "description": "Classify the message into decision_needed, delegate, info_only or control_check and draft a reply.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Inbox"],
                "summary": "Route an inbox message",
                "parameters": [
                    {
                        "description": "message and optional sender",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/httpserver.routeRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Resp"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"$ref": "#/definitions/inbox.Result"}
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/api/v1/reports/briefing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Morning briefing",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/api/v1/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "List open tasks",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the API is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "API is healthy",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        }
    },
    "definitions": {
        "httpserver.routeRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "sender": {"type": "string"}
            }
        },
        "inbox.Result": {
            "type": "object",
            "properties": {
                "classification": {
                    "type": "string",
                    "enum": ["decision_needed", "delegate", "info_only", "control_check"]
                },
                "draft_response": {"type": "string"},
                "message_preview": {"type": "string"},
                "priority": {
                    "type": "string",
                    "enum": ["P0", "P1", "P2", "P3"]
                },
                "recommended_action": {"type": "string"},
                "sender": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "InboxAssist API",
	Description:      "Rule-based inbox triage: classification, reply drafts, PDCA tasks and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
