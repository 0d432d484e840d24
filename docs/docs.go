// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

// Package docs registers the OpenAPI 2.0 document served at
// /swagger/doc.json. It follows the swag layout and mirrors the @-annotations
// in cmd/server/docs.go and internal/api; regenerate with
// `swag init -g cmd/server/docs.go` after changing them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/sobershot/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Drinks"],
                "summary": "Service banner",
                "responses": {
                    "200": {
                        "description": "Service is running",
                        "schema": {"$ref": "#/definitions/models.MessageResponse"}
                    }
                }
            }
        },
        "/add-drink": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Drinks"],
                "summary": "Add a drink to the catalog",
                "parameters": [
                    {
                        "description": "Drink to add",
                        "name": "drink",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.AddDrinkRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Drink added",
                        "schema": {"$ref": "#/definitions/models.AddDrinkResponse"}
                    },
                    "400": {
                        "description": "Drink already exists",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "422": {
                        "description": "Malformed or invalid body",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Drinks"],
                "summary": "Search drinks by name or category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive substring; empty matches every drink",
                        "name": "query",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching drinks in insertion order",
                        "schema": {"$ref": "#/definitions/models.SearchResponse"}
                    },
                    "404": {
                        "description": "No drinks found matching your query",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "422": {
                        "description": "Missing query parameter",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/recommend": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend drinks similar to a dataset row",
                "parameters": [
                    {
                        "description": "Dataset row and result count",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Most similar drinks, best first",
                        "schema": {"$ref": "#/definitions/models.RecommendResponse"}
                    },
                    "422": {
                        "description": "Malformed body or top_n below 1",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "500": {
                        "description": "Index out of range or model failure",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "Process is alive",
                        "schema": {"$ref": "#/definitions/models.HealthResponse"}
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "Catalog reachable",
                        "schema": {"$ref": "#/definitions/models.HealthResponse"}
                    },
                    "503": {
                        "description": "Catalog unreachable",
                        "schema": {"$ref": "#/definitions/models.HealthResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.DrinkRecord": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "ingredients": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "glass": {"type": "string"},
                "instructions": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "models.StoredDrink": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "ingredients": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "glass": {"type": "string"},
                "instructions": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "models.AddDrinkRequest": {
            "type": "object",
            "required": ["name", "category", "ingredients", "glass", "instructions", "image"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "category": {"type": "string", "maxLength": 100},
                "ingredients": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "glass": {"type": "string", "maxLength": 100},
                "instructions": {"type": "string", "maxLength": 4000},
                "image": {"type": "string", "maxLength": 2048}
            }
        },
        "models.AddDrinkResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "drink": {"$ref": "#/definitions/models.StoredDrink"}
            }
        },
        "models.RecommendRequest": {
            "type": "object",
            "required": ["drink_index"],
            "properties": {
                "drink_index": {"type": "integer"},
                "top_n": {"type": "integer", "default": 10}
            }
        },
        "models.RecommendResponse": {
            "type": "object",
            "properties": {
                "recommendations": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.DrinkRecord"}
                }
            }
        },
        "models.SearchResponse": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.DrinkRecord"}
                }
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dataset_rows": {"type": "integer"},
                "error": {"type": "string"}
            }
        }
    },
    "tags": [
        {"description": "Drink catalog endpoints", "name": "Drinks"},
        {"description": "Similarity recommendations over the loaded dataset", "name": "Recommendations"},
        {"description": "Health probes", "name": "Core"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "SoberShot API",
	Description:      "Drink catalog search and content-based drink recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
