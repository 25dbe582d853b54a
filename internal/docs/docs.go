// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with `swag init -g cmd/fruitd/docs.go -o internal/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RootResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Model status and supported classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/classes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Supported classes with fruit and condition",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ClassesResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Classify a fruit image",
                "parameters": [
                    {"type": "file", "description": "Image file (jpg, png, ...)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.RootResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Pic a Fruit API is running!"},
                "status": {"type": "string", "example": "healthy"},
                "model_loaded": {"type": "boolean", "example": true},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "model_status": {"type": "string", "example": "loaded"},
                "demo_mode": {"type": "boolean", "example": false},
                "supported_classes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ClassInfo": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "unripe banana"},
                "fruit": {"type": "string", "example": "banana"},
                "fruit_name": {"type": "string", "example": "Pisang"},
                "condition": {"type": "string", "example": "unripe"},
                "condition_name": {"type": "string", "example": "Belum Matang"}
            }
        },
        "types.ClassesResponse": {
            "type": "object",
            "properties": {
                "classes": {"type": "array", "items": {"$ref": "#/definitions/types.ClassInfo"}}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "label": {"type": "string", "example": "freshapples"},
                "confidence": {"type": "number", "example": 0.93},
                "model_version": {"type": "string", "example": "cnnVGG16rv2"},
                "demo_mode": {"type": "boolean", "example": false},
                "message": {"type": "string"},
                "fruit": {"type": "string", "example": "apple"},
                "condition": {"type": "string", "example": "fresh"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string", "example": "File harus berupa gambar (jpg, png, dll)"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Pic a Fruit API",
	Description:      "AI-powered fruit freshness detection API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
