// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/topics": {
            "get": {"tags": ["Catalog"], "summary": "Available topics", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TopicsResponse"}}}}
        },
        "/difficulties": {
            "get": {"tags": ["Catalog"], "summary": "Available difficulties", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DifficultiesResponse"}}}}
        },
        "/questions/random": {
            "get": {"tags": ["Catalog"], "summary": "Random question", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Topic filter", "name": "topic", "in": "query"},
                    {"type": "string", "description": "Difficulty filter", "name": "difficulty", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RandomQuestionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "no question matches", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/questions/validate": {
            "post": {"tags": ["Catalog"], "summary": "Check an answer", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"description": "Question and answer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CheckAnswerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.CheckResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/catalog/validate": {
            "get": {"tags": ["Catalog"], "summary": "Audit the catalog", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/catalog/export": {
            "get": {"tags": ["Catalog"], "summary": "Export catalog", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Topic filter", "name": "topic", "in": "query"},
                    {"type": "string", "description": "Difficulty filter", "name": "difficulty", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Document"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/sessions": {
            "get": {"tags": ["Sessions"], "summary": "Session statistics", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Sessions"], "summary": "Create a practice session", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"description": "Session parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateSessionRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/sessions/{sessionID}": {
            "get": {"tags": ["Sessions"], "summary": "Get a session", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}
        },
        "/sessions/{sessionID}/next-question": {
            "get": {"tags": ["Sessions"], "summary": "Next question", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "session completed, terminated or paused", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/sessions/{sessionID}/answers": {
            "post": {"tags": ["Sessions"], "summary": "Submit an answer", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true},
                    {"description": "Answer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "empty, overlong, repeated or out-of-turn answer", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }}
        },
        "/sessions/{sessionID}/pause": {
            "post": {"tags": ["Sessions"], "summary": "Pause a session", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/sessions/{sessionID}/resume": {
            "post": {"tags": ["Sessions"], "summary": "Resume a session", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/sessions/{sessionID}/terminate": {
            "post": {"tags": ["Sessions"], "summary": "Terminate a session", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/sessions/{sessionID}/complete": {
            "post": {"tags": ["Sessions"], "summary": "Complete a session", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sessions/{sessionID}/summary": {
            "get": {"tags": ["Sessions"], "summary": "Session summary", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "catalog.Document": {"type": "object", "properties": {
            "version": {"type": "string", "example": "1.0"},
            "exported_at": {"type": "string"},
            "questions": {"type": "array", "items": {"type": "object", "properties": {
                "id": {"type": "string"}, "topic": {"type": "string"}, "difficulty": {"type": "string"},
                "question": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}, "answer": {"type": "string"}}}}}},
        "api.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "session not found: 1b9d6bcd"}}},
        "api.TopicsResponse": {"type": "object", "properties": {"topics": {"type": "array", "items": {"type": "string"}}}},
        "api.DifficultiesResponse": {"type": "object", "properties": {"difficulties": {"type": "array", "items": {"type": "string"}}}},
        "api.QuestionPayload": {"type": "object", "properties": {
            "id": {"type": "string", "example": "physics_1"},
            "topic": {"type": "string", "example": "Physics"},
            "difficulty": {"type": "string", "example": "Easy"},
            "question": {"type": "string", "example": "What is the SI unit of force?"},
            "options": {"type": "array", "items": {"type": "string"}}
        }},
        "api.RandomQuestionResponse": {"type": "object", "properties": {
            "question": {"$ref": "#/definitions/api.QuestionPayload"},
            "available": {"type": "integer", "example": 12}
        }},
        "api.CheckAnswerRequest": {"type": "object", "properties": {
            "question_id": {"type": "string", "example": "physics_1"},
            "answer": {"type": "string", "example": "Newton"}
        }},
        "api.CreateSessionRequest": {"type": "object", "properties": {
            "topic": {"type": "string", "example": "Physics"},
            "difficulty": {"type": "string", "example": "Easy"},
            "total_questions": {"type": "integer", "example": 5}
        }},
        "api.SubmitAnswerRequest": {"type": "object", "properties": {
            "question_id": {"type": "string", "example": "physics_1"},
            "answer": {"type": "string", "example": "Newton"}
        }},
        "service.CheckResult": {"type": "object", "properties": {
            "question_id": {"type": "string"},
            "correct": {"type": "boolean"},
            "correct_answer": {"type": "string"}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quiz Practice API",
	Description:      "Practice multiple-choice questions by topic and difficulty, one session at a time.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
