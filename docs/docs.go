// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package docs holds the swagger specification served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
            "url": "https://github.com/melloom/Vocalix-sub005"
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
        "/api/v1/feed": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Feed"],
                "summary": "Ranked clip feed",
                "parameters": [
                    {"type": "string", "enum": ["hot", "top", "controversial", "rising", "trending"], "name": "mode", "in": "query", "required": true},
                    {"type": "string", "enum": ["all", "week", "month"], "name": "window", "in": "query"},
                    {"type": "string", "name": "topic_id", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"},
                    {"type": "integer", "name": "pages", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Ranked feed page"},
                    "400": {"description": "Invalid parameters"},
                    "503": {"description": "Snapshot not loaded"}
                }
            }
        },
        "/api/v1/topics/today": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Feed"],
                "summary": "Today's curated topics",
                "responses": {
                    "200": {"description": "Curated topics"},
                    "503": {"description": "Snapshot not loaded"}
                }
            }
        },
        "/api/v1/recommendations/clips": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Clip recommendations",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Recommended clips"},
                    "503": {"description": "Snapshot not loaded"}
                }
            }
        },
        "/api/v1/recommendations/creators": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Creator recommendations",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Recommended creators"},
                    "503": {"description": "Snapshot not loaded"}
                }
            }
        },
        "/api/v1/listens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listens"],
                "summary": "Record a listen",
                "responses": {
                    "202": {"description": "Event buffered"},
                    "400": {"description": "Missing clip_id or viewer identity"}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "Health status"}
                }
            }
        },
        "/api/v1/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Service is alive"}
                }
            }
        },
        "/api/v1/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready to serve"},
                    "503": {"description": "Snapshot not loaded"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vocalix API",
	Description:      "Feed ranking and curation service for social audio clips: five-mode ranked feeds, daily topic curation, and listen-history recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
