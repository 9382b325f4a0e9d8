// Package api holds the generated swagger documentation.
// Regenerate with: swag init -g cmd/server/main.go -o docs/api
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/footpoets/claimsdb",
            "email": "info@footpoets.org"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ajax/claim_poet": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Claims"],
                "summary": "Submit a poet profile claim"
            }
        },
        "/ajax/claim_stop": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Claims"],
                "summary": "Opt out of claim prompts"
            }
        },
        "/ajax/claim_process": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Claims"],
                "summary": "Advance a claim resolution by one step"
            }
        },
        "/claims/form/{poet_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Claims"],
                "summary": "Get claim form render state"
            }
        },
        "/poets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Poets"],
                "summary": "Create a poet profile"
            }
        },
        "/poets/{poet_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Poets"],
                "summary": "Get a poet profile"
            }
        },
        "/poets/{poet_id}/poems": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Poets"],
                "summary": "Add poems to a poet profile"
            }
        },
        "/poets/{poet_id}/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Poets"],
                "summary": "Get resolution form state"
            }
        },
        "/poets/{poet_id}/save": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Poets"],
                "summary": "Resolve a claim from the profile save screen"
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "poets_session",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "ClaimsDB API",
	Description:      "Go Fiber data service for poet profile claims",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
