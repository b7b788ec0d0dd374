package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the ledger API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>fundvault — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the pool ledger endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "fundvault", "version": "v0.1.0" },
  "paths": {
    "/auth/login": {
      "post": {
        "summary": "Admin login, sets session cookie and returns access token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "user and accessToken" }, "401": { "description": "invalid name or password" } }
      }
    },
    "/auth/logout": {
      "post": { "summary": "Logout, delete session and blacklist bearer token", "responses": { "200": { "description": "logged out" } } }
    },
    "/auth/status": {
      "get": { "summary": "Current admin or null", "responses": { "200": { "description": "user or null" } } }
    },
    "/pools": {
      "get": { "summary": "List pools, newest first", "responses": { "200": { "description": "pools" } } }
    },
    "/pools/create": {
      "post": {
        "summary": "Create an investment pool",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"totalAmount":{"type":"number"},"adminShare":{"type":"number"}}}}}},
        "responses": { "200": { "description": "pool id" }, "400": { "description": "validation error" } }
      }
    },
    "/pools/add-person": {
      "post": { "summary": "Add an investor to a pool (admin)", "responses": { "200": { "description": "investor id" }, "400": { "description": "capacity exceeded or validation error" } } }
    },
    "/pools/admin/add-shares": {
      "post": { "summary": "Increase admin capital in a pool (admin)", "responses": { "200": { "description": "updated status" } } }
    },
    "/pools/admin/buyout": {
      "post": { "summary": "Buy out part of an investor's stake (admin)", "responses": { "200": { "description": "buyout recorded" }, "400": { "description": "invalid amount" } } }
    },
    "/pools/{id}/summary": {
      "get": { "summary": "Pool summary with investors, shares and buyout history", "responses": { "200": { "description": "summary" }, "404": { "description": "pool not found" } } }
    },
    "/pools/{id}/investors": {
      "get": { "summary": "List investors of a pool", "responses": { "200": { "description": "investors" } } }
    },
    "/pools/{id}/calculate-profit": {
      "post": { "summary": "Distribute a profit amount across participants", "responses": { "200": { "description": "profit shares" } } }
    },
    "/pools/{id}/export": {
      "post": { "summary": "Export a pool statement to object storage (admin)", "responses": { "200": { "description": "presigned statement URL" } } }
    },
    "/lookup": {
      "get": { "summary": "Investor lookup form", "responses": { "200": { "description": "HTML form" } } },
      "post": { "summary": "Investor self-service lookup", "responses": { "200": { "description": "investor details" }, "401": { "description": "invalid name or password" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
