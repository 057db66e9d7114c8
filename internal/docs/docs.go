// Package docs holds the OpenAPI description served at /swagger.
//
// The template below was written by hand to mirror swag output for the
// handler annotations. Rerun go generate after changing any @ annotation
// so the description stays in sync.
package docs

//go:generate swag init -g cmd/api/main.go -d ../.. -o . --parseInternal

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"termsOfService": "http://swagger.io/terms/",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/movements": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Register a movement",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.RegisterMovementRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.MovementResult"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"403": {
						"description": "Wallet not in portfolio",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "List movements",
				"parameters": [
					{
						"type": "string",
						"description": "Portfolio ID",
						"name": "portfolio_id",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "Filter by wallet",
						"name": "wallet_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filter by asset",
						"name": "asset_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filter by movement type",
						"name": "type",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filter by group",
						"name": "group_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start time",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End time",
						"name": "to",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items per page",
						"name": "page_size",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/movements/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Get a movement",
				"parameters": [
					{
						"type": "string",
						"description": "Movement ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Edit a movement",
				"parameters": [
					{
						"type": "string",
						"description": "Movement ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.EditMovementRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.MovementResult"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Delete a movement",
				"parameters": [
					{
						"type": "string",
						"description": "Movement ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.MovementResult"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/movements/{id}/history": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Movement history",
				"parameters": [
					{
						"type": "string",
						"description": "Movement ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/transfers": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Transfer between wallets",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.TransferRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.TransferResult"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"403": {
						"description": "Wallet not in portfolio",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/swaps": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"movements"
				],
				"summary": "Swap assets",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SwapRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.SwapResult"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"403": {
						"description": "Wallet not in portfolio",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/portfolios": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolios"
				],
				"summary": "Create a portfolio",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreatePortfolioRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolios"
				],
				"summary": "List portfolios",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/portfolios/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolios"
				],
				"summary": "Get a portfolio",
				"parameters": [
					{
						"type": "string",
						"description": "Portfolio ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/portfolios/{id}/wallets": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Create a wallet",
				"parameters": [
					{
						"type": "string",
						"description": "Portfolio ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateWalletRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "List wallets",
				"parameters": [
					{
						"type": "string",
						"description": "Portfolio ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/portfolios/{id}/holdings": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"holdings"
				],
				"summary": "List holdings",
				"parameters": [
					{
						"type": "string",
						"description": "Portfolio ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Restrict to one wallet",
						"name": "wallet_id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Wallet not in portfolio",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/wallets/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Get a wallet",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/wallets/{id}/holdings/{asset_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"holdings"
				],
				"summary": "Get a holding",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Asset ID",
						"name": "asset_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/assets": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"assets"
				],
				"summary": "Create an asset",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateAssetRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Insufficient holdings or duplicate",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"assets"
				],
				"summary": "List assets",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/assets/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"assets"
				],
				"summary": "Get an asset",
				"parameters": [
					{
						"type": "string",
						"description": "Asset ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/handlers.ErrorDetail"
				}
			}
		},
		"handlers.ErrorDetail": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"details": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"handlers.RegisterMovementRequest": {
			"type": "object",
			"properties": {
				"portfolio_id": {
					"type": "string"
				},
				"wallet_id": {
					"type": "string"
				},
				"asset_id": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"quantity": {
					"type": "string"
				},
				"price": {
					"type": "string"
				},
				"fee_quantity": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"date": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"portfolio_id",
				"wallet_id",
				"asset_id",
				"type",
				"quantity"
			]
		},
		"handlers.EditMovementRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"quantity": {
					"type": "string"
				},
				"price": {
					"type": "string"
				},
				"fee_quantity": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"type",
				"quantity",
				"timestamp"
			]
		},
		"handlers.TransferRequest": {
			"type": "object",
			"properties": {
				"portfolio_id": {
					"type": "string"
				},
				"from_wallet_id": {
					"type": "string"
				},
				"to_wallet_id": {
					"type": "string"
				},
				"asset_id": {
					"type": "string"
				},
				"quantity": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"date": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"portfolio_id",
				"from_wallet_id",
				"to_wallet_id",
				"asset_id",
				"quantity"
			]
		},
		"handlers.SwapRequest": {
			"type": "object",
			"properties": {
				"portfolio_id": {
					"type": "string"
				},
				"wallet_id": {
					"type": "string"
				},
				"from_asset_id": {
					"type": "string"
				},
				"to_asset_id": {
					"type": "string"
				},
				"from_quantity": {
					"type": "string"
				},
				"to_quantity": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"date": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"portfolio_id",
				"wallet_id",
				"from_asset_id",
				"to_asset_id",
				"from_quantity",
				"to_quantity"
			]
		},
		"handlers.CreatePortfolioRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"base_currency": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"handlers.CreateWalletRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"kind": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"handlers.CreateAssetRequest": {
			"type": "object",
			"properties": {
				"symbol": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"kind": {
					"type": "string"
				}
			},
			"required": [
				"symbol"
			]
		},
		"services.MovementResult": {
			"type": "object",
			"properties": {
				"movement_id": {
					"type": "string"
				},
				"holding_id": {
					"type": "string"
				},
				"new_holding_quantity": {
					"type": "string"
				}
			}
		},
		"services.TransferResult": {
			"type": "object",
			"properties": {
				"group_id": {
					"type": "string"
				},
				"transfer_out_movement_id": {
					"type": "string"
				},
				"transfer_in_movement_id": {
					"type": "string"
				},
				"from_holding_id": {
					"type": "string"
				},
				"to_holding_id": {
					"type": "string"
				},
				"new_from_holding_quantity": {
					"type": "string"
				},
				"new_to_holding_quantity": {
					"type": "string"
				}
			}
		},
		"services.SwapResult": {
			"type": "object",
			"properties": {
				"group_id": {
					"type": "string"
				},
				"sell_movement_id": {
					"type": "string"
				},
				"buy_movement_id": {
					"type": "string"
				},
				"from_holding_id": {
					"type": "string"
				},
				"to_holding_id": {
					"type": "string"
				},
				"new_from_holding_quantity": {
					"type": "string"
				},
				"new_to_holding_quantity": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:8080",
	BasePath:		 "/api/v1",
	Schemes:		  []string{},
	Title:			"Coinfolio API",
	Description:	  "Coinfolio tracks crypto and fiat holdings across wallets through an append-only movement ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
