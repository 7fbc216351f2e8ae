// Package docs is generated by swag from the handler annotations in
// contexts/finance-core/paywall-ledger/adapters/http (go generate). DO NOT EDIT.
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
        "/v1/paywall-config": {
            "post": {
                "summary": "Initialize fee configuration",
                "tags": [
                    "paywall-ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Fee schedule",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.InitializeConfigRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.ConfigResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "summary": "Get fee configuration",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ConfigResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/paywall-config/fees": {
            "put": {
                "summary": "Replace the fee schedule",
                "tags": [
                    "paywall-ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Fee schedule",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.InitializeConfigRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ConfigResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/paywall-config/authority": {
            "put": {
                "summary": "Hand over config authority",
                "tags": [
                    "paywall-ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "New authority",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.UpdateAuthorityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ConfigResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/paywalls": {
            "post": {
                "summary": "Create a paywall",
                "tags": [
                    "paywall-ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Paywall terms",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CreatePaywallRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.PaywallResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "402": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/creators/{creator_id}/paywalls": {
            "get": {
                "summary": "List a creator's paywalls",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Creator identity",
                        "name": "creator_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Page size (max 100)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ListPaywallsResponse"
                        }
                    }
                }
            }
        },
        "/v1/creators/{creator_id}/paywalls/{paywall_id}": {
            "get": {
                "summary": "Get a paywall",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Creator identity",
                        "name": "creator_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Paywall id",
                        "name": "paywall_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.PaywallResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update paywall price and supply cap",
                "tags": [
                    "paywall-ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Creator identity",
                        "name": "creator_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Paywall id",
                        "name": "paywall_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New terms",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.UpdatePaywallRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.PaywallResponse"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/creators/{creator_id}/paywalls/{paywall_id}/purchase": {
            "post": {
                "summary": "Purchase access to a paywall",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Caller identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Creator identity",
                        "name": "creator_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Paywall id",
                        "name": "paywall_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.PurchaseResponse"
                        }
                    },
                    "402": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/creators/{creator_id}/paywalls/{paywall_id}/payments/{payer_id}": {
            "get": {
                "summary": "Get a payment receipt",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Creator identity",
                        "name": "creator_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Paywall id",
                        "name": "paywall_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Payer identity",
                        "name": "payer_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.PaymentResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/accounts/{account_id}/balance": {
            "get": {
                "summary": "Get an account balance",
                "tags": [
                    "paywall-ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account identity",
                        "name": "account_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.BalanceResponse"
                        }
                    }
                }
            }
        },
        "/v1/accounts/{account_id}/credit": {
            "post": {
                "description": "Adds funds to an account balance. Only the config authority may call it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paywall-ledger"
                ],
                "summary": "Fund an account",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Authority identity (base58)",
                        "name": "X-User-Id",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Account identity",
                        "name": "account_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Amount",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CreditAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.BalanceResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "http.InitializeConfigRequest": {
            "type": "object",
            "properties": {
                "fee_recipient": {
                    "type": "string"
                },
                "min_fee_amount": {
                    "type": "integer"
                },
                "fee_percent": {
                    "type": "integer"
                },
                "paywall_creation_cost": {
                    "type": "integer"
                }
            }
        },
        "http.UpdateAuthorityRequest": {
            "type": "object",
            "properties": {
                "new_authority": {
                    "type": "string"
                }
            }
        },
        "http.CreatePaywallRequest": {
            "type": "object",
            "properties": {
                "paywall_id": {
                    "type": "string"
                },
                "max_supply": {
                    "type": "integer"
                },
                "price_amount": {
                    "type": "integer"
                }
            }
        },
        "http.UpdatePaywallRequest": {
            "type": "object",
            "properties": {
                "max_supply": {
                    "type": "integer"
                },
                "price_amount": {
                    "type": "integer"
                }
            }
        },
        "http.ConfigDTO": {
            "type": "object",
            "properties": {
                "slot": {
                    "type": "string"
                },
                "authority": {
                    "type": "string"
                },
                "fee_recipient": {
                    "type": "string"
                },
                "min_fee_amount": {
                    "type": "integer"
                },
                "fee_percent": {
                    "type": "integer"
                },
                "paywall_creation_cost": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "http.PaywallDTO": {
            "type": "object",
            "properties": {
                "slot": {
                    "type": "string"
                },
                "paywall_id": {
                    "type": "string"
                },
                "creator_id": {
                    "type": "string"
                },
                "price_amount": {
                    "type": "integer"
                },
                "max_supply": {
                    "type": "integer"
                },
                "minted_count": {
                    "type": "integer"
                },
                "remaining": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "http.PaymentDTO": {
            "type": "object",
            "properties": {
                "slot": {
                    "type": "string"
                },
                "creator_id": {
                    "type": "string"
                },
                "paywall_id": {
                    "type": "string"
                },
                "payer_id": {
                    "type": "string"
                },
                "amount_paid": {
                    "type": "integer"
                },
                "fee_amount": {
                    "type": "integer"
                },
                "creator_amount": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "http.ConfigResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "data": {
                    "$ref": "#/definitions/http.ConfigDTO"
                }
            }
        },
        "http.PaywallResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "creation_fee": {
                    "type": "integer"
                },
                "data": {
                    "$ref": "#/definitions/http.PaywallDTO"
                }
            }
        },
        "http.ListPaywallsResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/http.PaywallDTO"
                    }
                }
            }
        },
        "http.PurchaseResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "payment": {
                    "$ref": "#/definitions/http.PaymentDTO"
                },
                "paywall": {
                    "$ref": "#/definitions/http.PaywallDTO"
                }
            }
        },
        "http.PaymentResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "data": {
                    "$ref": "#/definitions/http.PaymentDTO"
                }
            }
        },
        "http.CreditAccountRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                }
            }
        },
        "http.BalanceResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "data": {
                    "type": "object",
                    "properties": {
                        "account_id": {
                            "type": "string"
                        },
                        "balance": {
                            "type": "integer"
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Paywall Ledger API",
	Description:      "Pay-per-access paywall registry and fee settlement ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
