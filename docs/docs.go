// Package docs đăng ký mô tả OpenAPI cho /swagger, viết tay cho các route chính của luồng duyệt.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Đăng ký tài khoản",
                "parameters": [
                    {
                        "description": "Thông tin đăng ký",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.RegisterInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/verify-email": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Xác thực email",
                "parameters": [
                    {"type": "string", "description": "Mã xác thực", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Đăng nhập",
                "parameters": [
                    {
                        "description": "Email và mật khẩu",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.LoginInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Thông tin user đang đăng nhập",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/owner/providers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["owner"],
                "summary": "Owner đăng ký nhà cung cấp (chờ duyệt)",
                "parameters": [
                    {"type": "string", "description": "Tên", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Khu vực", "name": "areaId", "in": "formData", "required": true},
                    {"type": "string", "description": "Số điện thoại", "name": "phone", "in": "formData", "required": true},
                    {"type": "file", "description": "Ảnh đại diện", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/owner/bookable-items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owner"],
                "summary": "Tạo dịch vụ cho nhà cung cấp đã được duyệt",
                "parameters": [
                    {
                        "description": "extraData phụ thuộc itemType",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CreateBookableItemInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/providers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin xem danh sách nhà cung cấp, mặc định pending",
                "parameters": [
                    {"type": "string", "description": "pending | active | inactive | all", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Trang, bắt đầu từ 0", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Số dòng mỗi trang", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/providers/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Duyệt nhà cung cấp đang pending",
                "parameters": [
                    {"type": "string", "description": "Provider id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "active hoặc inactive",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ReviewProviderInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/geography/countries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["geography"],
                "summary": "Danh sách quốc gia",
                "parameters": [
                    {"type": "string", "description": "Tìm theo tên, không phân biệt dấu", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/bookable-items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Khách xem dịch vụ trong khu vực",
                "parameters": [
                    {"type": "string", "description": "Khu vực", "name": "areaId", "in": "query", "required": true},
                    {"type": "string", "description": "tour | accommodation | vehicle | ticket", "name": "itemType", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.RegisterInput": {
            "type": "object",
            "required": ["email", "fullName", "password", "phone", "role"],
            "properties": {
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "phone": {"type": "string"},
                "role": {"type": "string", "enum": ["owner", "customer"]}
            }
        },
        "dto.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.ReviewProviderInput": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "dto.CreateBookableItemInput": {
            "type": "object",
            "required": ["itemType", "providerId", "title"],
            "properties": {
                "providerId": {"type": "string"},
                "itemType": {"type": "string", "enum": ["tour", "accommodation", "vehicle", "ticket"]},
                "title": {"type": "string"},
                "attribute": {"type": "object", "additionalProperties": true},
                "price": {"type": "number"},
                "areaId": {"type": "string"},
                "extraData": {"type": "object"}
            }
        },
        "response.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "mess": {"type": "string"},
                "data": {},
                "pagination": {"$ref": "#/definitions/response.Pagination"},
                "errorCode": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/response.FieldError"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TravelHub API",
	Description:      "Marketplace đặt dịch vụ du lịch: địa lý, nhà cung cấp, dịch vụ và quy trình duyệt.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
