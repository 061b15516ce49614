// Package docs registers the OpenAPI document served under /swagger. It keeps
// the layout swag produces so echo-swagger can read it.
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
        "/api/courses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Course"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Create a course",
                "parameters": [
                    {"description": "Course fields (JSON)", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.courseRequest"}},
                    {"type": "file", "description": "Course image", "name": "image", "in": "formData"},
                    {"type": "file", "description": "Instructor image", "name": "instructor_image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Course"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/courses/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get a course by slug",
                "parameters": [{"type": "string", "description": "Course slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Course"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/courses/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Update a course",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change (JSON)", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.courseRequest"}},
                    {"type": "file", "description": "Course image", "name": "image", "in": "formData"},
                    {"type": "file", "description": "Instructor image", "name": "instructor_image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Course"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Delete a course",
                "parameters": [{"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/courses/{id}/enroll": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["enrollment"],
                "summary": "Enroll in a course",
                "parameters": [{"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.enrollResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [{"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "parameters": [{"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users/myprofile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.profileResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users/mycourses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["enrollment"],
                "summary": "Courses the caller is enrolled in",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Course"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Lesson": {
            "type": "object",
            "properties": {
                "duration": {"type": "string"},
                "lesson_id": {"type": "integer"},
                "lesson_title": {"type": "string"}
            }
        },
        "domain.Module": {
            "type": "object",
            "properties": {
                "lessons": {"type": "array", "items": {"$ref": "#/definitions/domain.Lesson"}},
                "module_id": {"type": "integer"},
                "module_title": {"type": "string"}
            }
        },
        "domain.InstructorSummary": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.Course": {
            "type": "object",
            "properties": {
                "about_the_course": {"type": "string"},
                "category": {"type": "string"},
                "certificate_provided": {"type": "boolean"},
                "course_content": {"type": "array", "items": {"$ref": "#/definitions/domain.Module"}},
                "course_description": {"type": "string"},
                "created_at": {"type": "string"},
                "duration": {"type": "string"},
                "id": {"type": "string"},
                "image": {"type": "string"},
                "instructor": {"$ref": "#/definitions/domain.InstructorSummary"},
                "instructor_id": {"type": "string"},
                "instructor_image": {"type": "string"},
                "instructor_name": {"type": "string"},
                "language": {"type": "string"},
                "learners": {"type": "integer"},
                "lectures": {"type": "integer"},
                "level": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "skills_gained": {"type": "array", "items": {"type": "string"}},
                "slug": {"type": "string"},
                "students_enrolled": {"type": "integer"},
                "type": {"type": "string", "enum": ["FREE", "PAID"]},
                "updated_at": {"type": "string"}
            }
        },
        "handler.courseRequest": {
            "type": "object",
            "properties": {
                "about_the_course": {"type": "string"},
                "category": {"type": "string"},
                "certificate_provided": {"type": "boolean"},
                "course_content": {"type": "array", "items": {"$ref": "#/definitions/domain.Module"}},
                "course_description": {"type": "string"},
                "duration": {"type": "string"},
                "image": {"type": "string"},
                "instructor_image": {"type": "string"},
                "instructor_name": {"type": "string"},
                "language": {"type": "string"},
                "learners": {"type": "integer"},
                "lectures": {"type": "integer"},
                "level": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "skills_gained": {"type": "array", "items": {"type": "string"}},
                "slug": {"type": "string"},
                "students_enrolled": {"type": "integer"},
                "type": {"type": "string", "enum": ["FREE", "PAID"]}
            }
        },
        "handler.enrollResponse": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "message": {"type": "string"},
                "student_id": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string"},
                "token": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.profileResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"type": "object"}},
                "status": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "instructor"]},
                "userRole": {"type": "string", "enum": ["student", "instructor"]}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Course Marketplace API",
	Description:      "Accounts, course catalogue and enrollment for the course marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
