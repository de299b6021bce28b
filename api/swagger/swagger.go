package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Leave Alteration API",
        "description": "Class alteration lifecycle for faculty leave requests",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Alterations", "description": "Substitute arrangements for classes missed during leave"},
        {"name": "LeaveRequests", "description": "Leave request lookup"},
        {"name": "Notifications", "description": "In-app notifications of the caller"}
    ],
    "paths": {
        "/alterations": {
            "get": {
                "tags": ["Alterations"],
                "summary": "List all alterations (HOD, ADMIN)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Alterations"],
                "summary": "Assign class alterations in bulk",
                "description": "Items are processed independently and in order; the report carries one line per item.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/AlterationRequest"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AssignmentReport"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/alterations/{id}": {
            "get": {
                "tags": ["Alterations"],
                "summary": "Get an alteration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Alteration"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Alterations"],
                "summary": "Update an alteration",
                "description": "Switching to STAFF_ALTERATION re-opens the decision as PENDING.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAlterationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Alteration"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/alterations/{id}/approve": {
            "post": {
                "tags": ["Alterations"],
                "summary": "Accept an assigned alteration",
                "description": "Only the replacement employee named on the alteration may decide.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Alteration"}},
                    "403": {"description": "Caller is not the replacement", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Alteration already processed.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/alterations/{id}/reject": {
            "post": {
                "tags": ["Alterations"],
                "summary": "Decline an assigned alteration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Alteration"}},
                    "403": {"description": "Caller is not the replacement", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Alteration already processed.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave-requests": {
            "get": {
                "tags": ["LeaveRequests"],
                "summary": "Search leave requests",
                "parameters": [
                    {"name": "empId", "in": "query", "type": "string"},
                    {"name": "empName", "in": "query", "type": "string"},
                    {"name": "leaveType", "in": "query", "type": "string"},
                    {"name": "leaveDate", "in": "query", "type": "string", "format": "date"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "approverName", "in": "query", "type": "string"},
                    {"name": "requestId", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave-requests/{id}": {
            "get": {
                "tags": ["LeaveRequests"],
                "summary": "Get a leave request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave-requests/{id}/alteration-statuses": {
            "get": {
                "tags": ["Alterations"],
                "summary": "Notification statuses of a leave request's alterations",
                "description": "One entry per alteration; MOODLE_LINK alterations contribute null.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leave-requests/{id}/alterations/export": {
            "get": {
                "tags": ["Alterations"],
                "summary": "Download the alteration roster (HOD, ADMIN)",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List my notifications",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark a notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Marked"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "AlterationRequest": {
            "type": "object",
            "required": ["empId", "alterationType"],
            "properties": {
                "requestId": {"type": "integer"},
                "empId": {"type": "string"},
                "alterationType": {"type": "string", "enum": ["MOODLE_LINK", "STAFF_ALTERATION"]},
                "replacementEmpId": {"type": "string"},
                "moodleActivityLink": {"type": "string"},
                "classDate": {"type": "string", "format": "date"},
                "classPeriod": {"type": "integer"},
                "subjectCode": {"type": "string"},
                "subjectName": {"type": "string"}
            }
        },
        "UpdateAlterationRequest": {
            "type": "object",
            "required": ["alterationType"],
            "properties": {
                "alterationType": {"type": "string", "enum": ["MOODLE_LINK", "STAFF_ALTERATION"]},
                "replacementEmpId": {"type": "string"},
                "moodleActivityLink": {"type": "string"},
                "classDate": {"type": "string", "format": "date"},
                "classPeriod": {"type": "integer"},
                "subjectCode": {"type": "string"},
                "subjectName": {"type": "string"}
            }
        },
        "Alteration": {
            "type": "object",
            "properties": {
                "alterationId": {"type": "integer"},
                "requestId": {"type": "integer"},
                "empId": {"type": "string"},
                "alterationType": {"type": "string", "enum": ["MOODLE_LINK", "STAFF_ALTERATION"]},
                "replacementEmpId": {"type": "string", "x-nullable": true},
                "moodleActivityLink": {"type": "string", "x-nullable": true},
                "notificationStatus": {"type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"], "x-nullable": true},
                "classDate": {"type": "string", "format": "date"},
                "classPeriod": {"type": "integer"},
                "subjectCode": {"type": "string"},
                "subjectName": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "AssignmentResult": {
            "type": "object",
            "properties": {
                "requestId": {"type": "integer"},
                "alterationId": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "AssignmentReport": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/AssignmentResult"}},
                "succeeded": {"type": "integer"},
                "failed": {"type": "integer"},
                "report": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
