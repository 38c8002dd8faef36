package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Afterschool API",
        "description": "Course catalogue, enrollment, attendance, notices and surveys for after-school programs",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication"},
        {"name": "Students", "description": "Course catalogue and enrollment"},
        {"name": "Teachers", "description": "Course management for owners"},
        {"name": "Attendance"},
        {"name": "Notices"},
        {"name": "Surveys"},
        {"name": "Admin", "description": "Users, approvals and school-wide content"}
    ],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register account",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ]
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Revoke the presented access token",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/courses": {
            "get": {
                "tags": ["Students"],
                "summary": "Browse approved courses",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "keyword", "in": "query", "type": "string", "description": "Matches name or description"},
                    {"name": "category", "in": "query", "type": "string", "description": "Exact category"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/courses/{courseId}": {
            "get": {
                "tags": ["Students"],
                "summary": "Course detail",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/courses/{courseId}/enroll": {
            "post": {
                "tags": ["Students"],
                "summary": "Enroll in a course",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Ineligible", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Cancel an enrollment",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/my-courses": {
            "get": {
                "tags": ["Students"],
                "summary": "Enrollments of the caller with attendance rates",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/surveys": {
            "get": {
                "tags": ["Students"],
                "summary": "Surveys the caller can still answer",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/surveys/{surveyId}": {
            "get": {
                "tags": ["Students"],
                "summary": "Survey questions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "surveyId", "in": "path", "required": true, "type": "integer", "description": "Survey ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/students/surveys/{surveyId}/responses": {
            "post": {
                "tags": ["Students"],
                "summary": "Submit survey answers",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "surveyId", "in": "path", "required": true, "type": "integer", "description": "Survey ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitSurveyRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Propose a course",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/my-courses": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Courses owned by the caller",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Edit a course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/students": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Students enrolled in a course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance sheet for one class date",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "date", "in": "query", "type": "string", "description": "Class date (YYYY-MM-DD), defaults to today"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RecordAttendanceRequest"}
                    }
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Export attendance totals",
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "Course notices",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Notices"],
                "summary": "Publish a course notice",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/notices/{noticeId}": {
            "put": {
                "tags": ["Notices"],
                "summary": "Edit a course notice",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "noticeId", "in": "path", "required": true, "type": "integer", "description": "Notice ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Notices"],
                "summary": "Remove a course notice",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "noticeId", "in": "path", "required": true, "type": "integer", "description": "Notice ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/surveys": {
            "get": {
                "tags": ["Surveys"],
                "summary": "Course surveys",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Surveys"],
                "summary": "Create a course survey",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/teachers/courses/{courseId}/surveys/{surveyId}/results": {
            "get": {
                "tags": ["Surveys"],
                "summary": "Aggregated survey answers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "surveyId", "in": "path", "required": true, "type": "integer", "description": "Survey ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "description": "STUDENT, TEACHER or ADMIN"},
                    {"name": "name", "in": "query", "type": "string", "description": "Name contains"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/users/{userId}/role": {
            "put": {
                "tags": ["Admin"],
                "summary": "Change a user's role",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "integer", "description": "User ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RoleUpdateRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/users/{userId}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a user",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "integer", "description": "User ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses": {
            "get": {
                "tags": ["Admin"],
                "summary": "List every course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses/pending": {
            "get": {
                "tags": ["Admin"],
                "summary": "Courses awaiting approval",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses/{courseId}/status": {
            "put": {
                "tags": ["Admin"],
                "summary": "Approve or reject a pending course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseStatusRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses/{courseId}/end": {
            "post": {
                "tags": ["Admin"],
                "summary": "Mark a course as ended",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses/{courseId}/enroll": {
            "post": {
                "tags": ["Admin"],
                "summary": "Enroll a student on their behalf",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminEnrollRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/courses/{courseId}/unenroll/{studentId}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Remove a student from a course",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "Course ID"},
                    {"name": "studentId", "in": "path", "required": true, "type": "integer", "description": "Student user ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/notices": {
            "get": {
                "tags": ["Admin"],
                "summary": "School-wide notices",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Publish a school-wide notice",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/notices/{noticeId}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Edit a school-wide notice",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "noticeId", "in": "path", "required": true, "type": "integer", "description": "Notice ID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoticeRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Remove a school-wide notice",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "noticeId", "in": "path", "required": true, "type": "integer", "description": "Notice ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/surveys": {
            "get": {
                "tags": ["Admin"],
                "summary": "School-wide surveys",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create a school-wide survey",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyRequest"}}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/admin/surveys/{surveyId}/results": {
            "get": {
                "tags": ["Admin"],
                "summary": "Aggregated answers of any survey",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "surveyId", "in": "path", "required": true, "type": "integer", "description": "Survey ID"}
                ],
                "security": [
                    {"BearerAuth": []}
                ]
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER", "ADMIN"]},
                "student_id_no": {"type": "string"}
            },
            "required": ["email", "password", "name", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}},
            "required": ["email", "password"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "days": {"type": "string", "example": "Tue,Thu"},
                "time": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer"},
                "quarter": {"type": "integer"},
                "quarterLabel": {"type": "string"},
                "endDate": {"type": "string", "format": "date"}
            },
            "required": ["name", "days", "time", "capacity"]
        },
        "CourseStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["APPROVED", "REJECTED"]}
            },
            "required": ["status"]
        },
        "AdminEnrollRequest": {
            "type": "object",
            "properties": {"studentId": {"type": "integer"}},
            "required": ["studentId"]
        },
        "RoleUpdateRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER", "ADMIN"]}
            },
            "required": ["role"]
        },
        "RecordAttendanceRequest": {
            "type": "object",
            "properties": {
                "classDate": {"type": "string", "format": "date"},
                "records": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "enrollmentId": {"type": "integer"},
                            "status": {"type": "string", "enum": ["PRESENT", "ABSENT", "LATE"]}
                        }
                    }
                }
            },
            "required": ["classDate", "records"]
        },
        "NoticeRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "content": {"type": "string"}},
            "required": ["title", "content"]
        },
        "SurveyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "questions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "questionText": {"type": "string"},
                            "questionType": {"type": "string", "enum": ["MULTIPLE_CHOICE", "TEXT"]},
                            "options": {"type": "array", "items": {"type": "string"}}
                        }
                    }
                }
            },
            "required": ["title", "questions"]
        },
        "SubmitSurveyRequest": {
            "type": "object",
            "properties": {
                "responses": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"questionId": {"type": "integer"}, "content": {"type": "string"}}
                    }
                }
            },
            "required": ["responses"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object"}}
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
