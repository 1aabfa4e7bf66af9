// Package docs holds the OpenAPI document served at /swagger. It follows
// the layout swag emits and is kept in step with the handler annotations.
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
        "/actions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Flattens action items across the caller's meetings, or a team's meetings",
                "produces": ["application/json"],
                "tags": ["Actions"],
                "summary": "Action overview",
                "parameters": [
                    {"type": "string", "description": "all, incomplete or complete", "name": "status", "in": "query"},
                    {"type": "string", "description": "Owner name", "name": "owner", "in": "query"},
                    {"type": "string", "description": "Team ID", "name": "teamId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.ListActionsResponse"}},
                    "400": {"description": "Invalid status filter", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "403": {"description": "Not a member of the team", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/actions/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Prices unfinished action items by cause, with completion rate against the industry benchmark and an eight week trend",
                "produces": ["application/json"],
                "tags": ["Actions"],
                "summary": "Meeting debt analytics",
                "parameters": [
                    {"type": "string", "description": "Team ID", "name": "teamId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.DebtAnalyticsResponse"}},
                    "403": {"description": "Not a member of the team", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Team not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the caller's meetings newest first, or a team's meetings when teamId is given",
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "List meetings",
                "parameters": [
                    {"type": "string", "description": "Team ID", "name": "teamId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.ListMeetingsResponse"}},
                    "403": {"description": "Not a member of the team", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Team not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{meetingId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns one of the caller's meetings. The transcript is not included.",
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Get meeting details",
                "parameters": [
                    {"type": "string", "description": "Meeting ID", "name": "meetingId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.MeetingResponse"}},
                    "401": {"description": "User not authenticated", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Meeting not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{meetingId}/actions/{actionId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Marks one embedded action item complete or reopens it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Update an action item",
                "parameters": [
                    {"type": "string", "description": "Meeting ID", "name": "meetingId", "in": "path", "required": true},
                    {"type": "string", "description": "Action item ID", "name": "actionId", "in": "path", "required": true},
                    {"description": "Completion flag", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.UpdateActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.UpdateActionResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Meeting or action item not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/teams": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "List the caller's teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/team.ListTeamsResponse"}},
                    "401": {"description": "User not authenticated", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a team with the caller as owner and returns its invite code",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "Create a team",
                "parameters": [
                    {"description": "Team name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/team.CreateTeamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/team.CreateTeamResponse"}},
                    "400": {"description": "Team name is required", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/teams/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds the caller to the team behind an invite code",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "Join a team",
                "parameters": [
                    {"description": "Invite code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/team.JoinTeamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/team.JoinTeamResponse"}},
                    "400": {"description": "Invite code is required or already a member", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Invalid invite code", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/teams/{teamId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns a team the caller is a member of",
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "Get team details",
                "parameters": [
                    {"type": "string", "description": "Team ID", "name": "teamId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/team.TeamResponse"}},
                    "403": {"description": "Not a member of the team", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Team not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/upload-url": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Registers a pending meeting and returns a presigned PUT URL for its audio",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Request an upload URL",
                "parameters": [
                    {"description": "Upload details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.CreateUploadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/meeting.CreateUploadResponse"}},
                    "400": {"description": "Unsupported file type or file too large", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "403": {"description": "Not a member of the team", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"}
            }
        },
        "meeting.ActionItemResponse": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "completed": {"type": "boolean"},
                "completedAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "deadline": {"type": "string"},
                "id": {"type": "string"},
                "owner": {"type": "string"},
                "riskLevel": {"type": "string"},
                "riskScore": {"type": "number"},
                "status": {"type": "string"},
                "task": {"type": "string"}
            }
        },
        "meeting.ActionWithContextResponse": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "completed": {"type": "boolean"},
                "completedAt": {"type": "string"},
                "deadline": {"type": "string"},
                "id": {"type": "string"},
                "meetingDate": {"type": "string"},
                "meetingId": {"type": "string"},
                "meetingTitle": {"type": "string"},
                "owner": {"type": "string"},
                "riskLevel": {"type": "string"},
                "riskScore": {"type": "number"},
                "status": {"type": "string"},
                "task": {"type": "string"}
            }
        },
        "meeting.ActionStatsResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "integer"},
                "completionRate": {"type": "number"},
                "incomplete": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "meeting.CreateUploadRequest": {
            "type": "object",
            "properties": {
                "contentType": {"type": "string", "example": "audio/mpeg"},
                "fileSize": {"type": "integer", "minimum": 0, "example": 1048576},
                "teamId": {"type": "string"},
                "title": {"type": "string", "maxLength": 255, "example": "Weekly Sync"}
            }
        },
        "meeting.CreateUploadResponse": {
            "type": "object",
            "properties": {
                "meetingId": {"type": "string"},
                "s3Key": {"type": "string"},
                "uploadUrl": {"type": "string"}
            }
        },
        "meeting.DebtAnalyticsResponse": {
            "type": "object",
            "properties": {
                "blockedHours": {"type": "number"},
                "breakdown": {"$ref": "#/definitions/meeting.DebtBreakdownResponse"},
                "completedActions": {"type": "integer"},
                "completionRate": {"type": "number"},
                "debtVelocity": {"type": "number"},
                "incompleteActions": {"type": "integer"},
                "industryBenchmark": {"type": "number"},
                "totalActions": {"type": "integer"},
                "totalDebt": {"type": "number"},
                "trend": {"type": "array", "items": {"$ref": "#/definitions/meeting.DebtPointResponse"}}
            }
        },
        "meeting.DebtBreakdownResponse": {
            "type": "object",
            "properties": {
                "atRisk": {"type": "number"},
                "forgotten": {"type": "number"},
                "overdue": {"type": "number"},
                "unassigned": {"type": "number"}
            }
        },
        "meeting.DebtPointResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "debt": {"type": "number"}
            }
        },
        "meeting.ListActionsResponse": {
            "type": "object",
            "properties": {
                "actions": {"type": "array", "items": {"$ref": "#/definitions/meeting.ActionWithContextResponse"}},
                "stats": {"$ref": "#/definitions/meeting.ActionStatsResponse"}
            }
        },
        "meeting.ListMeetingsResponse": {
            "type": "object",
            "properties": {
                "meetings": {"type": "array", "items": {"$ref": "#/definitions/meeting.MeetingSummaryResponse"}}
            }
        },
        "meeting.MeetingResponse": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "actionItems": {"type": "array", "items": {"$ref": "#/definitions/meeting.ActionItemResponse"}},
                "autopsy": {"type": "string"},
                "createdAt": {"type": "string"},
                "decisions": {"type": "array", "items": {}},
                "email": {"type": "string"},
                "followUps": {"type": "array", "items": {}},
                "healthGrade": {"type": "string"},
                "healthScore": {"type": "number"},
                "meetingId": {"type": "string"},
                "roi": {"type": "object", "additionalProperties": true},
                "s3Key": {"type": "string"},
                "status": {"type": "string"},
                "summary": {"type": "string"},
                "teamId": {"type": "string"},
                "title": {"type": "string"},
                "ttl": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "meeting.MeetingSummaryResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "healthScore": {"type": "number"},
                "meetingId": {"type": "string"},
                "status": {"type": "string"},
                "teamId": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "meeting.UpdateActionRequest": {
            "type": "object",
            "required": ["completed"],
            "properties": {
                "completed": {"type": "boolean"}
            }
        },
        "meeting.UpdateActionResponse": {
            "type": "object",
            "properties": {
                "actionId": {"type": "string"},
                "completed": {"type": "boolean"},
                "success": {"type": "boolean"}
            }
        },
        "team.CreateTeamRequest": {
            "type": "object",
            "properties": {
                "teamName": {"type": "string", "maxLength": 255, "example": "Platform"}
            }
        },
        "team.CreateTeamResponse": {
            "type": "object",
            "properties": {
                "inviteCode": {"type": "string"},
                "teamId": {"type": "string"},
                "teamName": {"type": "string"}
            }
        },
        "team.JoinTeamRequest": {
            "type": "object",
            "properties": {
                "inviteCode": {"type": "string", "maxLength": 16, "example": "K7Q2ZP"}
            }
        },
        "team.JoinTeamResponse": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "teamName": {"type": "string"}
            }
        },
        "team.ListTeamsResponse": {
            "type": "object",
            "properties": {
                "teams": {"type": "array", "items": {"$ref": "#/definitions/team.TeamSummaryResponse"}}
            }
        },
        "team.MemberResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "joinedAt": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "team.TeamResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "inviteCode": {"type": "string"},
                "members": {"type": "array", "items": {"$ref": "#/definitions/team.MemberResponse"}},
                "teamId": {"type": "string"},
                "teamName": {"type": "string"}
            }
        },
        "team.TeamSummaryResponse": {
            "type": "object",
            "properties": {
                "memberCount": {"type": "integer"},
                "role": {"type": "string"},
                "teamId": {"type": "string"},
                "teamName": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "MeetingMind API",
	Description:      "Meetings, action items and teams for MeetingMind",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
