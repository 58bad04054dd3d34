package models

import "fmt"

// Operation names accepted by the Lambda handler.
const (
	OperationActive       = "active"
	OperationDetails      = "details"
	OperationAuthenticate = "authenticate"
)

// LambdaEvent is the input event for Lambda invocation.
type LambdaEvent struct {
	Operation       string `json:"operation"`
	MemberNumber    string `json:"member_number,omitempty"`
	ChapterID       string `json:"chapter_id,omitempty"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
}

// EffectiveOperation returns the requested operation, defaulting to the active check.
func (e *LambdaEvent) EffectiveOperation() string {
	if e == nil || e.Operation == "" {
		return OperationActive
	}
	return e.Operation
}

// LambdaResponse is the output from Lambda invocation.
type LambdaResponse struct {
	StatusCode int                `json:"status_code"`
	Message    string             `json:"message"`
	Active     *bool              `json:"active,omitempty"`
	Details    *MemberDetails     `json:"details,omitempty"`
	User       *AuthenticatedUser `json:"user,omitempty"`
}

// NewActiveResponse creates a response for a membership check.
func NewActiveResponse(memberNumber string, chapterID string, active bool) *LambdaResponse {
	state := "inactive"
	if active {
		state = "active"
	}
	return &LambdaResponse{
		StatusCode: 200,
		Message:    fmt.Sprintf("member %s is %s in %s", memberNumber, state, chapterID),
		Active:     &active,
	}
}

// NewDetailsResponse creates a response carrying member details.
func NewDetailsResponse(details *MemberDetails) *LambdaResponse {
	if !details.Found() {
		return &LambdaResponse{StatusCode: 404, Message: "member not found", Details: details}
	}
	return &LambdaResponse{
		StatusCode: 200,
		Message:    fmt.Sprintf("%d memberships, %d committee positions", len(details.Memberships), len(details.Committees)),
		Details:    details,
	}
}

// NewAuthenticateResponse creates a response for a login attempt. A nil user means rejected credentials.
func NewAuthenticateResponse(user *AuthenticatedUser) *LambdaResponse {
	if user == nil {
		return &LambdaResponse{StatusCode: 401, Message: "authentication failed"}
	}
	return &LambdaResponse{StatusCode: 200, Message: "authenticated", User: user}
}

// NewBadRequestResponse creates a response for an invalid event.
func NewBadRequestResponse(err error) *LambdaResponse {
	return &LambdaResponse{
		StatusCode: 400,
		Message:    err.Error(),
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err error) *LambdaResponse {
	return &LambdaResponse{
		StatusCode: 500,
		Message:    err.Error(),
	}
}
