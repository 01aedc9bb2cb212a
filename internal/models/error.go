package models

import (
	"fmt"
	"strings"
)

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Domain-specific errors
	ErrRecipeNotFound      = "RECIPE_NOT_FOUND"
	ErrRecipeNameTaken     = "RECIPE_NAME_TAKEN"
	ErrRelationExists      = "RELATION_ALREADY_EXISTS"
	ErrRelationNotFound    = "RELATION_NOT_FOUND"
	ErrSelfSubscription    = "SELF_SUBSCRIPTION"
	ErrNotRecipeAuthor     = "NOT_RECIPE_AUTHOR"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrInvalidRequest       = "invalid_request"
	ErrInvalidClient        = "invalid_client"
	ErrInvalidGrant         = "invalid_grant"
	ErrUnauthorizedClient   = "unauthorized_client"
	ErrUnsupportedGrantType = "unsupported_grant_type"
	ErrInvalidScope         = "invalid_scope"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// ValidationError reports malformed or out-of-range input. Field names the
// offending payload field when there is a single one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports missing referenced entities. Batch checks report
// every missing id at once rather than the first one found.
type NotFoundError struct {
	Resource string
	IDs      []uint
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("no %s found with id(s) %s", e.Resource, strings.Join(ids, ", "))
}

// AlreadyExistsError reports a duplicate creation attempt on a uniquely
// constrained row.
type AlreadyExistsError struct {
	Resource string
	Detail   string
}

func (e *AlreadyExistsError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Detail)
}

// SelfReferenceError reports a subscription whose target is the subscriber.
type SelfReferenceError struct{}

func (e *SelfReferenceError) Error() string {
	return "cannot subscribe to yourself"
}

// AuthorizationError reports a mutating operation attempted by someone other
// than the recipe's author.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "operation not permitted"
	}
	return e.Message
}
