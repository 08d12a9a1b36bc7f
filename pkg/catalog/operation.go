package catalog

import "net/http"

// Operation selects the verb and URL shape of a vehicle mutation.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

// Method returns the HTTP verb for the operation, or "" when unknown.
func (o Operation) Method() string {
	switch o {
	case OpCreate:
		return http.MethodPost
	case OpUpdate:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	default:
		return ""
	}
}

func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// requiresID reports whether the remote contract needs a persisted identifier.
func (o Operation) requiresID() bool { return o == OpUpdate || o == OpDelete }
