package dto

// UserResponse is the client view of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

// SortedResponse wraps by-name search results.
type SortedResponse struct {
	Sorted []UserResponse `json:"sorted"`
}

// MessageResponse carries an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a single error description.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse describes one invalid payload field.
type FieldErrorResponse struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

// ValidationErrorResponse lists every payload violation.
type ValidationErrorResponse struct {
	Status string               `json:"status"`
	Errors []FieldErrorResponse `json:"errors"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
