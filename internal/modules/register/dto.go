package register

// Payload is the registration request body. Only these fields are read.
type Payload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Result struct {
	UserID string
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorResponse is used for input errors detected before any backend call.
type ErrorResponse struct {
	Error string `json:"error"`
}
