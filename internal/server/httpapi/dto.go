package httpapi

// LoginRequest is the /login request body.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	AuthToken string `json:"auth-token"`
}

// FileNameEdit is the rename request body.
type FileNameEdit struct {
	Filename string `json:"filename"`
}

// FileInfoResponse is one /list entry.
type FileInfoResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// ErrorResponse is the error body for 4xx/5xx replies.
type ErrorResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}
