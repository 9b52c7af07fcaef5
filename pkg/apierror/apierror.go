package apierror

// APIError is a request-level error that already knows the HTTP status it
// should be surfaced with. Domain errors stay as sentinel values in
// internal/model; handlers use APIError for malformed or incomplete requests.
type APIError struct {
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func New(message string, status int) *APIError {
	return &APIError{Message: message, HTTPStatus: status}
}
