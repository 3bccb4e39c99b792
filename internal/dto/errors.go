package dto

// QuotaExceededError is raised when a therapy message does not fit the
// plan quota. The HTTP layer converts it to 429.
type QuotaExceededError struct {
	Plan      string `json:"plan"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

func (e *QuotaExceededError) Error() string {
	return e.Message
}

// ConflictError is raised when a request collides with existing state,
// such as registering an email that is already taken. The HTTP layer
// converts it to 400.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError is raised when a resource does not exist or does not
// belong to the requester. The HTTP layer converts it to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}
