package model

// Status values of a mutation envelope
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Status is the envelope returned by every mutation
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      *int   `json:"id,omitempty"`
	Email   string `json:"email,omitempty"`
	HintID  string `json:"hint_id,omitempty"`

	// Cause is the error behind an error envelope
	Cause error `json:"-"`
}

// Success builds a success envelope
func Success(message string) Status {
	return Status{Status: StatusSuccess, Message: message}
}

// Failure builds an error envelope
func Failure(message string) Status {
	return Status{Status: StatusError, Message: message}
}

// WithID attaches the id of a created document
func (s Status) WithID(id int) Status {
	s.ID = &id
	return s
}

// OK reports whether the envelope carries a success status
func (s Status) OK() bool {
	return s.Status == StatusSuccess
}
