package hue

// ErrorDetail is the error object the bridge embeds in a response entry.
type ErrorDetail struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// CreateUserSuccess is the success object of a create-user entry.
type CreateUserSuccess struct {
	Username string `json:"username"`
}

// CreateUserEntry is one element of the create-user response array. The
// bridge emits no discriminant field, the variant is whichever key is
// present.
type CreateUserEntry struct {
	Success *CreateUserSuccess `json:"success,omitempty"`
	Error   *ErrorDetail       `json:"error,omitempty"`
}

// ResponseEntry is one element of a generic command response array. Success
// maps affected resource paths (e.g. "/lights/2/state/on") to the accepted
// values. A single call can yield a mix of success and error entries, one
// per attempted field.
type ResponseEntry struct {
	Success map[string]any `json:"success,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}
