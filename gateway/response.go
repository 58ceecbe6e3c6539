package gateway

// Status is the outcome of a session aware call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ActionResponse is the envelope every session aware call resolves to.
// A success may carry a nil Data (for example a 204); an error always does.
type ActionResponse[D any] struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Status  Status `json:"status"`
	Data    *D     `json:"data"`
}

// OK reports whether the call succeeded.
func (r ActionResponse[D]) OK() bool {
	return r.Status == StatusSuccess
}

// Success builds a successful response.
func Success[D any](data *D) ActionResponse[D] {
	return ActionResponse[D]{
		Message: "Request successful",
		Code:    200,
		Status:  StatusSuccess,
		Data:    data,
	}
}

// Failure builds an error response. A zero code becomes 500.
func Failure[D any](code int, message string) ActionResponse[D] {
	if code == 0 {
		code = 500
	}
	return ActionResponse[D]{
		Message: message,
		Code:    code,
		Status:  StatusError,
	}
}
