package models

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error      string        `json:"error"`
	Message    string        `json:"message"`
	Class      EndpointClass `json:"class"`
	RetryAfter int           `json:"retry_after"`
}

// NewRateLimitExceeded builds the 429 body for class.
func NewRateLimitExceeded(class EndpointClass, retryAfter int) RateLimitExceededResponse {
	msg := "Too many lookup requests from this IP address. Please try again later."
	if class == ClassVerification {
		msg = "Too many verification attempts from this IP address. Please try again later."
	}
	return RateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    msg,
		Class:      class,
		RetryAfter: retryAfter,
	}
}
