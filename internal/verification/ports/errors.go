package ports

import (
	"errors"
	"fmt"
)

// ErrorCategory normalizes adapter failures.
type ErrorCategory string

const (
	// ErrorUnreadableImage: the image could not be decoded or read.
	ErrorUnreadableImage ErrorCategory = "unreadable_image"
	// ErrorNoFaceDetected: the face adapter found no face. Not a pipeline failure.
	ErrorNoFaceDetected ErrorCategory = "no_face_detected"
	// ErrorTimeout: the adapter did not answer within the deadline.
	ErrorTimeout ErrorCategory = "timeout"
	// ErrorInvalidPhoneFormat: the phone library could not parse the number.
	ErrorInvalidPhoneFormat ErrorCategory = "invalid_phone_format"
	// ErrorAdapterOutage: the adapter is unreachable or failing.
	ErrorAdapterOutage ErrorCategory = "adapter_outage"
	// ErrorBadData: the adapter answered with something unusable.
	ErrorBadData ErrorCategory = "bad_data"
	ErrorInternal ErrorCategory = "internal"
)

// AdapterError wraps adapter failures with normalized categorization.
type AdapterError struct {
	Category   ErrorCategory
	Adapter    string
	Image      string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *AdapterError) Error() string {
	prefix := fmt.Sprintf("%s [%s]", e.Adapter, e.Category)
	if e.Image != "" {
		prefix += " " + e.Image
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *AdapterError) Unwrap() error {
	return e.Underlying
}

// NewAdapterError creates a categorized adapter error.
func NewAdapterError(category ErrorCategory, adapter, message string, underlying error) *AdapterError {
	return &AdapterError{
		Category:   category,
		Adapter:    adapter,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorAdapterOutage,
	}
}

// WithImage names the image the error concerns.
func (e *AdapterError) WithImage(image string) *AdapterError {
	e.Image = image
	return e
}

// UnreadableImage reports an image that could not be decoded.
func UnreadableImage(adapter, image string, underlying error) *AdapterError {
	return NewAdapterError(ErrorUnreadableImage, adapter, "image could not be read", underlying).WithImage(image)
}

// NoFaceDetected reports an image without a detectable face.
func NoFaceDetected(adapter, image string) *AdapterError {
	return NewAdapterError(ErrorNoFaceDetected, adapter, "no face detected", nil).WithImage(image)
}

// Timeout reports an adapter call that exceeded its deadline.
func Timeout(adapter string, underlying error) *AdapterError {
	return NewAdapterError(ErrorTimeout, adapter, "adapter call timed out", underlying)
}

func IsUnreadableImage(err error) bool { return GetCategory(err) == ErrorUnreadableImage }
func IsNoFace(err error) bool          { return GetCategory(err) == ErrorNoFaceDetected }
func IsTimeout(err error) bool         { return GetCategory(err) == ErrorTimeout }

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}

// GetCategory extracts the category, defaulting to ErrorInternal.
func GetCategory(err error) ErrorCategory {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ErrorInternal
}

// ImageOf returns the image an adapter error concerns, if any.
func ImageOf(err error) string {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Image
	}
	return ""
}
