package ml

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactMissing matches any *ArtifactMissingError.
	ErrArtifactMissing = errors.New("model artifact missing")
	// ErrInference matches any *InferenceError.
	ErrInference = errors.New("inference failed")
)

// ArtifactMissingError is returned when the model file does not exist.
type ArtifactMissingError struct {
	Path string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("model artifact not found at: %s. Please make sure the file is in the same folder as this app.", e.Path)
}

func (e *ArtifactMissingError) Is(target error) bool {
	return target == ErrArtifactMissing
}

// InferenceError wraps every other failure while loading or applying the model.
type InferenceError struct {
	Op  string
	Err error
}

func (e *InferenceError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

func (e *InferenceError) Is(target error) bool {
	return target == ErrInference
}

func inferenceError(op string, err error) error {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return err
	}
	return &InferenceError{Op: op, Err: err}
}

// ErrorKind names the error variant for logs, metrics and API payloads.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrArtifactMissing):
		return "artifact_missing"
	default:
		return "inference_error"
	}
}
