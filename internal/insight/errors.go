package insight

import "fmt"

// ServiceError reports a failed interaction with the generative backend:
// the call kept failing after retries, the response was blocked by safety
// filters, or it carried no usable text.
type ServiceError struct {
	Reason string
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ConfigurationError reports a missing or unusable credential or setting.
// It is raised before any network call is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

// ParseError reports model output that could not be treated as an analysis
// at all. Individually missing fields fall back to defaults instead.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }
