package endpoints

import "fmt"

// UnknownEndpointError is returned when an operation key has no registered descriptor.
type UnknownEndpointError struct {
	Key OperationKey
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %q", e.Key)
}

// DuplicateEndpointError is returned when two descriptors are registered under the same key.
type DuplicateEndpointError struct {
	Key OperationKey
}

func (e *DuplicateEndpointError) Error() string {
	return fmt.Sprintf("endpoint %q is registered more than once", e.Key)
}

// MissingPathParamError is returned when a URL template needs a path parameter that the caller
// did not supply. Key is empty when the template was rendered outside of a dispatch.
type MissingPathParamError struct {
	Key   OperationKey
	Param string
}

func (e *MissingPathParamError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("missing path parameter %q", e.Param)
	}
	return fmt.Sprintf("endpoint %q: missing path parameter %q", e.Key, e.Param)
}
