package vcloud

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoAPIRoot is returned by New when no API root was configured,
	// neither via the Root option nor via $VCLOUD_API_ROOT.
	ErrNoAPIRoot = errors.New("no known API root for vCloud, perhaps you need to set $VCLOUD_API_ROOT")

	// ErrNotFound is returned by single-item lookups when the named
	// resource does not exist. Use errors.Is to test for it.
	ErrNotFound = errors.New("not found")
)

// APIError is any non-2xx response from the API, carrying the original
// status and body.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vcloud api: %s", e.Status)
}

// LookupError means the session link index has no link of the requested
// type, i.e. this deployment never advertised the capability.
type LookupError struct {
	Type string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("don't know anything about type %q", e.Type)
}

// DecodeError means a payload is missing an attribute or element the wire
// format declares mandatory.
type DecodeError struct {
	Resource string
	Field    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: missing mandatory %s", e.Resource, e.Field)
}
