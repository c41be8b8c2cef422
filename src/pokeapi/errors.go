package pokeapi

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrMalformedResponse = errors.New("malformed response")
)

type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.Url)
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedResponse, name)
}
