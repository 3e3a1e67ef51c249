package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/projectdiscovery/lanbeacon/pkg/identity"
	"github.com/tidwall/gjson"
)

// ParseError is returned by Decode when a payload is not a well-formed identity record.
// Callers treat it as "skip this datagram".
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed identity record: %s: %v", e.Reason, e.Err)
	}
	return "malformed identity record: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err (or anything it wraps) is a *ParseError
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

type record struct {
	Name string `json:"name"`
}

// Encode serializes id into a wire message
func Encode(id identity.Identity) []byte {
	// a struct holding a single string cannot fail to marshal
	data, _ := json.Marshal(record{Name: id.Name()})
	return data
}

// Decode parses a wire message back into an identity
func Decode(data []byte) (identity.Identity, error) {
	if !gjson.ValidBytes(data) {
		return identity.Identity{}, &ParseError{Reason: "invalid json"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return identity.Identity{}, &ParseError{Reason: fmt.Sprintf("expected object, got %s", root.Type)}
	}
	name := root.Get("name")
	if !name.Exists() {
		return identity.Identity{}, &ParseError{Reason: "missing name field"}
	}
	if name.Type != gjson.String {
		return identity.Identity{}, &ParseError{Reason: fmt.Sprintf("name field is %s, not a string", name.Type)}
	}
	id, err := identity.New(name.String())
	if err != nil {
		return identity.Identity{}, &ParseError{Reason: "invalid name", Err: err}
	}
	return id, nil
}
