// Package outcome carries display text together with a failure category.
//
// Failures are values: every component that can fail returns a Text whose
// Value is a tagged, human-readable message and whose Kind says what went
// wrong. Callers that only display output can ignore Kind; callers that need
// to branch can call Failed.
package outcome

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a Text as success or one of the failure categories.
type Kind int

const (
	OK Kind = iota
	GatewayError
	FetchError
	DecodeError
	UnsupportedInputError
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case GatewayError:
		return "gateway_error"
	case FetchError:
		return "fetch_error"
	case DecodeError:
		return "decode_error"
	case UnsupportedInputError:
		return "unsupported_input"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Text is display text that may describe a failure.
type Text struct {
	Value string
	Kind  Kind
}

// Ok wraps successful text.
func Ok(s string) Text { return Text{Value: s, Kind: OK} }

// Fail renders err as "<label>: <err>" under the given failure kind.
func Fail(kind Kind, label string, err error) Text {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Text{Value: label + ": " + msg, Kind: kind}
}

// Reject wraps an already formatted failure message.
func Reject(kind Kind, msg string) Text { return Text{Value: msg, Kind: kind} }

// Failed reports whether t describes a failure.
func (t Text) Failed() bool { return t.Kind != OK }

func (t Text) String() string { return t.Value }

// MarshalJSON encodes t as its display text; history consumers see plain strings.
func (t Text) MarshalJSON() ([]byte, error) { return json.Marshal(t.Value) }
