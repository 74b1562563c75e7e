package command

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a command validation failure.
type ErrorKind string

const (
	KindUnknownSubcommand     ErrorKind = "unknown_subcommand"
	KindMissingParameter      ErrorKind = "missing_parameter"
	KindInvalidParameterValue ErrorKind = "invalid_parameter_value"
	KindMutuallyExclusive     ErrorKind = "mutually_exclusive"
	KindDependentParameter    ErrorKind = "dependent_parameter"
)

// ValidationError reports why a command request was rejected. Param names
// the offending field; for enum failures Value and Allowed carry the
// rejected value and the registry's allowed set.
type ValidationError struct {
	Kind    ErrorKind
	Param   string
	Value   string
	Allowed []string
	Detail  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindUnknownSubcommand:
		return fmt.Sprintf("unknown subcommand %q", e.Value)
	case KindMissingParameter:
		return fmt.Sprintf("missing required parameter %q", e.Param)
	case KindInvalidParameterValue:
		return fmt.Sprintf("invalid value %q for %q (allowed: %s)",
			e.Value, e.Param, strings.Join(e.Allowed, ", "))
	case KindMutuallyExclusive, KindDependentParameter:
		return e.Detail
	}
	return e.Detail
}

func errUnknownSubcommand(name string) *ValidationError {
	return &ValidationError{Kind: KindUnknownSubcommand, Value: name}
}

func errMissing(param string) *ValidationError {
	return &ValidationError{Kind: KindMissingParameter, Param: param}
}

func errInvalidValue(param, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidParameterValue,
		Param:   param,
		Value:   value,
		Allowed: allowed,
	}
}
