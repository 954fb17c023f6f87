package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatcher is returned when a regex rule was built without a
	// compiled matcher. Pattern text is not accepted where a matcher is
	// expected; compile it first (or resolve it through a pattern registry).
	ErrNilMatcher = errors.New("schema: regex rule requires a compiled matcher")

	// ErrNilPredicate is returned when a func rule was built without a
	// predicate.
	ErrNilPredicate = errors.New("schema: func rule requires a non-nil predicate")

	// ErrInvalidTarget is returned when a validator is invoked on a value
	// that is not a struct or pointer to struct.
	ErrInvalidTarget = errors.New("schema: validation target must be a struct or non-nil pointer to struct")
)

// IncompatibleRuleError reports a rule attached to a field whose category
// cannot support it. Compilation aborts; no partially compiled validator is
// produced.
type IncompatibleRuleError struct {
	Record   string
	Field    string
	Rule     RuleKind
	Category Category
	Allowed  string
}

func (e *IncompatibleRuleError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %s rule cannot apply to %s (allowed: %s)",
		e.Record, e.Field, e.Rule, e.Category, e.Allowed)
}

// MissingMessageError reports a rule without its own message on a field in
// ALL mode, where every rule must carry one.
type MissingMessageError struct {
	Record string
	Field  string
	Rule   RuleKind
}

func (e *MissingMessageError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %s rule needs a message because the field declares none",
		e.Record, e.Field, e.Rule)
}

// ConflictingMessageError reports a rule carrying its own message on a field
// in ANY mode, where only the field-level message may be surfaced.
type ConflictingMessageError struct {
	Record string
	Field  string
	Rule   RuleKind
}

func (e *ConflictingMessageError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %s rule may not carry a message because the field declares one",
		e.Record, e.Field, e.Rule)
}

// ValueTypeError reports a Within/Exclude listed value or a Range bound
// whose type does not match the field's category.
type ValueTypeError struct {
	Record   string
	Field    string
	Rule     RuleKind
	Value    any
	Category Category
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %s value %v (%T) does not match category %s",
		e.Record, e.Field, e.Rule, e.Value, e.Value, e.Category)
}

// GroupTagError reports a group tag that has no canonical encoding and so
// cannot participate in equality comparison.
type GroupTagError struct {
	Record string
	Field  string
	Tag    any
	Err    error
}

func (e *GroupTagError) Error() string {
	return fmt.Sprintf("schema: %s.%s: group tag %v cannot be encoded: %v", e.Record, e.Field, e.Tag, e.Err)
}

func (e *GroupTagError) Unwrap() error { return e.Err }

// Failure is the run-time validation outcome. Error returns exactly the
// user-authored message for the first failing condition; the framework
// never synthesizes or amends it. Field and Record are carried for
// introspection only.
type Failure struct {
	Record  string
	Field   string
	Message string
}

func (f *Failure) Error() string { return f.Message }

// IsFailure reports whether err is a validation failure as opposed to a
// dispatch or usage error.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// DispatchError reports a deep-validated value whose type does not
// implement Validatable. Name-based classification cannot prove the
// capability at compile time, so this is one of the two configuration
// mistakes that surface at run time (the other being an invalid pattern in
// a pattern registry).
type DispatchError struct {
	Record string
	Field  string
	Type   string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("schema: %s.%s: nested value of type %s does not implement Validatable",
		e.Record, e.Field, e.Type)
}

// FieldAccessError reports a compiled field that the concrete struct does
// not expose, or exposes unexported.
type FieldAccessError struct {
	Record string
	Field  string
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("schema: %s.%s: struct has no accessible field with this name", e.Record, e.Field)
}

// GroupValueError reports a requested group value that has no canonical
// encoding.
type GroupValueError struct {
	Record string
	Group  any
	Err    error
}

func (e *GroupValueError) Error() string {
	return fmt.Sprintf("schema: %s: requested group %v cannot be encoded: %v", e.Record, e.Group, e.Err)
}

func (e *GroupValueError) Unwrap() error { return e.Err }
