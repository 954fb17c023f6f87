package schema

import "regexp"

// RuleKind identifies one declarative validation condition.
type RuleKind uint8

const (
	RuleNotBlank RuleKind = iota
	RuleNotEmpty
	RuleNoSpace
	RuleRegex
	RuleRange
	RuleSize
	RuleWithin
	RuleExclude
	RuleRequired
	RuleFunc
	RuleDeep
	RuleGroups
)

var ruleNames = map[RuleKind]string{
	RuleNotBlank: "not_blank",
	RuleNotEmpty: "not_empty",
	RuleNoSpace:  "no_space",
	RuleRegex:    "regex",
	RuleRange:    "range",
	RuleSize:     "size",
	RuleWithin:   "within",
	RuleExclude:  "exclude",
	RuleRequired: "required",
	RuleFunc:     "func",
	RuleDeep:     "deep",
	RuleGroups:   "group",
}

func (k RuleKind) String() string {
	if name, ok := ruleNames[k]; ok {
		return name
	}
	return "unknown"
}

// structural rules modify how a field validates; they carry no message and
// are never evaluated as checks themselves.
func (k RuleKind) structural() bool {
	return k == RuleDeep || k == RuleGroups
}

// Predicate is a user-supplied check receiving the field's value. For
// optional fields the predicate sees the unwrapped present value.
type Predicate func(value any) bool

// Rule is one declarative validation condition attached to a field. Rules
// are built through the constructor functions below and are immutable.
type Rule struct {
	kind    RuleKind
	message string
	min     any // Range lower bound, nil when open
	max     any // Range upper bound, nil when open
	sizeMin int
	sizeMax int
	values  []any
	re      *regexp.Regexp
	fn      Predicate
	tags    []any
}

// Kind returns the rule's kind.
func (r Rule) Kind() RuleKind { return r.kind }

// Message returns the rule's own message, empty for structural rules and
// for rules declared under a field-level message.
func (r Rule) Message() string { return r.message }

// NotBlank requires a string to contain at least one non-whitespace
// character.
func NotBlank(message string) Rule {
	return Rule{kind: RuleNotBlank, message: message}
}

// NotEmpty requires a string or collection to be non-empty.
func NotEmpty(message string) Rule {
	return Rule{kind: RuleNotEmpty, message: message}
}

// NoSpace forbids whitespace characters anywhere in a string.
func NoSpace(message string) Rule {
	return Rule{kind: RuleNoSpace, message: message}
}

// Regex requires a string to match an already-compiled pattern. The rule
// deliberately takes a *regexp.Regexp rather than pattern text: compiling
// belongs to schema-definition time, not to every validation call.
func Regex(re *regexp.Regexp, message string) Rule {
	return Rule{kind: RuleRegex, re: re, message: message}
}

// Range bounds an ordered value inclusively. A nil bound is open. Bound
// types are checked against the field's category at compile time; temporal
// bounds additionally accept RFC 3339 strings and decimal bounds accept
// numeric strings.
func Range(min, max any, message string) Rule {
	return Rule{kind: RuleRange, min: min, max: max, message: message}
}

// Size bounds the length of a string (in runes) or collection inclusively.
// A negative bound is open.
func Size(min, max int, message string) Rule {
	return Rule{kind: RuleSize, sizeMin: min, sizeMax: max, message: message}
}

// Within requires the value to equal one of the listed values. Listed value
// types are checked against the field's category at compile time.
func Within(values []any, message string) Rule {
	return Rule{kind: RuleWithin, values: values, message: message}
}

// Exclude requires the value to equal none of the listed values. Listed
// value types are checked against the field's category at compile time.
func Exclude(values []any, message string) Rule {
	return Rule{kind: RuleExclude, values: values, message: message}
}

// Required forbids an optional field from being absent. It is the only rule
// evaluated against the absent state itself.
func Required(message string) Rule {
	return Rule{kind: RuleRequired, message: message}
}

// Func attaches a custom predicate.
func Func(fn Predicate, message string) Rule {
	return Rule{kind: RuleFunc, fn: fn, message: message}
}

// Deep recurses into a nested record, or into each element of a collection
// of records, after the field's own rules pass.
func Deep() Rule {
	return Rule{kind: RuleDeep}
}

// Groups tags the field with validation groups. A field with no tags runs
// under every group; a tagged field runs only under its tags.
func Groups(tags ...any) Rule {
	return Rule{kind: RuleGroups, tags: tags}
}

// Field describes one named, typed attribute of a record together with its
// attached rules. Message, when set, switches the field to ANY mode: the
// field passes if at least one rule passes, and Message is the only failure
// message ever surfaced for it.
type Field struct {
	Name    string
	Type    string
	Message string
	Rules   []Rule
}
