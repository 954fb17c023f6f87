package schemafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/checkkit/pkg/patterns"
	"github.com/dmitrymomot/checkkit/pkg/schema"
)

var (
	// ErrNoRecord is returned when a document does not name its record.
	ErrNoRecord = errors.New("schemafile: document must name a record")

	// ErrUnknownFunc is returned when a func rule references a predicate
	// missing from the Options.Funcs table.
	ErrUnknownFunc = errors.New("schemafile: unknown predicate name")

	// ErrUnknownPattern is returned when a regex rule references a name
	// missing from the pattern registry (or no registry was supplied).
	ErrUnknownPattern = errors.New("schemafile: unknown pattern name")
)

// RuleError reports a rule entry that does not describe exactly one rule.
type RuleError struct {
	Field  string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("schemafile: field %q: %s", e.Field, e.Reason)
}

// PatternError reports regex text that failed to compile at load time.
type PatternError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("schemafile: field %q: invalid pattern %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Options supplies the collaborators a descriptor may reference.
type Options struct {
	// Patterns resolves named regex rules. Optional.
	Patterns *patterns.Registry

	// Funcs resolves named predicates for func rules. Optional.
	Funcs map[string]schema.Predicate
}

// Document is one parsed schema descriptor.
type Document struct {
	Record  string      `yaml:"record"`
	Records []string    `yaml:"records"`
	Enums   []string    `yaml:"enums"`
	Fields  []FieldSpec `yaml:"fields"`
}

// FieldSpec mirrors schema.Field in descriptor form.
type FieldSpec struct {
	Name    string     `yaml:"name"`
	Type    string     `yaml:"type"`
	Message string     `yaml:"message"`
	Groups  []any      `yaml:"groups"`
	Rules   []RuleSpec `yaml:"rules"`
}

// RuleSpec is one rule entry; exactly one spelling must be present.
type RuleSpec struct {
	NotBlank *MessageSpec `yaml:"not_blank"`
	NotEmpty *MessageSpec `yaml:"not_empty"`
	NoSpace  *MessageSpec `yaml:"no_space"`
	Regex    *RegexSpec   `yaml:"regex"`
	Range    *RangeSpec   `yaml:"range"`
	Size     *SizeSpec    `yaml:"size"`
	Within   *ListSpec    `yaml:"within"`
	Exclude  *ListSpec    `yaml:"exclude"`
	Required *MessageSpec `yaml:"required"`
	Func     *FuncSpec    `yaml:"func"`
	Deep     *bool        `yaml:"deep"`
}

type MessageSpec struct {
	Message string `yaml:"message"`
}

type RegexSpec struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

type RangeSpec struct {
	Min     any    `yaml:"min"`
	Max     any    `yaml:"max"`
	Message string `yaml:"message"`
}

type SizeSpec struct {
	Min     *int   `yaml:"min"`
	Max     *int   `yaml:"max"`
	Message string `yaml:"message"`
}

type ListSpec struct {
	Values  []any  `yaml:"values"`
	Message string `yaml:"message"`
}

type FuncSpec struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

// Parse reads one descriptor document. Unknown keys are errors.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if doc.Record == "" {
		return nil, ErrNoRecord
	}
	return &doc, nil
}

// ParseFile reads one descriptor document from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Compile turns the document into a compiled validator. The document's own
// record name and every name under records/enums are registered on a fresh
// classifier, so self- and cross-references among declared records resolve.
func (d *Document) Compile(opts Options) (*schema.Validator, error) {
	classifier := schema.NewClassifier().
		RegisterRecord(d.Record).
		RegisterRecord(d.Records...).
		RegisterEnum(d.Enums...)

	fields := make([]schema.Field, 0, len(d.Fields))
	for _, fs := range d.Fields {
		f, err := fs.build(opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return schema.Compile(classifier, d.Record, fields...)
}

func (fs FieldSpec) build(opts Options) (schema.Field, error) {
	f := schema.Field{Name: fs.Name, Type: fs.Type, Message: fs.Message}

	if len(fs.Groups) > 0 {
		f.Rules = append(f.Rules, schema.Groups(fs.Groups...))
	}

	for _, rs := range fs.Rules {
		rule, err := rs.build(fs.Name, opts)
		if err != nil {
			return f, err
		}
		f.Rules = append(f.Rules, rule)
	}

	return f, nil
}

func (rs RuleSpec) build(fieldName string, opts Options) (schema.Rule, error) {
	var (
		rule  schema.Rule
		err   error
		count int
	)
	set := func(r schema.Rule, e error) {
		count++
		rule, err = r, e
	}

	if rs.NotBlank != nil {
		set(schema.NotBlank(rs.NotBlank.Message), nil)
	}
	if rs.NotEmpty != nil {
		set(schema.NotEmpty(rs.NotEmpty.Message), nil)
	}
	if rs.NoSpace != nil {
		set(schema.NoSpace(rs.NoSpace.Message), nil)
	}
	if rs.Regex != nil {
		set(rs.Regex.build(fieldName, opts))
	}
	if rs.Range != nil {
		set(schema.Range(rs.Range.Min, rs.Range.Max, rs.Range.Message), nil)
	}
	if rs.Size != nil {
		set(schema.Size(orOpen(rs.Size.Min), orOpen(rs.Size.Max), rs.Size.Message), nil)
	}
	if rs.Within != nil {
		set(schema.Within(rs.Within.Values, rs.Within.Message), nil)
	}
	if rs.Exclude != nil {
		set(schema.Exclude(rs.Exclude.Values, rs.Exclude.Message), nil)
	}
	if rs.Required != nil {
		set(schema.Required(rs.Required.Message), nil)
	}
	if rs.Func != nil {
		fn, ok := opts.Funcs[rs.Func.Name]
		if !ok {
			set(schema.Rule{}, fmt.Errorf("%w: %q on field %q", ErrUnknownFunc, rs.Func.Name, fieldName))
		} else {
			set(schema.Func(fn, rs.Func.Message), nil)
		}
	}
	if rs.Deep != nil && *rs.Deep {
		set(schema.Deep(), nil)
	}

	if count == 0 {
		return rule, &RuleError{Field: fieldName, Reason: "rule entry names no known rule"}
	}
	if count > 1 {
		return rule, &RuleError{Field: fieldName, Reason: "rule entry names more than one rule"}
	}
	return rule, err
}

func (rg RegexSpec) build(fieldName string, opts Options) (schema.Rule, error) {
	switch {
	case rg.Name != "":
		if opts.Patterns == nil {
			return schema.Rule{}, fmt.Errorf("%w: %q on field %q (no registry supplied)", ErrUnknownPattern, rg.Name, fieldName)
		}
		id, ok := opts.Patterns.Resolve(rg.Name)
		if !ok {
			return schema.Rule{}, fmt.Errorf("%w: %q on field %q", ErrUnknownPattern, rg.Name, fieldName)
		}
		return schema.Regex(opts.Patterns.Matcher(id), rg.Message), nil

	default:
		re, err := regexp.Compile(rg.Pattern)
		if err != nil {
			return schema.Rule{}, &PatternError{Field: fieldName, Pattern: rg.Pattern, Err: err}
		}
		return schema.Regex(re, rg.Message), nil
	}
}

func orOpen(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}
