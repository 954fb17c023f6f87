package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/checkkit/pkg/checks"
)

// Validator is an immutable compiled validation procedure for one record
// type. Compilation either fully succeeds or aborts with a schema error; a
// Validator is therefore always safe to share across goroutines.
type Validator struct {
	record string
	fields []fieldProgram
}

// Record returns the record name the validator was compiled for.
func (v *Validator) Record() string { return v.record }

type fieldProgram struct {
	name        string
	cat         Category
	anyMode     bool
	fieldMsg    string
	checks      []compiledCheck
	hasRequired bool
	requiredMsg string
	deep        deepMode
	groupKeys   []string
}

// compiledCheck is one executable rule body. eval receives the field value
// with leading Optional layers already unwrapped and reports pass/fail.
type compiledCheck struct {
	kind RuleKind
	msg  string
	eval func(v reflect.Value) bool
}

// Compile turns field descriptors into a validation procedure for the named
// record. Every rule is proven compatible with its field's declared type
// before any value exists; the first incompatibility, message-contract
// violation, or malformed value aborts compilation.
func Compile(c *Classifier, record string, fields ...Field) (*Validator, error) {
	if c == nil {
		c = NewClassifier()
	}

	v := &Validator{record: record, fields: make([]fieldProgram, 0, len(fields))}
	for _, f := range fields {
		p, err := compileField(c, record, f)
		if err != nil {
			return nil, err
		}
		v.fields = append(v.fields, p)
	}
	return v, nil
}

func compileField(c *Classifier, record string, f Field) (fieldProgram, error) {
	cat := c.Classify(f.Type)
	p := fieldProgram{
		name:     f.Name,
		cat:      cat,
		anyMode:  f.Message != "",
		fieldMsg: f.Message,
	}

	for _, r := range f.Rules {
		if err := ruleCompatible(record, f, cat, r); err != nil {
			return p, err
		}

		if !r.kind.structural() {
			if p.anyMode && r.message != "" {
				return p, &ConflictingMessageError{Record: record, Field: f.Name, Rule: r.kind}
			}
			if !p.anyMode && r.message == "" {
				return p, &MissingMessageError{Record: record, Field: f.Name, Rule: r.kind}
			}
		}

		switch r.kind {
		case RuleGroups:
			keys, err := encodeTags(record, f.Name, r.tags)
			if err != nil {
				return p, err
			}
			p.groupKeys = append(p.groupKeys, keys...)

		case RuleDeep:
			p.deep = deepModeFor(cat)

		case RuleRequired:
			p.hasRequired = true
			p.requiredMsg = r.message

		default:
			chk, err := compileCheck(record, f, cat, r)
			if err != nil {
				return p, err
			}
			p.checks = append(p.checks, chk)
		}
	}

	return p, nil
}

func compileCheck(record string, f Field, cat Category, r Rule) (compiledCheck, error) {
	chk := compiledCheck{kind: r.kind, msg: r.message}
	eff := cat.underOptional()

	switch r.kind {
	case RuleNotBlank:
		chk.eval = func(v reflect.Value) bool { return !checks.IsBlank(v.String()) }

	case RuleNoSpace:
		chk.eval = func(v reflect.Value) bool { return !checks.HasSpace(v.String()) }

	case RuleNotEmpty:
		if eff.Kind == KindString {
			chk.eval = func(v reflect.Value) bool { return !checks.IsEmpty(v.String()) }
		} else {
			chk.eval = func(v reflect.Value) bool { return v.Len() > 0 }
		}

	case RuleRegex:
		if r.re == nil {
			return chk, fmt.Errorf("%w: %s.%s", ErrNilMatcher, record, f.Name)
		}
		re := r.re
		chk.eval = func(v reflect.Value) bool { return re.MatchString(v.String()) }

	case RuleSize:
		min, max := r.sizeMin, r.sizeMax
		if eff.Kind == KindString {
			chk.eval = func(v reflect.Value) bool {
				return checks.SizeWithin(checks.RuneLen(v.String()), min, max)
			}
		} else {
			chk.eval = func(v reflect.Value) bool { return checks.SizeWithin(v.Len(), min, max) }
		}

	case RuleRange:
		eval, err := compileRange(record, f, eff.Kind, r)
		if err != nil {
			return chk, err
		}
		chk.eval = eval

	case RuleWithin, RuleExclude:
		eval, err := compileMembership(record, f, cat, r)
		if err != nil {
			return chk, err
		}
		chk.eval = eval

	case RuleFunc:
		if r.fn == nil {
			return chk, fmt.Errorf("%w: %s.%s", ErrNilPredicate, record, f.Name)
		}
		fn := r.fn
		chk.eval = func(v reflect.Value) bool { return fn(v.Interface()) }
	}

	return chk, nil
}

// compileRange binds the rule's bounds to the category's comparison domain
// once, at compile time; run-time evaluation only compares.
func compileRange(record string, f Field, base Kind, r Rule) (func(reflect.Value) bool, error) {
	boundErr := func(value any) error {
		return &ValueTypeError{Record: record, Field: f.Name, Rule: RuleRange, Value: value, Category: Category{Kind: base}}
	}

	switch base {
	case KindInteger:
		min, ok := toInt64(r.min)
		if !ok {
			return nil, boundErr(r.min)
		}
		max, ok := toInt64(r.max)
		if !ok {
			return nil, boundErr(r.max)
		}
		return func(v reflect.Value) bool {
			var n int64
			switch v.Kind() {
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				n = int64(v.Uint())
			default:
				n = v.Int()
			}
			return checks.InRange(n, min, max)
		}, nil

	case KindFloat:
		min, ok := toFloat64(r.min)
		if !ok {
			return nil, boundErr(r.min)
		}
		max, ok := toFloat64(r.max)
		if !ok {
			return nil, boundErr(r.max)
		}
		return func(v reflect.Value) bool {
			return checks.InRange(v.Float(), min, max)
		}, nil

	case KindDecimal:
		min, ok := toDecimal(r.min)
		if !ok {
			return nil, boundErr(r.min)
		}
		max, ok := toDecimal(r.max)
		if !ok {
			return nil, boundErr(r.max)
		}
		return func(v reflect.Value) bool {
			d, ok := v.Interface().(decimal.Decimal)
			return ok && checks.DecimalInRange(d, min, max)
		}, nil

	case KindTemporal:
		min, ok := toTime(r.min)
		if !ok {
			return nil, boundErr(r.min)
		}
		max, ok := toTime(r.max)
		if !ok {
			return nil, boundErr(r.max)
		}
		return func(v reflect.Value) bool {
			ts, ok := v.Interface().(time.Time)
			return ok && checks.TimeInRange(ts, min, max)
		}, nil
	}

	// ruleCompatible already excluded everything else.
	return nil, boundErr(nil)
}

// compileMembership normalizes the listed values against the field's
// category at compile time; a value of the wrong shape fails compilation,
// not the first run.
func compileMembership(record string, f Field, cat Category, r Rule) (func(reflect.Value) bool, error) {
	eff := cat.underOptional()
	base := eff.Kind
	if isWrapper(base) {
		// Whole-value comparison for collections goes through the
		// canonical encoding, same as enums and records.
		base = KindRecord
	}

	normalized := make([]any, 0, len(r.values))
	for _, value := range r.values {
		n, ok := normalizeValue(value, base)
		if !ok {
			return nil, &ValueTypeError{Record: record, Field: f.Name, Rule: r.kind, Value: value, Category: cat}
		}
		normalized = append(normalized, n)
	}

	within := func(v reflect.Value) bool {
		actual, ok := normalizeReflect(v, base)
		if !ok {
			return false
		}
		for _, n := range normalized {
			if equalNormalized(actual, n) {
				return true
			}
		}
		return false
	}

	if r.kind == RuleExclude {
		return func(v reflect.Value) bool { return !within(v) }, nil
	}
	return within, nil
}

// normalizeValue maps a declared value onto the category's comparison
// domain: scalars convert strictly, everything else must have a canonical
// encoding.
func normalizeValue(value any, base Kind) (any, bool) {
	switch base {
	case KindString:
		s, ok := value.(string)
		return s, ok
	case KindInteger:
		n, ok := toInt64(value)
		if !ok || n == nil {
			return nil, false
		}
		return *n, true
	case KindFloat:
		fv, ok := toFloat64(value)
		if !ok || fv == nil {
			return nil, false
		}
		return *fv, true
	case KindBoolean:
		b, ok := value.(bool)
		return b, ok
	case KindDecimal:
		d, ok := toDecimal(value)
		if !ok || d == nil {
			return nil, false
		}
		return *d, true
	case KindTemporal:
		ts, ok := toTime(value)
		if !ok || ts == nil {
			return nil, false
		}
		return *ts, true
	default:
		key, err := groupKey(value)
		return key, err == nil
	}
}

func normalizeReflect(v reflect.Value, base Kind) (any, bool) {
	switch base {
	case KindString:
		return v.String(), true
	case KindInteger:
		switch v.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(v.Uint()), true
		default:
			return v.Int(), true
		}
	case KindFloat:
		return v.Float(), true
	case KindBoolean:
		return v.Bool(), true
	case KindDecimal:
		d, ok := v.Interface().(decimal.Decimal)
		return d, ok
	case KindTemporal:
		ts, ok := v.Interface().(time.Time)
		return ts, ok
	default:
		key, err := groupKey(v.Interface())
		return key, err == nil
	}
}

func equalNormalized(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}

// Bound conversions. A nil input is an open bound, reported as (nil, true).

func toInt64(value any) (*int64, bool) {
	if value == nil {
		return nil, true
	}
	var n int64
	switch x := value.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		n = int64(x)
	default:
		return nil, false
	}
	return &n, true
}

func toFloat64(value any) (*float64, bool) {
	if value == nil {
		return nil, true
	}
	var fv float64
	switch x := value.(type) {
	case float32:
		fv = float64(x)
	case float64:
		fv = x
	case int:
		fv = float64(x)
	case int32:
		fv = float64(x)
	case int64:
		fv = float64(x)
	default:
		return nil, false
	}
	return &fv, true
}

func toDecimal(value any) (*decimal.Decimal, bool) {
	if value == nil {
		return nil, true
	}
	switch x := value.(type) {
	case decimal.Decimal:
		return &x, true
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return nil, false
		}
		return &d, true
	case int:
		d := decimal.NewFromInt(int64(x))
		return &d, true
	case int64:
		d := decimal.NewFromInt(x)
		return &d, true
	case float64:
		d := decimal.NewFromFloat(x)
		return &d, true
	default:
		return nil, false
	}
}

func toTime(value any) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	switch x := value.(type) {
	case time.Time:
		return &x, true
	case string:
		ts, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return nil, false
		}
		return &ts, true
	default:
		return nil, false
	}
}
