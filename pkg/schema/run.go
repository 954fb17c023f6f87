package schema

import (
	"fmt"
	"reflect"
)

// Check validates every field of rec in declaration order and returns nil
// on pass or the first failure. rec may be the record value or a pointer to
// it; passing a pointer lets nested dispatch reach pointer-receiver
// implementations of Validatable.
func (v *Validator) Check(rec any) error {
	return v.run(rec, "", false)
}

// CheckGroup validates only the fields participating in the requested
// group: untagged fields always run, tagged fields run when one of their
// tags equals the group. Skipped fields contribute neither a pass nor a
// fail.
func (v *Validator) CheckGroup(rec any, group any) error {
	key, err := groupKey(group)
	if err != nil {
		return &GroupValueError{Record: v.record, Group: group, Err: err}
	}
	return v.run(rec, key, true)
}

func (v *Validator) run(rec any, key string, scoped bool) error {
	rv, err := v.target(rec)
	if err != nil {
		return err
	}

	for i := range v.fields {
		p := &v.fields[i]
		if scoped && !p.runsInGroup(key) {
			continue
		}
		fv := rv.FieldByName(p.name)
		if !fv.IsValid() {
			return &FieldAccessError{Record: v.record, Field: p.name}
		}
		if err := v.runField(p, fv); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) target(rec any) (reflect.Value, error) {
	rv := reflect.ValueOf(rec)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rv, fmt.Errorf("%w: got nil %T", ErrInvalidTarget, rec)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return rv, fmt.Errorf("%w: got %T", ErrInvalidTarget, rec)
	}
	return rv, nil
}

// runField applies one field's compiled program: unwrap optionals, resolve
// the absent case, execute checks under the field's mode, then dispatch
// deep validation.
func (v *Validator) runField(p *fieldProgram, fv reflect.Value) error {
	value, present := unwrapOptional(p.cat, fv)

	if !present {
		// Absent optionals pass vacuously; Required is the only rule that
		// sees the absent state.
		if !p.hasRequired {
			return nil
		}
		if p.anyMode {
			return &Failure{Record: v.record, Field: p.name, Message: p.fieldMsg}
		}
		return &Failure{Record: v.record, Field: p.name, Message: p.requiredMsg}
	}

	if p.anyMode {
		if err := v.runAny(p, value); err != nil {
			return err
		}
	} else {
		if err := v.runAll(p, value); err != nil {
			return err
		}
	}

	return v.runDeep(p, value)
}

// runAll fails fast: the first failing check, in declaration order, decides
// the outcome and later checks never execute.
func (v *Validator) runAll(p *fieldProgram, value reflect.Value) error {
	for i := range p.checks {
		if !p.checks[i].eval(value) {
			return &Failure{Record: v.record, Field: p.name, Message: p.checks[i].msg}
		}
	}
	return nil
}

// runAny passes on the first passing check. A present value satisfies
// Required, so a field carrying it passes outright. Only the field-level
// message is ever surfaced.
func (v *Validator) runAny(p *fieldProgram, value reflect.Value) error {
	if p.hasRequired {
		return nil
	}
	if len(p.checks) == 0 {
		return nil
	}
	for i := range p.checks {
		if p.checks[i].eval(value) {
			return nil
		}
	}
	return &Failure{Record: v.record, Field: p.name, Message: p.fieldMsg}
}

// unwrapOptional dereferences leading Optional layers. present is false
// when any layer is nil.
func unwrapOptional(cat Category, fv reflect.Value) (reflect.Value, bool) {
	for cat.Kind == KindOptional {
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return fv, false
			}
			fv = fv.Elem()
		}
		cat = *cat.Elem
	}
	return fv, true
}
