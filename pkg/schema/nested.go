package schema

import "reflect"

// Validatable is the capability a record type exposes to opt into the
// framework. Check validates every field; CheckGroup validates only the
// fields participating in the given group. Both return nil on pass and a
// *Failure carrying the first failing condition's message otherwise.
//
// Deep validation dispatches through this interface: a nested record, or
// each element of a collection of records, is asked to Check itself after
// the owning field's own rules pass.
type Validatable interface {
	Check() error
	CheckGroup(group any) error
}

// deepMode is resolved at compile time from the field's category so the
// runner never re-inspects the type shape.
type deepMode uint8

const (
	deepNone deepMode = iota
	deepDirect
	deepElements
)

func deepModeFor(cat Category) deepMode {
	switch cat.underOptional().Kind {
	case KindRecord:
		return deepDirect
	case KindSequence, KindSet:
		return deepElements
	default:
		return deepNone
	}
}

// runDeep recurses into nested records after the field's own rules passed.
// A nested failure propagates verbatim, no wrapping and no re-messaging,
// and stops validation of sibling fields and later elements alike.
func (v *Validator) runDeep(p *fieldProgram, value reflect.Value) error {
	switch p.deep {
	case deepDirect:
		return v.dispatch(p, value)

	case deepElements:
		switch value.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < value.Len(); i++ {
				if err := v.dispatch(p, value.Index(i)); err != nil {
					return err
				}
			}
		case reflect.Map:
			iter := value.MapRange()
			for iter.Next() {
				if err := v.dispatch(p, iter.Key()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// dispatch asks one nested value to validate itself. The value receiver
// form is tried first; when the field is addressable (the caller passed a
// pointer to the record) the pointer form is tried as well.
func (v *Validator) dispatch(p *fieldProgram, value reflect.Value) error {
	if va, ok := value.Interface().(Validatable); ok {
		return va.Check()
	}
	if value.CanAddr() {
		if va, ok := value.Addr().Interface().(Validatable); ok {
			return va.Check()
		}
	}
	return &DispatchError{Record: v.record, Field: p.name, Type: value.Type().String()}
}
