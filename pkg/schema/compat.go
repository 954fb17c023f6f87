package schema

// ruleCompatible accepts or rejects one rule against a field's category.
// The verdict is computed once per (rule kind, category) pair during
// compilation and never revisited at run time.
func ruleCompatible(record string, f Field, cat Category, r Rule) error {
	reject := func(allowed string) error {
		return &IncompatibleRuleError{
			Record:   record,
			Field:    f.Name,
			Rule:     r.kind,
			Category: cat,
			Allowed:  allowed,
		}
	}

	switch r.kind {
	case RuleNotBlank, RuleNoSpace, RuleRegex:
		if !cat.IsString() {
			return reject("String")
		}

	case RuleNotEmpty, RuleSize:
		if !cat.SupportsSize() {
			return reject("String, Sequence, Set, Mapping")
		}

	case RuleRange:
		if !cat.SupportsRange() {
			return reject("Integer, Float, Decimal, Temporal")
		}

	case RuleRequired:
		if !cat.IsOptional() {
			return reject("Optional(_)")
		}

	case RuleDeep:
		if !deepCompatible(cat) {
			return reject("CustomRecord, Sequence(CustomRecord), Set(CustomRecord)")
		}

	case RuleWithin, RuleExclude:
		if cat.Base() == KindUnsupported {
			return reject("any supported category")
		}

	case RuleFunc:
		// Func applies to every category, Unsupported included.

	case RuleGroups:
		// Structural; checked when tags are encoded.
	}

	return nil
}

// deepCompatible accepts a record directly, behind one Optional layer, or
// behind exactly one Sequence/Set layer (optionally under Optional). Deeper
// nesting is rejected here; the classifier has already ruled out nested
// collection wrappers.
func deepCompatible(cat Category) bool {
	eff := cat.underOptional()
	switch eff.Kind {
	case KindRecord:
		return true
	case KindSequence, KindSet:
		return eff.Elem.Kind == KindRecord
	default:
		return false
	}
}
