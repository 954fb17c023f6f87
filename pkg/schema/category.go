package schema

// Kind identifies the semantic classification of a declared type, either a
// base kind or a wrapper kind carrying element categories.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDecimal
	KindTemporal
	KindRecord
	KindEnum
	KindOptional
	KindSequence
	KindSet
	KindMapping
)

var kindNames = map[Kind]string{
	KindUnsupported: "Unsupported",
	KindString:      "String",
	KindInteger:     "Integer",
	KindFloat:       "Float",
	KindBoolean:     "Boolean",
	KindDecimal:     "Decimal",
	KindTemporal:    "Temporal",
	KindRecord:      "CustomRecord",
	KindEnum:        "Enum",
	KindOptional:    "Optional",
	KindSequence:    "Sequence",
	KindSet:         "Set",
	KindMapping:     "Mapping",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unsupported"
}

// Category is the resolved classification of a declared field type. Wrapper
// kinds carry their element categories in Elem (and Key for mappings); base
// kinds carry nothing.
type Category struct {
	Kind Kind
	Key  *Category // mapping key, nil otherwise
	Elem *Category // wrapper element / mapping value, nil for base kinds
}

func unsupported() Category {
	return Category{Kind: KindUnsupported}
}

func (c Category) String() string {
	switch c.Kind {
	case KindOptional, KindSequence, KindSet:
		return c.Kind.String() + "(" + c.Elem.String() + ")"
	case KindMapping:
		return c.Kind.String() + "(" + c.Key.String() + ", " + c.Elem.String() + ")"
	default:
		return c.Kind.String()
	}
}

// Base returns the innermost non-wrapper kind. For mappings the key's base
// kind is reported.
func (c Category) Base() Kind {
	switch c.Kind {
	case KindOptional, KindSequence, KindSet:
		return c.Elem.Base()
	case KindMapping:
		return c.Key.Base()
	default:
		return c.Kind
	}
}

// IsOptional reports whether the outermost layer is Optional.
func (c Category) IsOptional() bool {
	return c.Kind == KindOptional
}

// underOptional strips leading Optional layers. A present optional value is
// validated as if the field had been declared with the unwrapped type.
func (c Category) underOptional() Category {
	for c.Kind == KindOptional {
		c = *c.Elem
	}
	return c
}

// IsCollection reports whether the category, ignoring leading Optional
// layers, is a Sequence, Set, or Mapping.
func (c Category) IsCollection() bool {
	switch c.underOptional().Kind {
	case KindSequence, KindSet, KindMapping:
		return true
	default:
		return false
	}
}

// IsString reports whether the category, ignoring leading Optional layers,
// is the bare String kind.
func (c Category) IsString() bool {
	return c.underOptional().Kind == KindString
}

// SupportsRange reports whether Range rules are meaningful for this
// category: ordered scalar bases not hidden behind a collection.
func (c Category) SupportsRange() bool {
	switch c.underOptional().Kind {
	case KindInteger, KindFloat, KindDecimal, KindTemporal:
		return true
	default:
		return false
	}
}

// SupportsSize reports whether Size and NotEmpty rules are meaningful:
// strings and collections, including either behind Optional layers.
func (c Category) SupportsSize() bool {
	return c.IsString() || c.IsCollection()
}

// Valid reports whether no part of the category resolved to Unsupported.
func (c Category) Valid() bool {
	switch c.Kind {
	case KindUnsupported:
		return false
	case KindOptional, KindSequence, KindSet:
		return c.Elem.Valid()
	case KindMapping:
		return c.Key.Valid() && c.Elem.Valid()
	default:
		return true
	}
}
