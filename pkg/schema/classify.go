package schema

import "strings"

// maxWrapperDepth bounds wrapper recursion during classification. Types
// nested deeper resolve to Unsupported rather than recursing without limit.
const maxWrapperDepth = 5

// primitiveKinds is the closed table of supported primitive identifiers.
// Classification never falls back to name heuristics: a type is either
// listed here, registered on the classifier, or Unsupported.
var primitiveKinds = map[string]Kind{
	"string":          KindString,
	"int":             KindInteger,
	"int8":            KindInteger,
	"int16":           KindInteger,
	"int32":           KindInteger,
	"int64":           KindInteger,
	"uint":            KindInteger,
	"uint8":           KindInteger,
	"uint16":          KindInteger,
	"uint32":          KindInteger,
	"uint64":          KindInteger,
	"float32":         KindFloat,
	"float64":         KindFloat,
	"bool":            KindBoolean,
	"decimal.Decimal": KindDecimal,
	"time.Time":       KindTemporal,
}

// Classifier maps declared type expressions to categories. Record and enum
// types participate only after explicit registration; unknown identifiers
// classify as Unsupported, never as records by exclusion.
//
// A Classifier is immutable once handed to Compile; register everything
// before compiling.
type Classifier struct {
	records map[string]struct{}
	enums   map[string]struct{}
}

// NewClassifier returns a classifier that knows the primitive table and no
// custom types.
func NewClassifier() *Classifier {
	return &Classifier{
		records: make(map[string]struct{}),
		enums:   make(map[string]struct{}),
	}
}

// RegisterRecord opts type names in as CustomRecord categories.
func (c *Classifier) RegisterRecord(names ...string) *Classifier {
	for _, name := range names {
		c.records[name] = struct{}{}
	}
	return c
}

// RegisterEnum opts type names in as Enum categories.
func (c *Classifier) RegisterEnum(names ...string) *Classifier {
	for _, name := range names {
		c.enums[name] = struct{}{}
	}
	return c
}

// Classify resolves a declared type expression to its category. Supported
// spellings follow Go declarations: `*T` is Optional, `[]T` is Sequence,
// `map[T]struct{}` is Set, and `map[K]V` is Mapping. Anything the
// classifier cannot prove supported resolves to Unsupported.
func (c *Classifier) Classify(expr string) Category {
	return c.classify(strings.TrimSpace(expr), 0)
}

func (c *Classifier) classify(expr string, depth int) Category {
	if depth > maxWrapperDepth || expr == "" {
		return unsupported()
	}

	switch {
	case strings.HasPrefix(expr, "*"):
		inner := c.classify(strings.TrimSpace(expr[1:]), depth+1)
		if !inner.Valid() {
			return unsupported()
		}
		return Category{Kind: KindOptional, Elem: &inner}

	case strings.HasPrefix(expr, "[]"):
		inner := c.classify(strings.TrimSpace(expr[2:]), depth+1)
		// Sequence elements must be base categories; nested wrappers
		// inside a collection are not checkable.
		if !inner.Valid() || isWrapper(inner.Kind) {
			return unsupported()
		}
		return Category{Kind: KindSequence, Elem: &inner}

	case strings.HasPrefix(expr, "map["):
		keyExpr, valExpr, ok := splitMapExpr(expr)
		if !ok {
			return unsupported()
		}
		key := c.classify(keyExpr, depth+1)
		if !key.Valid() || isWrapper(key.Kind) {
			return unsupported()
		}
		if valExpr == "struct{}" {
			return Category{Kind: KindSet, Elem: &key}
		}
		val := c.classify(valExpr, depth+1)
		if !val.Valid() || isWrapper(val.Kind) {
			return unsupported()
		}
		return Category{Kind: KindMapping, Key: &key, Elem: &val}

	default:
		return c.classifyIdent(expr)
	}
}

func (c *Classifier) classifyIdent(name string) Category {
	if kind, ok := primitiveKinds[name]; ok {
		return Category{Kind: kind}
	}
	if _, ok := c.records[name]; ok {
		return Category{Kind: KindRecord}
	}
	if _, ok := c.enums[name]; ok {
		return Category{Kind: KindEnum}
	}
	return unsupported()
}

func isWrapper(k Kind) bool {
	switch k {
	case KindOptional, KindSequence, KindSet, KindMapping:
		return true
	default:
		return false
	}
}

// splitMapExpr splits "map[K]V" into K and V, honoring nested brackets in
// the key expression.
func splitMapExpr(expr string) (key, val string, ok bool) {
	rest := expr[len("map["):]
	depth := 1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				key = strings.TrimSpace(rest[:i])
				val = strings.TrimSpace(rest[i+1:])
				return key, val, key != "" && val != ""
			}
		}
	}
	return "", "", false
}
