// Package schema compiles declarative field-validation rules into
// executable validation procedures. Developers describe a record as a list
// of Field descriptors (name, declared type, ordered rules, optional
// field-level message) and receive a Validator that proves, before any data
// exists, that every rule is meaningful for its field's type.
//
// # Architecture
//
// Compilation is a one-shot, single-threaded pipeline: the Classifier maps
// each declared type to a Category, the compatibility checker accepts or
// rejects each (rule, category) pair, and the compiler assembles per-field
// programs under one of two pass/fail modes. Any rejection aborts the whole
// compilation with a typed schema error; a partially compiled validator is
// never produced. The resulting Validator reads only immutable compiled
// state and is safe for concurrent use.
//
// # Type classification
//
// Declared types use Go spellings: `*T` is Optional, `[]T` is Sequence,
// `map[T]struct{}` is Set, `map[K]V` is Mapping, with wrapper recursion
// capped at depth 5. The primitive table is closed (string, the integer and
// float widths, bool, decimal.Decimal, time.Time); record and enum types
// exist only by explicit RegisterRecord/RegisterEnum opt-in. Unknown names
// classify as Unsupported and accept no rule but Func.
//
// # Modes
//
// A field with a Message validates in ANY mode: it passes if at least one
// rule passes, and only the field message is ever surfaced. A field without
// one validates in ALL mode: every rule must carry its own message, rules
// run in declaration order, and the first failure short-circuits with that
// rule's message. Mixing field and rule messages, or omitting both, is a
// compile-time error.
//
// Optional fields skip every rule except Required while absent; a present
// value validates as the unwrapped inner type.
//
// # Groups
//
// Groups(tags...) scopes a field to named validation subsets. CheckGroup
// compares the requested group against tags through their canonical JSON
// encoding, so any encodable value type works as a group. Untagged fields
// run under every group.
//
// # Deep validation
//
// Deep() recurses into a nested record (or each element of a sequence or
// set of records) through the Validatable interface after the field's own
// rules pass. Nested failures propagate verbatim. Whether a nested type
// actually implements Validatable cannot be proven from its declared name,
// so a missing implementation surfaces as *DispatchError at run time; this
// and an invalid pattern in a pattern registry are the only configuration
// mistakes that escape compile-time detection. Set elements are visited in
// map iteration order, which Go leaves undefined.
//
// # Usage
//
//	v, err := schema.Compile(schema.NewClassifier(), "User",
//	    schema.Field{Name: "Code", Type: "string", Rules: []schema.Rule{
//	        schema.Size(5, 10, "size bad"),
//	        schema.NoSpace("no space"),
//	    }},
//	    schema.Field{Name: "Age", Type: "*int", Rules: []schema.Rule{
//	        schema.Required("age required"),
//	        schema.Range(18, 120, "age out of range"),
//	    }},
//	)
//	if err != nil {
//	    // schema error: incompatible rule, message contract, ...
//	}
//	if err := v.Check(&user); err != nil {
//	    // err.Error() is exactly the first failing rule's message
//	}
//
// Record types conventionally satisfy Validatable by delegating to their
// compiled validator, which also makes them reachable from Deep rules of
// enclosing records.
package schema
