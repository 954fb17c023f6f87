// Package schemafile binds YAML schema descriptors to the schema compiler.
// It is the host-syntax collaborator: a descriptor document carries what an
// annotation parser would otherwise feed in — field names, declared types,
// ordered rules, group tags, and the field-level message that selects ANY
// mode.
//
//	record: User
//	records: [Address]
//	fields:
//	  - name: Code
//	    type: string
//	    rules:
//	      - size: {min: 5, max: 10, message: size bad}
//	      - no_space: {message: no space}
//	  - name: Home
//	    type: Address
//	    rules:
//	      - deep: true
//
// Regex rules accept either literal pattern text, compiled here so an
// invalid pattern fails at load time rather than at first match, or the
// name of an entry in a patterns.Registry. Custom predicates are referenced
// by name and resolved against the Funcs table supplied in Options.
//
// Parsing is strict: unknown document keys and unknown rule spellings are
// load errors, not silent no-ops.
package schemafile
