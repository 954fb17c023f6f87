// Package patterns provides a process-lifetime registry of named regular
// expressions compiled lazily, exactly once, on first use.
//
// A Registry is built from an ordered list of named pattern sources and
// offers three lookup surfaces: Resolve maps a literal name to its stable
// identifier, Names enumerates every registered name in declaration order,
// and Matcher returns the shared compiled expression for an identifier.
//
// # Concurrency
//
// Compilation of each entry is guarded by a sync.Once: whichever goroutine
// reaches Matcher first compiles the pattern, every concurrent and later
// caller observes the same fully initialized *regexp.Regexp, and the source
// is never recompiled. Everything else in the registry is immutable after
// New returns.
//
// # Fatal condition
//
// Pattern sources are NOT validated at registration. An entry whose source
// text is not a valid regular expression panics at its first Matcher call —
// this is the one place a configuration-time mistake surfaces as a run-time
// fault. Registries built from trusted literal constants keep this purely
// theoretical; sources arriving from descriptors should be compiled at load
// time instead (see pkg/schemafile).
package patterns
