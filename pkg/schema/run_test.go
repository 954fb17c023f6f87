package schema_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/schema"
)

func mustCompile(t *testing.T, c *schema.Classifier, record string, fields ...schema.Field) *schema.Validator {
	t.Helper()
	v, err := schema.Compile(c, record, fields...)
	require.NoError(t, err)
	return v
}

func assertFail(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, schema.IsFailure(err), "expected a validation failure, got %v", err)
	assert.Equal(t, message, err.Error())
}

func TestCheckAllMode(t *testing.T) {
	c := schema.NewClassifier()

	t.Run("declared size then no_space order decides the message", func(t *testing.T) {
		v := mustCompile(t, c, "Form", schema.Field{
			Name: "Code",
			Type: "string",
			Rules: []schema.Rule{
				schema.Size(5, 10, "size bad"),
				schema.NoSpace("no space"),
			},
		})

		type Form struct{ Code string }

		assert.NoError(t, v.Check(Form{Code: "abcdef"}))
		assertFail(t, v.Check(Form{Code: "ab"}), "size bad")
		// both length and spacing are wrong; the earlier rule wins
		assertFail(t, v.Check(Form{Code: "a b"}), "size bad")
		// length passes, spacing fails
		assertFail(t, v.Check(Form{Code: "abc def"}), "no space")
	})

	t.Run("first failure short-circuits later rules", func(t *testing.T) {
		var calls []int
		probe := func(n int, pass bool) schema.Predicate {
			return func(any) bool {
				calls = append(calls, n)
				return pass
			}
		}
		v := mustCompile(t, c, "Rec", schema.Field{
			Name: "N",
			Type: "int",
			Rules: []schema.Rule{
				schema.Func(probe(1, true), "one"),
				schema.Func(probe(2, false), "two"),
				schema.Func(probe(3, true), "three"),
			},
		})

		type Rec struct{ N int }
		assertFail(t, v.Check(Rec{N: 7}), "two")
		assert.Equal(t, []int{1, 2}, calls, "rules after the failing one must not run")
	})

	t.Run("sibling fields stop after the first failing field", func(t *testing.T) {
		var laterRan bool
		v := mustCompile(t, c, "Rec",
			schema.Field{Name: "A", Type: "string", Rules: []schema.Rule{schema.NotBlank("a blank")}},
			schema.Field{Name: "B", Type: "string", Rules: []schema.Rule{
				schema.Func(func(any) bool { laterRan = true; return true }, "b bad"),
			}},
		)

		type Rec struct{ A, B string }
		assertFail(t, v.Check(Rec{A: "", B: "x"}), "a blank")
		assert.False(t, laterRan)
	})
}

func TestCheckAnyMode(t *testing.T) {
	c := schema.NewClassifier()

	anyField := schema.Field{
		Name:    "Contact",
		Type:    "string",
		Message: "contact must be an email or a phone",
		Rules: []schema.Rule{
			schema.Func(func(v any) bool { s := v.(string); return len(s) > 0 && s[0] == '@' }, ""),
			schema.Func(func(v any) bool { s := v.(string); return len(s) > 0 && s[0] == '+' }, ""),
		},
	}

	type Rec struct{ Contact string }

	t.Run("passes when at least one rule passes", func(t *testing.T) {
		v := mustCompile(t, c, "Rec", anyField)
		assert.NoError(t, v.Check(Rec{Contact: "@user"}))
		assert.NoError(t, v.Check(Rec{Contact: "+15550100"}))
	})

	t.Run("fails with the field message when all rules fail", func(t *testing.T) {
		v := mustCompile(t, c, "Rec", anyField)
		assertFail(t, v.Check(Rec{Contact: "nope"}), "contact must be an email or a phone")
	})
}

func TestCheckOptional(t *testing.T) {
	c := schema.NewClassifier()
	type Rec struct{ Nick *string }

	t.Run("absent optional without required passes vacuously", func(t *testing.T) {
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Nick",
			Type:  "*string",
			Rules: []schema.Rule{schema.Size(3, 10, "size bad"), schema.NoSpace("no space")},
		})
		assert.NoError(t, v.Check(Rec{Nick: nil}))
	})

	t.Run("absent optional with required fails with its message", func(t *testing.T) {
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Nick",
			Type:  "*string",
			Rules: []schema.Rule{schema.Required("nick required"), schema.Size(3, 10, "size bad")},
		})
		assertFail(t, v.Check(Rec{Nick: nil}), "nick required")
	})

	t.Run("present optional validates the inner value", func(t *testing.T) {
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Nick",
			Type:  "*string",
			Rules: []schema.Rule{schema.Required("nick required"), schema.Size(3, 10, "size bad")},
		})
		ok := "neo"
		bad := "x"
		assert.NoError(t, v.Check(Rec{Nick: &ok}))
		assertFail(t, v.Check(Rec{Nick: &bad}), "size bad")
	})

	t.Run("absent optional in any mode fails only when required", func(t *testing.T) {
		withRequired := mustCompile(t, c, "Rec", schema.Field{
			Name:    "Nick",
			Type:    "*string",
			Message: "nick invalid",
			Rules:   []schema.Rule{schema.Required(""), schema.NotBlank("")},
		})
		assertFail(t, withRequired.Check(Rec{Nick: nil}), "nick invalid")

		without := mustCompile(t, c, "Rec", schema.Field{
			Name:    "Nick",
			Type:    "*string",
			Message: "nick invalid",
			Rules:   []schema.Rule{schema.NotBlank("")},
		})
		assert.NoError(t, without.Check(Rec{Nick: nil}))
	})
}

func TestCheckScalarRules(t *testing.T) {
	c := schema.NewClassifier()

	t.Run("integer range", func(t *testing.T) {
		type Rec struct{ Age int }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Age",
			Type:  "int",
			Rules: []schema.Rule{schema.Range(18, 120, "age out of range")},
		})
		assert.NoError(t, v.Check(Rec{Age: 18}))
		assert.NoError(t, v.Check(Rec{Age: 120}))
		assertFail(t, v.Check(Rec{Age: 17}), "age out of range")
		assertFail(t, v.Check(Rec{Age: 121}), "age out of range")
	})

	t.Run("open bounds", func(t *testing.T) {
		type Rec struct{ Age int }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Age",
			Type:  "int",
			Rules: []schema.Rule{schema.Range(0, nil, "negative")},
		})
		assert.NoError(t, v.Check(Rec{Age: 1 << 40}))
		assertFail(t, v.Check(Rec{Age: -1}), "negative")
	})

	t.Run("decimal range", func(t *testing.T) {
		type Rec struct{ Price decimal.Decimal }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Price",
			Type:  "decimal.Decimal",
			Rules: []schema.Rule{schema.Range("0.01", "99.99", "price out of range")},
		})
		assert.NoError(t, v.Check(Rec{Price: decimal.RequireFromString("10.50")}))
		assertFail(t, v.Check(Rec{Price: decimal.Zero}), "price out of range")
	})

	t.Run("temporal range", func(t *testing.T) {
		type Rec struct{ Born time.Time }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Born",
			Type:  "time.Time",
			Rules: []schema.Rule{schema.Range("1900-01-01T00:00:00Z", "2026-01-01T00:00:00Z", "born out of range")},
		})
		assert.NoError(t, v.Check(Rec{Born: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)}))
		assertFail(t, v.Check(Rec{Born: time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC)}), "born out of range")
	})

	t.Run("string membership", func(t *testing.T) {
		type Rec struct{ Plan string }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Plan",
			Type:  "string",
			Rules: []schema.Rule{schema.Within([]any{"free", "pro", "team"}, "unknown plan")},
		})
		assert.NoError(t, v.Check(Rec{Plan: "pro"}))
		assertFail(t, v.Check(Rec{Plan: "gold"}), "unknown plan")
	})

	t.Run("integer exclusion", func(t *testing.T) {
		type Rec struct{ Port int }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Port",
			Type:  "int",
			Rules: []schema.Rule{schema.Exclude([]any{0, 22, 80}, "reserved port")},
		})
		assert.NoError(t, v.Check(Rec{Port: 8080}))
		assertFail(t, v.Check(Rec{Port: 22}), "reserved port")
	})

	t.Run("collection emptiness and size", func(t *testing.T) {
		type Rec struct{ Tags []string }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Tags",
			Type:  "[]string",
			Rules: []schema.Rule{schema.NotEmpty("tags empty"), schema.Size(-1, 3, "too many tags")},
		})
		assert.NoError(t, v.Check(Rec{Tags: []string{"a"}}))
		assertFail(t, v.Check(Rec{Tags: nil}), "tags empty")
		assertFail(t, v.Check(Rec{Tags: []string{"a", "b", "c", "d"}}), "too many tags")
	})

	t.Run("string size counts runes", func(t *testing.T) {
		type Rec struct{ Name string }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name:  "Name",
			Type:  "string",
			Rules: []schema.Rule{schema.Size(2, 4, "size bad")},
		})
		assert.NoError(t, v.Check(Rec{Name: "日本語"}))
	})

	t.Run("func on an unsupported foreign type", func(t *testing.T) {
		type Rec struct{ ID uuid.UUID }
		v := mustCompile(t, c, "Rec", schema.Field{
			Name: "ID",
			Type: "uuid.UUID",
			Rules: []schema.Rule{
				schema.Func(func(v any) bool { return v.(uuid.UUID) != uuid.Nil }, "id required"),
			},
		})
		assert.NoError(t, v.Check(Rec{ID: uuid.New()}))
		assertFail(t, v.Check(Rec{ID: uuid.Nil}), "id required")
	})
}

func TestCheckTarget(t *testing.T) {
	c := schema.NewClassifier()
	v := mustCompile(t, c, "Rec", schema.Field{
		Name:  "Name",
		Type:  "string",
		Rules: []schema.Rule{schema.NotBlank("blank")},
	})

	t.Run("accepts value and pointer targets", func(t *testing.T) {
		type Rec struct{ Name string }
		assert.NoError(t, v.Check(Rec{Name: "x"}))
		assert.NoError(t, v.Check(&Rec{Name: "x"}))
	})

	t.Run("rejects non-struct targets", func(t *testing.T) {
		assert.ErrorIs(t, v.Check(42), schema.ErrInvalidTarget)
		assert.ErrorIs(t, v.Check((*struct{ Name string })(nil)), schema.ErrInvalidTarget)
	})

	t.Run("reports missing fields", func(t *testing.T) {
		type Other struct{ Title string }
		err := v.Check(Other{Title: "x"})
		var fae *schema.FieldAccessError
		require.ErrorAs(t, err, &fae)
		assert.Equal(t, "Name", fae.Field)
	})
}
