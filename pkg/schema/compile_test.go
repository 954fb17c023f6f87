package schema_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/schema"
)

func field(name, typ string, rules ...schema.Rule) schema.Field {
	return schema.Field{Name: name, Type: typ, Rules: rules}
}

func TestCompileIncompatibleRules(t *testing.T) {
	c := schema.NewClassifier().RegisterRecord("Address")

	assertIncompatible := func(t *testing.T, f schema.Field, rule schema.RuleKind) {
		t.Helper()
		_, err := schema.Compile(c, "Rec", f)
		require.Error(t, err)
		var ire *schema.IncompatibleRuleError
		require.ErrorAs(t, err, &ire)
		assert.Equal(t, f.Name, ire.Field)
		assert.Equal(t, rule, ire.Rule)
		assert.NotEmpty(t, ire.Allowed)
	}

	t.Run("not_blank needs a string", func(t *testing.T) {
		assertIncompatible(t, field("N", "int", schema.NotBlank("m")), schema.RuleNotBlank)
	})

	t.Run("no_space needs a string", func(t *testing.T) {
		assertIncompatible(t, field("N", "[]string", schema.NoSpace("m")), schema.RuleNoSpace)
	})

	t.Run("regex needs a string", func(t *testing.T) {
		re := regexp.MustCompile(`^x$`)
		assertIncompatible(t, field("N", "bool", schema.Regex(re, "m")), schema.RuleRegex)
	})

	t.Run("not_empty needs a string or collection", func(t *testing.T) {
		assertIncompatible(t, field("N", "int", schema.NotEmpty("m")), schema.RuleNotEmpty)
	})

	t.Run("range needs an ordered scalar", func(t *testing.T) {
		assertIncompatible(t, field("N", "string", schema.Range(1, 2, "m")), schema.RuleRange)
		assertIncompatible(t, field("N", "bool", schema.Range(1, 2, "m")), schema.RuleRange)
		assertIncompatible(t, field("N", "[]int", schema.Range(1, 2, "m")), schema.RuleRange)
	})

	t.Run("size needs a string or collection", func(t *testing.T) {
		assertIncompatible(t, field("N", "float64", schema.Size(1, 2, "m")), schema.RuleSize)
	})

	t.Run("required needs an outer optional", func(t *testing.T) {
		assertIncompatible(t, field("N", "string", schema.Required("m")), schema.RuleRequired)
	})

	t.Run("deep needs records", func(t *testing.T) {
		assertIncompatible(t, field("N", "string", schema.Deep()), schema.RuleDeep)
		assertIncompatible(t, field("N", "[]string", schema.Deep()), schema.RuleDeep)
		// two collection layers never classify, so deep is rejected there too
		assertIncompatible(t, field("N", "[][]Address", schema.Deep()), schema.RuleDeep)
	})

	t.Run("deep accepts one wrapper layer", func(t *testing.T) {
		for _, typ := range []string{"Address", "*Address", "[]Address", "map[Address]struct{}", "*[]Address"} {
			_, err := schema.Compile(c, "Rec", field("N", typ, schema.Deep()))
			assert.NoError(t, err, typ)
		}
	})

	t.Run("unsupported category accepts only func", func(t *testing.T) {
		assertIncompatible(t, field("N", "Mystery", schema.Within([]any{1}, "m")), schema.RuleWithin)
		assertIncompatible(t, field("N", "Mystery", schema.NotBlank("m")), schema.RuleNotBlank)

		_, err := schema.Compile(c, "Rec", field("N", "Mystery", schema.Func(func(any) bool { return true }, "m")))
		assert.NoError(t, err)
	})
}

func TestCompileMessageContract(t *testing.T) {
	c := schema.NewClassifier()

	t.Run("all mode requires per-rule messages", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("Name", "string", schema.NotBlank("")))
		require.Error(t, err)
		var mme *schema.MissingMessageError
		require.ErrorAs(t, err, &mme)
		assert.Equal(t, "Name", mme.Field)
		assert.Equal(t, schema.RuleNotBlank, mme.Rule)
	})

	t.Run("any mode forbids per-rule messages", func(t *testing.T) {
		f := schema.Field{
			Name:    "Name",
			Type:    "string",
			Message: "name invalid",
			Rules:   []schema.Rule{schema.NotBlank("rule msg")},
		}
		_, err := schema.Compile(c, "Rec", f)
		require.Error(t, err)
		var cme *schema.ConflictingMessageError
		require.ErrorAs(t, err, &cme)
		assert.Equal(t, "Name", cme.Field)
	})

	t.Run("structural rules carry no message in either mode", func(t *testing.T) {
		cr := schema.NewClassifier().RegisterRecord("Address")
		f := schema.Field{
			Name:    "Home",
			Type:    "Address",
			Message: "bad address",
			Rules:   []schema.Rule{schema.Deep(), schema.Groups("create")},
		}
		_, err := schema.Compile(cr, "Rec", f)
		assert.NoError(t, err)
	})
}

func TestCompileValueChecks(t *testing.T) {
	c := schema.NewClassifier()

	t.Run("within values must match the base category", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "int", schema.Within([]any{1, "two"}, "m")))
		require.Error(t, err)
		var vte *schema.ValueTypeError
		require.ErrorAs(t, err, &vte)
		assert.Equal(t, schema.RuleWithin, vte.Rule)
		assert.Equal(t, "two", vte.Value)
	})

	t.Run("exclude values must match the base category", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "string", schema.Exclude([]any{"a", 3}, "m")))
		var vte *schema.ValueTypeError
		require.ErrorAs(t, err, &vte)
		assert.Equal(t, schema.RuleExclude, vte.Rule)
	})

	t.Run("range bounds must match the base category", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "int", schema.Range("low", 9, "m")))
		var vte *schema.ValueTypeError
		require.ErrorAs(t, err, &vte)
		assert.Equal(t, schema.RuleRange, vte.Rule)
	})

	t.Run("temporal bounds accept RFC3339 text", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec",
			field("N", "time.Time", schema.Range("2020-01-01T00:00:00Z", nil, "m")))
		assert.NoError(t, err)

		_, err = schema.Compile(c, "Rec",
			field("N", "time.Time", schema.Range("yesterday", nil, "m")))
		assert.Error(t, err)
	})

	t.Run("decimal bounds accept numeric text", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec",
			field("N", "decimal.Decimal", schema.Range("0.01", "99.99", "m")))
		assert.NoError(t, err)
	})

	t.Run("regex rule requires a compiled matcher", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "string", schema.Regex(nil, "m")))
		assert.ErrorIs(t, err, schema.ErrNilMatcher)
	})

	t.Run("func rule requires a predicate", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "string", schema.Func(nil, "m")))
		assert.ErrorIs(t, err, schema.ErrNilPredicate)
	})

	t.Run("unencodable group tag is malformed", func(t *testing.T) {
		_, err := schema.Compile(c, "Rec", field("N", "string",
			schema.Groups(func() {}),
			schema.NotBlank("m"),
		))
		require.Error(t, err)
		var gte *schema.GroupTagError
		assert.ErrorAs(t, err, &gte)
	})
}

func TestCompileAbortsWhole(t *testing.T) {
	// One bad field aborts compilation entirely; no partial validator exists.
	c := schema.NewClassifier()
	v, err := schema.Compile(c, "Rec",
		field("Good", "string", schema.NotBlank("m")),
		field("Bad", "int", schema.NotBlank("m")),
	)
	require.Error(t, err)
	assert.Nil(t, v)
}
