package condition_test

import (
	"testing"

	"github.com/0xalexb/hjarta-extras/condition"
	"github.com/0xalexb/hjarta-extras/properties"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredSubProperties = []string{"sub-property1", "sub-property2"}

func TestValidate_Scenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		store           map[string]string
		expectedMatch   bool
		expectedMissing []string
		expectedAbsent  bool
	}{
		{
			name: "all properties are defined",
			store: map[string]string{
				"property[0].sub-property1": "value1",
				"property[0].sub-property2": "value2",
			},
			expectedMatch:   true,
			expectedMissing: nil,
			expectedAbsent:  false,
		},
		{
			name: "not all properties are defined",
			store: map[string]string{
				"property[0].sub-property2": "value2",
			},
			expectedMatch:   false,
			expectedMissing: []string{"property[0].sub-property1"},
			expectedAbsent:  false,
		},
		{
			name: "not all properties in collection are defined",
			store: map[string]string{
				"property[0].sub-property1": "value01",
				"property[0].sub-property2": "value02",
				"property[1].sub-property1": "value11",
			},
			expectedMatch:   false,
			expectedMissing: []string{"property[1].sub-property2"},
			expectedAbsent:  false,
		},
		{
			name: "different sub properties are defined",
			store: map[string]string{
				"property.sub-property": "value",
			},
			expectedMatch:   false,
			expectedMissing: []string{"property[].sub-property1", "property[].sub-property2"},
			expectedAbsent:  true,
		},
		{
			name:            "empty store",
			store:           map[string]string{},
			expectedMatch:   false,
			expectedMissing: []string{"property[].sub-property1", "property[].sub-property2"},
			expectedAbsent:  true,
		},
		{
			name: "several elements missing several sub properties",
			store: map[string]string{
				"property[0].other": "x",
				"property[2].sub-property2": "y",
				"property[one]":     "z",
			},
			expectedMatch: false,
			expectedMissing: []string{
				"property[0].sub-property1",
				"property[0].sub-property2",
				"property[2].sub-property1",
				"property[one].sub-property1",
				"property[one].sub-property2",
			},
			expectedAbsent: false,
		},
		{
			name: "token indices",
			store: map[string]string{
				"property[one].sub-property1": "value1",
				"property[one].sub-property2": "value2",
				"property[two].sub-property1": "value1",
				"property[two].sub-property2": "value2",
			},
			expectedMatch:   true,
			expectedMissing: nil,
			expectedAbsent:  false,
		},
		{
			name: "nested sub property counts as defined",
			store: map[string]string{
				"property[0].sub-property1.host": "db",
				"property[0].sub-property2[0]":   "a",
			},
			expectedMatch:   true,
			expectedMissing: nil,
			expectedAbsent:  false,
		},
		{
			name: "similar collection name is ignored",
			store: map[string]string{
				"propertyX[0].sub-property1": "value1",
				"propertyX[0].sub-property2": "value2",
			},
			expectedMatch:   false,
			expectedMissing: []string{"property[].sub-property1", "property[].sub-property2"},
			expectedAbsent:  true,
		},
		{
			name: "sub property name prefix is not enough",
			store: map[string]string{
				"property[0].sub-property1":       "value1",
				"property[0].sub-property2-extra": "value2",
			},
			expectedMatch:   false,
			expectedMissing: []string{"property[0].sub-property2"},
			expectedAbsent:  false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := properties.New(testCase.store)

			outcome := condition.Validate(store, "property", requiredSubProperties)

			assert.Equal(t, testCase.expectedMatch, outcome.Matched, outcome.Message)
			assert.Equal(t, testCase.expectedMissing, outcome.Missing)
			assert.Equal(t, testCase.expectedAbsent, outcome.Absent)
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{
		"property[0].sub-property1": "value01",
		"property[1].sub-property2": "value12",
	})
	before := store.Map()

	first := condition.Validate(store, "property", requiredSubProperties)
	second := condition.Validate(store, "property", requiredSubProperties)

	assert.Equal(t, first, second)
	assert.Equal(t, before, store.Map(), "store must not be mutated")
}

func TestValidate_DuplicateIndexTokensDeduplicate(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{
		"property[0].a": "1",
		"property[0].b": "2",
		"property[0].c": "3",
	})

	outcome := condition.Validate(store, "property", []string{"d"})

	assert.Equal(t, []string{"property[0].d"}, outcome.Missing)
}

func TestValidate_PreconditionViolations(t *testing.T) {
	t.Parallel()

	store := properties.New(map[string]string{"property[0].a": "1"})

	t.Run("empty name never matches", func(t *testing.T) {
		t.Parallel()

		outcome := condition.Validate(store, "", []string{"a"})

		assert.False(t, outcome.Matched)
		assert.True(t, outcome.Absent)
	})

	t.Run("nil store never matches", func(t *testing.T) {
		t.Parallel()

		outcome := condition.Validate(nil, "property", []string{"a"})

		assert.False(t, outcome.Matched)
		assert.Equal(t, []string{"property[].a"}, outcome.Missing)
	})

	t.Run("no required sub properties matches a present collection", func(t *testing.T) {
		t.Parallel()

		assert.True(t, condition.Validate(store, "property", nil).Matched)
		assert.False(t, condition.Validate(store, "absent", nil).Matched)
	})
}

func TestValidate_Messages(t *testing.T) {
	t.Parallel()

	absent := condition.Validate(properties.Empty(), "property", requiredSubProperties)
	assert.Equal(t, "did not find property collection property", absent.Message)

	incomplete := condition.Validate(properties.New(map[string]string{
		"property[0].sub-property1": "v",
	}), "property", requiredSubProperties)
	assert.Equal(t, "did not find properties property[0].sub-property2", incomplete.Message)

	matched := condition.Validate(properties.New(map[string]string{
		"property[0].sub-property1": "v",
		"property[0].sub-property2": "v",
	}), "property", requiredSubProperties)
	assert.Equal(t, "found property collection property (1 elements)", matched.Message)
}

func TestNewOnPropertiesCollection_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		collection    string
		subProperties []string
		expected      error
	}{
		{name: "empty name", collection: "", subProperties: []string{"a"}, expected: condition.ErrEmptyName},
		{name: "invalid name", collection: "a..b", subProperties: []string{"a"}, expected: properties.ErrInvalidPath},
		{name: "no sub properties", collection: "a", subProperties: nil, expected: condition.ErrNoSubProperties},
		{name: "dotted sub property", collection: "a", subProperties: []string{"b.c"}, expected: condition.ErrInvalidSubProperty},
		{name: "indexed sub property", collection: "a", subProperties: []string{"b[0]"}, expected: condition.ErrInvalidSubProperty},
		{name: "empty sub property", collection: "a", subProperties: []string{""}, expected: condition.ErrInvalidSubProperty},
		{name: "duplicate sub property", collection: "a", subProperties: []string{"b", "b"}, expected: condition.ErrInvalidSubProperty},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cond, err := condition.NewOnPropertiesCollection(testCase.collection, testCase.subProperties...)

			require.Error(t, err)
			assert.Nil(t, cond)
			assert.ErrorIs(t, err, testCase.expected)
		})
	}
}

func TestOnPropertiesCollection_Evaluate(t *testing.T) {
	t.Parallel()

	cond := condition.MustOnPropertiesCollection("my.feature", "p1", "p2")

	assert.Equal(t, "OnPropertiesCollection(my.feature[].{p1,p2})", cond.Name())

	matched := cond.Evaluate(properties.New(map[string]string{
		"my.feature[0].p1": "value1",
		"my.feature[0].p2": "value2",
	}))
	assert.True(t, matched.Matched)

	notSet := cond.Evaluate(properties.Empty())
	assert.False(t, notSet.Matched)
}

func TestMustOnPropertiesCollection_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		condition.MustOnPropertiesCollection("property")
	})
}
