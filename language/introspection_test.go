package language

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestDefaultAlias(t *testing.T) {
	assert.Equal(t, "__Character__", DefaultAlias("Character"))
}

func TestAddTypeIntrospections_appendsRootFields(t *testing.T) {
	document, err := ParseQuery(`
		{
			characters {
				... on Character {
					name
				}
			}
		}
	`)
	require.NoError(t, err)

	augmented, requested, err := AddTypeIntrospections(document, "", []string{"Character", "Named"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Character", "Named"}, requested)

	// the original operation is left alone
	assert.Len(t, document.Operations[0].SelectionSet, 1)

	selection := augmented.Operations[0].SelectionSet
	if !assert.Len(t, selection, 3) {
		return
	}

	// the existing field is still first
	assert.Equal(t, "characters", selection[0].(*ast.Field).Name)

	for i, typeName := range []string{"Character", "Named"} {
		field, ok := selection[i+1].(*ast.Field)
		if !assert.True(t, ok) {
			return
		}

		assert.Equal(t, "__"+typeName+"__", field.Alias)
		assert.Equal(t, "__type", field.Name)
		assert.Equal(t, typeName, field.Arguments.ForName("name").Value.Raw)
		assert.Equal(t, ast.StringValue, field.Arguments.ForName("name").Value.Kind)

		possibleTypes := field.SelectionSet[0].(*ast.Field)
		assert.Equal(t, "possibleTypes", possibleTypes.Name)
		assert.Equal(t, "name", possibleTypes.SelectionSet[0].(*ast.Field).Name)
	}
}

func TestAddTypeIntrospections_printsValidQuery(t *testing.T) {
	document, err := ParseQuery(`query Heroes { characters { ... on Character { name } } }`)
	require.NoError(t, err)

	augmented, _, err := AddTypeIntrospections(document, "Heroes", []string{"Character"}, nil)
	require.NoError(t, err)

	printed, err := PrintQuery(augmented)
	require.NoError(t, err)

	// the printed query has to survive a trip back through the parser
	reparsed, err := ParseQuery(printed)
	require.NoError(t, err)

	operation := reparsed.Operations.ForName("Heroes")
	if !assert.NotNil(t, operation) {
		return
	}

	field, ok := operation.SelectionSet[1].(*ast.Field)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "__Character__", field.Alias)
	assert.Equal(t, "__type", field.Name)
	assert.Equal(t, "Character", field.Arguments.ForName("name").Value.Raw)
}

func TestAddTypeIntrospections_nothingToRequest(t *testing.T) {
	document, err := ParseQuery(`{ field }`)
	require.NoError(t, err)

	augmented, requested, err := AddTypeIntrospections(document, "", []string{}, nil)
	require.NoError(t, err)

	// the very same document comes back
	assert.True(t, augmented == document)
	assert.Empty(t, requested)
}

func TestAddTypeIntrospections_skipsMutations(t *testing.T) {
	document, err := ParseQuery(`
		mutation {
			addCharacter {
				... on Character {
					name
				}
			}
		}
	`)
	require.NoError(t, err)

	augmented, requested, err := AddTypeIntrospections(document, "", []string{"Character"}, nil)
	require.NoError(t, err)

	assert.True(t, augmented == document)
	assert.Empty(t, requested)
}

func TestAddTypeIntrospections_picksOperation(t *testing.T) {
	document, err := ParseQuery(`
		query First {
			a
		}

		query Second {
			b
		}
	`)
	require.NoError(t, err)

	augmented, _, err := AddTypeIntrospections(document, "Second", []string{"Thing"}, nil)
	require.NoError(t, err)

	assert.Len(t, augmented.Operations.ForName("First").SelectionSet, 1)
	assert.Len(t, augmented.Operations.ForName("Second").SelectionSet, 2)

	// an ambiguous or unknown operation is an error
	_, _, err = AddTypeIntrospections(document, "", []string{"Thing"}, nil)
	assert.True(t, errors.Is(err, ErrOperationNotFound))

	_, _, err = AddTypeIntrospections(document, "Third", []string{"Thing"}, nil)
	assert.True(t, errors.Is(err, ErrOperationNotFound))
}

func TestAddTypeIntrospections_customAlias(t *testing.T) {
	document, err := ParseQuery(`{ field }`)
	require.NoError(t, err)

	augmented, _, err := AddTypeIntrospections(document, "", []string{"Character"}, func(typeName string) string {
		return "possible_" + typeName
	})
	require.NoError(t, err)

	field := augmented.Operations[0].SelectionSet[1].(*ast.Field)
	assert.Equal(t, "possible_Character", field.Alias)
}

func TestAddTypeIntrospections_repeatedAlias(t *testing.T) {
	document, err := ParseQuery(`{ characters { ... on Droid { name } ... on Character { name } } }`)
	require.NoError(t, err)

	augmented, requested, err := AddTypeIntrospections(document, "", []string{"Droid", "Character"}, func(string) string {
		return "possible"
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAliasConflict))
	assert.Nil(t, augmented)
	assert.Nil(t, requested)

	// the caller's document is left alone
	assert.Len(t, document.Operations[0].SelectionSet, 1)
}

func TestAddTypeIntrospections_aliasTakenByOperation(t *testing.T) {
	table := []struct {
		Message string
		Query   string
	}{
		{"field name", `{ __Droid__ { name } }`},
		{"field alias", `{ __Droid__: characters { name } }`},
		{"inline fragment", `{ ... on Query { __Droid__: characters { name } } }`},
		{"fragment spread", `{ ...rootFields } fragment rootFields on Query { __Droid__: characters { name } }`},
	}

	for _, row := range table {
		t.Run(row.Message, func(t *testing.T) {
			document, err := ParseQuery(row.Query)
			require.NoError(t, err)

			_, _, err = AddTypeIntrospections(document, "", []string{"Droid"}, nil)
			assert.True(t, errors.Is(err, ErrAliasConflict))
		})
	}
}

func TestAddTypeIntrospections_nestedKeysDontConflict(t *testing.T) {
	document, err := ParseQuery(`{ characters { __Droid__: name } }`)
	require.NoError(t, err)

	_, requested, err := AddTypeIntrospections(document, "", []string{"Droid"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Droid"}, requested)
}
