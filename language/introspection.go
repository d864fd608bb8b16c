package language

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// ErrOperationNotFound is returned when a document does not contain the operation
// that is supposed to be executed.
var ErrOperationNotFound = errors.New("could not find operation")

// ErrAliasConflict is returned when the alias for a type's introspection is already
// taken, either by another type or by a field of the operation.
var ErrAliasConflict = errors.New("introspection alias is already in use")

// AliasGenerator computes the alias under which the possible types of a
// type are requested.
type AliasGenerator func(typeName string) string

// DefaultAlias wraps the type name in double underscores: Character becomes __Character__
func DefaultAlias(typeName string) string {
	return "__" + typeName + "__"
}

// TypeIntrospectionField builds the selection equivalent to
//
//	alias: __type(name: "typeName") {
//		possibleTypes {
//			name
//		}
//	}
func TypeIntrospectionField(alias string, typeName string) *ast.Field {
	return &ast.Field{
		Alias: alias,
		Name:  "__type",
		Arguments: ast.ArgumentList{
			&ast.Argument{
				Name: "name",
				Value: &ast.Value{
					Kind: ast.StringValue,
					Raw:  typeName,
				},
			},
		},
		SelectionSet: ast.SelectionSet{
			&ast.Field{
				Alias: "possibleTypes",
				Name:  "possibleTypes",
				SelectionSet: ast.SelectionSet{
					&ast.Field{
						Alias: "name",
						Name:  "name",
					},
				},
			},
		},
	}
}

// FindOperation returns the operation in the document with the given name. An empty
// name is only valid when the document holds a single operation.
func FindOperation(document *ast.QueryDocument, name string) (*ast.OperationDefinition, error) {
	if document == nil {
		return nil, ErrOperationNotFound
	}

	if name == "" {
		if len(document.Operations) != 1 {
			return nil, fmt.Errorf("%w: operation name is required when a document has %d operations", ErrOperationNotFound, len(document.Operations))
		}
		return document.Operations[0], nil
	}

	operation := document.Operations.ForName(name)
	if operation == nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, name)
	}

	return operation, nil
}

// AddTypeIntrospections returns a document whose named operation also selects, at its root,
// the possible types of each of the given types. The second return value lists the types
// that were actually requested.
//
// The provided document is never modified. If there is nothing to request, or the operation
// is not a query (__type only lives on the query root), the original document is returned
// untouched along with an empty list. Every alias must be distinct and must not collide
// with a response key at the root of the operation.
func AddTypeIntrospections(document *ast.QueryDocument, operationName string, types []string, alias AliasGenerator) (*ast.QueryDocument, []string, error) {
	if len(types) == 0 {
		return document, []string{}, nil
	}

	operation, err := FindOperation(document, operationName)
	if err != nil {
		return nil, nil, err
	}

	// the shorthand form { ... } is a query too
	if operation.Operation != ast.Query && operation.Operation != "" {
		return document, []string{}, nil
	}

	if alias == nil {
		alias = DefaultAlias
	}

	// copy the root selection so the caller's operation keeps its own
	selectionSet := make(ast.SelectionSet, 0, len(operation.SelectionSet)+len(types))
	selectionSet = append(selectionSet, operation.SelectionSet...)

	// the keys the response will already use at the root
	taken := map[string]string{}
	collectResponseKeys(operation.SelectionSet, document.Fragments, taken, map[string]bool{})

	requested := make([]string, 0, len(types))
	for _, typeName := range types {
		key := alias(typeName)
		if owner, ok := taken[key]; ok {
			return nil, nil, fmt.Errorf("%w: %q for %s is also used by %s", ErrAliasConflict, key, typeName, owner)
		}
		taken[key] = "the introspection of " + typeName

		selectionSet = append(selectionSet, TypeIntrospectionField(key, typeName))
		requested = append(requested, typeName)
	}

	augmented := *operation
	augmented.SelectionSet = selectionSet

	operations := make(ast.OperationList, len(document.Operations))
	for i, op := range document.Operations {
		if op == operation {
			operations[i] = &augmented
		} else {
			operations[i] = op
		}
	}

	return &ast.QueryDocument{
		Operations: operations,
		Fragments:  document.Fragments,
		Position:   document.Position,
	}, requested, nil
}

// collectResponseKeys records the response keys of the fields that end up at the level of
// the selection set, looking through inline fragments and fragment spreads
func collectResponseKeys(set ast.SelectionSet, fragments ast.FragmentDefinitionList, keys map[string]string, visited map[string]bool) {
	for _, selection := range set {
		switch selection := selection.(type) {
		case *ast.Field:
			key := selection.Alias
			if key == "" {
				key = selection.Name
			}
			keys[key] = "the field " + selection.Name
		case *ast.InlineFragment:
			collectResponseKeys(selection.SelectionSet, fragments, keys, visited)
		case *ast.FragmentSpread:
			if visited[selection.Name] {
				continue
			}
			visited[selection.Name] = true

			if definition := fragments.ForName(selection.Name); definition != nil {
				collectResponseKeys(definition.SelectionSet, fragments, keys, visited)
			}
		}
	}
}
