package possibletypes

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/nautilus/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nautilus/possibletypes/language"
)

// SchemaLink answers the __type fields of an operation from a local schema and forwards
// the rest of the selection to Next. Without a Next link, other fields resolve to null.
type SchemaLink struct {
	Schema *ast.Schema
	Next   Link
}

// NewSchemaLink loads the type definitions and wraps them in a SchemaLink
func NewSchemaLink(typedefs string, next Link) (*SchemaLink, error) {
	schema, err := graphql.LoadSchema(typedefs)
	if err != nil {
		return nil, err
	}

	return &SchemaLink{Schema: schema, Next: next}, nil
}

// Execute resolves the introspection fields and delegates everything else
func (l *SchemaLink) Execute(ctx context.Context, operation *Operation) (*Response, error) {
	definition, err := language.FindOperation(operation.Document, operation.OperationName)
	if err != nil {
		return nil, err
	}

	// a place to store the result
	data := map[string]interface{}{}
	// the selections that someone else has to resolve
	remaining := ast.SelectionSet{}

	for _, selection := range definition.SelectionSet {
		field, ok := selection.(*ast.Field)
		if !ok || field.Name != "__type" {
			remaining = append(remaining, selection)
			continue
		}

		// there is a name argument to look up the type
		nameArg := field.Arguments.ForName("name")
		if nameArg == nil {
			return nil, fmt.Errorf("__type requires a name")
		}
		name, err := nameArg.Value.Value(operation.Variables)
		if err != nil {
			return nil, err
		}
		typeName, _ := name.(string)

		data[responseKey(field)] = l.introspectType(l.lookupType(typeName), field.SelectionSet)
	}

	response := &Response{Data: data}

	if len(remaining) == 0 {
		return response, nil
	}

	// without someone to ask, the rest of the fields are null
	if l.Next == nil {
		for _, selection := range remaining {
			if field, ok := selection.(*ast.Field); ok {
				data[responseKey(field)] = nil
			}
		}
		return response, nil
	}

	forwardedOperation := *definition
	forwardedOperation.SelectionSet = remaining

	forwarded := operation.clone()
	forwarded.Document = &ast.QueryDocument{
		Operations: ast.OperationList{&forwardedOperation},
		Fragments:  operation.Document.Fragments,
	}

	nextResponse, err := l.Next.Execute(ctx, forwarded)
	if err != nil {
		return nil, err
	}
	if nextResponse == nil {
		return response, nil
	}

	for key, value := range nextResponse.Data {
		data[key] = value
	}
	response.Errors = nextResponse.Errors
	response.Extensions = nextResponse.Extensions

	return response, nil
}

func (l *SchemaLink) lookupType(name string) *introspection.Type {
	definition, ok := l.Schema.Types[name]
	if !ok {
		return nil
	}

	return introspection.WrapTypeFromDef(l.Schema, definition)
}

func (l *SchemaLink) introspectType(schemaType *introspection.Type, selectionSet ast.SelectionSet) interface{} {
	if schemaType == nil {
		return nil
	}

	// a place to store the result
	result := map[string]interface{}{}

	for _, selection := range selectionSet {
		field, ok := selection.(*ast.Field)
		if !ok {
			continue
		}

		switch field.Name {
		case "__typename":
			result[responseKey(field)] = "__Type"
		case "kind":
			result[responseKey(field)] = schemaType.Kind()
		case "name":
			result[responseKey(field)] = stringValue(schemaType.Name())
		case "description":
			result[responseKey(field)] = stringValue(schemaType.Description())
		case "interfaces":
			// only objects and interfaces implement interfaces
			if kind := schemaType.Kind(); kind == "OBJECT" || kind == "INTERFACE" {
				result[responseKey(field)] = l.introspectTypeSlice(schemaType.Interfaces(), field.SelectionSet)
			} else {
				result[responseKey(field)] = nil
			}
		case "possibleTypes":
			// only abstract types have possible types
			if kind := schemaType.Kind(); kind == "INTERFACE" || kind == "UNION" {
				result[responseKey(field)] = l.introspectTypeSlice(schemaType.PossibleTypes(), field.SelectionSet)
			} else {
				result[responseKey(field)] = nil
			}
		}
	}

	return result
}

func (l *SchemaLink) introspectTypeSlice(types []introspection.Type, selectionSet ast.SelectionSet) []interface{} {
	result := []interface{}{}
	for i := range types {
		result = append(result, l.introspectType(&types[i], selectionSet))
	}

	return result
}

// responseKey is the key a field's value is written under
func responseKey(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}

func stringValue(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
