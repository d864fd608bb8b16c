package possibletypes

import (
	"context"

	"github.com/nautilus/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nautilus/possibletypes/language"
)

// Operation is a single GraphQL operation travelling down a chain of links.
type Operation struct {
	Document      *ast.QueryDocument
	OperationName string
	Variables     map[string]interface{}
	Extensions    map[string]interface{}
}

// NewOperation parses the query and wraps it in an Operation
func NewOperation(query string, operationName string, variables map[string]interface{}) (*Operation, error) {
	document, err := language.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	return &Operation{
		Document:      document,
		OperationName: operationName,
		Variables:     variables,
		Extensions:    map[string]interface{}{},
	}, nil
}

// clone returns a shallow copy of the operation with its own extension map so that
// links can add extensions without touching the caller's operation.
func (o *Operation) clone() *Operation {
	extensions := make(map[string]interface{}, len(o.Extensions)+1)
	for key, value := range o.Extensions {
		extensions[key] = value
	}

	return &Operation{
		Document:      o.Document,
		OperationName: o.OperationName,
		Variables:     o.Variables,
		Extensions:    extensions,
	}
}

// Response is the result of executing an Operation
type Response struct {
	Data       map[string]interface{}
	Errors     graphql.ErrorList
	Extensions map[string]interface{}
}

// Link is a step in the pipeline that carries an operation to a server and the
// response back. Links usually wrap another link.
type Link interface {
	Execute(ctx context.Context, operation *Operation) (*Response, error)
}

// LinkFunc lets an ordinary function act as a Link
type LinkFunc func(ctx context.Context, operation *Operation) (*Response, error)

// Execute calls the function
func (f LinkFunc) Execute(ctx context.Context, operation *Operation) (*Response, error) {
	return f(ctx, operation)
}
