package possibletypes

import (
	"context"
	"errors"

	"github.com/nautilus/graphql"

	"github.com/nautilus/possibletypes/language"
)

// QueryerLink adapts a graphql.Queryer into a terminating Link. Queryers only hand back
// data so response extensions are lost; pair it with the introspection strategy.
type QueryerLink struct {
	Queryer graphql.Queryer
}

// Execute sends the operation through the queryer
func (l *QueryerLink) Execute(ctx context.Context, operation *Operation) (*Response, error) {
	query, err := language.PrintQuery(operation.Document)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	err = l.Queryer.Query(ctx, &graphql.QueryInput{
		Query:         query,
		QueryDocument: operation.Document,
		OperationName: operation.OperationName,
		Variables:     operation.Variables,
	}, &data)
	if err != nil {
		// graphql errors come with whatever data the server could produce
		var errList graphql.ErrorList
		if errors.As(err, &errList) {
			return &Response{Data: data, Errors: errList}, nil
		}
		return nil, err
	}

	return &Response{Data: data}, nil
}
