package extension

import (
	"context"
	"encoding/json"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// statsKey is where the opt-in flag is kept on the operation's stats
const statsKey = "PossibleTypes"

// PossibleTypes is a gqlgen handler extension that reports the interfaces of the
// types in a response to the clients that ask for them.
//
//	srv := handler.New(executableSchema)
//	srv.Use(&extension.PossibleTypes{})
type PossibleTypes struct {
	schema *ast.Schema
}

var _ interface {
	graphql.HandlerExtension
	graphql.OperationParameterMutator
	graphql.ResponseInterceptor
} = &PossibleTypes{}

// ExtensionName returns the name of the extension
func (p *PossibleTypes) ExtensionName() string {
	return "PossibleTypes"
}

// Validate holds onto the schema used to look up interfaces
func (p *PossibleTypes) Validate(schema graphql.ExecutableSchema) error {
	p.schema = schema.Schema()
	return nil
}

// MutateOperationParameters remembers whether the operation asked for possible types
func (p *PossibleTypes) MutateOperationParameters(ctx context.Context, request *graphql.RawParams) *gqlerror.Error {
	if enabled, _ := request.Extensions[Key].(bool); !enabled || !graphql.HasOperationContext(ctx) {
		return nil
	}

	graphql.GetOperationContext(ctx).Stats.SetExtension(statsKey, true)
	return nil
}

// InterceptResponse attaches the possible types to the response of operations that asked for them
func (p *PossibleTypes) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	response := next(ctx)
	if response == nil || p.schema == nil || !graphql.HasOperationContext(ctx) {
		return response
	}

	if enabled, _ := graphql.GetOperationContext(ctx).Stats.GetExtension(statsKey).(bool); !enabled {
		return response
	}

	var data interface{}
	if len(response.Data) > 0 {
		if err := json.Unmarshal(response.Data, &data); err != nil {
			return response
		}
	}

	if response.Extensions == nil {
		response.Extensions = map[string]interface{}{}
	}
	response.Extensions[Key] = Report(p.schema, data)

	return response
}
