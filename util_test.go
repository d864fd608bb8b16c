package possibletypes

import (
	"context"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
)

// starWarsSchema is shared by the tests that need a schema to introspect
const starWarsSchema = `
	interface Character {
		name: String!
	}

	type Human implements Character {
		name: String!
		height: String!
	}

	type Droid implements Character {
		name: String!
		primaryFunction: String!
	}

	type Planet {
		name: String!
		region: String!
	}

	union Named = Human | Planet

	type Query {
		characters: [Character]
		droid(name: String!): Droid
		named(name: String!): Named
	}

	type Mutation {
		addCharacter(name: String!): Character
	}
`

// recordingLink remembers every operation it sees and responds with the queued responses in order
type recordingLink struct {
	Operations []*Operation
	Responses  []*Response
	mutex      sync.Mutex
}

func (l *recordingLink) Execute(ctx context.Context, operation *Operation) (*Response, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.Operations = append(l.Operations, operation)

	if len(l.Responses) == 0 {
		return &Response{Data: map[string]interface{}{}}, nil
	}

	response := l.Responses[0]
	l.Responses = l.Responses[1:]
	return response, nil
}

// introspectionFields returns the names of the types introspected at the root of the operation
func introspectionFields(operation *Operation) []string {
	names := []string{}
	for _, selection := range operation.Document.Operations[0].SelectionSet {
		if field, ok := selection.(*ast.Field); ok && field.Name == "__type" {
			names = append(names, field.Arguments.ForName("name").Value.Raw)
		}
	}
	return names
}

func mustOperation(query string) *Operation {
	operation, err := NewOperation(query, "", nil)
	if err != nil {
		panic(err)
	}
	return operation
}
