package language

import (
	"bytes"
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseQuery turns a query string into a document without validating it against
// a schema. Clients usually do not have one.
func ParseQuery(query string) (*ast.QueryDocument, error) {
	document, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, err
	}

	return document, nil
}

// PrintQuery creates a string representation of every operation and fragment
// in the document
func PrintQuery(document *ast.QueryDocument) (string, error) {
	if document == nil {
		return "", errors.New("cannot print a nil document")
	}

	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(document)

	return buf.String(), nil
}
