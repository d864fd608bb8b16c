package language

import "github.com/vektah/gqlparser/v2/ast"

// SelectionWalker is a visitor-like interface for structs that can perform a
// particular function at each selection in the tree of nested selections
// of a selection set.
type SelectionWalker interface {
	OnField(*ast.Field)
	OnInlineFragment(*ast.InlineFragment)
	OnFragmentSpread(*ast.FragmentSpread)
}

// DocumentWalker is a SelectionWalker that also gets to see the fragment
// definitions of a document.
type DocumentWalker interface {
	SelectionWalker
	OnFragmentDefinition(*ast.FragmentDefinition)
}

// WalkSelection traverses the provided selection set and invokes the appropriate
// methods on the walker before descending into the nested selections. Fragment
// spreads are reported but not followed.
func WalkSelection(walker SelectionWalker, set ast.SelectionSet) {
	// for each selection in the set
	for _, selection := range set {
		switch selection := selection.(type) {
		// invoke the appropriate handler
		case *ast.Field:
			walker.OnField(selection)
			WalkSelection(walker, selection.SelectionSet)
		case *ast.InlineFragment:
			walker.OnInlineFragment(selection)
			WalkSelection(walker, selection.SelectionSet)
		case *ast.FragmentSpread:
			walker.OnFragmentSpread(selection)
		}
	}
}

// WalkDocument visits every operation of the document and then every fragment
// definition. Each node is visited exactly once.
func WalkDocument(walker DocumentWalker, document *ast.QueryDocument) {
	if document == nil {
		return
	}

	for _, operation := range document.Operations {
		WalkSelection(walker, operation.SelectionSet)
	}

	for _, definition := range document.Fragments {
		walker.OnFragmentDefinition(definition)
		WalkSelection(walker, definition.SelectionSet)
	}
}
