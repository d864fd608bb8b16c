package language

import "github.com/vektah/gqlparser/v2/ast"

// TypeConditions returns the names used as type conditions in the document, both
// on inline fragments (... on X) and on fragment definitions (fragment F on X).
// Every name shows up once, in the order it was first encountered.
func TypeConditions(document *ast.QueryDocument) []string {
	collector := &typeConditionCollector{
		seen:  map[string]bool{},
		names: []string{},
	}

	WalkDocument(collector, document)

	return collector.names
}

type typeConditionCollector struct {
	seen  map[string]bool
	names []string
}

func (c *typeConditionCollector) add(name string) {
	// inline fragments without a type condition only carry directives
	if name == "" || c.seen[name] {
		return
	}

	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *typeConditionCollector) OnField(*ast.Field) {}

func (c *typeConditionCollector) OnFragmentSpread(*ast.FragmentSpread) {}

func (c *typeConditionCollector) OnInlineFragment(fragment *ast.InlineFragment) {
	c.add(fragment.TypeCondition)
}

func (c *typeConditionCollector) OnFragmentDefinition(definition *ast.FragmentDefinition) {
	c.add(definition.TypeCondition)
}
