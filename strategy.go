package possibletypes

import (
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// The strategies a FragmentMatcher can use to learn about possible types
const (
	// StrategyExtension asks the server to report the interfaces of every type in the
	// response through the possibleTypes extension.
	StrategyExtension = "extension"
	// StrategyIntrospection adds __type introspection fields to outgoing queries for every
	// type condition that hasn't been seen before.
	StrategyIntrospection = "introspection"
)

// ExtensionName is the key used in both request and response extensions
const ExtensionName = "possibleTypes"

// strategy is the behavior that differs between the ways of learning possible types.
// prepare runs before an operation is sent and apply once its response comes back.
type strategy interface {
	prepare(operation *Operation) (*Operation, *round, error)
	apply(round *round, response *Response)
}

// round holds what apply needs to know about the operation prepare sent out
type round struct {
	requested []string
	// type name -> alias of its synthetic field
	aliases map[string]string
}

var strategies = map[string]func(*FragmentMatcher) strategy{
	StrategyExtension: func(m *FragmentMatcher) strategy {
		return &extensionStrategy{matcher: m}
	},
	StrategyIntrospection: func(m *FragmentMatcher) strategy {
		return &introspectionStrategy{matcher: m}
	},
}

// strategyNames returns the quoted names of the known strategies, ie `"extension", "introspection"`
func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, `"`+name+`"`)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// decode massages an untyped payload into the target using its json tags
func decode(input interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
