package possibletypes

import (
	"github.com/nautilus/possibletypes/language"
)

// introspectionStrategy needs nothing from the server beyond standard introspection. Every
// type condition in an outgoing query that the cache doesn't know about yet gets a
// __type field next to the query's own fields. Once every type condition is known the
// queries go out untouched.
type introspectionStrategy struct {
	matcher *FragmentMatcher
}

type typeIntrospection struct {
	PossibleTypes *[]struct {
		Name string `json:"name"`
	} `json:"possibleTypes"`
}

func (s *introspectionStrategy) prepare(operation *Operation) (*Operation, *round, error) {
	unknown := s.matcher.cache.unknown(language.TypeConditions(operation.Document))

	document, requested, err := language.AddTypeIntrospections(operation.Document, operation.OperationName, unknown, s.matcher.alias)
	if err != nil {
		return nil, nil, err
	}

	current := &round{
		requested: requested,
		aliases:   map[string]string{},
	}
	if len(requested) == 0 {
		return operation, current, nil
	}

	for _, typeName := range requested {
		current.aliases[typeName] = s.matcher.alias(typeName)
	}
	introspectedTypesCounter.Add(float64(len(requested)))
	s.matcher.logger.IntrospectionRound(requested, document)

	outgoing := operation.clone()
	outgoing.Document = document

	return outgoing, current, nil
}

func (s *introspectionStrategy) apply(current *round, response *Response) {
	for _, typeName := range current.requested {
		alias := current.aliases[typeName]

		value, ok := response.Data[alias]
		if !ok {
			// probably an error took out the whole response, we'll ask again next time
			s.matcher.logger.Debug("Response did not include introspection for ", typeName)
			continue
		}
		// the caller never asked for this field
		delete(response.Data, alias)

		// types without possible types still count as known so we don't keep asking
		if value == nil {
			s.learn(typeName, s.matcher.cache.ensure(typeName))
			continue
		}

		result := typeIntrospection{}
		if err := decode(value, &result); err != nil {
			s.matcher.logger.Warn("Ignoring malformed introspection of ", typeName, ": ", err)
			continue
		}

		if result.PossibleTypes != nil {
			// the server talks about abstract -> concrete, we store concrete -> abstract
			for _, possibleType := range *result.PossibleTypes {
				if possibleType.Name == "" {
					continue
				}
				s.learn(possibleType.Name, s.matcher.cache.addPossibleType(possibleType.Name, typeName))
			}
		}

		s.learn(typeName, s.matcher.cache.ensure(typeName))
	}
}

func (s *introspectionStrategy) learn(typeName string, changed bool) {
	if !changed {
		return
	}

	learnedTypesCounter.WithLabelValues(StrategyIntrospection).Inc()
	s.matcher.logger.Trace("Learned possible types for ", typeName)
}
