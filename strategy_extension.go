package possibletypes

// extensionStrategy relies on the server to compute the relationships for the types
// it returns. It is cheap since queries are sent as they are, but the server has to
// run the possibleTypes extension.
type extensionStrategy struct {
	matcher *FragmentMatcher
}

func (s *extensionStrategy) prepare(operation *Operation) (*Operation, *round, error) {
	// ask the server for the possible types of everything it sends back
	outgoing := operation.clone()
	outgoing.Extensions[ExtensionName] = true

	return outgoing, &round{requested: []string{}}, nil
}

func (s *extensionStrategy) apply(_ *round, response *Response) {
	payload, ok := response.Extensions[ExtensionName]
	if !ok || payload == nil {
		s.matcher.logger.Debug("Response did not include possible types")
		return
	}

	types := map[string][]string{}
	if err := decode(payload, &types); err != nil {
		s.matcher.logger.Warn("Ignoring malformed possibleTypes extension: ", err)
		return
	}

	for concrete, abstracts := range types {
		// the first answer for a type wins
		if s.matcher.cache.setIfAbsent(concrete, abstracts) {
			learnedTypesCounter.WithLabelValues(StrategyExtension).Inc()
			s.matcher.logger.WithFields(LoggerFields{
				"type":      concrete,
				"satisfies": abstracts,
			}).Trace("Learned possible types")
		}
	}
}
