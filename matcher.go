package possibletypes

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nautilus/possibletypes/language"
)

// FragmentMatcher decides whether an object in a normalized store satisfies the type
// condition of a fragment. It learns the relationship between concrete and abstract
// types progressively, from the responses that flow through the Link it provides,
// instead of requiring the whole schema up front.
type FragmentMatcher struct {
	strategyName string
	strategy     strategy
	cache        *typeCache
	alias        language.AliasGenerator
	logger       Logger
}

// Option configures a FragmentMatcher
type Option func(*FragmentMatcher)

// WithStrategy picks how the matcher learns about possible types. Valid values are
// StrategyExtension (the default) and StrategyIntrospection.
func WithStrategy(name string) Option {
	return func(m *FragmentMatcher) {
		m.strategyName = name
	}
}

// WithAliasGenerator overrides the alias used for the synthetic fields added by the
// introspection strategy
func WithAliasGenerator(generator language.AliasGenerator) Option {
	return func(m *FragmentMatcher) {
		if generator != nil {
			m.alias = generator
		}
	}
}

// WithLogger sets the logger used by the matcher
func WithLogger(logger Logger) Option {
	return func(m *FragmentMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPossibleTypes seeds the matcher with known relationships, keyed by concrete type.
// Seeded entries follow the same rules as learned ones: they are never replaced.
func WithPossibleTypes(possibleTypes map[string][]string) Option {
	return func(m *FragmentMatcher) {
		for concrete, abstracts := range possibleTypes {
			m.cache.setIfAbsent(concrete, abstracts)
		}
	}
}

// New returns a FragmentMatcher configured with the given options
func New(options ...Option) (*FragmentMatcher, error) {
	matcher := &FragmentMatcher{
		strategyName: StrategyExtension,
		cache:        newTypeCache(),
		alias:        language.DefaultAlias,
		logger:       &DefaultLogger{},
	}

	for _, opt := range options {
		opt(matcher)
	}

	factory, ok := strategies[matcher.strategyName]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (must be one of %s)", matcher.strategyName, strategyNames())
	}
	matcher.strategy = factory(matcher)

	return matcher, nil
}

// Strategy returns the name of the strategy the matcher uses to learn types
func (m *FragmentMatcher) Strategy() string {
	return m.strategyName
}

// PossibleTypes returns a copy of everything the matcher has learned so far, keyed by
// concrete type
func (m *FragmentMatcher) PossibleTypes() map[string][]string {
	return m.cache.snapshot()
}

// Match returns whether the object stored under id satisfies the type condition.
//
// An id that isn't in the store only matches if it is the root query, which can be asked
// for fragments before anything has been written for it. Every other stored object must
// have a __typename. Relationships that haven't been learned yet never match.
func (m *FragmentMatcher) Match(id string, typeCondition string, store Store) (bool, error) {
	obj, ok := store.Get(id)
	if !ok || obj == nil {
		return id == RootQueryID, nil
	}

	typename, _ := obj[TypenameField].(string)
	if typename == "" {
		return false, &MissingTypenameError{ID: id, Object: obj}
	}

	if typename == typeCondition {
		matchCounter.WithLabelValues("exact").Inc()
		return true, nil
	}

	if m.cache.satisfies(typename, typeCondition) {
		matchCounter.WithLabelValues("possible_type").Inc()
		return true, nil
	}

	matchCounter.WithLabelValues("miss").Inc()
	return false, nil
}

// Link returns a link that keeps the matcher's cache populated from the operations it
// forwards to next. How it does so depends on the matcher's strategy.
func (m *FragmentMatcher) Link(next Link) Link {
	return LinkFunc(func(ctx context.Context, operation *Operation) (*Response, error) {
		ctx, span := tracer.Start(ctx, "FragmentMatcher.Link")
		defer span.End()

		span.SetAttributes(
			attribute.String("possibletypes.strategy", m.strategyName),
			attribute.String("graphql.operation.name", operation.OperationName),
		)

		outgoing, round, err := m.strategy.prepare(operation)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetAttributes(attribute.StringSlice("possibletypes.requested", round.requested))

		response, err := next.Execute(ctx, outgoing)
		if err != nil {
			// an operation that never came back can't teach us anything
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		if response != nil {
			m.strategy.apply(round, response)
		}

		return response, nil
	})
}

// MissingTypenameError is returned when asked to match an object that doesn't
// record its concrete type
type MissingTypenameError struct {
	ID     string
	Object map[string]interface{}
}

func (e *MissingTypenameError) Error() string {
	serialized, err := json.Marshal(e.Object)
	if err != nil {
		return fmt.Sprintf("cannot match fragment because %s property is missing on %s", TypenameField, e.ID)
	}

	return fmt.Sprintf("cannot match fragment because %s property is missing: %s", TypenameField, serialized)
}
