// Package extension reports the interfaces implemented by the types in a GraphQL
// response so that clients can match fragments without knowing the schema.
//
// Clients opt in per request by sending {"possibleTypes": true} in the request
// extensions. The server then answers with
//
//	"extensions": {
//		"possibleTypes": {
//			"Droid": ["Character"],
//			"Human": ["Character"]
//		}
//	}
//
// for every concrete type that appears in the response data.
package extension

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2/ast"
)

// Key is the name of the extension in both requests and responses
const Key = "possibleTypes"

const typenameField = "__typename"

// State is where a Reporter is in the lifecycle of a request
type State int

const (
	// StateIdle means the current request did not ask for possible types
	StateIdle State = iota
	// StateArmed means the current request asked for possible types
	StateArmed
	// StateReported means possible types were attached to the response
	StateReported
)

// Reporter adds the possibleTypes extension to the responses of requests that ask
// for it. A Reporter holds the state of a single request and must not be shared
// between concurrent requests.
type Reporter struct {
	schema *ast.Schema
	state  State
}

// NewReporter returns a reporter that looks up interfaces in the given schema
func NewReporter(schema *ast.Schema) *Reporter {
	return &Reporter{schema: schema}
}

// State returns the state of the reporter
func (r *Reporter) State() State {
	return r.state
}

// RequestDidStart arms the reporter if the request extensions ask for possible types
func (r *Reporter) RequestDidStart(extensions map[string]interface{}) {
	if enabled, _ := extensions[Key].(bool); enabled {
		r.state = StateArmed
		return
	}

	r.state = StateIdle
}

// WillSendResponse attaches the possible types of the response's data to its extensions,
// if the reporter was armed when the request started
func (r *Reporter) WillSendResponse(response map[string]interface{}) {
	if r.state != StateArmed || r.schema == nil || response == nil {
		r.state = StateIdle
		return
	}

	var extensions map[string]interface{}
	switch existing := response["extensions"].(type) {
	case nil:
		extensions = map[string]interface{}{}
		response["extensions"] = extensions
	case map[string]interface{}:
		extensions = existing
		if extensions == nil {
			extensions = map[string]interface{}{}
			response["extensions"] = extensions
		}
	default:
		// someone else owns the extensions and we don't know how to add to them
		logrus.WithField("extensions", existing).Warn("Not reporting possible types: response extensions are not an object")
		r.state = StateIdle
		return
	}
	extensions[Key] = Report(r.schema, response["data"])

	r.state = StateReported
}

// Report returns the interfaces of every concrete type found in the data, keyed by type name.
// Types the schema doesn't know about are reported with no interfaces.
func Report(schema *ast.Schema, data interface{}) map[string][]string {
	possibleTypes := map[string][]string{}

	for _, typename := range CollectTypenames(data) {
		interfaces := []string{}
		if definition, ok := lookupType(schema, typename); ok {
			interfaces = append(interfaces, definition.Interfaces...)
		}

		possibleTypes[typename] = interfaces
	}

	return possibleTypes
}

func lookupType(schema *ast.Schema, name string) (*ast.Definition, bool) {
	if schema == nil {
		return nil, false
	}

	definition, ok := schema.Types[name]
	return definition, ok && definition != nil
}

// CollectTypenames walks the data and returns every distinct __typename it finds
func CollectTypenames(data interface{}) []string {
	collector := &typenameCollector{seen: map[string]bool{}, names: []string{}}
	collector.walk(data)

	return collector.names
}

type typenameCollector struct {
	seen  map[string]bool
	names []string
}

func (c *typenameCollector) walk(value interface{}) {
	switch value := value.(type) {
	case map[string]interface{}:
		if typename, ok := value[typenameField].(string); ok && typename != "" && !c.seen[typename] {
			c.seen[typename] = true
			c.names = append(c.names, typename)
		}

		// visit the fields in a stable order
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			c.walk(value[key])
		}
	case []interface{}:
		for _, entry := range value {
			c.walk(entry)
		}
	case []map[string]interface{}:
		for _, entry := range value {
			c.walk(entry)
		}
	}
}
