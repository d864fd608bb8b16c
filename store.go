package possibletypes

// RootQueryID identifies the root query object in a normalized store
const RootQueryID = "ROOT_QUERY"

// TypenameField is the field every stored object must use to record its concrete type
const TypenameField = "__typename"

// Store is the part of a normalized object store that the matcher consults
type Store interface {
	Get(id string) (map[string]interface{}, bool)
}

// MapStore is a Store backed by a plain map of ids to objects
type MapStore map[string]map[string]interface{}

// Get returns the object stored under the id
func (s MapStore) Get(id string) (map[string]interface{}, bool) {
	obj, ok := s[id]
	return obj, ok
}
