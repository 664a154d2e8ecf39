package serializer

import (
	"fmt"
)

// names lists the serializers in the order they are benchmarked:
// the general purpose formats first, the hand written baseline last
var names = []string{"gob", "json", "net", "binary"}

// factories maps the serializer names accepted on the command line to their constructors
var factories = map[string]func() ISerializer{
	"gob":    NewGOBSerializer,
	"json":   NewJSONSerializer,
	"net":    NewNetSerializer,
	"binary": NewBinarySerializer,
}

// Names returns the names of all serializers
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// ByName creates the serializer registered under name
func ByName(name string) (ISerializer, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("invalid serializer %s (must be one of %v)", name, names)
	}
	return factory(), nil
}
