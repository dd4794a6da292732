package pdooci

import (
	"sort"
	"sync"
)

// Dialect adapts one database/sql driver to the native client seam.
type Dialect interface {
	// Name is the driver prefix accepted in data sources
	Name() string
	// DriverName is the database/sql driver to open
	DriverName() string
	DSN(src DataSource, user, password string) (string, error)
	// LOB converts LOB bind content into the driver's LOB type
	LOB(kind ParamKind, data interface{}) interface{}
	Translate(err error) error
}

// DefaultDriver is used when a data source carries no driver prefix.
const DefaultDriver = "oci"

var (
	dialectsMu  sync.RWMutex
	dialectsMap = map[string]Dialect{}
)

// RegisterDialect makes a dialect available under name. Dialect packages call it from init.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialectsMap[name] = d
}

// UnregisterDialect removes the dialect registered under name.
func UnregisterDialect(name string) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	delete(dialectsMap, name)
}

// GetDialect gets the dialect registered under name.
func GetDialect(name string) (Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialectsMap[name]
	return d, ok
}

// AvailableDrivers lists the registered dialect names, sorted.
func AvailableDrivers() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()

	names := make([]string, 0, len(dialectsMap))
	for name := range dialectsMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
