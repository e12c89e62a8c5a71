package metadata

import "sync"

type tableKey struct {
	service string
	table   string
}

// Registry is the in-process cache of console metadata. It is loaded at
// startup and replaced wholesale after admin mutations; handlers always
// read a consistent snapshot.
type Registry struct {
	mu        sync.RWMutex
	services  map[string]*Service
	tables    map[tableKey]*TableDef
	byService map[string][]*TableDef
	cors      []*CorsRule
}

func NewRegistry() *Registry {
	return &Registry{
		services:  make(map[string]*Service),
		tables:    make(map[tableKey]*TableDef),
		byService: make(map[string][]*TableDef),
	}
}

// GetService returns the service with the given name, or nil.
func (r *Registry) GetService(name string) *Service {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.services[name]
}

// AllServices returns all registered services.
func (r *Registry) AllServices() []*Service {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out
}

// GetTable returns the table definition for a service, or nil.
func (r *Registry) GetTable(service, table string) *TableDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[tableKey{service, table}]
}

// TablesForService returns all table definitions declared on a service.
func (r *Registry) TablesForService(service string) []*TableDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byService[service]
}

// CorsRules returns the loaded CORS rules.
func (r *Registry) CorsRules() []*CorsRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cors
}

// Load replaces the registry contents.
func (r *Registry) Load(services []*Service, tables map[string][]*TableDef, cors []*CorsRule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.services = make(map[string]*Service, len(services))
	for _, s := range services {
		r.services[s.Name] = s
	}

	r.tables = make(map[tableKey]*TableDef)
	r.byService = make(map[string][]*TableDef, len(tables))
	for service, defs := range tables {
		for _, def := range defs {
			r.tables[tableKey{service, def.Name}] = def
		}
		r.byService[service] = defs
	}

	r.cors = cors
}
