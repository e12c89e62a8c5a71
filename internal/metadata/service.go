package metadata

import "dbforge-admin/internal/schema"

// Service is a configured database backend the platform generates APIs
// for. The console only stores its declaration; it never connects to it.
type Service struct {
	Name        string               `json:"name"`
	Label       string               `json:"label,omitempty"`
	Description string               `json:"description,omitempty"`
	Type        schema.StorageEngine `json:"type"`
	Config      map[string]any       `json:"config,omitempty"`
	Active      bool                 `json:"active"`
}

// SupportsType reports whether a field type is representable on this
// service's storage engine.
func (s *Service) SupportsType(t schema.FieldTypeID) bool {
	_, ok := schema.NativeType(t, s.Type)
	return ok
}
