package metadata

// CorsRule declares cross-origin access for one API path prefix.
type CorsRule struct {
	ID                  string   `json:"id,omitempty"`
	Path                string   `json:"path"`
	Description         string   `json:"description,omitempty"`
	Origins             []string `json:"origins"`
	Headers             []string `json:"headers,omitempty"`
	Methods             []string `json:"methods"`
	MaxAge              int      `json:"max_age,omitempty"`
	SupportsCredentials bool     `json:"supports_credentials,omitempty"`
	Enabled             bool     `json:"enabled"`
}

// AllowsOrigin reports whether the rule admits the given origin.
func (r *CorsRule) AllowsOrigin(origin string) bool {
	if !r.Enabled {
		return false
	}
	for _, o := range r.Origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
