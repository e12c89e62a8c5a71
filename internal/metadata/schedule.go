package metadata

// Schedule is a recurring platform task: call a service component on a
// fixed frequency with an optional payload.
type Schedule struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Service          string `json:"service"`
	Component        string `json:"component,omitempty"`
	Verb             string `json:"verb"`
	Payload          string `json:"payload,omitempty"`
	FrequencyMinutes int    `json:"frequency_minutes"`
	Active           bool   `json:"active"`
}

var scheduleVerbs = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// ValidVerb reports whether the schedule's verb is one the platform runs.
func (s *Schedule) ValidVerb() bool {
	return scheduleVerbs[s.Verb]
}
