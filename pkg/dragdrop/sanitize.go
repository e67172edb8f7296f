package dragdrop

import (
	"github.com/microcosm-cc/bluemonday"
)

// DefaultSanitizer returns a user generated content policy that also keeps
// class and data-* attributes, which reorderable markup relies on.
func DefaultSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowDataAttributes()
	return policy
}

func sanitizePayload(policy *bluemonday.Policy, payload Payload) Payload {
	out := Payload{ID: payload.ID, Fields: make(map[string]string, len(payload.Fields))}
	for tag, markup := range payload.Fields {
		out.Fields[tag] = policy.Sanitize(markup)
	}
	return out
}
