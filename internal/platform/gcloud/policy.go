package gcloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPolicyUnparseable signals that the policy output could not be parsed
// as JSON. Callers fall back to the textual scan in that case only.
var ErrPolicyUnparseable = errors.New("iam policy output is not parseable json")

// Policy is the structured representation of a project IAM policy.
type Policy struct {
	Bindings []Binding `json:"bindings"`
	Etag     string    `json:"etag,omitempty"`
	Version  int       `json:"version,omitempty"`
}

// Binding associates a role with the members holding it.
type Binding struct {
	Role    string   `json:"role"`
	Members []string `json:"members"`
}

// ParsePolicy decodes the JSON form of a policy document.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPolicyUnparseable, err)
	}
	return &p, nil
}

// HasBinding reports whether the exact role+member pair is present. A role
// bound only to other members does not count; neither does the member
// holding only other roles.
func (p *Policy) HasBinding(role, member string) bool {
	for _, b := range p.Bindings {
		if b.Role != role {
			continue
		}
		for _, m := range b.Members {
			if m == member {
				return true
			}
		}
	}
	return false
}

// TextContainsBinding is the degraded policy check: a substring scan over
// the raw policy dump. It requires both the role and the member to appear
// somewhere in the text, which can still produce false positives when the
// role is bound to a different member elsewhere in the document. It exists
// only for hosts whose gcloud cannot emit parseable JSON; the structured
// HasBinding is authoritative everywhere else.
func TextContainsBinding(text, role, member string) bool {
	return strings.Contains(text, role) && strings.Contains(text, member)
}
