// Package auth implements the authentication boundary of the gateway:
// bearer extraction, token validation, and the validated-caller context
// carried down to handlers.
package auth

import "encoding/json"

// Principal is the validated caller identity derived from a successful
// introspection response. It is immutable once constructed and lives for
// the duration of a single request — it is never persisted.
type Principal struct {
	UserID string
	TeamID string
	Scopes map[string]struct{}
}

// NewPrincipal builds a Principal from a user id, team id, and scope list.
// Duplicate scopes collapse into the set.
func NewPrincipal(userID, teamID string, scopes []string) Principal {
	set := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return Principal{UserID: userID, TeamID: teamID, Scopes: set}
}

// HasScope reports whether the principal carries the given scope.
func (p Principal) HasScope(scope string) bool {
	_, ok := p.Scopes[scope]
	return ok
}

// Equal reports whether two principals carry the same identity and scope
// set. Used by tests asserting cache-hit results are value-equal.
func (p Principal) Equal(other Principal) bool {
	if p.UserID != other.UserID || p.TeamID != other.TeamID {
		return false
	}
	if len(p.Scopes) != len(other.Scopes) {
		return false
	}
	for s := range p.Scopes {
		if _, ok := other.Scopes[s]; !ok {
			return false
		}
	}
	return true
}

// String never includes the raw token — a Principal never carries one —
// but is still provided so log call sites never format the struct by hand.
func (p Principal) String() string {
	return "Principal{UserID:" + p.UserID + ", TeamID:" + p.TeamID + "}"
}

// MarshalJSON renders scopes as an array; order is not significant.
func (p Principal) MarshalJSON() ([]byte, error) {
	scopes := make([]string, 0, len(p.Scopes))
	for s := range p.Scopes {
		scopes = append(scopes, s)
	}
	return json.Marshal(&struct {
		UserID string   `json:"user_id"`
		TeamID string   `json:"team_id"`
		Scopes []string `json:"scopes"`
	}{
		UserID: p.UserID,
		TeamID: p.TeamID,
		Scopes: scopes,
	})
}
