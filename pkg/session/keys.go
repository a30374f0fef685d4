package session

import (
	"regexp"
	"strings"
)

var namespaceStrip = regexp.MustCompile(`[^a-z0-9_]`)

// SanitizeNamespace lowercases a human label and strips everything that is
// not safe inside a state key, so "Investment Research" becomes
// "investment_research".
func SanitizeNamespace(label string) string {
	lowered := strings.ToLower(strings.TrimSpace(label))
	lowered = strings.ReplaceAll(lowered, " ", "_")
	return namespaceStrip.ReplaceAllString(lowered, "")
}

// Key scopes a field key to a namespace. All answers for one FormSpec share
// the namespace prefix, which keeps multiple surveys in one session apart.
func Key(ns, field string) string {
	return ns + "__" + field
}

// InstanceKey scopes a field key to a component instance within a namespace.
// Two instances of the same component never collide because the instance id
// participates in the key.
func InstanceKey(ns, instanceID, field string) string {
	return Key(ns, instanceID+"__"+field)
}
