// Package common contains shared constants and sentinel errors used across
// factkeeper components.
package common

import "strings"

// AccessTokenHeaderName is the gRPC metadata key used to carry the admin
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// VisitorHeaderName identifies the anonymous visitor whose reactions
// (bookmarks, likes, dislikes) a public request reads or changes.
const VisitorHeaderName = "X-Visitor-ID"

// DefaultKeyPrefix namespaces every persisted key.
const DefaultKeyPrefix = "factkeeper"

// Persisted key names. Each holds a JSON value.
const (
	KeyFacts         = "facts_data"
	KeySubmissions   = "submitted_facts"
	KeyBookmarks     = "bookmarkedFacts"
	KeyLiked         = "likedFacts"
	KeyDisliked      = "dislikedFacts"
	KeyAdminPassword = "admin_password"
)

// NamespacedKey joins prefix and parts with ':'. Empty parts are skipped, so
// an empty prefix yields an unprefixed key.
func NamespacedKey(prefix string, parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if prefix != "" {
		all = append(all, prefix)
	}
	for _, p := range parts {
		if p != "" {
			all = append(all, p)
		}
	}
	return strings.Join(all, ":")
}
