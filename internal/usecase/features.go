package usecase

import (
	"sort"
	"strings"
)

// FeatureTokens splits a comma-separated feature list into trimmed,
// lower-cased, non-empty tokens.
func FeatureTokens(feature string) []string {
	if strings.TrimSpace(feature) == "" {
		return nil
	}

	parts := strings.Split(feature, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// featureSet returns the token set of a feature list
func featureSet(feature string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range FeatureTokens(feature) {
		set[token] = struct{}{}
	}
	return set
}

// requiredFeatureSet normalizes the features a caller asked for. Entries
// may themselves be comma-separated.
func requiredFeatureSet(selected []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, entry := range selected {
		for _, token := range FeatureTokens(entry) {
			set[token] = struct{}{}
		}
	}
	return set
}

// hasAllFeatures reports whether have is a superset of want
func hasAllFeatures(have, want map[string]struct{}) bool {
	for token := range want {
		if _, ok := have[token]; !ok {
			return false
		}
	}
	return true
}

// sortedKeys returns the set members in ascending order
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
