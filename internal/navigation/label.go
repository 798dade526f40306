package navigation

import "strings"

// Translator looks up a localized string by key. It returns "" when the key
// is unknown.
type Translator func(key string) string

// ResolveLabel returns the translated label for node, or its fallback label
// when translate is nil or yields nothing.
func ResolveLabel(node *RouteNode, translate Translator) string {
	if translate != nil && node.LabelKey != "" {
		if label := translate(node.LabelKey); strings.TrimSpace(label) != "" {
			return label
		}
	}
	return node.FallbackLabel
}
