package navigation

import "strings"

// Params maps placeholder names to the captured runtime segments.
type Params map[string]string

// MatchResult is the outcome of Match. The zero value is NoMatch.
type MatchResult struct {
	Node   *RouteNode
	Params Params
}

// NoMatch is returned when no route owns the path.
var NoMatch = MatchResult{}

// Matched reports whether a route was found.
func (m MatchResult) Matched() bool {
	return m.Node != nil
}

// Match resolves a runtime path. Candidates with the same segment count are
// tried in declaration order and the first full match wins, so literal routes
// must be declared before dynamic routes that overlap them.
// Query strings and fragments are ignored.
func (t *Table) Match(runtimePath string) MatchResult {
	if i := strings.IndexAny(runtimePath, "?#"); i != -1 {
		runtimePath = runtimePath[:i]
	}
	segments := splitPath(runtimePath)

	for _, node := range t.nodes {
		if params, ok := node.match(segments); ok {
			return MatchResult{Node: node, Params: params}
		}
	}
	return NoMatch
}

// match compares segment by segment. Params is always non-nil on success.
func (n *RouteNode) match(segments []string) (Params, bool) {
	if len(segments) != len(n.segments) {
		return nil, false
	}

	params := Params{}
	for i, seg := range n.segments {
		value := segments[i]
		if seg.isParam() {
			if value == "" {
				return nil, false
			}
			params[seg.param] = value
			continue
		}
		if seg.literal != value {
			return nil, false
		}
	}
	return params, true
}
