package navigation

import (
	"strings"
)

// RouteSpec is the static declaration of one navigable path.
// Path uses {name} for dynamic segments, e.g. "/creators/{creatorId}/portfolio".
// Parent names the enclosing node by its declared Path; it does not have to be
// a string prefix of Path.
type RouteSpec struct {
	Path     string
	LabelKey string
	Label    string
	Icon     string
	Parent   string
}

// patternSegment is either a literal or a named placeholder.
type patternSegment struct {
	literal string
	param   string
}

func (s patternSegment) isParam() bool {
	return s.param != ""
}

// RouteNode is a resolved entry of the route table.
type RouteNode struct {
	// Path is the normalized declared pattern.
	Path string

	LabelKey string

	// FallbackLabel is used when no translation is available.
	FallbackLabel string

	// Icon is an opaque presentation hint.
	Icon string

	segments []patternSegment
	parent   *RouteNode
}

// Parent returns the enclosing node, or nil for a root.
func (n *RouteNode) Parent() *RouteNode {
	return n.parent
}

// IsDynamic reports whether the pattern has at least one placeholder.
func (n *RouteNode) IsDynamic() bool {
	for _, seg := range n.segments {
		if seg.isParam() {
			return true
		}
	}
	return false
}

// ParamNames returns the placeholder names in path order.
func (n *RouteNode) ParamNames() []string {
	var names []string
	for _, seg := range n.segments {
		if seg.isParam() {
			names = append(names, seg.param)
		}
	}
	return names
}

// Href renders the node's path with placeholders substituted from params.
// It returns false when a placeholder has no (or an empty) value.
func (n *RouteNode) Href(params Params) (string, bool) {
	if len(n.segments) == 0 {
		return "/", true
	}

	var b strings.Builder
	for _, seg := range n.segments {
		b.WriteByte('/')
		if !seg.isParam() {
			b.WriteString(seg.literal)
			continue
		}
		value := params[seg.param]
		if value == "" {
			return "", false
		}
		b.WriteString(value)
	}
	return b.String(), true
}

// Table is the immutable route registry. It is built once at startup and
// shared by every request.
type Table struct {
	nodes  []*RouteNode
	byPath map[string]*RouteNode
}

// NewTable validates specs and builds the table. Declaration order is kept
// because the matcher resolves overlaps by it.
func NewTable(specs []RouteSpec) (*Table, error) {
	t := &Table{
		nodes:  make([]*RouteNode, 0, len(specs)),
		byPath: make(map[string]*RouteNode, len(specs)),
	}
	shapes := make(map[string]string, len(specs))

	for _, spec := range specs {
		segments, err := parsePattern(spec.Path)
		if err != nil {
			return nil, err
		}
		path := joinPattern(segments)

		if _, exists := t.byPath[path]; exists {
			return nil, configErr(path, "duplicate route")
		}
		shape := shapeOf(segments)
		if other, exists := shapes[shape]; exists {
			return nil, configErr(path, "route is shadowed by %q", other)
		}
		shapes[shape] = path

		if spec.Label == "" {
			return nil, configErr(path, "route has no fallback label")
		}

		node := &RouteNode{
			Path:          path,
			LabelKey:      spec.LabelKey,
			FallbackLabel: spec.Label,
			Icon:          spec.Icon,
			segments:      segments,
		}
		t.nodes = append(t.nodes, node)
		t.byPath[path] = node
	}

	// Parents may be declared after their children.
	for i, spec := range specs {
		if spec.Parent == "" {
			continue
		}
		node := t.nodes[i]
		parent, ok := t.LookupByExactPath(spec.Parent)
		if !ok {
			return nil, configErr(node.Path, "unknown parent %q for route", spec.Parent)
		}
		if parent == node {
			return nil, configErr(node.Path, "route is its own parent")
		}
		node.parent = parent
	}

	for _, node := range t.nodes {
		steps := 0
		for p := node.parent; p != nil; p = p.parent {
			steps++
			if steps > len(t.nodes) {
				return nil, configErr(node.Path, "parent cycle through route")
			}
		}
	}

	return t, nil
}

// LookupByExactPath finds the node declared with exactly this pattern.
// Leading and trailing slashes are ignored.
func (t *Table) LookupByExactPath(path string) (*RouteNode, bool) {
	node, ok := t.byPath[normalizePath(path)]
	return node, ok
}

// Nodes returns the nodes in declaration order. The slice is a copy.
func (t *Table) Nodes() []*RouteNode {
	out := make([]*RouteNode, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.nodes)
}

// parsePattern splits a declared path into literal and placeholder segments.
func parsePattern(path string) ([]patternSegment, error) {
	parts := splitPath(path)
	segments := make([]patternSegment, 0, len(parts))
	seen := make(map[string]bool)

	for _, part := range parts {
		if part == "" {
			return nil, configErr(path, "empty segment in route")
		}
		start := strings.IndexByte(part, '{')
		end := strings.IndexByte(part, '}')
		if start == -1 && end == -1 {
			segments = append(segments, patternSegment{literal: part})
			continue
		}
		if start != 0 || end != len(part)-1 || strings.Count(part, "{") != 1 || strings.Count(part, "}") != 1 {
			return nil, configErr(path, "malformed placeholder %q in route", part)
		}
		name := part[1 : len(part)-1]
		if name == "" {
			return nil, configErr(path, "empty placeholder name in route")
		}
		if seen[name] {
			return nil, configErr(path, "placeholder {%s} repeated in route", name)
		}
		seen[name] = true
		segments = append(segments, patternSegment{param: name})
	}
	return segments, nil
}

func joinPattern(segments []patternSegment) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		if seg.isParam() {
			b.WriteString("{" + seg.param + "}")
		} else {
			b.WriteString(seg.literal)
		}
	}
	return b.String()
}

// shapeOf ignores placeholder names: /a/{x} and /a/{y} share a shape.
func shapeOf(segments []patternSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		if seg.isParam() {
			b.WriteString("{}")
		} else {
			b.WriteString(seg.literal)
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	parts := splitPath(path)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// splitPath drops leading and trailing slashes and splits the rest.
// Interior empty segments are kept so "/a//b" never looks like "/a/b".
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
