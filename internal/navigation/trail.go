package navigation

// Segment is one entry of a breadcrumb trail. An empty Href renders as plain
// text.
type Segment struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Trail is ordered root first, current page last.
type Trail []Segment

// Builder turns table matches into breadcrumb trails. It keeps no state
// besides the shared table, so one Builder serves all requests.
type Builder struct {
	table *Table
}

// NewBuilder creates a Builder over table.
func NewBuilder(table *Table) *Builder {
	return &Builder{table: table}
}

// Table returns the table the builder reads from.
func (b *Builder) Table() *Table {
	return b.table
}

// FromRuntimePath builds the trail for a concrete request path. It returns
// nil when no route owns the path; callers render no breadcrumb then.
func (b *Builder) FromRuntimePath(path string, translate Translator) Trail {
	m := b.table.Match(path)
	if !m.Matched() {
		return nil
	}

	trail := b.ancestors(m.Node, m.Params, translate)
	return append(trail, Segment{
		Label: ResolveLabel(m.Node, translate),
		Icon:  m.Node.Icon,
	})
}

// FromParentOf builds the ancestor trail of the route declared as path and
// appends extra verbatim. Pages use it when their own label comes from data
// they fetched. params fills placeholders in ancestor hrefs and may be nil.
//
// An unregistered path is a ConfigurationError.
func (b *Builder) FromParentOf(path string, params Params, translate Translator, extra ...Segment) (Trail, error) {
	node, ok := b.table.LookupByExactPath(path)
	if !ok {
		return nil, configErr(path, "breadcrumb requested for unregistered route")
	}

	trail := b.ancestors(node, params, translate)
	return append(trail, extra...), nil
}

// MustFromParentOf is FromParentOf for call sites with a constant path.
// It panics on a ConfigurationError.
func (b *Builder) MustFromParentOf(path string, params Params, translate Translator, extra ...Segment) Trail {
	trail, err := b.FromParentOf(path, params, translate, extra...)
	if err != nil {
		panic(err)
	}
	return trail
}

// ancestors returns the linked segments for node's parents, root first.
// A parent whose placeholders cannot be filled from params keeps its label
// but loses its href.
func (b *Builder) ancestors(node *RouteNode, params Params, translate Translator) Trail {
	depth := 0
	for p := node.parent; p != nil; p = p.parent {
		depth++
	}

	trail := make(Trail, depth, depth+1)
	i := depth - 1
	for p := node.parent; p != nil; p = p.parent {
		seg := Segment{
			Label: ResolveLabel(p, translate),
			Icon:  p.Icon,
		}
		if href, ok := p.Href(params); ok {
			seg.Href = href
		}
		trail[i] = seg
		i--
	}
	return trail
}
