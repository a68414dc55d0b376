package controller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/llehouerou/tracklet/internal/class"
)

// Node is a view tree node the query resolver can walk.
type Node interface {
	ClassName() string
	ID() string
	Children() []Node
}

// Instance fields read by InstanceNode.
const (
	IDKey    = "id"
	ItemsKey = "items"
)

type instanceNode struct {
	inst *class.Instance
}

// InstanceNode exposes a view instance as a Node. Its id comes from the
// "id" field and its children from the "items" field.
func InstanceNode(inst *class.Instance) Node {
	return instanceNode{inst: inst}
}

func (n instanceNode) ClassName() string { return n.inst.ClassName() }

func (n instanceNode) ID() string {
	id, _ := class.Value[string](n.inst, IDKey)
	return id
}

func (n instanceNode) Children() []Node {
	switch items := n.inst.Get(ItemsKey).(type) {
	case []*class.Instance:
		out := make([]Node, len(items))
		for i, c := range items {
			out[i] = InstanceNode(c)
		}
		return out
	case []any:
		out := make([]Node, 0, len(items))
		for _, c := range items {
			if inst, ok := c.(*class.Instance); ok {
				out = append(out, InstanceNode(inst))
			}
		}
		return out
	default:
		return nil
	}
}

// Instance returns the view behind n, when n was built by InstanceNode.
func Instance(n Node) (*class.Instance, bool) {
	in, ok := n.(instanceNode)
	if !ok {
		return nil, false
	}
	return in.inst, true
}

// QuerySeparator separates selectors: the right one is searched at any
// depth below the left one.
const QuerySeparator = ">"

var selectorRe = regexp.MustCompile(`^([a-zA-Z0-9.]+)((\[([0-9]+)\])|(#([a-zA-Z0-9\-]+)))?$`)

// Selector is one step of a view query: alias, alias[index] or alias#id.
type Selector struct {
	Alias    string
	Index    int
	HasIndex bool
	ID       string
}

// Valid reports whether the selector parsed. Invalid selectors never
// match.
func (s Selector) Valid() bool { return s.Alias != "" }

func (s Selector) String() string {
	switch {
	case !s.Valid():
		return "<invalid>"
	case s.HasIndex:
		return s.Alias + "[" + strconv.Itoa(s.Index) + "]"
	case s.ID != "":
		return s.Alias + "#" + s.ID
	default:
		return s.Alias
	}
}

func (s Selector) matches(n Node, pos int, ns string) bool {
	if class.Suffix(n.ClassName(), ns) != s.Alias {
		return false
	}
	if s.ID != "" && n.ID() != s.ID {
		return false
	}
	if s.HasIndex && pos != s.Index {
		return false
	}
	return true
}

// ParseQuery splits a query such as "player.Container > player.Grid#main"
// into selectors.
func ParseQuery(query string) []Selector {
	parts := strings.Split(query, QuerySeparator)
	sels := make([]Selector, len(parts))
	for i, part := range parts {
		m := selectorRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		sels[i].Alias = m[1]
		sels[i].ID = m[6]
		if m[4] != "" {
			if n, err := strconv.Atoi(m[4]); err == nil {
				sels[i].Index = n
				sels[i].HasIndex = true
			}
		}
	}
	return sels
}

// Find resolves sels against the trees rooted at roots, with class names
// taken relative to ns. The walk is pre-order and first-child first. A
// selector that matched is consumed for the rest of the walk at that
// level: later siblings are tested against the next selector and the
// consumed one is never retried, so the first path found wins.
func Find(sels []Selector, roots []Node, ns string) Node {
	for i, n := range roots {
		if len(sels) == 0 || !sels[0].Valid() {
			return nil
		}
		if sels[0].matches(n, i, ns) {
			sels = sels[1:]
			if len(sels) == 0 {
				return n
			}
		}
		if found := Find(sels, n.Children(), ns); found != nil {
			return found
		}
	}
	return nil
}
