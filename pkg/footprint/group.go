package footprint

import "sort"

// Group names a set of nodes. Membership is tracked by node reference
// and resolved to identifier strings at serialization, deduplicated and
// sorted the way the board editor writes them.
type Group struct {
	BaseNode

	Name    string
	Members []Node
}

// NewGroup creates a named group over the given members.
func NewGroup(name string, members ...Node) *Group {
	g := &Group{Name: name}
	g.bind(g, "Group")
	for _, m := range members {
		g.AddMember(m)
	}
	return g
}

// AddMember adds a node to the group. Nodes already in the group are
// ignored.
func (g *Group) AddMember(n Node) {
	if n == nil {
		return
	}
	for _, m := range g.Members {
		if m == n {
			return
		}
	}
	g.Members = append(g.Members, n)
}

// MemberIDs returns the sorted, deduplicated member identifiers.
func (g *Group) MemberIDs() []string {
	set := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		set[m.TStamp().String()] = true
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Group) contentID() *identity {
	id := newIdentity(g.kind).str("name", g.Name)
	hashes := make([]string, len(g.Members))
	for i, m := range g.Members {
		hashes[i] = m.ContentHash()
	}
	sort.Strings(hashes)
	return id.strs("members", hashes)
}

// Copy returns a deep copy with the parent cleared. Membership still
// points at the original nodes; regroup after copying a whole tree.
func (g *Group) Copy() Node {
	c := NewGroup(g.Name, g.Members...)
	g.copyInto(c)
	return c
}
