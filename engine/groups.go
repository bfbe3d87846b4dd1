// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"

	"github.com/ik5/soundscape/sound"
)

// Groups is a non-exclusive index from group name to sound IDs. A group
// exists while it has members; names are kept in creation order. Groups
// is not safe for concurrent use.
type Groups struct {
	order   []string
	members map[string][]sound.ID
}

func NewGroups() *Groups {
	return &Groups{members: make(map[string][]sound.ID)}
}

// Add puts ids into the named group, creating it on first use, and
// returns how many were not members yet.
func (g *Groups) Add(name string, ids ...sound.ID) int {
	cur, ok := g.members[name]
	added := 0
	for _, id := range ids {
		if slices.Contains(cur, id) {
			continue
		}
		cur = append(cur, id)
		added++
	}
	if added == 0 {
		return 0
	}

	if !ok {
		g.order = append(g.order, name)
	}
	g.members[name] = cur
	return added
}

// Remove takes ids out of the named group and deletes the group once it
// is empty. It reports whether each id was a member.
func (g *Groups) Remove(name string, ids ...sound.ID) []bool {
	found := make([]bool, len(ids))
	cur, ok := g.members[name]
	if !ok {
		return found
	}

	for i, id := range ids {
		if idx := slices.Index(cur, id); idx >= 0 {
			cur = slices.Delete(cur, idx, idx+1)
			found[i] = true
		}
	}
	g.set(name, cur)
	return found
}

// Forget removes id from every group and returns the groups that were
// deleted because id was their last member.
func (g *Groups) Forget(id sound.ID) []string {
	var deleted []string
	for _, name := range slices.Clone(g.order) {
		cur := g.members[name]
		idx := slices.Index(cur, id)
		if idx < 0 {
			continue
		}
		cur = slices.Delete(cur, idx, idx+1)
		if len(cur) == 0 {
			deleted = append(deleted, name)
		}
		g.set(name, cur)
	}
	return deleted
}

func (g *Groups) set(name string, ids []sound.ID) {
	if len(ids) > 0 {
		g.members[name] = ids
		return
	}
	delete(g.members, name)
	g.order = slices.DeleteFunc(g.order, func(n string) bool { return n == name })
}

// Members returns a copy of the group's IDs in the order they joined.
func (g *Groups) Members(name string) ([]sound.ID, bool) {
	ids, ok := g.members[name]
	return slices.Clone(ids), ok
}

func (g *Groups) Has(name string) bool {
	_, ok := g.members[name]
	return ok
}

// Names lists every group in creation order.
func (g *Groups) Names() []string { return slices.Clone(g.order) }

// Of lists the groups id belongs to, in creation order.
func (g *Groups) Of(id sound.ID) []string {
	var names []string
	for _, name := range g.order {
		if slices.Contains(g.members[name], id) {
			names = append(names, name)
		}
	}
	return names
}

func (g *Groups) Len() int { return len(g.order) }
