// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"strconv"
	"strings"

	"github.com/ik5/soundscape/sound"
)

// Selector picks sounds. Tokens are sound names, IDs, group names or
// "all"; every entry in Groups must name an existing group. The zero
// Selector picks the sound added last.
type Selector struct {
	Tokens []string
	Groups []string
}

// Select builds a Selector from tokens.
func Select(tokens ...string) Selector { return Selector{Tokens: tokens} }

// All selects every sound.
func All() Selector { return Select(all) }

// SelectGroups selects the members of the named groups.
func SelectGroups(groups ...string) Selector { return Selector{Groups: groups} }

func (sel Selector) IsZero() bool { return len(sel.Tokens) == 0 && len(sel.Groups) == 0 }

func (sel Selector) String() string {
	if sel.IsZero() {
		return "last added"
	}

	parts := append([]string(nil), sel.Tokens...)
	for _, g := range sel.Groups {
		parts = append(parts, "-g "+g)
	}
	return strings.Join(parts, " ")
}

// resolve maps sel to sounds in first-seen order without duplicates and
// returns the tokens that matched nothing. The caller holds e.mu.
func (e *Engine) resolve(sel Selector) ([]*sound.Sound, []string) {
	if sel.IsZero() {
		if len(e.sounds) == 0 {
			return nil, []string{""}
		}
		return []*sound.Sound{e.sounds[len(e.sounds)-1]}, nil
	}

	var (
		out        []*sound.Sound
		unresolved []string
		seen       = make(map[sound.ID]bool)
	)
	add := func(s *sound.Sound) {
		if s != nil && !seen[s.ID()] {
			seen[s.ID()] = true
			out = append(out, s)
		}
	}
	addGroup := func(name string) bool {
		ids, ok := e.groups.Members(name)
		for _, id := range ids {
			add(e.byID(id))
		}
		return ok
	}

	for _, tok := range sel.Tokens {
		if strings.EqualFold(tok, all) {
			for _, s := range e.sounds {
				add(s)
			}
			continue
		}

		if named := e.byName(tok); len(named) > 0 {
			for _, s := range named {
				add(s)
			}
			continue
		}

		if id, ok := parseID(tok); ok {
			if s := e.byID(id); s != nil {
				add(s)
				continue
			}
		}

		if !addGroup(tok) {
			unresolved = append(unresolved, tok)
		}
	}

	for _, g := range sel.Groups {
		if !addGroup(g) {
			unresolved = append(unresolved, g)
		}
	}

	return out, unresolved
}

func (e *Engine) byName(name string) []*sound.Sound {
	var out []*sound.Sound
	for _, s := range e.sounds {
		if s.Name() == name {
			out = append(out, s)
		}
	}
	return out
}

// parseID accepts "3" and "#3".
func parseID(tok string) (sound.ID, bool) {
	n, err := strconv.ParseUint(strings.TrimPrefix(tok, "#"), 10, 64)
	if err != nil {
		return 0, false
	}
	return sound.ID(n), true
}
