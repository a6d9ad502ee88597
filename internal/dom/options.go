// Package dom binds the scroll coordinator and the gallery tabs to a
// browser document. Everything touching syscall/js builds only for js/wasm;
// this file holds the parts that do not.
package dom

import (
	"strconv"
	"strings"

	"github.com/starford/folio/internal/scroll"
	"github.com/starford/folio/internal/view"
)

// Data attributes on <body> carrying the server's scroll options.
const (
	AttrHeaderThreshold    = "data-header-threshold"
	AttrBackToTopThreshold = "data-back-to-top-threshold"
	AttrProbeLine          = "data-probe-line"
	AttrHeaderOffset       = "data-header-offset"
)

// ParseOptions reads scroll options through attr, which returns an
// attribute's value or "". Missing or malformed values take the defaults.
func ParseOptions(attr func(name string) string) scroll.Options {
	num := func(name string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(attr(name)), 64)
		if err != nil || v < 0 {
			return 0
		}
		return v
	}
	return scroll.Options{
		HeaderThreshold:    num(AttrHeaderThreshold),
		BackToTopThreshold: num(AttrBackToTopThreshold),
		ProbeLine:          num(AttrProbeLine),
		HeaderOffset:       num(AttrHeaderOffset),
	}.Resolved()
}

// ClassChange is the class edit for one element: remove every state class,
// then add the current ones.
type ClassChange struct {
	Remove []string
	Add    []string
}

// Changes returns the class edits for the nav bar, the back-to-top control
// and each nav link, keyed by link target.
func Changes(s scroll.State, targets []string) (nav, top ClassChange, links map[string]ClassChange) {
	all := view.StateClasses()
	nav = ClassChange{Remove: all, Add: strings.Fields(view.NavClass(s.ScrolledPastThreshold))}
	top = ClassChange{Remove: all, Add: strings.Fields(view.BackToTopClass(s.BackToTopVisible))}
	links = make(map[string]ClassChange, len(targets))
	for _, id := range targets {
		links[id] = ClassChange{Remove: all, Add: strings.Fields(view.NavItemClass(id == s.ActiveSection))}
	}
	return nav, top, links
}
