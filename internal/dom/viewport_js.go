//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/starford/folio/internal/scroll"
)

// Viewport is a scroll.Viewport over the browser window.
type Viewport struct {
	window   js.Value
	document js.Value
}

var _ scroll.Viewport = (*Viewport)(nil)

// NewViewport binds to the global window.
func NewViewport() *Viewport {
	w := js.Global().Get("window")
	return &Viewport{window: w, document: w.Get("document")}
}

func (v *Viewport) section(id string) (js.Value, bool) {
	el := v.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, false
	}
	return el, true
}

// ScrollY implements scroll.Geometry.
func (v *Viewport) ScrollY() float64 {
	return v.window.Get("scrollY").Float()
}

// SectionRect implements scroll.Geometry.
func (v *Viewport) SectionRect(id string) (scroll.Rect, bool) {
	el, ok := v.section(id)
	if !ok {
		return scroll.Rect{}, false
	}
	r := el.Call("getBoundingClientRect")
	return scroll.Rect{Top: r.Get("top").Float(), Bottom: r.Get("bottom").Float()}, true
}

// SectionOffset implements scroll.Geometry.
func (v *Viewport) SectionOffset(id string) (float64, bool) {
	el, ok := v.section(id)
	if !ok {
		return 0, false
	}
	return el.Get("offsetTop").Float(), true
}

// ScrollTo implements scroll.Viewport.
func (v *Viewport) ScrollTo(req scroll.Request) {
	v.window.Call("scrollTo", map[string]any{
		"top":      req.Top,
		"behavior": string(req.Behavior),
	})
}

// OnScroll implements scroll.Viewport. The listener is passive.
func (v *Viewport) OnScroll(fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	opts := map[string]any{"passive": true}
	v.window.Call("addEventListener", "scroll", cb, opts)
	return func() {
		v.window.Call("removeEventListener", "scroll", cb, opts)
		cb.Release()
	}
}
