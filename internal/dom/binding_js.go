//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/starford/folio/internal/scroll"
)

// Binding connects a coordinator to the rendered page: it applies state
// classes and routes clicks on scroll links, the back-to-top control and
// gallery tabs.
type Binding struct {
	doc   js.Value
	coord *scroll.Coordinator
	funcs []js.Func
	stop  []func()
}

// Bind mounts coord on vp and wires the page's controls.
func Bind(coord *scroll.Coordinator, vp *Viewport) (*Binding, error) {
	if err := coord.Mount(vp); err != nil {
		return nil, err
	}
	b := &Binding{doc: vp.document, coord: coord}
	b.stop = append(b.stop, coord.Unmount, coord.Subscribe(b.apply))

	b.onClick("[data-scroll-to]", func(el js.Value) {
		coord.ScrollToSection(el.Call("getAttribute", "data-scroll-to").String())
	})
	b.onClick("[data-scroll-top]", func(js.Value) {
		coord.ScrollToTop()
	})
	b.onClick("[data-tab]", func(el js.Value) {
		b.selectTab(el.Call("getAttribute", "data-tab").String())
	})

	coord.HandleScroll()
	b.apply(coord.State())
	return b, nil
}

// BodyOptions reads the scroll options the server rendered onto <body>.
func BodyOptions() scroll.Options {
	body := js.Global().Get("document").Get("body")
	return ParseOptions(func(name string) string {
		v := body.Call("getAttribute", name)
		if v.IsNull() {
			return ""
		}
		return v.String()
	})
}

// Release removes every listener the binding added.
func (b *Binding) Release() {
	for _, fn := range b.stop {
		fn()
	}
	for _, f := range b.funcs {
		f.Release()
	}
	b.stop, b.funcs = nil, nil
}

func (b *Binding) each(selector string, fn func(js.Value)) {
	list := b.doc.Call("querySelectorAll", selector)
	for i := 0; i < list.Length(); i++ {
		fn(list.Index(i))
	}
}

func (b *Binding) onClick(selector string, fn func(el js.Value)) {
	b.each(selector, func(el js.Value) {
		cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			fn(el)
			return nil
		})
		el.Call("addEventListener", "click", cb)
		b.funcs = append(b.funcs, cb)
		b.stop = append(b.stop, func() { el.Call("removeEventListener", "click", cb) })
	})
}

func edit(el js.Value, c ClassChange) {
	list := el.Get("classList")
	for _, cls := range c.Remove {
		list.Call("remove", cls)
	}
	for _, cls := range c.Add {
		list.Call("add", cls)
	}
}

func (b *Binding) apply(s scroll.State) {
	var targets []string
	b.each("[data-nav] [data-scroll-to]", func(el js.Value) {
		targets = append(targets, el.Call("getAttribute", "data-scroll-to").String())
	})
	nav, top, links := Changes(s, targets)

	b.each("[data-nav]", func(el js.Value) { edit(el, nav) })
	b.each("[data-scroll-top]", func(el js.Value) { edit(el, top) })
	b.each("[data-nav] [data-scroll-to]", func(el js.Value) {
		edit(el, links[el.Call("getAttribute", "data-scroll-to").String()])
	})
}

func (b *Binding) selectTab(id string) {
	b.each("[data-tab]", func(el js.Value) {
		selected := el.Call("getAttribute", "data-tab").String() == id
		if selected {
			el.Call("setAttribute", "aria-selected", "true")
		} else {
			el.Call("setAttribute", "aria-selected", "false")
		}
	})
	b.each("[data-tab-panel]", func(el js.Value) {
		el.Set("hidden", el.Call("getAttribute", "data-tab-panel").String() != id)
	})
}
