//go:build js && wasm

// Command wasm is the browser binding of the portfolio page. Build with
//
//	GOOS=js GOARCH=wasm go build -o public/static/folio.wasm ./cmd/wasm
package main

import (
	"github.com/starford/folio/internal/dom"
	"github.com/starford/folio/internal/scroll"
)

func main() {
	coord := scroll.New(dom.BodyOptions())
	b, err := dom.Bind(coord, dom.NewViewport())
	if err != nil {
		println("folio:", err.Error())
		return
	}
	defer b.Release()

	select {}
}
