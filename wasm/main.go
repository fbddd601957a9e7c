//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("FormulaviewNewEngine", js.FuncOf(newEngine))
	js.Global().Set("FormulaviewLocateSpans", js.FuncOf(locateSpans))
	js.Global().Set("FormulaviewParseDirectives", js.FuncOf(parseDirectives))
	js.Global().Set("FormulaviewRender", js.FuncOf(render))
	js.Global().Set("FormulaviewUpdateDocument", js.FuncOf(updateDocument))
	js.Global().Set("FormulaviewCloseDocument", js.FuncOf(closeDocument))
	js.Global().Set("FormulaviewHover", js.FuncOf(hover))
	js.Global().Set("FormulaviewCloseEngine", js.FuncOf(closeEngine))

	// Keep WASM running
	<-make(chan struct{})
}
