//go:build wasm

package main

import (
	"encoding/json"
	"errors"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/formulaview/pkg/config"
	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/praetorian-inc/formulaview/pkg/store"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

var (
	engines   = make(map[int]*preview.Engine)
	enginesMu sync.RWMutex
	nextID    int
)

func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return string(jsonBytes)
}

func lookup(handle js.Value) (*preview.Engine, bool) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	engine, ok := engines[handle.Int()]
	return engine, ok
}

// newEngine creates a preview engine. The optional argument is a YAML
// configuration overlaid on the defaults.
// JS: FormulaviewNewEngine([configYAML]) -> {handle} or {error}
func newEngine(this js.Value, args []js.Value) interface{} {
	cfg := config.Default()
	if len(args) > 0 && args[0].String() != "" {
		var err error
		cfg, err = config.Parse([]byte(args[0].String()))
		if err != nil {
			return errorResult("invalid config: " + err.Error())
		}
	}

	engine, err := preview.New(cfg, preview.WithLogger(preview.NoopLogger{}))
	if err != nil {
		return errorResult("failed to create engine: " + err.Error())
	}

	enginesMu.Lock()
	id := nextID
	nextID++
	engines[id] = engine
	enginesMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// locateSpans returns the formula spans of text as JSON.
// JS: FormulaviewLocateSpans(handle, text) -> JSON [{start, end}]
func locateSpans(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and text arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}
	return jsonResult(engine.Locate(args[1].String()))
}

// parseDirectives returns the range directives of text as JSON.
// JS: FormulaviewParseDirectives(handle, text) -> JSON {name: directive}
func parseDirectives(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and text arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}
	return jsonResult(engine.Directives(args[1].String()))
}

// render returns the preview text of an expression. Directives are a JSON
// object as returned by FormulaviewParseDirectives.
// JS: FormulaviewRender(handle, expression, [directivesJSON]) -> text
func render(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and expression arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}

	var directives types.Directives
	if len(args) > 2 && args[2].String() != "" {
		if err := json.Unmarshal([]byte(args[2].String()), &directives); err != nil {
			return errorResult("failed to parse directives JSON: " + err.Error())
		}
	}
	return engine.Render(args[1].String(), directives)
}

// updateDocument caches the spans of an opened or edited document.
// JS: FormulaviewUpdateDocument(handle, uri, version, text) -> JSON document
func updateDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return errorResult("handle, uri, version and text arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}

	doc, err := engine.OnChange(types.DocumentID(args[1].String()), args[2].Int(), args[3].String())
	if err != nil {
		return errorResult("update failed: " + err.Error())
	}
	return jsonResult(doc)
}

// closeDocument drops a document from the cache.
// JS: FormulaviewCloseDocument(handle, uri)
func closeDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and uri arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}

	err := engine.OnClose(types.DocumentID(args[1].String()))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return errorResult("close failed: " + err.Error())
	}
	return nil
}

// hover returns the preview of the formula under a byte offset of an open
// document, or null.
// JS: FormulaviewHover(handle, uri, offset) -> JSON preview or null
func hover(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("handle, uri and offset arguments required")
	}
	engine, ok := lookup(args[0])
	if !ok {
		return errorResult("invalid engine handle")
	}

	fp, found := engine.Hover(types.DocumentID(args[1].String()), int64(args[2].Int()))
	if !found {
		return nil
	}
	return jsonResult(fp)
}

// closeEngine closes an engine and releases resources.
// JS: FormulaviewCloseEngine(handle)
func closeEngine(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("handle argument required")
	}

	handle := args[0].Int()

	enginesMu.Lock()
	engine, ok := engines[handle]
	if ok {
		delete(engines, handle)
	}
	enginesMu.Unlock()

	if !ok {
		return errorResult("invalid engine handle")
	}

	engine.Close()

	return nil
}
