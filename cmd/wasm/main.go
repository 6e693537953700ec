//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/BeatPattern/internal/config"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/beatmap"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorParseFailed
	ErrorEncodeFailed
)

// Analyzes the text of a .osu file. An optional second argument may carry
// {jumpStrategy, streamStrategy} with values "whole" or "windowed".
// Returns: {error: number, data: string}
func analyzeBeatmap(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected at least 1 argument: beatmapText")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "beatmapText must be a string")
	}

	var opts []beatpattern.Option
	if len(args) > 1 && args[1].Type() == js.TypeObject {
		for key, with := range map[string]func(segment.Strategy) beatpattern.Option{
			"jumpStrategy":   beatpattern.WithJumpStrategy,
			"streamStrategy": beatpattern.WithStreamStrategy,
		} {
			v := args[1].Get(key)
			if v.Type() != js.TypeString {
				continue
			}
			s, err := config.ParseStrategy(v.String())
			if err != nil {
				return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("%s: %v", key, err))
			}
			if s != nil {
				opts = append(opts, with(s))
			}
		}
	}

	m, err := beatmap.ParseString(args[0].String())
	if err != nil {
		return makeErrorResponse(ErrorParseFailed, fmt.Sprintf("Failed to parse beatmap: %v", err))
	}

	res := beatpattern.AnalyzeBeatmap(m, opts...)
	data, err := json.Marshal(res)
	if err != nil {
		return makeErrorResponse(ErrorEncodeFailed, fmt.Sprintf("Failed to encode result: %v", err))
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", string(data))
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "🔧 BeatPattern WASM module initializing...")
	}

	done := make(chan struct{})

	js.Global().Set("analyzeBeatmap", js.FuncOf(analyzeBeatmap))

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	} else if !console.IsUndefined() {
		console.Call("warn", "window is undefined, skipping wasmReady event")
	}

	if !console.IsUndefined() {
		console.Call("log", "✅ BeatPattern WASM module loaded and ready")
	}

	<-done
}
