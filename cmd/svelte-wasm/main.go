//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/norunners/vert"

	compiler "github.com/svelte-go/compiler"
)

type CompileResult struct {
	Code string `js:"code"`
	Hash string `js:"hash"`
}

type CompileError struct {
	Error string `js:"error"`
	Start int    `js:"start"`
	End   int    `js:"end"`
}

func main() {
	js.Global().Set("__svelte_compile", js.FuncOf(Compile))
	<-make(chan bool)
}

func jsString(j js.Value) string {
	if j.IsUndefined() || j.IsNull() {
		return ""
	}
	return j.String()
}

func Compile(this js.Value, args []js.Value) interface{} {
	source := jsString(args[0])

	name := ""
	if len(args) > 1 && args[1].Type() == js.TypeObject {
		name = jsString(args[1].Get("name"))
	}

	result, d := compiler.CompileWithOptions(source, compiler.Options{ComponentName: name})
	if d != nil {
		return vert.ValueOf(CompileError{
			Error: d.Error(),
			Start: d.Span.Start,
			End:   d.Span.End,
		}).Value
	}

	return vert.ValueOf(CompileResult{
		Code: result.JS,
		Hash: result.Hash,
	}).Value
}
