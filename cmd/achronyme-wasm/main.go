//go:build js && wasm

// Package main is the WebAssembly entry point for the SOC engine. It
// exports the Engine's eval() surface and handle-based fast-path ABI to
// JavaScript as window.Achronyme and keeps the Go runtime alive to service
// those calls. The lifecycle shape (a blocking channel plus a readiness
// console.log) is the teacher's cmd/dwscript-wasm/main.go pattern; unlike
// that build, the export logic lives directly in this package rather than
// behind a separate pkg/wasm indirection, since this repo's domain has no
// surviving equivalent of that package to adapt.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o achronyme.wasm ./cmd/achronyme-wasm
//
// Usage from JavaScript:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("achronyme.wasm"), go.importObject)
//	    .then((result) => {
//	      go.run(result.instance);
//	      // window.Achronyme.eval("1 + 2") is now available
//	    });
//	</script>
package main

import (
	"syscall/js"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/pkg/achronyme"
)

var engine = achronyme.New()

func main() {
	done := make(chan struct{})

	registerAPI()

	js.Global().Get("console").Call("log", "Achronyme WASM module initialized")

	<-done
}

func registerAPI() {
	api := js.Global().Get("Object").New()

	api.Set("eval", js.FuncOf(jsEval))
	api.Set("reset", js.FuncOf(jsReset))
	api.Set("listVariables", js.FuncOf(jsListVariables))

	api.Set("create", js.FuncOf(jsCreate))
	api.Set("createFromBuffer", js.FuncOf(jsCreateFromBuffer))
	api.Set("get", js.FuncOf(jsGet))
	api.Set("clone", js.FuncOf(jsClone))
	api.Set("release", js.FuncOf(jsRelease))
	api.Set("isValid", js.FuncOf(jsIsValid))
	api.Set("count", js.FuncOf(jsCount))
	api.Set("clear", js.FuncOf(jsClear))
	api.Set("bindVariable", js.FuncOf(jsBindVariable))
	api.Set("handleFromVariable", js.FuncOf(jsHandleFromVariable))

	api.Set("vaddFast", js.FuncOf(jsBinaryFast(engine.VAddFast)))
	api.Set("vsubFast", js.FuncOf(jsBinaryFast(engine.VSubFast)))
	api.Set("vmulFast", js.FuncOf(jsBinaryFast(engine.VMulFast)))
	api.Set("vdivFast", js.FuncOf(jsBinaryFast(engine.VDivFast)))
	api.Set("matmulFast", js.FuncOf(jsBinaryFast(engine.MatmulFast)))
	api.Set("fftFast", js.FuncOf(jsFFTFast))
	api.Set("linspaceFast", js.FuncOf(jsLinspaceFast))

	js.Global().Set("Achronyme", api)
}

// jsError renders err as a plain-text soerr diagnostic, the shape a host
// error handler can show directly to a user.
func jsError(err error) js.Value {
	if se, ok := err.(*soerr.Error); ok {
		return js.ValueOf(se.Format(false))
	}
	return js.ValueOf(err.Error())
}

func result(value js.Value, err error) map[string]any {
	if err != nil {
		return map[string]any{"ok": false, "error": jsError(err)}
	}
	return map[string]any{"ok": true, "value": value}
}

func jsEval(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return result(js.Null(), soerr.New(soerr.Arity, "eval requires a source string"))
	}
	out, err := engine.Eval(args[0].String())
	return result(js.ValueOf(out), err)
}

func jsReset(this js.Value, args []js.Value) any {
	engine.Reset()
	return nil
}

func jsListVariables(this js.Value, args []js.Value) any {
	names := engine.ListVariables()
	arr := make([]any, len(names))
	for i, n := range names {
		arr[i] = n
	}
	return js.ValueOf(arr)
}

func floatsFromJS(v js.Value) []float64 {
	n := v.Length()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.Index(i).Float()
	}
	return out
}

func jsCreate(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return result(js.Null(), soerr.New(soerr.Arity, "create requires a number array"))
	}
	id := engine.Create(floatsFromJS(args[0]))
	return result(js.ValueOf(int64(id)), nil)
}

func jsCreateFromBuffer(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return result(js.Null(), soerr.New(soerr.Arity, "createFromBuffer requires a number array"))
	}
	rows, cols := 0, 0
	if len(args) >= 3 {
		rows, cols = args[1].Int(), args[2].Int()
	}
	id, err := engine.CreateFromBuffer(floatsFromJS(args[0]), rows, cols)
	return result(js.ValueOf(int64(id)), err)
}

func idArg(args []js.Value) achronyme.HandleID {
	if len(args) < 1 {
		return 0
	}
	return achronyme.HandleID(args[0].Int())
}

func jsGet(this js.Value, args []js.Value) any {
	s, err := engine.Get(idArg(args))
	return result(js.ValueOf(s), err)
}

func jsClone(this js.Value, args []js.Value) any {
	id, err := engine.Clone(idArg(args))
	return result(js.ValueOf(int64(id)), err)
}

func jsRelease(this js.Value, args []js.Value) any {
	return js.ValueOf(engine.Release(idArg(args)))
}

func jsIsValid(this js.Value, args []js.Value) any {
	return js.ValueOf(engine.IsValid(idArg(args)))
}

func jsCount(this js.Value, args []js.Value) any {
	return js.ValueOf(engine.Count())
}

func jsClear(this js.Value, args []js.Value) any {
	engine.Clear()
	return nil
}

func jsBindVariable(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return result(js.Null(), soerr.New(soerr.Arity, "bindVariable requires (name, handle)"))
	}
	name := args[0].String()
	id := achronyme.HandleID(args[1].Int())
	err := engine.BindVariable(name, id)
	return result(js.Undefined(), err)
}

func jsHandleFromVariable(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return result(js.Null(), soerr.New(soerr.Arity, "handleFromVariable requires a name"))
	}
	id, err := engine.HandleFromVariable(args[0].String())
	return result(js.ValueOf(int64(id)), err)
}

func jsBinaryFast(fn func(a, b achronyme.HandleID) (achronyme.HandleID, error)) func(js.Value, []js.Value) any {
	return func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return result(js.Null(), soerr.New(soerr.Arity, "requires two handles"))
		}
		id, err := fn(achronyme.HandleID(args[0].Int()), achronyme.HandleID(args[1].Int()))
		return result(js.ValueOf(int64(id)), err)
	}
}

func jsFFTFast(this js.Value, args []js.Value) any {
	id, err := engine.FFTFast(idArg(args))
	return result(js.ValueOf(int64(id)), err)
}

func jsLinspaceFast(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return result(js.Null(), soerr.New(soerr.Arity, "linspaceFast requires (start, stop, n)"))
	}
	id, err := engine.LinspaceFast(args[0].Float(), args[1].Float(), args[2].Int())
	return result(js.ValueOf(int64(id)), err)
}
