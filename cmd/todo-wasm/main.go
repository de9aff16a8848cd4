//go:build js && wasm

// Command todo-wasm exposes the todo database to a browser host. It hangs a
// `todoDB` object off globalThis whose methods all return Promises; errors
// reject with a {msg, source} chain mirroring the Go error chain.
//
// The host must install its SQLite backend on globalThis.hostSQLite before
// calling todoDB.open; on this target all statements are forwarded to it
// (see the driver in internal/todo).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"todo-cli/internal/webapi"
)

var bridge *webapi.Bridge

func main() {
	api := js.Global().Get("Object").New()
	register := func(name string, fn func(args []js.Value) (any, error)) {
		api.Set(name, promisify(fn))
	}

	register("open", func(args []js.Value) (any, error) {
		if bridge != nil {
			return nil, errors.New("database already open")
		}
		b, err := webapi.Open(context.Background(), args[0].String())
		if err != nil {
			return nil, err
		}
		bridge = b
		return nil, nil
	})
	register("close", func([]js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		bridge = nil
		return nil, b.Close()
	})
	register("listAll", func([]js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.ListAll(context.Background())
	})
	register("createList", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.CreateList(context.Background(), args[0].String())
	})
	register("loadList", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.LoadList(context.Background(), uint32(args[0].Int()))
	})
	register("renameList", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.RenameList(context.Background(), uint32(args[0].Int()), args[1].String())
	})
	register("deleteList", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.DeleteList(context.Background(), uint32(args[0].Int()))
	})
	register("addItem", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.AddItem(context.Background(), uint32(args[0].Int()), args[1].String())
	})
	register("removeItem", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.RemoveItem(context.Background(), uint32(args[0].Int()), uint32(args[1].Int()))
	})
	register("setItemDescription", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.SetItemDescription(context.Background(), uint32(args[0].Int()), uint32(args[1].Int()), args[2].String())
	})
	register("setItemCompleted", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.SetItemCompleted(context.Background(), uint32(args[0].Int()), uint32(args[1].Int()), args[2].Bool())
	})
	register("setEncryptionKey", func(args []js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return nil, b.SetEncryptionKey(args[0].String())
	})
	register("hasEncryptionKey", func([]js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.HasEncryptionKey(), nil
	})
	register("isEncrypted", func([]js.Value) (any, error) {
		b, err := openBridge()
		if err != nil {
			return nil, err
		}
		return b.IsEncrypted()
	})

	js.Global().Set("todoDB", api)

	// Keep the Go runtime alive; the host drives everything via todoDB.
	select {}
}

func openBridge() (*webapi.Bridge, error) {
	if bridge == nil {
		return nil, errors.New("database not open, call todoDB.open(path) first")
	}
	return bridge, nil
}

// promisify wraps fn so each call returns a Promise and runs on its own
// goroutine. Blocking inside a js.Func callback would deadlock the event
// loop, so the work happens after the Promise executor returns.
func promisify(fn func(args []js.Value) (any, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		executor := js.FuncOf(func(this js.Value, pargs []js.Value) any {
			resolve, reject := pargs[0], pargs[1]
			go func() {
				defer func() {
					if r := recover(); r != nil {
						reject.Invoke(errValue(fmt.Errorf("panic: %v", r)))
					}
				}()
				v, err := fn(args)
				if err != nil {
					reject.Invoke(errValue(err))
					return
				}
				resolve.Invoke(jsValue(v))
			}()
			return nil
		})
		defer executor.Release()
		return js.Global().Get("Promise").New(executor)
	})
}

// jsValue converts a Go value through JSON so struct tags decide the shape
// the host sees.
func jsValue(v any) js.Value {
	if v == nil {
		return js.Undefined()
	}
	switch t := v.(type) {
	case bool:
		return js.ValueOf(t)
	case string:
		return js.ValueOf(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return js.Undefined()
	}
	return js.Global().Get("JSON").Call("parse", string(b))
}

func errValue(err error) js.Value {
	return jsValue(webapi.ErrorValueOf(err))
}
