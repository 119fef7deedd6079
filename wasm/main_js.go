//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/chunkmesh/api"
	"github.com/voxelsplace/chunkmesh/voxel"
)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func strategyFromJS(args []js.Value, i int) (voxel.Strategy, error) {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return voxel.Naive, nil
	}
	return voxel.ParseStrategy(args[i].String())
}

// chunk2glb(chunkBytes, strategy?) -> Uint8Array | error string
func chunk2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing chunk bytes")
	}
	s, err := strategyFromJS(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.ChunkFileToGLB(bytesFromJS(args[0]), s)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

// pack2glb(packBytes, strategy?) -> Uint8Array | error string
func pack2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	s, err := strategyFromJS(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.PackToGLB(bytesFromJS(args[0]), s)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

// packChunks({name: Uint8Array}) -> Uint8Array | error string
func packChunks(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = bytesFromJS(filesObj.Get(k))
	}
	out, err := api.PackChunkFiles(files, voxel.LayoutRaw, voxel.PackCompZlib)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

// unpackChunks(packBytes) -> {name: Uint8Array} | error string
func unpackChunks(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackToMemory(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, bytesToJS(b))
	}
	return result
}

func main() {
	js.Global().Set("chunk2glb", js.FuncOf(chunk2glb))
	js.Global().Set("pack2glb", js.FuncOf(pack2glb))
	js.Global().Set("packChunks", js.FuncOf(packChunks))
	js.Global().Set("unpackChunks", js.FuncOf(unpackChunks))
	select {}
}
