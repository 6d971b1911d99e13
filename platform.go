package main

import "runtime"

// isWASM is true when running in a WebAssembly (browser) environment.
// File dialogs, clipboard access and log files are disabled there.
var isWASM = (runtime.GOOS == "js" || runtime.GOARCH == "wasm")
