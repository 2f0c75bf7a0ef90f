package jsonpath

import (
	"sync"

	"github.com/rlross/jsonpath/internal/ast"
)

// globalRegistry holds functions registered process-wide via
// [RegisterFunction], layered beneath any functions supplied per-[Parser]
// via [WithFunctions]. spec.md §4.4 describes the function registry as
// process-wide; §5 requires it survive concurrent readers and writers,
// hence the RWMutex rather than leaving callers to synchronize themselves.
var (
	globalRegistryMu sync.RWMutex
	globalRegistry   = make(map[string]ast.Function)
)

// RegisterFunction adds fn to the process-wide function registry, which
// every [Parser] created afterward consults (built-ins first, then the
// global registry, then that Parser's own [WithFunctions]). If a function
// with the same name is already registered, it is replaced.
//
// The registry is read fresh on every [Parser.Parse] call, so a Parser
// created before a given RegisterFunction call still picks it up, as long
// as Parse is called afterward.
func RegisterFunction(fn Function) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	globalRegistry[fn.Name()] = fn
}

// UnregisterFunction removes name from the process-wide function registry.
// It is a no-op if name was never registered.
func UnregisterFunction(name string) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	delete(globalRegistry, name)
}
