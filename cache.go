package jsonpath

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// CompileCache memoizes [Parser.Parse] by expression string: concurrent
// calls for the same expression collapse into a single parse via
// singleflight, and the result is cached for subsequent calls. Safe for
// concurrent use.
type CompileCache struct {
	parser *Parser
	group  singleflight.Group

	mu    sync.RWMutex
	paths map[string]*Path
}

// NewCompileCache creates a [CompileCache] backed by a [Parser] configured
// with opts.
func NewCompileCache(opts ...Option) *CompileCache {
	return &CompileCache{
		parser: NewParser(opts...),
		paths:  make(map[string]*Path),
	}
}

// Parse returns the cached [Path] for expr, compiling and caching it on
// first use. Concurrent calls for the same expr share one underlying
// [Parser.Parse] call.
func (c *CompileCache) Parse(expr string) (*Path, error) {
	c.mu.RLock()
	if p, ok := c.paths[expr]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(expr, func() (any, error) {
		p, err := c.parser.Parse(expr)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.paths[expr] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Path), nil
}

// defaultCache backs the package-level [ParseCached] function.
var defaultCache = NewCompileCache()

// ParseCached compiles expr using a shared, process-wide [CompileCache]
// (RFC 9535 built-ins only, default max depth, warnings discarded).
// Equivalent to calling Parse on a single shared [CompileCache] with
// default options.
func ParseCached(expr string) (*Path, error) {
	return defaultCache.Parse(expr)
}
