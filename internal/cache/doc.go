// Package cache provides a small generic LRU cache.
//
// It backs memoised, derived data that is expensive to build and pure in its
// key, such as rescaled image luminance grids:
//
//	c := cache.New[string, *grid](16)
//	g := c.GetOrCreate("portrait@256", build)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
