// Package project loads, mutates, and saves the XML project document that
// records OpenAPI references. A document is owned by exactly one operation:
// it is loaded fresh from disk, mutated in memory, and written back
// atomically (or discarded on failure); no entry survives across operations.
package project
