// Package fetch retrieves remote specification content. The Downloader
// interface is the seam the reconciler depends on; the HTTP implementation
// accepts an injected client so tests can point it at a local server.
package fetch
