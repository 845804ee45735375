// Package reconcile implements the idempotent add, remove, and refresh
// operations over a project document's OpenAPI references. A source
// identifier is classified exactly once into a local specification file, a
// nested project link, or an absolute URL; URL sources are downloaded fully
// before the document is touched, and the document is persisted atomically
// at the end of each operation.
package reconcile
