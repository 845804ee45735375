// Package openapi inspects downloaded specification documents. It sniffs the
// declared openapi/swagger version, checks it against the supported range,
// and validates the document shape against an embedded JSON schema. All
// findings are advisory: the reconciler reports them as warnings and links
// the reference anyway.
package openapi
