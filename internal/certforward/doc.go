// Package certforward copies a client certificate forwarded by a TLS-
// terminating reverse proxy from a request header onto the request's TLS
// state, so downstream handlers see it as if the connection had presented
// it. The certificate is not validated here; that is the job of whatever
// consumes it.
package certforward
