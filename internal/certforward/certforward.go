package certforward

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"net/http"
)

// DefaultHeader is the header reverse proxies commonly use to forward the
// client certificate of the terminated TLS connection.
const DefaultHeader = "X-Client-Cert"

// Converter turns a header value into a certificate.
type Converter func(headerValue string) (*x509.Certificate, error)

// Options configures the forwarding middleware.
type Options struct {
	// Header names the request header carrying the forwarded certificate.
	// Empty means DefaultHeader.
	Header string
	// Convert decodes the header value. Nil means Base64Converter.
	Convert Converter
}

// Base64Converter decodes a base64-encoded DER certificate.
func Base64Converter(headerValue string) (*x509.Certificate, error) {
	der, err := base64.StdEncoding.DecodeString(headerValue)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}

// Middleware returns a handler constructor that copies the forwarded
// certificate into TLS.PeerCertificates on a clone of the request. A missing
// or undecodable header leaves the request untouched.
func Middleware(opts Options) func(http.Handler) http.Handler {
	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}
	convert := opts.Convert
	if convert == nil {
		convert = Base64Converter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := r.Header.Get(header)
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}
			cert, err := convert(value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			forwarded := r.Clone(r.Context())
			var state tls.ConnectionState
			if r.TLS != nil {
				state = *r.TLS
			}
			state.PeerCertificates = append([]*x509.Certificate{cert}, state.PeerCertificates...)
			forwarded.TLS = &state
			next.ServeHTTP(w, forwarded)
		})
	}
}
