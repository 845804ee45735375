package certforward

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testCertDER builds a self-signed certificate and returns its DER encoding.
func testCertDER(t *testing.T, commonName string) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	return der
}

// capture runs a request through the middleware and returns the TLS state
// the inner handler observed.
func capture(t *testing.T, opts Options, configure func(*http.Request)) *tls.ConnectionState {
	t.Helper()
	var seen *tls.ConnectionState
	handler := Middleware(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.TLS
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if configure != nil {
		configure(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return seen
}

func TestForwardsCertificateFromHeader(t *testing.T) {
	der := testCertDER(t, "client.example.com")

	state := capture(t, Options{}, func(req *http.Request) {
		req.Header.Set(DefaultHeader, base64.StdEncoding.EncodeToString(der))
	})

	if state == nil || len(state.PeerCertificates) != 1 {
		t.Fatal("expected exactly one forwarded peer certificate")
	}
	if got := state.PeerCertificates[0].Subject.CommonName; got != "client.example.com" {
		t.Errorf("unexpected certificate subject %q", got)
	}
}

func TestMissingHeaderLeavesRequestUntouched(t *testing.T) {
	if state := capture(t, Options{}, nil); state != nil {
		t.Error("request without the header must keep a nil TLS state")
	}
}

func TestUndecodableHeaderIsIgnored(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not a certificate", base64.StdEncoding.EncodeToString([]byte("junk"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := capture(t, Options{}, func(req *http.Request) {
				req.Header.Set(DefaultHeader, tt.value)
			})
			if state != nil {
				t.Error("undecodable header must leave the request untouched")
			}
		})
	}
}

func TestCustomHeaderAndConverter(t *testing.T) {
	der := testCertDER(t, "proxy-client")
	opts := Options{
		Header: "X-Forwarded-Client-Cert",
		Convert: func(value string) (*x509.Certificate, error) {
			// The proxy sends raw hex rather than base64.
			return x509.ParseCertificate(der)
		},
	}

	state := capture(t, opts, func(req *http.Request) {
		req.Header.Set("X-Forwarded-Client-Cert", "anything")
	})
	if state == nil || len(state.PeerCertificates) != 1 {
		t.Fatal("expected the custom converter's certificate")
	}

	// The default header is ignored once a custom one is configured.
	state = capture(t, opts, func(req *http.Request) {
		req.Header.Set(DefaultHeader, "anything")
	})
	if state != nil {
		t.Error("default header must be ignored with a custom header configured")
	}
}

func TestExistingTLSStateIsPreserved(t *testing.T) {
	forwarded := testCertDER(t, "forwarded")
	existing := testCertDER(t, "existing")
	existingCert, err := x509.ParseCertificate(existing)
	if err != nil {
		t.Fatal(err)
	}

	original := &tls.ConnectionState{PeerCertificates: []*x509.Certificate{existingCert}}
	state := capture(t, Options{}, func(req *http.Request) {
		req.TLS = original
		req.Header.Set(DefaultHeader, base64.StdEncoding.EncodeToString(forwarded))
	})

	if state == nil || len(state.PeerCertificates) != 2 {
		t.Fatal("expected the forwarded certificate prepended to the existing chain")
	}
	if state.PeerCertificates[0].Subject.CommonName != "forwarded" {
		t.Error("forwarded certificate must come first")
	}
	if len(original.PeerCertificates) != 1 {
		t.Error("the original request's TLS state must not be mutated")
	}
}
