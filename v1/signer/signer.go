package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	// algorithm is the tag emitted in the Authorization header and the
	// first line of the string to sign.
	algorithm = "HMAC-SHA256"

	// scopeSuffix terminates the credential scope and the key
	// derivation chain.
	scopeSuffix = "request"

	// contentType is the only content type the service accepts; it is
	// part of the signed header set.
	contentType = "application/json"

	// xDateLayout is the ISO-8601 basic timestamp format, second
	// precision, e.g. 20250609T120000Z.
	xDateLayout = "20060102T150405Z"
)

// signedHeaderNames is the fixed signed header set. Order matters: it
// must match both the canonical header block and the SignedHeaders field
// of the Authorization header.
var signedHeaderNames = []string{"content-type", "host", "x-content-sha256", "x-date"}

// Input validation errors. Signing performs no network I/O, so these are
// the only failures a Sign call can produce.
var (
	ErrPathNotAbsolute = errors.New("signer: request path must start with /")
	ErrEmptyMethod     = errors.New("signer: request method is empty")
	ErrEmptyHost       = errors.New("signer: request host is empty")
	ErrEmptyScope      = errors.New("signer: region and service are required")
)

// Request describes the outbound HTTP request to sign. Body must hold
// the exact bytes that will be transmitted; any divergence between the
// signed bytes and the wire bytes is rejected by the server.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Host    string
	Region  string
	Service string
}

// Signer computes authentication headers for outbound requests. It holds
// no mutable state and may be shared across goroutines.
type Signer struct {
	creds Credentials
	now   func() time.Time
}

// Option customizes a Signer.
type Option func(*Signer)

// WithClock overrides the time source. Intended for tests that need
// deterministic signature output; production code uses the real clock.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// New constructs a Signer for the given credentials. Missing credentials
// are a configuration error reported here, before any request is signed.
func New(creds Credentials, opts ...Option) (*Signer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	s := &Signer{creds: creds, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign produces the Host, Content-Type, X-Date, X-Content-Sha256 and
// Authorization headers for the request. Each call reads a fresh UTC
// timestamp; the result is deterministic for a fixed clock reading.
func (s *Signer) Sign(req Request) (http.Header, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if !strings.HasPrefix(req.Path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrPathNotAbsolute, req.Path)
	}
	if req.Host == "" {
		return nil, ErrEmptyHost
	}
	if req.Region == "" || req.Service == "" {
		return nil, ErrEmptyScope
	}

	xDate := s.now().UTC().Format(xDateLayout)
	shortDate := xDate[:8]
	bodyHash := hashSHA256Hex(req.Body)

	// Canonical header block, one name:value line per signed header in
	// fixed order, newline-terminated. The exact values emitted here are
	// the ones returned to the caller below.
	canonicalHeaders := strings.Join([]string{
		"content-type:" + contentType,
		"host:" + req.Host,
		"x-content-sha256:" + bodyHash,
		"x-date:" + xDate,
	}, "\n") + "\n"

	signedHeaders := strings.Join(signedHeaderNames, ";")

	// The join after the newline-terminated header block yields the
	// empty line the format requires.
	canonicalRequest := strings.Join([]string{
		method,
		req.Path,
		NormalizeQuery(req.Query),
		canonicalHeaders,
		signedHeaders,
		bodyHash,
	}, "\n")

	scope := strings.Join([]string{shortDate, req.Region, req.Service, scopeSuffix}, "/")

	stringToSign := strings.Join([]string{
		algorithm,
		xDate,
		scope,
		hashSHA256Hex([]byte(canonicalRequest)),
	}, "\n")

	signingKey := deriveSigningKey([]byte(s.creds.SecretKey), shortDate, req.Region, req.Service)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, s.creds.AccessKey, scope, signedHeaders, signature)

	h := http.Header{}
	h.Set("Host", req.Host)
	h.Set("Content-Type", contentType)
	h.Set("X-Date", xDate)
	h.Set("X-Content-Sha256", bodyHash)
	h.Set("Authorization", authorization)
	return h, nil
}

// NormalizeQuery serializes query parameters in canonical form: entries
// sorted by key, repeated keys emitting one key=value pair per value in
// their given order, keys and values percent-encoded with the unreserved
// set. An empty or nil set yields "".
//
// The transport layer must send this exact string as the request's raw
// query, otherwise the server recomputes a different signature.
func NormalizeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range query[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escape(k))
			b.WriteByte('=')
			b.WriteString(escape(v))
		}
	}
	return b.String()
}

// escape percent-encodes everything outside the unreserved set
// (letters, digits, '-', '_', '.', '~'). Space becomes %20, never '+'.
func escape(s string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// deriveSigningKey narrows the raw secret to a key valid for one day,
// one region and one service: kDate = HMAC(secret, shortDate), then
// chained over region, service and the scope suffix.
func deriveSigningKey(secret []byte, shortDate, region, service string) []byte {
	k := hmacSHA256(secret, shortDate)
	k = hmacSHA256(k, region)
	k = hmacSHA256(k, service)
	return hmacSHA256(k, scopeSuffix)
}

func hmacSHA256(key []byte, content string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(content))
	return mac.Sum(nil)
}

func hashSHA256Hex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
