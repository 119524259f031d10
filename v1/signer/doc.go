// Package signer implements the SigV4-style HMAC request signature used
// by the VikingDB control-plane and data-plane HTTP APIs.
//
// The scheme follows the AWS Signature Version 4 construction with the
// service's own constants: the algorithm tag is "HMAC-SHA256", the
// credential scope terminator is the literal "request", and the signed
// header set is fixed to content-type, host, x-content-sha256 and x-date.
//
// The signing algorithm, briefly:
//
//  1. Capture the current UTC time as <YYYYMMDD>T<HHMMSS>Z (x-date); its
//     first 8 characters form the short date.
//  2. Hash the exact request body bytes with SHA-256 (lowercase hex).
//  3. Build the canonical query string: keys sorted, keys and values
//     percent-encoded with the unreserved set (letters, digits, -_.~),
//     space as %20, one key=value pair per value for repeated keys.
//  4. Build the canonical request:
//     <METHOD>\n<PATH>\n<QUERY>\n<HEADERS>\n\n<SIGNED_HEADERS>\n<BODY_HASH>
//     where <HEADERS> is one name:value line per signed header in fixed
//     order. The empty line after the header block is part of the format.
//  5. String to sign: HMAC-SHA256\n<x-date>\n<scope>\n<hex(sha256(canonical))>
//     with scope <shortDate>/<region>/<service>/request.
//  6. Derive the signing key by chaining HMAC-SHA256 over the secret key
//     with short date, region, service and "request", then sign.
//
// A Signer is stateless and safe for concurrent use; every Sign call
// reads a fresh timestamp so derived key material is never cached across
// calls. The clock is injectable for deterministic tests:
//
//	s, _ := signer.New(creds, signer.WithClock(func() time.Time {
//		return time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
//	}))
//
// Callers must transmit the identical body bytes and query string that
// were signed; NormalizeQuery is exported so the transport layer can set
// the request URL's RawQuery to the exact signed form.
package signer
