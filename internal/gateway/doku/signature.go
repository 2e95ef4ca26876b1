package doku

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
	"time"
)

// Mode selects how the request signature is derived.
type Mode string

const (
	// ModeTokenB2B signs a base64 SHA-256 digest and sends a B2B bearer token.
	ModeTokenB2B Mode = "token_b2b"
	// ModeHexDigest signs a hex SHA-256 digest with no token exchange.
	ModeHexDigest Mode = "hex_digest"
)

var wib = time.FixedZone("WIB", 7*60*60)

// Timestamp formats t for the given mode: local WIB time with a fixed
// +07:00 suffix and no fraction for ModeTokenB2B, UTC with milliseconds
// otherwise.
func Timestamp(mode Mode, t time.Time) string {
	if mode == ModeHexDigest {
		return t.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return t.In(wib).Format("2006-01-02T15:04:05") + "+07:00"
}

// Digest hashes the exact body bytes that go on the wire.
func Digest(mode Mode, body []byte) string {
	sum := sha256.Sum256(body)
	if mode == ModeHexDigest {
		return hex.EncodeToString(sum[:])
	}
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Components is the newline-joined string covered by the HMAC.
func Components(clientID, requestID, timestamp, target, digest string) string {
	return "Client-Id:" + clientID + "\n" +
		"Request-Id:" + requestID + "\n" +
		"Request-Timestamp:" + timestamp + "\n" +
		"Request-Target:" + target + "\n" +
		"Digest:" + digest
}

// Sign returns base64(HMAC-SHA256(secret, components)).
func Sign(secret, components string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(components))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// RequestID is "{prefix}-{unixMillis}-{random base36}".
func RequestID(prefix string, t time.Time) string {
	r := strconv.FormatUint(rand.Uint64(), 36)
	if len(r) > 13 {
		r = r[:13]
	}
	return prefix + "-" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + r
}
