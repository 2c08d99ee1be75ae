package pkg

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// CalculateChecksum computes the keyed digest Cobre attaches to webhook
// confirmations: lowercase hex SHA-256 over
// "<noveltyUuid>_<noveltyDetailUuid>_<secret>".
func CalculateChecksum(noveltyUUID, noveltyDetailUUID, secret string) string {
	sum := sha256.Sum256([]byte(noveltyUUID + "_" + noveltyDetailUUID + "_" + secret))
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum reports whether the presented checksum matches the expected
// digest for the event. Comparison is constant-time; a mismatch is the
// caller's signal to reject the webhook before touching any state.
func VerifyChecksum(noveltyUUID, noveltyDetailUUID, secret, presented string) bool {
	expected := CalculateChecksum(noveltyUUID, noveltyDetailUUID, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
