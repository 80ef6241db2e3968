package export

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainArtifact prefixes artifact digests. The version suffix leaves room
// for a future algorithm change.
const DomainArtifact = "tiaki/artifact/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the content-addressed identity of the artifact bytes.
// Identical requests produce identical digests.
func (a *Artifact) Digest() string {
	return hashWithDomain(DomainArtifact, a.Data)
}
