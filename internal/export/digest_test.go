package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	a := &Artifact{Data: []byte("tiaki")}
	b := &Artifact{Data: []byte("tiaki")}
	c := &Artifact{Data: []byte("tiaki ")}

	assert.Len(t, a.Digest(), 64)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())
}

func TestDigestIsDomainSeparated(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t, hashWithDomain("tiaki/artifact/v1", data), hashWithDomain("tiaki/artifact/v2", data))
	assert.NotEqual(t, hashWithDomain("a", []byte("bc")), hashWithDomain("ab", []byte("c")))
}
