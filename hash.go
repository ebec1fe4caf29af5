package compiler

import (
	"encoding/base32"

	"github.com/minio/highwayhash"
)

// The key only has to be fixed: the hash identifies a source buffer across
// runs, it is not a secret.
var hashKey = []byte("svelte-go/compiler.source.hash.k")

// HashFromSource returns a short stable identifier for a source buffer.
func HashFromSource(source string) string {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return ""
	}
	h.Write([]byte(source))
	return base32.StdEncoding.EncodeToString(h.Sum(nil))[:8]
}
