package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Combine строит хеш программы: H( first || rest[0] || rest[1] ... ).
// Порядок должен быть детерминированным: файлы идут в порядке загрузки.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
