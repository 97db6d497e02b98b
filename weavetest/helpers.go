package weavetest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iov-one/bazaar"
)

// NewCondition returns a random condition. Each call returns a different
// value.
func NewCondition() bazaar.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return bazaar.NewCondition("sigs", "ed25519", data)
}

// SequenceID returns an ID encoded the way a sequence incrementation
// does it.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
