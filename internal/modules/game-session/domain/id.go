package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	idAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	slugLength = 5
	idLength   = 20
)

// NewSlug returns a short session identifier. Collisions are not
// checked for - the id space is small on purpose so that ids are
// shareable by hand.
func NewSlug() string {
	return randomString(slugAlphabet, slugLength)
}

// NewID returns a random identifier for players and topics.
func NewID() string {
	return randomString(idAlphabet, idLength)
}

func randomString(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out)
}
