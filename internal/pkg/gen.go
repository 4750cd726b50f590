package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	roomCodeLength   = 4
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewSessionID - generates a new unique session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewRoomCode - generates a short uppercase room code. Uniqueness is not
// guaranteed; callers regenerate on collision.
func NewRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			return ""
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}
	return string(code)
}
