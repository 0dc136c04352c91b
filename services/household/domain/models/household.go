package models

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// inviteCodeAlphabet omits easily confused characters (0/O, 1/I).
const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 6
)

// Household is the group of members collaborating on one naming decision.
// It owns the swipe ledger partition and the derived match set.
type Household struct {
	ID         uuid.UUID
	InviteCode string
	CreatedAt  time.Time
}

// NewHousehold constructs a Household with a generated ID and invite code.
func NewHousehold() *Household {
	return &Household{
		ID:         uuid.New(),
		InviteCode: generateInviteCode(),
		CreatedAt:  time.Now().UTC(),
	}
}

func generateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing is unrecoverable for code generation
			panic(err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code)
}
