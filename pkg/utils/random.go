package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomString generates a random string of fixed length
func RandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateVisitorID returns a stable anonymous identifier for a browser.
// Prefers a cryptographically random UUID; falls back to a timestamp+random
// composite when the system randomness source is unavailable.
func GenerateVisitorID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("visitor-%d-%s", time.Now().UnixMilli(), RandomString(9))
	}
	return id.String()
}
