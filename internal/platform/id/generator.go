package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	base36Alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	entitySuffixLen = 9
	playerCodeLen   = 6
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// TimestampGenerator yields "<unix millis><9 base36 chars>", sortable by creation time.
type TimestampGenerator struct {
	now func() time.Time
}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{now: time.Now}
}

// NewTimestampGeneratorWithClock is used by tests that pin the clock.
func NewTimestampGeneratorWithClock(now func() time.Time) *TimestampGenerator {
	if now == nil {
		now = time.Now
	}
	return &TimestampGenerator{now: now}
}

func (g *TimestampGenerator) NewID() (string, error) {
	suffix, err := randomString(base36Alphabet, entitySuffixLen)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(g.now().UnixMilli(), 10) + suffix, nil
}

// NewPlayerCode returns a shareable code such as "PL-7Q2K9D".
func NewPlayerCode(prefix string) (string, error) {
	code, err := randomString(base36Alphabet, playerCodeLen)
	if err != nil {
		return "", err
	}
	return prefix + strings.ToUpper(code), nil
}

func randomString(alphabet string, size int) (string, error) {
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, size)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
