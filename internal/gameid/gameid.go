// Package gameid generates sortable round identifiers: a UUIDv7 rendered as
// 26 characters of lowercase Crockford base32.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator produces IDs from an optional entropy source.
type Generator struct {
	entropy io.Reader
}

// NewGenerator returns a generator reading random bits from entropy. A nil
// reader uses crypto/rand.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate returns a new ID using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new ID. IDs generated later sort after earlier ones at
// millisecond resolution.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.entropy != nil {
		id, err = uuid.NewV7FromReader(g.entropy)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate round id: " + err.Error())
	}
	return encoding.EncodeToString(id[:])
}

// Parse decodes an ID back into its UUID.
func Parse(id string) (uuid.UUID, error) {
	if len(id) != 26 {
		return uuid.Nil, fmt.Errorf("round ID must be exactly 26 characters, got %d", len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid round ID %q: %w", id, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return u, nil
}

// Validate checks that id is a well-formed version 7 round ID.
func Validate(id string) error {
	u, err := Parse(id)
	if err != nil {
		return err
	}
	if u.Version() != 7 {
		return fmt.Errorf("round ID has version %d, want 7", u.Version())
	}
	return nil
}
