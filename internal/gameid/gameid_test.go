package gameid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != 26 {
		t.Errorf("expected 26 characters, got %d", len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestGenerateUniqueAndSorted(t *testing.T) {
	ids := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
		if prev != "" && strings.Compare(prev, id) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", prev, id)
		}
		prev = id
	}
}

func TestGeneratorWithEntropy(t *testing.T) {
	gen := NewGenerator(bytes.NewReader(bytes.Repeat([]byte{0xab}, 64)))
	id := gen.Generate()
	if err := Validate(id); err != nil {
		t.Fatalf("generated ID failed validation: %v", err)
	}
	u, err := Parse(id)
	if err != nil {
		t.Fatal(err)
	}
	if u.Version() != 7 {
		t.Errorf("expected version 7, got %d", u.Version())
	}
}

func TestValidate(t *testing.T) {
	valid := Generate()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", valid, false},
		{"too short", valid[:20], true},
		{"too long", valid + "ab", true},
		{"invalid character", valid[:25] + "i", true},
		{"uppercase not allowed", strings.ToUpper(valid), true},
		{"empty", "", true},
		{"version 4", encoding.EncodeToString(mustBytes(uuid.New())), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func mustBytes(u uuid.UUID) []byte {
	return u[:]
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}
	for _, char := range "ilou" {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
	for i := 1; i < len(alphabet); i++ {
		if alphabet[i-1] >= alphabet[i] {
			t.Errorf("alphabet must be ascending for IDs to sort, %c >= %c", alphabet[i-1], alphabet[i])
		}
	}
}
