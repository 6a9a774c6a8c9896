package encryption

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/your-org/sightline/internal/models"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := LoadOrCreate(filepath.Join(t.TempDir(), "keys", "sightline.key"))
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	return c
}

func TestStringRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	plain := "observed near 42 Elm Street"
	enc, err := c.EncryptString(plain)
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}
	if enc == plain {
		t.Fatal("ciphertext equals plaintext")
	}
	if !strings.HasPrefix(enc, "-----BEGIN AGE ENCRYPTED FILE-----") {
		t.Errorf("ciphertext not armored: %q", enc[:40])
	}

	dec, err := c.DecryptString(enc)
	if err != nil {
		t.Fatalf("DecryptString() error = %v", err)
	}
	if dec != plain {
		t.Errorf("round trip = %q, want %q", dec, plain)
	}
}

func TestEmptyAndPlaintextPassThrough(t *testing.T) {
	c := newTestCipher(t)

	if enc, err := c.EncryptString(""); err != nil || enc != "" {
		t.Errorf("EncryptString(\"\") = %q, %v; want \"\", nil", enc, err)
	}
	// Rows written before encryption was enabled are plain text.
	if dec, err := c.DecryptString("legacy plain value"); err != nil || dec != "legacy plain value" {
		t.Errorf("DecryptString(plain) = %q, %v; want passthrough", dec, err)
	}
}

func TestKeyPersistsAcrossLoads(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "sightline.key")

	first, err := LoadOrCreate(keyPath)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	enc, err := first.EncryptString("secret")
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("key file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key file mode = %v, want 0600", info.Mode().Perm())
	}

	second, err := LoadOrCreate(keyPath)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	dec, err := second.DecryptString(enc)
	if err != nil {
		t.Fatalf("DecryptString() after reload error = %v", err)
	}
	if dec != "secret" {
		t.Errorf("decrypted = %q, want %q", dec, "secret")
	}
}

func TestObservationFieldRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	obs := models.Observation{
		Date:  "2024-05-01",
		Notes: "waited by the gate for twenty minutes",
	}
	obs.Person.FirstName = "Jordan"
	obs.Person.HairColor = "brown" // descriptive attribute, stays plaintext
	obs.Vehicle.Make = "Toyota"

	if err := c.EncryptObservation(&obs); err != nil {
		t.Fatalf("EncryptObservation() error = %v", err)
	}
	if obs.Notes == "waited by the gate for twenty minutes" {
		t.Error("notes were not encrypted")
	}
	if obs.Person.FirstName == "Jordan" {
		t.Error("first name was not encrypted")
	}
	if obs.Person.HairColor != "brown" {
		t.Error("hair color must stay plaintext")
	}
	if obs.Vehicle.Make != "Toyota" {
		t.Error("vehicle make must stay plaintext")
	}

	if err := c.DecryptObservation(&obs); err != nil {
		t.Fatalf("DecryptObservation() error = %v", err)
	}
	if obs.Notes != "waited by the gate for twenty minutes" || obs.Person.FirstName != "Jordan" {
		t.Error("observation fields did not round trip")
	}
}
