// Package encryption provides the field-level cipher for sensitive
// observation text. Fields are encrypted with filippo.io/age X25519 before
// they reach Postgres and decrypted when records are read back; the search
// engine only ever sees plaintext.
package encryption

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// Cipher encrypts and decrypts individual string fields using a single
// X25519 identity loaded from disk.
type Cipher struct {
	identity  *age.X25519Identity
	recipient *age.X25519Recipient
}

// LoadOrCreate reads the age identity from keyPath, generating and writing a
// new one (0600) on first run.
func LoadOrCreate(keyPath string) (*Cipher, error) {
	data, err := os.ReadFile(keyPath)
	if os.IsNotExist(err) {
		return generate(keyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identity, err := age.ParseX25519Identity(line)
		if err != nil {
			return nil, fmt.Errorf("parse identity: %w", err)
		}
		return &Cipher{identity: identity, recipient: identity.Recipient()}, nil
	}
	return nil, fmt.Errorf("no identity found in %s", keyPath)
}

func generate(keyPath string) (*Cipher, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	content := fmt.Sprintf("# public key: %s\n%s\n", identity.Recipient(), identity)
	if err := os.WriteFile(keyPath, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	return &Cipher{identity: identity, recipient: identity.Recipient()}, nil
}

// Encrypt writes age-encrypted ciphertext for r to w.
func (c *Cipher) Encrypt(w io.Writer, r io.Reader) error {
	encWriter, err := age.Encrypt(w, c.recipient)
	if err != nil {
		return fmt.Errorf("create encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypt data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalize ciphertext: %w", err)
	}
	return nil
}

// Decrypt writes the plaintext for age ciphertext r to w.
func (c *Cipher) Decrypt(w io.Writer, r io.Reader) error {
	decReader, err := age.Decrypt(r, c.identity)
	if err != nil {
		return fmt.Errorf("open ciphertext: %w", err)
	}
	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("decrypt data: %w", err)
	}
	return nil
}

// EncryptString armors a single field value. Empty strings pass through so
// absent attributes stay absent (and stay distinguishable from encrypted
// empties downstream).
func (c *Cipher) EncryptString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	var buf bytes.Buffer
	aw := armor.NewWriter(&buf)
	if err := c.Encrypt(aw, strings.NewReader(s)); err != nil {
		return "", err
	}
	if err := aw.Close(); err != nil {
		return "", fmt.Errorf("close armor: %w", err)
	}
	return buf.String(), nil
}

// DecryptString reverses EncryptString. Values without the armor header are
// returned as-is, which lets plaintext rows written before encryption was
// enabled keep loading.
func (c *Cipher) DecryptString(s string) (string, error) {
	if s == "" || !strings.HasPrefix(s, armor.Header) {
		return s, nil
	}
	var buf bytes.Buffer
	if err := c.Decrypt(&buf, armor.NewReader(strings.NewReader(s))); err != nil {
		return "", err
	}
	return buf.String(), nil
}
