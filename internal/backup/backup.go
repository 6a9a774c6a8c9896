// Package backup serializes the full observation dataset into a single
// age-encrypted archive and restores it.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/your-org/sightline/internal/encryption"
	"github.com/your-org/sightline/internal/models"
)

// ArchiveVersion is bumped when the envelope layout changes; Import rejects
// versions it doesn't understand instead of guessing.
const ArchiveVersion = 1

type envelope struct {
	Version      int                  `json:"version"`
	ExportedAt   time.Time            `json:"exported_at"`
	Observations []models.Observation `json:"observations"`
}

// Export writes the dataset as an encrypted archive to w. Records are
// expected decrypted (as the store hands them out); the archive carries its
// own encryption layer.
func Export(w io.Writer, cipher *encryption.Cipher, records []models.Observation) error {
	payload, err := json.Marshal(envelope{
		Version:      ArchiveVersion,
		ExportedAt:   time.Now().UTC(),
		Observations: records,
	})
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}

	if err := cipher.Encrypt(w, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("encrypt archive: %w", err)
	}
	return nil
}

// Import decrypts and parses an archive produced by Export.
func Import(r io.Reader, cipher *encryption.Cipher) ([]models.Observation, error) {
	var plain bytes.Buffer
	if err := cipher.Decrypt(&plain, r); err != nil {
		return nil, fmt.Errorf("decrypt archive: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(plain.Bytes(), &env); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}

	if env.Version != ArchiveVersion {
		return nil, fmt.Errorf("unsupported archive version %d", env.Version)
	}
	return env.Observations, nil
}
