package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/sightline/internal/config"
	"github.com/your-org/sightline/internal/encryption"
	"github.com/your-org/sightline/internal/models"
)

// PostgresStore persists observations. Sensitive text fields are encrypted
// with the field cipher on the way in and decrypted on the way out, so
// callers (including the search engine) only see plaintext.
type PostgresStore struct {
	pool   *pgxpool.Pool
	cipher *encryption.Cipher
}

func NewPostgresStore(cfg config.DatabaseConfig, cipher *encryption.Cipher) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool, cipher: cipher}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the observations table if it doesn't exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS observations (
			id               BIGSERIAL PRIMARY KEY,
			date             TEXT NOT NULL,
			time             TEXT NOT NULL DEFAULT '',
			person           JSONB NOT NULL DEFAULT '{}',
			vehicle          JSONB NOT NULL DEFAULT '{}',
			notes            TEXT NOT NULL DEFAULT '',
			additional_notes TEXT NOT NULL DEFAULT '',
			images           JSONB NOT NULL DEFAULT '[]',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CreateObservation inserts a new record and fills in the assigned id and
// timestamps. The caller's copy stays plaintext.
func (s *PostgresStore) CreateObservation(ctx context.Context, o *models.Observation) error {
	enc := *o
	if err := s.cipher.EncryptObservation(&enc); err != nil {
		return fmt.Errorf("encrypt observation: %w", err)
	}

	person, vehicle, images, err := marshalParts(&enc)
	if err != nil {
		return err
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO observations (date, time, person, vehicle, notes, additional_notes, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		enc.Date, enc.Time, person, vehicle, enc.Notes, enc.AdditionalNotes, images,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create observation: %w", err)
	}
	return nil
}

// GetObservation returns the record by id, decrypted, or nil when absent.
func (s *PostgresStore) GetObservation(ctx context.Context, id int64) (*models.Observation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, date, time, person, vehicle, notes, additional_notes, images, created_at, updated_at
		 FROM observations WHERE id = $1`, id)

	o, err := scanObservation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get observation: %w", err)
	}
	if err := s.cipher.DecryptObservation(o); err != nil {
		return nil, fmt.Errorf("decrypt observation %d: %w", o.ID, err)
	}
	return o, nil
}

// ListObservations returns every record, decrypted, newest creation first.
// This is also the snapshot handed to the search engine; ranking reorders it.
func (s *PostgresStore) ListObservations(ctx context.Context) ([]models.Observation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, date, time, person, vehicle, notes, additional_notes, images, created_at, updated_at
		 FROM observations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if err := s.cipher.DecryptObservation(o); err != nil {
			return nil, fmt.Errorf("decrypt observation %d: %w", o.ID, err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateObservation replaces every mutable field of the record.
func (s *PostgresStore) UpdateObservation(ctx context.Context, o *models.Observation) error {
	enc := *o
	if err := s.cipher.EncryptObservation(&enc); err != nil {
		return fmt.Errorf("encrypt observation: %w", err)
	}

	person, vehicle, images, err := marshalParts(&enc)
	if err != nil {
		return err
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE observations
		 SET date = $1, time = $2, person = $3, vehicle = $4,
		     notes = $5, additional_notes = $6, images = $7, updated_at = now()
		 WHERE id = $8
		 RETURNING updated_at`,
		enc.Date, enc.Time, person, vehicle, enc.Notes, enc.AdditionalNotes, images, o.ID,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("observation not found")
		}
		return fmt.Errorf("update observation: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteObservation(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM observations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete observation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("observation not found")
	}
	return nil
}

// UpdateImageMetadata attaches extracted metadata to one image of a record.
// Called by the metadata worker after EXIF/geocode processing.
func (s *PostgresStore) UpdateImageMetadata(ctx context.Context, obsID int64, imageID uuid.UUID, meta *models.ImageMetadata) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT images FROM observations WHERE id = $1 FOR UPDATE`, obsID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("observation not found")
		}
		return fmt.Errorf("load images: %w", err)
	}

	var images []models.Image
	if err := json.Unmarshal(raw, &images); err != nil {
		return fmt.Errorf("unmarshal images: %w", err)
	}

	found := false
	for i := range images {
		if images[i].ID == imageID {
			images[i].Metadata = meta
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("image %s not found on observation %d", imageID, obsID)
	}

	updated, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE observations SET images = $1, updated_at = now() WHERE id = $2`,
		updated, obsID); err != nil {
		return fmt.Errorf("store image metadata: %w", err)
	}

	return tx.Commit(ctx)
}

// ImportObservations restores a full dataset: existing rows are removed,
// archived rows keep their original ids, and the id sequence is advanced so
// ids are never reused.
func (s *PostgresStore) ImportObservations(ctx context.Context, records []models.Observation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM observations`); err != nil {
		return fmt.Errorf("clear observations: %w", err)
	}

	for i := range records {
		enc := records[i]
		if err := s.cipher.EncryptObservation(&enc); err != nil {
			return fmt.Errorf("encrypt observation %d: %w", enc.ID, err)
		}
		person, vehicle, images, err := marshalParts(&enc)
		if err != nil {
			return err
		}
		createdAt := enc.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO observations (id, date, time, person, vehicle, notes, additional_notes, images, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
			enc.ID, enc.Date, enc.Time, person, vehicle, enc.Notes, enc.AdditionalNotes, images, createdAt); err != nil {
			return fmt.Errorf("import observation %d: %w", enc.ID, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`SELECT setval('observations_id_seq', GREATEST((SELECT COALESCE(MAX(id), 0) FROM observations), 1))`); err != nil {
		return fmt.Errorf("advance id sequence: %w", err)
	}

	return tx.Commit(ctx)
}

func marshalParts(o *models.Observation) (person, vehicle, images []byte, err error) {
	if person, err = json.Marshal(o.Person); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal person: %w", err)
	}
	if vehicle, err = json.Marshal(o.Vehicle); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal vehicle: %w", err)
	}
	if o.Images == nil {
		images = []byte("[]")
	} else if images, err = json.Marshal(o.Images); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	return person, vehicle, images, nil
}

func scanObservation(row pgx.Row) (*models.Observation, error) {
	o := &models.Observation{}
	var person, vehicle, images []byte
	err := row.Scan(&o.ID, &o.Date, &o.Time, &person, &vehicle,
		&o.Notes, &o.AdditionalNotes, &images, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(person, &o.Person); err != nil {
		return nil, fmt.Errorf("unmarshal person: %w", err)
	}
	if err := json.Unmarshal(vehicle, &o.Vehicle); err != nil {
		return nil, fmt.Errorf("unmarshal vehicle: %w", err)
	}
	if err := json.Unmarshal(images, &o.Images); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	return o, nil
}
