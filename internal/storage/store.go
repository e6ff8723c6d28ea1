// ABOUTME: SQLite-backed store for context records and candidate products
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support with JSON-encoded vectors
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/adapta/recommender/internal/models"
)

// Store persists context records and products in SQLite
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns the default data directory following XDG conventions
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/recommender"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "recommender")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "recommender.db")
}

// Open opens or creates a SQLite database at the given path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveContext inserts or replaces a context record, assigning an ID and
// timestamps when absent
func (s *Store) SaveContext(ctx context.Context, rec *models.ContextRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	data, err := encodeJSON(rec.Data)
	if err != nil {
		return fmt.Errorf("encoding context data: %w", err)
	}
	embedding, err := encodeJSON(rec.Embedding)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO contexts
		(id, user_id, session_id, kind, name, summary, data, embedding,
		 weight, priority, message_count, last_activity, active, archived,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.SessionID, string(rec.Kind), rec.Name, rec.Summary,
		data, embedding, rec.Weight, rec.Priority, rec.MessageCount,
		rec.LastActivity, rec.Active, rec.Archived, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving context: %w", err)
	}
	return nil
}

// ListActiveContexts returns the user's active, non-archived context
// records, most recently active first
func (s *Store) ListActiveContexts(ctx context.Context, userID string) ([]models.ContextRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, kind, name, summary, data, embedding,
		       weight, priority, message_count, last_activity, active, archived,
		       created_at, updated_at
		FROM contexts
		WHERE user_id = ? AND active = 1 AND archived = 0
		ORDER BY last_activity DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying contexts: %w", err)
	}
	defer rows.Close()

	var records []models.ContextRecord
	for rows.Next() {
		rec, err := scanContext(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListContexts returns all non-archived context records for a user,
// including inactive ones
func (s *Store) ListContexts(ctx context.Context, userID string) ([]models.ContextRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, kind, name, summary, data, embedding,
		       weight, priority, message_count, last_activity, active, archived,
		       created_at, updated_at
		FROM contexts
		WHERE user_id = ? AND archived = 0
		ORDER BY last_activity DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying contexts: %w", err)
	}
	defer rows.Close()

	var records []models.ContextRecord
	for rows.Next() {
		rec, err := scanContext(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ArchiveContext soft-deletes a context record
func (s *Store) ArchiveContext(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE contexts SET archived = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("archiving context: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking archive result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("context not found: %s", id)
	}
	return nil
}

// SaveContextEmbedding persists a freshly computed embedding for a context
func (s *Store) SaveContextEmbedding(ctx context.Context, id string, vector []float64) error {
	embedding, err := encodeJSON(vector)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE contexts SET embedding = ?, updated_at = ? WHERE id = ?`,
		embedding, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("saving context embedding: %w", err)
	}
	return nil
}

// SaveProduct inserts or replaces a product, assigning an ID and
// timestamps when absent
func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product requires a name")
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	features, err := encodeJSON(p.Features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	techStack, err := encodeJSON(p.TechStack)
	if err != nil {
		return fmt.Errorf("encoding tech stack: %w", err)
	}
	useCases, err := encodeJSON(p.UseCases)
	if err != nil {
		return fmt.Errorf("encoding use cases: %w", err)
	}
	embedding, err := encodeJSON(p.Embedding)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO products
		(id, name, description, category, subcategory, platform, features,
		 tech_stack, use_cases, target_audience, keywords, summary, rating,
		 available, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.Subcategory, p.Platform,
		features, techStack, useCases, p.TargetAudience, p.Keywords, p.Summary,
		p.Rating, p.Available, embedding, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// SaveProductEmbedding persists a freshly computed embedding for a product
func (s *Store) SaveProductEmbedding(ctx context.Context, id string, vector []float64) error {
	embedding, err := encodeJSON(vector)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET embedding = ?, updated_at = ? WHERE id = ?`,
		embedding, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("saving product embedding: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking embedding update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

// ListAvailableProducts returns the candidate pool of available products
func (s *Store) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, category, subcategory, platform, features,
		       tech_stack, use_cases, target_audience, keywords, summary, rating,
		       available, embedding, created_at, updated_at
		FROM products
		WHERE available = 1
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var features, techStack, useCases, embedding sql.NullString
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category,
			&p.Subcategory, &p.Platform, &features, &techStack, &useCases,
			&p.TargetAudience, &p.Keywords, &p.Summary, &p.Rating,
			&p.Available, &embedding, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		if err := decodeJSON(features, &p.Features); err != nil {
			return nil, fmt.Errorf("decoding features: %w", err)
		}
		if err := decodeJSON(techStack, &p.TechStack); err != nil {
			return nil, fmt.Errorf("decoding tech stack: %w", err)
		}
		if err := decodeJSON(useCases, &p.UseCases); err != nil {
			return nil, fmt.Errorf("decoding use cases: %w", err)
		}
		if err := decodeJSON(embedding, &p.Embedding); err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// scanContext reads one context row
func scanContext(rows *sql.Rows) (models.ContextRecord, error) {
	var rec models.ContextRecord
	var kind string
	var data, embedding sql.NullString
	err := rows.Scan(&rec.ID, &rec.UserID, &rec.SessionID, &kind, &rec.Name,
		&rec.Summary, &data, &embedding, &rec.Weight, &rec.Priority,
		&rec.MessageCount, &rec.LastActivity, &rec.Active, &rec.Archived,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return rec, fmt.Errorf("scanning context: %w", err)
	}
	rec.Kind = models.ContextKind(kind)
	if err := decodeJSON(data, &rec.Data); err != nil {
		return rec, fmt.Errorf("decoding context data: %w", err)
	}
	if err := decodeJSON(embedding, &rec.Embedding); err != nil {
		return rec, fmt.Errorf("decoding embedding: %w", err)
	}
	return rec, nil
}

// encodeJSON marshals a value to its JSON text form, empty for nil
func encodeJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeJSON unmarshals JSON text into out, leaving out untouched for
// empty input
func decodeJSON(s sql.NullString, out any) error {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), out)
}
