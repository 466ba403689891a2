package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SequenceRepository defines the interface for sequence persistence
type SequenceRepository interface {
	Get(ctx context.Context, id string) (*entity.Sequence, error)
	Insert(ctx context.Context, sequence entity.Sequence) error
	Update(ctx context.Context, sequence entity.Sequence) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Sequence, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Sequence, error)
}

var _ SequenceRepository = &SequencePostgres{}

const sequenceColumns = `id, user_id, org_id, name, content, messages, created_at, updated_at`

const (
	getSequenceQuery = `SELECT ` + sequenceColumns + ` FROM sequences WHERE id = $1`

	insertSequenceQuery = `INSERT INTO sequences (` + sequenceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateSequenceQuery = `UPDATE sequences
SET user_id = $2, org_id = $3, name = $4, content = $5, messages = $6, updated_at = $7
WHERE id = $1`

	listSequencesByUserQuery = `SELECT ` + sequenceColumns + ` FROM sequences WHERE user_id = $1`

	listSequencesByOrgQuery = `SELECT ` + sequenceColumns + ` FROM sequences WHERE org_id = $1`
)

// SequencePostgres implements SequenceRepository on the sequences table.
type SequencePostgres struct {
	db DBTX
}

func NewSequencePostgres(db DBTX) *SequencePostgres {
	return &SequencePostgres{db: db}
}

func (r *SequencePostgres) Get(ctx context.Context, id string) (*entity.Sequence, error) {
	sequence, err := scanSequence(r.db.QueryRow(ctx, getSequenceQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSequenceNotFound
		}
		return nil, fmt.Errorf("get sequence: %w", err)
	}

	return sequence, nil
}

func (r *SequencePostgres) Insert(ctx context.Context, sequence entity.Sequence) error {
	messages, err := encodeMessages(sequence.Messages)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, insertSequenceQuery,
		sequence.ID,
		sequence.UserID,
		sequence.OrgID,
		sequence.Name,
		sequence.Content,
		messages,
		sequence.CreatedAt,
		sequence.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sequence: %w", err)
	}

	return nil
}

// Update overwrites every mutable column. created_at is never written.
func (r *SequencePostgres) Update(ctx context.Context, sequence entity.Sequence) error {
	messages, err := encodeMessages(sequence.Messages)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, updateSequenceQuery,
		sequence.ID,
		sequence.UserID,
		sequence.OrgID,
		sequence.Name,
		sequence.Content,
		messages,
		sequence.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sequence: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrSequenceNotFound
	}

	return nil
}

func (r *SequencePostgres) ListByUser(ctx context.Context, userID string) ([]*entity.Sequence, error) {
	sequences, err := r.list(ctx, listSequencesByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list sequences by user: %w", err)
	}

	return sequences, nil
}

func (r *SequencePostgres) ListByOrg(ctx context.Context, orgID string) ([]*entity.Sequence, error) {
	sequences, err := r.list(ctx, listSequencesByOrgQuery, orgID)
	if err != nil {
		return nil, fmt.Errorf("list sequences by org: %w", err)
	}

	return sequences, nil
}

func (r *SequencePostgres) list(ctx context.Context, query string, arg string) ([]*entity.Sequence, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sequences := make([]*entity.Sequence, 0)
	for rows.Next() {
		sequence, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, sequence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sequences, nil
}

func scanSequence(row pgx.Row) (*entity.Sequence, error) {
	var (
		sequence  entity.Sequence
		messages  []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&sequence.ID,
		&sequence.UserID,
		&sequence.OrgID,
		&sequence.Name,
		&sequence.Content,
		&messages,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sequence.Messages, err = decodeMessages(messages)
	if err != nil {
		return nil, err
	}

	sequence.CreatedAt = createdAt.UTC()
	sequence.UpdatedAt = updatedAt.UTC()

	return &sequence, nil
}

func encodeMessages(messages []map[string]any) (string, error) {
	if messages == nil {
		messages = []map[string]any{}
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return "", fmt.Errorf("encode sequence messages: %w", err)
	}

	return string(raw), nil
}

func decodeMessages(raw []byte) ([]map[string]any, error) {
	messages := []map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return messages, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode sequence messages: %w", err)
	}

	return messages, nil
}
