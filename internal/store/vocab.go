package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Categories and tags share get-or-create semantics: a per-user named
// label resolved to a stable id, created on first use, never pruned.

// SplitTags parses a comma-separated tag string: tokens are trimmed,
// empties dropped, and duplicates collapsed to the first occurrence.
func SplitTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(csv, ",") {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ResolveCategory returns the id for the named category under userID,
// creating it on first use. An empty name resolves to no category.
func (s *Store) ResolveCategory(ctx context.Context, name, userID string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	tx, start, err := s.beginTx(ctx, "resolve category")
	if err != nil {
		return "", err
	}
	defer s.rollbackTx(tx, "resolve category", start)

	id, err := resolveVocabTx(ctx, tx, "categories", name, userID)
	if err != nil {
		return "", err
	}
	return id, s.commitTx(tx, "resolve category", start)
}

// ResolveTags resolves every tag named in csv under userID, creating
// missing ones. The returned ids follow the input order.
func (s *Store) ResolveTags(ctx context.Context, csv, userID string) ([]string, error) {
	names := SplitTags(csv)
	if len(names) == 0 {
		return nil, nil
	}
	tx, start, err := s.beginTx(ctx, "resolve tags")
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(tx, "resolve tags", start)

	ids, err := resolveTagsTx(ctx, tx, names, userID)
	if err != nil {
		return nil, err
	}
	return ids, s.commitTx(tx, "resolve tags", start)
}

func resolveTagsTx(ctx context.Context, tx *sql.Tx, names []string, userID string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, err := resolveVocabTx(ctx, tx, "tags", name, userID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveVocabTx looks up (name, userID) in the given vocabulary table
// and inserts a fresh row on miss. If the insert loses a race to a
// concurrent creator, the unique violation is retried once as a lookup;
// only if that lookup also misses does the violation surface as Conflict.
func resolveVocabTx(ctx context.Context, tx *sql.Tx, table, name, userID string) (string, error) {
	query := "SELECT id FROM " + table + " WHERE name = ? AND user_id = ?"
	var id string
	err := tx.QueryRowContext(ctx, query, name, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	id = uuid.NewString()
	_, err = tx.ExecContext(ctx, "INSERT INTO "+table+" (id, name, user_id) VALUES (?, ?, ?)", id, name, userID)
	if err == nil {
		return id, nil
	}
	if !isUniqueViolation(err) {
		return "", err
	}
	var existing string
	if lookupErr := tx.QueryRowContext(ctx, query, name, userID).Scan(&existing); lookupErr == nil {
		return existing, nil
	}
	return "", conflictOr(err, "duplicate "+strings.TrimSuffix(table, "s")+" name")
}
