package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gnote/internal/errs"
)

// NoteView is the denormalized read shape for display: the note row
// joined with its category name and comma-joined tag names. It is never
// the persisted form.
type NoteView struct {
	ID        string
	Timestamp string
	Title     string
	Content   string
	Category  string
	Tags      string
}

// CreateNote inserts a note with its resolved category and tags as one
// transaction and returns the new note id. Category and tag names are
// resolved (get-or-create) under userID.
func (s *Store) CreateNote(ctx context.Context, title, content, categoryName, tagsCSV, userID string) (string, error) {
	tx, start, err := s.beginTx(ctx, "create note")
	if err != nil {
		return "", err
	}
	defer s.rollbackTx(tx, "create note", start)

	categoryID, err := resolveCategoryTx(ctx, tx, categoryName, userID)
	if err != nil {
		return "", err
	}
	tagIDs, err := resolveTagsTx(ctx, tx, SplitTags(tagsCSV), userID)
	if err != nil {
		return "", err
	}

	noteID := uuid.NewString()
	timestamp := time.Now().Format(timeLayout)
	_, err = tx.ExecContext(ctx,
		"INSERT INTO notes (id, title, content, timestamp, category_id, user_id) VALUES (?, ?, ?, ?, ?, ?)",
		noteID, title, content, timestamp, categoryID, userID)
	if err != nil {
		return "", err
	}
	if err := insertNoteTags(ctx, tx, noteID, tagIDs); err != nil {
		return "", err
	}
	return noteID, s.commitTx(tx, "create note", start)
}

// Note fetches one note owned by userID. A note owned by another user
// yields the same NotFound as a note that does not exist.
func (s *Store) Note(ctx context.Context, noteID, userID string) (NoteView, error) {
	var (
		view     NoteView
		category sql.NullString
		tags     sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT n.id, n.timestamp, n.title, n.content, c.name, GROUP_CONCAT(t.name, ', ')
		FROM notes n
		LEFT JOIN categories c ON n.category_id = c.id
		LEFT JOIN note_tags nt ON n.id = nt.note_id
		LEFT JOIN tags t ON nt.tag_id = t.id
		WHERE n.id = ? AND n.user_id = ?
		GROUP BY n.id
	`, noteID, userID).Scan(&view.ID, &view.Timestamp, &view.Title, &view.Content, &category, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return NoteView{}, errs.New(errs.NotFound, "note not found")
	}
	if err != nil {
		return NoteView{}, err
	}
	view.Category = category.String
	view.Tags = tags.String
	return view, nil
}

// UpdateNote replaces a note's title, content, category and entire tag
// set as one transaction. The tag associations are deleted and
// reinserted, not diffed. A note not owned by userID is left untouched
// and no error is reported.
func (s *Store) UpdateNote(ctx context.Context, noteID, title, content, categoryName, tagsCSV, userID string) error {
	tx, start, err := s.beginTx(ctx, "update note")
	if err != nil {
		return err
	}
	defer s.rollbackTx(tx, "update note", start)

	owned, err := noteOwnedTx(ctx, tx, noteID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return nil
	}

	categoryID, err := resolveCategoryTx(ctx, tx, categoryName, userID)
	if err != nil {
		return err
	}
	tagIDs, err := resolveTagsTx(ctx, tx, SplitTags(tagsCSV), userID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, category_id = ? WHERE id = ? AND user_id = ?",
		title, content, categoryID, noteID, userID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", noteID); err != nil {
		return err
	}
	if err := insertNoteTags(ctx, tx, noteID, tagIDs); err != nil {
		return err
	}
	return s.commitTx(tx, "update note", start)
}

// UpdateNoteContent replaces only the body of an owned note, leaving
// title, category and tags untouched. Same ownership no-op rule as
// UpdateNote.
func (s *Store) UpdateNoteContent(ctx context.Context, noteID, content, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notes SET content = ? WHERE id = ? AND user_id = ?",
		content, noteID, userID)
	return err
}

// DeleteNote removes an owned note and all its tag associations in one
// transaction. A missing or foreign note is a no-op.
func (s *Store) DeleteNote(ctx context.Context, noteID, userID string) error {
	tx, start, err := s.beginTx(ctx, "delete note")
	if err != nil {
		return err
	}
	defer s.rollbackTx(tx, "delete note", start)

	owned, err := noteOwnedTx(ctx, tx, noteID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", noteID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND user_id = ?", noteID, userID); err != nil {
		return err
	}
	return s.commitTx(tx, "delete note", start)
}

func noteOwnedTx(ctx context.Context, tx *sql.Tx, noteID, userID string) (bool, error) {
	var id string
	err := tx.QueryRowContext(ctx, "SELECT id FROM notes WHERE id = ? AND user_id = ?", noteID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// resolveCategoryTx maps a category name to a bindable id value: nil for
// no category, otherwise the resolved id.
func resolveCategoryTx(ctx context.Context, tx *sql.Tx, name, userID string) (any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	id, err := resolveVocabTx(ctx, tx, "categories", name, userID)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func insertNoteTags(ctx context.Context, tx *sql.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)", noteID, tagID); err != nil {
			return err
		}
	}
	return nil
}
