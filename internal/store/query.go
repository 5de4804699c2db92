package store

import (
	"context"
	"database/sql"
)

const defaultListLimit = 10

const noteViewSelect = `
	SELECT n.id, n.timestamp, n.title, n.content, c.name, GROUP_CONCAT(t.name, ', ')
	FROM notes n
	LEFT JOIN categories c ON n.category_id = c.id
	LEFT JOIN note_tags nt ON n.id = nt.note_id
	LEFT JOIN tags t ON nt.tag_id = t.id
`

// ListNotes returns the most recent notes owned by userID, newest first,
// optionally filtered by category display name. A non-positive limit
// falls back to the fixed page size of 10.
func (s *Store) ListNotes(ctx context.Context, userID, categoryName string, limit int) ([]NoteView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := noteViewSelect + " WHERE n.user_id = ?"
	args := []any{userID}
	if categoryName != "" {
		query += " AND c.name = ?"
		args = append(args, categoryName)
	}
	query += " GROUP BY n.id ORDER BY n.timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNoteViews(rows)
}

// SearchNotes returns every note owned by userID whose title or content
// contains keyword (case-insensitive substring match), newest first.
func (s *Store) SearchNotes(ctx context.Context, userID, keyword string) ([]NoteView, error) {
	pattern := "%" + keyword + "%"
	rows, err := s.db.QueryContext(ctx, noteViewSelect+`
		WHERE n.user_id = ? AND (n.title LIKE ? OR n.content LIKE ?)
		GROUP BY n.id ORDER BY n.timestamp DESC
	`, userID, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNoteViews(rows)
}

// NotesByTag returns every note owned by userID carrying a tag of that
// exact name, newest first.
func (s *Store) NotesByTag(ctx context.Context, userID, tagName string) ([]NoteView, error) {
	rows, err := s.db.QueryContext(ctx, noteViewSelect+`
		WHERE n.user_id = ? AND n.id IN (
			SELECT note_id FROM note_tags WHERE tag_id IN (
				SELECT id FROM tags WHERE name = ? AND user_id = ?
			)
		)
		GROUP BY n.id ORDER BY n.timestamp DESC
	`, userID, tagName, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNoteViews(rows)
}

// ListCategories returns the names of userID's categories in
// alphabetical order.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM categories WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanNoteViews(rows *sql.Rows) ([]NoteView, error) {
	var views []NoteView
	for rows.Next() {
		var (
			view     NoteView
			category sql.NullString
			tags     sql.NullString
		)
		if err := rows.Scan(&view.ID, &view.Timestamp, &view.Title, &view.Content, &category, &tags); err != nil {
			return nil, err
		}
		view.Category = category.String
		view.Tags = tags.String
		views = append(views, view)
	}
	return views, rows.Err()
}
