// Command note is the terminal client: create, list, view, edit,
// delete, search, and export notes for a single user.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"gnote/internal/config"
	"gnote/internal/editor"
	"gnote/internal/errs"
	"gnote/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("note", flag.ContinueOnError)
	var (
		userName  = fs.String("user", "", "username owning the notes (env NOTE_USER)")
		category  = fs.String("category", "", "category name for create or list filter")
		tagsCSV   = fs.String("tags", "", "comma separated tags for create")
		list      = fs.Bool("list", false, "list recent notes")
		viewID    = fs.String("view", "", "show the note with this id")
		editID    = fs.String("edit", "", "edit the note with this id in $NOTE_EDITOR")
		deleteID  = fs.String("delete", "", "delete the note with this id")
		saveID    = fs.String("save", "", "export the note with this id to a markdown file")
		search    = fs.String("search", "", "search notes by keyword")
		searchTag = fs.String("search-tag", "", "search notes by tag name")
		limit     = fs.Int("limit", 0, "maximum notes to list")
	)
	fs.StringVar(category, "c", "", "shorthand for --category")
	fs.BoolVar(list, "l", false, "shorthand for --list")
	fs.StringVar(viewID, "v", "", "shorthand for --view")
	fs.StringVar(editID, "e", "", "shorthand for --edit")
	fs.StringVar(deleteID, "d", "", "shorthand for --delete")
	fs.StringVar(saveID, "s", "", "shorthand for --save")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("NOTE")); err != nil {
		return err
	}

	cfg := config.Load()
	if *userName == "" {
		*userName = cfg.User
	}
	if *userName == "" {
		return errors.New("no user given: set --user or NOTE_USER")
	}
	if *limit <= 0 {
		*limit = cfg.ListLimit
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		return err
	}

	user, err := st.UserByUsername(ctx, *userName)
	if err != nil {
		if errs.CodeOf(err) == errs.NotFound {
			return fmt.Errorf("user %q does not exist, create one with: go run ./cmd/user-add %s <email>", *userName, *userName)
		}
		return err
	}

	switch {
	case *list:
		return listNotes(ctx, st, user.ID, *category, *limit)
	case *viewID != "":
		return viewNote(ctx, st, *viewID, user.ID)
	case *editID != "":
		return editNote(ctx, st, cfg, *editID, user.ID)
	case *deleteID != "":
		return deleteNote(ctx, st, *deleteID, user.ID)
	case *saveID != "":
		return exportNote(ctx, st, *saveID, user.ID)
	case *search != "":
		return searchNotes(ctx, st, user.ID, *search)
	case *searchTag != "":
		return searchByTag(ctx, st, user.ID, *searchTag)
	case fs.NArg() > 0:
		title := strings.Join(fs.Args(), " ")
		return createNote(ctx, st, cfg, user.ID, title, *category, *tagsCSV)
	default:
		fs.Usage()
		return nil
	}
}

func createNote(ctx context.Context, st *store.Store, cfg config.Config, userID, title, category, tagsCSV string) error {
	content, err := editor.Edit(cfg.Editor, "")
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("empty note, nothing saved")
	}

	if category == "" {
		category, err = promptCategory(ctx, st, userID)
		if err != nil {
			return err
		}
	}
	if tagsCSV == "" {
		tagsCSV, err = promptLine("Tags (comma separated, empty for none): ")
		if err != nil {
			return err
		}
	}

	id, err := st.CreateNote(ctx, title, content, category, tagsCSV, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Saved note %s\n", id)
	return nil
}

func listNotes(ctx context.Context, st *store.Store, userID, category string, limit int) error {
	notes, err := st.ListNotes(ctx, userID, category, limit)
	if err != nil {
		return err
	}
	printSummaries(notes)
	return nil
}

func viewNote(ctx context.Context, st *store.Store, noteID, userID string) error {
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		return err
	}
	printNote(note)
	return nil
}

func editNote(ctx context.Context, st *store.Store, cfg config.Config, noteID, userID string) error {
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		return err
	}
	content, err := editor.Edit(cfg.Editor, note.Content)
	if err != nil {
		return err
	}
	if content == note.Content {
		fmt.Println("No changes.")
		return nil
	}
	if err := st.UpdateNoteContent(ctx, noteID, content, userID); err != nil {
		return err
	}
	fmt.Println("Updated.")
	return nil
}

func deleteNote(ctx context.Context, st *store.Store, noteID, userID string) error {
	note, err := st.Note(ctx, noteID, userID)
	if err != nil {
		return err
	}
	answer, err := promptLine(fmt.Sprintf("Delete %q? [y/N]: ", note.Title))
	if err != nil {
		return err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}
	if err := st.DeleteNote(ctx, noteID, userID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func searchNotes(ctx context.Context, st *store.Store, userID, keyword string) error {
	notes, err := st.SearchNotes(ctx, userID, keyword)
	if err != nil {
		return err
	}
	printSummaries(notes)
	return nil
}

func searchByTag(ctx context.Context, st *store.Store, userID, tag string) error {
	notes, err := st.NotesByTag(ctx, userID, tag)
	if err != nil {
		return err
	}
	printSummaries(notes)
	return nil
}

func promptCategory(ctx context.Context, st *store.Store, userID string) (string, error) {
	categories, err := st.ListCategories(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(categories) > 0 {
		fmt.Println("Categories:")
		for i, name := range categories {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}
	answer, err := promptLine("Category (number, new name, or empty for none): ")
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(categories) {
		return categories[n-1], nil
	}
	return answer, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
