package store

import (
	"fmt"

	"github.com/ncruces/go-sqlite3"

	"github.com/morenav/morenav/internal/menu"
)

// ItemRepo stores the ordered navigation items.
type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// List returns every item in display order.
func (r *ItemRepo) List() ([]menu.Item, error) {
	var items []menu.Item
	err := r.db.exec(func() error {
		return withStmt(r.db.conn, "SELECT id, name, href FROM menu_items ORDER BY position, id", func(stmt *sqlite3.Stmt) error {
			for stmt.Step() {
				items = append(items, menu.Item{
					ID:   stmt.ColumnText(0),
					Name: stmt.ColumnText(1),
					Href: stmt.ColumnText(2),
				})
			}
			return stmt.Err()
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// Count returns the number of stored items.
func (r *ItemRepo) Count() (int, error) {
	count := 0
	err := r.db.exec(func() error {
		return withStmt(r.db.conn, "SELECT COUNT(*) FROM menu_items", func(stmt *sqlite3.Stmt) error {
			if stmt.Step() {
				count = stmt.ColumnInt(0)
			}
			return stmt.Err()
		})
	})
	return count, err
}

// Replace swaps the whole list in one transaction.
func (r *ItemRepo) Replace(items []menu.Item) error {
	if err := menu.ValidateItems(items); err != nil {
		return err
	}
	return r.db.exec(func() error {
		if err := r.db.conn.Exec("BEGIN IMMEDIATE"); err != nil {
			return err
		}
		if err := r.replaceLocked(items); err != nil {
			r.db.conn.Exec("ROLLBACK")
			return fmt.Errorf("replace menu items: %w", err)
		}
		return r.db.conn.Exec("COMMIT")
	})
}

func (r *ItemRepo) replaceLocked(items []menu.Item) error {
	if err := r.db.conn.Exec("DELETE FROM menu_items"); err != nil {
		return err
	}
	return withStmt(r.db.conn, "INSERT INTO menu_items (id, position, name, href) VALUES (?, ?, ?, ?)", func(stmt *sqlite3.Stmt) error {
		for i, it := range items {
			stmt.BindText(1, it.ID)
			stmt.BindInt(2, i)
			stmt.BindText(3, it.Name)
			stmt.BindText(4, it.Href)
			stmt.Step()
			if err := stmt.Reset(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Add appends an item after the current last one.
func (r *ItemRepo) Add(it menu.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	err := r.db.exec(func() error {
		return withStmt(r.db.conn,
			"INSERT INTO menu_items (id, position, name, href) VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM menu_items), ?, ?)",
			func(stmt *sqlite3.Stmt) error {
				stmt.BindText(1, it.ID)
				stmt.BindText(2, it.Name)
				stmt.BindText(3, it.Href)
				stmt.Step()
				return stmt.Err()
			})
	})
	if err != nil {
		return fmt.Errorf("add menu item %q: %w", it.ID, err)
	}
	return nil
}

// Remove deletes an item by id and reports whether it existed.
func (r *ItemRepo) Remove(id string) (bool, error) {
	var changed bool
	err := r.db.exec(func() error {
		return withStmt(r.db.conn, "DELETE FROM menu_items WHERE id = ?", func(stmt *sqlite3.Stmt) error {
			stmt.BindText(1, id)
			stmt.Step()
			if err := stmt.Err(); err != nil {
				return err
			}
			changed = r.db.conn.Changes() > 0
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}
