package store

import "fmt"

// LoadBindings returns every persisted name -> combination assignment.
func (db *DB) LoadBindings() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT name, combo FROM bindings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bindings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, combo string
		if err := rows.Scan(&name, &combo); err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		out[name] = combo
	}
	return out, rows.Err()
}

func (db *DB) SaveBinding(name, combo string) error {
	_, err := db.conn.Exec(`
		INSERT INTO bindings (name, combo, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET combo = excluded.combo, updated_at = CURRENT_TIMESTAMP`,
		name, combo)
	if err != nil {
		return fmt.Errorf("failed to save binding: %w", err)
	}
	return nil
}

func (db *DB) DeleteBinding(name string) error {
	if _, err := db.conn.Exec(`DELETE FROM bindings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete binding: %w", err)
	}
	return nil
}
