package mysql

import (
	"context"

	"github.com/pkg/errors"
)

// groups is a reserved word in MySQL 8 and is quoted everywhere.
var schema = []struct {
	table string
	ddl   string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL
		)`},
	{"groups", `
		CREATE TABLE IF NOT EXISTS ` + "`groups`" + ` (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NULL
		)`},
	{"memberships", `
		CREATE TABLE IF NOT EXISTS memberships (
			user_id INT NOT NULL,
			group_id INT NOT NULL,
			PRIMARY KEY (user_id, group_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (group_id) REFERENCES ` + "`groups`" + `(id) ON DELETE CASCADE
		)`},
	// group_id deliberately has no foreign key: deleting a group leaves its tasks behind.
	{"tasks", `
		CREATE TABLE IF NOT EXISTS tasks (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			group_id INT NULL,
			INDEX idx_tasks_group_id (group_id)
		)`},
}

// Migrate creates any missing tables.
func (db *DB) Migrate(ctx context.Context) error {
	for _, s := range schema {
		if _, err := db.sql.ExecContext(ctx, s.ddl); err != nil {
			return errors.Wrapf(err, "error creating table %s", s.table)
		}
	}
	return nil
}
