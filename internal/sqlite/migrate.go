package sqlite

import (
	"context"
	"fmt"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"slices"
	"strings"
)

type schemaObject struct {
	Type      string `db:"type"`
	Name      string `db:"name"`
	TableName string `db:"tbl_name"`
	SQL       string `db:"sql"`
}

func (o schemaObject) key() string {
	return o.Type + ":" + o.Name
}

const schemaQuery = `SELECT type, name, tbl_name, sql
FROM sqlite_schema
WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
ORDER BY rowid`

func loadSchema(ctx context.Context, q sqlx.QueryerContext) ([]schemaObject, error) {
	var objects []schemaObject
	if err := sqlx.SelectContext(ctx, q, &objects, schemaQuery); err != nil {
		return nil, errors.Wrap(err, "select schema")
	}
	return objects, nil
}

func indexSchema(objects []schemaObject) map[string]schemaObject {
	out := make(map[string]schemaObject, len(objects))
	for _, o := range objects {
		out[o.key()] = o
	}
	return out
}

func columnNames(ctx context.Context, q sqlx.QueryerContext, table string) ([]string, error) {
	var columns []string
	if err := sqlx.SelectContext(ctx, q, &columns, "SELECT name FROM pragma_table_info(?)", table); err != nil {
		return nil, errors.Wrap(err, "select columns", slog.String("table", table))
	}
	return columns, nil
}

// migrateTo makes the schema of db equal to schemaDefinition.
//
// The definition is applied to a scratch in-memory database and the two schemas are diffed. New tables are
// created, removed tables are dropped, and changed tables are rebuilt with the common columns copied over, following
// https://www.sqlite.org/lang_altertable.html#otheralter. Indexes, triggers and views are dropped when they differ
// and recreated from the definition.
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) error {
	target, err := loadTargetSchema(ctx, schemaDefinition)
	if err != nil {
		return errors.Wrap(err, "load target schema")
	}

	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign keys")
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			fkErr = errors.Wrap(fkErr, "enable foreign keys")
			db.logger.LogAttrs(ctx, slog.LevelError, "foreign keys left disabled", errors.SlogError(fkErr))
		}
	}()

	tx, err := db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err = db.syncSchema(ctx, tx, target); err != nil {
		return err
	}

	var violations []string
	if err = tx.SelectContext(ctx, &violations, "SELECT \"table\" FROM pragma_foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if len(violations) > 0 {
		return errors.New("foreign key violations", slog.Any("tables", violations))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit migration")
	}
	return nil
}

type targetSchema struct {
	objects []schemaObject
	// columns holds the column names of every target table.
	columns map[string][]string
}

func loadTargetSchema(ctx context.Context, schemaDefinition string) (targetSchema, error) {
	name, err := randomDBName()
	if err != nil {
		return targetSchema{}, err
	}
	scratch, err := sqlx.Open(driverName, fmt.Sprintf("file:%s?mode=memory", name))
	if err != nil {
		return targetSchema{}, errors.Wrap(err, "open scratch database")
	}
	defer func() {
		_ = scratch.Close()
	}()
	// A plain in-memory database is private to its connection.
	scratch.SetMaxOpenConns(1)

	if strings.TrimSpace(schemaDefinition) != "" {
		if _, err = scratch.ExecContext(ctx, schemaDefinition); err != nil {
			return targetSchema{}, errors.Wrap(err, "apply schema definition")
		}
	}
	target := targetSchema{columns: make(map[string][]string)}
	if target.objects, err = loadSchema(ctx, scratch); err != nil {
		return targetSchema{}, err
	}
	for _, o := range target.objects {
		if o.Type != "table" {
			continue
		}
		if target.columns[o.Name], err = columnNames(ctx, scratch, o.Name); err != nil {
			return targetSchema{}, err
		}
	}
	return target, nil
}

func (db *Database) syncSchema(ctx context.Context, tx *sqlx.Tx, target targetSchema) error {
	current, err := loadSchema(ctx, tx)
	if err != nil {
		return err
	}
	wanted := indexSchema(target.objects)

	// Indexes, triggers and views go first so that nothing refers to tables being rebuilt.
	for _, o := range current {
		if o.Type == "table" {
			continue
		}
		if w, ok := wanted[o.key()]; ok && w.SQL == o.SQL {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", o.Type), slog.String("name", o.Name))
		stmt := fmt.Sprintf("DROP %s %q", strings.ToUpper(o.Type), o.Name)
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "drop schema object", slog.String("query", stmt))
		}
	}

	existing := indexSchema(current)
	for _, o := range current {
		if _, ok := wanted[o.key()]; o.Type != "table" || ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", o.Name))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q", o.Name)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", o.Name))
		}
	}
	for _, o := range target.objects {
		if o.Type != "table" {
			continue
		}
		old, ok := existing[o.key()]
		switch {
		case !ok:
			db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("table", o.Name))
			if _, err = tx.ExecContext(ctx, o.SQL); err != nil {
				return errors.Wrap(err, "create table", slog.String("query", o.SQL))
			}
		case old.SQL != o.SQL:
			if err = db.rebuildTable(ctx, tx, o, target.columns[o.Name]); err != nil {
				return err
			}
		}
	}

	// Rebuilt tables lose their indexes and triggers, so compare against the schema as it is now.
	if current, err = loadSchema(ctx, tx); err != nil {
		return err
	}
	existing = indexSchema(current)
	for _, o := range target.objects {
		if _, ok := existing[o.key()]; o.Type == "table" || ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object",
			slog.String("type", o.Type), slog.String("name", o.Name))
		if _, err = tx.ExecContext(ctx, o.SQL); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("query", o.SQL))
		}
	}
	return nil
}

func (db *Database) rebuildTable(ctx context.Context, tx *sqlx.Tx, table schemaObject, targetColumns []string) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "rebuilding table", slog.String("table", table.Name))

	currentColumns, err := columnNames(ctx, tx, table.Name)
	if err != nil {
		return err
	}
	var common []string
	for _, c := range currentColumns {
		if slices.Contains(targetColumns, c) {
			common = append(common, fmt.Sprintf("%q", c))
		}
	}

	tempName := table.Name + "_migration_temp"
	statements := []string{strings.Replace(table.SQL, table.Name, tempName, 1)}
	if len(common) > 0 {
		columns := strings.Join(common, ", ")
		statements = append(statements, fmt.Sprintf("INSERT INTO %q (%s) SELECT %s FROM %q",
			tempName, columns, columns, table.Name))
	}
	statements = append(statements,
		fmt.Sprintf("DROP TABLE %q", table.Name),
		fmt.Sprintf("ALTER TABLE %q RENAME TO %q", tempName, table.Name),
	)
	for _, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "rebuild table", slog.String("query", stmt))
		}
	}
	return nil
}
