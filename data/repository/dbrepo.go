package repository

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"appointments-api/data/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type DBRepo interface {
	Connection() *sql.DB
	RunMigrations(dbName string) error
	CreateEvent(e models.Event) error
	ListEvents(userID string) ([]models.Event, error)
	GetEventByName(name string) (models.Event, error)
	GetEventByID(id string) (models.Event, error)
	GetEventByIDAndUser(id, userID string) (models.Event, error)
	UpdateEvent(e models.Event) error
	DeleteEvent(id, userID string) (int64, error)
	ListComments(eventID string) ([]models.Comment, error)
	AddComment(c models.Comment) (int64, error)
}

type SqlRepo struct {
	DB *sql.DB
}

func (sr *SqlRepo) Connection() *sql.DB {
	return sr.DB
}

func (sr *SqlRepo) RunMigrations(dbName string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}

	dir := filepath.Dir(filename)
	migrationsDir := filepath.Join(dir, "../migrations")
	// Convert backslashes to forward slashes for Windows compatibility
	migrationsDir = strings.ReplaceAll(migrationsDir, "\\", "/")

	log.Printf("Resolved migrations directory: %s", migrationsDir)

	driver, err := pgx.WithInstance(sr.DB, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Println("Migrations complete")
	return nil
}

// CreateEvent inserts an event in its own transaction. A name collision
// rolls back and surfaces as ErrDuplicateName, so the record is never
// partially visible.
func (sr *SqlRepo) CreateEvent(e models.Event) error {
	if err := models.ValidateModel(e); err != nil {
		return err
	}

	vals := models.GetValsFromModel(e)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.TableName(),
		strings.Join(models.GetColumnNames(e, true), ", "),
		placeholders(len(vals)))

	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	if _, err := tx.Exec(query, vals...); err != nil {
		tx.Rollback()
		return wrapDBError(err)
	}

	return tx.Commit()
}

// ListEvents returns every event, or only the given user's events when
// userID is non-empty. An empty result is not an error.
func (sr *SqlRepo) ListEvents(userID string) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(models.GetColumnNames(models.Event{}, false), ", "),
		models.Event{}.TableName())

	var (
		rows *sql.Rows
		err  error
	)
	if userID != "" {
		rows, err = sr.DB.Query(query+" WHERE user_id = $1 ORDER BY data_insercao, id", userID)
	} else {
		rows, err = sr.DB.Query(query + " ORDER BY data_insercao, id")
	}
	if err != nil {
		return nil, fmt.Errorf("error executing query: %v", err)
	}
	defer rows.Close()

	result, err := models.ScanRowsToSliceOfModels(models.Event{}, rows)
	if err != nil {
		return nil, err
	}

	events, ok := result.(*[]models.Event)
	if !ok {
		return nil, fmt.Errorf("type assertion to []Event failed")
	}

	for _, e := range *events {
		if err := checkStoredType(e); err != nil {
			return nil, err
		}
	}

	return *events, nil
}

// GetEventByName looks an event up by its name column. The read-one endpoint
// feeds the lookup schema's id value in here; that field/column mismatch is
// the inherited contract, see DESIGN.md.
func (sr *SqlRepo) GetEventByName(name string) (models.Event, error) {
	return sr.getEvent("name = $1", name)
}

func (sr *SqlRepo) GetEventByID(id string) (models.Event, error) {
	return sr.getEvent("id = $1", id)
}

// GetEventByIDAndUser requires both keys to match; a wrong owner yields the
// same ErrEventNotFound as a missing id.
func (sr *SqlRepo) GetEventByIDAndUser(id, userID string) (models.Event, error) {
	return sr.getEvent("id = $1 AND user_id = $2", id, userID)
}

func (sr *SqlRepo) getEvent(where string, args ...interface{}) (models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(models.GetColumnNames(models.Event{}, false), ", "),
		models.Event{}.TableName(), where)

	e := &models.Event{}
	if err := models.ScanRowToModel(e, sr.DB.QueryRow(query, args...)); err != nil {
		return models.Event{}, wrapDBError(err)
	}

	if err := checkStoredType(*e); err != nil {
		return models.Event{}, err
	}
	return *e, nil
}

// UpdateEvent writes every mutable column of the event in its own
// transaction. The id and data_insercao columns never change after insert.
func (sr *SqlRepo) UpdateEvent(e models.Event) error {
	if err := models.ValidateModel(e); err != nil {
		return err
	}

	cols := models.GetColumnNames(e, true)
	vals := models.GetValsFromModel(e)

	setClause := []string{}
	args := []interface{}{}
	ph := 1
	for i, c := range cols {
		if c == "id" || c == "data_insercao" {
			continue
		}
		setClause = append(setClause, fmt.Sprintf("%s = $%d", c, ph))
		args = append(args, vals[i])
		ph++
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		e.TableName(), strings.Join(setClause, ", "), ph)
	args = append(args, e.ID)

	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		tx.Rollback()
		return wrapDBError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error reading rows affected: %v", err)
	}
	if n == 0 {
		tx.Rollback()
		return ErrEventNotFound
	}

	return tx.Commit()
}

// DeleteEvent hard-deletes the event matching both keys and returns the
// number of rows removed. Owned comments go with it via the FK cascade.
func (sr *SqlRepo) DeleteEvent(id, userID string) (int64, error) {
	tx, err := sr.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %v", err)
	}

	res, err := tx.Exec("DELETE FROM events WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		tx.Rollback()
		return 0, wrapDBError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("error reading rows affected: %v", err)
	}

	return n, tx.Commit()
}

// ListComments returns the event's comments in insertion order.
func (sr *SqlRepo) ListComments(eventID string) ([]models.Comment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE event_id = $1 ORDER BY id",
		strings.Join(models.GetColumnNames(models.Comment{}, false), ", "),
		models.Comment{}.TableName())

	rows, err := sr.DB.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %v", err)
	}
	defer rows.Close()

	result, err := models.ScanRowsToSliceOfModels(models.Comment{}, rows)
	if err != nil {
		return nil, err
	}

	comments, ok := result.(*[]models.Comment)
	if !ok {
		return nil, fmt.Errorf("type assertion to []Comment failed")
	}

	return *comments, nil
}

// AddComment inserts a comment and returns its store-assigned id.
func (sr *SqlRepo) AddComment(c models.Comment) (int64, error) {
	if err := models.ValidateModel(c); err != nil {
		return 0, err
	}

	vals := models.GetValsFromModel(c)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		c.TableName(),
		strings.Join(models.GetColumnNames(c, true), ", "),
		placeholders(len(vals)))

	tx, err := sr.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %v", err)
	}

	var id int64
	if err := tx.QueryRow(query, vals...).Scan(&id); err != nil {
		tx.Rollback()
		return 0, wrapDBError(err)
	}

	return id, tx.Commit()
}

// checkStoredType rejects rows whose type column holds a code outside the
// known enumeration.
func checkStoredType(e models.Event) error {
	if _, err := models.EventTypeFromCode(e.Type.Code()); err != nil {
		return fmt.Errorf("event %s: %v", e.ID, err)
	}
	return nil
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := 1; i <= n; i++ {
		ph[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(ph, ", ")
}
