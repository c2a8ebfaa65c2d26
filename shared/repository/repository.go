package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the generic sqlx store behind every domain repository. Reads go to the
// replica, writes to the primary, and the Tx variants run inside a caller owned transaction.
// Get style methods return the zero value, not an error, when no row matches.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	schema schema
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:     dbConnection,
		otel:   otl,
		entity: entityName,
		schema: newSchema[T](tableName, primaryColumn),
	}
}

func (repo *Repository[T]) span(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)

	if query != "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// namedGet runs a single row named query. found is false on sql.ErrNoRows.
func (repo *Repository[T]) namedGet(ctx context.Context, scope otel.Scope, prep preparer, dest any, query string, args any) (found bool, err error) {
	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, repo.fail(scope, "get data", err)
	}

	return true, nil
}

func (repo *Repository[T]) insertReturning(ctx context.Context, prep preparer, model T) (int64, error) {
	query := repo.schema.insertQuery(true)

	ctx, scope := repo.span(ctx, "InsertReturning", query)
	defer scope.End()

	var id int64
	if _, err := repo.namedGet(ctx, scope, prep, &id, query, model); err != nil {
		return 0, err
	}

	return id, nil
}

// InsertReturning inserts the model and returns the store-assigned primary key.
func (repo *Repository[T]) InsertReturning(ctx context.Context, model T) (int64, error) {
	return repo.insertReturning(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertReturningTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	return repo.insertReturning(ctx, sqltx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.schema.table, where)

	ctx, scope := repo.span(ctx, "Exist", query)
	defer scope.End()

	var exist bool
	if _, err := repo.namedGet(ctx, scope, repo.db.Read, &exist, query, args); err != nil {
		return false, err
	}

	return exist, nil
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := whereClause(filter)
	query := repo.schema.selectQuery(where, columns...)

	ctx, scope := repo.span(ctx, "Get", query)
	defer scope.End()

	var model T
	_, err := repo.namedGet(ctx, scope, repo.db.Read, &model, query, args)

	return model, err
}

// GetTx reads one row inside sqltx so it sees the transaction's own writes and never a lagging replica.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := whereClause(filter)
	query := repo.schema.selectQuery(where, columns...)

	ctx, scope := repo.span(ctx, "GetTx", query)
	defer scope.End()

	var model T
	_, err := repo.namedGet(ctx, scope, sqltx, &model, query, args)

	return model, err
}

// GetForUpdateTx reads one row and locks it for the rest of the transaction.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := whereClause(filter)
	if where == "" {
		return model, errRequiredFilter
	}

	query := repo.schema.selectQuery(where, columns...) + " FOR UPDATE OF " + repo.schema.table

	ctx, scope := repo.span(ctx, "GetForUpdateTx", query)
	defer scope.End()

	_, err := repo.namedGet(ctx, scope, sqltx, &model, query, args)

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := whereClause(filter)
	query := repo.schema.selectQuery(where, columns...)

	if page := pagination(params, args); page != "" {
		query += " " + page
	}

	ctx, scope := repo.span(ctx, "GetAll", query)
	defer scope.End()

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	var models []T
	if err := stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "list data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.schema.table, repo.schema.primaryColumn, repo.schema.from(), where)

	ctx, scope := repo.span(ctx, "Count", query)
	defer scope.End()

	var count int
	if _, err := repo.namedGet(ctx, scope, repo.db.Read, &count, query, args); err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *Repository[T]) exec(ctx context.Context, exec execer, op, query string, args map[string]any) error {
	ctx, scope := repo.span(ctx, op, query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, op, err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, repo.db.Write, "delete", fmt.Sprintf("DELETE FROM %s %s", repo.schema.table, where), args)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, fields map[string]any, filter dto.FilterGroup) error {
	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	maps.Copy(args, fields)

	return repo.exec(ctx, exec, "update", repo.schema.updateQuery(fields, where), args)
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, fields, filter)
}
