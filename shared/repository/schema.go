package repository

import (
	"fmt"
	"maps"
	"reflect"
	"shareit/shared/dto"
	"slices"
	"strings"
)

// joiner is implemented by read models spanning several tables.
type joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	expr := c.table + "." + c.name
	if c.alias != "" {
		expr += " AS " + c.alias
	}

	return expr
}

// schema is the SQL shape of a model, derived once from its struct tags:
//
//	db:"name"         column (and result) name
//	table:"users"     column lives in a joined table, never inserted
//	column:"name"     source column when db is an alias
//	generated:"true"  filled by the database, never inserted
type schema struct {
	table         string
	primaryColumn string
	join          string
	columns       []column
	insertColumns []string
}

func newSchema[T any](table, primaryColumn string) schema {
	var zero T

	s := schema{
		table:         table,
		primaryColumn: primaryColumn,
	}

	if j, ok := any(zero).(joiner); ok {
		s.join = j.GetJoinQuery()
	}

	s.collect(reflect.TypeOf(zero))

	return s
}

func (s *schema) collect(typ reflect.Type) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			s.collect(field.Type)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		col := column{name: name, table: s.table}
		if table := field.Tag.Get("table"); table != "" {
			col.table = table
		}

		if source := field.Tag.Get("column"); source != "" {
			col.name, col.alias = source, name
		}

		s.columns = append(s.columns, col)

		if col.table == s.table && field.Tag.Get("generated") != "true" {
			s.insertColumns = append(s.insertColumns, name)
		}
	}
}

// selectList renders the projection, limited to the named result columns when any are given.
func (s *schema) selectList(only ...string) string {
	exprs := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		result := col.name
		if col.alias != "" {
			result = col.alias
		}

		if len(only) > 0 && !slices.Contains(only, result) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (s *schema) insertQuery(returning bool) string {
	placeholders := make([]string, len(s.insertColumns))
	for i, col := range s.insertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(s.insertColumns, ", "), strings.Join(placeholders, ", "))

	if returning {
		query += " RETURNING " + s.primaryColumn
	}

	return query
}

func (s *schema) from() string {
	if s.join == "" {
		return s.table
	}

	return s.table + " " + s.join
}

func (s *schema) selectQuery(where string, only ...string) string {
	return strings.TrimSpace(fmt.Sprintf("SELECT %s FROM %s %s", s.selectList(only...), s.from(), where))
}

// updateQuery sets the given columns in a stable order.
func (s *schema) updateQuery(fields map[string]any, where string) string {
	names := slices.Sorted(maps.Keys(fields))

	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = fmt.Sprintf("%s = :%s", name, name)
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", s.table, strings.Join(sets, ", "), where)
}

// pagination renders ORDER BY, LIMIT and OFFSET and adds their arguments to args.
// A page number wins over a raw offset.
func pagination(params dto.QueryParams, args map[string]any) string {
	var clauses []string

	if params.SortBy != "" && params.SortDir != "" {
		order := fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
		if params.ThenBy != "" {
			order += fmt.Sprintf(", %s %s", params.ThenBy, params.SortDir)
		}

		clauses = append(clauses, order)
	}

	if params.Limit <= 0 {
		return strings.Join(clauses, " ")
	}

	args["limit"] = params.Limit
	clauses = append(clauses, "LIMIT :limit")

	offset := params.Offset
	if params.Page > 0 {
		offset = (params.Page - 1) * params.Limit
	}

	if offset > 0 {
		args["offset"] = offset
		clauses = append(clauses, "OFFSET :offset")
	}

	return strings.Join(clauses, " ")
}

// whereClause renders filter as a WHERE clause; an empty filter renders nothing.
func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}
