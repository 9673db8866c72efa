package job

import (
	"fmt"
	"strings"
)

// sortColumns whitelists the payload field names callers may sort by and
// maps them onto real columns.
var sortColumns = map[string]string{
	"title":                "title",
	"posted_date":          "posted_at",
	"min_salary":           "salary_min",
	"max_salary":           "salary_max",
	"applicants":           "applicants",
	"status":               "status",
	"application_deadline": "application_deadline",
}

const listSelectColumns = `j.id, j.title, j.description, j.company_id, j.created_by, j.city, j.state, j.country, j.salary_min, j.salary_max, j.status, j.applicants, j.slug, j.posted_at, j.application_deadline, c.name, c.logo_url`

// buildListQuery renders one catalog listing as a single SQL statement:
// total count via a window function, company summary via join, optional
// hasApplied annotation and applied/not-applied restriction via EXISTS
// subqueries over the application ledger.
func buildListQuery(q Query) (string, []interface{}) {
	args := make([]interface{}, 0, 10)
	where := []string{"j.deleted_at IS NULL"}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Filters.Title != "" {
		where = append(where, fmt.Sprintf("j.title ILIKE '%%' || %s || '%%'", arg(q.Filters.Title)))
	}
	if q.Filters.City != "" {
		where = append(where, fmt.Sprintf("j.city ILIKE '%%' || %s || '%%'", arg(q.Filters.City)))
	}
	if q.Filters.State != "" {
		where = append(where, fmt.Sprintf("j.state ILIKE '%%' || %s || '%%'", arg(q.Filters.State)))
	}
	if q.Filters.Country != "" {
		where = append(where, fmt.Sprintf("j.country ILIKE '%%' || %s || '%%'", arg(q.Filters.Country)))
	}
	if q.Filters.CompanyID != "" {
		where = append(where, fmt.Sprintf("j.company_id = %s", arg(q.Filters.CompanyID)))
	}
	if q.Filters.CreatedBy != "" {
		where = append(where, fmt.Sprintf("j.created_by = %s", arg(q.Filters.CreatedBy)))
	}
	if q.Filters.Status != "" {
		where = append(where, fmt.Sprintf("j.status = %s", arg(q.Filters.Status)))
	}
	if q.Filters.MinSalary > 0 {
		where = append(where, fmt.Sprintf("j.salary_max >= %s", arg(q.Filters.MinSalary)))
	}
	if q.Filters.MaxSalary > 0 {
		where = append(where, fmt.Sprintf("j.salary_min <= %s", arg(q.Filters.MaxSalary)))
	}
	if q.OnlyAppliedBy != "" {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM application a WHERE a.job_id = j.id AND a.user_id = %s)", arg(q.OnlyAppliedBy)))
	}
	if q.ExcludeAppliedBy != "" {
		where = append(where, fmt.Sprintf("NOT EXISTS (SELECT 1 FROM application a WHERE a.job_id = j.id AND a.user_id = %s)", arg(q.ExcludeAppliedBy)))
	}

	hasApplied := "FALSE AS has_applied"
	if q.CallerID != "" {
		hasApplied = fmt.Sprintf("EXISTS (SELECT 1 FROM application a WHERE a.job_id = j.id AND a.user_id = %s) AS has_applied", arg(q.CallerID))
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := page*q.PerPage - q.PerPage

	stmt := fmt.Sprintf(
		`SELECT count(*) OVER() AS full_count, %s, %s
		FROM job j JOIN company c ON c.id = j.company_id
		WHERE %s
		ORDER BY j.%s %s LIMIT %s OFFSET %s`,
		listSelectColumns,
		hasApplied,
		strings.Join(where, " AND "),
		sortColumn(q.Sort),
		sortDirection(q.Sort),
		arg(q.PerPage),
		arg(offset),
	)
	return stmt, args
}

func sortColumn(s Sort) string {
	if col, ok := sortColumns[s.Field]; ok {
		return col
	}
	return "posted_at"
}

func sortDirection(s Sort) string {
	// unknown sort fields fall back to the default ordering, newest first
	if _, ok := sortColumns[s.Field]; !ok {
		return "DESC"
	}
	if s.Desc {
		return "DESC"
	}
	return "ASC"
}
