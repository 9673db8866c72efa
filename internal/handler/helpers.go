package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/workhive/job-portal/internal/job"
)

func pageFromRequest(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func sortFromRequest(r *http.Request) job.Sort {
	sortBy := r.URL.Query().Get("sort_by")
	order := r.URL.Query().Get("sort_order")
	return job.Sort{
		Field: sortBy,
		Desc:  !strings.EqualFold(order, "asc"),
	}
}

func filtersFromRequest(r *http.Request) job.Filters {
	q := r.URL.Query()
	filters := job.Filters{
		Title:     q.Get("title"),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Country:   q.Get("country"),
		CompanyID: q.Get("company_id"),
		Status:    q.Get("status"),
	}
	if minSalary, err := strconv.ParseInt(q.Get("min_salary"), 10, 64); err == nil {
		filters.MinSalary = minSalary
	}
	if maxSalary, err := strconv.ParseInt(q.Get("max_salary"), 10, 64); err == nil {
		filters.MaxSalary = maxSalary
	}
	return filters
}
