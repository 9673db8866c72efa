package handler

import (
	"net/http"
	"strconv"

	"github.com/workhive/job-portal/internal/job"
	"github.com/workhive/job-portal/internal/server"
)

// StatsHandler serves the landing-page aggregates. The counts are cheap
// but hot, so they are memoised in the in-process cache.
func StatsHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totalJobs, err := cachedCount(svr, server.CacheKeyTotalJobs, jobRepo.TotalJobCount)
		if err != nil {
			svr.Fail(w, err, "unable to count jobs")
			return
		}
		newJobsLastWeek, err := cachedCount(svr, server.CacheKeyNewJobsLastWeek, jobRepo.NewJobsLastWeek)
		if err != nil {
			svr.Fail(w, err, "unable to count new jobs")
			return
		}
		svr.Success(w, http.StatusOK, "Stats retrieved successfully", map[string]interface{}{
			"total_jobs":         totalJobs,
			"new_jobs_last_week": newJobsLastWeek,
		})
	}
}

func cachedCount(svr server.Server, key string, load func() (int, error)) (int, error) {
	if raw, ok := svr.CacheGet(key); ok {
		if n, err := strconv.Atoi(string(raw)); err == nil {
			return n, nil
		}
	}
	n, err := load()
	if err != nil {
		return 0, err
	}
	if err := svr.CacheSet(key, []byte(strconv.Itoa(n))); err != nil {
		svr.Log(err, "unable to cache "+key)
	}
	return n, nil
}
