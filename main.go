package main

import (
	"log"
	"net/http"

	"github.com/workhive/job-portal/internal/application"
	"github.com/workhive/job-portal/internal/authoriser"
	"github.com/workhive/job-portal/internal/company"
	"github.com/workhive/job-portal/internal/config"
	"github.com/workhive/job-portal/internal/database"
	"github.com/workhive/job-portal/internal/handler"
	"github.com/workhive/job-portal/internal/job"
	"github.com/workhive/job-portal/internal/jobseeker"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"
	"github.com/workhive/job-portal/internal/user"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDbConn(conn)

	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	svr := server.NewServer(cfg, conn, mux.NewRouter(), sessionStore)

	userRepo := user.NewRepository(conn)
	companyRepo := company.NewRepository(conn)
	seekerRepo := jobseeker.NewRepository(conn)
	jobRepo := job.NewRepository(conn)
	appRepo := application.NewRepository(conn)
	auth := authoriser.NewAuthoriser()
	appSvc := application.NewService(appRepo, jobRepo, auth)

	authd := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.UserAuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, h)
	}

	svr.RegisterRoute("/health", handler.HealthHandler(svr), []string{"GET"})

	svr.RegisterRoute("/auth/signup", handler.SignupHandler(svr, userRepo), []string{"POST"})
	svr.RegisterRoute("/auth/signin", handler.SigninHandler(svr, userRepo), []string{"POST"})

	svr.RegisterRoute("/jobs", handler.ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/not-applied", authd(handler.NotAppliedJobsHandler(svr, appSvc)), []string{"GET"})
	svr.RegisterRoute("/jobs/creator", authd(handler.ListJobsByCreatorHandler(svr, jobRepo)), []string{"GET"})
	svr.RegisterRoute("/jobs/company/{id}", handler.ListJobsByCompanyHandler(svr, jobRepo), []string{"GET"})

	svr.RegisterRoute("/job", authd(handler.CreateJobHandler(svr, jobRepo, companyRepo, auth)), []string{"POST"})
	svr.RegisterRoute("/job/applied/user", authd(handler.AppliedJobsHandler(svr, appSvc)), []string{"GET"})
	svr.RegisterRoute("/job/apply/{id}", authd(handler.ApplyToJobHandler(svr, appSvc)), []string{"POST"})
	svr.RegisterRoute("/job/slug/{slug}", handler.GetJobBySlugHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/job/close/{id}", authd(handler.CloseJobHandler(svr, jobRepo, auth)), []string{"POST"})
	svr.RegisterRoute("/job/reopen/{id}", authd(handler.ReopenJobHandler(svr, jobRepo, auth)), []string{"POST"})
	svr.RegisterRoute("/job/{id}/applicants", authd(handler.JobApplicantsHandler(svr, appSvc)), []string{"GET"})
	svr.RegisterRoute("/job/{id}", authd(handler.GetJobHandler(svr, jobRepo)), []string{"GET"})
	svr.RegisterRoute("/job/{id}", authd(handler.UpdateJobHandler(svr, jobRepo, auth)), []string{"PUT"})
	svr.RegisterRoute("/job/{id}", authd(handler.DeleteJobHandler(svr, jobRepo, auth)), []string{"DELETE"})

	svr.RegisterRoute("/companies", handler.ListCompaniesHandler(svr, companyRepo), []string{"GET"})
	svr.RegisterRoute("/company", authd(handler.CreateCompanyHandler(svr, auth, companyRepo)), []string{"POST"})
	svr.RegisterRoute("/company/{id}", handler.GetCompanyHandler(svr, companyRepo), []string{"GET"})

	svr.RegisterRoute("/jobseeker/profile", authd(handler.SaveJobSeekerProfileHandler(svr, seekerRepo)), []string{"POST", "PUT"})
	svr.RegisterRoute("/jobseeker/profile", authd(handler.GetJobSeekerProfileHandler(svr, seekerRepo)), []string{"GET"})

	svr.RegisterRoute("/user/me", authd(handler.GetMeHandler(svr, userRepo)), []string{"GET"})

	svr.RegisterRoute(
		"/user/{id}",
		middleware.AdminAuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, handler.DeleteUserHandler(svr, userRepo)),
		[]string{"DELETE"},
	)

	svr.RegisterRoute("/stats", handler.StatsHandler(svr, jobRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
