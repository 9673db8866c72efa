package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/authoriser"
	"github.com/workhive/job-portal/internal/company"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"

	"github.com/gorilla/mux"
)

func CreateCompanyHandler(svr server.Server, auth authoriser.Authoriser, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !auth.Can(caller, authoriser.ActionCompanyManage, authoriser.Resource{}) {
			svr.Fail(w, apperr.Forbidden("You are not allowed to manage companies"), "CreateCompany")
			return
		}
		var rq company.CompanyRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "CreateCompany")
			return
		}
		if rq.Name == "" {
			svr.Fail(w, apperr.Validation("Invalid company payload").WithField("name", "name is required"), "CreateCompany")
			return
		}
		c, err := companyRepo.SaveCompany(rq)
		if err != nil {
			svr.Fail(w, err, "CreateCompany")
			return
		}
		svr.Success(w, http.StatusCreated, "Company created successfully", map[string]interface{}{
			"company": c,
		})
	}
}

func GetCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := companyRepo.CompanyByID(mux.Vars(r)["id"])
		if err == sql.ErrNoRows {
			svr.Fail(w, apperr.NotFound("Company not found"), "GetCompany")
			return
		}
		if err != nil {
			svr.Fail(w, err, "GetCompany")
			return
		}
		svr.Success(w, http.StatusOK, "Company retrieved successfully", map[string]interface{}{
			"company": c,
		})
	}
}

func ListCompaniesHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pageFromRequest(r)
		perPage := svr.GetConfig().CompaniesPerPage
		location := r.URL.Query().Get("location")
		companies, total, err := companyRepo.CompaniesByQuery(location, page, perPage)
		if err != nil {
			svr.Fail(w, err, "ListCompanies")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Companies retrieved successfully", map[string]interface{}{
			"companies": companies,
		}, server.NewPagination(page, perPage, total))
	}
}
