package company

import (
	"database/sql"
	"time"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveCompany(c CompanyRq) (Company, error) {
	k, err := ksuid.NewRandom()
	if err != nil {
		return Company{}, err
	}
	company := Company{
		ID:           k.String(),
		Name:         c.Name,
		LogoURL:      c.LogoURL,
		Industry:     c.Industry,
		City:         c.City,
		State:        c.State,
		Country:      c.Country,
		Size:         c.Size,
		ContactEmail: c.ContactEmail,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = r.db.Exec(
		`INSERT INTO company (id, name, logo_url, industry, city, state, country, size, contact_email, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		company.ID,
		company.Name,
		company.LogoURL,
		company.Industry,
		company.City,
		company.State,
		company.Country,
		company.Size,
		company.ContactEmail,
		company.CreatedAt,
	)
	if err != nil {
		return Company{}, err
	}
	return company, nil
}

func (r *Repository) CompanyByID(id string) (Company, error) {
	row := r.db.QueryRow(`SELECT id, name, logo_url, industry, city, state, country, size, contact_email, created_at FROM company WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *Repository) CompaniesByQuery(location string, pageID, companiesPerPage int) ([]Company, int, error) {
	companies := []Company{}
	offset := pageID*companiesPerPage - companiesPerPage
	rows, err := r.db.Query(
		`SELECT count(*) OVER() AS full_count, id, name, logo_url, industry, city, state, country, size, contact_email, created_at
		FROM company
		WHERE ($1 = '' OR city ILIKE '%' || $1 || '%' OR state ILIKE '%' || $1 || '%' OR country ILIKE '%' || $1 || '%')
		ORDER BY name ASC LIMIT $2 OFFSET $3`, location, companiesPerPage, offset)
	if err == sql.ErrNoRows {
		return companies, 0, nil
	}
	if err != nil {
		return companies, 0, err
	}
	defer rows.Close()
	var fullRowsCount int
	for rows.Next() {
		var c Company
		var logo, industry, city, state, country, size, contactEmail sql.NullString
		if err := rows.Scan(&fullRowsCount, &c.ID, &c.Name, &logo, &industry, &city, &state, &country, &size, &contactEmail, &c.CreatedAt); err != nil {
			return companies, fullRowsCount, err
		}
		c.LogoURL = logo.String
		c.Industry = industry.String
		c.City = city.String
		c.State = state.String
		c.Country = country.String
		c.Size = size.String
		c.ContactEmail = contactEmail.String
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return companies, fullRowsCount, err
	}
	return companies, fullRowsCount, nil
}

func scanCompany(row *sql.Row) (Company, error) {
	var c Company
	var logo, industry, city, state, country, size, contactEmail sql.NullString
	err := row.Scan(&c.ID, &c.Name, &logo, &industry, &city, &state, &country, &size, &contactEmail, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	c.LogoURL = logo.String
	c.Industry = industry.String
	c.City = city.String
	c.State = state.String
	c.Country = country.String
	c.Size = size.String
	c.ContactEmail = contactEmail.String
	return c, nil
}
