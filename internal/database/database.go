package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS users (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	email VARCHAR(255) NOT NULL UNIQUE,
// 	first_name VARCHAR(100) NOT NULL,
// 	last_name VARCHAR(100) NOT NULL,
// 	password_hash VARCHAR(100) NOT NULL,
// 	role VARCHAR(20) NOT NULL DEFAULT 'jobseeker',
// 	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

// CREATE TABLE IF NOT EXISTS company (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	name VARCHAR(255) NOT NULL,
// 	logo_url VARCHAR(255),
// 	industry VARCHAR(100),
// 	city VARCHAR(100),
// 	state VARCHAR(100),
// 	country VARCHAR(100),
// 	size VARCHAR(50),
// 	contact_email VARCHAR(255),
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

// CREATE TABLE IF NOT EXISTS job_seeker (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	user_id CHAR(27) NOT NULL UNIQUE REFERENCES users (id),
// 	skills TEXT NOT NULL DEFAULT '',
// 	experience_years INTEGER NOT NULL DEFAULT 0,
// 	resume_url VARCHAR(255),
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP,
// 	PRIMARY KEY(id)
// );

// CREATE TABLE IF NOT EXISTS job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	title VARCHAR(255) NOT NULL,
// 	description TEXT NOT NULL,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id),
// 	created_by CHAR(27) NOT NULL REFERENCES users (id),
// 	city VARCHAR(100),
// 	state VARCHAR(100),
// 	country VARCHAR(100),
// 	salary_min BIGINT NOT NULL DEFAULT 0,
// 	salary_max BIGINT NOT NULL DEFAULT 0,
// 	status VARCHAR(10) NOT NULL DEFAULT 'open',
// 	applicants INTEGER NOT NULL DEFAULT 0,
// 	slug VARCHAR(255) NOT NULL UNIQUE,
// 	posted_at TIMESTAMP NOT NULL,
// 	application_deadline TIMESTAMP,
// 	deleted_at TIMESTAMP,
// 	PRIMARY KEY(id)
// );

// CREATE INDEX job_company_id_idx on job (company_id);
// CREATE INDEX job_created_by_idx on job (created_by);
// CREATE INDEX job_posted_at_idx on job (posted_at);

// application is the single ledger for who applied to what. The derived
// views (a user's applied jobs, a job's applicant list) all read from it.
//
// CREATE TABLE IF NOT EXISTS application (
// 	job_id CHAR(27) NOT NULL REFERENCES job (id),
// 	user_id CHAR(27) NOT NULL REFERENCES users (id),
// 	job_seeker_id CHAR(27) NOT NULL REFERENCES job_seeker (id),
// 	applied_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(job_id, user_id)
// );

// CREATE INDEX application_user_id_idx on application (user_id);

func GetDbConn(databaseUser string, databasePassword string, databaseHost string, databasePort string, databaseName string, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}
