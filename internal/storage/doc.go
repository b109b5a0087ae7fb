// Package storage owns the MySQL connection: it creates the database and
// contacts table when absent and exposes a repository for contact rows.
package storage
