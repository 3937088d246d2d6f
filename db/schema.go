// Package db ships the SQL schema of the products store.
package db

import _ "embed"

// Schema is the DDL for the products table. It is idempotent.
//
//go:embed schema.sql
var Schema string
