package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatedObject(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{"CREATE TABLE products (\nid INT64) PRIMARY KEY (id)", "products"},
		{"CREATE INDEX idx_a ON a(id)", "idx_a"},
		{"CREATE UNIQUE INDEX Idx_B ON b(id)", "idx_b"},
		{"CREATE TABLE `Outbox`(id INT64) PRIMARY KEY (id)", "outbox"},
		{"ALTER TABLE products ADD COLUMN x INT64", ""},
		{"CREATE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			assert.Equal(t, tt.want, createdObject(tt.stmt))
		})
	}
}

func TestPending(t *testing.T) {
	statements := []string{
		"CREATE TABLE products (id INT64) PRIMARY KEY (id)",
		"CREATE INDEX idx_products ON products(id)",
		"ALTER TABLE products ADD COLUMN x INT64",
	}
	existing := map[string]bool{"products": true}

	assert.Equal(t, statements[1:], pending(statements, existing))
}
