package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	v := nullString("Paris")
	if assert.NotNil(t, v) {
		assert.Equal(t, "Paris", *v)
	}
}

func TestSchemaCoversEveryTable(t *testing.T) {
	joined := fmt.Sprint(schema)
	for _, table := range []string{"agents", "profiles", "bank_details", "lead_sequences", "leads", "transactions"} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
