package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "courses_course_code_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "student_courses_course_id_fkey"}
	check := &pgconn.PgError{Code: "23514"}
	wrapped := fmt.Errorf("error creating course: %w", unique)

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(wrapped))
	assert.True(t, IsDuplicateConstraintError(wrapped, "courses_course_code_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "other_key"))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsInvalidTextRepresentation(fmt.Errorf("error reading profile: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, IsInvalidTextRepresentation(check))
}
