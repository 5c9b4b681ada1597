package docstorepg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "42P01"})))
	assert.False(t, isUndefinedTable(&pq.Error{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("other")))
}
