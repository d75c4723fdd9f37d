package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation})

	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsSerializationFailure(wrapped))
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: ForeignKeyViolation}))
}
