package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorFormatting(t *testing.T) {
	err := New(ErrNotInitialized, "store not initialized")
	assert.Equal(t, "[NOT_INITIALIZED] store not initialized", err.Error())

	wrapped := Wrap(ErrDatabase, "query failed", stderrors.New("disk I/O error"))
	assert.Equal(t, "[DATABASE_ERROR] query failed: disk I/O error", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrMigration, "migration 2 failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrBusy, "lock wait expired")

	assert.True(t, Is(err, ErrBusy))
	assert.False(t, Is(err, ErrConstraint))
	assert.False(t, Is(stderrors.New("plain"), ErrBusy))
	assert.False(t, Is(nil, ErrBusy))
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrInvalid, "bad input"))
	assert.True(t, Is(err, ErrInvalid))
}

func TestClassifyDefaultsToDatabaseError(t *testing.T) {
	err := Classify("exec failed", stderrors.New("something else"))
	assert.Equal(t, ErrDatabase, err.Code)
}

func TestSQLiteHelpersIgnoreForeignErrors(t *testing.T) {
	assert.False(t, IsBusy(stderrors.New("not sqlite")))
	assert.False(t, IsConstraint(stderrors.New("not sqlite")))
}
