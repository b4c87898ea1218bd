package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttachAndDetachTouchLastActive(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewPresenceUsecase(repo, fakeLogger{})
	uc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	uc.Attach(context.Background(), "42")
	uc.Detach(context.Background(), "42")

	assert.Equal(t, []string{"42", "42"}, repo.TouchCalls)
}

func TestPresenceIgnoresReservedAndEmptyIDs(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewPresenceUsecase(repo, fakeLogger{})

	uc.Attach(context.Background(), "")
	uc.Attach(context.Background(), "admin")
	uc.Detach(context.Background(), "")
	uc.Detach(context.Background(), "admin")

	assert.Empty(t, repo.TouchCalls)
}

func TestPresenceSwallowsWriteFailures(t *testing.T) {
	repo := newFakeUserRepo()
	repo.TouchErr = errors.New("remote store unavailable")
	uc := NewPresenceUsecase(repo, fakeLogger{})

	// Must not panic or propagate anything.
	uc.Attach(context.Background(), "42")
	uc.Detach(context.Background(), "42")
}
