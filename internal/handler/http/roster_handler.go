package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	"github.com/daniyarm/rosterhub/internal/handler/http/middleware"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

const rosterSnapshotTimeout = 10 * time.Second

// RosterHandler exposes the shared ranked roster, both as a one-shot
// snapshot and as a server-sent event stream.
type RosterHandler struct {
	rosterUC   usecasecontract.IRosterUseCase
	presenceUC usecasecontract.IPresenceUseCase
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterUC usecasecontract.IRosterUseCase, presenceUC usecasecontract.IPresenceUseCase) *RosterHandler {
	return &RosterHandler{rosterUC: rosterUC, presenceUC: presenceUC}
}

// GetRoster returns the current roster snapshot. The request briefly joins
// the shared subscription, so many concurrent readers still cost one remote
// subscription.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	rosterCh := make(chan []entity.UserProfile, 1)
	errCh := make(chan error, 1)

	handle := h.rosterUC.Acquire(usecasecontract.RosterObserver{
		OnRoster: func(users []entity.UserProfile) {
			select {
			case rosterCh <- users:
			default:
			}
		},
		OnError: func(err error) {
			select {
			case errCh <- err:
			default:
			}
		},
	})
	defer h.rosterUC.Release(handle)

	select {
	case users := <-rosterCh:
		c.JSON(http.StatusOK, users)
	case <-errCh:
		// A failure can arrive together with a cached fallback roster.
		// The fallback wins.
		select {
		case users := <-rosterCh:
			c.JSON(http.StatusOK, users)
		default:
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "roster temporarily unavailable, please try again later"})
		}
	case <-time.After(rosterSnapshotTimeout):
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: "roster load timed out, please try again later"})
	case <-c.Request.Context().Done():
	}
}

// rosterEvent is one SSE frame waiting to be written.
type rosterEvent struct {
	name string
	data any
}

// StreamRoster holds one observer registration for the lifetime of the
// connection and mirrors every push as an SSE event. The caller's presence
// is attached for as long as they watch.
func (h *RosterHandler) StreamRoster(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "identity required"})
		return
	}

	events := make(chan rosterEvent, 8)
	offer := func(ev rosterEvent) {
		// Each push fully replaces the last, so when a slow client falls
		// behind the oldest pending frame is the one to drop.
		for {
			select {
			case events <- ev:
				return
			default:
				select {
				case <-events:
				default:
				}
			}
		}
	}

	handle := h.rosterUC.Acquire(usecasecontract.RosterObserver{
		OnRoster: func(users []entity.UserProfile) {
			offer(rosterEvent{name: "roster", data: users})
		},
		OnError: func(err error) {
			offer(rosterEvent{name: "error", data: dto.ErrorResponse{Error: "roster update failed"}})
		},
	})
	defer h.rosterUC.Release(handle)

	h.presenceUC.Attach(c.Request.Context(), identity.ID)
	// The request context is already done by the time the client is gone.
	defer h.presenceUC.Detach(context.Background(), identity.ID)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		// Flush anything already queued before checking for shutdown, so a
		// frame pushed just before disconnect still goes out.
		select {
		case ev := <-events:
			c.SSEvent(ev.name, ev.data)
			return true
		default:
		}
		select {
		case ev := <-events:
			c.SSEvent(ev.name, ev.data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
