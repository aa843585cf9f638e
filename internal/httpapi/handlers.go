package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/profile"
	"github.com/joelcondh/burien-soccer/internal/roster"
)

// RosterApp defines what the handlers need from the reservation application.
type RosterApp interface {
	Reserve(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error)
	Cancel(ctx context.Context, accountID uuid.UUID) error
	Roster(ctx context.Context) ([]models.Reservation, error)
	ReservationFor(ctx context.Context, accountID uuid.UUID) (*models.Reservation, error)
}

// ProfileApp defines what the handlers need from the profile application.
type ProfileApp interface {
	Register(ctx context.Context, req profile.RegisterRequest) (*models.Profile, error)
	Authenticate(ctx context.Context, email, password string) (*profile.Credentials, error)
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	UpdateContact(ctx context.Context, accountID uuid.UUID, req profile.UpdateContactRequest) (*models.Profile, error)
	SetState(ctx context.Context, id uuid.UUID, state models.ProfileState) (*models.Profile, error)
}

// Me returns the caller's profile and current reservation, if any.
func Me(profiles ProfileApp, rosters RosterApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := accountID(c)

		p, err := profiles.GetByAccount(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}

		res, err := rosters.ReservationFor(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservation"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": p, "reservation": res})
	}
}

// Roster returns every reservation in timestamp order.
func Roster(rosters RosterApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservations, err := rosters.Roster(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roster"})
			return
		}
		if reservations == nil {
			reservations = []models.Reservation{}
		}
		c.JSON(http.StatusOK, gin.H{"reservations": reservations})
	}
}

// Reserve claims the caller's spot. Reserving while already holding one
// returns the existing reservation unchanged.
func Reserve(rosters RosterApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := rosters.Reserve(c.Request.Context(), accountID(c))
		if err != nil {
			if errors.Is(err, roster.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			if errors.Is(err, roster.ErrProfileInactive) {
				// Distinct signal: the front end prompts an out-of-band
				// activation request.
				c.JSON(http.StatusForbidden, gin.H{
					"error":               "account inactive",
					"activation_required": true,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reserve"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservation": res})
	}
}

// CancelReservation drops the caller's reservation; no-op when absent.
func CancelReservation(rosters RosterApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rosters.Cancel(c.Request.Context(), accountID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// UpdateProfile edits the caller's name, city and phone.
func UpdateProfile(profiles ProfileApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profile.UpdateContactRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}

		updated, err := profiles.UpdateContact(c.Request.Context(), accountID(c), req)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": updated})
	}
}

// AdminProfiles lists every profile ordered by name.
func AdminProfiles(profiles ProfileApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := profiles.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profiles": list})
	}
}

// AdminSetProfileState activates or deactivates a player.
func AdminSetProfileState(profiles ProfileApp) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad profile id"})
			return
		}

		var req struct {
			State models.ProfileState `json:"state"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}

		updated, err := profiles.SetState(c.Request.Context(), id, req.State)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": updated})
	}
}
