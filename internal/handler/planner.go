package handler // handler defines http handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/config"
	"github.com/iliyamo/seatplan/internal/repository"
	"github.com/iliyamo/seatplan/internal/service"
)

// validate checks request bodies carrying `validate` tags.
var validate = validator.New()

// PlannerHandler bundles the repositories of one open store together with
// the settings file and event publisher.
type PlannerHandler struct {
	Store       *repository.StoreRepo
	Floors      *repository.FloorRepo
	Seats       *repository.SeatRepo
	Guests      *repository.GuestRepo
	Occupancy   *repository.OccupancyRepo
	Assignments *repository.AssignmentRepo
	Settings    *config.SettingsFile
	Publisher   service.Publisher

	JWTSecret    string
	AccessTTLMin int
	MinSeatArea  float64
}

// NewPlannerHandler builds a handler over db and panics if a dependency is
// nil.  A nil publisher is replaced by the no-op publisher.
func NewPlannerHandler(cfg config.Config, db *sql.DB, settings *config.SettingsFile, pub service.Publisher) *PlannerHandler {
	if db == nil || settings == nil {
		panic("nil dependency passed to NewPlannerHandler")
	}
	if pub == nil {
		pub = service.NewPublisher("")
	}
	return &PlannerHandler{
		Store:        repository.NewStoreRepo(db),
		Floors:       repository.NewFloorRepo(db),
		Seats:        repository.NewSeatRepo(db),
		Guests:       repository.NewGuestRepo(db),
		Occupancy:    repository.NewOccupancyRepo(db),
		Assignments:  repository.NewAssignmentRepo(db),
		Settings:     settings,
		Publisher:    pub,
		JWTSecret:    cfg.JWTSecret,
		AccessTTLMin: cfg.AccessTTLMin,
		MinSeatArea:  cfg.MinSeatArea,
	}
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// repoError maps repository sentinels to HTTP responses.  Anything
// unexpected is logged with op and answered with 500 so the caller keeps
// running on the state it had.
func repoError(c echo.Context, op string, err error) error {
	var cerr *repository.CapacityError
	switch {
	case errors.As(err, &cerr):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":     "seat capacity exceeded",
			"seat_id":   cerr.SeatID,
			"remaining": cerr.Remaining,
			"required":  cerr.Required,
		})
	case errors.Is(err, repository.ErrFloorNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "floor not found"})
	case errors.Is(err, repository.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "seat not found"})
	case errors.Is(err, repository.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "guest not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidInput):
		return badRequest(c, err.Error())
	}
	log.Printf("handler: %s failed: %v", op, err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": op + " failed"})
}
