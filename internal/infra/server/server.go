package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/app"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/config"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Trigger is the slice of the scheduler the server needs for the
// manual capture endpoint.
type Trigger interface {
	Trigger(cfg delivery.Config) bool
}

// Server exposes the observer surface of the daemon: the countdown and
// last-cycle status, the cycle journal, liveness, Prometheus metrics
// and a manual capture trigger. It is a pure consumer of status
// snapshots; it never drives the pipeline except through Trigger.
type Server struct {
	echo    *echo.Echo
	board   *app.StatusBoard
	trigger Trigger
	store   config.Store
	journal cycle.Repository
	addr    string
	log     *logrus.Entry
}

func New(addr string, board *app.StatusBoard, trigger Trigger, store config.Store, journal cycle.Repository) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:    e,
		board:   board,
		trigger: trigger,
		store:   store,
		journal: journal,
		addr:    addr,
		log:     logger.Log.WithField("component", "server"),
	}

	e.GET("/healthz", s.handleHealth)
	e.GET("/status", s.handleStatus)
	e.GET("/cycles", s.handleCycles)
	e.POST("/capture", s.handleCapture)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Infof("status server listening on %s", s.addr)
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	State            string `json:"state"`
	Message          string `json:"message"`
	SecondsRemaining int    `json:"seconds_remaining"`
	NextCaptureAt    string `json:"next_capture_at,omitempty"`
	Reason           string `json:"reason,omitempty"`
	LastResult       string `json:"last_result,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	JoinLink         string `json:"join_link,omitempty"`
}

func (s *Server) handleStatus(c echo.Context) error {
	st := s.board.Current()
	resp := statusResponse{
		State:            string(st.State),
		Message:          st.Message,
		SecondsRemaining: st.SecondsRemaining,
		Reason:           st.Reason,
	}
	if !st.NextCaptureAt.IsZero() {
		resp.NextCaptureAt = st.NextCaptureAt.Format(time.RFC3339)
	}
	if out, ok := s.board.LastOutcome(); ok {
		resp.LastResult = string(out.Result)
		if out.Err != nil {
			resp.LastError = out.Err.Error()
		}
	}
	if snap, err := s.store.Snapshot(); err == nil {
		resp.JoinLink = snap.Delivery.JoinLink
	}
	return c.JSON(http.StatusOK, resp)
}

type cycleResponse struct {
	ID         int64  `json:"id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Result     string `json:"result"`
	Detail     string `json:"detail,omitempty"`
}

func (s *Server) handleCycles(c echo.Context) error {
	records, err := s.journal.ListRecent(c.Request().Context(), 20)
	if err != nil {
		s.log.Errorf("journal read failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "journal unavailable"})
	}

	resp := make([]cycleResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, cycleResponse{
			ID:         rec.ID,
			StartedAt:  rec.StartedAt.Format(time.RFC3339),
			FinishedAt: rec.FinishedAt.Format(time.RFC3339),
			Result:     string(rec.Result),
			Detail:     rec.Detail,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// handleCapture fires an immediate out-of-schedule cycle through the
// same serialized worker as scheduled ones, so overlap stays
// impossible.
func (s *Server) handleCapture(c echo.Context) error {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.log.Errorf("config snapshot failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "configuration unavailable"})
	}
	if !s.trigger.Trigger(snap.Delivery) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "a capture cycle is already queued"})
	}
	return c.JSON(http.StatusAccepted, map[string]bool{"queued": true})
}
