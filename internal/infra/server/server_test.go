package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/app"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/schedule"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrigger struct {
	accept bool
	got    []delivery.Config
}

func (s *stubTrigger) Trigger(cfg delivery.Config) bool {
	s.got = append(s.got, cfg)
	return s.accept
}

type stubStore struct {
	snap config.Snapshot
}

func (s *stubStore) Snapshot() (config.Snapshot, error) {
	return s.snap, nil
}

type stubJournal struct {
	records []*cycle.Record
}

func (j *stubJournal) Create(context.Context, *cycle.Record) error { return nil }
func (j *stubJournal) Latest(context.Context) (*cycle.Record, error) {
	return nil, nil
}
func (j *stubJournal) ListRecent(context.Context, int) ([]*cycle.Record, error) {
	return j.records, nil
}
func (j *stubJournal) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newTestServer(trigger *stubTrigger, board *app.StatusBoard, journal *stubJournal) *httptest.Server {
	store := &stubStore{snap: config.Snapshot{
		Schedule: schedule.Schedule{Hour: 12},
		Delivery: delivery.Config{Token: "T", ChatID: "42", JoinLink: "https://t.me/+invite"},
	}}
	s := New(":0", board, trigger, store, journal)
	return httptest.NewServer(s.echo)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubTrigger{accept: true}, app.NewStatusBoard(), &stubJournal{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatus(t *testing.T) {
	board := app.NewStatusBoard()
	board.Finish(cycle.Status{State: cycle.StateFailed, Reason: "boom"}, cycle.DeliveryFailed(&delivery.RemoteError{StatusCode: 401, Body: "Unauthorized"}))
	board.Set(cycle.Status{
		State:            cycle.StateCountingDown,
		SecondsRemaining: 90,
		Message:          "next capture in 1 minute",
		NextCaptureAt:    time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC),
	})

	srv := newTestServer(&stubTrigger{accept: true}, board, &stubJournal{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "COUNTING_DOWN", got.State)
	assert.Equal(t, 90, got.SecondsRemaining)
	assert.Equal(t, "next capture in 1 minute", got.Message)
	assert.Equal(t, "2024-03-10T12:00:00Z", got.NextCaptureAt)
	assert.Equal(t, "DELIVERY_FAILED", got.LastResult)
	assert.Contains(t, got.LastError, "401")
	assert.Equal(t, "https://t.me/+invite", got.JoinLink)
}

func TestCycles(t *testing.T) {
	journal := &stubJournal{records: []*cycle.Record{{
		ID:         1,
		StartedAt:  time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, time.March, 10, 12, 0, 3, 0, time.UTC),
		Result:     cycle.ResultSuccess,
	}}}
	srv := newTestServer(&stubTrigger{accept: true}, app.NewStatusBoard(), journal)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/cycles")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []cycleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "SUCCESS", got[0].Result)
}

func TestCapture_Queued(t *testing.T) {
	trigger := &stubTrigger{accept: true}
	srv := newTestServer(trigger, app.NewStatusBoard(), &stubJournal{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/capture", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, trigger.got, 1)
	assert.Equal(t, "42", trigger.got[0].ChatID)
}

func TestCapture_Conflict(t *testing.T) {
	srv := newTestServer(&stubTrigger{accept: false}, app.NewStatusBoard(), &stubJournal{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/capture", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
