package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/trainlog/internal/training"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Form        url.Values
}

type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeServer(t *testing.T, status int, body string) *fakeServer {
	t.Helper()
	fs := &fakeServer{status: status, body: body}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))
		fs.mu.Lock()
		fs.requests = append(fs.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Form:        form,
		})
		fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fs.status)
		_, _ = io.WriteString(w, fs.body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) recorded() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := New(Settings{BaseURL: base})
	require.NoError(t, err)
	return c
}

func TestRecordTrainingPostsTimestamp(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{"message":"ok"}`)
	c := newTestClient(t, srv.URL)

	now := time.Now()
	err := c.RecordTraining(context.Background(), training.OccurredToday(training.Sea, now))
	require.NoError(t, err)

	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, training.PathSeaTraining, reqs[0].Path)
	assert.Contains(t, reqs[0].ContentType, "application/x-www-form-urlencoded")
	require.Len(t, reqs[0].Form, 1)
	sent, err := time.Parse(time.RFC3339Nano, reqs[0].Form.Get("data"))
	require.NoError(t, err)
	assert.WithinDuration(t, now, sent, time.Second)
}

func TestRecordTrainingPostsDescriptionToGym(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL)

	evt, err := training.Described(training.Gym, "agachamento 5x5")
	require.NoError(t, err)
	require.NoError(t, c.RecordTraining(context.Background(), evt))

	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, training.PathGymTraining, reqs[0].Path)
	assert.Equal(t, "agachamento 5x5", reqs[0].Form.Get("data"))
}

func TestAddStageSendsExactFields(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL)

	stage, err := training.ParseStage("2", "7.5", "3")
	require.NoError(t, err)
	require.NoError(t, c.AddStage(context.Background(), stage))

	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, training.PathStageInfo, reqs[0].Path)
	assert.Equal(t, url.Values{
		"etapa":     {"2"},
		"nota":      {"7.5"},
		"colocacao": {"3"},
	}, reqs[0].Form)
}

func TestPrognosisDecodesJSON(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{"prognostico":"Ótimo"}`)
	c := newTestClient(t, srv.URL)

	p, err := c.Prognosis(context.Background())
	require.NoError(t, err)
	assert.Contains(t, p.Message(), "Ótimo")

	reqs := srv.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, training.PathPrognosis, reqs[0].Path)
	assert.Empty(t, reqs[0].Form)
}

func TestPrognosisWithoutValueIsRequestError(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{"message":"sem dados"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.Prognosis(context.Background())
	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, training.ActionPrognosis, rerr.Action)
	assert.Equal(t, http.StatusOK, rerr.StatusCode)
	assert.True(t, errors.Is(err, training.ErrEmptyPrognosis))
	assert.Equal(t, "Erro ao obter prognóstico.", rerr.UserMessage())
}

func TestNonOKStatusIsRequestError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadRequest, http.StatusCreated} {
		srv := newFakeServer(t, status, `{"error":"falhou"}`)
		c := newTestClient(t, srv.URL)

		stage, err := training.ParseStage("1", "9", "1")
		require.NoError(t, err)
		err = c.AddStage(context.Background(), stage)

		var rerr *RequestError
		require.ErrorAs(t, err, &rerr, "status %d", status)
		assert.Equal(t, status, rerr.StatusCode)
		assert.Equal(t, "Erro ao registrar informações da etapa.", rerr.UserMessage())
		assert.Len(t, srv.recorded(), 1, "no retries expected")
	}
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := newTestClient(t, base)
	err := c.RecordTraining(context.Background(), training.OccurredToday(training.Gym, time.Now()))
	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
	assert.Equal(t, training.ActionGym, rerr.Action)
	assert.Equal(t, "Erro ao registrar treino na academia.", rerr.UserMessage())
}

func TestTimeoutIsRequestError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Settings{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = c.Prognosis(context.Background())
	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Settings{BaseURL: "ftp://treino.local"})
	assert.Error(t, err)
	c, err := New(Settings{BaseURL: "http://treino.local/"})
	require.NoError(t, err)
	assert.Equal(t, "http://treino.local", c.BaseURL())
}
