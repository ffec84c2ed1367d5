package v1handler_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"reviewd/internal/api/handler/v1handler"
	"reviewd/internal/checker"
	mockreporter "reviewd/internal/reporter/mock"
	"reviewd/pkg/adscache"
	"reviewd/pkg/domain"
	"reviewd/pkg/logger"
	"reviewd/pkg/prefs"
	mockreviews "reviewd/pkg/reviews/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type fixture struct {
	server   *httptest.Server
	hub      *checker.Hub
	client   *mockreviews.MockClient
	reporter *mockreporter.MockReporter
	prefs    *prefs.Memory
}

// newFixture builds the v1 routes on an in-memory hub. Prefs default to not
// opted in, so opening a session performs no upstream calls.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		client:   mockreviews.NewMockClient(ctrl),
		reporter: mockreporter.NewMockReporter(ctrl),
		prefs:    prefs.NewMemory(),
	}
	f.hub = checker.NewHub(checker.Deps{
		Client:   f.client,
		Ads:      adscache.NewMemory(),
		Prefs:    f.prefs,
		Reporter: f.reporter,
	}, checker.Options{
		InitialPollInterval: 30 * time.Second,
		PollDecrement:       10 * time.Second,
		MinPollInterval:     10 * time.Second,
		ImpressionDelay:     1500 * time.Millisecond,
	})
	t.Cleanup(f.hub.CloseAll)

	router := mux.NewRouter()
	v1handler.New(v1handler.Deps{Hub: f.hub, Reporter: f.reporter}).Register(router)
	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, &buf)
	require.NoError(t, err)

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func (f *fixture) openSession(t *testing.T) v1handler.Session {
	t.Helper()

	resp := f.do(t, http.MethodPost, "/sessions", map[string]string{"productId": "B09TEST123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decode[v1handler.Session](t, resp)
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t)

	s := f.openSession(t)
	require.NotEqual(t, uuid.Nil, s.SessionID)
	require.Equal(t, "B09TEST123", s.ProductID)
	require.Equal(t, "loading", s.State.Kind)
}

func TestCreateSession_InvalidProduct(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/sessions", map[string]string{"productId": "bad/id"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSession_MalformedBody(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequestWithContext(context.Background(),
		http.MethodPost, f.server.URL+"/sessions", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	resp := f.do(t, http.MethodGet, "/sessions/"+s.SessionID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[v1handler.Session](t, resp)
	require.Equal(t, s.SessionID, got.SessionID)
}

func TestGetSession_Unknown(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/sessions/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSession_MalformedID(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/sessions/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionElements(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	// not opted in: the element list is the single onboarding card
	resp := f.do(t, http.MethodGet, "/sessions/"+s.SessionID.String()+"/elements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[map[string][]domain.ElementTag](t, resp)
	require.Equal(t, []domain.ElementTag{domain.ElementOnboarding}, got["elements"])
}

func TestAnalyzeSession(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	triggered := make(chan struct{})
	f.client.EXPECT().TriggerAnalysis(gomock.Any(), domain.ProductID("B09TEST123")).
		DoAndReturn(func(context.Context, domain.ProductID) (*domain.AnalysisStatus, error) {
			close(triggered)

			return nil, nil
		})
	f.client.EXPECT().ProductAnalysis(gomock.Any(), domain.ProductID("B09TEST123")).
		Return(nil, nil).AnyTimes()
	f.client.EXPECT().ProductAds(gomock.Any(), domain.ProductID("B09TEST123")).
		Return(nil, nil).AnyTimes()

	resp := f.do(t, http.MethodPost, "/sessions/"+s.SessionID.String()+"/analyze", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case <-triggered:
	case <-time.After(time.Second):
		t.Fatal("expected the analysis to be triggered")
	}
}

func TestReportStock(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	f.reporter.EXPECT().BackInStock(gomock.Any(), domain.ProductID("B09TEST123")).
		Return(&domain.Report{}, nil)

	resp := f.do(t, http.MethodPost, "/sessions/"+s.SessionID.String()+"/stock-report", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestToggleAds(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	resp := f.do(t, http.MethodPost, "/sessions/"+s.SessionID.String()+"/ads/toggle", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	enabled, err := f.prefs.Bool(context.Background(), prefs.KeyAdsEnabled, true)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestAdVisibility(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	// no qualifying ad is displayed, the signal is accepted and ignored
	resp := f.do(t, http.MethodPost,
		"/sessions/"+s.SessionID.String()+"/ad-visibility", map[string]bool{"visible": true})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	resp := f.do(t, http.MethodDelete, "/sessions/"+s.SessionID.String(), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/sessions/"+s.SessionID.String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionEvents(t *testing.T) {
	f := newFixture(t)
	s := f.openSession(t)

	req, err := http.NewRequestWithContext(context.Background(),
		http.MethodGet, f.server.URL+"/sessions/"+s.SessionID.String()+"/events", nil)
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	require.Equal(t, ": connected", scanner.Text())

	// a preference toggle produces a state-changed event
	go func() {
		r, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
			f.server.URL+"/sessions/"+s.SessionID.String()+"/ads/toggle", nil)
		if err != nil {
			return
		}
		if toggleResp, err := f.server.Client().Do(r); err == nil {
			_ = toggleResp.Body.Close()
		}
	}()

	deadline := time.After(2 * time.Second)
	events := make(chan string, 1)
	go func() {
		for scanner.Scan() {
			if strings.HasPrefix(scanner.Text(), "event:") {
				events <- scanner.Text()

				return
			}
		}
	}()

	select {
	case line := <-events:
		require.Equal(t, "event: state-changed", line)
	case <-deadline:
		t.Fatal("expected a state-changed event")
	}
}

func TestProductReports(t *testing.T) {
	f := newFixture(t)

	reports := []domain.Report{{
		ID:        domain.ReportID(uuid.New()),
		ProductID: "B09TEST123",
		Kind:      domain.ReportKindBackInStock,
		Status:    domain.ReportStatusPending,
	}}
	f.reporter.EXPECT().
		ProductReports(gomock.Any(), domain.ProductID("B09TEST123"), "abc", uint(5)).
		Return(reports, "next-cursor", nil)

	resp := f.do(t, http.MethodGet, "/products/B09TEST123/reports?cursor=abc&limit=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Items      []domain.Report `json:"items"`
		NextCursor string          `json:"nextCursor"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	require.Equal(t, reports[0].ID, got.Items[0].ID)
	require.Equal(t, "next-cursor", got.NextCursor)
}

func TestProductReports_DefaultLimit(t *testing.T) {
	f := newFixture(t)

	f.reporter.EXPECT().
		ProductReports(gomock.Any(), domain.ProductID("B09TEST123"), "", uint(v1handler.DefaultLimit)).
		Return(nil, "", nil)

	resp := f.do(t, http.MethodGet, "/products/B09TEST123/reports", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[map[string]json.RawMessage](t, resp)
	require.JSONEq(t, "[]", string(got["items"]))
}

func TestProductReports_InvalidLimit(t *testing.T) {
	f := newFixture(t)

	for _, limit := range []string{"0", "-3", "nan"} {
		resp := f.do(t, http.MethodGet,
			fmt.Sprintf("/products/B09TEST123/reports?limit=%s", limit), nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}
