package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

type stubMonasteryRepo struct {
	monasteries []domain.Monastery
	err         error
}

func (r *stubMonasteryRepo) FindAll(_ context.Context) ([]domain.Monastery, error) {
	return r.monasteries, r.err
}

type stubGuideService struct {
	guides []domain.Guide
	err    error
}

func (s *stubGuideService) List(_ context.Context) ([]domain.Guide, error) {
	return s.guides, s.err
}

func (s *stubGuideService) Match(_ context.Context, pref domain.Preference) ([]domain.Guide, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.MatchGuides(s.guides, pref), nil
}

type stubSignupService struct {
	result *publicapp.SignupResult
	err    error
}

func (s *stubSignupService) Signup(_ context.Context, _ publicapp.SignupCommand) (*publicapp.SignupResult, error) {
	return s.result, s.err
}

type stubWeatherProvider struct {
	report *publicapp.WeatherReport
	err    error
	city   string
}

func (p *stubWeatherProvider) CurrentByCity(_ context.Context, city string) (*publicapp.WeatherReport, error) {
	p.city = city
	return p.report, p.err
}

type stubLiveCollection struct {
	records []publicapp.Record
}

func (c *stubLiveCollection) Subscribe(_ context.Context, onUpdate func([]publicapp.Record)) (func(), error) {
	onUpdate(c.records)
	return func() {}, nil
}

type handlerFixture struct {
	monasteries *stubMonasteryRepo
	guides      *stubGuideService
	signup      *stubSignupService
	weather     *stubWeatherProvider
	live        *stubLiveCollection
	chat        *publicapp.ChatService
	router      chi.Router
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		monasteries: &stubMonasteryRepo{},
		guides:      &stubGuideService{},
		signup:      &stubSignupService{},
		weather:     &stubWeatherProvider{},
		live:        &stubLiveCollection{},
		chat: publicapp.NewChatService(publicapp.ChatConfig{
			DemoDelay: time.Millisecond,
			Welcome:   "Namaste!",
		}),
	}

	handler := NewHandler(Config{
		Logger:             log.New(io.Discard, "", 0),
		Monasteries:        f.monasteries,
		LiveMonasteries:    f.live,
		Guides:             f.guides,
		Signup:             f.signup,
		Chat:               f.chat,
		Weather:            f.weather,
		WeatherDefaultCity: "Gangtok",
	})

	passthrough := func(next http.Handler) http.Handler { return next }
	f.router = chi.NewRouter()
	handler.Register(f.router, passthrough)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestMonasteryListHandler(t *testing.T) {
	f := newHandlerFixture()
	f.monasteries.monasteries = []domain.Monastery{
		{ID: "1", Name: "Rumtek Monastery", Description: "Spiritual heart of Sikkim, known for Tibetan architecture."},
	}

	rec := f.do(t, http.MethodGet, "/monasteries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Items []monasteryResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	require.Equal(t, "Rumtek Monastery", payload.Items[0].Name)
}

func TestMonasteryListHandlerFetchFailure(t *testing.T) {
	f := newHandlerFixture()
	f.monasteries.err = errors.New("cursor failed")

	rec := f.do(t, http.MethodGet, "/monasteries", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGuideMatchHandler(t *testing.T) {
	f := newHandlerFixture()
	f.guides.guides = []domain.Guide{
		{ID: "1", Name: "Tashi Dorje", Languages: "English, Hindi", Price: "50"},
		{ID: "2", Name: "Karma Wangchuk", Languages: []any{"English"}, Price: 80.0},
	}

	rec := f.do(t, http.MethodGet, "/guides/match?language=English&budget=60", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Items []guideResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	require.Equal(t, "Tashi Dorje", payload.Items[0].Name)
	require.NotNil(t, payload.Items[0].Price)
	require.Equal(t, float64(50), *payload.Items[0].Price)
}

func TestGuideMatchHandlerValidation(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/guides/match?budget=60", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/guides/match?language=English&budget=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuideMatchHandlerFetchFailureAnswersEmpty(t *testing.T) {
	f := newHandlerFixture()
	f.guides.err = errors.New("cursor failed")

	rec := f.do(t, http.MethodGet, "/guides/match?language=English&budget=60", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Items []guideResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Items)
	require.Empty(t, payload.Items)
}

func TestGuideListHandlerPagination(t *testing.T) {
	f := newHandlerFixture()
	f.guides.guides = []domain.Guide{
		{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"},
	}

	rec := f.do(t, http.MethodGet, "/guides?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload guideListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 3, payload.Total)
	require.Len(t, payload.Items, 1)
	require.Equal(t, "C", payload.Items[0].Name)
}

func TestSignupHandler(t *testing.T) {
	f := newHandlerFixture()
	f.signup.result = &publicapp.SignupResult{ID: "uid-1", Token: "token-1"}

	rec := f.do(t, http.MethodPost, "/signup", `{"name":"Pema","phone":"+91 9999999999","email":"pema@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var payload signupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "uid-1", payload.ID)
	require.Equal(t, "token-1", payload.Token)
}

func TestSignupHandlerValidation(t *testing.T) {
	f := newHandlerFixture()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"phone":"123"}`},
		{name: "missing phone", body: `{"name":"Pema"}`},
		{name: "bad email", body: `{"name":"Pema","phone":"123","email":"not-an-email"}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/signup", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignupHandlerFailureMapping(t *testing.T) {
	f := newHandlerFixture()

	f.signup.err = &domain.AuthError{Reason: "anonymous sign-in failed"}
	rec := f.do(t, http.MethodPost, "/signup", `{"name":"Pema","phone":"123"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	f.signup.err = &domain.StoreWriteError{Collection: "users"}
	rec = f.do(t, http.MethodPost, "/signup", `{"name":"Pema","phone":"123"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "could not save your details")
}

func TestWeatherHandlerRelaysBody(t *testing.T) {
	f := newHandlerFixture()
	f.weather.report = &publicapp.WeatherReport{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"main":{"temp":14.2}}`),
	}

	rec := f.do(t, http.MethodGet, "/weather?city=Pelling", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Pelling", f.weather.city)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"main":{"temp":14.2}}`, rec.Body.String())
}

func TestWeatherHandlerDefaultCity(t *testing.T) {
	f := newHandlerFixture()
	f.weather.report = &publicapp.WeatherReport{StatusCode: http.StatusOK, Body: []byte(`{}`)}

	rec := f.do(t, http.MethodGet, "/weather", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Gangtok", f.weather.city)
}

func TestWeatherHandlerRelaysUpstreamStatus(t *testing.T) {
	f := newHandlerFixture()
	f.weather.report = &publicapp.WeatherReport{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"cod":"404","message":"city not found"}`),
	}

	rec := f.do(t, http.MethodGet, "/weather?city=Atlantis", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Weather API failed: ")
	require.Contains(t, rec.Body.String(), "city not found")
}

func TestWeatherHandlerTransportFailure(t *testing.T) {
	f := newHandlerFixture()
	f.weather.err = &domain.UpstreamError{Provider: "weather", Err: errors.New("connection refused")}

	rec := f.do(t, http.MethodGet, "/weather", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatMessageHandlerDemoReply(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/chat/messages", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload chatMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "(No backend configured) Demo reply: I received: hello", payload.Reply)
}

func TestChatMessageHandlerEmptyMessage(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/chat/messages", `{"message":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatSessionLifecycle(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/chat/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created chatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)
	require.Equal(t, "closed", created.State)
	require.Len(t, created.Messages, 1)

	rec = f.do(t, http.MethodPost, "/chat/sessions/"+created.SessionID+"/open", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var opened chatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	require.Equal(t, "open", opened.State)
	require.True(t, opened.Focused)

	rec = f.do(t, http.MethodPost, "/chat/sessions/"+created.SessionID+"/messages", `{"message":"<b>hi</b>"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var exchanged chatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exchanged))
	require.Len(t, exchanged.Messages, 3)
	require.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", exchanged.Messages[1].HTML)

	rec = f.do(t, http.MethodPost, "/chat/sessions/"+created.SessionID+"/close", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var closed chatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	require.Equal(t, "closed", closed.State)
	require.False(t, closed.Focused)
}

func TestChatSessionDelete(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/chat/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created chatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodDelete, "/chat/sessions/"+created.SessionID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/chat/sessions/"+created.SessionID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/chat/sessions/"+created.SessionID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatSessionHandlerUnknownSession(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/chat/sessions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
