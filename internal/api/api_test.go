package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogar-app/hogar/internal/contextcache"
	"github.com/hogar-app/hogar/internal/model"
	sqlitestore "github.com/hogar-app/hogar/internal/store/sqlite"
)

// relayLLM is a stand-in completion client for the API tests.
type relayLLM struct {
	response string
	err      error
}

func (f *relayLLM) Complete(context.Context, string) (string, error) {
	return f.response, f.err
}

func newAPIServer(t *testing.T, llmClient *relayLLM) *httptest.Server {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(ON)")
	require.NoError(t, err)
	// Each pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	st, err := sqlitestore.New(db)
	require.NoError(t, err)

	router := NewRouter(st, llmClient, contextcache.New(time.Minute), zerolog.Nop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func makeRequest(t *testing.T, srv *httptest.Server, method, path string, body interface{}) *http.Response {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req, err := http.NewRequest(method, srv.URL+path, bodyReader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func parseResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

type chatEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Response string                  `json:"response"`
		Intent   string                  `json:"intent"`
		Context  *model.AssistantContext `json:"context"`
	} `json:"data"`
}

func TestAPI_Health(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	resp := makeRequest(t, srv, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	parseResponse(t, resp, &result)
	assert.NotNil(t, result["status"])
	assert.NotNil(t, result["timestamp"])
}

func TestAPI_ChatCreatesEvent(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{response: "no debería usarse"})

	resp := makeRequest(t, srv, "POST", "/api/chat", map[string]string{
		"message": "Crear evento Fiesta Sorpresa el 2025-12-25",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env chatEnvelope
	parseResponse(t, resp, &env)
	assert.True(t, env.Success)
	assert.Equal(t, "create_event", env.Data.Intent)
	assert.Contains(t, env.Data.Response, "Fiesta Sorpresa")
	assert.Contains(t, env.Data.Response, "2025-12-25")

	// The event must be visible on the CRUD surface.
	resp = makeRequest(t, srv, "GET", "/api/events", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []*model.Event
	parseResponse(t, resp, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Fiesta Sorpresa", events[0].Name)
	assert.Equal(t, "2025-12-25", events[0].Date)
	assert.Equal(t, model.EventTypeGeneric, events[0].Type)

	// And in the chat history.
	resp = makeRequest(t, srv, "GET", "/api/chat/history", nil)
	var hist struct {
		Success bool                     `json:"success"`
		Data    []*model.ChatInteraction `json:"data"`
	}
	parseResponse(t, resp, &hist)
	require.Len(t, hist.Data, 1)
	assert.Equal(t, "Crear evento Fiesta Sorpresa el 2025-12-25", hist.Data[0].Message)
}

func TestAPI_ChatAddsShoppingItem(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	resp := makeRequest(t, srv, "POST", "/api/chat", map[string]string{
		"message": "Añadir leche a la lista de la compra",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env chatEnvelope
	parseResponse(t, resp, &env)
	assert.Equal(t, "add_shopping_item", env.Data.Intent)
	assert.Contains(t, env.Data.Response, "leche")

	resp = makeRequest(t, srv, "GET", "/api/shopping", nil)
	var items []*model.ShoppingItem
	parseResponse(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "leche", items[0].Name)
	assert.False(t, items[0].Completed)
}

func TestAPI_ChatFallbackWhenLLMDown(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{err: errors.New("connection refused")})

	resp := makeRequest(t, srv, "POST", "/api/chat", map[string]string{"message": "Hola"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env chatEnvelope
	parseResponse(t, resp, &env)
	assert.True(t, env.Success)
	assert.Equal(t, "none", env.Data.Intent)
	assert.NotEmpty(t, env.Data.Response)
	require.NotNil(t, env.Data.Context)
}

func TestAPI_ChatValidation(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	resp := makeRequest(t, srv, "POST", "/api/chat", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "GET", "/api/chat/history?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAPI_EventCRUD(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	var created model.Event
	resp := makeRequest(t, srv, "POST", "/api/events", map[string]interface{}{
		"name": "Cumpleaños de Ana",
		"date": "2026-10-01",
		"type": "birthday",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	parseResponse(t, resp, &created)
	assert.NotEmpty(t, created.EventID)
	assert.Equal(t, "birthday", created.Type)

	resp = makeRequest(t, srv, "GET", "/api/events/"+created.EventID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Event
	parseResponse(t, resp, &got)
	assert.Equal(t, created.EventID, got.EventID)

	resp = makeRequest(t, srv, "PUT", "/api/events/"+created.EventID, map[string]interface{}{
		"name": "Cumpleaños de Ana y Luis",
		"date": "2026-10-02",
		"type": "birthday",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	parseResponse(t, resp, &got)
	assert.Equal(t, "Cumpleaños de Ana y Luis", got.Name)
	assert.Equal(t, "2026-10-02", got.Date)

	resp = makeRequest(t, srv, "DELETE", "/api/events/"+created.EventID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "GET", "/api/events/"+created.EventID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAPI_EventAttendees(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	var ev model.Event
	resp := makeRequest(t, srv, "POST", "/api/events", map[string]interface{}{
		"name": "Cena", "date": "2026-11-05", "type": "generic",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	parseResponse(t, resp, &ev)

	var m model.Member
	resp = makeRequest(t, srv, "POST", "/api/members", map[string]interface{}{"name": "Ana"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	parseResponse(t, resp, &m)

	resp = makeRequest(t, srv, "POST", "/api/events/"+ev.EventID+"/members/"+m.MemberID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	// Attaching twice is idempotent.
	resp = makeRequest(t, srv, "POST", "/api/events/"+ev.EventID+"/members/"+m.MemberID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "GET", "/api/events/"+ev.EventID+"/members", nil)
	var attendees []*model.Member
	parseResponse(t, resp, &attendees)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Ana", attendees[0].Name)

	resp = makeRequest(t, srv, "POST", "/api/events/"+ev.EventID+"/members/no-such-member", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAPI_MemberValidation(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	resp := makeRequest(t, srv, "POST", "/api/members", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "POST", "/api/members", map[string]interface{}{
		"name":  "Ana",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAPI_ShoppingToggleAndDelete(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	var it model.ShoppingItem
	resp := makeRequest(t, srv, "POST", "/api/shopping", map[string]interface{}{"name": "pan"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	parseResponse(t, resp, &it)
	assert.False(t, it.Completed)

	resp = makeRequest(t, srv, "PATCH", "/api/shopping/"+it.ItemID+"/toggle", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	parseResponse(t, resp, &it)
	assert.True(t, it.Completed)

	resp = makeRequest(t, srv, "DELETE", "/api/shopping/"+it.ItemID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "DELETE", "/api/shopping/"+it.ItemID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAPI_ChatContext(t *testing.T) {
	srv := newAPIServer(t, &relayLLM{})

	resp := makeRequest(t, srv, "POST", "/api/shopping", map[string]interface{}{"name": "huevos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = makeRequest(t, srv, "GET", "/api/chat/context", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool                   `json:"success"`
		Data    model.AssistantContext `json:"data"`
	}
	parseResponse(t, resp, &env)
	assert.True(t, env.Success)
	require.Len(t, env.Data.PendingItems, 1)
	assert.Equal(t, "huevos", env.Data.PendingItems[0].Name)
}
