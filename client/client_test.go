package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestwatch/forestwatch/client"
)

const testToken = "tok-abc123"

// setupServer starts a fake dashboard API covering the endpoints the
// client talks to.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()

	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		if req.PostFormValue("username") != "ranger" || req.PostFormValue("password") != "pine-needles" {
			writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": testToken, "token_type": "bearer"})
	})

	r.Post("/api/auth/register", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, decodeJSON(req, &body))
		if body["username"] == "taken" {
			writeDetail(w, http.StatusBadRequest, "Username already registered")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 7, "username": body["username"], "email": body["email"], "full_name": body["full_name"],
		})
	})

	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+testToken {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 7, "username": "ranger", "email": "ranger@forest.example", "full_name": "Forest Ranger",
		})
	})

	r.Get("/api/alerts", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("resolved") == "true" {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id": 1, "sensor_id": "S-01", "sensor_name": "North Ridge",
			"alert_time": "2025-06-01T10:00:00Z", "resolved": false,
		}})
	})

	r.Get("/api/dashboard/overview", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"sensors": []map[string]any{{
				"sensor_id": "S-01", "sensor_name": "North Ridge",
				"latitude": 54.1, "longitude": 24.9, "status": "red", "last_alert_time": nil,
			}},
			"statistics": map[string]int{
				"total_alerts": 3, "unresolved_alerts": 1, "resolved_alerts": 2, "total_sensors": 1,
			},
		})
	})

	r.Post("/api/alerts/{id}/resolve", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		if req.PostFormValue("threat_type") == "banana" {
			writeDetail(w, http.StatusBadRequest, "Invalid threat type")
			return
		}
		file, header, err := req.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "evidence.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 1, "sensor_id": "S-01", "sensor_name": "North Ridge",
			"alert_time": "2025-06-01T10:00:00Z", "resolved": true,
			"threat_type":        req.PostFormValue("threat_type"),
			"resolution_details": req.PostFormValue("details"),
		})
	})

	return httptest.NewServer(r)
}

func TestLogin(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	token, err := c.Login(context.Background(), "ranger", "pine-needles")
	require.NoError(t, err)
	assert.Equal(t, testToken, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLoginBadPassword(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	_, err := c.Login(context.Background(), "ranger", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)
	assert.True(t, client.IsUnauthorized(err))
}

func TestBearerTokenLifecycle(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	// No token set: the protected endpoint rejects us.
	_, err := c.Me(context.Background())
	assert.True(t, client.IsUnauthorized(err))

	c.SetToken(testToken)
	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ranger", user.Username)

	c.ClearToken()
	_, err = c.Me(context.Background())
	assert.True(t, client.IsUnauthorized(err))
}

func TestAlertsQuery(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	active, err := c.Alerts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "North Ridge", active[0].SensorName)
	assert.False(t, active[0].Resolved)

	resolved, err := c.Alerts(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestOverview(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	overview, err := c.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Statistics.UnresolvedAlerts)
	require.Len(t, overview.Sensors, 1)
	assert.Equal(t, "red", overview.Sensors[0].Status)
	assert.Nil(t, overview.Sensors[0].LastAlertTime)
}

func TestResolveAlertMultipart(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	alert, err := c.ResolveAlert(context.Background(), 1, "real", "smoke confirmed, crew dispatched",
		"evidence.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, alert.Resolved)
	assert.Equal(t, "real", alert.ThreatType)
	assert.Equal(t, "smoke confirmed, crew dispatched", alert.ResolutionDetails)
}

func TestResolveAlertServerDetail(t *testing.T) {
	srv := setupServer(t)
	defer srv.Close()
	c := client.New(srv.URL)

	_, err := c.ResolveAlert(context.Background(), 1, "banana", "details",
		"evidence.jpg", "image/jpeg", strings.NewReader("x"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid threat type", apiErr.Detail)
}

func TestNetworkError(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url)
	_, err := c.Me(context.Background())
	var netErr *client.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "/api/auth/me", netErr.Path)
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Me(context.Background())
	assert.True(t, errors.Is(err, client.ErrMalformedResponse))
}

func TestErrorDetailFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Me(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(req *http.Request, v any) error {
	return json.NewDecoder(req.Body).Decode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
