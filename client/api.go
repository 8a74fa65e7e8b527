package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
)

// Login exchanges a username and password for a bearer token. The token is
// returned but not installed; callers decide when to SetToken.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	var token TokenResponse
	if err := c.postForm(ctx, "/api/auth/login", form, &token); err != nil {
		return TokenResponse{}, err
	}
	return token, nil
}

// Register creates a new operator account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	if err := c.postJSON(ctx, "/api/auth/register", req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Me fetches the profile for the current bearer credential.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.getJSON(ctx, "/api/auth/me", &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Alerts lists alerts filtered by resolution state, newest first.
func (c *Client) Alerts(ctx context.Context, resolved bool) ([]Alert, error) {
	var alerts []Alert
	path := "/api/alerts?resolved=" + strconv.FormatBool(resolved)
	if err := c.getJSON(ctx, path, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Alert fetches a single alert by id.
func (c *Client) Alert(ctx context.Context, id int) (Alert, error) {
	var alert Alert
	if err := c.getJSON(ctx, fmt.Sprintf("/api/alerts/%d", id), &alert); err != nil {
		return Alert{}, err
	}
	return alert, nil
}

// Sensors lists all registered sensors.
func (c *Client) Sensors(ctx context.Context) ([]Sensor, error) {
	var sensors []Sensor
	if err := c.getJSON(ctx, "/api/sensors", &sensors); err != nil {
		return nil, err
	}
	return sensors, nil
}

// Overview fetches the dashboard overview (sensor statuses + statistics).
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	var overview Overview
	if err := c.getJSON(ctx, "/api/dashboard/overview", &overview); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

// Health checks server liveness. No authentication required.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil)
}

// ResolveAlert submits the resolution of one alert as a multipart request
// with fields threat_type, details and file. It returns the updated alert.
func (c *Client) ResolveAlert(ctx context.Context, id int, threatType, details, filename, mediaType string, file io.Reader) (Alert, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("threat_type", threatType); err != nil {
		return Alert{}, fmt.Errorf("writing threat_type field: %w", err)
	}
	if err := w.WriteField("details", details); err != nil {
		return Alert{}, fmt.Errorf("writing details field: %w", err)
	}
	part, err := w.CreatePart(fileHeader(filename, mediaType))
	if err != nil {
		return Alert{}, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Alert{}, fmt.Errorf("copying file contents: %w", err)
	}
	if err := w.Close(); err != nil {
		return Alert{}, fmt.Errorf("finalizing multipart body: %w", err)
	}

	var alert Alert
	path := fmt.Sprintf("/api/alerts/%d/resolve", id)
	if err := c.do(ctx, http.MethodPost, path, &body, w.FormDataContentType(), &alert); err != nil {
		return Alert{}, err
	}
	return alert, nil
}

func fileHeader(filename, mediaType string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", mediaType)
	return h
}
