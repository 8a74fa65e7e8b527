package client

import "time"

// TokenResponse is returned from POST /api/auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated operator's profile.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Alert is a server-owned alert record. Resolution fields are set once
// the alert has been resolved.
type Alert struct {
	ID                int        `json:"id"`
	SensorID          string     `json:"sensor_id"`
	SensorName        string     `json:"sensor_name"`
	AlertTime         time.Time  `json:"alert_time"`
	Resolved          bool       `json:"resolved"`
	ResolvedBy        *int       `json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	ThreatType        string     `json:"threat_type,omitempty"`
	ResolutionDetails string     `json:"resolution_details,omitempty"`
	AttachmentPath    string     `json:"attachment_path,omitempty"`
}

// Sensor is a registered sensor.
type Sensor struct {
	ID         int       `json:"id"`
	SensorID   string    `json:"sensor_id"`
	SensorName string    `json:"sensor_name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CreatedAt  time.Time `json:"created_at"`
}

// SensorStatus is one sensor's entry in the dashboard overview. Status is
// "red" while the sensor has an unresolved alert, "green" otherwise.
type SensorStatus struct {
	SensorID      string     `json:"sensor_id"`
	SensorName    string     `json:"sensor_name"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	Status        string     `json:"status"`
	LastAlertTime *time.Time `json:"last_alert_time"`
}

// Statistics summarizes alert counts for the dashboard.
type Statistics struct {
	TotalAlerts      int `json:"total_alerts"`
	UnresolvedAlerts int `json:"unresolved_alerts"`
	ResolvedAlerts   int `json:"resolved_alerts"`
	TotalSensors     int `json:"total_sensors"`
}

// Overview is returned from GET /api/dashboard/overview.
type Overview struct {
	Sensors    []SensorStatus `json:"sensors"`
	Statistics Statistics     `json:"statistics"`
}
