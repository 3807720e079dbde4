// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"
)

// Patient status values.
const (
	PatientStatusActive     = "active"
	PatientStatusPaused     = "paused"
	PatientStatusDischarged = "discharged"
)

// TherapySession is one recorded session with a patient.
type TherapySession struct {
	ID              string   `json:"id"`
	PatientID       string   `json:"patient_id"`
	Date            string   `json:"date"`
	Summary         string   `json:"summary"`
	Mood            string   `json:"mood"` // very_low, low, neutral, good, great
	TopicsCovered   []string `json:"topics_covered"`
	Homework        *string  `json:"homework"`
	NextSessionDate *string  `json:"next_session_date"`
	CreatedAt       string   `json:"created_at"`
}

// PatientConfig is the full patient record including clinical configuration.
type PatientConfig struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Status              string           `json:"status"`
	CreatedAt           string           `json:"created_at"`
	ChiefComplaint      *string          `json:"chief_complaint"`
	AnxietyLevel        *string          `json:"anxiety_level"`
	DepressionLevel     *string          `json:"depression_level"`
	SleepQuality        *string          `json:"sleep_quality"`
	SuicidalIdeation    bool             `json:"suicidal_ideation"`
	CurrentMedication   *string          `json:"current_medication"`
	TherapyGoal         *string          `json:"therapy_goal"`
	TherapeuticApproach *string          `json:"therapeutic_approach"`
	FocusTopics         []string         `json:"focus_topics"`
	AvoidTopics         []string         `json:"avoid_topics"`
	ResponseDepth       string           `json:"response_depth"` // brief, moderate, detailed
	MessagesUsed        int              `json:"messages_used"`
	MessagesLimit       int              `json:"messages_limit"`
	Sessions            []TherapySession `json:"sessions"`
}

// PatientSummary is a patient row in the list view.
type PatientSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Status        string `json:"status"`
	MessagesUsed  int    `json:"messages_used"`
	MessagesLimit int    `json:"messages_limit"`
	CreatedAt     string `json:"created_at"`
}

// PatientIntakeForm creates a new patient; optional fields are omitted when nil.
type PatientIntakeForm struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	ChiefComplaint      *string  `json:"chief_complaint,omitempty"`
	AnxietyLevel        *string  `json:"anxiety_level,omitempty"`
	DepressionLevel     *string  `json:"depression_level,omitempty"`
	SleepQuality        *string  `json:"sleep_quality,omitempty"`
	SuicidalIdeation    *bool    `json:"suicidal_ideation,omitempty"`
	CurrentMedication   *string  `json:"current_medication,omitempty"`
	TherapyGoal         *string  `json:"therapy_goal,omitempty"`
	TherapeuticApproach *string  `json:"therapeutic_approach,omitempty"`
	FocusTopics         []string `json:"focus_topics,omitempty"`
	AvoidTopics         []string `json:"avoid_topics,omitempty"`
	ResponseDepth       *string  `json:"response_depth,omitempty"`
	MessagesLimit       *int     `json:"messages_limit,omitempty"`
	FirstSessionDate    *string  `json:"first_session_date,omitempty"`
	FirstSessionSummary *string  `json:"first_session_summary,omitempty"`
	FirstSessionMood    *string  `json:"first_session_mood,omitempty"`
}

// UpdatePatientConfigRequest carries partial clinical configuration updates.
type UpdatePatientConfigRequest struct {
	ChiefComplaint      *string  `json:"chief_complaint,omitempty"`
	AnxietyLevel        *string  `json:"anxiety_level,omitempty"`
	DepressionLevel     *string  `json:"depression_level,omitempty"`
	SleepQuality        *string  `json:"sleep_quality,omitempty"`
	SuicidalIdeation    *bool    `json:"suicidal_ideation,omitempty"`
	CurrentMedication   *string  `json:"current_medication,omitempty"`
	TherapyGoal         *string  `json:"therapy_goal,omitempty"`
	TherapeuticApproach *string  `json:"therapeutic_approach,omitempty"`
	FocusTopics         []string `json:"focus_topics,omitempty"`
	AvoidTopics         []string `json:"avoid_topics,omitempty"`
	ResponseDepth       *string  `json:"response_depth,omitempty"`
}

// CreateSessionRequest records a new therapy session.
type CreateSessionRequest struct {
	Date            string   `json:"date"`
	Summary         string   `json:"summary"`
	Mood            string   `json:"mood"`
	TopicsCovered   []string `json:"topics_covered,omitempty"`
	Homework        *string  `json:"homework,omitempty"`
	NextSessionDate *string  `json:"next_session_date,omitempty"`
}

// SessionListResponse lists a patient's sessions.
type SessionListResponse struct {
	Sessions []TherapySession `json:"sessions"`
	Total    int              `json:"total"`
}

// NearLimitPatient flags a patient approaching the message quota.
type NearLimitPatient struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MessagesUsed  int    `json:"messages_used"`
	MessagesLimit int    `json:"messages_limit"`
}

// RecentActivity is one dashboard activity entry.
type RecentActivity struct {
	PatientName string `json:"patient_name"`
	Action      string `json:"action"`
	Timestamp   string `json:"timestamp"`
}

// DashboardOverview is the therapist dashboard summary.
type DashboardOverview struct {
	TotalPatients      int                `json:"total_patients"`
	ActivePatients     int                `json:"active_patients"`
	PausedPatients     int                `json:"paused_patients"`
	DischargedPatients int                `json:"discharged_patients"`
	NearLimitPatients  []NearLimitPatient `json:"near_limit_patients"`
	RecentActivity     []RecentActivity   `json:"recent_activity"`
}

// PatientListResponse lists the therapist's patients.
type PatientListResponse struct {
	Patients []PatientSummary `json:"patients"`
	Total    int              `json:"total"`
}

type updatePatientStatusRequest struct {
	Status string `json:"status"`
}

type updateMessageLimitRequest struct {
	MessagesLimit int `json:"messages_limit"`
}

// TherapistOverview fetches the dashboard summary.
func (c *Client) TherapistOverview(ctx context.Context) (*DashboardOverview, error) {
	var out DashboardOverview
	if err := c.get(ctx, "/therapist/overview", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Patients lists the therapist's patients.
func (c *Client) Patients(ctx context.Context) (*PatientListResponse, error) {
	var out PatientListResponse
	if err := c.get(ctx, "/therapist/patients", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePatient registers a new patient from the intake form.
func (c *Client) CreatePatient(ctx context.Context, form PatientIntakeForm) (*PatientConfig, error) {
	var out PatientConfig
	if err := c.post(ctx, "/therapist/patients", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Patient fetches one patient's full record.
func (c *Client) Patient(ctx context.Context, id string) (*PatientConfig, error) {
	var out PatientConfig
	if err := c.get(ctx, "/therapist/patients/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePatient applies a partial clinical configuration update.
func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientConfigRequest) (*PatientConfig, error) {
	var out PatientConfig
	if err := c.patch(ctx, "/therapist/patients/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePatientStatus changes a patient's status.
func (c *Client) UpdatePatientStatus(ctx context.Context, id, status string) (*PatientConfig, error) {
	var out PatientConfig
	if err := c.patch(ctx, "/therapist/patients/"+url.PathEscape(id)+"/status", updatePatientStatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePatientLimit changes a patient's message quota.
func (c *Client) UpdatePatientLimit(ctx context.Context, id string, limit int) (*PatientConfig, error) {
	var out PatientConfig
	if err := c.patch(ctx, "/therapist/patients/"+url.PathEscape(id)+"/limit", updateMessageLimitRequest{MessagesLimit: limit}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatientSessions lists a patient's recorded sessions.
func (c *Client) PatientSessions(ctx context.Context, patientID string) (*SessionListResponse, error) {
	var out SessionListResponse
	if err := c.get(ctx, "/therapist/patients/"+url.PathEscape(patientID)+"/sessions", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession records a new session for a patient.
func (c *Client) CreateSession(ctx context.Context, patientID string, req CreateSessionRequest) (*TherapySession, error) {
	var out TherapySession
	if err := c.post(ctx, "/therapist/patients/"+url.PathEscape(patientID)+"/sessions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSession amends a recorded session.
func (c *Client) UpdateSession(ctx context.Context, patientID, sessionID string, req CreateSessionRequest) (*TherapySession, error) {
	var out TherapySession
	path := "/therapist/patients/" + url.PathEscape(patientID) + "/sessions/" + url.PathEscape(sessionID)
	if err := c.patch(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
