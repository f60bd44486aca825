// ABOUTME: Tests for the pricing API handlers
// ABOUTME: Exercises the full wizard flow and the error taxonomy mapping

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beyondskool/pricing-wizard/backend/cache"
	"github.com/beyondskool/pricing-wizard/backend/config"
	"github.com/beyondskool/pricing-wizard/backend/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{LogoPath: "testdata/logo.png"}
	h := NewHandler(cfg, cache.New(time.Minute))

	mux := http.NewServeMux()
	for _, rt := range h.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Path, rt.Handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func createSession(t *testing.T, baseURL string) models.PricingSession {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/v1/sessions", models.CreateSessionInput{
		SchoolName:     "Greenwood High",
		RequesterEmail: "creator@beyondskool.example",
		SchoolEmail:    "principal@greenwood.example",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var session models.PricingSession
	decode(t, resp, &session)
	return session
}

func calculateBody() models.CalculateInput {
	return models.CalculateInput{
		Programs: []models.ProgramSelection{
			{Program: models.ProgramCommunication, Students: 600, SectionSize: 30},
		},
		DaysPerWeek:     5,
		DiscountPercent: 0,
	}
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decode(t, resp, &body)

	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}
	if body["mail"] != "not_configured" {
		t.Errorf("Expected mail not_configured, got %v", body["mail"])
	}
}

func TestCreateSession_InvalidEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/sessions", models.CreateSessionInput{
		SchoolName:     "Greenwood High",
		RequesterEmail: "not-an-email",
		SchoolEmail:    "principal@greenwood.example",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSession_UnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/sessions/no-such-id")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestCalculateSession_FullFlow(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), calculateBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var calculated models.PricingSession
	decode(t, resp, &calculated)

	if calculated.State != models.StateCalculated {
		t.Errorf("Expected calculated state, got %s", calculated.State)
	}
	if calculated.Summary == nil {
		t.Fatal("Expected a pricing summary")
	}
	// Communication, 600 students, no discount: cost 608000, margin 40%
	if calculated.Summary.TotalCost != 608000 {
		t.Errorf("Expected total cost 608000, got %d", calculated.Summary.TotalCost)
	}
}

func TestCalculateSession_MarginRefusal(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	body := calculateBody()
	body.DiscountPercent = 40

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decode(t, resp, &errResp)

	if errResp.GrossMarginPercent == nil {
		t.Fatal("Expected the computed margin in the refusal payload")
	}
	if *errResp.GrossMarginPercent > 0.01 {
		t.Errorf("Expected margin near 0%%, got %f", *errResp.GrossMarginPercent)
	}

	// Session dropped back to collecting
	getResp, _ := http.Get(fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, session.ID))
	var after models.PricingSession
	decode(t, getResp, &after)
	if after.State != models.StateCollecting {
		t.Errorf("Expected collecting state after refusal, got %s", after.State)
	}
}

func TestCalculateSession_InvalidInput(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	body := calculateBody()
	body.Programs[0].Students = 10

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestConfirmSession_OutOfSequence(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/confirm", srv.URL, session.ID), struct{}{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409, got %d", resp.StatusCode)
	}
}

func TestDownloadDocument_FullFlow(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), calculateBody()).Body.Close()
	confirmResp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/confirm", srv.URL, session.ID), struct{}{})
	if confirmResp.StatusCode != http.StatusOK {
		t.Fatalf("Confirm expected 200, got %d", confirmResp.StatusCode)
	}
	confirmResp.Body.Close()

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/sessions/%s/document", srv.URL, session.ID))
	if err != nil {
		t.Fatalf("GET document failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "Greenwood_High_Agreement.pdf") {
		t.Errorf("Expected sanitized filename in disposition, got %s", disposition)
	}

	// Generation moves the session to delivered
	getResp, _ := http.Get(fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, session.ID))
	var after models.PricingSession
	decode(t, getResp, &after)
	if after.State != models.StateDelivered {
		t.Errorf("Expected delivered state, got %s", after.State)
	}
}

func TestDownloadDocument_BeforeConfirmation(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), calculateBody()).Body.Close()

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/sessions/%s/document", srv.URL, session.ID))
	if err != nil {
		t.Fatalf("GET document failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409, got %d", resp.StatusCode)
	}
}

func TestSendDocument_WithoutSMTP(t *testing.T) {
	// SMTP is unconfigured in tests, so a send surfaces a delivery failure
	// and the session stays confirmed for retry.
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID), calculateBody()).Body.Close()
	postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/confirm", srv.URL, session.ID), struct{}{}).Body.Close()

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/sessions/%s/send", srv.URL, session.ID), models.SendInput{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", resp.StatusCode)
	}

	getResp, _ := http.Get(fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, session.ID))
	var after models.PricingSession
	decode(t, getResp, &after)
	if after.State != models.StateConfirmed {
		t.Errorf("Expected confirmed state after failed send, got %s", after.State)
	}
}

func TestCalculateSession_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv.URL)

	resp, err := http.Post(
		fmt.Sprintf("%s/api/v1/sessions/%s/calculate", srv.URL, session.ID),
		"application/json",
		strings.NewReader("{not json"),
	)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}
