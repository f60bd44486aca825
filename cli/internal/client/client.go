// ABOUTME: HTTP client for the pricing wizard API
// ABOUTME: Wraps session lifecycle calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Client is the API client for the pricing wizard backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status   string `json:"status"`
	Mail     string `json:"mail"`
	Branding string `json:"branding"`
	Sessions int    `json:"sessions"`
}

// ProgramSelection is one program with its enrollment figures
type ProgramSelection struct {
	Program     string `json:"program"`
	Students    int    `json:"students"`
	SectionSize int    `json:"section_size"`
}

// StaffingResult holds the derived teacher requirement for a program
type StaffingResult struct {
	Sections            int `json:"sections"`
	FullTimeTeachers    int `json:"full_time_teachers"`
	VariableTeacherDays int `json:"variable_teacher_days"`
	TeacherDayCost      int `json:"teacher_day_cost"`
}

// CostBreakdown is the cost and price derivation for one program
type CostBreakdown struct {
	TeacherCostTotal int     `json:"teacher_cost_total"`
	TeacherDayCost   int     `json:"teacher_day_cost"`
	BookCost         int     `json:"book_cost"`
	KitCost          int     `json:"kit_cost"`
	ManagerCost      int     `json:"manager_cost"`
	TotalProgramCost int     `json:"total_program_cost"`
	BasePrice        float64 `json:"base_price"`
	FinalPrice       float64 `json:"final_price"`
	PricePerStudent  float64 `json:"price_per_student"`
}

// CommercialLine is the per-student book/fee/GST split for one program
type CommercialLine struct {
	Program    string `json:"program"`
	BookPrice  int    `json:"book_price"`
	ServiceFee int    `json:"service_fee"`
	GST        int    `json:"gst"`
}

// ProgramQuote bundles everything computed for one selected program
type ProgramQuote struct {
	Selection  ProgramSelection `json:"selection"`
	Staffing   StaffingResult   `json:"staffing"`
	Breakdown  CostBreakdown    `json:"breakdown"`
	Commercial CommercialLine   `json:"commercial"`
}

// PricingSummary aggregates session-level totals
type PricingSummary struct {
	TotalStudents          int     `json:"total_students"`
	TotalCost              int     `json:"total_cost"`
	TotalFinalPrice        float64 `json:"total_final_price"`
	GrossMarginPercent     float64 `json:"gross_margin_percent"`
	MarginPassed           bool    `json:"margin_passed"`
	AveragePricePerStudent int     `json:"average_price_per_student"`
	DisplayTotalFinalPrice int     `json:"display_total_final_price"`
}

// CommercialSummary aggregates the commercial split across programs
type CommercialSummary struct {
	TotalBookCost   int `json:"total_book_cost"`
	TotalServiceFee int `json:"total_service_fee"`
	TotalGST        int `json:"total_gst"`
	TotalPayable    int `json:"total_payable"`
}

// Session represents a pricing session as returned by the backend
type Session struct {
	ID              string             `json:"id"`
	SchoolName      string             `json:"school_name"`
	RequesterEmail  string             `json:"requester_email"`
	SchoolEmail     string             `json:"school_email"`
	State           string             `json:"state"`
	Programs        []ProgramSelection `json:"programs,omitempty"`
	DiscountPercent int                `json:"discount_percent"`
	Quotes          []ProgramQuote     `json:"quotes,omitempty"`
	Summary         *PricingSummary    `json:"summary,omitempty"`
	Commercial      *CommercialSummary `json:"commercial,omitempty"`
}

// CreateSessionInput opens a new pricing session
type CreateSessionInput struct {
	SchoolName     string `json:"school_name"`
	RequesterEmail string `json:"requester_email"`
	SchoolEmail    string `json:"school_email"`
}

// CalculateInput carries selections, policy, and discount for a calculation
type CalculateInput struct {
	Programs        []ProgramSelection `json:"programs"`
	DaysPerWeek     int                `json:"days_per_week"`
	DiscountPercent int                `json:"discount_percent"`
}

// SendInput optionally overrides the mail recipients
type SendInput struct {
	To string `json:"to,omitempty"`
	Cc string `json:"cc,omitempty"`
}

// APIError is a structured backend error. A margin refusal carries the
// computed gross margin so callers can show how far below the floor the
// configuration landed.
type APIError struct {
	StatusCode         int
	Message            string
	GrossMarginPercent *float64
}

func (e *APIError) Error() string {
	return e.Message
}

// MarginRefused reports whether the error is the margin gate refusing to
// offer pricing, as opposed to a software or input fault.
func (e *APIError) MarginRefused() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/api/v1/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// CreateSession calls POST /api/v1/sessions
func (c *Client) CreateSession(ctx context.Context, input *CreateSessionInput) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/v1/sessions", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession calls GET /api/v1/sessions/{id}
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := c.get(ctx, "/api/v1/sessions/"+id, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Calculate calls POST /api/v1/sessions/{id}/calculate
func (c *Client) Calculate(ctx context.Context, id string, input *CalculateInput) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/v1/sessions/"+id+"/calculate", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Confirm calls POST /api/v1/sessions/{id}/confirm
func (c *Client) Confirm(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/v1/sessions/"+id+"/confirm", struct{}{}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DownloadDocument calls GET /api/v1/sessions/{id}/document and returns the
// agreement filename and PDF bytes.
func (c *Client) DownloadDocument(ctx context.Context, id string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/sessions/"+id+"/document", nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, c.handleErrorResponse(resp)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("reading document: %w", err)
	}

	filename := "Agreement.pdf"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}
	return filename, pdf, nil
}

// SendDocument calls POST /api/v1/sessions/{id}/send
func (c *Client) SendDocument(ctx context.Context, id string, input *SendInput) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/v1/sessions/"+id+"/send", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(ctx, req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses into a typed error
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp struct {
		Error              string   `json:"error"`
		Details            string   `json:"details,omitempty"`
		Code               int      `json:"code"`
		GrossMarginPercent *float64 `json:"gross_margin_percent,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("backend returned status %d", resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode:         resp.StatusCode,
		Message:            errResp.Error,
		GrossMarginPercent: errResp.GrossMarginPercent,
	}
}
