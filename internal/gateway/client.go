// Package gateway is the HTTP client for the backend gateway that owns
// persistence and validation. The console consumes a fixed request/response
// contract and treats everything behind it as a black box.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	reviewmodels "kycdesk/internal/review/models"
	suspensionmodels "kycdesk/internal/suspension/models"
	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/platform/tracer"
)

// Client calls the backend gateway REST API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	tracer     tracer.Tracer
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTracer sets the tracer for gateway calls.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a gateway client. tokens may be nil when no bearer token is
// configured.
func New(baseURL string, tokens TokenSource, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire DTOs follow the gateway's field naming, not the console's.

type kycSubmissionDTO struct {
	UserID         string `json:"userId"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	MobileNumber   string `json:"mobileNumber"`
	ReraID         string `json:"reraId,omitempty"`
	KycStatus      string `json:"kycStatus"`
	Reason         string `json:"reason,omitempty"`
	SelfieImageKey string `json:"selfieImageKey,omitempty"`
	AadharFrontKey string `json:"aadharFrontKey,omitempty"`
	AadharBackKey  string `json:"aadharBackKey,omitempty"`
}

type kycListResponse struct {
	Data []kycSubmissionDTO `json:"data"`
}

type updateStatusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type suspendedUserDTO struct {
	MobileNumber string `json:"mobileNumber"`
	UserID       string `json:"userId,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	Email        string `json:"email,omitempty"`
	Reason       string `json:"reason"`
}

type suspendedListResponse struct {
	Data []suspendedUserDTO `json:"data"`
}

type suspendRequest struct {
	MobileNumber string `json:"mobileNumber"`
	Reason       string `json:"reason"`
}

type unsuspendRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

// errorResponse is the gateway's error envelope. message, when present, is a
// human-readable string surfaced verbatim to the operator.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ListSubmissions fetches the full KYC submission set.
func (c *Client) ListSubmissions(ctx context.Context) ([]reviewmodels.Submission, error) {
	var decoded kycListResponse
	if err := c.do(ctx, http.MethodGet, "/kyc/admin/submissions", nil, &decoded); err != nil {
		return nil, err
	}
	return toSubmissions(decoded.Data)
}

// ListPendingSubmissions fetches only submissions still awaiting a decision.
func (c *Client) ListPendingSubmissions(ctx context.Context) ([]reviewmodels.Submission, error) {
	var decoded kycListResponse
	if err := c.do(ctx, http.MethodGet, "/kyc/admin/pending", nil, &decoded); err != nil {
		return nil, err
	}
	return toSubmissions(decoded.Data)
}

// UpdateStatus commits one approve/reject decision. The reason is sent as-is;
// empty-reason handling belongs to the gateway.
func (c *Client) UpdateStatus(ctx context.Context, userID string, status reviewmodels.Status, reason string) error {
	req := updateStatusRequest{UserID: userID, Status: string(status), Reason: reason}
	return c.do(ctx, http.MethodPost, "/kyc/admin/update-status", req, nil)
}

// ListSuspended fetches the current suspended set.
func (c *Client) ListSuspended(ctx context.Context) ([]suspensionmodels.SuspendedUser, error) {
	var decoded suspendedListResponse
	if err := c.do(ctx, http.MethodGet, "/suspend/list", nil, &decoded); err != nil {
		return nil, err
	}
	users := make([]suspensionmodels.SuspendedUser, len(decoded.Data))
	for i, d := range decoded.Data {
		users[i] = suspensionmodels.SuspendedUser{
			MobileNumber: d.MobileNumber,
			UserID:       d.UserID,
			FullName:     d.FullName,
			Email:        d.Email,
			Reason:       d.Reason,
		}
	}
	return users, nil
}

// Suspend adds a mobile number to the suspended set. Duplicate checks are
// delegated to the gateway.
func (c *Client) Suspend(ctx context.Context, mobileNumber, reason string) error {
	return c.do(ctx, http.MethodPost, "/suspend", suspendRequest{MobileNumber: mobileNumber, Reason: reason}, nil)
}

// Unsuspend removes a mobile number from the suspended set.
func (c *Client) Unsuspend(ctx context.Context, mobileNumber string) error {
	return c.do(ctx, http.MethodPost, "/suspend/unsuspend", unsuspendRequest{MobileNumber: mobileNumber}, nil)
}

// Healthy reports whether the gateway base URL is reachable. Used by the
// readiness probe.
func (c *Client) Healthy() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/kyc/admin/submissions", nil)
	if err != nil {
		return err
	}
	c.authorize(ctx, req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "gateway.call",
		tracer.String("method", method),
		tracer.String("path", path),
	)
	defer func() { span.End(err) }()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal gateway request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create gateway request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "gateway request timeout")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "gateway unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to decode gateway response")
		}
	}
	return nil
}

// authorize attaches the bearer token when one is available. A missing token
// is not an error here.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeError maps a non-2xx gateway response to a domain error, preserving
// the gateway's human-readable message verbatim when present.
func (c *Client) decodeError(status int, raw []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(raw, &envelope)
	msg := envelope.Message
	if msg == "" {
		msg = envelope.Error
	}

	code := dErrors.CodeInternal
	switch {
	case status == http.StatusNotFound:
		code = dErrors.CodeNotFound
	case status == http.StatusConflict:
		code = dErrors.CodeConflict
	case status == http.StatusUnauthorized:
		code = dErrors.CodeUnauthorized
	case status == http.StatusForbidden:
		code = dErrors.CodeForbidden
	case status >= 400 && status < 500:
		code = dErrors.CodeBadRequest
	case status == http.StatusGatewayTimeout:
		code = dErrors.CodeTimeout
	case status >= 500:
		code = dErrors.CodeUnavailable
	}

	if msg == "" {
		msg = fmt.Sprintf("gateway returned status %d", status)
	}
	return dErrors.New(code, msg)
}

func toSubmissions(dtos []kycSubmissionDTO) ([]reviewmodels.Submission, error) {
	subs := make([]reviewmodels.Submission, len(dtos))
	for i, d := range dtos {
		status, err := reviewmodels.ParseStatus(d.KycStatus)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "gateway returned unknown kyc status")
		}
		subs[i] = reviewmodels.Submission{
			UserID:         d.UserID,
			FullName:       d.FullName,
			Email:          d.Email,
			MobileNumber:   d.MobileNumber,
			ReraID:         d.ReraID,
			SelfieImageKey: d.SelfieImageKey,
			AadharFrontKey: d.AadharFrontKey,
			AadharBackKey:  d.AadharBackKey,
			Status:         status,
			Reason:         d.Reason,
		}
	}
	return subs, nil
}
