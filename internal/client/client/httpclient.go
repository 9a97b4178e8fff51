package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	resetPath    = "/api/auth/send-reset-password-link"

	avatarField = "avatar"

	RequestIDHeaderName = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
	userAgent  string
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero disables the per-request bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// NewHTTPClient returns a client for the API rooted at baseURL, which must be
// an absolute http or https URL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute http(s), got %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    15 * time.Second,
		logger:     logging.Discard(),
		userAgent:  "eventdesk-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	status, resp, err := c.do(ctx, loginPath, bytes.NewReader(body), "application/json", FallbackLoginMessage)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(resp, &env); err != nil || len(env.Data) == 0 {
		return nil, &RejectedError{Status: status, Message: FallbackLoginMessage}
	}

	var token struct {
		Token string `json:"token"`
	}
	var user models.UserProfile
	if json.Unmarshal(env.Data, &token) != nil || json.Unmarshal(env.Data, &user) != nil || token.Token == "" {
		return nil, &RejectedError{Status: status, Message: FallbackLoginMessage}
	}

	return &models.Session{Token: token.Token, User: user}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest, avatar *Avatar) (*models.UserProfile, error) {
	fields := registerBody{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role.String(),
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	if avatar != nil {
		body, contentType, err = encodeMultipart(fields, avatar)
	} else {
		body, err = json.Marshal(fields)
		contentType = "application/json"
	}
	if err != nil {
		return nil, fmt.Errorf("encode register request: %w", err)
	}

	_, resp, err := c.do(ctx, registerPath, bytes.NewReader(body), contentType, FallbackRegisterMessage)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{}
	var env envelope
	if json.Unmarshal(resp, &env) == nil && len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, profile)
	}
	return profile, nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body, err := json.Marshal(resetRequest{Email: email})
	if err != nil {
		return "", err
	}

	if _, _, err := c.do(ctx, resetPath, bytes.NewReader(body), "application/json", FallbackResetMessage); err != nil {
		return "", err
	}
	return ResetConfirmation, nil
}

// do POSTs body to path. A non-2xx status becomes *RejectedError carrying the
// service message or fallback; a missing response becomes ErrNetwork.
func (c *HTTPClient) do(ctx context.Context, path string, body io.Reader, contentType, fallback string) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(start))
		return 0, nil, &networkError{cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return 0, nil, &networkError{cause: err}
	}

	log.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		log.Info(ctx, "request rejected", "status", resp.StatusCode, "message", msg)
		return resp.StatusCode, nil, &RejectedError{Status: resp.StatusCode, Message: msg}
	}

	return resp.StatusCode, data, nil
}

func encodeMultipart(fields registerBody, avatar *Avatar) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range [][2]string{
		{"name", fields.Name},
		{"email", fields.Email},
		{"password", fields.Password},
		{"confirmPassword", fields.ConfirmPassword},
		{"role", fields.Role},
	} {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, avatarField, avatarFilename(avatar)))
	h.Set("Content-Type", mimetype.Detect(avatar.Data).String())
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(avatar.Data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func avatarFilename(a *Avatar) string {
	if a.Filename != "" {
		return a.Filename
	}
	return "avatar" + mimetype.Detect(a.Data).Extension()
}
