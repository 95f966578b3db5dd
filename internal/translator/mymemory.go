package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

const (
	DefaultBaseURL        = "https://api.mymemory.translated.net"
	DefaultTimeout        = 10 * time.Second
	DefaultSourceLanguage = "es"
)

var (
	errEmptyTranslation = errors.New("translator: empty translation in response")
	errUpstreamStatus   = errors.New("translator: upstream reported failure")
)

// Config configures the MyMemory adapter.
type Config struct {
	BaseURL        string
	SourceLanguage string
	Timeout        time.Duration
	// Email is sent as the "de" parameter, which raises the anonymous quota.
	Email string
}

// MyMemory translates text through the MyMemory public API. It fails open.
type MyMemory struct {
	http    *resty.Client
	baseURL string
	source  string
	email   string
	timeout time.Duration
	logger  interfaces.Logger
}

var _ interfaces.TranslationProvider = (*MyMemory)(nil)

// Option customises a MyMemory adapter.
type Option func(*MyMemory)

// WithLogger sets the logger used for fail-open warnings.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *MyMemory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRestyClient replaces the HTTP client. The adapter still applies its own
// per-call deadline.
func WithRestyClient(client *resty.Client) Option {
	return func(m *MyMemory) {
		if client != nil {
			m.http = client
		}
	}
}

// NewMyMemory builds the adapter, filling blank config values with defaults.
func NewMyMemory(cfg Config, opts ...Option) *MyMemory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	source := strings.ToLower(strings.TrimSpace(cfg.SourceLanguage))
	if source == "" {
		source = DefaultSourceLanguage
	}

	m := &MyMemory{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
		source:  source,
		email:   strings.TrimSpace(cfg.Email),
		timeout: timeout,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SourceLanguage returns the language the adapter translates from.
func (m *MyMemory) SourceLanguage() string {
	return m.source
}

// Translate returns text translated into targetLanguage, or text unchanged
// when the text is blank, the target is the source language, or the call
// fails for any reason.
func (m *MyMemory) Translate(ctx context.Context, text, targetLanguage string) string {
	target := strings.ToLower(strings.TrimSpace(targetLanguage))
	if strings.TrimSpace(text) == "" || target == "" || target == m.source {
		return text
	}

	translated, err := m.call(ctx, text, target)
	if err != nil {
		m.logger.WithContext(ctx).Warn("translator.call.failed",
			"provider", "mymemory",
			"source", m.source,
			"target", target,
			"chars", len(text),
			"error", err,
		)
		return text
	}
	return translated
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

func (m *MyMemory) call(ctx context.Context, text, target string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	params := map[string]string{
		"q":        text,
		"langpair": m.source + "|" + target,
	}
	if m.email != "" {
		params["de"] = m.email
	}

	resp, err := m.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetHeader("Accept", "application/json").
		Get(m.baseURL + "/get")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("translator: http %s", resp.Status())
	}

	var payload myMemoryResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("translator: decode response: %w", err)
	}
	if status := strings.Trim(string(payload.ResponseStatus), `"`); status != "200" {
		return "", fmt.Errorf("%w: status %s %s", errUpstreamStatus, status, payload.ResponseDetails)
	}
	translated := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if translated == "" {
		return "", errEmptyTranslation
	}
	return translated, nil
}
