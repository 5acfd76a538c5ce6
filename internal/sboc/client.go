// Package sboc provides a client for the Tackle Hunger GraphQL API.
package sboc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tackle-hunger/data-quality/internal/config"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/retry"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

// HTTP transport tuning.
const (
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	idleConnTimeout       = 90 * time.Second
	responseHeaderTimeout = 30 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second
)

// authHeader carries the scraping token expected by the API.
const authHeader = "ai-scraping-token"

// ErrMissingToken is returned when no API token is configured.
var ErrMissingToken = errors.New("sboc: AI_SCRAPING_TOKEN is not set")

// operationNamePattern extracts the operation name from a GraphQL document
// for logging.
var operationNamePattern = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

// Client is a rate-limited GraphQL client with retry.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryCfg   retry.Config
	telemetry  *telemetry.Provider
	log        logger.Logger
}

// NewClient creates a client from API configuration. The token is required;
// the telemetry provider may be nil.
func NewClient(cfg config.APIConfig, provider *telemetry.Provider, log logger.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	transport := &http.Transport{
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		ResponseHeaderTimeout: responseHeaderTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
	}

	retryCfg := retry.DefaultConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}

	return &Client{
		endpoint: cfg.GraphQLEndpoint(),
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		retryCfg:  retryCfg,
		telemetry: provider,
		log:       log,
	}, nil
}

// Endpoint returns the resolved GraphQL endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]any `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Execute sends a GraphQL request and returns the decoded data object.
// Transient transport and server errors are retried with backoff; GraphQL
// errors in the response body are not.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	opName := operationName(query)

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var data map[string]any

	start := time.Now()
	err = retry.Do(ctx, c.retryCfg, func() error {
		if waitErr := c.limiter.Wait(ctx); waitErr != nil {
			return fmt.Errorf("rate limiter: %w", waitErr)
		}
		result, reqErr := c.doRequest(ctx, body)
		if reqErr != nil {
			return reqErr
		}
		data = result
		return nil
	})
	if err != nil {
		if c.telemetry != nil {
			c.telemetry.RecordAPIRequest(ctx, opName, "error", time.Since(start))
		}
		c.log.Error("graphql request failed",
			logger.String("operation", opName),
			logger.Error(err))
		return nil, err
	}

	if c.telemetry != nil {
		c.telemetry.RecordAPIRequest(ctx, opName, "success", time.Since(start))
	}
	c.log.Debug("graphql request completed",
		logger.String("operation", opName),
		logger.Duration("duration", time.Since(start)))

	return data, nil
}

func (c *Client) doRequest(ctx context.Context, body []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Warn("failed to close response body", logger.Error(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}

	return gqlResp.Data, nil
}

// operationName extracts the named operation from a GraphQL document.
func operationName(query string) string {
	matches := operationNamePattern.FindStringSubmatch(query)
	if len(matches) == 2 {
		return matches[1]
	}
	return "unnamed"
}
