package upstream

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/domain/ports/adapter"
	"cekkuota-bot/internal/infra/metrics"
)

const (
	headerServiceKey = "X-FDZ-Key"
	userAgent        = "cekkuota-bot/1.0"

	// retryDelay spaces the single transport-level retry.
	retryDelay = 250 * time.Millisecond

	cbFailureThreshold = 5
)

// Compile-time check
var _ adapter.QuotaChecker = (*Client)(nil)

// Client performs quota checks against the upstream service. All failure
// modes resolve to a (status, body) pair; status 0 means no response was
// obtained. HTTP error statuses are passed through with the server body,
// they may carry a structured error payload.
type Client struct {
	http  *resty.Client
	cb    *gobreaker.CircuitBreaker
	cfg   *config.UpstreamConfig
	sleep func(time.Duration)
	log   *zerolog.Logger
}

type attemptResult struct {
	status int
	body   []byte
}

func NewClient(cfg *config.UpstreamConfig, timeout time.Duration, logger *zerolog.Logger) *Client {
	httpClient := resty.New().SetTimeout(timeout)

	cbSettings := gobreaker.Settings{
		Name: "cekkuota-upstream",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}

	return &Client{
		http:  httpClient,
		cb:    gobreaker.NewCircuitBreaker(cbSettings),
		cfg:   cfg,
		sleep: time.Sleep,
		log:   logger,
	}
}

// Check posts the identifier once, retrying exactly once after a short delay
// when the transport fails and the retry budget allows.
func (c *Client) Check(ctx context.Context, msisdn string) (int, []byte) {
	start := time.Now()
	status, body := c.attempt(ctx, msisdn)
	if status == 0 && c.cfg.Retries > 0 {
		c.sleep(retryDelay)
		status, body = c.attempt(ctx, msisdn)
	}
	metrics.ObserveQuotaCheck(status, float64(time.Since(start).Milliseconds()))
	return status, body
}

// attempt runs one request through the circuit breaker. Only transport
// failures count against the breaker; an HTTP error status is a response.
func (c *Client) attempt(ctx context.Context, msisdn string) (int, []byte) {
	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader(headerServiceKey, c.cfg.Key).
			SetHeader("User-Agent", userAgent).
			SetBody(map[string]string{"msisdn": msisdn}).
			Post(c.cfg.URL)
		if err != nil {
			return nil, err
		}
		out := attemptResult{status: resp.StatusCode()}
		if isJSON(resp.Header().Get("Content-Type")) {
			out.body = resp.Body()
		}
		return out, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			c.log.Warn().Str("msisdn", msisdn).Msg("upstream circuit open, skipping call")
		} else {
			c.log.Warn().Err(err).Str("msisdn", msisdn).Msg("upstream transport failure")
		}
		return 0, nil
	}
	res := result.(attemptResult)
	return res.status, res.body
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}
