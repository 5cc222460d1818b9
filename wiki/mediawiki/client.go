package mediawiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/poiesic/wikiscope/wiki"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 16 << 20

// client performs rate limited, retried GET requests against api.php.
type client struct {
	config  *wiki.Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newClient(config *wiki.Config, httpClient *http.Client, logger *slog.Logger) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &client{
		config:  config,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:  logger,
	}
}

// get issues an Action API query and returns the parsed response body.
func (c *client) get(ctx context.Context, lang string, params url.Values) (gjson.Result, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	endpoint := c.config.EndpointFor(lang) + "?" + params.Encode()

	var result gjson.Result
	err := RetryWithBackoff(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		body, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		if !gjson.ValidBytes(body) {
			return Permanent(fmt.Errorf("%w: malformed response", wiki.ErrAPI))
		}
		result = gjson.ParseBytes(body)
		if apiErr := result.Get("error"); apiErr.Exists() {
			return Permanent(fmt.Errorf("%w: %s: %s", wiki.ErrAPI, apiErr.Get("code").String(), apiErr.Get("info").String()))
		}
		return nil
	}, c.config.MaxRetries, c.config.RetryDelay)
	if err != nil {
		c.logger.Debug("api request failed", "action", params.Get("action"), "lang", lang, "err", err)
		return gjson.Result{}, err
	}
	return result, nil
}

func (c *client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, Permanent(err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s", wiki.ErrUnexpectedStatus, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, Permanent(fmt.Errorf("%w: %s", wiki.ErrUnexpectedStatus, resp.Status))
	}
	return body, nil
}
