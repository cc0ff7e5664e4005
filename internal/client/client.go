// internal/client/client.go
//
// Client talks to the training-log server. Every call is one POST with a
// form-encoded body; 200 is the only success status.

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/kingrea/trainlog/internal/training"
)

const formContentType = "application/x-www-form-urlencoded"

// Logger receives client diagnostics. It matches resty.Logger.
type Logger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// Client issues the four training-log requests.
type Client struct {
	settings Settings
	http     *resty.Client
	logger   Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithLogger routes request diagnostics to l.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = resty.NewWithClient(hc)
		}
	}
}

// New prepares a client for the server described by settings.
func New(settings Settings, opts ...Option) (*Client, error) {
	settings.normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		settings: settings,
		http:     resty.New(),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.http.
		SetBaseURL(settings.BaseURL).
		SetTimeout(settings.Timeout).
		SetHeader("Content-Type", formContentType).
		SetLogger(c.logger)
	return c, nil
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string {
	return c.settings.BaseURL
}

// RecordTraining posts a sea or gym training event.
func (c *Client) RecordTraining(ctx context.Context, evt training.Event) error {
	action := evt.Kind.Action()
	values, err := evt.FormValues()
	if err != nil {
		return &RequestError{Action: action, Err: err}
	}
	_, err = c.post(ctx, action, values)
	return err
}

// AddStage posts the score and placement of one stage.
func (c *Client) AddStage(ctx context.Context, stage training.Stage) error {
	values, err := stage.FormValues()
	if err != nil {
		return &RequestError{Action: training.ActionStage, Err: err}
	}
	_, err = c.post(ctx, training.ActionStage, values)
	return err
}

// Prognosis asks the server for the current forecast.
func (c *Client) Prognosis(ctx context.Context) (training.Prognosis, error) {
	res, err := c.post(ctx, training.ActionPrognosis, nil)
	if err != nil {
		return training.Prognosis{}, err
	}
	p, err := training.DecodePrognosis(res.Body())
	if err != nil {
		c.logger.Warnf("client: %s: %v", training.ActionPrognosis.Label(), err)
		return training.Prognosis{}, &RequestError{
			Action:     training.ActionPrognosis,
			StatusCode: res.StatusCode(),
			Err:        err,
		}
	}
	return p, nil
}

func (c *Client) post(ctx context.Context, action training.Action, values url.Values) (*resty.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := c.http.R().SetContext(ctx)
	if len(values) > 0 {
		req.SetFormDataFromValues(values)
	}
	res, err := req.Post(action.Path())
	if err != nil {
		return nil, &RequestError{Action: action, Err: fmt.Errorf("post %s: %w", action.Path(), err)}
	}
	if res.StatusCode() != http.StatusOK {
		c.logger.Warnf("client: %s returned %d: %s", action.Path(), res.StatusCode(), res.String())
		return nil, &RequestError{Action: action, StatusCode: res.StatusCode()}
	}
	return res, nil
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}
