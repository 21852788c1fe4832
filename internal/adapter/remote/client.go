// Package remote implements the storage ports against a deployed taskboard
// API. Calls go through a circuit breaker; transport failures, 5xx answers
// and an open breaker surface as *domain.RemoteError.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

const serviceName = "taskboard-api"

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	BreakerTimeout time.Duration
	MaxFailures    uint32
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// apiError is a 4xx answer: the request reached the service and was refused.
// It does not count against the breaker.
type apiError struct {
	status int
	key    string
	msg    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s answered %d: %s", serviceName, e.status, e.msg)
}

var keyErrors = map[string]error{
	apierrors.MsgTaskNotFound:        domain.ErrTaskNotFound,
	apierrors.MsgGroupNotFound:       domain.ErrGroupNotFound,
	apierrors.MsgGroupEntryNotFound:  domain.ErrGroupEntryNotFound,
	apierrors.MsgCommentNotFound:     domain.ErrCommentNotFound,
	apierrors.MsgNotCommentAuthor:    domain.ErrNotCommentAuthor,
	apierrors.MsgInvalidGroupEntry:   domain.ErrInvalidGroupEntry,
	apierrors.MsgDuplicateGroupEntry: domain.ErrDuplicateGroupEntry,
	apierrors.MsgNoAssignees:         domain.ErrNoAssignees,
	apierrors.MsgDuplicateAssignee:   domain.ErrDuplicateAssignee,
	apierrors.MsgEmptyUpdate:         domain.ErrEmptyUpdate,
	apierrors.MsgNoActiveGroup:       domain.ErrNoActiveGroup,
	apierrors.MsgInvalidStatus:       domain.ErrInvalidStatus,
}

func (e *apiError) Unwrap() error {
	return keyErrors[e.key]
}

func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			var refused *apiError
			return err == nil || errors.As(err, &refused)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    client,
		breaker: breaker,
	}
}

// BreakerState is exposed for diagnostics.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

type request struct {
	op     string
	method string
	path   string
	user   string
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, req request) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, req)
	})
	if err == nil {
		return nil
	}

	var refused *apiError
	if errors.As(err, &refused) {
		if sentinel := refused.Unwrap(); sentinel != nil {
			return sentinel
		}
		return refused
	}
	return &domain.RemoteError{Service: serviceName, Op: req.op, Err: err}
}

func (c *Client) roundTrip(ctx context.Context, req request) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.user != "" {
		httpReq.Header.Set(middleware.UserHeader, req.user)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeFailure(resp)
	}
	if req.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(req.out)
}

func decodeFailure(resp *http.Response) error {
	var payload apierrors.JsonErr
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)

	msg := payload.ErrDetails.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s answered %d: %s", serviceName, resp.StatusCode, msg)
	}
	return &apiError{status: resp.StatusCode, key: payload.ErrDetails.Key, msg: msg}
}
