// Package grader implements the client for the external open-ended answer
// grading service.
package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result is the grading outcome for one open-ended answer
type Result struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// evaluateRequest is the wire format expected by the grading service
type evaluateRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
	Criteria   string `json:"criteria"`
}

// Client calls the external grading service over HTTP
type Client struct {
	client *resty.Client
	url    string
}

// NewClient creates a grader client. The timeout bounds each grading call;
// expiry is reported as an error and the caller scores the question as 0.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

// Evaluate grades a single open-ended answer against the question's criteria.
// Returns an error on transport failure, timeout or non-2xx response.
func (c *Client) Evaluate(ctx context.Context, question, userAnswer, criteria string) (*Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(evaluateRequest{
			Question:   question,
			UserAnswer: userAnswer,
			Criteria:   criteria,
		}).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("grading request failed: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("grading service returned status %d", resp.StatusCode())
	}

	var result Result
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse grading response: %w", err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	return &result, nil
}
