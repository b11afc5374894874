// Package feedback forwards user feedback to the spreadsheet webhook and
// classifies its reply.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxBodyBytes      = 1 << 20
	maxLoggedBodySize = 512
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the classified webhook reply. Acceptable and Confirmed are the
// two independent acceptance rules; Success is their disjunction.
type Result struct {
	Success    bool
	Acceptable bool
	Confirmed  bool
	StatusCode int
	Body       string
}

// Err returns nil for a successful relay and a relay-failure error otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return apierr.New(apierr.KindRelayFailure, "Failed to submit feedback",
		fmt.Errorf("webhook answered %d", r.StatusCode))
}

// Classify applies the acceptance policy to a webhook reply:
//  1. any 2xx or 3xx status is acceptable, since the webhook platform may
//     answer success with a redirect;
//  2. the body is parsed as JSON, and a parse failure counts as an empty object;
//  3. a body object with status == "success" confirms success on its own;
//  4. the reply succeeds when it is acceptable or confirmed.
func Classify(status int, body []byte) Result {
	acceptable := status >= 200 && status < 400

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		parsed = map[string]any{}
	}
	s, _ := parsed["status"].(string)
	confirmed := s == "success"

	return Result{
		Success:    acceptable || confirmed,
		Acceptable: acceptable,
		Confirmed:  confirmed,
		StatusCode: status,
		Body:       string(body),
	}
}

// Validate checks a submission before anything leaves the process.
func Validate(sub models.FeedbackSubmission) error {
	email := strings.TrimSpace(sub.Email)
	if email == "" || strings.TrimSpace(sub.Feedback) == "" {
		return apierr.Validation("Email and feedback are required")
	}
	if !emailPattern.MatchString(email) {
		return apierr.Validation("Invalid email format")
	}
	return nil
}

type Relay struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
	policy   *bluemonday.Policy
}

// NewRelay builds a relay for endpoint. A nil client means a default
// http.Client, which follows redirects.
func NewRelay(endpoint string, client *http.Client, log *logger.Logger) *Relay {
	if client == nil {
		client = &http.Client{}
	}
	return &Relay{
		endpoint: strings.TrimSpace(endpoint),
		client:   client,
		log:      log,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Submit validates sub, posts it once to the webhook and classifies the
// reply. Validation and configuration problems return before any network
// call. A classified failure comes back as a Result, not an error.
func (r *Relay) Submit(ctx context.Context, sub models.FeedbackSubmission) (Result, error) {
	if err := Validate(sub); err != nil {
		return Result{}, err
	}
	if r.endpoint == "" {
		r.log.Error("Missing GAS_FEEDBACK_URL environment variable")
		return Result{}, apierr.Configuration("GAS_FEEDBACK_URL", nil)
	}

	payload, err := json.Marshal(models.FeedbackSubmission{
		Email:    strings.TrimSpace(sub.Email),
		Feedback: sub.Feedback,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, apierr.Configuration("GAS_FEEDBACK_URL", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error("feedback webhook unreachable", "error", err)
		return Result{}, apierr.Upstream("failed to process feedback", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		r.log.Error("failed to read feedback webhook response", "status", resp.StatusCode, "error", err)
		return Result{}, apierr.Upstream("failed to process feedback", err)
	}

	result := Classify(resp.StatusCode, body)
	if !result.Success {
		r.log.Error("GAS feedback error", "status", result.StatusCode, "body", r.diagnostic(body))
		return result, nil
	}
	r.log.Info("feedback relayed",
		"status", result.StatusCode,
		"acceptable", result.Acceptable,
		"confirmed", result.Confirmed,
	)
	return result, nil
}

// diagnostic strips markup and truncates a webhook body for logging.
func (r *Relay) diagnostic(body []byte) string {
	text := strings.TrimSpace(r.policy.Sanitize(string(body)))
	text = strings.Join(strings.Fields(text), " ")
	return logger.Truncate(text, maxLoggedBodySize)
}
