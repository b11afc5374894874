package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const (
	smokeIdea        = "Dog walking app"
	smokeDescription = "On-demand dog walks for busy single-person households in Seoul"
)

// SmokeClient exercises a running server the way a client would.
type SmokeClient struct {
	baseURL string
	client  *http.Client
	out     io.Writer
}

func NewSmokeClient(baseURL string, out io.Writer, timeout time.Duration) *SmokeClient {
	return &SmokeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		out: out,
	}
}

func newSmokeCmd() *cobra.Command {
	var baseURL string
	var withGeneration bool
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run smoke checks against a running server",
		Long: `Checks health, the agent card, request validation on both HTTP endpoints
and the A2A input-required flow. With --generate it also asks the server for
a full pack, which needs working model credentials on the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := NewSmokeClient(baseURL, cmd.OutOrStdout(), timeout)
			sc.printHeader("Startup Pack Agent - Smoke Checks")
			fmt.Fprintf(sc.out, "%sBase URL: %s%s\n\n", colorCyan, sc.baseURL, colorReset)
			return sc.runAll(withGeneration)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")
	cmd.Flags().BoolVar(&withGeneration, "generate", false, "Also run a full generation")
	return cmd
}

func (sc *SmokeClient) runAll(withGeneration bool) error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", sc.testHealthCheck},
		{"Agent Card", sc.testAgentCard},
		{"Generate Validation", sc.testGenerateValidation},
		{"Feedback Validation", sc.testFeedbackValidation},
		{"A2A Input Required", sc.testInputRequired},
	}
	if withGeneration {
		tests = append(tests, struct {
			name string
			fn   func() bool
		}{"A2A Generation", sc.testGeneration})
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Fprintln(sc.out)
	}

	sc.printHeader("Summary")
	fmt.Fprintf(sc.out, "%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Fprintf(sc.out, "%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Fprintf(sc.out, "Total: %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d smoke check(s) failed", failed)
	}
	return nil
}

func (sc *SmokeClient) testHealthCheck() bool {
	sc.printTestHeader("Health endpoint")

	status, body, err := sc.do(http.MethodGet, "/health", nil)
	if err != nil {
		sc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		sc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		sc.printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	sc.printSuccess("Health check passed")
	return true
}

func (sc *SmokeClient) testAgentCard() bool {
	sc.printTestHeader("Agent card endpoint")

	status, body, err := sc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		sc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		sc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		sc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints", "skills"} {
		if _, ok := agentCard[field]; !ok {
			sc.printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	sc.printSuccess("Agent card is valid")
	return true
}

func (sc *SmokeClient) testGenerateValidation() bool {
	sc.printTestHeader("POST /api/generate rejects a missing description")
	return sc.expectError("/api/generate", map[string]string{"idea": smokeIdea},
		http.StatusBadRequest, "Idea and description are required")
}

func (sc *SmokeClient) testFeedbackValidation() bool {
	sc.printTestHeader("POST /api/feedback rejects an invalid email")
	return sc.expectError("/api/feedback", map[string]string{"email": "not-an-email", "feedback": "smoke"},
		http.StatusBadRequest, "Invalid email format")
}

func (sc *SmokeClient) expectError(path string, payload interface{}, wantStatus int, wantError string) bool {
	status, body, err := sc.do(http.MethodPost, path, payload)
	if err != nil {
		sc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != wantStatus {
		sc.printError(fmt.Sprintf("Expected status %d, got %d", wantStatus, status))
		return false
	}
	var resp map[string]string
	if err := json.Unmarshal(body, &resp); err != nil || resp["error"] != wantError {
		sc.printError(fmt.Sprintf("Expected error %q, got %s", wantError, string(body)))
		return false
	}
	sc.printSuccess(fmt.Sprintf("Rejected with %d: %s", status, wantError))
	return true
}

func (sc *SmokeClient) testInputRequired() bool {
	sc.printTestHeader("A2A asks for a description")
	return sc.expectTaskState(smokeIdea, "input-required", false)
}

func (sc *SmokeClient) testGeneration() bool {
	sc.printTestHeader("A2A generates a startup pack")
	fmt.Fprintf(sc.out, "%sIdea:%s %s\n\n", colorCyan, colorReset, smokeIdea)
	return sc.expectTaskState(smokeIdea+"\n"+smokeDescription, "completed", true)
}

func (sc *SmokeClient) expectTaskState(text, wantState string, showArtifacts bool) bool {
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("smoke-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"kind": "text",
						"text": text,
					},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := sc.do(http.MethodPost, "/a2a/startup-pack", request)
	if err != nil {
		sc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		sc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
			Artifacts []struct {
				Name string `json:"name"`
			} `json:"artifacts"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		sc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 && string(response.Error) != "null" {
		sc.printError("Request returned an error")
		fmt.Fprintln(sc.out, string(response.Error))
		return false
	}

	state := response.Result.Status.State
	if state != wantState {
		sc.printError(fmt.Sprintf("Expected state '%s', got '%s'", wantState, state))
		for _, part := range response.Result.Status.Message.Parts {
			fmt.Fprintln(sc.out, part.Text)
		}
		return false
	}
	sc.printSuccess(fmt.Sprintf("Task state is '%s'", state))

	if showArtifacts {
		fmt.Fprintf(sc.out, "\n%sArtifacts:%s\n", colorPurple, colorReset)
		for _, a := range response.Result.Artifacts {
			fmt.Fprintf(sc.out, "- %s\n", a.Name)
		}
	}
	return true
}

func (sc *SmokeClient) do(method, path string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	url := sc.baseURL + path
	fmt.Fprintf(sc.out, "%s%s %s%s\n", colorYellow, method, url, colorReset)

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := sc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (sc *SmokeClient) printHeader(text string) {
	fmt.Fprintf(sc.out, "\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Fprintf(sc.out, "%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Fprintf(sc.out, "%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func (sc *SmokeClient) printTestHeader(text string) {
	fmt.Fprintf(sc.out, "%s[CHECK] %s%s\n", colorCyan, text, colorReset)
	fmt.Fprintln(sc.out, strings.Repeat("-", 80))
}

func (sc *SmokeClient) printSuccess(text string) {
	fmt.Fprintf(sc.out, "%s✓ %s%s\n", colorGreen, text, colorReset)
}

func (sc *SmokeClient) printError(text string) {
	fmt.Fprintf(sc.out, "%s✗ %s%s\n", colorRed, text, colorReset)
}
