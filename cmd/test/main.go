package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, preflight, generate, missing-area, agent-card, a2a, custom")
	area := flag.String("area", "", "Area of interest (for custom test)")
	name := flag.String("name", "", "Preferred startup name (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Startup Idea Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	ok := true
	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		ok = client.testHealthCheck()
	case "preflight":
		ok = client.testPreflight()
	case "generate":
		ok = client.testGenerate()
	case "missing-area":
		ok = client.testMissingArea()
	case "agent-card":
		ok = client.testAgentCard()
	case "a2a":
		ok = client.testA2A()
	case "custom":
		if *area == "" {
			printError("Area of interest is required for custom test. Use -area flag")
			os.Exit(1)
		}
		ok = client.testCustomIdea(*area, *name)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, preflight, generate, missing-area, agent-card, a2a, custom")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"CORS Preflight", tc.testPreflight},
		{"Missing Area", tc.testMissingArea},
		{"Idea Generation", tc.testGenerate},
		{"Agent Card", tc.testAgentCard},
		{"A2A Idea Generation", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testPreflight() bool {
	printTestHeader("Testing CORS Preflight")

	url := fmt.Sprintf("%s/functions/v1/generate-startup-idea", tc.baseURL)
	fmt.Printf("OPTIONS %s\n", url)

	req, _ := http.NewRequest(http.MethodOptions, url, nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}
	if len(body) != 0 {
		printError(fmt.Sprintf("Expected empty body, got '%s'", string(body)))
		return false
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		printError(fmt.Sprintf("Expected Access-Control-Allow-Origin '*', got '%s'", got))
		return false
	}

	printSuccess("Preflight passed")
	return true
}

func (tc *TestClient) testMissingArea() bool {
	printTestHeader("Testing Missing Area Of Interest")

	status, body, err := tc.postGenerate(map[string]string{"startupName": "Nameless"})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error != "Area of interest is required" {
		printError(fmt.Sprintf("Unexpected error body: %s", string(body)))
		return false
	}

	printSuccess("Missing area rejected")
	return true
}

func (tc *TestClient) testGenerate() bool {
	return tc.testCustomIdea("Sustainability", "")
}

func (tc *TestClient) testCustomIdea(area, name string) bool {
	printTestHeader("Testing Idea Generation")
	fmt.Printf("%sArea of Interest:%s %s\n\n", colorCyan, colorReset, area)

	payload := map[string]string{"areaOfInterest": area}
	if name != "" {
		payload["startupName"] = name
	}
	status, body, err := tc.postGenerate(payload)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var resp struct {
		Idea map[string]string `json:"idea"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(resp.Idea) == 0 {
		printError("Response carries no idea fields")
		return false
	}

	printSuccess("Idea generated")
	printJSON(body)
	return true
}

func (tc *TestClient) postGenerate(payload map[string]string) (int, []byte, error) {
	url := fmt.Sprintf("%s/functions/v1/generate-startup-idea", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	jsonData, _ := json.Marshal(payload)
	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	url := fmt.Sprintf("%s/.well-known/agent.json", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Idea Generation")

	url := fmt.Sprintf("%s/a2a/idea-generator", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{"kind": "text", "text": "Healthcare for remote workers"},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text/plain", "application/json"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result *struct {
			Status struct {
				State   string `json:"state"`
				Message *struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		printError(fmt.Sprintf("Request returned an error: %s", string(response.Error)))
		return false
	}
	if response.Result == nil {
		printError("Invalid result format")
		return false
	}
	if state := response.Result.Status.State; state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		printJSON(body)
		return false
	}

	printSuccess("A2A idea generation completed successfully")
	if msg := response.Result.Status.Message; msg != nil {
		fmt.Println(strings.Repeat("=", 80))
		for _, part := range msg.Parts {
			fmt.Println(part.Text)
		}
		fmt.Println(strings.Repeat("=", 80))
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
