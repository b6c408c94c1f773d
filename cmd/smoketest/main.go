// Command smoketest drives a running prepguide server through the intake
// conversation and guide generation endpoints.
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

type SmokeClient struct {
	baseURL string
	client  *http.Client
}

func NewSmokeClient(baseURL string) *SmokeClient {
	return &SmokeClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Reply         string            `json:"reply"`
	Profile       map[string]string `json:"profile"`
	ReadyForEmail bool              `json:"readyForEmail"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, chat, guide")
	email := flag.String("email", "smoketest@example.com", "Destination address for the guide test")
	flag.Parse()

	client := NewSmokeClient(*baseURL)

	printHeader("Prepguide Smoke Test")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests(*email)
	case "health":
		client.testHealth()
	case "chat":
		client.testConversation()
	case "guide":
		client.testGuide(*email, map[string]string{
			"preparingFor": "Family or household",
			"region":       "Texas",
			"concern":      "power outages",
		})
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, chat, guide")
		os.Exit(1)
	}
}

func (sc *SmokeClient) runAllTests(email string) {
	passed := 0
	failed := 0

	if sc.testHealth() {
		passed++
	} else {
		failed++
	}
	fmt.Println()

	profile, ok := sc.testConversation()
	if ok {
		passed++
	} else {
		failed++
	}
	fmt.Println()

	if sc.testGuide(email, profile) {
		passed++
	} else {
		failed++
	}
	fmt.Println()

	printHeader("Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)

	if failed > 0 {
		os.Exit(1)
	}
}

func (sc *SmokeClient) testHealth() bool {
	printTestHeader("Health endpoint")

	url := fmt.Sprintf("%s/api/health", sc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := sc.client.Get(url)
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

	var health map[string]bool
	if err := json.Unmarshal(body, &health); err != nil || !health["ok"] {
		printError(fmt.Sprintf("Unexpected body: %s", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

// testConversation walks the whole intake: each scripted answer should fill at
// least one profile field, and the final turn should report readiness.
func (sc *SmokeClient) testConversation() (map[string]string, bool) {
	printTestHeader("Chat conversation")

	answers := []string{
		"I'm preparing for my family",
		"We're in Texas",
		"mostly worried about power outages",
		"4 of us",
		"total beginner",
	}

	var history []chatMessage
	profile := map[string]string{}

	for _, answer := range answers {
		history = append(history, chatMessage{Role: "user", Content: answer})

		payload, _ := json.Marshal(map[string]interface{}{
			"messages": history,
			"profile":  profile,
		})

		url := fmt.Sprintf("%s/api/chat", sc.baseURL)
		resp, err := sc.client.Post(url, "application/json", bytes.NewBuffer(payload))
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return profile, false
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Expected status 200, got %d: %s", resp.StatusCode, string(body)))
			return profile, false
		}

		var turn chatResponse
		if err := json.Unmarshal(body, &turn); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return profile, false
		}

		fmt.Printf("%suser:%s %s\n", colorCyan, colorReset, answer)
		fmt.Printf("%sagent:%s %s\n", colorYellow, colorReset, turn.Reply)
		profile = turn.Profile
		history = append(history, chatMessage{Role: "assistant", Content: turn.Reply})

		if turn.ReadyForEmail {
			printSuccess("Profile complete, ready for email")
			return profile, true
		}
	}

	printError("Conversation ended without completing the profile")
	fmt.Printf("Final profile: %v\n", profile)
	return profile, false
}

func (sc *SmokeClient) testGuide(email string, profile map[string]string) bool {
	printTestHeader("Guide generation")

	payload, _ := json.Marshal(map[string]interface{}{
		"email":   email,
		"profile": profile,
	})

	url := fmt.Sprintf("%s/api/guide", sc.baseURL)
	fmt.Printf("POST %s (to %s)\n", url, email)

	resp, err := sc.client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d: %s", resp.StatusCode, string(body)))
		return false
	}

	var result map[string]bool
	if err := json.Unmarshal(body, &result); err != nil || !result["ok"] {
		printError(fmt.Sprintf("Unexpected body: %s", string(body)))
		return false
	}

	printSuccess("Guide generated and dispatched")
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
