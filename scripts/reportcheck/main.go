// Command reportcheck smoke-tests a running gateway: it fetches a student
// summary and the matching missing-work report and checks the invariants
// that must hold between them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

type statusDescriptor struct {
	Code string `json:"code"`
	Late bool   `json:"late"`
}

type activity struct {
	ID     string           `json:"id"`
	Status statusDescriptor `json:"status"`
}

type summaryPayload struct {
	Summary struct {
		TotalAssigned int `json:"total_assigned"`
		Missing       int `json:"missing"`
		Late          int `json:"late"`
	} `json:"summary"`
	Activities []activity `json:"activities"`
}

type missingPayload struct {
	TotalMissing int        `json:"total_missing"`
	Assignments  []activity `json:"assignments"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	var (
		base     string
		courseID string
		userID   string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&courseID, "course", "", "course ID (required)")
	flag.StringVar(&userID, "user", "", "student user ID (required)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	if courseID == "" || userID == "" {
		log.Fatal("both -course and -user are required")
	}

	client := &http.Client{Timeout: timeout}
	query := url.Values{"courseId": {courseID}, "userId": {userID}}

	var summary summaryPayload
	if err := fetch(client, base+"/api/v1/reports/summary?"+query.Encode(), &summary); err != nil {
		log.Fatalf("summary fetch failed: %v", err)
	}

	var missing missingPayload
	if err := fetch(client, base+"/api/v1/reports/missing?"+query.Encode(), &missing); err != nil {
		log.Fatalf("missing-work fetch failed: %v", err)
	}

	failures := 0
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			failures++
			fmt.Printf("FAIL  %s\n", fmt.Sprintf(format, args...))
		}
	}

	check(summary.Summary.TotalAssigned == len(summary.Activities),
		"total_assigned=%d but %d activities", summary.Summary.TotalAssigned, len(summary.Activities))

	missingCount, lateCount := 0, 0
	summaryIDs := make(map[string]bool, len(summary.Activities))
	for _, a := range summary.Activities {
		summaryIDs[a.ID] = true
		if a.Status.Code == "MISSING" {
			missingCount++
		}
		if a.Status.Late {
			lateCount++
		}
	}
	check(summary.Summary.Missing == missingCount,
		"summary.missing=%d but %d MISSING activities", summary.Summary.Missing, missingCount)
	check(summary.Summary.Late == lateCount,
		"summary.late=%d but %d late activities", summary.Summary.Late, lateCount)
	check(missing.TotalMissing == len(missing.Assignments),
		"total_missing=%d but %d assignments", missing.TotalMissing, len(missing.Assignments))
	check(missing.TotalMissing == missingCount,
		"missing report has %d items, summary says %d", missing.TotalMissing, missingCount)
	for _, a := range missing.Assignments {
		check(summaryIDs[a.ID], "missing item %s absent from summary", a.ID)
		check(a.Status.Code == "MISSING", "missing item %s has status %s", a.ID, a.Status.Code)
	}

	fmt.Printf("checked %d activities, %d missing; %d failure(s)\n",
		len(summary.Activities), missingCount, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func fetch(client *http.Client, rawURL string, out interface{}) error {
	resp, err := client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Error != nil {
		return fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(env.Data, out)
}
