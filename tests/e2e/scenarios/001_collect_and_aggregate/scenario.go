package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic upstream data and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	measuredTime = "2025-12-28T16:05:00.000Z" // 18:05 Europe/Helsinki
	signalGroup  = "A"
)

// ### End - fixed configs

type upstreamValue struct {
	SgName      string  `json:"sgName"`
	DetName     string  `json:"detName"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Interval    int     `json:"interval"`
	ReliabValue int     `json:"reliabValue"`
}

type upstreamPayload struct {
	DevName      string          `json:"devName"`
	MeasuredTime string          `json:"measuredTime"`
	Values       []upstreamValue `json:"values"`
}

type pollDetail struct {
	DeviceID   string `json:"deviceId"`
	DetectorID string `json:"detectorId"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
}

type collectionReport struct {
	RunID     string        `json:"runId"`
	Processed int           `json:"processed"`
	Saved     int           `json:"saved"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Details   []*pollDetail `json:"details"`
}

type aggregationResult struct {
	Granularity string             `json:"granularity"`
	Rows        []map[string]any   `json:"rows"`
	Totals      map[string]float64 `json:"totals"`
}

// main runs the e2e scenario: 001_collect_and_aggregate
//
// This scenario tests the end-to-end flow of upstream collection, measurement
// storage and aggregation. It serves a fake traffic-volume API, triggers manual
// collection runs on the traffic analytics API and checks the aggregated totals.
//
// Start the service against the fake upstream, e.g.:
//
//	TRAFFIC_COLLECTOR_BASE_URL=http://localhost:9090 \
//	TRAFFIC_COLLECTOR_SECRET=e2e-secret \
//	TRAFFIC_STORAGE_FILE_ROOT_DIR=.tmp/file-storage \
//	go run ./cmd/server
//
// What it tests:
//   - Manual collection via POST /api/v1/collect with bearer authentication
//   - Single-flight collection runs (concurrent triggers return 409 Conflict)
//   - Duplicate measurement detection (a second run reports skipped_exists)
//   - Day-level aggregation and the total_ALL series
//
// Expected results:
//   - Overlapping triggers are rejected with 409 while a run is in progress
//   - Every configured detector is saved by the first run and skipped by the second
//   - total_ALL for the day equals the sum of the values served for saved detectors
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the traffic analytics API server
	upstreamAddr := "localhost:9090"      // Listen address of the fake traffic-volume API
	secret := "e2e-secret"                // Must match TRAFFIC_COLLECTOR_SECRET of the server
	parallel := 4                         // Number of concurrent collection triggers
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root
	wantCleanFileStorage := true          // If true, clean up file storage directory before running scenario
	day := "2025-12-28"                   // Local day containing measuredTime

	// Get project root directory by looking for go.mod file
	// Start from current working directory and walk up until we find go.mod
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}

	// Walk up the directory tree to find go.mod
	for i := 0; i < 10; i++ {
		goModPath := filepath.Join(projectRoot, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			// Reached filesystem root without finding go.mod
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	// Resolve file storage directory relative to project root
	storagePath, err := filepath.Abs(filepath.Join(projectRoot, fileStorageDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve file storage path: %v\n", err)
		os.Exit(1)
	}

	// Clean up file storage if requested
	if wantCleanFileStorage {
		fmt.Printf("Cleaning file storage directory: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean file storage directory: %v\n", err)
		} else {
			fmt.Printf("File storage directory cleaned\n")
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_collect_and_aggregate")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("UPSTREAM_ADDR: %s\n", upstreamAddr)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("FILE_STORAGE_PATH: %s\n", storagePath)
	fmt.Printf("MEASURED_TIME: %s\n", measuredTime)
	fmt.Println()

	// Start fake upstream
	var upstreamHits int64
	listener, err := net.Listen("tcp", upstreamAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to listen on %s: %v\n", upstreamAddr, err)
		os.Exit(1)
	}
	upstream := &http.Server{
		Handler:           fakeUpstream(&upstreamHits),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = upstream.Serve(listener) }()
	defer upstream.Close()

	// Trigger concurrent runs; only one may proceed
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstReport *collectionReport
	var okRequest int64       // 200 status code
	var conflictRequest int64 // 409 status code
	var otherRequest int64

	start := make(chan struct{})
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			statusCode, report, err := triggerCollect(baseURL, secret)
			switch {
			case err != nil:
				fmt.Fprintf(os.Stderr, "ERROR: collect trigger failed: %v\n", err)
				atomic.AddInt64(&otherRequest, 1)
			case statusCode == http.StatusOK:
				atomic.AddInt64(&okRequest, 1)
				mu.Lock()
				if firstReport == nil || report.Saved > firstReport.Saved {
					firstReport = report
				}
				mu.Unlock()
			case statusCode == http.StatusConflict:
				atomic.AddInt64(&conflictRequest, 1)
			default:
				atomic.AddInt64(&otherRequest, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if okRequest < 1 || firstReport == nil || otherRequest > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: expected at least one successful run and no unexpected statuses (ok=%d, conflict=%d, other=%d)\n",
			okRequest, conflictRequest, otherRequest)
		os.Exit(1)
	}
	if firstReport.Failed > 0 || firstReport.Saved == 0 {
		fmt.Fprintf(os.Stderr, "ERROR: first run should save every detector (saved=%d, skipped=%d, failed=%d)\n",
			firstReport.Saved, firstReport.Skipped, firstReport.Failed)
		os.Exit(1)
	}

	// Second run must find every measurement already stored
	statusCode, secondReport, err := triggerCollect(baseURL, secret)
	if err != nil || statusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "ERROR: second collect failed (status=%d): %v\n", statusCode, err)
		os.Exit(1)
	}
	if secondReport.Saved != 0 || secondReport.Skipped != secondReport.Processed {
		fmt.Fprintf(os.Stderr, "ERROR: second run should skip every detector (saved=%d, skipped=%d, processed=%d)\n",
			secondReport.Saved, secondReport.Skipped, secondReport.Processed)
		os.Exit(1)
	}

	// Expected day total over all saved detectors
	var expectedTotal float64
	for _, d := range firstReport.Details {
		if d.Status == "saved" {
			expectedTotal += valueFor(d.DeviceID, d.DetectorID)
		}
	}

	result, err := fetchAggregates(baseURL, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: aggregates request failed: %v\n", err)
		os.Exit(1)
	}
	if len(result.Rows) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: expected one day row, got %d\n", len(result.Rows))
		os.Exit(1)
	}
	if got := result.Totals["total_ALL"]; got != expectedTotal {
		fmt.Fprintf(os.Stderr, "ERROR: total_ALL = %v, want %v\n", got, expectedTotal)
		os.Exit(1)
	}

	fmt.Println("All checks passed")
	fmt.Println("=== Statistics ===")
	fmt.Printf("Concurrent triggers: %d\n", parallel)
	fmt.Printf("Successful runs: %d\n", okRequest)
	fmt.Printf("Conflicted runs: %d\n", conflictRequest)
	fmt.Printf("Upstream requests served: %d\n", atomic.LoadInt64(&upstreamHits))
	fmt.Printf("Detectors saved: %d\n", firstReport.Saved)
	fmt.Printf("Detectors skipped on rerun: %d\n", secondReport.Skipped)
	fmt.Printf("Day total_ALL: %v\n", expectedTotal)
	fmt.Println("Scenario completed successfully")
}

// valueFor derives a stable traffic volume from the detector identity.
func valueFor(deviceID, detectorID string) float64 {
	var sum int
	for _, r := range deviceID + "/" + detectorID {
		sum += int(r)
	}
	return float64(sum%50 + 1)
}

func fakeUpstream(hits *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 {
			http.NotFound(w, r)
			return
		}
		deviceID, _ := url.PathUnescape(parts[len(parts)-2])
		detectorID, _ := url.PathUnescape(parts[len(parts)-1])

		payload := upstreamPayload{
			DevName:      deviceID,
			MeasuredTime: measuredTime,
			Values: []upstreamValue{{
				SgName:      signalGroup,
				DetName:     detectorID,
				Name:        "trafficVolume",
				Value:       valueFor(deviceID, detectorID),
				Unit:        "pcs",
				Interval:    300,
				ReliabValue: 5,
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	})
}

func triggerCollect(baseURL, secret string) (int, *collectionReport, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/collect", nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+secret)

	client := &http.Client{
		Timeout: 60 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected while another run is in progress
	if resp.StatusCode == http.StatusConflict {
		return resp.StatusCode, nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var report collectionReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return resp.StatusCode, &report, nil
}

func fetchAggregates(baseURL, day string) (*aggregationResult, error) {
	query := url.Values{}
	query.Set("granularity", "day")
	query.Set("start", day+"T00:00")
	query.Set("end", day+"T23:59")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Get(baseURL + "/api/v1/aggregates?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var result aggregationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode aggregates: %w", err)
	}
	return &result, nil
}
