package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest represents the transaction payload
type TransactionRequest struct {
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CardResponse is the part of the card body the load test reads
type CardResponse struct {
	ID             string `json:"id"`
	CurrentBalance string `json:"currentBalance"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
	CardID       string
	Signed       decimal.Decimal
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	CardStats          map[string]int             // requests per card
	ScenarioStats      map[string]int             // requests per scenario
	Expected           map[string]decimal.Decimal // expected balance delta per card
	Lock               sync.Mutex
}

// TransactionScenario defines a transaction scenario
type TransactionScenario struct {
	Name   string
	Type   string
	Amount string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	cardCount := flag.Int("cards", 3, "Number of cards to spread the load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	username := flag.String("user", "user", "Demo username")
	password := flag.String("pass", "pass", "Demo password")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	if err := postJSON(client, *baseURL+"/session/login", map[string]string{
		"username": *username,
		"password": *password,
	}, nil); err != nil {
		fmt.Println("Login failed:", err)
		os.Exit(1)
	}

	var cardIDs []string
	for i := 0; i < max(*cardCount, 1); i++ {
		var card CardResponse
		err := postJSON(client, *baseURL+"/cards", map[string]string{
			"name":    fmt.Sprintf("Load test %d", i+1),
			"balance": "0",
		}, &card)
		if err != nil {
			fmt.Println("Creating card failed:", err)
			os.Exit(1)
		}
		cardIDs = append(cardIDs, card.ID)
	}

	scenarios := []TransactionScenario{
		{"Salary", "income", "1500.00"},
		{"Refund", "income", "20.00"},
		{"Gift", "income", "35.50"},
		{"Coffee", "expense", "3.50"},
		{"Groceries", "expense", "42.10"},
		{"Rent", "expense", "700.00"},
	}

	fmt.Printf("Load testing API across %d cards: %v\n", len(cardIDs), cardIDs)
	fmt.Printf("Transaction scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		CardStats:       make(map[string]int),
		ScenarioStats:   make(map[string]int),
		Expected:        make(map[string]decimal.Decimal),
	}
	for _, id := range cardIDs {
		stats.Expected[id] = decimal.Zero
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delayMs, cardIDs, scenarios, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
				stats.Expected[result.CardID] = stats.Expected[result.CardID].Add(result.Signed)
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			stats.MinResponseTime = min(stats.MinResponseTime, result.ResponseTime)
			stats.MaxResponseTime = max(stats.MaxResponseTime, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
	if !verifyBalances(client, *baseURL, stats) {
		os.Exit(1)
	}
}

func worker(client *http.Client, baseURL string, delayMs int, cardIDs []string,
	scenarios []TransactionScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		cardID := cardIDs[rand.IntN(len(cardIDs))]
		scenario := scenarios[rand.IntN(len(scenarios))]

		stats.Lock.Lock()
		stats.CardStats[cardID]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		signed := decimal.RequireFromString(scenario.Amount)
		if scenario.Type == "expense" {
			signed = signed.Neg()
		}

		startTime := time.Now()
		err := postJSON(client, fmt.Sprintf("%s/cards/%s/transactions", baseURL, cardID), TransactionRequest{
			Amount:      scenario.Amount,
			Type:        scenario.Type,
			Description: scenario.Name,
		}, nil)

		results <- TestResult{
			Success:      err == nil,
			ResponseTime: time.Since(startTime),
			Error:        err,
			CardID:       cardID,
			Signed:       signed,
		}
	}
}

// postJSON posts body and decodes a 2xx response into out when out is non-nil
func postJSON(client *http.Client, url string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// verifyBalances compares every card's derived balance with the sum of accepted transactions
func verifyBalances(client *http.Client, baseURL string, stats *TestStats) bool {
	fmt.Println("\n----------------- BALANCE CHECK -----------------")
	ok := true
	for cardID, expected := range stats.Expected {
		resp, err := client.Get(fmt.Sprintf("%s/cards/%s", baseURL, cardID))
		if err != nil {
			fmt.Printf("%s: %v\n", cardID, err)
			ok = false
			continue
		}

		var card CardResponse
		err = json.NewDecoder(resp.Body).Decode(&card)
		resp.Body.Close()
		if err != nil {
			fmt.Printf("%s: %v\n", cardID, err)
			ok = false
			continue
		}

		actual, err := decimal.NewFromString(card.CurrentBalance)
		if err != nil || !actual.Equal(expected) {
			fmt.Printf("❌ %s: expected %s, got %s\n", cardID, expected.StringFixed(2), card.CurrentBalance)
			ok = false
			continue
		}
		fmt.Printf("✅ %s: %s\n", cardID, card.CurrentBalance)
	}
	return ok
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))

		sortedTimes := slices.Clone(stats.ResponseTimes)
		slices.Sort(sortedTimes)

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- CARD DISTRIBUTION -----------------")
	for cardID, count := range stats.CardStats {
		fmt.Printf("%s: %d requests (%.1f%%)\n", cardID, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
