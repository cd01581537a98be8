package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"hospguardian/internal/models"
	"hospguardian/internal/store"
)

// ApiClient handles API requests to the HospGuardian API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("HOSPGUARDIAN_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		Token:   os.Getenv("HOSPGUARDIAN_TOKEN"),
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}
	return true, nil
}

func (c *ApiClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *ApiClient) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *ApiClient) do(req *http.Request, out interface{}) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetAssets fetches the asset inventory, optionally filtered
func (c *ApiClient) GetAssets(query string) ([]models.Asset, error) {
	path := "/api/v1/assets"
	if query != "" {
		path += "?q=" + query
	}
	var assets []models.Asset
	err := c.get(path, &assets)
	return assets, err
}

// GetStats fetches the dashboard aggregates
func (c *ApiClient) GetStats() (store.SystemStats, error) {
	var stats store.SystemStats
	err := c.get("/api/v1/stats", &stats)
	return stats, err
}

// GetEvents fetches the audit log
func (c *ApiClient) GetEvents() ([]models.SystemEvent, error) {
	var events []models.SystemEvent
	err := c.get("/api/v1/events", &events)
	return events, err
}

// GetOrders fetches all service orders
func (c *ApiClient) GetOrders() ([]models.ServiceOrder, error) {
	var orders []models.ServiceOrder
	err := c.get("/api/v1/orders", &orders)
	return orders, err
}

// GetStock fetches the stock listing
func (c *ApiClient) GetStock() ([]models.StockItem, error) {
	var items []models.StockItem
	err := c.get("/api/v1/stock", &items)
	return items, err
}

// SyncStatus fetches connectivity and queue information
func (c *ApiClient) SyncStatus() (map[string]interface{}, error) {
	var status map[string]interface{}
	err := c.get("/api/v1/sync/status", &status)
	return status, err
}

// SetOnline reports a connectivity signal to the server
func (c *ApiClient) SetOnline(online bool) error {
	return c.post("/api/v1/sync/online", map[string]bool{"online": online}, nil)
}

// Login obtains a role token and stores it on the client
func (c *ApiClient) Login(role string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post("/api/v1/auth/token", map[string]string{"role": role}, &resp); err != nil {
		return err
	}
	c.Token = resp.Token
	return nil
}
