package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gpuhost-io/gpuhost/internal/config"
)

// bridgeClient is a thin HTTP client for a running gpuhostd bridge.
type bridgeClient struct {
	baseURL string
	http    *http.Client
}

// connectBridge locates the running gpuhostd via ~/.gpuhost/bridge.yaml.
func connectBridge() (*bridgeClient, error) {
	running, info, err := config.IsBridgeRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check bridge status: %w", err)
	}
	if !running || info == nil {
		return nil, fmt.Errorf("gpuhostd is not running. Start it first")
	}

	return &bridgeClient{
		baseURL: fmt.Sprintf("http://%s:%d/api/v1", info.Host, info.Port),
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// wsURL returns the websocket URL for the log stream endpoint.
func (c *bridgeClient) wsURL() string {
	return "ws" + c.baseURL[len("http"):] + "/logs/stream"
}

// get issues a GET and decodes the JSON response into out.
func (c *bridgeClient) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

// post issues a POST with an optional JSON body and decodes the response.
func (c *bridgeClient) post(path string, body, out interface{}) error {
	return c.send(http.MethodPost, path, body, out)
}

// put issues a PUT with a JSON body and decodes the response.
func (c *bridgeClient) put(path string, body, out interface{}) error {
	return c.send(http.MethodPut, path, body, out)
}

func (c *bridgeClient) send(method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

// decodeResponse decodes a bridge response, surfacing the error field on
// non-2xx statuses.
func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Kind  string `json:"kind"`
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("bridge returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
