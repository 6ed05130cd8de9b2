package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// startStream opens the SSE stream and returns one channel for JSON-RPC
// payloads to POST and one for raw server messages. The output channel
// closes when the stream ends.
func startStream(ctx context.Context, conf Config) (chan<- any, <-chan any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, conf.URL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("MCP-Protocol-Version", protocolVersion)
	for k, v := range conf.Env {
		req.Header.Set(k, v)
	}

	client := &http.Client{
		Transport: &http.Transport{
			// Bounds time to first response without killing the stream.
			ResponseHeaderTimeout: conf.ConnectTimeout,
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to SSE endpoint: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	in := make(chan any)
	out := make(chan any)

	// Streamable HTTP servers POST to the same URL. Legacy SSE servers
	// announce a separate endpoint in the first event.
	postURL := conf.URL
	var postURLMu sync.Mutex

	go func() {
		defer func() {
			resp.Body.Close()
			close(out)
		}()

		scanner := bufio.NewScanner(resp.Body)
		var currentEvent string
		var currentData []string
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				// End of event
				if len(currentData) > 0 {
					dataStr := strings.Join(currentData, "\n")
					switch currentEvent {
					case "endpoint":
						baseURL, err := url.Parse(conf.URL)
						if err == nil {
							if refURL, err := url.Parse(dataStr); err == nil {
								postURLMu.Lock()
								postURL = baseURL.ResolveReference(refURL).String()
								postURLMu.Unlock()
							}
						}
						ancli.Noticef("mcp_%v: connected to endpoint %v\n", conf.Name, dataStr)
					case "message", "":
						var msg json.RawMessage
						if err := json.Unmarshal([]byte(dataStr), &msg); err != nil {
							ancli.Warnf("mcp_%v: failed to unmarshal message: %v\n", conf.Name, err)
						} else {
							select {
							case out <- msg:
							case <-ctx.Done():
								return
							}
						}
					}
				}
				currentEvent = ""
				currentData = nil
				continue
			}

			if strings.HasPrefix(line, "event: ") {
				currentEvent = strings.TrimPrefix(line, "event: ")
			} else if strings.HasPrefix(line, "data: ") {
				currentData = append(currentData, strings.TrimPrefix(line, "data: "))
			}
		}
	}()

	go func() {
		for {
			select {
			case msg, ok := <-in:
				if !ok {
					return
				}
				postURLMu.Lock()
				postURLStr := postURL
				postURLMu.Unlock()

				body, err := json.Marshal(msg)
				if err != nil {
					ancli.Warnf("mcp_%v: failed to marshal request: %v\n", conf.Name, err)
					continue
				}
				postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, postURLStr, bytes.NewReader(body))
				if err != nil {
					ancli.Warnf("mcp_%v: failed to create POST request: %v\n", conf.Name, err)
					continue
				}
				postReq.Header.Set("Content-Type", "application/json")
				postReq.Header.Set("Accept", "application/json, text/event-stream")
				postReq.Header.Set("MCP-Protocol-Version", protocolVersion)
				for k, v := range conf.Env {
					postReq.Header.Set(k, v)
				}

				postResp, err := client.Do(postReq)
				if err != nil {
					ancli.Warnf("mcp_%v: failed to send POST request: %v\n", conf.Name, err)
					continue
				}
				postResp.Body.Close()
				if postResp.StatusCode != http.StatusOK && postResp.StatusCode != http.StatusAccepted {
					ancli.Warnf("mcp_%v: POST request failed with status: %d\n", conf.Name, postResp.StatusCode)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return in, out, nil
}
