package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// Default http client timeout in secs.
	defaultHttpClientTimeout = 10 * time.Second
)

type (
	// Client is the base for http/https calls
	Client struct {
		httpClient *http.Client
	}

	// ReqConfig models the configuration options for requests.
	ReqConfig struct {
		Payload []byte
		Method  string
		HttpUrl string
		// Headers are added to the request after the default JSON headers.
		Headers map[string]string
	}

	// StatusError is returned for responses other than 200 OK.
	StatusError struct {
		StatusCode int
		Status     string
		Body       []byte
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("error: status: %v resp: %s", e.Status, e.Body)
}

// NewClient configures and return a new client. A zero timeout uses the
// default.
func NewClient(timeout time.Duration) (c *Client) {
	if timeout <= 0 {
		timeout = defaultHttpClientTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

func (c *Client) requestFilter(ctx context.Context, reqConfig *ReqConfig) (req *http.Request, err error) {
	req, err = http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.HttpUrl, bytes.NewBuffer(reqConfig.Payload))
	if err != nil {
		return
	}
	if reqConfig.Method == http.MethodPost || reqConfig.Method == http.MethodPut {
		req.Header.Add("Content-Type", "application/json;charset=utf-8")
	}
	req.Header.Add("Accept", "application/json")
	for k, v := range reqConfig.Headers {
		req.Header.Set(k, v)
	}
	return
}

// Do prepare and process HTTP request to backend resources. A nil response
// discards the body. An empty body returns ErrEmptyResponse when a response
// was expected.
func (c *Client) Do(ctx context.Context, reqConfig *ReqConfig, response interface{}) (err error) {
	if _, err := url.ParseRequestURI(reqConfig.HttpUrl); err != nil {
		return fmt.Errorf("error: url not properly constituted: %v", err)
	}

	var req *http.Request
	req, err = c.requestFilter(ctx, reqConfig)
	if err != nil {
		return err
	}

	if req == nil {
		return errors.New("error: nil request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}

	if response == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(body, response)
}
