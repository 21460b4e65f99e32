package htclient

import (
	"io"
	"net/http"
)

// Client is a standard HTTP client wrapper to simplify response reading.
type Client struct {
	http.Client
}

// NewDefaultClient is a general purpose HTTP client.
func NewDefaultClient() *Client {
	return &Client{}
}

// Do sends a request, receives a response, and fully reads the response body.
func (c *Client) Do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	var body []byte
	switch resp.ContentLength {
	case -1:
		body, err = io.ReadAll(resp.Body)
	case 0:
		body, err = []byte{}, nil
	default:
		body = make([]byte, resp.ContentLength)
		_, err = io.ReadFull(resp.Body, body)
	}
	if err != nil {
		return nil, nil, err
	}

	return resp, body, nil
}
