package possibletypes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nautilus/graphql"

	"github.com/nautilus/possibletypes/language"
)

// NetworkLink is the terminating link that sends operations to a GraphQL server
// over HTTP and reads back data, errors and extensions.
type NetworkLink struct {
	URL         string
	Client      *http.Client
	Middlewares []graphql.NetworkMiddleware
}

// NewNetworkLink returns a NetworkLink pointed to the given url
func NewNetworkLink(url string, middlewares ...graphql.NetworkMiddleware) *NetworkLink {
	return &NetworkLink{
		URL:         url,
		Client:      &http.Client{},
		Middlewares: middlewares,
	}
}

// HTTPOperation is the payload sent to the server
type HTTPOperation struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

type httpResult struct {
	Data       map[string]interface{} `json:"data"`
	Errors     []*graphql.Error       `json:"errors"`
	Extensions map[string]interface{} `json:"extensions"`
}

// Execute sends the operation to the link's url
func (l *NetworkLink) Execute(ctx context.Context, operation *Operation) (*Response, error) {
	query, err := language.PrintQuery(operation.Document)
	if err != nil {
		return nil, err
	}

	// the payload
	payload, err := json.Marshal(&HTTPOperation{
		Query:         query,
		Variables:     operation.Variables,
		OperationName: operation.OperationName,
		Extensions:    operation.Extensions,
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, l.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	// give the middlewares a chance to modify the request
	for _, middleware := range l.Middlewares {
		if err := middleware(request); err != nil {
			return nil, err
		}
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	// fire the request to the link's url
	resp, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("could not reach %s: %w", l.URL, err)
	}
	defer resp.Body.Close()

	// read the full body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := httpResult{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("response from %s (status %d) was not valid json: %w", l.URL, resp.StatusCode, err)
	}

	response := &Response{
		Data:       result.Data,
		Extensions: result.Extensions,
	}
	for _, err := range result.Errors {
		response.Errors = append(response.Errors, err)
	}

	return response, nil
}
