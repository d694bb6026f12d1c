package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const clientTimeout = 30 * time.Second

// Client talks to the content API on behalf of the editor runtime.
type Client struct {
	http *resty.Client
}

// NewClient returns a Client bound to the API base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(clientTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type saveRecordPayload struct {
	Token       string `json:"token"`
	Kind        string `json:"kind"`
	ID          string `json:"id,omitempty"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type deleteRecordPayload struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
	ID    string `json:"id"`
}

type localePayload struct {
	Language string `json:"language"`
}

type localeEntry struct {
	Language string `json:"language"`
}

// SaveRecord posts the draft and returns the server's confirmation message.
func (c *Client) SaveRecord(ctx context.Context, draft SaveDraft) (string, error) {
	var ok, apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(saveRecordPayload{
			Token:       draft.Token,
			Kind:        string(draft.Kind),
			ID:          draft.ID,
			Locale:      draft.Locale,
			Name:        draft.Name,
			Description: draft.Description,
			Image:       draft.Image,
		}).
		SetResult(&ok).
		SetError(&apiErr).
		Post("/v1/records")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp, apiErr)
	}
	return ok.Message, nil
}

// DeleteRecord removes a record and returns the confirmation message.
func (c *Client) DeleteRecord(ctx context.Context, token string, kind Section, id string) (string, error) {
	var ok, apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(deleteRecordPayload{Token: token, Kind: string(kind), ID: id}).
		SetResult(&ok).
		SetError(&apiErr).
		Delete("/v1/records")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp, apiErr)
	}
	return ok.Message, nil
}

// ListRecords fetches the reference list for a kind.
func (c *Client) ListRecords(ctx context.Context, kind Section) ([]RecordSummary, error) {
	var records []RecordSummary
	var apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&records).
		SetError(&apiErr).
		Get("/v1/records/" + string(kind))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, apiErr)
	}
	return records, nil
}

// ListLocales fetches the registered locale tags.
func (c *Client) ListLocales(ctx context.Context) ([]string, error) {
	var entries []localeEntry
	var apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entries).
		SetError(&apiErr).
		Get("/v1/locales")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, apiErr)
	}
	locales := make([]string, 0, len(entries))
	for _, e := range entries {
		locales = append(locales, e.Language)
	}
	return locales, nil
}

// CreateLocale registers a locale tag through the admin endpoint.
func (c *Client) CreateLocale(ctx context.Context, token, language string) (string, error) {
	var ok, apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(localePayload{Language: language}).
		SetResult(&ok).
		SetError(&apiErr).
		Post("/v1/locales")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp, apiErr)
	}
	return ok.Message, nil
}

// DeleteLocale removes a locale tag through the admin endpoint.
func (c *Client) DeleteLocale(ctx context.Context, token, language string) (string, error) {
	var ok, apiErr messageEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&ok).
		SetError(&apiErr).
		Delete("/v1/locales/" + language)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", apiError(resp, apiErr)
	}
	return ok.Message, nil
}

// apiError surfaces the server's message envelope, falling back to the HTTP
// status when the body carried none.
func apiError(resp *resty.Response, envelope messageEnvelope) error {
	if envelope.Message != "" {
		return fmt.Errorf("%s", envelope.Message)
	}
	return fmt.Errorf("request failed: %s", resp.Status())
}
