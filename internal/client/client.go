// Package client talks to the ProjectFlow transcription endpoints over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	dto "github.com/johnquangdev/projectflow/internal/adapter/dto/transcription"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
)

// APIError is returned when the API answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client is a bearer-authenticated API client
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Upload is one recording to submit
type Upload struct {
	ProjectID    string
	MeetingTitle string
	Filename     string
	Audio        io.Reader
}

// Submit uploads a recording and returns the created job
func (c *Client) Submit(ctx context.Context, in Upload) (*dto.SubmitResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("projectId", in.ProjectID); err != nil {
		return nil, err
	}
	if in.MeetingTitle != "" {
		if err := w.WriteField("meetingTitle", in.MeetingTitle); err != nil {
			return nil, err
		}
	}

	filename := in.Filename
	if filename == "" {
		filename = "recording.wav"
	}
	part, err := w.CreateFormFile("audio", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, in.Audio); err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out dto.SubmitResponse
	if err := c.do(ctx, "/v1/transcriptions", w.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status performs one status poll
func (c *Client) Status(ctx context.Context, transcriptID string, meetingID uuid.UUID) (*transcription.StatusResult, error) {
	b, err := json.Marshal(dto.StatusRequest{TranscriptID: transcriptID, MeetingID: meetingID.String()})
	if err != nil {
		return nil, err
	}

	var out statusBody
	if err := c.do(ctx, "/v1/transcriptions/status", "application/json", bytes.NewReader(b), &out); err != nil {
		return nil, err
	}
	return toStatusResult(&out), nil
}

// CheckFunc adapts Status to the polling loop
func (c *Client) CheckFunc(transcriptID string, meetingID uuid.UUID) transcription.CheckFunc {
	return func(ctx context.Context) (*transcription.StatusResult, error) {
		return c.Status(ctx, transcriptID, meetingID)
	}
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls a readable message out of either error body shape the
// API produces
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Info    string `json:"info"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Error != "":
			return body.Error
		case body.Info != "":
			return body.Message + ": " + body.Info
		case body.Message != "":
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// statusBody decodes both the completed and the pending answer
type statusBody struct {
	dto.CompletedResponse
	Error string `json:"error"`
}

func toStatusResult(r *statusBody) *transcription.StatusResult {
	res := &transcription.StatusResult{
		Status:     entities.TranscriptionStatus(r.Status),
		Transcript: r.Transcript,
		Summary:    r.Summary,
		Error:      r.Error,
	}
	for _, t := range r.Tasks {
		res.Tasks = append(res.Tasks, extraction.ExtractedTask{
			Title:       t.Title,
			Description: t.Description,
			Priority:    entities.ParseTaskPriority(t.Priority),
		})
	}
	for _, ch := range r.Chapters {
		res.Chapters = append(res.Chapters, entities.Chapter{
			Gist:     ch.Gist,
			Headline: ch.Headline,
			Summary:  ch.Summary,
			Start:    ch.Start,
			End:      ch.End,
		})
	}
	for _, h := range r.Highlights {
		res.Highlights = append(res.Highlights, entities.Highlight{Text: h.Text, Count: h.Count, Rank: h.Rank})
	}
	return res
}
