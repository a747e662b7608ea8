package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

func TestSubmit_SendsMultipartWithToken(t *testing.T) {
	projectID := uuid.New().String()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, projectID, r.FormValue("projectId"))
		assert.Equal(t, "Standup", r.FormValue("meetingTitle"))

		f, hdr, err := r.FormFile("audio")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "recording.wav", hdr.Filename)
		assert.Equal(t, "RIFF", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transcriptId":"tr-1","meetingId":"m-1","status":"queued"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok", 0)
	res, err := c.Submit(context.Background(), Upload{
		ProjectID:    projectID,
		MeetingTitle: "Standup",
		Audio:        strings.NewReader("RIFF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tr-1", res.TranscriptID)
	assert.Equal(t, "queued", res.Status)
}

func TestStatus_DecodesCompleted(t *testing.T) {
	meetingID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tr-1", body["transcriptId"])
		assert.Equal(t, meetingID.String(), body["meetingId"])

		_, _ = w.Write([]byte(`{"status":"completed","transcript":"hello","summary":"s",
			"tasks":[{"title":"Send deck","description":"","priority":"HIGH"}],
			"chapters":[{"gist":"g","headline":"h","summary":"cs","start":1,"end":2}],
			"highlights":[{"text":"deck","count":2,"rank":0.5}]}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL, "", 0).Status(context.Background(), "tr-1", meetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusCompleted, res.Status)
	assert.Equal(t, "hello", res.Transcript)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, entities.TaskPriorityHigh, res.Tasks[0].Priority)
	require.Len(t, res.Chapters, 1)
	assert.Equal(t, int64(2), res.Chapters[0].End)
	require.Len(t, res.Highlights, 1)
	assert.Equal(t, "deck", res.Highlights[0].Text)
}

func TestStatus_DecodesPendingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","error":"audio too short"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL, "", 0).Status(context.Background(), "tr-1", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusError, res.Status)
	assert.Equal(t, "audio too short", res.Error)
	assert.Empty(t, res.Tasks)
}

func TestDo_MapsErrorBodies(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		want string
	}{
		{"middleware", http.StatusUnauthorized, `{"error":"token expired"}`, "token expired"},
		{"app error", http.StatusNotFound, `{"code":404,"message":"project not found","info":"no such project"}`, "project not found: no such project"},
		{"plain", http.StatusBadGateway, "bad gateway\n", "bad gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "", 0).Status(context.Background(), "tr-1", uuid.New())
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.code, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}
