package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendGridSenderUnconfigured(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{}, nil))
}

func TestSendGridSenderSend(t *testing.T) {
	var paths []string
	var mailBody map[string]interface{}
	var contactBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/v3/marketing/contacts":
			json.Unmarshal(body, &contactBody)
			w.WriteHeader(http.StatusAccepted)
		case "/v3/mail/send":
			json.Unmarshal(body, &mailBody)
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		ListID:    "list-1",
		FromEmail: "guides@example.com",
		Host:      srv.URL,
	}, nil)
	require.NotNil(t, sender)

	err := sender.Send(context.Background(), "john@example.com", []byte("%PDF-fake"))
	require.NoError(t, err)

	assert.Equal(t, []string{"PUT /v3/marketing/contacts", "POST /v3/mail/send"}, paths)

	contacts := contactBody["contacts"].([]interface{})
	assert.Equal(t, "john@example.com", contacts[0].(map[string]interface{})["email"])
	assert.Equal(t, []interface{}{"list-1"}, contactBody["list_ids"])

	attachments := mailBody["attachments"].([]interface{})
	att := attachments[0].(map[string]interface{})
	assert.Equal(t, "survival-guide.pdf", att["filename"])
	assert.Equal(t, "application/pdf", att["type"])
	assert.NotEmpty(t, att["content"])
}

func TestSendGridSenderContactFailureDoesNotBlockMail(t *testing.T) {
	var mailed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/marketing/contacts":
			w.WriteHeader(http.StatusBadRequest)
		case "/v3/mail/send":
			mailed = true
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "k", Host: srv.URL}, nil)
	err := sender.Send(context.Background(), "john@example.com", []byte("doc"))
	require.NoError(t, err)
	assert.True(t, mailed)
}

func TestSendGridSenderMailErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "k", Host: srv.URL}, nil)
	err := sender.Send(context.Background(), "john@example.com", []byte("doc"))
	assert.Error(t, err)
}

func TestStubSender(t *testing.T) {
	s := NewStubSender(nil)
	assert.NoError(t, s.Send(context.Background(), "john@example.com", []byte("doc")))
}
