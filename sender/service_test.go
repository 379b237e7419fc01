package sender_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-outbox/sender"
	"github.com/marcelsud/webhook-outbox/sender/mocks"
	"github.com/marcelsud/webhook-outbox/sender/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectedSignature computes the signature header value the way a receiving
// endpoint would: HMAC-SHA256 over the body, uppercase hyphen-separated hex.
func expectedSignature(t *testing.T, body []byte, secret string) string {
	t.Helper()

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := mac.Sum(nil)

	parts := make([]string, len(digest))
	for i, b := range digest {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return "sha256=" + strings.Join(parts, "-")
}

func validInput(uri string) sender.Input {
	return sender.Input{
		WebhookID:      uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		SubscriptionID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		URI:            uri,
		Event:          "user.created",
		Data:           `{"x":1}`,
		Secret:         "s3cr3t",
	}
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing webhook id - returns false, no insert", func(t *testing.T) {
		tracker := mocks.NewTracker(t)
		service := sender.NewService(tracker, time.Second, quietLogger())

		input := validInput("http://example.com")
		input.WebhookID = uuid.Nil

		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("missing subscription id - returns false, no insert", func(t *testing.T) {
		tracker := mocks.NewTracker(t)
		service := sender.NewService(tracker, time.Second, quietLogger())

		input := validInput("http://example.com")
		input.SubscriptionID = uuid.Nil

		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestSendEndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("success - signed body, attempt number, recorded outcome", func(t *testing.T) {
		var sentBody []byte
		var sentSignature, sentContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			sentBody = body
			sentSignature = r.Header.Get(signature.Header)
			sentContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, sender.MatchWorkItem(func(item sender.WorkItem) bool {
			return item.WebhookID == input.WebhookID &&
				item.SubscriptionID == input.SubscriptionID &&
				!item.Completed()
		})).Return("wi-1", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(2, nil)
		tracker.On("Get", mock.Anything, (*uuid.UUID)(nil), "wi-1").Return(sender.WorkItem{
			ID:             "wi-1",
			WebhookID:      input.WebhookID,
			SubscriptionID: input.SubscriptionID,
		}, nil)
		tracker.On("Update", mock.Anything, sender.MatchWorkItem(func(item sender.WorkItem) bool {
			return item.ID == "wi-1" &&
				item.ResponseStatusCode == http.StatusOK &&
				item.ResponseContent == "ok"
		})).Return(nil)

		service := sender.NewService(tracker, time.Second, quietLogger())
		ok := service.Send(ctx, input)

		assert.True(t, ok)
		assert.Equal(t, `{"Event":"user.created","Data":{"x":1},"Attempt":3}`, string(sentBody))
		assert.Equal(t, "application/json", sentContentType)
		assert.Equal(t, expectedSignature(t, sentBody, "s3cr3t"), sentSignature)
		tracker.AssertExpectations(t)
	})

	t.Run("failure - non-2xx recorded and reported false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("wi-2", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(0, nil)
		tracker.On("Get", mock.Anything, (*uuid.UUID)(nil), "wi-2").Return(sender.WorkItem{ID: "wi-2"}, nil)
		tracker.On("Update", mock.Anything, sender.MatchWorkItem(func(item sender.WorkItem) bool {
			return item.ResponseStatusCode == http.StatusInternalServerError &&
				item.ResponseContent == "boom"
		})).Return(nil)

		service := sender.NewService(tracker, time.Second, quietLogger())
		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertExpectations(t)
	})

	t.Run("timeout - synthesized 408 outcome recorded", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("wi-3", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(0, nil)
		tracker.On("Get", mock.Anything, (*uuid.UUID)(nil), "wi-3").Return(sender.WorkItem{ID: "wi-3"}, nil)
		tracker.On("Update", mock.Anything, sender.MatchWorkItem(func(item sender.WorkItem) bool {
			return item.ResponseStatusCode == http.StatusRequestTimeout &&
				item.ResponseContent == "Request Timeout"
		})).Return(nil)

		service := sender.NewService(tracker, 50*time.Millisecond, quietLogger())
		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertExpectations(t)
	})

	t.Run("transport failure - work item left without outcome", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Connection refused from here on

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("wi-4", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(0, nil)

		service := sender.NewService(tracker, time.Second, quietLogger())
		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid header - delivery fails after insert", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should reach the endpoint")
		}))
		defer server.Close()

		input := validInput(server.URL)
		input.Headers = map[string]string{"bad header": "value"}

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("wi-5", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(0, nil)

		service := sender.NewService(tracker, time.Second, quietLogger())
		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("insert failure - aborts before any network call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should reach the endpoint")
		}))
		defer server.Close()

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("", fmt.Errorf("store unavailable"))

		service := sender.NewService(tracker, time.Second, quietLogger())
		ok := service.Send(ctx, input)

		assert.False(t, ok)
		tracker.AssertNotCalled(t, "CountAttempts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no persistence configured - noop tracker still delivers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		service := sender.NewService(nil, time.Second, quietLogger())
		ok := service.Send(ctx, validInput(server.URL))

		assert.True(t, ok)
	})
}

func TestSendAsync(t *testing.T) {
	ctx := context.Background()

	t.Run("identical behavior to Send", func(t *testing.T) {
		var sentBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			sentBody = body
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		input := validInput(server.URL)

		tracker := mocks.NewTracker(t)
		tracker.On("Insert", mock.Anything, mock.Anything).Return("wi-6", nil)
		tracker.On("CountAttempts", mock.Anything, (*uuid.UUID)(nil), input.WebhookID, input.SubscriptionID).Return(2, nil)
		tracker.On("Get", mock.Anything, (*uuid.UUID)(nil), "wi-6").Return(sender.WorkItem{ID: "wi-6"}, nil)
		tracker.On("Update", mock.Anything, mock.Anything).Return(nil)

		service := sender.NewService(tracker, time.Second, quietLogger())

		select {
		case ok := <-service.SendAsync(ctx, input):
			assert.True(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for async delivery")
		}

		assert.Equal(t, `{"Event":"user.created","Data":{"x":1},"Attempt":3}`, string(sentBody))
		tracker.AssertExpectations(t)
	})

	t.Run("validation failures surface on the channel", func(t *testing.T) {
		tracker := mocks.NewTracker(t)
		service := sender.NewService(tracker, time.Second, quietLogger())

		input := validInput("http://example.com")
		input.WebhookID = uuid.Nil

		select {
		case ok := <-service.SendAsync(ctx, input):
			assert.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for async delivery")
		}
	})
}
