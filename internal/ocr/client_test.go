package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"openhouse/internal/config"
)

func testClient(baseURL, apiKey string) *Client {
	return NewClient(&config.Config{
		OCRAPIBase:   baseURL,
		OCRAPIKey:    apiKey,
		OCRModel:     "test-vision-model",
		OCRMaxTokens: 2000,
		OCRTimeout:   5,
	}, zap.NewNop())
}

func TestExtractText(t *testing.T) {
	var gotBody chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"$310,000\n14 Ballard Lane"}}]}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL, "test-key")

	text, err := client.ExtractText(context.Background(), "data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "$310,000\n14 Ballard Lane" {
		t.Errorf("text = %q", text)
	}

	if gotBody.Model != "test-vision-model" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 1 || len(gotBody.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", gotBody.Messages)
	}
	image := gotBody.Messages[0].Content[1]
	if image.ImageURL == nil {
		t.Fatal("image part missing")
	}
	// The data-URL prefix from the upload is replaced with the jpeg one
	// the API expects; the payload itself is untouched.
	if image.ImageURL.URL != "data:image/jpeg;base64,aGVsbG8=" {
		t.Errorf("image url = %q", image.ImageURL.URL)
	}
}

func TestExtractText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := testClient(srv.URL, "test-key")

	if _, err := client.ExtractText(context.Background(), "aGVsbG8="); err == nil {
		t.Fatal("expected error for non-200 response")
	} else if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v; want status in message", err)
	}
}

func TestExtractText_Disabled(t *testing.T) {
	client := testClient("http://localhost:0", "")

	if client.Enabled() {
		t.Error("client with no API key reports enabled")
	}
	if _, err := client.ExtractText(context.Background(), "aGVsbG8="); err == nil {
		t.Error("expected error when not configured")
	}
}
