package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// rewriteTransport redirects all requests to a test server URL.
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.target[len("http://"):]
	return t.base.RoundTrip(req)
}

func testClient(apiKey string, serverURL string) *Client {
	httpClient := &http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, target: serverURL}}
	return NewClient(apiKey, "contact@samandjonah.com", WithHTTPClient(httpClient))
}

func TestSend(t *testing.T) {
	var received resendEmail
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "test-id"}`))
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)
	err := client.Send([]string{"jane@example.com", "john@example.com"}, "You're invited", "<html></html>")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if len(received.To) != 2 || received.To[0] != "jane@example.com" {
		t.Errorf("To = %v", received.To)
	}
	if received.From != "contact@samandjonah.com" {
		t.Errorf("From = %q", received.From)
	}
	if received.Subject != "You're invited" {
		t.Errorf("Subject = %q", received.Subject)
	}
}

func TestSendNotConfigured(t *testing.T) {
	client := NewClient("", "contact@samandjonah.com")
	if err := client.Send([]string{"jane@example.com"}, "subj", "body"); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}

func TestSendNoRecipients(t *testing.T) {
	client := NewClient("key", "contact@samandjonah.com")
	if err := client.Send(nil, "subj", "body"); err == nil {
		t.Fatal("expected error for empty recipient list")
	}
}

func TestSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)
	if err := client.Send([]string{"jane@example.com"}, "subj", "body"); err == nil {
		t.Fatal("expected error for API failure")
	}
}

func TestConfigured(t *testing.T) {
	if !NewClient("key", "from@example.com").Configured() {
		t.Error("expected Configured() = true")
	}
	if NewClient("", "from@example.com").Configured() {
		t.Error("expected Configured() = false")
	}
}

func TestJoinNames(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "Guest"},
		{[]string{"Jane"}, "Jane"},
		{[]string{"Jane", "John"}, "Jane & John"},
		{[]string{"Jane", "John", "Amy"}, "Jane, John & Amy"},
	}
	for _, tt := range tests {
		if got := JoinNames(tt.names); got != tt.want {
			t.Errorf("JoinNames(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestRenderSaveTheDate(t *testing.T) {
	html := RenderSaveTheDate(TemplateVars{
		GuestNames: []string{"Jane", "John"},
		WebsiteURL: "https://samandjonah.com",
		PixelURL:   "https://api.samandjonah.com/api/track/abc/open.png",
	})

	for _, want := range []string{
		"Dear Jane & John,",
		"Saturday, August 15, 2026",
		"Rouge Restaurant",
		`https://samandjonah.com`,
		`img src="https://api.samandjonah.com/api/track/abc/open.png"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("save-the-date missing %q", want)
		}
	}
}

func TestRenderInvitationLinks(t *testing.T) {
	html := RenderInvitation(TemplateVars{
		GuestNames:  []string{"Jane"},
		WebsiteURL:  "https://samandjonah.com",
		VenueMapURL: "https://maps.example.com/rouge",
		HotelURL:    "https://samandjonah.com/hotels",
	})

	for _, want := range []string{
		"Dear Jane,",
		"https://maps.example.com/rouge",
		"https://samandjonah.com/hotels",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("invitation missing %q", want)
		}
	}
}

func TestRenderWithoutPixel(t *testing.T) {
	html := RenderSaveTheDate(TemplateVars{GuestNames: []string{"Jane"}})
	if strings.Contains(html, `width="1" height="1"`) {
		t.Error("expected no tracking pixel when PixelURL is empty")
	}
}
