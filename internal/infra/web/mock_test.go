package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"subscription-storefront/internal/config"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/infra/memory"
	"subscription-storefront/internal/infra/storage"
	"subscription-storefront/internal/usecase"

	"github.com/rs/zerolog"
)

type captureNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *captureNotifier) Send(ctx context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
	return nil
}

func (n *captureNotifier) Texts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.texts))
	copy(out, n.texts)
	return out
}

// testEnv wires a full router over in-memory repositories, a throwaway
// uploads dir and a capturing notifier.
type testEnv struct {
	ts         *httptest.Server
	client     *http.Client
	uploadsDir string
	notifier   *captureNotifier
	orders     *memory.OrderRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	notifier := &captureNotifier{}

	catalog, err := model.NewCatalog(
		[]model.Subscription{
			{ID: 1, Name: "Netflix", BasePrice: 125},
			{ID: 2, Name: "Shahid VIP", BasePrice: 65},
		},
		map[int][]model.Plan{
			1: {
				{Key: "monthly", Name: "Netflix شهري", Duration: model.DurationMonthly, Price: 125},
				{Key: "yearly", Name: "Netflix سنوي", Duration: model.DurationYearly, Price: 1200},
			},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	uploadsDir := t.TempDir()
	shots, err := storage.NewScreenshotStore(uploadsDir)
	if err != nil {
		t.Fatalf("screenshot store: %v", err)
	}

	staticDir := t.TempDir()
	for _, f := range []string{"index.html", "login.html", "dashboard.html"} {
		if err := os.WriteFile(filepath.Join(staticDir, f), []byte("<html>"+f+"</html>"), 0o600); err != nil {
			t.Fatalf("write page: %v", err)
		}
	}

	orderRepo := memory.NewOrderRepo()
	orderUC := usecase.NewOrderUseCase(orderRepo, catalog, notifier, nil, "http://localhost:3000", true, true, &logger)
	suggestionUC := usecase.NewSuggestionUseCase(memory.NewSuggestionRepo(), notifier, nil, true, &logger)
	inquiryUC := usecase.NewInquiryUseCase(memory.NewInquiryRepo(), notifier, nil, true, &logger)

	cfg := &config.Config{}
	cfg.Admin = config.AdminConfig{Username: "admin", Password: "secret"}
	cfg.Server.StaticDir = staticDir

	auth := NewAuthManager("test-secret", false, "", time.Hour)
	srv := NewServer(orderUC, suggestionUC, inquiryUC, catalog, auth, NewCSRF(false), shots, nil, cfg, &logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{ts: ts, client: client, uploadsDir: uploadsDir, notifier: notifier, orders: orderRepo}
}

func (e *testEnv) csrfToken(t *testing.T) string {
	t.Helper()
	resp, err := e.client.Get(e.ts.URL + "/api/csrf-token")
	if err != nil {
		t.Fatalf("csrf token: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Token string `json:"csrfToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if body.Token == "" {
		t.Fatal("empty csrf token")
	}
	return body.Token
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any, csrf string) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if csrf != "" {
		req.Header.Set(csrfHeaderName, csrf)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp := e.postJSON(t, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "secret",
	}, e.csrfToken(t))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
}

func validOrderFields() map[string]string {
	return map[string]string{
		"subscriptionId": "1",
		"planKey":        "monthly",
		"accountName":    "Ahmed",
		"email":          "ahmed@example.com",
		"phone":          "01000000000",
		"transferNumber": "12345",
	}
}

// pngPayload returns a file body that passes content sniffing as image/png.
func pngPayload(filler string) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), filler...)
}

// multipartBody builds an order submission; a non-empty fileName attaches a
// screenshot part with the given content type.
func multipartBody(t *testing.T, fields map[string]string, fileName, fileType string, fileBody []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, screenshotField, fileName))
		h.Set("Content-Type", fileType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(fileBody); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func (e *testEnv) submitOrder(t *testing.T, fields map[string]string, fileName, fileType string, fileBody []byte) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileName, fileType, fileBody)
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/api/subscription-order", body)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(csrfHeaderName, e.csrfToken(t))
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func (e *testEnv) storedScreenshots(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.uploadsDir)
	if err != nil {
		t.Fatalf("read uploads dir: %v", err)
	}
	var names []string
	for _, ent := range entries {
		names = append(names, ent.Name())
	}
	return names
}
