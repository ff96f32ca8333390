package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photo-hunt/internal/config"
	"photo-hunt/internal/db"
	"photo-hunt/internal/feed"
	"photo-hunt/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminSlug = "backstage"
	testPhotoData = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMBAp4pWZkAAAAASUVORK5CYII="
)

type testEnv struct {
	srv    *Server
	ts     *httptest.Server
	conn   *gorm.DB
	bus    *feed.Bus
	photos storage.Store
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	return f.err
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.AdminSlug = testAdminSlug
	cfg.PublicBaseURL = "https://hunt.example.com"
	cfg.ClaimsPerMinute = 1000
	cfg.CreatesPerMinute = 1000
	return cfg
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func openTestBucket(t *testing.T) *storage.Bucket {
	t.Helper()
	bucket, err := storage.Open(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	t.Cleanup(func() {
		_ = bucket.Close()
	})
	return bucket
}

// newTestEnv starts a server over an in-memory database and bucket. photos
// may be nil to use a fresh mem:// bucket.
func newTestEnv(t *testing.T, cfg config.Config, photos storage.Store) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := openTestDB(t)
	if photos == nil {
		photos = openTestBucket(t)
	}
	bus := feed.NewBus()
	srv := New(conn, photos, bus, cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{srv: srv, ts: ts, conn: conn, bus: bus, photos: photos}
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func adminPath(path string) string {
	return "/api/admin/" + testAdminSlug + path
}

func gamePath(gameID uint, path string) string {
	return adminPath(fmt.Sprintf("/games/%d%s", gameID, path))
}

func createTestGame(t *testing.T, ts *httptest.Server, title, code string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, adminPath("/games"), map[string]string{
		"title": title,
		"code":  code,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	game := body["game"].(map[string]any)
	return uint(game["id"].(float64))
}

func addTestTeam(t *testing.T, ts *httptest.Server, gameID uint, name string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID, "/teams"), map[string]string{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	team := body["team"].(map[string]any)
	return uint(team["id"].(float64))
}

func addTestKeyword(t *testing.T, ts *httptest.Server, gameID uint, text string, points any) map[string]any {
	t.Helper()
	payload := map[string]any{"text": text}
	if points != nil {
		payload["points"] = points
	}
	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID, "/keywords"), payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["keyword"].(map[string]any)
}

func keywordID(keyword map[string]any) uint {
	return uint(keyword["id"].(float64))
}

func setTestStatus(t *testing.T, ts *httptest.Server, gameID uint, status string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID, "/status"), map[string]string{"status": status})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["game"].(map[string]any)
}

func postClaim(t *testing.T, ts *httptest.Server, code string, teamID, keywordID uint) *http.Response {
	t.Helper()
	return doRequest(t, ts, http.MethodPost, "/api/g/"+code+"/claims", map[string]any{
		"team_id":    teamID,
		"keyword_id": keywordID,
		"photo_data": testPhotoData,
		"filename":   "robot.png",
	})
}

func postMultipartClaim(t *testing.T, ts *httptest.Server, code string, teamID, keywordID uint, filename string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("team_id", fmt.Sprint(teamID))
	_ = writer.WriteField("keyword_id", fmt.Sprint(keywordID))
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/g/"+code+"/claims", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

// fetchScores returns score by team name.
func fetchScores(t *testing.T, ts *httptest.Server, code string) map[string]int {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/g/"+code+"/scores", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	scores := make(map[string]int)
	for _, raw := range body["scores"].([]any) {
		entry := raw.(map[string]any)
		scores[entry["name"].(string)] = int(entry["score"].(float64))
	}
	return scores
}

func countClaims(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&db.Claim{}).Count(&count).Error; err != nil {
		t.Fatalf("count claims: %v", err)
	}
	return count
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	return doRequestWithClient(t, http.DefaultClient, ts, method, path, payload)
}

func doRequestWithClient(t *testing.T, client *http.Client, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func doRequestNoRedirect(t *testing.T, ts *httptest.Server, method, path string) *http.Response {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return doRequestWithClient(t, client, ts, method, path, nil)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
