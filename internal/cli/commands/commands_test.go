package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/cli/config"
	"github.com/rinkside/rinkside/internal/cli/shell"
	"github.com/rinkside/rinkside/internal/cli/update"
	"github.com/rinkside/rinkside/internal/cli/userconfig"
)

// fakeBackend logs every request it serves after login
type fakeBackend struct {
	*http.ServeMux
	url string

	mu       sync.Mutex
	requests []string
}

func newFakeBackend(t *testing.T, role string) *fakeBackend {
	t.Helper()
	b := &fakeBackend{ServeMux: http.NewServeMux()}
	b.HandleFunc("POST /Account/login", func(w http.ResponseWriter, r *http.Request) {
		var body client.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		fmt.Fprintf(w, `{"token":"tok","user":{"id":"u1","role":%q}}`, role)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Account/login" {
			b.mu.Lock()
			b.requests = append(b.requests, r.Method+" "+r.URL.Path)
			b.mu.Unlock()
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"), "%s %s", r.Method, r.URL.Path)
		}
		b.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	b.url = srv.URL
	return b
}

func (b *fakeBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) opts(out *bytes.Buffer) []Option {
	return []Option{
		WithAPIURL(b.url),
		WithCredentials("Jana", "Novak", "secret"),
		WithOutput(out),
	}
}

func TestRunLogin(t *testing.T) {
	b := newFakeBackend(t, "Coach")
	var out bytes.Buffer

	require.NoError(t, runLogin(b.opts(&out)...))

	assert.Contains(t, out.String(), "✓ Login successful!")
	assert.Contains(t, out.String(), "Role:  Coach")
	assert.Contains(t, out.String(), "Route: coach")
}

func TestRunLogin_UnknownRoleResolves(t *testing.T) {
	for _, role := range []string{"Admin", ""} {
		t.Run("role="+role, func(t *testing.T) {
			b := newFakeBackend(t, role)
			var out bytes.Buffer

			require.NoError(t, runLogin(b.opts(&out)...))
			assert.Contains(t, out.String(), "Route: resolving")
		})
	}
}

func TestRunLogin_BadPassword(t *testing.T) {
	b := newFakeBackend(t, "Coach")
	var out bytes.Buffer

	err := runLogin(WithAPIURL(b.url), WithCredentials("Jana", "Novak", "wrong"), WithOutput(&out))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.ErrorContains(t, err, "login failed")
}

func TestRunLogin_MissingName(t *testing.T) {
	t.Setenv("RINKSIDE_NAME", "")
	b := newFakeBackend(t, "Coach")

	err := runLogin(WithAPIURL(b.url), WithCredentials("", "Novak", "secret"), WithOutput(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "name and surname are required")
}

func TestRunSkatersList(t *testing.T) {
	b := newFakeBackend(t, "Coach")
	b.HandleFunc("GET /Skaters", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"s1","name":"Ana","surname":"Kovac","categoryName":"Junior"}]`))
	})
	var out bytes.Buffer

	require.NoError(t, runSkatersList(b.opts(&out)...))

	assert.Contains(t, out.String(), "CATEGORY")
	assert.Contains(t, out.String(), "Ana")
	assert.Contains(t, out.String(), "Junior")
}

func TestRunSkatersList_SkaterIsRejectedLocally(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	var out bytes.Buffer

	err := runSkatersList(b.opts(&out)...)

	assert.ErrorIs(t, err, access.ErrForbidden)
	assert.Empty(t, b.seen())
}

func TestRunFilesDelete_SkaterIsRejectedLocally(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("DELETE /EducationalFile/f1", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	err := runFilesDelete("f1", b.opts(&bytes.Buffer{})...)

	assert.ErrorIs(t, err, access.ErrForbidden)
	assert.Empty(t, b.seen())
}

func TestRunFilesDelete_Coach(t *testing.T) {
	b := newFakeBackend(t, "Coach")
	b.HandleFunc("DELETE /EducationalFile/f1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	var out bytes.Buffer

	require.NoError(t, runFilesDelete("f1", b.opts(&out)...))
	assert.Contains(t, out.String(), "✓ Deleted file f1")
	assert.Equal(t, []string{"DELETE /EducationalFile/f1"}, b.seen())
}

func TestRunTrainingCreate_ValidationSendsNothing(t *testing.T) {
	b := newFakeBackend(t, "Skater")

	err := runTrainingCreate(trainingInput{kind: "OnIce", elements: []string{"1"}}, b.opts(&bytes.Buffer{})...)

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("duration"))
	assert.Empty(t, b.seen())
}

func TestRunTrainingCreate_BadDate(t *testing.T) {
	b := newFakeBackend(t, "Skater")

	err := runTrainingCreate(trainingInput{date: "21.07.2025"}, b.opts(&bytes.Buffer{})...)
	assert.ErrorContains(t, err, "unrecognised date")
}

func TestRunTrainingUpdate_KeepsUnsetFields(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Training/t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t1","date":"2025-07-21T00:00:00Z","duration":45,"type":"OnIce","elements":"1,2","notes":"old"}`))
	})

	var body map[string]any
	b.HandleFunc("PUT /Training/t1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, runTrainingUpdate("t1", trainingInput{duration: 60}, b.opts(&bytes.Buffer{})...))

	assert.Equal(t, float64(60), body["duration"])
	assert.Equal(t, "OnIce", body["type"])
	assert.Equal(t, "1,2", body["elements"])
	assert.Equal(t, "old", body["notes"])
	assert.Equal(t, "2025-07-21T00:00:00Z", body["date"])
}

func TestRunTrainingShow_ElementNames(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Training/t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t1","date":"2025-07-21","duration":45,"type":"OnIce","elements":"1,99"}`))
	})
	b.HandleFunc("GET /Training/elements", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","name":"Axel"}]`))
	})
	var out bytes.Buffer

	require.NoError(t, runTrainingShow("t1", b.opts(&out)...))
	assert.Contains(t, out.String(), "Elements: Axel, 99")
}

func TestRunTrainingAnalytics(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Training", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","date":"2025-07-21","duration":30,"type":"OnIce"},{"id":"2","date":"2025-07-23","duration":60,"type":"OffIce"}]`))
	})
	var out bytes.Buffer

	require.NoError(t, runTrainingAnalytics(b.opts(&out)...))
	assert.Contains(t, out.String(), "07/21 │")
	assert.Contains(t, out.String(), "07/23 │")
	assert.Contains(t, out.String(), "Total: 90 min over 2 day(s)")
}

func TestRunProgramsComment_CoachOnly(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	err := runProgramsComment("p1", "nice edges", b.opts(&bytes.Buffer{})...)
	assert.ErrorIs(t, err, access.ErrForbidden)

	coach := newFakeBackend(t, "Coach")
	var body client.CommentRequest
	coach.HandleFunc("POST /Program/p1/comments", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	})
	require.NoError(t, runProgramsComment("p1", "nice edges", coach.opts(&bytes.Buffer{})...))
	assert.Equal(t, "nice edges", body.Comment)
}

func TestRunMusicPlay(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Music/program/p1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"f1","fileName":"a.mp3","fileUrl":"/files/f1"},{"id":"f2","fileName":"b.mp3","fileUrl":"/files/f2"}]`))
	})

	var opened string
	opts := append(b.opts(&bytes.Buffer{}), WithURLOpener(func(u string) error {
		opened = u
		return nil
	}))

	require.NoError(t, runMusicPlay("p1", "f2", opts...))
	assert.Equal(t, b.url+"/files/f2", opened)

	require.NoError(t, runMusicPlay("p1", "", opts...))
	assert.Equal(t, b.url+"/files/f1", opened)

	assert.ErrorContains(t, runMusicPlay("p1", "nope", opts...), "not found")
}

func TestRunMusicUpload(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("POST /Music/program/p1/upload", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("musicFile")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "audio/mpeg", hdr.Header.Get("Content-Type"))
		fmt.Fprintf(w, `{"id":"f1","fileName":%q,"contentType":"audio/mpeg","fileSize":%d}`, hdr.Filename, hdr.Size)
	})

	path := filepath.Join(t.TempDir(), "free.mp3")
	require.NoError(t, os.WriteFile(path, append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...), 0644))

	var out bytes.Buffer
	require.NoError(t, runMusicUpload("p1", path, b.opts(&out)...))
	assert.Contains(t, out.String(), "✓ Uploaded free.mp3 (audio/mpeg")
}

func TestRunEducationList_Search(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Education", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"m1","title":"Edge work"},{"id":"m2","title":"Jump technique"}]`))
	})
	var out bytes.Buffer

	require.NoError(t, runEducationList("EDGE", b.opts(&out)...))
	assert.Contains(t, out.String(), "Edge work")
	assert.NotContains(t, out.String(), "Jump technique")
}

func TestRunProfileUpdate(t *testing.T) {
	b := newFakeBackend(t, "Skater")
	b.HandleFunc("GET /Profile", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Ana","surname":"Kovac"}`))
	})
	b.HandleFunc("PUT /Profile", func(w http.ResponseWriter, r *http.Request) {
		var req client.ProfileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u1", req.ID)
		json.NewEncoder(w).Encode(client.Profile{ID: req.ID, Name: req.Name, Surname: req.Surname})
	})
	var out bytes.Buffer

	require.NoError(t, runProfileUpdate("Anna", "Kovac", b.opts(&out)...))
	assert.Contains(t, out.String(), "✓ Profile updated: Anna Kovac")
}

func TestRunCategories_Public(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Category", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"c1","name":"Junior"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	var out bytes.Buffer

	require.NoError(t, runCategories(WithAPIURL(srv.URL), WithOutput(&out)))
	assert.Contains(t, out.String(), "Junior")
}

func TestRunRegister_SkaterNeedsCategoryAndCoach(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Account/register", func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid registration must not be sent")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	err := runRegister("Skater", "", "", WithAPIURL(srv.URL), WithCredentials("Ana", "Kovac", "secret"), WithOutput(&bytes.Buffer{}))

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("categoryId"))
	assert.True(t, verr.Has("coachId"))
}

func TestRunRegister_Coach(t *testing.T) {
	mux := http.NewServeMux()
	var body map[string]any
	mux.HandleFunc("POST /Account/register", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	var out bytes.Buffer

	err := runRegister("Coach", "c1", "x", WithAPIURL(srv.URL), WithCredentials("Jana", "Novak", "secret"), WithOutput(&out))
	require.NoError(t, err)

	assert.Equal(t, "Coach", body["role"])
	assert.NotContains(t, body, "categoryId")
	assert.NotContains(t, body, "coachId")
	assert.Contains(t, out.String(), "✓ Registered Jana Novak as Coach")
}

func TestRunInit(t *testing.T) {
	t.Chdir(t.TempDir())
	var out bytes.Buffer

	require.NoError(t, runInit("rink.example.com", WithOutput(&out)))
	assert.Contains(t, out.String(), "✓ Created ./rinkside.yaml with backend https://rink.example.com (production)")

	out.Reset()
	require.NoError(t, runInit("http://localhost:8080", WithOutput(&out)))
	assert.Contains(t, out.String(), "✓ Added backend http://localhost:8080 (backend-2)")

	out.Reset()
	require.NoError(t, runInit("https://rink.example.com", WithOutput(&out)))
	assert.Contains(t, out.String(), "already exists")

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Len(t, cfg.Backends, 2)
}

func TestRunInit_InvalidURL(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, runInit("ftp://rink.example.com", WithOutput(&bytes.Buffer{})))
	_, err := os.Stat(config.ConfigFileName)
	assert.True(t, os.IsNotExist(err))
}

func TestRunSelectBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, config.Save(config.ConfigFileName, &config.Config{Backends: []config.Backend{
		{URL: "https://rink.example.com", Alias: "production"},
		{URL: "http://localhost:8080", Alias: "dev"},
	}}))
	var out bytes.Buffer

	require.NoError(t, runSelectBackend("dev", WithOutput(&out)))
	assert.Contains(t, out.String(), "Selected backend: dev (http://localhost:8080)")

	selected, err := userconfig.GetSelectedBackend()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", selected)

	assert.Error(t, runSelectBackend("staging", WithOutput(&out)))
}

type abortingPrompter struct{}

func (abortingPrompter) Select(string, []string) (int, error) { return 0, shell.ErrAborted }
func (abortingPrompter) Input(string, string) (string, error) { return "", shell.ErrAborted }
func (abortingPrompter) Password(string) (string, error)      { return "", shell.ErrAborted }
func (abortingPrompter) Confirm(string) (bool, error)         { return false, shell.ErrAborted }

func TestRunShell_QuitsOnAbort(t *testing.T) {
	b := newFakeBackend(t, "Coach")
	var out bytes.Buffer

	require.NoError(t, RunShell(WithAPIURL(b.url), WithOutput(&out), WithPrompter(abortingPrompter{})))
	assert.Contains(t, out.String(), "Connected to "+b.url)
	assert.Empty(t, b.seen())
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVersion("v1.2.3", false, update.NewChecker(), WithOutput(&out)))
	assert.Equal(t, "rinkside version v1.2.3\n", out.String())
}

func TestPickTrack(t *testing.T) {
	_, err := pickTrack(nil, "")
	assert.Error(t, err)

	files := []client.File{{ID: "a"}, {ID: "b"}}
	got, err := pickTrack(files, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}
