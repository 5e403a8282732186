package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/session"
)

type answerKind int

const (
	kindSelect answerKind = iota
	kindText
	kindConfirm
)

type answer struct {
	kind  answerKind
	value string
	yes   bool
}

func choose(item string) answer { return answer{kind: kindSelect, value: item} }
func text(v string) answer      { return answer{kind: kindText, value: v} }
func confirm(yes bool) answer   { return answer{kind: kindConfirm, yes: yes} }

// scripted answers prompts from a fixed script and records every menu it
// was shown. An exhausted script aborts.
type scripted struct {
	t       *testing.T
	answers []answer
	menus   [][]string
}

func (p *scripted) next(kind answerKind, label string) (answer, bool) {
	if len(p.answers) == 0 {
		return answer{}, false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a.kind != kind {
		p.t.Errorf("prompt %q: script has answer kind %d, want %d", label, a.kind, kind)
		return answer{}, false
	}
	return a, true
}

func (p *scripted) Select(label string, items []string) (int, error) {
	p.menus = append(p.menus, items)
	a, ok := p.next(kindSelect, label)
	if !ok {
		return 0, ErrAborted
	}
	for i, item := range items {
		if item == a.value {
			return i, nil
		}
	}
	p.t.Errorf("prompt %q: %q not among %v", label, a.value, items)
	return 0, ErrAborted
}

func (p *scripted) Input(label, initial string) (string, error) {
	a, ok := p.next(kindText, label)
	if !ok {
		return "", ErrAborted
	}
	return a.value, nil
}

func (p *scripted) Password(label string) (string, error) {
	return p.Input(label, "")
}

func (p *scripted) Confirm(label string) (bool, error) {
	a, ok := p.next(kindConfirm, label)
	if !ok {
		return false, ErrAborted
	}
	return a.yes, nil
}

func loginAs(name string) []answer {
	return []answer{choose("Login"), text(name), text("Novak"), text("secret")}
}

// newBackend serves a login endpoint returning role and whatever else the
// test registers on mux.
func newBackend(t *testing.T, role string) (*http.ServeMux, string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Account/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":"tok-%s","user":{"id":"u1","role":%q,"coachId":"c1"}}`, role, role)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return mux, srv.URL
}

func runShell(t *testing.T, baseURL string, answers []answer, opts ...Option) (*scripted, *session.Session, string) {
	t.Helper()
	sess := session.New()
	p := &scripted{t: t, answers: answers}
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out)}, opts...)

	sh := New(sess, client.New(baseURL, sess), p, opts...)
	require.NoError(t, sh.Run())
	assert.Empty(t, p.answers, "script not fully consumed")
	return p, sess, out.String()
}

func TestShell_LoginReroutesToCoachMenu(t *testing.T) {
	_, url := newBackend(t, "Coach")

	script := append(loginAs("Jana"), choose("Home"), choose("Quit"))
	p, sess, out := runShell(t, url, script)

	assert.Equal(t, []string{"Welcome", "Login", "Register", "Quit"}, p.menus[0])
	assert.Equal(t, []string{"Home", "Skaters", "Programs", "Education", "Profile", "Logout", "Quit"}, p.menus[1])
	assert.Contains(t, out, "✓ Signed in as Coach")
	assert.Contains(t, out, "Coach ID:  c1")
	assert.Contains(t, out, "Skater ID: Not assigned")
	assert.True(t, sess.Snapshot().Authenticated)
}

func TestShell_SkaterMenu(t *testing.T) {
	_, url := newBackend(t, "Skater")

	script := append(loginAs("Ana"), choose("Programs"), choose("Back"), choose("Quit"))
	p, _, _ := runShell(t, url, script)

	assert.Equal(t, []string{"Home", "Training", "Programs", "Education", "Profile", "Logout", "Quit"}, p.menus[1])
	assert.Equal(t, []string{
		"List programs", "Program details", "Create program", "Edit program",
		"Delete program", "Upload music", "Play music", "Back",
	}, p.menus[2])
}

func TestShell_CoachProgramActions(t *testing.T) {
	_, url := newBackend(t, "Coach")

	script := append(loginAs("Jana"), choose("Programs"), choose("Back"), choose("Quit"))
	p, _, _ := runShell(t, url, script)

	assert.Equal(t, []string{"List programs", "Program details", "Comment on program", "Back"}, p.menus[2])
}

func TestShell_LoginFailureShowsAlertAndKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Account/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	script := append(loginAs("Jana"), choose("Quit"))
	p, sess, out := runShell(t, srv.URL, script)

	assert.Contains(t, out, "✗ Login failed: Invalid credentials")
	assert.False(t, sess.Snapshot().Authenticated)
	assert.Equal(t, p.menus[0], p.menus[1])
}

func TestShell_UnknownRoleResolves(t *testing.T) {
	_, url := newBackend(t, "Admin")

	script := append(loginAs("Root"), choose("Logout"), choose("Quit"))
	p, sess, out := runShell(t, url, script)

	assert.Equal(t, []string{"Logout", "Quit"}, p.menus[1])
	assert.Contains(t, out, "Resolving account")
	assert.Contains(t, out, "Signed out.")
	assert.Equal(t, []string{"Welcome", "Login", "Register", "Quit"}, p.menus[2])
	assert.False(t, sess.Snapshot().Authenticated)
}

func TestShell_TrainingAnalytics(t *testing.T) {
	mux, url := newBackend(t, "Skater")
	mux.HandleFunc("GET /Training", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-Skater", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"id":"1","date":"2025-07-21T08:00:00Z","duration":45,"type":"OnIce","elements":"1,2"},
			{"id":"2","date":"2025-07-21T17:00:00Z","duration":15,"type":"OffIce","elements":"101"}
		]`))
	})

	script := append(loginAs("Ana"), choose("Training"), choose("Analytics"), choose("Back"), choose("Quit"))
	_, _, out := runShell(t, url, script)

	assert.Contains(t, out, "07/21 │")
	assert.Contains(t, out, "Total: 60 min over 1 day(s)")
}

func TestShell_LogTraining(t *testing.T) {
	mux, url := newBackend(t, "Skater")
	mux.HandleFunc("GET /Training/elements", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OnIce", r.URL.Query().Get("type"))
		w.Write([]byte(`[{"id":"1","name":"Axel"},{"id":"2","name":"Lutz"},{"id":"3","name":"Salchow"}]`))
	})

	var posted map[string]any
	mux.HandleFunc("POST /Training", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
	})

	script := append(loginAs("Ana"),
		choose("Training"), choose("Log training"),
		choose("OnIce"), text("2025-07-21"), text("45"),
		choose("[ ] Axel"), choose("[ ] Salchow"), choose("Done"),
		text("felt good"),
		choose("Back"), choose("Quit"),
	)
	_, _, out := runShell(t, url, script)

	assert.Contains(t, out, "✓ Logged 45 min OnIce training on 2025-07-21")
	assert.Equal(t, "2025-07-21T00:00:00Z", posted["date"])
	assert.Equal(t, "1,3", posted["elements"])
	assert.Equal(t, float64(45), posted["duration"])
	assert.Equal(t, "felt good", posted["notes"])
}

func TestShell_TrainingValidationShowsAlert(t *testing.T) {
	mux, url := newBackend(t, "Skater")
	mux.HandleFunc("GET /Training/elements", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","name":"Axel"}]`))
	})
	mux.HandleFunc("POST /Training", func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid training must not be sent")
	})

	script := append(loginAs("Ana"),
		choose("Training"), choose("Log training"),
		choose("OnIce"), text("2025-07-21"), text("0"),
		choose("Done"), text(""),
		choose("Back"), choose("Quit"),
	)
	_, _, out := runShell(t, url, script)

	assert.Contains(t, out, "✗ Could not log training:")
	assert.Contains(t, out, "duration")
}

func TestShell_CoachDeletesEducationalFile(t *testing.T) {
	mux, url := newBackend(t, "Coach")
	mux.HandleFunc("GET /Education", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"m1","title":"Edges"}]`))
	})
	mux.HandleFunc("GET /Education/m1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"m1","title":"Edges","files":[{"id":"f1","fileName":"edges.pdf","fileSize":2048}]}`))
	})
	deleted := false
	mux.HandleFunc("DELETE /EducationalFile/f1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-Coach", r.Header.Get("Authorization"))
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	script := append(loginAs("Jana"),
		choose("Education"), choose("Delete file"),
		choose("Edges"), choose("edges.pdf"), confirm(true),
		choose("Back"), choose("Quit"),
	)
	_, _, out := runShell(t, url, script)

	assert.True(t, deleted)
	assert.Contains(t, out, "✓ File deleted")
}

func TestShell_SkaterCannotManageEducation(t *testing.T) {
	_, url := newBackend(t, "Skater")

	script := append(loginAs("Ana"), choose("Education"), choose("Back"), choose("Quit"))
	p, _, _ := runShell(t, url, script)

	assert.Equal(t, []string{"Browse materials", "Material details", "Back"}, p.menus[2])
}

func TestShell_BrowseMaterialsFilters(t *testing.T) {
	mux, url := newBackend(t, "Skater")
	mux.HandleFunc("GET /Education", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"m1","title":"Edge work"},{"id":"m2","title":"Jump technique"}]`))
	})

	script := append(loginAs("Ana"),
		choose("Education"), choose("Browse materials"), text("jump"),
		choose("Back"), choose("Quit"),
	)
	_, _, out := runShell(t, url, script)

	assert.Contains(t, out, "Jump technique")
	assert.NotContains(t, out, "Edge work")
}

func TestShell_UploadAndPlayMusic(t *testing.T) {
	mux, url := newBackend(t, "Skater")
	mux.HandleFunc("GET /Program", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","year":2025,"type":"Free","description":"Swan Lake"}]`))
	})
	mux.HandleFunc("POST /Music/program/p1/upload", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("musicFile")
		require.NoError(t, err)
		f.Close()
		fmt.Fprintf(w, `{"id":"f1","fileName":%q,"fileSize":%d,"fileUrl":"/files/f1"}`, hdr.Filename, hdr.Size)
	})
	mux.HandleFunc("GET /Music/program/p1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"f1","fileName":"swan.mp3","fileUrl":"/files/f1"}]`))
	})

	track := filepath.Join(t.TempDir(), "swan.mp3")
	require.NoError(t, os.WriteFile(track, append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...), 0644))

	var opened string
	script := append(loginAs("Ana"),
		choose("Programs"),
		choose("Upload music"), choose("2025 Free: Swan Lake"), text(track),
		choose("Play music"), choose("2025 Free: Swan Lake"), choose("swan.mp3"),
		choose("Back"), choose("Quit"),
	)
	_, _, out := runShell(t, url, script, WithURLOpener(func(u string) error {
		opened = u
		return nil
	}))

	assert.Contains(t, out, "✓ Uploaded swan.mp3")
	assert.Equal(t, url+"/files/f1", opened)
}

func TestShell_AbortAtTopLevelQuits(t *testing.T) {
	_, url := newBackend(t, "Coach")
	_, sess, _ := runShell(t, url, nil)
	assert.False(t, sess.Snapshot().Authenticated)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "2.0 KiB", humanSize(2048))
	assert.Equal(t, "1.5 MiB", humanSize(1536*1024))
	assert.Equal(t, "1.0 PiB", humanSize(1<<50))
	assert.Equal(t, "8.0 EiB", humanSize(math.MaxInt64))
	assert.Equal(t, "0 B", humanSize(-1))
}
