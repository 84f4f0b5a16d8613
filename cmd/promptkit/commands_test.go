package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptkit/internal/domain/models"
	"promptkit/internal/extension"
)

const testToken = "cli-token"

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/extension/validate-token", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.TokenValidation{Valid: true, UserID: "user-1"})
	}))
	mux.HandleFunc("GET /api/extension/prompts/created", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ExtensionPromptList{
			Prompts: []models.ExtensionPrompt{
				{ID: "p1", Title: "One", FolderID: strPtr("f1")},
				{ID: "p2", Title: "Two", FolderID: strPtr("f2")},
			},
			Count: 2,
		})
	}))
	mux.HandleFunc("GET /api/extension/prompts/liked", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ExtensionPromptList{Prompts: []models.ExtensionPrompt{}})
	}))
	mux.HandleFunc("GET /api/extension/filter-options", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.FilterOptions{
			Folders:    []models.FilterTag{{ID: "f1", Name: "Work"}, {ID: "f2", Name: "Home"}},
			Categories: []models.FilterTag{},
		})
	}))
	mux.HandleFunc("GET /api/folders/options", authed(func(w http.ResponseWriter, r *http.Request) {
		opts := []models.FlattenedFolder{{ID: "f2", Name: "Home", DisplayName: "Home"}}
		if r.URL.Query().Get("editing") != "f1" {
			opts = append(opts, models.FlattenedFolder{ID: "f1", Name: "Work", DisplayName: "Work"})
		}
		writeJSON(w, http.StatusOK, opts)
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command against srv with a signed-in session.
func runCLI(t *testing.T, srv *httptest.Server, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := extension.NewViperStore(dir).Save(extension.Session{AuthToken: testToken, UserID: "user-1"}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--api", srv.URL, "--config-dir", dir}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("promptkit %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestPromptsCommand_RepeatedTagStaysSelected(t *testing.T) {
	srv := newFakeServer(t)

	got := runCLI(t, srv, "prompts", "created", "-o", "json", "-t", "f1", "-t", "f1,f1")

	var rows []promptRow
	if err := json.Unmarshal([]byte(got), &rows); err != nil {
		t.Fatalf("decode output %q: %v", got, err)
	}
	if len(rows) != 1 || rows[0].ID != "p1" || rows[0].Folder != "Work" {
		t.Errorf("rows = %+v, want only p1 in Work", rows)
	}
}

func TestFoldersCommand_Editing(t *testing.T) {
	srv := newFakeServer(t)

	got := runCLI(t, srv, "folders", "--editing", "f1")
	if strings.Contains(got, "Work") {
		t.Errorf("edited folder listed as a parent option:\n%s", got)
	}
	if !strings.Contains(got, "f2\tHome") {
		t.Errorf("output = %q, want the Home option", got)
	}
}

func TestSelectTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{name: "none", tags: nil, want: []string{"all"}},
		{name: "single", tags: []string{"f1"}, want: []string{"f1"}},
		{name: "repeated", tags: []string{"f1", "f1", "f1"}, want: []string{"f1"}},
		{name: "set", tags: []string{"f2", "f1", "f2"}, want: []string{"f1", "f2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			popup := extension.NewPopup(extension.NewClient("http://unused", ""), extension.NewViperStore(t.TempDir()), nil, nil)
			selectTags(popup, "created", tt.tags)
			if got := popup.Selection("created").Tags(); strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("selection = %v, want %v", got, tt.want)
			}
		})
	}
}
