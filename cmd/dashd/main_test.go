package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/dashd/internal/config"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/storage"
)

func sampleViews() []sectionView {
	sections := model.SplitSections("## A\ntext1\n## B\ntext2")
	state := model.Reconcile(sections, nil)
	return buildSectionViews(sections, state, true)
}

func TestWriteSectionsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSections(&buf, "text", sampleViews()))
	assert.Equal(t, "▾ A\n    text1\n▸ B\n    text2\n", buf.String())
}

func TestWriteSectionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSections(&buf, "json", sampleViews()))

	var got []sectionView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleViews(), got)
}

func TestWriteSectionsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSections(&buf, "YAML", sampleViews()))
	assert.Contains(t, buf.String(), "title: A")

	var got []sectionView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleViews(), got)
}

func TestWriteSectionsRejectsUnknownFormat(t *testing.T) {
	err := writeSections(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}

func TestBuildSectionViewsOmitsContent(t *testing.T) {
	sections := []model.Section{{Title: "A", Content: "x"}}
	views := buildSectionViews(sections, model.CollapseState{"A": true}, false)
	assert.Equal(t, []sectionView{{Title: "A", Open: true}}, views)
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &app{v: config.New(), logger: zap.NewNop(), store: store}
}

func TestResolveSessionPersistsConfiguredUser(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.cfg = config.Config{UserID: "u-42", UserName: "Ada", Theme: "light"}

	session := a.resolveSession(ctx)
	assert.Equal(t, "u-42", session.UserID)
	assert.Equal(t, model.ThemeLight, session.Theme)
	assert.Equal(t, "u-42", storage.LoadUserID(ctx, a.store))
}

func TestResolveSessionFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	require.NoError(t, storage.SaveUserID(ctx, a.store, "remembered"))
	require.NoError(t, storage.SaveTheme(ctx, a.store, model.ThemeDark))

	session := a.resolveSession(ctx)
	assert.Equal(t, "remembered", session.UserID)
	assert.Equal(t, model.ThemeDark, session.Theme)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd(newApp())
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["sections"])
	assert.True(t, names["export"])
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("refresh-minutes"))
}

func runRoot(t *testing.T, args ...string) (*app, string, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"markdown":"## A\ntext1\n## B\ntext2"}`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store: file\n"), 0o644))

	a := newApp()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	base := []string{
		"--config", cfgPath,
		"--api-url", srv.URL,
		"--user-id", "u-1",
		"--store-path", filepath.Join(dir, "state.json"),
	}
	err := execute(a, root, append(args, base...))
	return a, out.String(), err
}

func TestExecuteSectionsPrintsReconciledState(t *testing.T) {
	a, out, err := runRoot(t, "sections")
	require.NoError(t, err)
	assert.Equal(t, "▾ A\n▸ B\n", out)
	assert.Nil(t, a.store)
}

func TestExecuteClosesStoreWhenCommandFails(t *testing.T) {
	a, _, err := runRoot(t, "sections", "--format", "xml")
	require.Error(t, err)
	assert.Nil(t, a.store, "store must be released on the error path")
}
