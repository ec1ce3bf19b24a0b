package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audiocat/internal/config"
	"audiocat/internal/metadata"
	"audiocat/internal/scan"
	"audiocat/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	root       string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	for _, key := range []string{"AUDIOCAT_DB", "AUDIOCAT_FFPROBE", "AUDIOCAT_LOG_FORMAT", "AUDIOCAT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	root := filepath.Join(base, "archive")
	testsupport.WriteAudioFile(t, filepath.Join(root, "J.Author", "My Book", "Chapter 02.mp3"))
	testsupport.WriteID3File(t, filepath.Join(root, "Radio", "2024-01-15_Morning.mp3"), map[string]string{
		"TIT2": "Morning Show",
	})
	testsupport.WriteManifest(t, filepath.Join(root, "Radio", "manifest.xml"), map[string]string{
		"channel": "Radio 3",
	})

	return &cliTestEnv{cfg: cfg, configPath: configPath, root: root}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func readRecords(t *testing.T, data []byte) []metadata.NormalizedRecord {
	t.Helper()
	var out []metadata.NormalizedRecord
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var rec metadata.NormalizedRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		out = append(out, rec)
	}
	return out
}

func TestScanCommandWritesOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(testsupport.BaseDir(env.cfg), "records.jsonl")

	out, _, err := runCLI(t, []string{"scan", env.root, "-o", output}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Discovered")
	requireContains(t, out, "Wrote 2 records to "+output)

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	records := readRecords(t, data)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	book := records[0]
	if metadata.Deref(book.Author) != "J.Author" || book.ContentType != metadata.ContentAudiobook {
		t.Fatalf("unexpected first record %+v", book)
	}
	radio := records[1]
	if metadata.Deref(radio.Title) != "Morning Show" || metadata.Deref(radio.RecordingDate) != "2024-01-15" {
		t.Fatalf("unexpected second record %+v", radio)
	}
	if _, err := os.Stat(scan.LockPath(output)); !os.IsNotExist(err) {
		t.Fatalf("expected lock released, got %v", err)
	}
}

func TestScanCommandStreamsToStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"scan", env.root, "-o", "-"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if records := readRecords(t, []byte(out)); len(records) != 2 {
		t.Fatalf("expected 2 records on stdout, got %d", len(records))
	}
	requireContains(t, stderr, "Processed")
}

func TestScanCommandRejectsMissingRoot(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"scan", filepath.Join(env.root, "missing"), "-o", "-"}, env.configPath)
	if !errors.Is(err, metadata.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestScanCommandBadRootKeepsPreviousOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(testsupport.BaseDir(env.cfg), "records.jsonl")

	if _, _, err := runCLI(t, []string{"scan", env.root, "-o", output}, env.configPath); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	before, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	_, _, err = runCLI(t, []string{"scan", filepath.Join(env.root, "missing"), "-o", output}, env.configPath)
	if !errors.Is(err, metadata.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	after, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output after failed scan: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("expected output unchanged (%d bytes), got %d bytes", len(before), len(after))
	}
	if _, err := os.Stat(scan.LockPath(output)); !os.IsNotExist(err) {
		t.Fatalf("expected no lock file, got %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	file := filepath.Join(env.root, "J.Author", "My Book", "Chapter 02.mp3")

	out, _, err := runCLI(t, []string{"inspect", file, "--root", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "J.Author")
	requireContains(t, out, "episode_chapter")
	requireContains(t, out, "(source_unavailable)")
	requireContains(t, out, "Merged value")

	out, _, err = runCLI(t, []string{"inspect", file, "--root", env.root, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	var rec metadata.NormalizedRecord
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode inspect output: %v", err)
	}
	if metadata.Deref(rec.Title) != "My Book" || metadata.Deref(rec.EpisodeChapter) != "02" || rec.MetadataSource != "folder" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLoadAndQueryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	base := testsupport.BaseDir(env.cfg)
	output := filepath.Join(base, "records.jsonl")
	dbPath := filepath.Join(base, "catalogue.db")

	if _, _, err := runCLI(t, []string{"scan", env.root, "-o", output}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}
	out, _, err := runCLI(t, []string{"load", output, "--db", dbPath, "--clear"}, env.configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	requireContains(t, out, "(2 files indexed)")
	requireContains(t, out, "audiobook")

	out, _, err = runCLI(t, []string{"query", "SELECT author, content_type FROM audio_files ORDER BY file_path", "--db", dbPath}, env.configPath)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	requireContains(t, out, "J.Author")
	requireContains(t, out, "2 rows returned")

	out, _, err = runCLI(t, []string{"query", "SELECT * FROM audio_files WHERE 1 = 0", "--db", dbPath}, env.configPath)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	requireContains(t, out, "No results found")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "disabled")
	requireContains(t, out, "ffprobe")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestInvalidConfigIsRejected(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(testsupport.BaseDir(env.cfg), "bad.toml")
	if err := os.WriteFile(bad, []byte("[scan]\nyear_min = 2100\nyear_max = 1900\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, []string{"scan", env.root, "-o", "-"}, bad)
	if !errors.Is(err, metadata.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
