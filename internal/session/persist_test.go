package session_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"vidpick/internal/session"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	folder := mkVideos(t, t.TempDir(), "a.mp4", "b.mp4", "c.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.MarkPlayed(filepath.Join(folder, "b.mp4"))
	st.MarkPlayed(filepath.Join(folder, "a.mp4"))
	st.Skip(filepath.Join(folder, "c.mp4"))
	st.Save()

	restored := session.NewStore(session.Config{StatePath: statePath})
	if !restored.Load() {
		t.Fatalf("expected load to succeed")
	}

	if restored.Folder() != st.Folder() {
		t.Fatalf("folder mismatch: %q vs %q", restored.Folder(), st.Folder())
	}
	if got := restored.Videos(); len(got) != 3 {
		t.Fatalf("expected 3 videos restored, got %v", got)
	}
	prog := restored.Progress()
	if prog.Played != 3 || prog.Total != 3 {
		t.Fatalf("expected 3/3 restored, got %d/%d", prog.Played, prog.Total)
	}

	recent := restored.Recent(0)
	if len(recent) != 2 || filepath.Base(recent[0]) != "a.mp4" || filepath.Base(recent[1]) != "b.mp4" {
		t.Fatalf("expected recent to keep played order and omit the skip, got %v", recent)
	}
}

func TestSave_SnapshotFormat(t *testing.T) {
	folder := mkVideos(t, t.TempDir(), "a.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.Save()

	raw, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("expected a state file: %v", err)
	}

	var snap map[string]any
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("state file is not valid JSON: %v", err)
	}
	for _, key := range []string{"current_folder", "played_videos", "recent_videos", "video_files"} {
		if _, ok := snap[key]; !ok {
			t.Fatalf("state file missing %q: %s", key, raw)
		}
	}
	if _, ok := snap["played_videos"].([]any); !ok {
		t.Fatalf("played_videos should serialize as a list, got %T", snap["played_videos"])
	}
}

func TestSave_NothingScannedWritesNothing(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	st := session.NewStore(session.Config{StatePath: statePath})
	st.Save()

	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Fatalf("expected no state file before a scan, stat err: %v", err)
	}
}

func TestSave_FailureIsSwallowed(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	// The parent "directory" is a regular file, every write must fail.
	statePath := filepath.Join(blocker, "state.json")
	folder := mkVideos(t, t.TempDir(), "a.mp4")

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.Save() // must not panic or return anything

	if st.Load() {
		t.Fatalf("load should fail where save could not write")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	st := session.NewStore(session.Config{StatePath: filepath.Join(t.TempDir(), "absent.json")})

	if st.Load() {
		t.Fatalf("expected load to report false for a missing file")
	}
}

func TestLoad_CorruptFileLeavesSessionUnchanged(t *testing.T) {
	folder := mkVideos(t, t.TempDir(), "keep.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(statePath, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.MarkPlayed(filepath.Join(folder, "keep.mp4"))

	if st.Load() {
		t.Fatalf("expected load to fail on corrupt JSON")
	}

	prog := st.Progress()
	if prog.Played != 1 || prog.Total != 1 {
		t.Fatalf("failed load must leave the session unchanged, got %d/%d", prog.Played, prog.Total)
	}
}

func writeSnapshot(t *testing.T, path string, snap map[string]any) {
	t.Helper()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
}

func TestLoad_TraversalFolderRejectsWholeLoad(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	writeSnapshot(t, statePath, map[string]any{
		"current_folder": "/videos/../etc",
		"played_videos":  []string{},
		"recent_videos":  []string{},
		"video_files":    []string{"/etc/passwd"},
	})

	st := session.NewStore(session.Config{StatePath: statePath})
	if st.Load() {
		t.Fatalf("expected a traversal folder to reject the whole load")
	}
	if st.Folder() != "" {
		t.Fatalf("rejected load must not set the folder, got %q", st.Folder())
	}
}

func TestLoad_EmptyFolderRejected(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	writeSnapshot(t, statePath, map[string]any{
		"current_folder": "",
		"played_videos":  []string{},
		"recent_videos":  []string{},
		"video_files":    []string{},
	})

	st := session.NewStore(session.Config{StatePath: statePath})
	if st.Load() {
		t.Fatalf("expected an empty folder to reject the load")
	}
}

func TestLoad_DropsInvalidEntriesKeepsRest(t *testing.T) {
	folder := t.TempDir()
	good := filepath.Join(folder, "good.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	// filepath.Join would clean the traversal away, build the raw string.
	evil := folder + "/../evil.mp4"
	writeSnapshot(t, statePath, map[string]any{
		"current_folder": folder,
		"played_videos":  []string{good, "/elsewhere/outside.mp4"},
		"recent_videos":  []string{good, evil},
		"video_files":    []string{good, "/elsewhere/outside.mp4", evil},
	})

	st := session.NewStore(session.Config{StatePath: statePath})
	if !st.Load() {
		t.Fatalf("expected load to succeed with the valid entries")
	}

	if got := st.Videos(); len(got) != 1 || got[0] != good {
		t.Fatalf("expected only the contained video to survive, got %v", got)
	}
	prog := st.Progress()
	if prog.Played != 1 {
		t.Fatalf("expected only the contained played entry, got %d", prog.Played)
	}
	if got := st.Recent(0); len(got) != 1 || got[0] != good {
		t.Fatalf("expected only the contained recent entry, got %v", got)
	}
}

func TestLoad_RecentDedupedAndTruncated(t *testing.T) {
	folder := t.TempDir()
	a := filepath.Join(folder, "a.mp4")
	b := filepath.Join(folder, "b.mp4")
	c := filepath.Join(folder, "c.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	writeSnapshot(t, statePath, map[string]any{
		"current_folder": folder,
		"played_videos":  []string{},
		"recent_videos":  []string{a, b, a, c}, // duplicate a, cap of 2
		"video_files":    []string{a, b, c},
	})

	st := session.NewStore(session.Config{StatePath: statePath, MaxRecent: 2})
	if !st.Load() {
		t.Fatalf("expected load to succeed")
	}

	recent := st.Recent(0)
	if len(recent) != 2 || recent[0] != a || recent[1] != b {
		t.Fatalf("expected deduped, truncated recent [a b], got %v", recent)
	}
}

func TestLoad_VersionFieldOptional(t *testing.T) {
	folder := t.TempDir()
	clip := filepath.Join(folder, "clip.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	// Files written before the version tag existed.
	raw := `{
  "current_folder": ` + strconv.Quote(folder) + `,
  "played_videos": [],
  "recent_videos": [],
  "video_files": [` + strconv.Quote(clip) + `]
}`
	if err := os.WriteFile(statePath, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st := session.NewStore(session.Config{StatePath: statePath})
	if !st.Load() {
		t.Fatalf("expected untagged snapshots to load")
	}
	if got := st.Videos(); len(got) != 1 {
		t.Fatalf("expected 1 video, got %v", got)
	}
}

func TestClearSaved_RemovesFile(t *testing.T) {
	folder := mkVideos(t, t.TempDir(), "a.mp4")
	statePath := filepath.Join(t.TempDir(), "state.json")

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.Save()
	if _, err := os.Stat(statePath); err != nil {
		t.Fatalf("expected a saved file: %v", err)
	}

	st.ClearSaved()
	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Fatalf("expected the state file removed, stat err: %v", err)
	}

	// In-memory session is untouched by a clear.
	if prog := st.Progress(); prog.Total != 1 {
		t.Fatalf("clear must not wipe the in-memory session, got total %d", prog.Total)
	}

	// Clearing again is fine.
	st.ClearSaved()
}

func TestSave_WritesOnlyTheStateFile(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	folder := mkVideos(t, t.TempDir(), "a.mp4")

	st := session.NewStore(session.Config{StatePath: statePath})
	scanned(t, st, folder, session.ScanOptions{})
	st.Save()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 1 || !strings.Contains(names[0], "state.json") {
		t.Fatalf("expected only state.json in the state dir, got %v", names)
	}
}
