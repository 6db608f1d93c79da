package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vidpick/internal/database"
	"vidpick/internal/models"
	"vidpick/internal/repo"
)

const sampleProbeJSON = `{
  "streams": [
    {"codec_type": "audio", "codec_name": "aac"},
    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080}
  ],
  "format": {
    "duration": "312.500000",
    "tags": {"CREATION_TIME": "2023-06-15T10:30:00.000000Z"}
  }
}`

// fakeRunner routes tool invocations for tests. probeCalls counts actual
// ffprobe metadata runs, version checks excluded.
type fakeRunner struct {
	probeCalls int
	haveTools  bool
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if !f.haveTools {
		return nil, errors.New("executable file not found in $PATH")
	}
	if len(args) > 0 && args[0] == "-version" {
		return []byte(name + " version 6.0"), nil
	}
	if name == "ffprobe" {
		f.probeCalls++
		return []byte(sampleProbeJSON), nil
	}
	return nil, fmt.Errorf("unexpected command %s %v", name, args)
}

func newTestService(t *testing.T, runner *fakeRunner, withStore bool) *Service {
	t.Helper()

	var store *repo.MediaInfoStore
	if withStore {
		db, err := database.InitDB(filepath.Join(t.TempDir(), "cache.db"))
		if err != nil {
			t.Fatalf("init db: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		store = repo.GetMediaInfoStore(db.DB)
	}

	svc := New(t.TempDir(), store)
	svc.runCmd = runner.run
	return svc
}

func writeVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return path
}

func TestProbe_StatOnlyWhenToolsMissing(t *testing.T) {
	runner := &fakeRunner{haveTools: false}
	svc := newTestService(t, runner, false)
	video := writeVideo(t, "clip.mp4")

	info := svc.Probe(context.Background(), video)

	if info.Path != video {
		t.Fatalf("expected path %q, got %q", video, info.Path)
	}
	if info.Size == 0 || info.ModTime.IsZero() {
		t.Fatalf("expected stat data even without ffprobe: %+v", info)
	}
	if info.HasStreamData() {
		t.Fatalf("expected no stream data without ffprobe: %+v", info)
	}
}

func TestProbe_ParsesStreamAndFormatData(t *testing.T) {
	runner := &fakeRunner{haveTools: true}
	svc := newTestService(t, runner, false)
	video := writeVideo(t, "clip.mp4")

	info := svc.Probe(context.Background(), video)

	if info.Width != 1920 || info.Height != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if info.VideoCodec != "h264" {
		t.Fatalf("expected h264 from the video stream, got %q", info.VideoCodec)
	}
	if info.Duration != 312.5 {
		t.Fatalf("expected duration 312.5, got %v", info.Duration)
	}
	if info.CreatedAt.Year() != 2023 {
		t.Fatalf("expected creation_time parsed despite casing, got %v", info.CreatedAt)
	}
	if !info.HasStreamData() {
		t.Fatalf("expected stream data present")
	}
}

func TestProbe_MemoryCacheAvoidsSecondRun(t *testing.T) {
	runner := &fakeRunner{haveTools: true}
	svc := newTestService(t, runner, false)
	video := writeVideo(t, "clip.mp4")

	svc.Probe(context.Background(), video)
	svc.Probe(context.Background(), video)

	if runner.probeCalls != 1 {
		t.Fatalf("expected one ffprobe run, got %d", runner.probeCalls)
	}
}

func TestProbe_DatabaseTierSurvivesRestart(t *testing.T) {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer db.Close()
	store := repo.GetMediaInfoStore(db.DB)
	video := writeVideo(t, "clip.mp4")

	first := &fakeRunner{haveTools: true}
	svc1 := New(t.TempDir(), store)
	svc1.runCmd = first.run
	svc1.Probe(context.Background(), video)
	if first.probeCalls != 1 {
		t.Fatalf("expected the first service to probe once, got %d", first.probeCalls)
	}

	// A fresh service sharing the store must answer from the database.
	second := &fakeRunner{haveTools: true}
	svc2 := New(t.TempDir(), store)
	svc2.runCmd = second.run
	info := svc2.Probe(context.Background(), video)

	if second.probeCalls != 0 {
		t.Fatalf("expected no reprobe on a warm database, got %d", second.probeCalls)
	}
	if info.Width != 1920 || info.Duration != 312.5 {
		t.Fatalf("expected cached stream data, got %+v", info)
	}
}

func TestProbe_StaleRowForcesReprobe(t *testing.T) {
	runner := &fakeRunner{haveTools: true}
	svc := newTestService(t, runner, true)
	video := writeVideo(t, "clip.mp4")

	svc.Probe(context.Background(), video)
	if runner.probeCalls != 1 {
		t.Fatalf("setup: expected one probe, got %d", runner.probeCalls)
	}

	// Grow the file: the cached row no longer matches size/mtime.
	if err := os.WriteFile(video, []byte("rather longer replacement content"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	svc2 := New(t.TempDir(), svc.store)
	svc2.runCmd = runner.run
	svc2.Probe(context.Background(), video)

	if runner.probeCalls != 2 {
		t.Fatalf("expected a reprobe after the file changed, got %d", runner.probeCalls)
	}
}

func TestProbe_MissingFileStillReturnsPath(t *testing.T) {
	runner := &fakeRunner{haveTools: true}
	svc := newTestService(t, runner, false)
	missing := filepath.Join(t.TempDir(), "gone.mp4")

	info := svc.Probe(context.Background(), missing)

	if info.Path != missing {
		t.Fatalf("expected the path echoed back, got %q", info.Path)
	}
	if runner.probeCalls != 0 {
		t.Fatalf("expected no probe for an unstattable file")
	}
}

func TestForget_DropsBothTiers(t *testing.T) {
	runner := &fakeRunner{haveTools: true}
	svc := newTestService(t, runner, true)
	video := writeVideo(t, "clip.mp4")

	svc.Probe(context.Background(), video)
	svc.Forget(video)
	svc.Probe(context.Background(), video)

	if runner.probeCalls != 2 {
		t.Fatalf("expected a fresh probe after Forget, got %d", runner.probeCalls)
	}
}

func TestRemember_EvictsOldestEntries(t *testing.T) {
	svc := New(t.TempDir(), nil)

	total := 51
	for i := 0; i < total; i++ {
		svc.remember(fmt.Sprintf("/v/clip-%02d.mp4", i), models.MediaInfo{Size: int64(i)})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.memo) != 25 {
		t.Fatalf("expected eviction down to 25 entries, got %d", len(svc.memo))
	}
	if _, ok := svc.memo["/v/clip-00.mp4"]; ok {
		t.Fatalf("expected the oldest entry evicted")
	}
	if _, ok := svc.memo[fmt.Sprintf("/v/clip-%02d.mp4", total-1)]; !ok {
		t.Fatalf("expected the newest entry kept")
	}
	if len(svc.order) != len(svc.memo) {
		t.Fatalf("order/memo drifted: %d vs %d", len(svc.order), len(svc.memo))
	}
}
