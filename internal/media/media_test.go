package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// fakeExecutor returns canned output per tool and records every invocation,
// so tests can assert which external processes would have been spawned.
type fakeExecutor struct {
	stdout       map[string]string
	stderr       map[string]string
	execErr      map[string]error
	missingTools map[string]bool
	calls        [][]string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		stdout:       map[string]string{},
		stderr:       map[string]string{},
		execErr:      map[string]error{},
		missingTools: map[string]bool{},
	}
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout[name], f.stderr[name], f.execErr[name]
}

func (f *fakeExecutor) LookPath(name string) error {
	if f.missingTools[name] {
		return &executor.ToolMissingError{Tool: name}
	}
	return nil
}

func (f *fakeExecutor) invoked(name string) bool {
	for _, c := range f.calls {
		if c[0] == name {
			return true
		}
	}
	return false
}

func tempMediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake media"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name       string
		probeJSON  string
		wantAudio  bool
		wantVideo  bool
		wantACodec string
		wantVCodec string
	}{
		{
			name: "audio and video",
			probeJSON: `{"format":{"duration":"12.5"},"streams":[
				{"codec_type":"video","codec_name":"h264"},
				{"codec_type":"audio","codec_name":"aac"}]}`,
			wantAudio:  true,
			wantVideo:  true,
			wantACodec: "aac",
			wantVCodec: "h264",
		},
		{
			name: "pure audio",
			probeJSON: `{"format":{"duration":"60.0"},"streams":[
				{"codec_type":"audio","codec_name":"mp3"}]}`,
			wantAudio:  true,
			wantVideo:  false,
			wantACodec: "mp3",
		},
		{
			name: "video only",
			probeJSON: `{"format":{"duration":"5.0"},"streams":[
				{"codec_type":"video","codec_name":"vp9"}]}`,
			wantAudio:  false,
			wantVideo:  true,
			wantVCodec: "vp9",
		},
		{
			name: "first codec per type wins",
			probeJSON: `{"format":{},"streams":[
				{"codec_type":"audio","codec_name":"aac"},
				{"codec_type":"audio","codec_name":"mp3"}]}`,
			wantAudio:  true,
			wantACodec: "aac",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeExecutor()
			fake.stdout["ffprobe"] = tt.probeJSON
			m := New(fake, logger.New("error"))

			info, err := m.Probe(context.Background(), tempMediaFile(t, "in.mp4"))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}

			if info.HasAudio != tt.wantAudio {
				t.Errorf("HasAudio = %v, want %v", info.HasAudio, tt.wantAudio)
			}
			if info.HasVideo != tt.wantVideo {
				t.Errorf("HasVideo = %v, want %v", info.HasVideo, tt.wantVideo)
			}
			if info.AudioCodec != tt.wantACodec {
				t.Errorf("AudioCodec = %q, want %q", info.AudioCodec, tt.wantACodec)
			}
			if info.VideoCodec != tt.wantVCodec {
				t.Errorf("VideoCodec = %q, want %q", info.VideoCodec, tt.wantVCodec)
			}
		})
	}
}

func TestProbeDuration(t *testing.T) {
	t.Run("parsed", func(t *testing.T) {
		fake := newFakeExecutor()
		fake.stdout["ffprobe"] = `{"format":{"duration":"12.5"},"streams":[]}`
		m := New(fake, logger.New("error"))

		info, err := m.Probe(context.Background(), tempMediaFile(t, "a.mp4"))
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if info.DurationSeconds == nil || *info.DurationSeconds != 12.5 {
			t.Errorf("DurationSeconds = %v, want 12.5", info.DurationSeconds)
		}
	})

	t.Run("unparsable degrades to nil", func(t *testing.T) {
		fake := newFakeExecutor()
		fake.stdout["ffprobe"] = `{"format":{"duration":"N/A"},"streams":[]}`
		m := New(fake, logger.New("error"))

		info, err := m.Probe(context.Background(), tempMediaFile(t, "a.mp4"))
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if info.DurationSeconds != nil {
			t.Errorf("DurationSeconds = %v, want nil", *info.DurationSeconds)
		}
	})
}

func TestProbeNotFound(t *testing.T) {
	m := New(newFakeExecutor(), logger.New("error"))

	_, err := m.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Probe() error = %v, want fs.ErrNotExist", err)
	}
}

func TestProbeToolMissing(t *testing.T) {
	fake := newFakeExecutor()
	fake.missingTools["ffprobe"] = true
	m := New(fake, logger.New("error"))

	_, err := m.Probe(context.Background(), tempMediaFile(t, "a.mp4"))

	var missing *executor.ToolMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("Probe() error = %v, want *ToolMissingError", err)
	}
	if missing.Tool != "ffprobe" {
		t.Errorf("Tool = %q, want ffprobe", missing.Tool)
	}
}

func TestProbeFailedTailBounded(t *testing.T) {
	fake := newFakeExecutor()
	fake.execErr["ffprobe"] = fmt.Errorf("exit status 1")
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	fake.stderr["ffprobe"] = strings.Join(lines, "\n")
	m := New(fake, logger.New("error"))

	_, err := m.Probe(context.Background(), tempMediaFile(t, "a.mp4"))

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("Probe() error = %v, want *ProcessError", err)
	}
	got := strings.Split(procErr.Tail, "\n")
	if len(got) != failTailLines {
		t.Errorf("tail has %d lines, want %d", len(got), failTailLines)
	}
	if got[len(got)-1] != "line 99" {
		t.Errorf("tail ends with %q, want the last stderr line", got[len(got)-1])
	}
}

func TestNormalize(t *testing.T) {
	fake := newFakeExecutor()
	fake.stdout["ffprobe"] = `{"format":{"duration":"10"},"streams":[{"codec_type":"audio","codec_name":"aac"}]}`
	fake.stderr["ffmpeg"] = "size=100kB\nvideo:0kB audio:100kB"
	m := New(fake, logger.New("error"))

	input := tempMediaFile(t, "meeting.mp4")
	outDir := t.TempDir()

	res, err := m.Normalize(context.Background(), input, outDir, DefaultNormalizeOptions())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	wantOut := filepath.Join(outDir, "meeting_normalized.wav")
	if res.OutputWavPath != wantOut {
		t.Errorf("OutputWavPath = %q, want %q", res.OutputWavPath, wantOut)
	}
	if !res.Info.HasAudio {
		t.Error("Info.HasAudio = false, want true")
	}
	if res.StderrTail == "" {
		t.Error("StderrTail is empty, want converter diagnostics")
	}

	// Converter invocation shape
	var ffmpegArgs []string
	for _, c := range fake.calls {
		if c[0] == "ffmpeg" {
			ffmpegArgs = c[1:]
		}
	}
	if ffmpegArgs == nil {
		t.Fatal("ffmpeg was not invoked")
	}
	joined := strings.Join(ffmpegArgs, " ")
	for _, want := range []string{"-y", "-map 0:a:0", "-vn", "-ac 1", "-ar 16000", "-c:a pcm_s16le"} {
		if !strings.Contains(joined, want) {
			t.Errorf("ffmpeg args missing %q: %s", want, joined)
		}
	}
}

func TestNormalizeStereoNoDownmix(t *testing.T) {
	fake := newFakeExecutor()
	fake.stdout["ffprobe"] = `{"format":{},"streams":[{"codec_type":"audio","codec_name":"aac"}]}`
	m := New(fake, logger.New("error"))

	opts := NormalizeOptions{SampleRateHz: 44100, Mono: false, Overwrite: false}
	_, err := m.Normalize(context.Background(), tempMediaFile(t, "a.mp3"), t.TempDir(), opts)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	args := fake.calls[len(fake.calls)-1][1:]
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-ac 1") {
		t.Error("stereo output should not downmix with -ac 1")
	}
	if !strings.Contains(joined, "-ar 44100") {
		t.Errorf("ffmpeg args missing -ar 44100: %s", joined)
	}
	if args[1] != "-n" {
		t.Errorf("refuse-if-exists should pass -n, got %q", args[1])
	}
}

func TestNormalizeNoAudioStream(t *testing.T) {
	fake := newFakeExecutor()
	fake.stdout["ffprobe"] = `{"format":{},"streams":[{"codec_type":"video","codec_name":"h264"}]}`
	m := New(fake, logger.New("error"))

	_, err := m.Normalize(context.Background(), tempMediaFile(t, "silent.mp4"), t.TempDir(), DefaultNormalizeOptions())

	var noAudio *NoAudioStreamError
	if !errors.As(err, &noAudio) {
		t.Fatalf("Normalize() error = %v, want *NoAudioStreamError", err)
	}
	if fake.invoked("ffmpeg") {
		t.Error("converter must not be invoked for input without audio")
	}
}

func TestNormalizeConversionFailed(t *testing.T) {
	fake := newFakeExecutor()
	fake.stdout["ffprobe"] = `{"format":{},"streams":[{"codec_type":"audio","codec_name":"aac"}]}`
	fake.execErr["ffmpeg"] = fmt.Errorf("exit status 1")
	fake.stderr["ffmpeg"] = "something broke"
	m := New(fake, logger.New("error"))

	_, err := m.Normalize(context.Background(), tempMediaFile(t, "a.mp3"), t.TempDir(), DefaultNormalizeOptions())

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("Normalize() error = %v, want *ProcessError", err)
	}
	if procErr.Tool != "ffmpeg" {
		t.Errorf("Tool = %q, want ffmpeg", procErr.Tool)
	}
	if !strings.Contains(procErr.Tail, "something broke") {
		t.Errorf("Tail = %q, want stderr content", procErr.Tail)
	}
}
