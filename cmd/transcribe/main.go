package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcribe-flow/internal/config"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcribe-flow/internal/summarizer"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcript"
	"github.com/nguyentantai21042004/transcribe-flow/internal/watcher"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

var rootCmd = &cobra.Command{
	Use:          "transcribe <file>",
	Short:        "Convert an audio/video file into a speaker-labeled Markdown transcript",
	Args:         cobra.ExactArgs(1),
	RunE:         runTranscribe,
	SilenceUsage: true,
}

var watchCmd = &cobra.Command{
	Use:          "watch",
	Short:        "Watch a directory and transcribe media files as they arrive",
	Args:         cobra.NoArgs,
	RunE:         runWatch,
	SilenceUsage: true,
}

func main() {
	rootCmd.Flags().StringP("output", "o", "", "Output transcript path (default <input stem>_transcript.md)")
	rootCmd.Flags().StringP("title", "t", "", "Transcript title")
	rootCmd.Flags().StringP("language", "l", "", "Language code (e.g. en, es); auto-detect if unset")
	rootCmd.Flags().Bool("keep-wav", false, "Keep the normalized WAV next to the transcript")
	rootCmd.Flags().Int("sample-rate", 16000, "Normalized sample rate in Hz")
	rootCmd.Flags().Bool("stereo", false, "Skip the mono downmix")
	rootCmd.Flags().Bool("summarize", false, "Also write a Gemini summary of the transcript")
	rootCmd.Flags().Bool("docx", false, "Also write the transcript as a .docx file")
	rootCmd.Flags().Bool("copy", false, "Copy the transcript to the clipboard")
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	watchCmd.Flags().String("config", "config.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(watchCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	logLevel, _ := cmd.Flags().GetString("log-level")
	log := logger.New(logLevel)

	apiKey, err := config.AssemblyAIKey()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	language, _ := cmd.Flags().GetString("language")
	keepWav, _ := cmd.Flags().GetBool("keep-wav")
	sampleRate, _ := cmd.Flags().GetInt("sample-rate")
	stereo, _ := cmd.Flags().GetBool("stereo")
	summarize, _ := cmd.Flags().GetBool("summarize")
	docx, _ := cmd.Flags().GetBool("docx")
	copyOut, _ := cmd.Flags().GetBool("copy")

	ctx := cmd.Context()
	m := media.New(executor.New(), log)
	tr := transcriber.New(apiKey, 3*time.Second, log)
	pipe := pipeline.New(m, tr, log)

	res, err := pipe.Run(ctx, args[0], pipeline.Options{
		OutputPath:   output,
		Title:        title,
		LanguageCode: language,
		KeepWav:      keepWav,
		SampleRateHz: sampleRate,
		Stereo:       stereo,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Transcript saved: %s\n", res.TranscriptPath)
	if res.WavPath != "" {
		fmt.Printf("Normalized WAV kept: %s\n", res.WavPath)
	}

	if docx {
		docxPath := strings.TrimSuffix(res.TranscriptPath, filepath.Ext(res.TranscriptPath)) + ".docx"
		if title == "" {
			title = "Transcript: " + strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		if err := transcript.SaveDocx(res.Turns, docxPath, title); err != nil {
			log.Warn(ctx, "Failed to write docx: %v", err)
		} else {
			fmt.Printf("Docx saved: %s\n", docxPath)
		}
	}

	if copyOut {
		data, err := os.ReadFile(res.TranscriptPath)
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		if err != nil {
			log.Warn(ctx, "Failed to copy transcript to clipboard: %v", err)
		}
	}

	if summarize {
		keys := config.GeminiKeys()
		sum := summarizer.New(keys, "", log)
		dest := strings.TrimSuffix(res.TranscriptPath, filepath.Ext(res.TranscriptPath)) + ".summary.md"
		if err := sum.Summarize(ctx, res.TranscriptPath, dest); err != nil {
			log.Warn(ctx, "Failed to summarize: %v", err)
		}
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)
	ctx := cmd.Context()

	apiKey, err := config.AssemblyAIKey()
	if err != nil {
		return err
	}

	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	m := media.New(executor.New(), log)
	tr := transcriber.New(apiKey, time.Duration(cfg.Transcription.PollIntervalSeconds)*time.Second, log)
	pipe := pipeline.New(m, tr, log)

	handler := func(ctx context.Context, filePath string) error {
		stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		_, err := pipe.Run(ctx, filePath, pipeline.Options{
			OutputPath:   filepath.Join(cfg.Paths.Output, stem+".md"),
			LanguageCode: cfg.Transcription.LanguageCode,
			SampleRateHz: cfg.Audio.SampleRateHz,
			Stereo:       cfg.Audio.Stereo,
		})
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
