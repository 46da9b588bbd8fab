package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an expert at analyzing conversation transcripts. Based on the speaker-labeled transcript below, write a concise summary.

Requirements:
- Start with a one-sentence overview of what the conversation covers
- List the main topics in the order they appear
- Note decisions, action items, and open questions where present, attributed to the speaker who raised them
- Use markdown formatting: headings, bullet points, bold for key terms

Transcript:
---
%s
---`

// Summarize reads the markdown transcript, calls Gemini, and writes the
// summary to destPath.
func (s *implSummarizer) Summarize(ctx context.Context, transcriptPath, destPath string) error {
	if len(s.apiKeys) == 0 {
		return fmt.Errorf("no Gemini API keys configured. Set GEMINI_API_KEYS to enable summaries")
	}

	content, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	s.logger.Info(ctx, "Summarizing transcript: %s", name)

	summary, err := s.callGemini(ctx, string(content))
	if err != nil {
		return fmt.Errorf("summarize %s: %w", name, err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	if err := os.WriteFile(destPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	s.logger.Info(ctx, "Summary saved: %s", destPath)
	return nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, transcript)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}
