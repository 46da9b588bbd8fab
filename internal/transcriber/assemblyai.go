package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// AssemblyAI wire types. The flow is upload -> submit -> poll until the
// transcript reaches a terminal status.
type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
	Punctuate     bool   `json:"punctuate"`
	FormatText    bool   `json:"format_text"`
	LanguageCode  string `json:"language_code,omitempty"`
}

type transcriptResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	Error      string              `json:"error"`
	Words      []wordResponse      `json:"words"`
	Utterances []utteranceResponse `json:"utterances"`
}

type wordResponse struct {
	Text    string `json:"text"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Speaker string `json:"speaker"`
}

type utteranceResponse struct {
	Speaker string `json:"speaker"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Text    string `json:"text"`
}

// Transcribe uploads the waveform, submits a transcription job, and polls
// until completion. Blocks for the duration of the remote job.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error) {
	uploadURL, err := t.upload(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	id, err := t.submit(ctx, uploadURL, opts)
	if err != nil {
		return nil, fmt.Errorf("submit transcript: %w", err)
	}

	t.logger.Info(ctx, "Transcription submitted (id=%s), waiting for completion...", id)

	return t.poll(ctx, id)
}

func (t *implTranscriber) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/upload", f)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", t.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var ur uploadResponse
	if err := t.do(req, &ur); err != nil {
		return "", err
	}
	if ur.UploadURL == "" {
		return "", fmt.Errorf("empty upload_url in response")
	}
	return ur.UploadURL, nil
}

func (t *implTranscriber) submit(ctx context.Context, audioURL string, opts Options) (string, error) {
	payload, err := json.Marshal(transcriptRequest{
		AudioURL:      audioURL,
		SpeakerLabels: opts.SpeakerLabels,
		Punctuate:     opts.Punctuate,
		FormatText:    opts.FormatText,
		LanguageCode:  opts.LanguageCode,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var tr transcriptResponse
	if err := t.do(req, &tr); err != nil {
		return "", err
	}
	if tr.ID == "" {
		return "", fmt.Errorf("empty transcript id in response")
	}
	return tr.ID, nil
}

func (t *implTranscriber) poll(ctx context.Context, id string) (*Result, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/transcript/"+id, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", t.apiKey)

		var tr transcriptResponse
		if err := t.do(req, &tr); err != nil {
			return nil, fmt.Errorf("poll transcript %s: %w", id, err)
		}

		switch tr.Status {
		case "completed":
			return toResult(&tr)
		case "error":
			return nil, &RecognitionError{Message: tr.Error}
		}

		t.logger.Debug(ctx, "Transcript %s status: %s", id, tr.Status)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.pollInterval):
		}
	}
}

func (t *implTranscriber) do(req *http.Request, out interface{}) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("assemblyai http %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func toResult(tr *transcriptResponse) (*Result, error) {
	if len(tr.Utterances) == 0 {
		return nil, ErrNoUtterances
	}

	res := &Result{
		Words:      make([]Word, 0, len(tr.Words)),
		Utterances: make([]Utterance, 0, len(tr.Utterances)),
	}
	for _, w := range tr.Words {
		res.Words = append(res.Words, Word{Text: w.Text, StartMs: w.Start, EndMs: w.End, Speaker: w.Speaker})
	}
	for _, u := range tr.Utterances {
		res.Utterances = append(res.Utterances, Utterance{Speaker: u.Speaker, StartMs: u.Start, EndMs: u.End, Text: u.Text})
	}
	return res, nil
}
