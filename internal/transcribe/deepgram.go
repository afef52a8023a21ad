package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const initialBackoff = 2 * time.Second

type deepgramResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
				Words      []struct {
					Word           string  `json:"word"`
					PunctuatedWord string  `json:"punctuated_word"`
					Start          float64 `json:"start"`
					End            float64 `json:"end"`
					Speaker        *int    `json:"speaker"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe uploads the audio file and returns its diarized words.
// Rate limits and 5xx responses are retried with exponential backoff before
// the attempt is reported as transient.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return Result{}, Permanent(fmt.Errorf("read audio: %w", err))
	}

	var lastErr error
	for attempt := 0; attempt < t.maxRetries; attempt++ {
		t.logger.Info(ctx, "Transcribing %s (attempt %d/%d)", filepath.Base(audioPath), attempt+1, t.maxRetries)

		result, err := t.request(ctx, audio)
		if err == nil {
			t.logger.Info(ctx, "Transcription complete: %s (%d words)", filepath.Base(audioPath), len(result.Words))
			return result, nil
		}

		lastErr = err
		if IsPermanent(err) || attempt == t.maxRetries-1 {
			break
		}

		backoff := initialBackoff << attempt
		t.logger.Warn(ctx, "Transient error transcribing %s: %v. Retrying in %s", filepath.Base(audioPath), err, backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return Result{}, Transient(fmt.Errorf("transcription cancelled: %w", ctx.Err()))
		}
	}

	return Result{}, fmt.Errorf("transcription failed after %d attempts: %w", t.maxRetries, lastErr)
}

func (t *implTranscriber) request(ctx context.Context, audio []byte) (Result, error) {
	q := url.Values{}
	q.Set("model", t.model)
	q.Set("diarize", "true")
	q.Set("smart_format", "true")
	q.Set("utterances", "true")
	q.Set("punctuate", "true")
	for _, kt := range t.keyterms {
		q.Add("keyterm", kt)
	}

	endpoint := fmt.Sprintf("%s/v1/listen?%s", t.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return Result{}, Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Token "+t.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.client.Do(req)
	if err != nil {
		return Result{}, Transient(fmt.Errorf("transcription request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("transcription http %d: %s", resp.StatusCode, bytes.TrimSpace(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return Result{}, Transient(err)
		}
		return Result{}, Permanent(err)
	}

	var dg deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dg); err != nil {
		return Result{}, Permanent(fmt.Errorf("decode transcription response: %w", err))
	}

	return fromDeepgram(dg), nil
}

func fromDeepgram(dg deepgramResponse) Result {
	result := Result{Duration: dg.Metadata.Duration}

	if len(dg.Results.Channels) == 0 || len(dg.Results.Channels[0].Alternatives) == 0 {
		return result
	}
	alt := dg.Results.Channels[0].Alternatives[0]
	result.Text = alt.Transcript

	for _, w := range alt.Words {
		text := w.PunctuatedWord
		if text == "" {
			text = w.Word
		}
		result.Words = append(result.Words, Word{
			Text:    text,
			Start:   w.Start,
			End:     w.End,
			Speaker: w.Speaker,
		})
	}
	return result
}
