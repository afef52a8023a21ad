package transcribe

import "context"

// Word is one diarized token from the transcription service.
type Word struct {
	Text  string
	Start float64 // seconds from recording start
	End   float64
	// Speaker is the 0-indexed speaker label, nil when diarization was
	// unavailable for this word.
	Speaker *int
}

// Result is the transcription output the pipeline consumes.
type Result struct {
	Words []Word
	// Text is the full plain transcript, used as a fallback when the
	// service returned no word-level detail.
	Text string
	// Duration of the audio in seconds as reported by the service.
	Duration float64
}

// Transcriber converts an audio file into diarized words.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}
