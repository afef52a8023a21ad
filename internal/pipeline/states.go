package pipeline

import (
	"github.com/looplab/fsm"

	"github.com/voicescribe/scribe/internal/ledger"
)

// Event names for the recording state machine.
const (
	eventTranscribe = "transcribe"
	eventSummarize  = "summarize"
	eventRender     = "render"
	eventPublish    = "publish"
	eventComplete   = "complete"
	eventFail       = "fail"
	eventAbandon    = "abandon"
)

// newMachine builds the per-run state machine seeded with the entry's
// current ledger status. The machine validates transition legality; the
// ledger commit is what makes a transition real.
func newMachine(current ledger.Status) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: eventTranscribe, Src: []string{string(ledger.StatusDiscovered), string(ledger.StatusFailed)}, Dst: string(ledger.StatusTranscribing)},
			{Name: eventSummarize, Src: []string{string(ledger.StatusTranscribing)}, Dst: string(ledger.StatusSummarizing)},
			{Name: eventRender, Src: []string{string(ledger.StatusTranscribing), string(ledger.StatusSummarizing)}, Dst: string(ledger.StatusRendering)},
			{Name: eventPublish, Src: []string{string(ledger.StatusRendering)}, Dst: string(ledger.StatusPublishing)},
			{Name: eventComplete, Src: []string{string(ledger.StatusPublishing)}, Dst: string(ledger.StatusCompleted)},
			{Name: eventFail, Src: []string{
				string(ledger.StatusTranscribing),
				string(ledger.StatusSummarizing),
				string(ledger.StatusRendering),
				string(ledger.StatusPublishing),
			}, Dst: string(ledger.StatusFailed)},
			{Name: eventAbandon, Src: []string{string(ledger.StatusFailed)}, Dst: string(ledger.StatusAbandoned)},
		},
		fsm.Callbacks{},
	)
}
