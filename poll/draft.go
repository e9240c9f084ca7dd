package poll

import (
	"github.com/open-ballot/ballotboard/common"
)

// Draft is the client-local poll creation input. It never reaches the
// ledger unvalidated and is discarded only on successful creation.
type Draft struct {
	Question string
	Options  []string
}

func NewDraft() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

func (d *Draft) AddOption() {
	d.Options = append(d.Options, "")
}

// RemoveOption drops the option at index i, refusing to shrink below the
// two-option floor.
func (d *Draft) RemoveOption(i int) {
	if len(d.Options) <= common.MinDraftOptions {
		return
	}
	if i < 0 || i >= len(d.Options) {
		return
	}
	d.Options = append(d.Options[:i], d.Options[i+1:]...)
}

// Reset restores the draft to its initial shape: empty question, exactly
// two empty option slots.
func (d *Draft) Reset() {
	d.Question = ""
	d.Options = make([]string, common.MinDraftOptions)
}
