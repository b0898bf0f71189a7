package vault

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Assessment is one line of Log/assessments.jsonl
type Assessment struct {
	ID         string  `json:"id"`
	TS         string  `json:"ts"`
	Actor      string  `json:"actor"`
	Mood       string  `json:"mood"`
	Prediction string  `json:"prediction"`
	Raw        float32 `json:"raw"`
	UnfitCount int     `json:"unfit_count"`
	Handoff    bool    `json:"handoff,omitempty"`
	Recorded   bool    `json:"recorded"`
	Error      string  `json:"error,omitempty"`
}

// NewAssessment fills in the id and timestamp
func NewAssessment(actor, mood, prediction string, raw float32, unfitCount int, handoff, recorded bool) Assessment {
	return Assessment{
		ID:         "asm_" + uuid.NewString()[:8],
		TS:         time.Now().UTC().Format(time.RFC3339),
		Actor:      actor,
		Mood:       mood,
		Prediction: prediction,
		Raw:        raw,
		UnfitCount: unfitCount,
		Handoff:    handoff,
		Recorded:   recorded,
	}
}

func (v *Vault) assessmentPath() string {
	return filepath.Join(v.basePath, "Log", "assessments.jsonl")
}

func (v *Vault) LogAssessment(entry Assessment) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling assessment: %w", err)
	}

	v.logLock.Lock()
	defer v.logLock.Unlock()

	if err := AppendLine(v.assessmentPath(), line); err != nil {
		return fmt.Errorf("appending assessment log: %w", err)
	}
	return nil
}

// Assessments returns the actor's logged assessments, oldest first.
// Malformed lines are skipped.
func (v *Vault) Assessments(actor string) ([]Assessment, error) {
	v.logLock.Lock()
	defer v.logLock.Unlock()

	f, err := os.Open(v.assessmentPath())
	if errors.Is(err, os.ErrNotExist) {
		return []Assessment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening assessment log: %w", err)
	}
	defer f.Close()

	out := []Assessment{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var a Assessment
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			slog.Warn("[Vault] Skipping malformed assessment line", slog.String("error", err.Error()))
			continue
		}
		if a.Actor == actor {
			out = append(out, a)
		}
	}
	return out, scanner.Err()
}
