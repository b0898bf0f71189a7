package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MoodRequest is a mood submission from a client
type MoodRequest struct {
	Mood         string `json:"mood"`
	SleepHours   SleepText `json:"sleep_hours"`
	JournalEntry string    `json:"journal_entry"`
}

// SleepText is sleep hours as typed. Clients may send a JSON string or a bare
// number; a number keeps its literal text so it parses the same way.
type SleepText string

func (s *SleepText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = SleepText(text)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("sleep_hours must be text or a number: %w", err)
	}
	*s = SleepText(n.String())
	return nil
}

// MoodResponse is returned after a submission
type MoodResponse struct {
	Prediction string        `json:"prediction"`
	Raw        float32       `json:"raw"`
	Recorded   bool          `json:"recorded"`
	Record     *MoodRecord   `json:"record,omitempty"`
	Escalation Escalation    `json:"escalation"`
	Handoff    bool          `json:"handoff"`
	Tips       []SelfCareTip `json:"tips,omitempty"`
}

// MoodRecord is the API shape of a stored entry
type MoodRecord struct {
	ID           int64     `json:"id"`
	Mood         string    `json:"mood"`
	SleepHours   string    `json:"sleep_hours"`
	JournalEntry string    `json:"journal_entry"`
	Sentiment    string    `json:"sentiment"`
	BurnoutScore int       `json:"burnout_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse is returned by the history endpoint
type HistoryResponse struct {
	Records []MoodRecord `json:"records"`
}

// ClearResponse is returned after deleting history
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// Escalation mirrors the actor's consecutive-Unfit state
type Escalation struct {
	UnfitCount     int  `json:"unfit_count"`
	HandoffPending bool `json:"handoff_pending"`
}

// Contact is an HR or counsellor entry
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Label string `json:"label"`
}

// ContactsResponse is returned by the contacts endpoint
type ContactsResponse struct {
	Contacts []Contact `json:"contacts"`
}

// ComposeRequest selects the contact a hand-off message is addressed to
type ComposeRequest struct {
	Contact string `json:"contact"`
}

// ComposeResponse is a drafted hand-off message
type ComposeResponse struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	MailTo  string `json:"mailto"`
	Draft   string `json:"draft,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Model    string `json:"model"`
	Version  string `json:"version"`
}

// SelfCareTip is a suggestion shown when the mood is Sad or Stressed
type SelfCareTip struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	URL   string `json:"url,omitempty"`
}

// SelfCareTips are offered for low moods
var SelfCareTips = []SelfCareTip{
	{Title: "Breathing exercise", URL: "https://www.youtube.com/watch?v=nmFUDkj1Aq0"},
	{Title: "Guided meditation", URL: "https://www.youtube.com/watch?v=inpok4MKVLM"},
	{Title: "Quote", Text: "\"This too shall pass.\" – Persian Proverb"},
}

// Mood labels offered by clients
const (
	MoodHappy    = "Happy"
	MoodNeutral  = "Neutral"
	MoodTired    = "Tired"
	MoodSad      = "Sad"
	MoodStressed = "Stressed"
)

// Error codes returned in API error bodies
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInvalidBody    = "INVALID_BODY"
	CodeIncomplete     = "INCOMPLETE"
	CodeUnknownContact = "UNKNOWN_CONTACT"
	CodeStreaming      = "STREAMING_UNSUPPORTED"
	CodeInternal       = "INTERNAL"
	CodeRateLimit      = "RATE_LIMIT"
)
