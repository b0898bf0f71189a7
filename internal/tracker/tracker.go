// Package tracker runs mood submissions through the fitness pipeline and keeps
// per-actor escalation state.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mrwolf/burnout-server/internal/burnout"
	"github.com/mrwolf/burnout-server/internal/classifier"
	"github.com/mrwolf/burnout-server/internal/db"
	"github.com/mrwolf/burnout-server/internal/escalation"
	"github.com/mrwolf/burnout-server/internal/handoff"
	"github.com/mrwolf/burnout-server/internal/models"
	"github.com/mrwolf/burnout-server/internal/sentiment"
	"github.com/mrwolf/burnout-server/internal/trends"
	"github.com/mrwolf/burnout-server/internal/vault"
)

var (
	ErrIncomplete     = errors.New("mood, sleep hours and journal entry are all required")
	ErrUnknownContact = errors.New("unknown contact")
)

// Store persists mood records
type Store interface {
	InsertMood(ctx context.Context, rec db.MoodRecord) (db.MoodRecord, error)
	ListMoods(ctx context.Context, actor string) ([]db.MoodRecord, error)
	ClearMoods(ctx context.Context, actor string) (int64, error)
	WatchMoods(ctx context.Context, actor string) <-chan []db.MoodRecord
}

// Classifier predicts Fit or Unfit for a submission
type Classifier interface {
	Classify(ctx context.Context, mood, sleep, journal string) classifier.Result
}

// AuditLog records assessments and drafted hand-off messages
type AuditLog interface {
	LogAssessment(entry vault.Assessment) error
	WriteHandoff(note vault.HandoffNote) (string, error)
}

type Options struct {
	Store        Store
	Classifier   Classifier
	Analyzer     sentiment.Analyzer
	Notifier     handoff.Notifier
	Audit        AuditLog
	Contacts     handoff.Directory
	ModelTimeout time.Duration
	Location     *time.Location
}

type Service struct {
	store        Store
	classifier   Classifier
	analyzer     sentiment.Analyzer
	notifier     handoff.Notifier
	audit        AuditLog
	contacts     handoff.Directory
	modelTimeout time.Duration
	location     *time.Location

	mu       sync.Mutex
	sessions map[string]*session

	contactsMu sync.RWMutex
}

type session struct {
	mu        sync.Mutex
	state     escalation.State
	lastAlert string
}

func New(opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		classifier:   opts.Classifier,
		analyzer:     opts.Analyzer,
		notifier:     opts.Notifier,
		audit:        opts.Audit,
		contacts:     opts.Contacts,
		modelTimeout: opts.ModelTimeout,
		location:     opts.Location,
		sessions:     make(map[string]*session),
	}
	if s.analyzer == nil {
		s.analyzer = sentiment.Keywords{}
	}
	if s.notifier == nil {
		s.notifier = handoff.LogNotifier{}
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if len(s.contacts) == 0 {
		s.contacts = handoff.DefaultDirectory()
	}
	return s
}

func (s *Service) session(actor string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	if !ok {
		sess = &session{}
		s.sessions[actor] = sess
	}
	return sess
}

// Submission is one mood entry as typed by the user
type Submission struct {
	Mood         string
	SleepHours   string
	JournalEntry string
}

func (sub Submission) complete() bool {
	return strings.TrimSpace(sub.Mood) != "" &&
		strings.TrimSpace(sub.SleepHours) != "" &&
		strings.TrimSpace(sub.JournalEntry) != ""
}

// Outcome is what one submission produced. Record is nil when the sleep
// hours did not parse.
type Outcome struct {
	Result     classifier.Result
	Escalation escalation.State
	Handoff    bool
	Alert      *handoff.Alert
	Record     *db.MoodRecord
	Tips       []models.SelfCareTip
}

// Prediction is the user-facing label, "Error: <message>" on failure
func (o Outcome) Prediction() string {
	return o.Result.String()
}

// Submit classifies the entry, advances the actor's escalation state and
// stores a scored record. Submissions for one actor are serialized.
func (s *Service) Submit(ctx context.Context, actor string, sub Submission) (Outcome, error) {
	if !sub.complete() {
		return Outcome{}, ErrIncomplete
	}

	sess := s.session(actor)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := Outcome{Tips: Tips(sub.Mood)}

	cctx := ctx
	if s.modelTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, s.modelTimeout)
		defer cancel()
	}
	out.Result = s.classifier.Classify(cctx, sub.Mood, sub.SleepHours, sub.JournalEntry)

	// Error results leave the counter where it was
	if !out.Result.Failed() {
		sess.state, out.Handoff = escalation.Next(sess.state, out.Result.Unfit())
	}
	out.Escalation = sess.state

	if out.Handoff {
		alert := handoff.NewAlert(actor, s.Contacts())
		sess.lastAlert = alert.ID
		out.Alert = &alert
		if err := s.notifier.Notify(ctx, alert); err != nil {
			slog.Error("[Tracker] Hand-off notification failed",
				slog.String("actor", actor),
				slog.String("alert_id", alert.ID),
				slog.String("error", err.Error()))
		}
	}

	var storeErr error
	if hours, err := burnout.ParseSleep(sub.SleepHours); err == nil {
		category := s.analyzer.Analyze(sub.JournalEntry)
		rec, err := s.store.InsertMood(ctx, db.MoodRecord{
			Actor:        actor,
			Mood:         sub.Mood,
			SleepHours:   sub.SleepHours,
			JournalEntry: sub.JournalEntry,
			Sentiment:    string(category),
			BurnoutScore: burnout.Score(sub.Mood, hours, category),
		})
		if err != nil {
			storeErr = fmt.Errorf("storing mood record: %w", err)
		} else {
			out.Record = &rec
		}
	} else {
		slog.Debug("[Tracker] Sleep hours not numeric, no record stored",
			slog.String("actor", actor),
			slog.String("sleep_hours", sub.SleepHours))
	}

	s.logAssessment(actor, sub.Mood, out)
	return out, storeErr
}

func (s *Service) logAssessment(actor, mood string, out Outcome) {
	if s.audit == nil {
		return
	}
	entry := vault.NewAssessment(actor, mood, string(out.Result.Label), out.Result.Raw,
		out.Escalation.UnfitCount, out.Handoff, out.Record != nil)
	entry.Error = out.Result.Message
	if err := s.audit.LogAssessment(entry); err != nil {
		slog.Error("[Tracker] Failed to write assessment log", slog.String("actor", actor), slog.String("error", err.Error()))
	}
}

// History returns the actor's records, newest first
func (s *Service) History(ctx context.Context, actor string) ([]db.MoodRecord, error) {
	records, err := s.store.ListMoods(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("listing mood history: %w", err)
	}
	return records, nil
}

// Trend summarizes the actor's last seven days
func (s *Service) Trend(ctx context.Context, actor string, now time.Time) (trends.Week, error) {
	records, err := s.History(ctx, actor)
	if err != nil {
		return trends.Week{}, err
	}
	return trends.Build(records, now, s.location), nil
}

// Watch streams the actor's history after every change until ctx ends
func (s *Service) Watch(ctx context.Context, actor string) <-chan []db.MoodRecord {
	return s.store.WatchMoods(ctx, actor)
}

// Clear deletes all of the actor's records. Escalation state is kept.
func (s *Service) Clear(ctx context.Context, actor string) (int64, error) {
	n, err := s.store.ClearMoods(ctx, actor)
	if err != nil {
		return 0, fmt.Errorf("clearing mood history: %w", err)
	}
	slog.Info("[Tracker] Cleared mood history", slog.String("actor", actor), slog.Int64("deleted", n))
	return n, nil
}

func (s *Service) Escalation(actor string) escalation.State {
	sess := s.session(actor)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// Acknowledge clears a pending hand-off
func (s *Service) Acknowledge(actor string) escalation.State {
	sess := s.session(actor)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = escalation.Acknowledge(sess.state)
	return sess.state
}

func (s *Service) Contacts() handoff.Directory {
	s.contactsMu.RLock()
	defer s.contactsMu.RUnlock()
	return s.contacts
}

// SetContacts replaces the hand-off directory. An empty directory is ignored.
func (s *Service) SetContacts(d handoff.Directory) {
	if len(d) == 0 {
		return
	}
	s.contactsMu.Lock()
	s.contacts = d
	s.contactsMu.Unlock()
}

// Compose drafts the hand-off message for the named contact and keeps a
// copy in the audit log. The draft path is empty when there is no audit log.
func (s *Service) Compose(actor, contact string) (handoff.Message, string, error) {
	c, ok := s.Contacts().Find(contact)
	if !ok {
		return handoff.Message{}, "", fmt.Errorf("%w: %q", ErrUnknownContact, contact)
	}
	msg := handoff.Compose(c)

	if s.audit == nil {
		return msg, "", nil
	}

	sess := s.session(actor)
	sess.mu.Lock()
	alertID := sess.lastAlert
	sess.mu.Unlock()
	if alertID == "" {
		alertID = "manual"
	}

	path, err := s.audit.WriteHandoff(vault.HandoffNote{
		AlertID: alertID,
		Actor:   actor,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		MailTo:  msg.MailTo,
	})
	if err != nil {
		return msg, "", fmt.Errorf("saving hand-off draft: %w", err)
	}
	return msg, path, nil
}

// Tips returns self-care suggestions for Sad or Stressed moods
func Tips(mood string) []models.SelfCareTip {
	switch mood {
	case models.MoodSad, models.MoodStressed:
		tips := make([]models.SelfCareTip, len(models.SelfCareTips))
		copy(tips, models.SelfCareTips)
		return tips
	}
	return nil
}
