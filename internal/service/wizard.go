package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/repository"
)

// Step is the wizard position. The flow is StepBasicInfo -> StepCategoryDetails
// -> submitted (terminal, flagged on the session rather than a third step).
type Step int

const (
	StepBasicInfo       Step = 0
	StepCategoryDetails Step = 1
)

// Catalog is the external persistence service holding canonical listings.
// All calls must honour context cancellation.
type Catalog interface {
	Get(ctx context.Context, id string) (*entity.Listing, error)
	Create(ctx context.Context, listing entity.Listing) (*entity.Listing, error)
	Update(ctx context.Context, id string, listing entity.Listing) (*entity.Listing, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
}

type ImageStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

const (
	SubjectListingCreated = "listing.created"
	SubjectListingUpdated = "listing.updated"
)

type ListingEvent struct {
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Category  entity.Category `json:"category"`
	Action    string          `json:"action"`
}

var ErrNoSession = errors.New("no active editor session")

const (
	msgSubmitFailed = "failed to save the listing, please try again"
	msgLoadFailed   = "failed to load the listing"
)

// SessionState is the read-only snapshot handed to the navigation layer.
type SessionState struct {
	Listing   entity.Listing `json:"listing"`
	Step      Step           `json:"step"`
	Errors    FieldErrors    `json:"errors"`
	EditMode  bool           `json:"editMode"`
	TargetID  string         `json:"targetId,omitempty"`
	Submitted bool           `json:"submitted"`
	Message   string         `json:"message,omitempty"`
}

// session is the transient working state of one user's editor. The mutex
// serializes all operations on it, which gives each session the single
// logical thread of control the editor assumes. ctx spans the session's
// lifetime; tearing the session down cancels it, and any in-flight catalog
// call checks it before applying results.
type session struct {
	mu        sync.Mutex
	userID    string
	listing   entity.Listing
	step      Step
	errs      FieldErrors
	editMode  bool
	targetID  string
	submitted bool
	message   string

	ctx    context.Context
	cancel context.CancelFunc
}

func (s *session) snapshot() *SessionState {
	errs := make(FieldErrors, len(s.errs))
	for k, v := range s.errs {
		errs[k] = v
	}
	return &SessionState{
		Listing:   s.listing,
		Step:      s.step,
		Errors:    errs,
		EditMode:  s.editMode,
		TargetID:  s.targetID,
		Submitted: s.submitted,
		Message:   s.message,
	}
}

// WizardService owns the editor sessions, one per user at most. Starting a
// new session replaces (and cancels) the previous one, so a second tab just
// takes over; no cross-session merge is attempted.
type WizardService struct {
	drafts    repository.DraftRepository
	catalog   Catalog
	publisher EventPublisher
	storage   ImageStorage
	log       logger.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewWizardService(
	drafts repository.DraftRepository,
	catalog Catalog,
	publisher EventPublisher,
	storage ImageStorage,
	log logger.Logger,
) *WizardService {
	return &WizardService{
		drafts:    drafts,
		catalog:   catalog,
		publisher: publisher,
		storage:   storage,
		log:       log,
		sessions:  make(map[string]*session),
	}
}

func newSession(userID string) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		userID: userID,
		step:   StepBasicInfo,
		errs:   FieldErrors{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// StartSession opens a fresh editor session for the user, seeded from the
// durable draft when one exists. An already-running session is cancelled and
// replaced.
func (ws *WizardService) StartSession(ctx context.Context, userID string) (*SessionState, error) {
	s := newSession(userID)

	draft := ws.drafts.Load(ctx, userID)
	if draft.CurrentDraft != nil {
		s.listing = *draft.CurrentDraft
		if draft.Step == int(StepCategoryDetails) {
			s.step = StepCategoryDetails
		}
	}

	ws.mu.Lock()
	if prev, ok := ws.sessions[userID]; ok {
		prev.cancel()
	}
	ws.sessions[userID] = s
	ws.mu.Unlock()

	ws.log.Infof("WizardService.StartSession: session started for user %s (resumed draft: %t)", userID, draft.CurrentDraft != nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (ws *WizardService) get(userID string) (*session, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	s, ok := ws.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// getOrStart returns the user's session, creating an empty one (no draft
// seeding) when none is active. Edit mode uses this: an edit session never
// resumes a stale creation draft.
func (ws *WizardService) getOrStart(userID string) *session {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if s, ok := ws.sessions[userID]; ok {
		return s
	}
	s := newSession(userID)
	ws.sessions[userID] = s
	return s
}

// State returns the current snapshot without side effects.
func (ws *WizardService) State(ctx context.Context, userID string) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Change merges an in-place field edit into the working listing and persists
// the draft. It runs no step validation, but it does clear stale validation
// messages for the fields that were just edited.
func (ws *WizardService) Change(ctx context.Context, userID string, patch entity.ListingPatch) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.listing)
	for _, field := range patch.Fields() {
		delete(s.errs, field)
	}
	ws.saveDraft(ctx, s, patch)

	return s.snapshot(), nil
}

// Next advances StepBasicInfo -> StepCategoryDetails once the common fields
// pass the required check. On failure the session stays put; the only
// mutation is the error map.
func (ws *WizardService) Next(ctx context.Context, userID string) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := validateBasicInfo(&s.listing); len(errs) > 0 {
		s.errs = errs
		return s.snapshot(), nil
	}

	s.errs = FieldErrors{}
	s.step = StepCategoryDetails
	ws.saveDraft(ctx, s, entity.PatchFrom(s.listing))

	return s.snapshot(), nil
}

// Back returns to StepBasicInfo unconditionally. Nothing entered so far is
// lost; only the step index changes and is persisted.
func (ws *WizardService) Back(ctx context.Context, userID string) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = StepBasicInfo
	ws.saveDraft(ctx, s, entity.ListingPatch{})

	return s.snapshot(), nil
}

// Submit merges the final step's values, validates the full listing and
// hands it to the catalog. The transition only exists on StepCategoryDetails
// and only once: a session still on StepBasicInfo is sent back through the
// common-field check, and a session already submitted is left untouched so a
// retried request cannot create the listing twice. The draft is cleared only
// after the catalog accepted the listing, so a failed submit never loses the
// user's input. A submit cancelled by session teardown is absorbed silently.
func (ws *WizardService) Submit(ctx context.Context, userID string, patch entity.ListingPatch) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return s.snapshot(), nil
	}
	if s.step != StepCategoryDetails {
		s.errs = validateBasicInfo(&s.listing)
		return s.snapshot(), nil
	}

	patch.Apply(&s.listing)

	errs := validateBasicInfo(&s.listing)
	for field, msg := range validateCategoryDetails(&s.listing) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		s.errs = errs
		return s.snapshot(), nil
	}
	s.errs = FieldErrors{}
	s.message = ""

	payload := s.listing.ForSubmission()

	var saved *entity.Listing
	var action, subject string
	if s.editMode {
		payload.ID = s.targetID
		saved, err = ws.catalog.Update(s.ctx, s.targetID, payload)
		action, subject = "updated", SubjectListingUpdated
	} else {
		payload.ID = ""
		saved, err = ws.catalog.Create(s.ctx, payload)
		action, subject = "created", SubjectListingCreated
	}

	if s.ctx.Err() != nil {
		// Session was torn down mid-flight: discard the result, mutate
		// nothing, surface nothing.
		return s.snapshot(), nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.snapshot(), nil
		}
		ws.log.Errorf("WizardService.Submit: catalog %s failed for user %s: %v", action, userID, err)
		s.message = msgSubmitFailed
		return s.snapshot(), nil
	}

	s.listing.ID = saved.ID
	s.submitted = true

	if err := ws.drafts.Clear(ctx, userID); err != nil {
		ws.log.Warnf("WizardService.Submit: failed to clear draft for user %s: %v", userID, err)
	}
	ws.publish(ctx, subject, ListingEvent{
		ListingID: saved.ID,
		UserID:    userID,
		Category:  saved.Category,
		Action:    action,
	})

	ws.log.Infof("WizardService.Submit: listing %s %s by user %s", saved.ID, action, userID)
	return s.snapshot(), nil
}

// EnterEditMode loads the canonical listing from the catalog and turns the
// session into an edit session: the working copy is replaced wholesale (not
// merged) and any stale creation draft is cleared. On fetch failure the
// session keeps whatever it had and carries a session-level message; on
// cancellation nothing happens at all.
func (ws *WizardService) EnterEditMode(ctx context.Context, userID, id string) (*SessionState, error) {
	s := ws.getOrStart(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	fetched, err := ws.catalog.Get(s.ctx, id)

	if s.ctx.Err() != nil {
		return s.snapshot(), nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.snapshot(), nil
		}
		ws.log.Errorf("WizardService.EnterEditMode: failed to fetch listing %s for user %s: %v", id, userID, err)
		s.message = msgLoadFailed
		return s.snapshot(), nil
	}

	s.listing = *fetched
	s.editMode = true
	s.targetID = id
	s.step = StepBasicInfo
	s.errs = FieldErrors{}
	s.message = ""
	s.submitted = false

	if err := ws.drafts.Clear(ctx, userID); err != nil {
		ws.log.Warnf("WizardService.EnterEditMode: failed to clear draft for user %s: %v", userID, err)
	}

	ws.log.Infof("WizardService.EnterEditMode: user %s editing listing %s", userID, id)
	return s.snapshot(), nil
}

// AttachImage stores the opaque encoded image and merges the returned handle
// into the working listing. How the bytes were produced is not this
// service's concern.
func (ws *WizardService) AttachImage(ctx context.Context, userID, fileName string, data []byte) (*SessionState, error) {
	s, err := ws.get(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	url, err := ws.storage.Upload(s.ctx, fileName, data)
	if s.ctx.Err() != nil {
		return s.snapshot(), nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.snapshot(), nil
		}
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	patch := entity.ListingPatch{Image: &url}
	patch.Apply(&s.listing)
	ws.saveDraft(ctx, s, patch)

	return s.snapshot(), nil
}

// Close tears the session down: in-flight catalog calls are cancelled and
// their results discarded. The draft is left behind for later resumption.
func (ws *WizardService) Close(ctx context.Context, userID string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if s, ok := ws.sessions[userID]; ok {
		s.cancel()
		delete(ws.sessions, userID)
		ws.log.Infof("WizardService.Close: session closed for user %s", userID)
	}
}

// saveDraft persists the working state. Edit sessions never touch the draft,
// and a failed write only costs recoverability, so it is logged rather than
// surfaced. Callers must hold s.mu.
func (ws *WizardService) saveDraft(ctx context.Context, s *session, patch entity.ListingPatch) {
	if s.editMode || s.submitted {
		return
	}
	if err := ws.drafts.Save(ctx, s.userID, patch, int(s.step)); err != nil {
		ws.log.Warnf("WizardService: failed to save draft for user %s: %v", s.userID, err)
	}
}

func (ws *WizardService) publish(ctx context.Context, subject string, event ListingEvent) {
	if ws.publisher == nil {
		return
	}
	if err := ws.publisher.Publish(ctx, subject, event); err != nil {
		ws.log.Warnf("WizardService: failed to publish %s event for listing %s: %v", subject, event.ListingID, err)
	}
}
