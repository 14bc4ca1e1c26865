package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/soujanya-006/intervuai/internal/ai"
	"github.com/soujanya-006/intervuai/internal/filestore"
	"github.com/soujanya-006/intervuai/internal/index"
	"github.com/soujanya-006/intervuai/internal/ingest"
	"github.com/soujanya-006/intervuai/internal/model"
	appErr "github.com/soujanya-006/intervuai/internal/pkg/errors"
	"github.com/soujanya-006/intervuai/internal/repo"
)

type SessionState string

const (
	StateAwaitingFile SessionState = "awaiting_file"
	StateIndexReady   SessionState = "index_ready"
	StateAwaitingTurn SessionState = "awaiting_turn"
	StateGenerating   SessionState = "generating"
)

// interviewPrompt is the fixed persona template. Retrieved resume context, the
// running transcript and the new message are substituted per turn.
const interviewPrompt = `You are IntervuAI, an experienced HR interviewer.
Follow these rules:
- Professional, polite, no slang.
- Only ask/answer from the resume text.
- If unclear, ask user to clarify.
- Start with introductions, then projects/experience, then behavioral Qs.
- Can summarize strengths, weaknesses, and improvements if asked.
- Keep questions short and crisp like real interviews.

Context from resume:
%s

Chat history:
%s

User: %s
IntervuAI:`

// Session holds the ephemeral state of one resume interview: the retrieval
// index rebuilt from the file and the in-memory transcript. It is owned by a
// single user and admits one turn at a time.
type Session struct {
	ID       string
	UserID   int64
	FileName string

	mu      sync.Mutex
	state   SessionState
	index   *index.Index
	history []model.Turn
	touched time.Time
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

type InterviewConfig struct {
	ChunkSize     int
	ChunkOverlap  int
	TopK          int
	MaxSessions   int
	SessionTTL    time.Duration
	Timeout       time.Duration
	MaxInputChars int
}

type InterviewService struct {
	files     *repo.FileRepo
	store     filestore.Store
	embedder  ai.IEmbedder
	generator ai.IGenerator
	cfg       InterviewConfig

	mu      sync.Mutex
	byID    *expirable.LRU[string, *Session]
	byOwner map[string]string
}

func NewInterviewService(files *repo.FileRepo, store filestore.Store, embedder ai.IEmbedder, generator ai.IGenerator, cfg InterviewConfig) *InterviewService {
	if cfg.TopK <= 0 {
		cfg.TopK = 1
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 256
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	s := &InterviewService{
		files:     files,
		store:     store,
		embedder:  embedder,
		generator: generator,
		cfg:       cfg,
		byOwner:   make(map[string]string),
	}
	// no eviction callback: the LRU runs it under its own lock, on the
	// caller's goroutine. Stale byOwner entries are pruned on lookup miss.
	s.byID = expirable.NewLRU[string, *Session](cfg.MaxSessions, nil, cfg.SessionTTL)
	return s
}

func ownerKey(userID int64, fileName string) string {
	return fmt.Sprintf("%d:%s", userID, fileName)
}

// forgetOwner drops the owner mapping if it still points at the given session.
func (s *InterviewService) forgetOwner(userID int64, fileName, sessionID string) {
	key := ownerKey(userID, fileName)
	s.mu.Lock()
	if current, ok := s.byOwner[key]; ok && current == sessionID {
		delete(s.byOwner, key)
	}
	s.mu.Unlock()
}

// Open selects a resume for interviewing: it loads the stored file, extracts
// and chunks its text and builds a fresh retrieval index. Opening the same
// resume again reuses the live session including its transcript.
func (s *InterviewService) Open(ctx context.Context, userID int64, fileName string) (*Session, error) {
	s.mu.Lock()
	if id, ok := s.byOwner[ownerKey(userID, fileName)]; ok {
		if sess, ok := s.byID.Get(id); ok {
			s.mu.Unlock()
			return sess, nil
		}
		delete(s.byOwner, ownerKey(userID, fileName))
	}
	s.mu.Unlock()

	file, err := s.files.GetByName(ctx, userID, fileName)
	if err != nil {
		return nil, err
	}
	reader, err := s.store.Open(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("open stored resume: %w", err)
	}
	data, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		FileName: file.Name,
		state:    StateAwaitingFile,
		touched:  time.Now(),
	}

	text, err := ingest.ExtractText(ctx, file.Name, data)
	if err != nil {
		return nil, err
	}
	chunks := ingest.NewSplitter(s.cfg.ChunkSize, s.cfg.ChunkOverlap).Split(text)
	idx, err := index.Build(ctx, s.embedder, chunks)
	if err != nil {
		return nil, err
	}
	sess.index = idx
	sess.state = StateIndexReady

	// Add may evict synchronously at capacity; keep it outside s.mu so the
	// lock order stays s.mu -> LRU everywhere
	s.byID.Add(sess.ID, sess)
	s.mu.Lock()
	s.byOwner[ownerKey(userID, fileName)] = sess.ID
	s.mu.Unlock()

	logutil.GetLogger(ctx).Info("interview session opened",
		zap.Int64("user_id", userID),
		zap.String("file", file.Name),
		zap.String("session_id", sess.ID),
		zap.Int("indexed_chunks", idx.Len()),
	)
	return sess, nil
}

func (s *InterviewService) get(userID int64, sessionID string) (*Session, error) {
	sess, ok := s.byID.Get(sessionID)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	if sess.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	return sess, nil
}

// Send runs one interview turn: append the user message, retrieve the most
// relevant resume chunk, build the persona prompt and generate the reply. A
// session already generating rejects the turn instead of queuing it. On
// generation failure the transcript keeps the user message and nothing else.
func (s *InterviewService) Send(ctx context.Context, userID int64, sessionID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", appErr.ErrInvalid
	}
	if s.cfg.MaxInputChars > 0 && len(message) > s.cfg.MaxInputChars {
		return "", appErr.ErrInvalid
	}
	sess, err := s.get(userID, sessionID)
	if err != nil {
		return "", err
	}
	if !sess.mu.TryLock() {
		return "", appErr.ErrTooMany
	}
	defer sess.mu.Unlock()

	sess.state = StateGenerating
	sess.touched = time.Now()
	sess.history = append(sess.history, model.Turn{Role: model.RoleUser, Content: message})

	turnCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	retrieved, err := sess.index.Query(turnCtx, s.embedder, message, s.cfg.TopK)
	if err != nil {
		sess.state = StateAwaitingTurn
		return "", err
	}
	prompt := buildPrompt(retrieved, sess.history[:len(sess.history)-1], message)
	reply, err := s.generator.Generate(turnCtx, prompt)
	if err != nil {
		sess.state = StateAwaitingTurn
		logutil.GetLogger(ctx).Error("generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return "", err
	}
	sess.history = append(sess.history, model.Turn{Role: model.RoleAssistant, Content: reply})
	sess.state = StateAwaitingTurn
	return reply, nil
}

func (s *InterviewService) History(userID int64, sessionID string) ([]model.Turn, error) {
	sess, err := s.get(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]model.Turn, len(sess.history))
	copy(out, sess.history)
	return out, nil
}

func (s *InterviewService) Close(userID int64, sessionID string) error {
	sess, err := s.get(userID, sessionID)
	if err != nil {
		return err
	}
	s.byID.Remove(sess.ID)
	s.forgetOwner(sess.UserID, sess.FileName, sess.ID)
	return nil
}

// Invalidate drops the live session for (user, file), if any. Called when the
// underlying file changes or is removed.
func (s *InterviewService) Invalidate(userID int64, fileName string) {
	key := ownerKey(userID, fileName)
	s.mu.Lock()
	id, ok := s.byOwner[key]
	if ok {
		delete(s.byOwner, key)
	}
	s.mu.Unlock()
	if ok {
		s.byID.Remove(id)
	}
}

// SweepIdle evicts sessions untouched for longer than the session TTL and
// returns how many were dropped.
func (s *InterviewService) SweepIdle() int {
	cutoff := time.Now().Add(-s.cfg.SessionTTL)
	dropped := 0
	for _, id := range s.byID.Keys() {
		sess, ok := s.byID.Peek(id)
		if !ok {
			continue
		}
		sess.mu.Lock()
		idle := sess.touched.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			s.byID.Remove(id)
			s.forgetOwner(sess.UserID, sess.FileName, id)
			dropped++
		}
	}
	return dropped
}

func buildPrompt(retrieved []string, history []model.Turn, message string) string {
	context := strings.Join(retrieved, " ")
	var transcript strings.Builder
	for _, turn := range history {
		transcript.WriteString(string(turn.Role))
		transcript.WriteString(": ")
		transcript.WriteString(turn.Content)
		transcript.WriteString("\n")
	}
	return fmt.Sprintf(interviewPrompt, context, transcript.String(), message)
}
