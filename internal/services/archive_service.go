package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mun-chits/internal/repository"
	"mun-chits/internal/views"
	chits_errors "mun-chits/pkg/errors"
	"mun-chits/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStore is the slice of the S3 client the archive needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ArchiveService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	store            ObjectStore
	presignTTL       time.Duration
	log              *logger.Logger
	now              func() time.Time
}

// NewArchiveService builds the service. A nil store disables exports.
func NewArchiveService(userRepo repository.UserRepository, conversationRepo repository.ConversationRepository, store ObjectStore, presignTTL time.Duration, log *logger.Logger) *ArchiveService {
	if log == nil {
		log = logger.NewNop()
	}
	if presignTTL <= 0 {
		presignTTL = time.Hour
	}
	return &ArchiveService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		store:            store,
		presignTTL:       presignTTL,
		log:              log,
		now:              time.Now,
	}
}

type ArchiveResult struct {
	Key               string    `json:"key"`
	URL               string    `json:"url"`
	ExpiresAt         time.Time `json:"expiresAt"`
	ConversationCount int       `json:"conversationCount"`
	MessageCount      int       `json:"messageCount"`
}

// ExportCommittee writes every approved chit of the EB's committee to object
// storage and returns a presigned download link.
func (s *ArchiveService) ExportCommittee(ctx context.Context, ebID uuid.UUID) (ArchiveResult, error) {
	if s.store == nil {
		return ArchiveResult{}, fmt.Errorf("%w: archive storage is not configured", chits_errors.ErrServiceUnavailable)
	}

	eb, err := s.userRepo.GetUserByID(ctx, ebID)
	if err != nil {
		return ArchiveResult{}, notFoundAs(err, "user not found")
	}
	if !eb.IsEB() {
		return ArchiveResult{}, fmt.Errorf("%w: only the executive board can export archives", chits_errors.ErrForbidden)
	}

	convs, err := s.conversationRepo.GetCommitteeConversations(ctx, eb.Committee)
	if err != nil {
		return ArchiveResult{}, err
	}

	now := s.now().UTC()
	doc := views.NewArchiveDocument(eb.Committee, convs, now)
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("failed to encode archive: %w", err)
	}

	key := ArchiveKey(eb.Committee, now)
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return ArchiveResult{}, fmt.Errorf("failed to upload archive: %w", err)
	}
	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("failed to presign archive: %w", err)
	}

	s.log.Info(ctx, "committee archive exported",
		zap.String("committee", eb.Committee),
		zap.String("key", key),
		zap.Int("messages", doc.MessageCount),
	)
	return ArchiveResult{
		Key:               key,
		URL:               url,
		ExpiresAt:         now.Add(s.presignTTL),
		ConversationCount: len(doc.Conversations),
		MessageCount:      doc.MessageCount,
	}, nil
}

// ArchiveKey is archives/<committee>/<timestamp>.json.
func ArchiveKey(committee string, at time.Time) string {
	safe := strings.ReplaceAll(strings.TrimSpace(committee), "/", "_")
	return fmt.Sprintf("archives/%s/%s.json", safe, at.UTC().Format("20060102T150405Z"))
}
