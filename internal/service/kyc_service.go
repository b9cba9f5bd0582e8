package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/ids"
	"github.com/shopstack-asia/spi-sdb-app/internal/media/sniffer"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

const MaxDocumentBytes = 10 << 20

var (
	ErrDocumentMissing     = result.Validation("Validation failed", map[string]string{"document_image": "is required"})
	ErrDocumentTooLarge    = result.Validation("Validation failed", map[string]string{"document_image": "must be 10MB or smaller"})
	ErrDocumentUnsupported = result.Validation("Validation failed", map[string]string{"document_image": "must be a JPEG, PNG, WEBP or PDF file"})
)

type DocumentStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type KYCInput struct {
	DocumentType   models.IDType `json:"document_type" validate:"required,oneof=PASSPORT NATIONAL_ID DRIVER_LICENSE"`
	DocumentNumber string        `json:"document_number" validate:"required,min=5"`
	Document       io.Reader     `json:"-"`
	DeclaredMIME   string        `json:"-"`
}

type KYCService struct {
	records repository.KYCRepository
	store   DocumentStore
	now     func() time.Time
	log     zerolog.Logger
}

func NewKYCService(records repository.KYCRepository, store DocumentStore, log zerolog.Logger) *KYCService {
	return &KYCService{
		records: records,
		store:   store,
		now:     time.Now,
		log:     log,
	}
}

// Submit stores the document and files a PENDING verification record that
// points at it.
func (s *KYCService) Submit(ctx context.Context, memberID string, input KYCInput) (models.KYCRecord, error) {
	if err := validateStruct(input); err != nil {
		return models.KYCRecord{}, err
	}
	if input.Document == nil {
		return models.KYCRecord{}, ErrDocumentMissing
	}

	data, err := io.ReadAll(io.LimitReader(input.Document, MaxDocumentBytes+1))
	if err != nil {
		return models.KYCRecord{}, result.Wrap(result.KindInternal, "read document", err)
	}
	if len(data) == 0 {
		return models.KYCRecord{}, ErrDocumentMissing
	}
	if len(data) > MaxDocumentBytes {
		return models.KYCRecord{}, ErrDocumentTooLarge
	}

	detected, err := sniffer.DetectHead(data[:min(len(data), 512)])
	if err != nil || detected.Type == sniffer.TypeSVG {
		return models.KYCRecord{}, ErrDocumentUnsupported
	}
	if input.DeclaredMIME != "" && input.DeclaredMIME != "application/octet-stream" && input.DeclaredMIME != detected.MIME {
		return models.KYCRecord{}, result.Validation("Validation failed", map[string]string{
			"document_image": fmt.Sprintf("declared %s but content is %s", input.DeclaredMIME, detected.MIME),
		})
	}

	now := s.now().UTC()
	key := s.buildObjectKey(memberID, ids.New(), detected.Extension(), now)
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), detected.MIME)
	if err != nil {
		return models.KYCRecord{}, result.Wrap(result.KindInternal, "store document", err)
	}

	record, err := s.records.Create(ctx, models.KYCRecord{
		MemberID:           memberID,
		DocumentType:       input.DocumentType,
		DocumentNumber:     input.DocumentNumber,
		DocumentImageURL:   url,
		VerificationStatus: models.VerificationStatusPending,
		SubmittedAt:        now.Format(time.RFC3339),
	})
	if err != nil {
		var re *result.Error
		if !errors.As(err, &re) {
			err = result.Wrap(result.KindInternal, "save kyc record", err)
		}
		return models.KYCRecord{}, err
	}

	s.log.Info().Str("member_id", memberID).Str("object_key", key).Str("format", string(detected.Type)).Msg("kyc document submitted")
	return record, nil
}

func (s *KYCService) buildObjectKey(memberID, documentID, ext string, at time.Time) string {
	return path.Join("kyc", memberID, at.Format("2006/01/02"), fmt.Sprintf("%s.%s", documentID, ext))
}
