package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/storage"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 64)...)

func newTestKYCService() (*KYCService, *storage.MemoryStore) {
	store := storage.NewMemoryStore("https://files.example.com/kyc")
	svc := NewKYCService(repository.NewMemoryKYCRepository(), store, zerolog.Nop())
	svc.now = fixedClock(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC))
	return svc, store
}

func TestSubmitKYCStoresDocument(t *testing.T) {
	svc, store := newTestKYCService()

	rec, err := svc.Submit(context.Background(), "m-1", KYCInput{
		DocumentType:   models.IDTypePassport,
		DocumentNumber: "AA1234567",
		Document:       bytes.NewReader(pngBytes),
		DeclaredMIME:   "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusPending, rec.VerificationStatus)
	assert.True(t, strings.HasPrefix(rec.DocumentImageURL, "https://files.example.com/kyc/kyc/m-1/2024/12/10/"))
	assert.True(t, strings.HasSuffix(rec.DocumentImageURL, ".png"))

	key := strings.TrimPrefix(rec.DocumentImageURL, "https://files.example.com/kyc/")
	data, contentType, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, pngBytes, data)
}

func TestSubmitKYCRejections(t *testing.T) {
	tests := []struct {
		name  string
		input KYCInput
	}{
		{"missing file", KYCInput{DocumentType: models.IDTypePassport, DocumentNumber: "AA1234567"}},
		{"svg", KYCInput{DocumentType: models.IDTypePassport, DocumentNumber: "AA1234567", Document: strings.NewReader("<svg></svg>")}},
		{"text", KYCInput{DocumentType: models.IDTypePassport, DocumentNumber: "AA1234567", Document: strings.NewReader("hello")}},
		{"declared mismatch", KYCInput{DocumentType: models.IDTypePassport, DocumentNumber: "AA1234567", Document: bytes.NewReader(pngBytes), DeclaredMIME: "image/jpeg"}},
		{"bad type", KYCInput{DocumentType: "LIBRARY_CARD", DocumentNumber: "AA1234567", Document: bytes.NewReader(pngBytes)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestKYCService()
			_, err := svc.Submit(context.Background(), "m-1", tt.input)
			assert.Equal(t, result.KindValidation, result.KindOf(err))
		})
	}
}
