package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-asia/spi-sdb-app/internal/media/sniffer"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
	"github.com/shopstack-asia/spi-sdb-app/internal/service"
)

// SubmitKYC takes a multipart form with document_type, document_number and
// the document_image file.
func (h HandlerSet) SubmitKYC(c *gin.Context) {
	active, ok := requireSession(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxDocumentBytes+1<<20)
	file, header, err := c.Request.FormFile("document_image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			result.Fail(c, service.ErrDocumentTooLarge)
			return
		}
		result.Fail(c, service.ErrDocumentMissing)
		return
	}
	defer file.Close()

	if header.Size > service.MaxDocumentBytes {
		result.Fail(c, service.ErrDocumentTooLarge)
		return
	}

	record, err := h.kyc.Submit(c.Request.Context(), active.MemberID, service.KYCInput{
		DocumentType:   models.IDType(c.PostForm("document_type")),
		DocumentNumber: c.PostForm("document_number"),
		Document:       file,
		DeclaredMIME:   sniffer.MimeTypeFromHTTP(http.Header(header.Header)),
	})
	if err != nil {
		h.fail(c, err, "submit kyc")
		return
	}
	result.Created(c, record)
}
