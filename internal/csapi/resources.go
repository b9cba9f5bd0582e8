package csapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/result"
)

func (c *Client) GetMember(ctx context.Context, id string) (models.Member, error) {
	return enveloped[models.Member](ctx, c, http.MethodGet, "/sdb_member/"+url.PathEscape(id), nil)
}

func (c *Client) UpdateMember(ctx context.Context, id string, patch map[string]any) (models.Member, error) {
	return enveloped[models.Member](ctx, c, http.MethodPut, "/sdb_member/"+url.PathEscape(id), patch)
}

func (c *Client) GetPackages(ctx context.Context) ([]models.Package, error) {
	return enveloped[[]models.Package](ctx, c, http.MethodGet, "/sdb_package", nil)
}

func (c *Client) GetSubscriptions(ctx context.Context, memberID string) ([]models.Subscription, error) {
	return enveloped[[]models.Subscription](ctx, c, http.MethodGet, memberQuery("/sdb_subscription", memberID), nil)
}

func (c *Client) CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	return enveloped[models.Subscription](ctx, c, http.MethodPost, "/sdb_subscription", sub)
}

func (c *Client) GetFacilities(ctx context.Context) ([]models.Facility, error) {
	return enveloped[[]models.Facility](ctx, c, http.MethodGet, "/sdb_facility", nil)
}

func (c *Client) GetBookings(ctx context.Context, memberID string) ([]models.Booking, error) {
	return enveloped[[]models.Booking](ctx, c, http.MethodGet, memberQuery("/sdb_booking", memberID), nil)
}

func (c *Client) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	return enveloped[models.Booking](ctx, c, http.MethodPost, "/sdb_booking", booking)
}

func (c *Client) UpdateBooking(ctx context.Context, id string, booking models.Booking) (models.Booking, error) {
	return enveloped[models.Booking](ctx, c, http.MethodPut, "/sdb_booking/"+url.PathEscape(id), booking)
}

func (c *Client) GetPayments(ctx context.Context, memberID string) ([]models.Payment, error) {
	return enveloped[[]models.Payment](ctx, c, http.MethodGet, memberQuery("/sdb_payment", memberID), nil)
}

func (c *Client) CreatePayment(ctx context.Context, payment models.Payment) (models.Payment, error) {
	return enveloped[models.Payment](ctx, c, http.MethodPost, "/sdb_payment", payment)
}

// SubmitKYC posts the record as a multipart form. The document itself has
// already been stored; only its URL travels upstream.
func (c *Client) SubmitKYC(ctx context.Context, record models.KYCRecord) (models.KYCRecord, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"member_id":          record.MemberID,
		"document_type":      string(record.DocumentType),
		"document_number":    record.DocumentNumber,
		"document_image_url": record.DocumentImageURL,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return models.KYCRecord{}, result.Wrap(result.KindInternal, "encode kyc form", err)
		}
	}
	if err := w.Close(); err != nil {
		return models.KYCRecord{}, result.Wrap(result.KindInternal, "encode kyc form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sdb_kyc_record", &buf)
	if err != nil {
		return models.KYCRecord{}, result.Wrap(result.KindInternal, "build upstream request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(ctx, req, authMember)

	var env result.Envelope[models.KYCRecord]
	if err := c.send(req, &env); err != nil {
		return models.KYCRecord{}, err
	}
	if !env.Success && env.Error != "" {
		return models.KYCRecord{}, result.Upstream(http.StatusOK, fmt.Sprintf("kyc rejected: %s", env.Error))
	}
	return env.Data, nil
}
