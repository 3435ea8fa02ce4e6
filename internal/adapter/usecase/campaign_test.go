package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
	"wabridge/internal/core/port/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(campaigns *mocks.MockCampaignRepository, quota *mocks.MockQuotaRepository, gateway *mocks.MockMessagingGateway) *CampaignService {
	return NewCampaignService(campaigns, quota, gateway,
		domain.NewPhoneNormalizer("+34"), discardLogger(), 100, 10)
}

func validRequest(numbers ...string) port.SendCampaignRequest {
	return port.SendCampaignRequest{
		UserPhoneID:  "phone-1",
		TemplateID:   "tpl-1",
		TemplateName: "summer_sale",
		CampaignName: "Summer Sale",
		Numbers:      numbers,
		Variables:    map[string]string{"var1": "Ana"},
		LanguageCode: "es",
	}
}

// TestSendWithinQuota ensures a clean run reserves exactly the sent count
// and releases nothing.
func TestSendWithinQuota(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(95, nil)
	quota.On("Reserve", mock.Anything, "phone-1", mock.AnythingOfType("string"), 4, 100).Return(nil)
	gateway.On("SendTemplate", mock.Anything, mock.AnythingOfType("port.TemplateMessage")).Return(nil)
	campaigns.On("Save", mock.Anything, mock.AnythingOfType("domain.Campaign")).Return(nil)

	result, err := svc.Send(context.Background(), validRequest(
		"+34699123456", "+34699123457", "+34699123458", "+34699123459"))
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if len(result.Successful) != 4 || len(result.Failed) != 0 {
		t.Fatalf("got %d successful, %d failed", len(result.Successful), len(result.Failed))
	}
	if result.CampaignID == "" {
		t.Fatal("expected a campaign id")
	}
	quota.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	campaigns.AssertExpectations(t)
}

// TestSendQuotaExceeded ensures an oversized request fails before any
// transport call or reservation.
func TestSendQuotaExceeded(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(95, nil)

	numbers := make([]string, 10)
	for i := range numbers {
		numbers[i] = "+34699123456"
	}
	_, err := svc.Send(context.Background(), validRequest(numbers...))

	var qe *domain.QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qe.Remaining != 5 {
		t.Fatalf("expected 5 remaining, got %d", qe.Remaining)
	}
	gateway.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "UploadMedia", mock.Anything, mock.Anything, mock.Anything)
	quota.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSendPartialFailure ensures per-recipient failures do not abort the
// run: the unsent remainder is released and the record keeps survivors only.
func TestSendPartialFailure(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(0, nil)
	quota.On("Reserve", mock.Anything, "phone-1", mock.AnythingOfType("string"), 10, 100).Return(nil)
	quota.On("Release", mock.Anything, "phone-1", mock.AnythingOfType("string"), 3).Return(nil)

	bad := map[string]bool{"+34699123402": true, "+34699123405": true, "+34699123408": true}
	gateway.On("SendTemplate", mock.Anything, mock.MatchedBy(func(msg port.TemplateMessage) bool {
		return bad[msg.To]
	})).Return(&domain.DispatchError{Recipient: "x", Message: "unreachable"})
	gateway.On("SendTemplate", mock.Anything, mock.MatchedBy(func(msg port.TemplateMessage) bool {
		return !bad[msg.To]
	})).Return(nil)

	campaigns.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Campaign) bool {
		return len(c.NumbersSent) == 7
	})).Return(nil)

	numbers := make([]string, 10)
	for i := range numbers {
		numbers[i] = "+3469912340" + string(rune('0'+i))
	}
	result, err := svc.Send(context.Background(), validRequest(numbers...))
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if len(result.Successful) != 7 {
		t.Fatalf("expected 7 successful, got %d", len(result.Successful))
	}
	if len(result.Failed) != 3 {
		t.Fatalf("expected 3 failed, got %d", len(result.Failed))
	}
	for _, f := range result.Failed {
		if f.Error != "unreachable" {
			t.Fatalf("expected transport message in failure, got %q", f.Error)
		}
	}
	quota.AssertExpectations(t)
	campaigns.AssertExpectations(t)
}

// TestSendBatchSequencing ensures dispatch over several batches never has
// more than batchSize sends in flight, starts a batch only after the
// previous one fully settled, and preserves input order across batches.
func TestSendBatchSequencing(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(0, nil)
	quota.On("Reserve", mock.Anything, "phone-1", mock.AnythingOfType("string"), 25, 100).Return(nil)
	campaigns.On("Save", mock.Anything, mock.Anything).Return(nil)

	var (
		mu       sync.Mutex
		started  []string
		inFlight atomic.Int32
		maxSeen  atomic.Int32
	)
	gateway.On("SendTemplate", mock.Anything, mock.AnythingOfType("port.TemplateMessage")).
		Run(func(args mock.Arguments) {
			msg := args.Get(1).(port.TemplateMessage)
			mu.Lock()
			started = append(started, msg.To)
			mu.Unlock()
			cur := inFlight.Add(1)
			for {
				m := maxSeen.Load()
				if cur <= m || maxSeen.CompareAndSwap(m, cur) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
		}).Return(nil)

	numbers := make([]string, 25)
	for i := range numbers {
		numbers[i] = fmt.Sprintf("+346991235%02d", i)
	}
	result, err := svc.Send(context.Background(), validRequest(numbers...))
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if got := maxSeen.Load(); got > 10 {
		t.Fatalf("%d sends in flight at once, batch size is 10", got)
	}
	if len(result.Successful) != 25 {
		t.Fatalf("got %d successful, want 25", len(result.Successful))
	}
	for i, n := range numbers {
		if result.Successful[i] != n {
			t.Fatalf("successful[%d] = %q, want %q (input order lost)", i, result.Successful[i], n)
		}
	}

	// Every send that started inside a batch window must belong to that
	// batch: the next batch may not begin before the previous one settled.
	if len(started) != 25 {
		t.Fatalf("recorded %d send starts, want 25", len(started))
	}
	for start := 0; start < len(numbers); start += 10 {
		end := min(start+10, len(numbers))
		batch := make(map[string]bool, end-start)
		for _, n := range numbers[start:end] {
			batch[n] = true
		}
		for _, n := range started[start:end] {
			if !batch[n] {
				t.Fatalf("send to %q started outside its batch window [%d,%d)", n, start, end)
			}
		}
	}
}

// TestSendMediaUploadFailure ensures a failed upload aborts the campaign
// with zero side effects.
func TestSendMediaUploadFailure(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(0, nil)
	gateway.On("UploadMedia", mock.Anything, "phone-1", mock.AnythingOfType("domain.InlineImage")).
		Return("", errors.New("image too large"))

	req := validRequest("+34699123456")
	req.Image = &domain.InlineImage{Data: []byte{0xFF}, Filename: "promo.jpg", MimeType: "image/jpeg"}

	_, err := svc.Send(context.Background(), req)

	var me *domain.MediaUploadError
	if !errors.As(err, &me) {
		t.Fatalf("expected MediaUploadError, got %v", err)
	}
	gateway.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything)
	quota.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	campaigns.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestSendNoValidRecipients ensures a batch of garbage numbers fails fast.
func TestSendNoValidRecipients(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(0, nil)

	_, err := svc.Send(context.Background(), validRequest("12345", "+49151123456"))
	if !errors.Is(err, domain.ErrNoValidRecipients) {
		t.Fatalf("expected ErrNoValidRecipients, got %v", err)
	}
	gateway.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything)
	quota.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSendValidation ensures missing fields fail before any collaborator
// is touched.
func TestSendValidation(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	req := validRequest("+34699123456")
	req.TemplateName = ""

	_, err := svc.Send(context.Background(), req)

	var be *domain.BadRequestError
	if !errors.As(err, &be) {
		t.Fatalf("expected BadRequestError, got %v", err)
	}
	quota.AssertNotCalled(t, "Used", mock.Anything, mock.Anything, mock.Anything)
}

// TestSendLanguageMapping ensures abbreviated codes expand to Graph API
// locales and unknown codes pass through.
func TestSendLanguageMapping(t *testing.T) {
	cases := map[string]string{"es": "es_ES", "en": "en_US", "fr": "fr_FR", "pt_BR": "pt_BR"}
	for code, want := range cases {
		campaigns := new(mocks.MockCampaignRepository)
		quota := new(mocks.MockQuotaRepository)
		gateway := new(mocks.MockMessagingGateway)
		svc := newTestService(campaigns, quota, gateway)

		quota.On("Used", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
		quota.On("Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		gateway.On("SendTemplate", mock.Anything, mock.MatchedBy(func(msg port.TemplateMessage) bool {
			return msg.LanguageCode == want
		})).Return(nil)
		campaigns.On("Save", mock.Anything, mock.Anything).Return(nil)

		req := validRequest("+34699123456")
		req.LanguageCode = code
		if _, err := svc.Send(context.Background(), req); err != nil {
			t.Fatalf("Send with language %q error: %v", code, err)
		}
		gateway.AssertExpectations(t)
	}
}

// TestListRemainingQuota ensures List reports limit minus used.
func TestListRemainingQuota(t *testing.T) {
	campaigns := new(mocks.MockCampaignRepository)
	quota := new(mocks.MockQuotaRepository)
	gateway := new(mocks.MockMessagingGateway)
	svc := newTestService(campaigns, quota, gateway)

	campaigns.On("ListBySender", mock.Anything, "phone-1").
		Return([]domain.Campaign{{CampaignID: "c1"}}, nil)
	quota.On("Used", mock.Anything, "phone-1", mock.AnythingOfType("string")).Return(37, nil)

	list, remaining, err := svc.List(context.Background(), "phone-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || remaining != 63 {
		t.Fatalf("got %d campaigns, %d remaining", len(list), remaining)
	}
}
