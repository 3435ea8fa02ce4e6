package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// languageCodes maps abbreviated language codes to the BCP 47 locales the
// Graph API expects. Unknown codes pass through unchanged.
var languageCodes = map[string]string{
	"es": "es_ES",
	"en": "en_US",
	"fr": "fr_FR",
}

// CampaignService drives the campaign send workflow end to end. It
// implements port.CampaignUseCase by orchestrating the quota ledger, the
// phone normalizer, the messaging gateway and the campaign store.
type CampaignService struct {
	campaigns  port.CampaignRepository
	quota      port.QuotaRepository
	gateway    port.MessagingGateway
	normalizer domain.PhoneNormalizer
	logger     *slog.Logger

	dailyLimit int
	batchSize  int
}

// NewCampaignService creates the service with its collaborators injected.
func NewCampaignService(
	campaigns port.CampaignRepository,
	quota port.QuotaRepository,
	gateway port.MessagingGateway,
	normalizer domain.PhoneNormalizer,
	logger *slog.Logger,
	dailyLimit, batchSize int,
) *CampaignService {
	return &CampaignService{
		campaigns:  campaigns,
		quota:      quota,
		gateway:    gateway,
		normalizer: normalizer,
		logger:     logger,
		dailyLimit: dailyLimit,
		batchSize:  batchSize,
	}
}

// Send validates the request, enforces the daily quota, normalizes the
// recipients, uploads media when present and dispatches the template
// message in sequential batches of concurrent sends. The campaign record
// holds only the recipients that were actually sent to. Per-recipient
// failures land in the result; everything before the first dispatch is a
// fail-fast abort with no side effects.
func (s *CampaignService) Send(ctx context.Context, req port.SendCampaignRequest) (*port.SendCampaignResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	locale := mapLanguageCode(req.LanguageCode)
	day := domain.QuotaDay(time.Now())

	used, err := s.quota.Used(ctx, req.UserPhoneID, day)
	if err != nil {
		return nil, fmt.Errorf("read quota: %w", err)
	}
	if used+len(req.Numbers) > s.dailyLimit {
		return nil, &domain.QuotaExceededError{Limit: s.dailyLimit, Remaining: s.dailyLimit - used}
	}

	numbers := s.normalize(req.Numbers)
	if len(numbers) == 0 {
		return nil, domain.ErrNoValidRecipients
	}
	if used+len(numbers) > s.dailyLimit {
		return nil, &domain.QuotaExceededError{Limit: s.dailyLimit, Remaining: s.dailyLimit - used}
	}

	campaignID := domain.NewCampaignID()

	var mediaID string
	if req.Image != nil {
		mediaID, err = s.gateway.UploadMedia(ctx, req.UserPhoneID, *req.Image)
		if err != nil {
			return nil, &domain.MediaUploadError{Err: err}
		}
	}

	// The reservation is the atomic commit point: two concurrent sends for
	// the same sender cannot jointly pass it beyond the cap.
	if err = s.quota.Reserve(ctx, req.UserPhoneID, day, len(numbers), s.dailyLimit); err != nil {
		return nil, err
	}

	successful, failed := s.dispatch(ctx, numbers, req, mediaID, locale)

	if unused := len(numbers) - len(successful); unused > 0 {
		if err = s.quota.Release(ctx, req.UserPhoneID, day, unused); err != nil {
			// Sends already happened; an inflated counter beats failing the
			// whole campaign here.
			s.logger.Error("quota release failed",
				slog.String("userPhoneID", req.UserPhoneID), slog.Any("error", err))
		}
	}

	campaign := domain.Campaign{
		UserPhoneID:  req.UserPhoneID,
		CampaignID:   campaignID,
		CampaignName: req.CampaignName,
		TemplateUsed: req.TemplateName,
		NumbersSent:  successful,
		CreatedAt:    time.Now(),
	}
	if err = s.campaigns.Save(ctx, campaign); err != nil {
		// Known gap: the messages are out but the record is lost.
		return nil, fmt.Errorf("save campaign: %w", err)
	}

	s.logger.Info("campaign sent",
		slog.String("campaignId", campaignID),
		slog.Int("successful", len(successful)),
		slog.Int("failed", len(failed)))

	return &port.SendCampaignResult{
		CampaignID: campaignID,
		Successful: successful,
		Failed:     failed,
	}, nil
}

// dispatch partitions the recipients into fixed-size batches. Sends inside
// a batch run concurrently; the next batch starts only after every send in
// the current one has settled. Input order is preserved for survivors.
func (s *CampaignService) dispatch(ctx context.Context, numbers []string, req port.SendCampaignRequest, mediaID, locale string) ([]string, []port.FailedSend) {
	successful := make([]string, 0, len(numbers))
	failed := make([]port.FailedSend, 0)

	for start := 0; start < len(numbers); start += s.batchSize {
		batch := numbers[start:min(start+s.batchSize, len(numbers))]
		errs := make([]error, len(batch))

		var wg sync.WaitGroup
		for i, number := range batch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = s.gateway.SendTemplate(ctx, port.TemplateMessage{
					To:           number,
					TemplateName: req.TemplateName,
					UserPhoneID:  req.UserPhoneID,
					Variables:    req.Variables,
					MediaID:      mediaID,
					LanguageCode: locale,
				})
			}()
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				s.logger.Warn("send failed", slog.String("to", batch[i]), slog.Any("error", err))
				failed = append(failed, port.FailedSend{Number: batch[i], Error: errorMessage(err)})
				continue
			}
			successful = append(successful, batch[i])
		}
	}
	return successful, failed
}

// List returns the sender's campaigns together with the remaining quota
// for today.
func (s *CampaignService) List(ctx context.Context, userPhoneID string) ([]domain.Campaign, int, error) {
	campaigns, err := s.campaigns.ListBySender(ctx, userPhoneID)
	if err != nil {
		return nil, 0, err
	}
	used, err := s.quota.Used(ctx, userPhoneID, domain.QuotaDay(time.Now()))
	if err != nil {
		return nil, 0, err
	}
	return campaigns, s.dailyLimit - used, nil
}

// Templates proxies the template listing of the business account.
func (s *CampaignService) Templates(ctx context.Context) ([]domain.Template, error) {
	return s.gateway.ListTemplates(ctx)
}

func (s *CampaignService) normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, num := range raw {
		canonical, err := s.normalizer.Normalize(num)
		if err != nil {
			s.logger.Warn("recipient dropped", slog.String("number", num), slog.Any("error", err))
			continue
		}
		out = append(out, canonical)
	}
	return out
}

func validate(req port.SendCampaignRequest) error {
	switch {
	case req.UserPhoneID == "":
		return &domain.BadRequestError{Reason: "missing userPhoneID"}
	case req.TemplateID == "":
		return &domain.BadRequestError{Reason: "missing templateId"}
	case req.TemplateName == "":
		return &domain.BadRequestError{Reason: "missing templateName"}
	case req.CampaignName == "":
		return &domain.BadRequestError{Reason: "missing campaignName"}
	case len(req.Numbers) == 0:
		return &domain.BadRequestError{Reason: "numbers must be a non-empty array"}
	case req.LanguageCode == "":
		return &domain.BadRequestError{Reason: "missing languageCode"}
	}
	return nil
}

func mapLanguageCode(code string) string {
	if locale, ok := languageCodes[code]; ok {
		return locale
	}
	return code
}

func errorMessage(err error) string {
	var de *domain.DispatchError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
