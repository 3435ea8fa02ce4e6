package httpadapter

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// sendCampaignRequest mirrors the web client payload. The sender identity
// comes from the verified token, never from the body.
type sendCampaignRequest struct {
	TemplateID   string            `json:"templateId"`
	TemplateName string            `json:"templateName"`
	CampaignName string            `json:"campaignName"`
	Numbers      []string          `json:"numbers"`
	Variables    map[string]string `json:"variables"`
	Image        *inlineImage      `json:"image,omitempty"`
	LanguageCode string            `json:"languageCode"`
}

type inlineImage struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}

type sendCampaignResponse struct {
	Message    string            `json:"message"`
	CampaignID string            `json:"campaignId"`
	Successful []string          `json:"successful"`
	Failed     []port.FailedSend `json:"failed"`
}

// handleSendCampaign runs a campaign send. Partial per-recipient failure
// is still a 200; the split lives in the response payload.
func (h *Handler) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	var body sendCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid JSON"})
		return
	}

	req := port.SendCampaignRequest{
		UserPhoneID:  SenderFromContext(r.Context()),
		TemplateID:   body.TemplateID,
		TemplateName: body.TemplateName,
		CampaignName: body.CampaignName,
		Numbers:      body.Numbers,
		Variables:    body.Variables,
		LanguageCode: body.LanguageCode,
	}
	if body.Image != nil {
		data, err := base64.StdEncoding.DecodeString(body.Image.Data)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid image data"})
			return
		}
		req.Image = &domain.InlineImage{
			Data:     data,
			Filename: body.Image.Filename,
			MimeType: body.Image.MimeType,
		}
	}

	result, err := h.campaigns.Send(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sendCampaignResponse{
		Message:    "campaign sent",
		CampaignID: result.CampaignID,
		Successful: result.Successful,
		Failed:     result.Failed,
	})
}

type campaignView struct {
	CampaignID   string   `json:"campaignId"`
	CampaignName string   `json:"campaignName"`
	TemplateUsed string   `json:"templateUsed"`
	NumbersSent  []string `json:"numbersSent"`
	Timestamp    int64    `json:"timestamp"`
}

// handleListCampaigns returns the sender's campaigns and the remaining
// daily quota.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, remaining, err := h.campaigns.List(r.Context(), SenderFromContext(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	views := make([]campaignView, len(campaigns))
	for i, c := range campaigns {
		views[i] = campaignView{
			CampaignID:   c.CampaignID,
			CampaignName: c.CampaignName,
			TemplateUsed: c.TemplateUsed,
			NumbersSent:  c.NumbersSent,
			Timestamp:    c.CreatedAt.UnixMilli(),
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"campaigns":      views,
		"remainingQuota": remaining,
	})
}

// handleListTemplates proxies the business account's template catalogue.
func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.campaigns.Templates(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"templates": templates})
}
