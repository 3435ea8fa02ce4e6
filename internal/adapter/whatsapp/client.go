// Package whatsapp implements the outbound gateway to the WhatsApp Graph
// API: template sends, media uploads and template listing.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"strings"

	"wabridge/internal/config/configs"
	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// Client talks to the Graph API. It implements port.MessagingGateway.
type Client struct {
	httpClient        *http.Client
	baseURL           string
	token             string
	businessAccountID string
	logger            *slog.Logger
}

// NewClient builds a Graph API client from configuration.
func NewClient(cfg configs.WhatsApp, logger *slog.Logger) *Client {
	return &Client{
		httpClient:        &http.Client{Timeout: cfg.Timeout},
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		token:             cfg.Token,
		businessAccountID: cfg.BusinessAccountID,
		logger:            logger,
	}
}

type templateParam struct {
	Type  string      `json:"type"`
	Text  string      `json:"text,omitempty"`
	Image *imageParam `json:"image,omitempty"`
}

type imageParam struct {
	ID string `json:"id"`
}

type templateComponent struct {
	Type       string          `json:"type"`
	Parameters []templateParam `json:"parameters"`
}

type templatePayload struct {
	Name       string              `json:"name"`
	Language   languagePayload     `json:"language"`
	Components []templateComponent `json:"components,omitempty"`
}

type languagePayload struct {
	Code string `json:"code"`
}

type messagePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templatePayload `json:"template"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SendTemplate submits one template message. The body parameters are bound
// positionally by the API, so the "varN" slots are ordered numerically
// before substitution. A media id, when present, rides in a header
// component. Transport errors come back as *domain.DispatchError.
func (c *Client) SendTemplate(ctx context.Context, msg port.TemplateMessage) error {
	payload := messagePayload{
		MessagingProduct: "whatsapp",
		To:               msg.To,
		Type:             "template",
		Template: templatePayload{
			Name:     msg.TemplateName,
			Language: languagePayload{Code: msg.LanguageCode},
		},
	}
	if len(msg.Variables) > 0 {
		payload.Template.Components = append(payload.Template.Components, templateComponent{
			Type:       "body",
			Parameters: bodyParameters(msg.Variables),
		})
	}
	if msg.MediaID != "" {
		payload.Template.Components = append(payload.Template.Components, templateComponent{
			Type:       "header",
			Parameters: []templateParam{{Type: "image", Image: &imageParam{ID: msg.MediaID}}},
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/messages", c.baseURL, msg.UserPhoneID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.DispatchError{Recipient: msg.To, Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &domain.DispatchError{Recipient: msg.To, Message: graphErrorMessage(resp.Body)}
	}
	c.logger.Debug("template message sent", slog.String("to", msg.To))
	return nil
}

// UploadMedia uploads an inline image as multipart form data and returns
// the media id the API assigns to it.
func (c *Client) UploadMedia(ctx context.Context, userPhoneID string, img domain.InlineImage) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, img.Filename))
	header.Set("Content-Type", img.MimeType)
	part, err := form.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err = part.Write(img.Data); err != nil {
		return "", err
	}
	if err = form.WriteField("messaging_product", "whatsapp"); err != nil {
		return "", err
	}
	if err = form.WriteField("type", "image"); err != nil {
		return "", err
	}
	if err = form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/media", c.baseURL, userPhoneID), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("media upload: %s", graphErrorMessage(resp.Body))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("media upload returned no id")
	}
	c.logger.Debug("media uploaded", slog.String("mediaId", out.ID))
	return out.ID, nil
}

// ListTemplates returns the templates registered with the business account.
func (c *Client) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/message_templates?limit=1000", c.baseURL, c.businessAccountID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("list templates: %s", graphErrorMessage(resp.Body))
	}

	var out struct {
		Data []domain.Template `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// bodyParameters orders the "varN" slots numerically by trailing integer.
func bodyParameters(vars map[string]string) []templateParam {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return varIndex(keys[i]) < varIndex(keys[j]) })

	params := make([]templateParam, len(keys))
	for i, k := range keys {
		params[i] = templateParam{Type: "text", Text: vars[k]}
	}
	return params
}

func varIndex(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "var"))
	if err != nil {
		return 0
	}
	return n
}

func graphErrorMessage(body io.Reader) string {
	var ge graphError
	if err := json.NewDecoder(body).Decode(&ge); err == nil && ge.Error.Message != "" {
		return ge.Error.Message
	}
	return "failed to send the message"
}
