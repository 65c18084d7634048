package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/model"
)

// Endpoint and header values of the generator API
const (
	GeneratePath      = "generate"
	AcceptHeader      = "application/json, text/plain, */*"
	ContentTypeJSON   = "application/json"
	PayloadTypeField  = "type"
	maxErrorBodyBytes = 1 << 16
	maxImageBodyBytes = 8 << 20
)

// HTTPService implements Generator against the generator REST endpoint.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
	logger *zap.SugaredLogger
	strip  *bluemonday.Policy
	now    func() time.Time
}

// NewHTTPService constructs a Generator that posts to <baseURL>/generate.
func NewHTTPService(baseURL string, client HTTPClient, logger *zap.SugaredLogger) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("generate: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("generate: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("generate: base URL must be absolute: %q", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTPService{
		base:   parsed,
		client: client,
		logger: logger,
		strip:  bluemonday.StrictPolicy(),
		now:    time.Now,
	}, nil
}

// Endpoint returns the absolute URL requests are sent to
func (s *HTTPService) Endpoint() string {
	return s.base.ResolveReference(&url.URL{Path: GeneratePath}).String()
}

// Generate posts values plus the kind tag and parses the image pair.
func (s *HTTPService) Generate(ctx context.Context, kind model.Kind, values model.FormValues) (model.Artifact, error) {
	payload := make(map[string]string, len(values)+1)
	for k, v := range values {
		payload[k] = v
	}
	payload[PayloadTypeField] = kind.PayloadType()

	req, err := s.newJSONRequest(ctx, payload)
	if err != nil {
		return model.Artifact{}, err
	}

	s.logger.Debugf("Posting %s request to %s", kind.PayloadType(), req.URL)
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warnf("Generate request for %s failed: %v", kind, err)
		return model.Artifact{}, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := s.errorFromResponse(resp)
		s.logger.Warnf("Generator returned %d for %s: %s", te.Status, kind, te.Message)
		return model.Artifact{}, te
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBodyBytes+1))
	if err != nil {
		return model.Artifact{}, &TransportError{Message: err.Error(), Err: err}
	}
	if len(body) > maxImageBodyBytes {
		s.logger.Warnf("Generator reply for %s exceeds %d bytes", kind, maxImageBodyBytes)
		return model.Artifact{}, ErrResponseTooLarge
	}

	caption, noCaption, err := parseImages(body)
	if err != nil {
		return model.Artifact{}, err
	}

	artifact := model.Artifact{
		ID:         newArtifactID(),
		Kind:       kind,
		Caption:    caption,
		NoCaption:  noCaption,
		ReceivedAt: s.now(),
	}
	s.logger.Infof("Received %s artifact %s", kind, artifact.ID)
	return artifact, nil
}

func (s *HTTPService) newJSONRequest(ctx context.Context, payload any) (*http.Request, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("generate: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint(), &buf)
	if err != nil {
		return nil, fmt.Errorf("generate: build request: %w", err)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("Content-Type", ContentTypeJSON)
	return req, nil
}

func (s *HTTPService) errorFromResponse(resp *http.Response) *TransportError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	// plain bodies are passed through as received; stripped markup leaves
	// layout whitespace behind, so that is trimmed
	text := string(body)
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mediaType == "text/html" {
		text = strings.TrimSpace(s.strip.Sanitize(text))
	}
	if strings.TrimSpace(text) == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &TransportError{Status: resp.StatusCode, Message: text}
}

// imagePair is the canonical reply. Pointers tell a missing key from an empty one.
type imagePair struct {
	Caption   *string `json:"caption"`
	NoCaption *string `json:"no_caption"`
}

// parseImages accepts {"caption","no_caption"}, a JSON string or bare base64
// text. The single-image forms fill both variants.
func parseImages(body []byte) (caption, noCaption string, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", "", ErrEmptyResponse
	}

	switch trimmed[0] {
	case '{':
		var pair imagePair
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return "", "", fmt.Errorf("generate: decode response: %w", err)
		}
		if pair.Caption != nil {
			caption = *pair.Caption
		}
		if pair.NoCaption != nil {
			noCaption = *pair.NoCaption
		}
		if caption == "" {
			caption = noCaption
		}
		if noCaption == "" {
			noCaption = caption
		}
	case '"':
		if err := json.Unmarshal(trimmed, &caption); err != nil {
			return "", "", fmt.Errorf("generate: decode response: %w", err)
		}
		noCaption = caption
	default:
		caption = string(trimmed)
		noCaption = caption
	}

	if caption == "" {
		return "", "", ErrEmptyResponse
	}
	return caption, noCaption, nil
}

func newArtifactID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
