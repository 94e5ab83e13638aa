package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is the image model used when none is configured.
const DefaultOpenAIModel = "gpt-image-1"

// OpenAI generates line art with the OpenAI image API.
type OpenAI struct {
	Model   string
	Size    string
	Timeout time.Duration
	Opts    []option.RequestOption
	Now     func() time.Time
}

// NewOpenAIFromConfig validates the settings and returns the generator.
func NewOpenAIFromConfig(cfg *Settings) (*OpenAI, error) {
	if cfg == nil {
		return nil, errors.New("generator config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide generator.api_key or OPENAI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		Model:   model,
		Size:    cfg.Size,
		Timeout: cfg.Timeout,
		Opts:    opts,
	}, nil
}

// Generate implements Generator. The image is returned as a data URI when
// the API sends it inline, as a URL otherwise.
func (o *OpenAI) Generate(ctx context.Context, theme Theme) (string, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	client := openai.NewClient(o.Opts...)
	params := openai.ImageGenerateParams{
		Prompt: Prompt(theme, now()),
		Model:  openai.ImageModel(o.Model),
		N:      openai.Int(1),
	}
	if o.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(o.Size)
	}
	// Only the dall-e models accept a response format, gpt-image always
	// answers with base64 data.
	if strings.HasPrefix(o.Model, "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := client.Images.Generate(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai: no image generated")
	}
	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	case img.URL != "":
		return img.URL, nil
	}
	return "", errors.New("openai: empty image payload")
}
