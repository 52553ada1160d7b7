// Package rewrite asks a Claude model, on the Anthropic API or on Amazon
// Bedrock, to rewrite a deterministic report draft.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

const (
	DefaultMaxTokens = 2000
	DefaultTimeout   = 60 * time.Second
)

// Config configures a Client.
type Config struct {
	Provider string
	// APIKey authenticates against the Anthropic API. Bedrock uses the AWS
	// default credential chain instead.
	APIKey string
	// BaseURL overrides the Anthropic API endpoint.
	BaseURL string
	// Region selects the Bedrock region; empty falls back to the AWS config.
	Region    string
	Model     string
	MaxTokens int
	// MaxRetries is the number of SDK retries; zero disables them since a
	// failed rewrite already falls back to the deterministic draft.
	MaxRetries int
	Timeout    time.Duration
}

// Client sends a single user message and returns the first text reply.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewClient creates a rewrite client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("rewrite model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderAnthropic
	}

	opts := []option.RequestOption{
		option.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		}),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("rewrite api key is required for the anthropic provider")
		}
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
	case ProviderBedrock:
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		if awsCfg.Region == "" {
			return nil, errors.New("rewrite region is required for the bedrock provider")
		}
		opts = append(opts, bedrock.WithConfig(awsCfg))
	default:
		return nil, fmt.Errorf("unknown rewrite provider: %s", cfg.Provider)
	}

	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
	}, nil
}

// Rewrite sends prompt as one user message.
func (c *Client) Rewrite(ctx context.Context, prompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("rewrite request failed: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", errors.New("rewrite response contained no text")
}
