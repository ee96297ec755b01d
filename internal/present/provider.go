// Package present is the user-facing flow shared by the local number draw
// and the remote fortune narrative.
package present

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/lottery"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	"github.com/ichi0g0y/lucky-by-birthday/internal/version"
)

// Result holds whichever output the provider produced.
type Result struct {
	Draw      *types.LuckyDraw
	Narrative string
}

// Provider turns birth fields into a result.
type Provider interface {
	Name() string
	Provide(ctx context.Context, fields types.BirthFields) (*Result, error)
}

// Loader is implemented by providers slow enough to announce a pending call.
type Loader interface {
	LoadingMessage() string
}

// LocalProvider draws numbers in-process.
type LocalProvider struct{}

func (LocalProvider) Name() string {
	return "local"
}

func (LocalProvider) Provide(_ context.Context, fields types.BirthFields) (*Result, error) {
	input, err := lottery.ParseBirthFields(fields)
	if err != nil {
		return nil, err
	}
	result, err := lottery.Draw(input)
	if err != nil {
		return nil, err
	}
	return &Result{Draw: &result.LuckyDraw}, nil
}

// RemoteProvider asks the fortune endpoint for a narrative.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteProvider returns a provider for baseURL. timeout <= 0 keeps the client default.
func NewRemoteProvider(baseURL string, timeout time.Duration) *RemoteProvider {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &RemoteProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

func (p *RemoteProvider) Name() string {
	return "remote"
}

func (p *RemoteProvider) LoadingMessage() string {
	return "운세를 불러오는 중..."
}

type fortuneEnvelope struct {
	Content string `json:"content"`
	Error   string `json:"error"`
}

func (p *RemoteProvider) Provide(ctx context.Context, fields types.BirthFields) (*Result, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/fortune", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fortune request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope fortuneEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("fortune server returned status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if envelope.Error != "" {
			return nil, errors.New(envelope.Error)
		}
		return nil, fmt.Errorf("fortune server returned status %d", resp.StatusCode)
	}
	if strings.TrimSpace(envelope.Content) == "" {
		return nil, errors.New("empty fortune")
	}
	return &Result{Narrative: envelope.Content}, nil
}
