package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/domain"
)

// ReplyClient talks to the support chatbot endpoints. One POST per message,
// no retries; a failed exchange is terminal for that message.
type ReplyClient struct {
	messageURL string
	clearURL   string
	httpClient *http.Client
}

func NewReplyClient(cfg *config.Config) *ReplyClient {
	return &ReplyClient{
		messageURL: cfg.Endpoint(cfg.MessagePath),
		clearURL:   cfg.Endpoint(cfg.ClearPath),
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Message string `json:"message,omitempty"`
}

// Reply and Error are pointers so that field presence survives decoding:
// the interpretation below is keyed on which fields the server sent,
// not on their values.
type rpcResponse struct {
	Result *rpcResult `json:"result"`
	Error  *rpcError  `json:"error"`
}

type rpcResult struct {
	Reply   *string `json:"reply"`
	Error   *string `json:"error"`
	Success bool    `json:"success"`
}

type rpcError struct {
	Message string `json:"message"`
}

// Send posts one user message and interprets the response in order of
// precedence: result.reply, result.error, result of unknown shape,
// top-level error, then nothing recognizable at all.
func (c *ReplyClient) Send(ctx context.Context, text string) (string, error) {
	parsed, err := c.post(ctx, c.messageURL, rpcParams{Message: text})
	if err != nil {
		return "", err
	}

	switch {
	case parsed.Result != nil && parsed.Result.Reply != nil:
		return *parsed.Result.Reply, nil
	case parsed.Result != nil && parsed.Result.Error != nil:
		return "", &domain.ServerError{Message: *parsed.Result.Error}
	case parsed.Result != nil:
		return "", domain.ErrUnexpectedFormat
	case parsed.Error != nil:
		return "", &domain.ServerError{Message: parsed.Error.Message}
	default:
		return "", domain.ErrNoReply
	}
}

// ClearHistory asks the server to drop the stored conversation context.
func (c *ReplyClient) ClearHistory(ctx context.Context) error {
	parsed, err := c.post(ctx, c.clearURL, rpcParams{})
	if err != nil {
		return err
	}
	if parsed.Result != nil && parsed.Result.Error != nil {
		return &domain.ServerError{Message: *parsed.Result.Error}
	}
	if parsed.Result == nil || !parsed.Result.Success {
		return domain.ErrHistoryNotCleared
	}
	return nil
}

func (c *ReplyClient) post(ctx context.Context, url string, params rpcParams) (*rpcResponse, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, rootCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rootCause(err)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// rootCause strips the URL wrapper the http client adds around transport
// failures, so the text rendered into the log is the failure description
// itself rather than the full request line.
func rootCause(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
