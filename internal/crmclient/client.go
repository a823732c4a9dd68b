// Package crmclient talks to the remote CRM API. Every call is a POST with an
// {"inputData": ...} body; each endpoint has its own adapter that turns the
// response envelope into console types.
package crmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"crm-console/pkg/api"
	apperrors "crm-console/pkg/errors"
)

const maxBodySize = 10 << 20

// Credential - источник bearer-токена текущей сессии.
type Credential interface {
	BearerToken() string
}

// StaticToken - Credential из готовой строки.
type StaticToken string

func (t StaticToken) BearerToken() string { return string(t) }

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cred       Credential
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("crmclient"),
	}
}

// WithCredential возвращает копию клиента, подписывающую запросы токеном cred.
func (c *Client) WithCredential(cred Credential) *Client {
	cp := *c
	cp.cred = cred
	return &cp
}

// post выполняет запрос и возвращает конверт только при status == "success".
func (c *Client) post(ctx context.Context, path string, input any) (*api.Envelope, error) {
	if input == nil {
		input = struct{}{}
	}
	body, err := json.Marshal(api.Request[any]{InputData: input})
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cred != nil {
		if token := c.cred.BearerToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("Запрос к CRM API не выполнен", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %v", path, apperrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: чтение ответа: %v", path, apperrors.ErrTransport, err)
	}
	c.logger.Debug("Ответ CRM API",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env api.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == "" {
		return nil, fmt.Errorf("%s: %w: HTTP %d без конверта", path, apperrors.ErrTransport, resp.StatusCode)
	}

	if !env.IsSuccess() {
		appErr := apperrors.NewApplicationError(env.Msg, env.Errors)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, errors.Join(appErr, apperrors.ErrUnauthorized)
		}
		return nil, appErr
	}
	return &env, nil
}

// mutate возвращает msg сервера при успехе (его может не быть).
func (c *Client) mutate(ctx context.Context, path string, input any) (string, error) {
	env, err := c.post(ctx, path, input)
	if err != nil {
		return "", err
	}
	return env.Msg, nil
}

func isEmptyData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeList разбирает data как массив; отсутствующие данные - пустой список.
func decodeList[T any](env *api.Envelope) ([]T, error) {
	if isEmptyData(env.Data) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("%w: неверный формат списка: %v", apperrors.ErrTransport, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeOne принимает и объект, и массив (берётся первый элемент).
// Пустой массив означает, что запись не найдена.
func decodeOne[T any](env *api.Envelope) (T, error) {
	var zero T
	if isEmptyData(env.Data) {
		return zero, apperrors.ErrNotFound
	}
	trimmed := bytes.TrimSpace(env.Data)
	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return zero, fmt.Errorf("%w: неверный формат записи: %v", apperrors.ErrTransport, err)
		}
		if len(list) == 0 {
			return zero, apperrors.ErrNotFound
		}
		return list[0], nil
	}
	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return zero, fmt.Errorf("%w: неверный формат записи: %v", apperrors.ErrTransport, err)
	}
	return one, nil
}
