package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

// Client envia os documentos de identidade para o Supabase Storage.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

func NewClient(baseURL, apiKey, bucket string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadIdentityDocument grava o arquivo em id_documents/<agentID>/<uuid>-<arquivo> e devolve o caminho.
func (c *Client) UploadIdentityDocument(ctx context.Context, agentID string, doc usecase.IdentityDocument) (string, error) {
	objectPath := usecase.DocumentObjectPath(agentID, doc.Filename)
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, url.PathEscape(c.bucket), escapePath(objectPath))

	contentType := doc.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(doc.Content).String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(doc.Content))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request supabase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.decodeError(resp)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("erro decode supabase: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"agent_id": agentID,
		"key":      out.Key,
	}).Debug("☁️ documento gravado no bucket")

	return objectPath, nil
}

// Ping verifica se o bucket existe e a chave é aceita.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/storage/v1/bucket/%s", c.baseURL, url.PathEscape(c.bucket))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request supabase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
}

func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return fmt.Errorf("supabase storage (status %d): %s", resp.StatusCode, e.Message)
	}
	return fmt.Errorf("supabase storage (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// escapePath escapa cada segmento da chave do objeto.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
