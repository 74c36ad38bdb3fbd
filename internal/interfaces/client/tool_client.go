// Package client cliente HTTP de la API de herramientas (lo usa toolctl).
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/inventario-chatbot/internal/application/dto"
)

// APIError respuesta de error de la API.
type APIError struct {
	Status int
	Body   dto.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.Body.Code, e.Body.Message)
}

// ToolClient habla con /api/tools y /api/inventory.
type ToolClient struct {
	http *resty.Client
}

// New construye el cliente contra baseURL (ej. http://localhost:8080).
func New(baseURL string) *ToolClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json")
	return &ToolClient{http: c}
}

// ListTools devuelve la tabla de herramientas del servidor.
func (c *ToolClient) ListTools(ctx context.Context) ([]dto.ToolDefinition, error) {
	var out dto.ToolListResponse
	if err := c.get(ctx, "/api/tools", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Call invoca la herramienta name con args (JSON crudo; vacío equivale a {}).
func (c *ToolClient) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var out dto.ToolResultResponse
	var apiErr dto.ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(args)).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/tools/" + url.PathEscape(name))
	if err != nil {
		return "", fmt.Errorf("invocar %s: %w", name, err)
	}
	if resp.IsError() {
		return "", &APIError{Status: resp.StatusCode(), Body: apiErr}
	}
	return out.Result, nil
}

// Stock consulta un producto por nombre exacto.
func (c *ToolClient) Stock(ctx context.Context, name string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.get(ctx, "/api/inventory/stock", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movements historial de un producto.
func (c *ToolClient) Movements(ctx context.Context, name string, limit int) (*dto.MovementListResponse, error) {
	var out dto.MovementListResponse
	params := map[string]string{"name": name, "limit": fmt.Sprint(limit)}
	if err := c.get(ctx, "/api/inventory/movements", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ToolClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	var apiErr dto.ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Body: apiErr}
	}
	return nil
}
