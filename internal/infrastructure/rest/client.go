// Package rest implementa los puertos de dominio contra el backend StockPro:
// un cliente HTTP base y un gateway por recurso. Toda la tolerancia de formas
// del backend (variantes de casing, rutas de imagen relativas, rol numérico)
// se resuelve aquí, en el borde; hacia adentro solo circulan entidades canónicas.
package rest

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

	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/pkg/logger"
)

// TokenSource provee el bearer token de la sesión actual; vacío = sin sesión.
// Lo implementa session.Store.
type TokenSource interface {
	Token() string
}

// Client cliente HTTP base compartido por los gateways de recurso.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logger.Logger
}

// NewClient construye el cliente. tokens puede ser nil para endpoints públicos.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// BaseURL origen del backend, usado para resolver rutas de imagen relativas.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.log != nil {
		evt := c.log.Debug().Str("method", method).Str("path", path).Dur("elapsed", time.Since(start))
		if err != nil {
			evt.Err(err).Msg("petición al backend fallida")
		} else {
			evt.Int("status", resp.StatusCode).Msg("petición al backend")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	return resp, nil
}

// getJSON emite un GET y decodifica la respuesta en out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// sendJSON serializa in como JSON y decodifica la respuesta en out (out nil
// descarta el cuerpo).
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	resp, err := c.do(ctx, method, path, nil, "application/json", body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// sendForm envía un cuerpo multipart ya armado y decodifica la respuesta.
func (c *Client) sendForm(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	resp, err := c.do(ctx, method, path, nil, contentType, body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// delete emite un DELETE y valida solo el estado.
func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, "", nil)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

// apiMessage forma mínima del cuerpo de error del backend.
type apiMessage struct {
	Message string `json:"message"`
}

// decode mapea el estado HTTP a errores de dominio y, si out no es nil,
// decodifica el cuerpo JSON.
//
//	401/403 -> ErrUnauthorized (el caller debe volver al login)
//	404     -> ErrNotFound
//	4xx     -> ErrInvalidInput con el mensaje del backend
//	5xx     -> ErrRemote
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var msg apiMessage
		_ = json.Unmarshal(raw, &msg)
		detail := msg.Message
		if detail == "" {
			detail = strings.TrimSpace(string(raw))
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, orStatus(detail, resp.StatusCode))
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, orStatus(detail, resp.StatusCode))
		case resp.StatusCode < 500:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, orStatus(detail, resp.StatusCode))
		default:
			return fmt.Errorf("%w: %s", domain.ErrRemote, orStatus(detail, resp.StatusCode))
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrRemote, err)
	}
	return nil
}

func orStatus(detail string, status int) string {
	if detail == "" {
		return fmt.Sprintf("estado HTTP %d", status)
	}
	return detail
}
