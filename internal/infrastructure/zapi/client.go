// Package zapi implementa el puerto de mensajería sobre la API REST de Z-API (WhatsApp).
package zapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/ports"
	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/pkg/config"
	"github.com/jhoicas/aviso-pontos/pkg/observability"
	"github.com/jhoicas/aviso-pontos/pkg/phone"
)

// Verificar en tiempo de compilación que Client implementa MessageSender.
var _ ports.MessageSender = (*Client)(nil)

// OutcomePhoneFound resultado de la consulta de chat cuando el proveedor no informa error.
const OutcomePhoneFound = "Phone found"

const maxResponseBytes = 64 * 1024

// Client adaptador HTTP de Z-API. Usa net/http; no hay SDK oficial en Go.
type Client struct {
	baseURL       string
	instanceID    string
	instanceToken string
	clientToken   string
	httpClient    *http.Client
}

// NewClient construye el adaptador. Sin credenciales las llamadas devuelven error descriptivo.
func NewClient(cfg config.ZAPIConfig) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		instanceID:    cfg.InstanceID,
		instanceToken: cfg.InstanceToken,
		clientToken:   cfg.ClientToken,
		httpClient: &http.Client{
			// El caso de uso impone además un context.WithTimeout por envío.
			Timeout: 30 * time.Second,
		},
	}
}

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendImageRequest struct {
	Phone   string `json:"phone"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendText envía un mensaje de texto. phone es DDD + número (sin código de país).
func (c *Client) SendText(ctx context.Context, phoneNumber, message string) (*dto.SendResult, error) {
	return c.send(ctx, "send-text", phoneNumber, sendTextRequest{Phone: phone.WithCountryCode(phoneNumber), Message: message})
}

// SendImage envía una imagen con el mensaje como leyenda.
func (c *Client) SendImage(ctx context.Context, phoneNumber, caption, imageURL string) (*dto.SendResult, error) {
	return c.send(ctx, "send-image", phoneNumber, sendImageRequest{
		Phone:   phone.WithCountryCode(phoneNumber),
		Image:   imageURL,
		Caption: caption,
	})
}

func (c *Client) send(ctx context.Context, action, phoneNumber string, payload any) (*dto.SendResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "zapi."+action)
	defer span.End()

	if err := phone.Validate(phoneNumber); err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("zapi: serializar request: %w", err)
	}
	status, raw, err := c.do(ctx, http.MethodPost, action, bytes.NewReader(body))
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if status < 200 || status > 299 {
		err := fmt.Errorf("zapi: %s HTTP %d: %s: %w", action, status, providerMessage(raw), domain.ErrMessagingFailed)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var out dto.SendResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("zapi: deserializar respuesta: %w", err)
	}
	if out.ZaapID == "" && out.MessageID == "" {
		return nil, fmt.Errorf("zapi: %s sin identificadores en la respuesta: %w", action, domain.ErrDeliveryUnknown)
	}
	return &out, nil
}

// ChatMetadata consulta el chat del teléfono. Si el proveedor responde con un mensaje
// (p. ej. número sin WhatsApp) ese mensaje es el resultado; errores 5xx se devuelven como error.
func (c *Client) ChatMetadata(ctx context.Context, phoneNumber string) (*dto.ChatMetadataDTO, error) {
	ctx, span := observability.Tracer().Start(ctx, "zapi.chat-metadata")
	defer span.End()

	full := phone.WithCountryCode(phoneNumber)
	status, raw, err := c.do(ctx, http.MethodGet, "chats/"+url.PathEscape(full), nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if status >= 500 {
		err := fmt.Errorf("zapi: chat-metadata HTTP %d: %s: %w", status, providerMessage(raw), domain.ErrMessagingFailed)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := &dto.ChatMetadataDTO{Phone: full, Found: true, Outcome: OutcomePhoneFound}
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && (e.Message != "" || e.Error != "") {
		out.Found = false
		out.Outcome = e.Message
		if out.Outcome == "" {
			out.Outcome = e.Error
		}
	} else if status >= 400 {
		out.Found = false
		out.Outcome = fmt.Sprintf("HTTP %d", status)
	}
	return out, nil
}

// do ejecuta la llamada contra la instancia y devuelve status y cuerpo (acotado).
func (c *Client) do(ctx context.Context, method, action string, body io.Reader) (int, []byte, error) {
	if c.instanceID == "" || c.instanceToken == "" {
		return 0, nil, fmt.Errorf("zapi: ZAPI_INSTANCE_ID / ZAPI_INSTANCE_TOKEN no configurados: %w", domain.ErrMessagingFailed)
	}
	endpoint := fmt.Sprintf("%s/instances/%s/token/%s/%s", c.baseURL, c.instanceID, c.instanceToken, action)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, fmt.Errorf("zapi: crear HTTP request: %w", err)
	}
	req.Header.Set("client-token", c.clientToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Sin respuesta no se sabe si el proveedor procesó la llamada.
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("zapi: timeout o cancelación: %w: %w", domain.ErrDeliveryUnknown, ctx.Err())
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return 0, nil, fmt.Errorf("zapi: timeout: %w: %w", domain.ErrDeliveryUnknown, err)
		}
		return 0, nil, fmt.Errorf("zapi: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("zapi: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func providerMessage(raw []byte) string {
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
