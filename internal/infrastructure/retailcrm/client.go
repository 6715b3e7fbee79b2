package retailcrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/pkg/config"
)

const apiPrefix = "/api/v5"

// maxBodyBytes límite de lectura de respuestas del CRM.
const maxBodyBytes = 1 << 20

// Client cliente HTTP de RetailCRM. Usa net/http de la librería estándar;
// no requiere SDK. Todos los campos quedan fijos tras la construcción: el
// handle es compartible entre peticiones sin estado mutable.
type Client struct {
	baseURL    string
	apiKey     string
	site       string
	httpClient *http.Client
}

// NewClient construye el cliente desde la configuración. El timeout es el
// único límite temporal por llamada; no hay reintentos.
func NewClient(cfg config.CRMConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + apiPrefix,
		apiKey:  cfg.APIKey,
		site:    cfg.Site,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetCustomers lista clientes con filtros opcionales.
func (c *Client) GetCustomers(ctx context.Context, q CustomerQuery) (*CustomersEnvelope, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Name != "" {
		params.Set("filter[name]", q.Name)
	}
	if q.Email != "" {
		params.Set("filter[email]", q.Email)
	}
	if q.RegisteredFrom != "" {
		params.Set("filter[dateFrom]", q.RegisteredFrom)
	}
	if q.RegisteredTo != "" {
		params.Set("filter[dateTo]", q.RegisteredTo)
	}

	var env CustomersEnvelope
	if err := c.get(ctx, "/customers", params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// CreateCustomer crea un cliente y devuelve el envelope mínimo {success, id}.
func (c *Client) CreateCustomer(ctx context.Context, payload CustomerPayload) (*CreateEnvelope, error) {
	var env CreateEnvelope
	if err := c.postForm(ctx, "/customers/create", "customer", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetCustomer obtiene un cliente por ID interno del CRM.
func (c *Client) GetCustomer(ctx context.Context, id int) (*CustomerEnvelope, error) {
	params := url.Values{}
	params.Set("by", "id")

	var env CustomerEnvelope
	if err := c.get(ctx, "/customers/"+strconv.Itoa(id), params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetOrders lista órdenes de un cliente (resumen, sin líneas).
func (c *Client) GetOrders(ctx context.Context, customerID, page, limit int) (*OrdersEnvelope, error) {
	params := url.Values{}
	params.Set("filter[customerId]", strconv.Itoa(customerID))
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var env OrdersEnvelope
	if err := c.get(ctx, "/orders", params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// CreateOrder crea una orden.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*CreateEnvelope, error) {
	var env CreateEnvelope
	if err := c.postForm(ctx, "/orders/create", "order", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetOrder obtiene una orden por ID interno del CRM (incluye líneas y pagos).
func (c *Client) GetOrder(ctx context.Context, id int) (*OrderEnvelope, error) {
	params := url.Values{}
	params.Set("by", "id")

	var env OrderEnvelope
	if err := c.get(ctx, "/orders/"+strconv.Itoa(id), params, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetProducts busca productos del catálogo por externalId.
func (c *Client) GetProducts(ctx context.Context, externalID string) ([]Product, error) {
	params := url.Values{}
	params.Set("filter[externalId]", externalID)

	var env ProductsEnvelope
	if err := c.get(ctx, "/store/products", params, &env); err != nil {
		return nil, err
	}
	return env.Products, nil
}

// BatchCreateProducts crea productos en lote y devuelve los IDs agregados.
func (c *Client) BatchCreateProducts(ctx context.Context, products []ProductPayload) ([]int, error) {
	var env BatchProductsEnvelope
	if err := c.postForm(ctx, "/store/products/batch/create", "products", products, &env); err != nil {
		return nil, err
	}
	return env.AddedProducts, nil
}

// GetPaymentTypes devuelve los códigos de tipos de pago configurados en el
// CRM. El campo paymentTypes puede venir como mapa código->info o como lista.
func (c *Client) GetPaymentTypes(ctx context.Context) ([]string, error) {
	var env paymentTypesEnvelope
	if err := c.get(ctx, "/reference/payment-types", url.Values{}, &env); err != nil {
		return nil, err
	}
	if len(env.PaymentTypes) == 0 {
		return nil, nil
	}

	var asMap map[string]paymentTypeInfo
	if err := json.Unmarshal(env.PaymentTypes, &asMap); err == nil {
		codes := make([]string, 0, len(asMap))
		for _, info := range asMap {
			if info.Code != "" {
				codes = append(codes, info.Code)
			}
		}
		return codes, nil
	}

	var asList []paymentTypeInfo
	if err := json.Unmarshal(env.PaymentTypes, &asList); err == nil {
		codes := make([]string, 0, len(asList))
		for _, info := range asList {
			if info.Code != "" {
				codes = append(codes, info.Code)
			}
		}
		return codes, nil
	}

	return nil, fmt.Errorf("%w: paymentTypes no es mapa ni lista", domain.ErrMalformedUpstreamData)
}

// CreatePayment crea un pago ligado a una orden.
func (c *Client) CreatePayment(ctx context.Context, payload PaymentPayload) (*CreateEnvelope, error) {
	var env CreateEnvelope
	if err := c.postForm(ctx, "/orders/payments/create", "payment", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// get lanza un GET con filtros query-string. El parámetro site viaja siempre.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("site", c.site)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	return c.do(req, out)
}

// postForm lanza un POST form-encoded donde el payload viaja como string JSON
// bajo una única clave de entidad (convención de la plataforma CRM).
func (c *Client) postForm(ctx context.Context, path, entityKey string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload %s: %w", entityKey, err)
	}

	form := url.Values{}
	form.Set("site", c.site)
	form.Set(entityKey, string(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

// do ejecuta la petición y clasifica la falla: error de red ->
// ErrUpstreamUnavailable; estado no 2xx -> ErrUpstreamRejected con el mensaje
// del proveedor; cuerpo indecodificable -> ErrMalformedUpstreamData.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstreamUnavailable, req.Context().Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstreamRejected, resp.StatusCode, vendorMessage(resp, rawBody))
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("%w: deserializar respuesta de %s: %v", domain.ErrMalformedUpstreamData, req.URL.Path, err)
	}
	return nil
}

// vendorMessage extrae el mensaje de error del CRM: errorMsg del JSON si el
// content type lo permite, si no el texto crudo.
func vendorMessage(resp *http.Response, rawBody []byte) string {
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var apiErr apiError
		if err := json.Unmarshal(rawBody, &apiErr); err == nil && apiErr.ErrorMsg != "" {
			msg := apiErr.ErrorMsg
			for field, detail := range apiErr.Errors {
				msg += fmt.Sprintf("; %s: %s", field, detail)
			}
			return msg
		}
	}
	return string(rawBody)
}
