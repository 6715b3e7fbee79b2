package retailcrm

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Estructuras del contrato JSON de RetailCRM (/api/v5). Los registros de los
// listados y las entidades embebidas viajan como json.RawMessage: la capa de
// mapeo decide registro por registro, así un registro corrupto no tumba el
// decode de toda la respuesta.

// Phone entrada de la lista de teléfonos de un cliente.
type Phone struct {
	Number string `json:"number"`
}

// Customer forma de lectura de un cliente.
type Customer struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phones    []Phone `json:"phones"`
	CreatedAt string  `json:"createdAt"` // "2006-01-02 15:04:05", separador espacio
}

// IntRef referencia anidada {"id": <int>} que el CRM usa para enlazar entidades.
type IntRef struct {
	ID int `json:"id"`
}

// OrderItem línea de orden en lectura. El CRM puede devolver el precio en
// initialPrice o en price según el endpoint.
type OrderItem struct {
	Offer        *IntRef         `json:"offer"`
	ProductName  string          `json:"productName"`
	Quantity     float64         `json:"quantity"`
	InitialPrice decimal.Decimal `json:"initialPrice"`
	Price        decimal.Decimal `json:"price"`
}

// Order forma de lectura de una orden. Las líneas pueden venir bajo "items" o
// bajo "customProducts" según el endpoint; "payments" puede ser mapa por id o
// lista según la versión del CRM.
type Order struct {
	ID             int             `json:"id"`
	Number         string          `json:"number"`
	CreatedAt      string          `json:"createdAt"`
	Customer       *IntRef         `json:"customer"`
	Items          []OrderItem     `json:"items"`
	CustomProducts []OrderItem     `json:"customProducts"`
	Payments       json.RawMessage `json:"payments"`
}

// Payment forma de lectura de un pago embebido en una orden.
type Payment struct {
	ID        int             `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Comment   string          `json:"comment"`
	PaidAt    string          `json:"paidAt"`
	CreatedAt string          `json:"createdAt"`
}

// Product forma de lectura de un producto del catálogo.
type Product struct {
	ID         int    `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
}

// CustomerQuery filtros de GET /customers. Las fechas van como YYYY-MM-DD.
type CustomerQuery struct {
	Name           string
	Email          string
	RegisteredFrom string
	RegisteredTo   string
	Page           int
	Limit          int
}

// ── Payloads de escritura (van como string JSON en un body form-encoded) ──────

// CustomerPayload cuerpo de /customers/create.
type CustomerPayload struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phones    []Phone `json:"phones,omitempty"`
}

// OrderItemPayload línea en /orders/create.
type OrderItemPayload struct {
	Offer        *IntRef         `json:"offer,omitempty"`
	ProductName  string          `json:"productName,omitempty"`
	Quantity     int             `json:"quantity"`
	InitialPrice decimal.Decimal `json:"initialPrice"`
}

// OrderPayload cuerpo de /orders/create. Number se genera localmente.
type OrderPayload struct {
	Number   string             `json:"number"`
	Customer IntRef             `json:"customer"`
	Items    []OrderItemPayload `json:"items"`
}

// PaymentPayload cuerpo de /orders/payments/create.
type PaymentPayload struct {
	OrderID int             `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Type    string          `json:"type"`
	Comment string          `json:"comment,omitempty"`
}

// ProductPayload entrada de /store/products/batch/create.
type ProductPayload struct {
	ExternalID   string          `json:"externalId"`
	Name         string          `json:"name"`
	CatalogID    int             `json:"catalogId"`
	Type         string          `json:"type"`
	InitialPrice decimal.Decimal `json:"initialPrice"`
}

// ── Envelopes de respuesta: la entidad principal va anidada bajo su nombre ────

// CreateEnvelope respuesta mínima de los endpoints de creación.
type CreateEnvelope struct {
	Success bool `json:"success"`
	ID      int  `json:"id"`
}

// Pagination metadatos de página de los listados.
type Pagination struct {
	Limit          int `json:"limit"`
	TotalCount     int `json:"totalCount"`
	CurrentPage    int `json:"currentPage"`
	TotalPageCount int `json:"totalPageCount"`
}

// CustomersEnvelope respuesta de GET /customers.
type CustomersEnvelope struct {
	Success    bool              `json:"success"`
	Pagination *Pagination       `json:"pagination"`
	Customers  []json.RawMessage `json:"customers"`
}

// CustomerEnvelope respuesta de GET /customers/{id}.
type CustomerEnvelope struct {
	Success  bool            `json:"success"`
	Customer json.RawMessage `json:"customer"`
}

// OrdersEnvelope respuesta de GET /orders.
type OrdersEnvelope struct {
	Success    bool              `json:"success"`
	Pagination *Pagination       `json:"pagination"`
	Orders     []json.RawMessage `json:"orders"`
}

// OrderEnvelope respuesta de GET /orders/{id}.
type OrderEnvelope struct {
	Success bool            `json:"success"`
	Order   json.RawMessage `json:"order"`
}

// ProductsEnvelope respuesta de GET /store/products.
type ProductsEnvelope struct {
	Success  bool      `json:"success"`
	Products []Product `json:"products"`
}

// BatchProductsEnvelope respuesta de POST /store/products/batch/create.
type BatchProductsEnvelope struct {
	Success       bool  `json:"success"`
	AddedProducts []int `json:"addedProducts"`
}

// paymentTypesEnvelope respuesta de GET /reference/payment-types. El campo
// paymentTypes puede ser mapa código->info o lista según la versión.
type paymentTypesEnvelope struct {
	Success      bool            `json:"success"`
	PaymentTypes json.RawMessage `json:"paymentTypes"`
}

// paymentTypeInfo entrada del diccionario de tipos de pago.
type paymentTypeInfo struct {
	Code string `json:"code"`
}

// apiError cuerpo de error que devuelve el CRM en estados no exitosos.
type apiError struct {
	Success  bool              `json:"success"`
	ErrorMsg string            `json:"errorMsg"`
	Errors   map[string]string `json:"errors"`
}
