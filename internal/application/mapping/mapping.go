// Package mapping traduce entre las formas locales y el JSON del CRM en ambas
// direcciones. Son funciones puras sin estado: la tolerancia a registros
// corruptos (descartar en listados, fallar en entidad única) la deciden los
// casos de uso, aquí solo se reporta la condición.
package mapping

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
)

// crmTimeLayout forma ISO-8601 tras sustituir el separador.
const crmTimeLayout = "2006-01-02T15:04:05"

// Timestamp normaliza el datetime del CRM ("2006-01-02 15:04:05", separado
// por espacio) sustituyendo el separador y parseándolo como ISO-8601.
func Timestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp vacío", domain.ErrMalformedUpstreamData)
	}
	t, err := time.Parse(crmTimeLayout, strings.Replace(s, " ", "T", 1))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", domain.ErrMalformedUpstreamData, s, err)
	}
	return t, nil
}

// ── CRM -> local ──────────────────────────────────────────────────────────────

// Customer mapea un registro crudo de cliente. El primer teléfono de la lista
// gana y el resto se descarta; una lista ausente deja el teléfono vacío. Un id
// faltante o un createdAt no parseable invalidan el registro completo.
func Customer(raw json.RawMessage) (*entity.Customer, error) {
	var wire retailcrm.Customer
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: registro de cliente: %v", domain.ErrMalformedUpstreamData, err)
	}
	if wire.ID == 0 {
		return nil, fmt.Errorf("%w: cliente sin id", domain.ErrMalformedUpstreamData)
	}

	registeredAt, err := Timestamp(wire.CreatedAt)
	if err != nil {
		return nil, err
	}

	var phone string
	if len(wire.Phones) > 0 {
		phone = wire.Phones[0].Number
	}

	return &entity.Customer{
		ID:           wire.ID,
		FirstName:    wire.FirstName,
		LastName:     wire.LastName,
		Email:        wire.Email,
		Phone:        phone,
		RegisteredAt: registeredAt,
	}, nil
}

// Order mapea un registro crudo de orden. Las líneas se leen de "items" y, si
// no hay, de "customProducts" (fallback ordenado, nunca se mezclan ambas). El
// precio unitario prefiere initialPrice y cae a price.
func Order(raw json.RawMessage) (*entity.Order, error) {
	var wire retailcrm.Order
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: registro de orden: %v", domain.ErrMalformedUpstreamData, err)
	}
	if wire.ID == 0 {
		return nil, fmt.Errorf("%w: orden sin id", domain.ErrMalformedUpstreamData)
	}

	createdAt, err := Timestamp(wire.CreatedAt)
	if err != nil {
		return nil, err
	}

	lines := wire.Items
	if len(lines) == 0 {
		lines = wire.CustomProducts
	}

	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		price := line.InitialPrice
		if price.IsZero() {
			price = line.Price
		}
		item := entity.OrderItem{
			Name:     line.ProductName,
			Quantity: int(line.Quantity),
			Price:    price,
		}
		if line.Offer != nil {
			item.OfferID = line.Offer.ID
		}
		items = append(items, item)
	}

	var customerID int
	if wire.Customer != nil {
		customerID = wire.Customer.ID
	}

	return &entity.Order{
		ID:         wire.ID,
		Number:     wire.Number,
		CreatedAt:  createdAt,
		CustomerID: customerID,
		Items:      items,
	}, nil
}

// PaymentsFromOrder extrae los pagos embebidos en una orden. Según la versión
// del CRM el campo viene como mapa por clave o como lista; se aceptan ambos,
// nunca se mezclan.
func PaymentsFromOrder(raw json.RawMessage) ([]entity.Payment, error) {
	var wire retailcrm.Order
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: registro de orden: %v", domain.ErrMalformedUpstreamData, err)
	}
	if len(wire.Payments) == 0 {
		return nil, nil
	}

	var asMap map[string]retailcrm.Payment
	if err := json.Unmarshal(wire.Payments, &asMap); err == nil {
		payments := make([]entity.Payment, 0, len(asMap))
		for _, p := range asMap {
			payments = append(payments, paymentEntity(p, wire.ID))
		}
		return payments, nil
	}

	var asList []retailcrm.Payment
	if err := json.Unmarshal(wire.Payments, &asList); err == nil {
		payments := make([]entity.Payment, 0, len(asList))
		for _, p := range asList {
			payments = append(payments, paymentEntity(p, wire.ID))
		}
		return payments, nil
	}

	return nil, fmt.Errorf("%w: payments no es mapa ni lista", domain.ErrMalformedUpstreamData)
}

// paymentEntity convierte un pago del CRM; paidAt cae a createdAt si falta.
func paymentEntity(p retailcrm.Payment, orderID int) entity.Payment {
	ts := p.PaidAt
	if ts == "" {
		ts = p.CreatedAt
	}
	paidAt, err := Timestamp(ts)
	if err != nil {
		paidAt = time.Time{}
	}
	return entity.Payment{
		ID:      p.ID,
		OrderID: orderID,
		Amount:  p.Amount,
		Type:    p.Type,
		Comment: p.Comment,
		PaidAt:  paidAt,
	}
}

// ── local -> CRM ──────────────────────────────────────────────────────────────

// CustomerPayload arma el cuerpo de creación: renombra al vocabulario del CRM,
// aplana el teléfono escalar en la lista de objetos y omite opcionales vacíos.
func CustomerPayload(req dto.CreateCustomerRequest) retailcrm.CustomerPayload {
	payload := retailcrm.CustomerPayload{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Phone != "" {
		payload.Phones = []retailcrm.Phone{{Number: req.Phone}}
	}
	return payload
}

// OrderPayload arma el cuerpo de creación de orden con el número generado
// localmente; la referencia al cliente va envuelta como {"id": n}.
func OrderPayload(number string, req dto.CreateOrderRequest) retailcrm.OrderPayload {
	items := make([]retailcrm.OrderItemPayload, 0, len(req.Items))
	for _, it := range req.Items {
		line := retailcrm.OrderItemPayload{
			ProductName:  it.Name,
			Quantity:     it.Quantity,
			InitialPrice: it.Price,
		}
		if it.OfferID > 0 {
			line.Offer = &retailcrm.IntRef{ID: it.OfferID}
		}
		items = append(items, line)
	}
	return retailcrm.OrderPayload{
		Number:   number,
		Customer: retailcrm.IntRef{ID: req.CustomerID},
		Items:    items,
	}
}

// PaymentPayload arma el cuerpo de creación de pago con el tipo seleccionado
// por el servicio (el API local no lo acepta del cliente).
func PaymentPayload(orderID int, typeCode string, req dto.CreatePaymentRequest) retailcrm.PaymentPayload {
	return retailcrm.PaymentPayload{
		OrderID: orderID,
		Amount:  req.Amount,
		Type:    typeCode,
		Comment: req.Comment,
	}
}
