package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/application/mapping"
	"github.com/jhoicas/retailcrm-bff/internal/application/ports"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
	"github.com/jhoicas/retailcrm-bff/pkg/ordernum"
)

// OrderUseCase casos de uso de órdenes contra el CRM.
type OrderUseCase struct {
	crm    ports.CRMGateway
	shadow repository.OrderShadow // nil desactiva el espejo local
	log    *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(crm ports.CRMGateway, shadow repository.OrderShadow, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{crm: crm, shadow: shadow, log: log}
}

// Create genera el número de orden localmente (la única numeración que no
// asigna el CRM), crea la orden y la relee para devolver la representación
// completa con líneas.
func (uc *OrderUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	created, err := uc.crm.CreateOrder(ctx, mapping.OrderPayload(ordernum.Generate(), req))
	if err != nil {
		return nil, err
	}
	if created.ID <= 0 {
		return nil, fmt.Errorf("%w: creación de orden sin id", domain.ErrMalformedUpstreamData)
	}

	full, err := uc.crm.GetOrder(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	order, err := mapping.Order(full.Order)
	if err != nil {
		return nil, err
	}

	uc.mirror(ctx, order)

	resp := orderResponse(order)
	return &resp, nil
}

// ListByCustomer obtiene el listado resumido y luego una lectura de detalle
// por orden (el resumen no trae líneas), en secuencia. Una orden cuyo detalle
// falla o no mapea se omite del resultado sin abortar el lote.
func (uc *OrderUseCase) ListByCustomer(ctx context.Context, customerID, page, limit int) ([]dto.OrderResponse, error) {
	if customerID < 1 {
		return nil, fmt.Errorf("%w: customer id inválido", domain.ErrInvalidInput)
	}
	page, limit = dto.ClampPage(page, limit)

	summary, err := uc.crm.GetOrders(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderResponse, 0, len(summary.Orders))
	skipped := 0
	for _, raw := range summary.Orders {
		var head struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || head.ID == 0 {
			skipped++
			continue
		}

		full, err := uc.crm.GetOrder(ctx, head.ID)
		if err != nil {
			skipped++
			continue
		}
		order, err := mapping.Order(full.Order)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, orderResponse(order))
	}
	if skipped > 0 {
		uc.log.Warn().
			Int("skipped", skipped).
			Int("customer_id", customerID).
			Msg("órdenes omitidas del listado por falla de detalle o mapeo")
	}
	return out, nil
}

func validateOrder(req dto.CreateOrderRequest) error {
	if req.CustomerID < 1 {
		return fmt.Errorf("%w: customer id inválido", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, it := range req.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: línea %d con cantidad menor a 1", domain.ErrInvalidInput, i)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// mirror copia la orden al esquema espejo, sin afectar la llamada si falla.
func (uc *OrderUseCase) mirror(ctx context.Context, o *entity.Order) {
	if uc.shadow == nil {
		return
	}
	if err := uc.shadow.Save(ctx, o); err != nil {
		uc.log.Warn().Err(err).Int("order_id", o.ID).Msg("espejo local de orden falló")
	}
}

func orderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			OfferID:  it.OfferID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.Number,
		CreatedAt:   o.CreatedAt,
		CustomerID:  o.CustomerID,
		Items:       items,
	}
}
