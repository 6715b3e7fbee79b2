package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/application/mapping"
	"github.com/jhoicas/retailcrm-bff/internal/application/ports"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
)

// PaymentUseCase casos de uso de pagos contra el CRM.
type PaymentUseCase struct {
	crm    ports.CRMGateway
	shadow repository.PaymentShadow // nil desactiva el espejo local
	log    *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(crm ports.CRMGateway, shadow repository.PaymentShadow, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{crm: crm, shadow: shadow, log: log}
}

// Create registra un pago sobre una orden. El API local no acepta tipo de
// pago: se consulta la referencia del CRM y se usa el primer código. Como el
// CRM no expone lectura de pago individual, tras crear se relee la orden y se
// busca el pago en su colección embebida.
func (uc *PaymentUseCase) Create(ctx context.Context, orderID int, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if orderID < 1 {
		return nil, fmt.Errorf("%w: order id inválido", domain.ErrInvalidInput)
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}

	types, err := uc.crm.GetPaymentTypes(ctx)
	if err != nil {
		return nil, err
	}
	typeCode := pickPaymentType(types)
	if typeCode == "" {
		return nil, domain.ErrNoPaymentTypes
	}

	created, err := uc.crm.CreatePayment(ctx, mapping.PaymentPayload(orderID, typeCode, req))
	if err != nil {
		return nil, err
	}
	if created.ID <= 0 {
		return nil, fmt.Errorf("%w: creación de pago sin id", domain.ErrMalformedUpstreamData)
	}

	payment, err := uc.findInOrder(ctx, orderID, created.ID)
	if err != nil {
		return nil, err
	}

	uc.mirror(ctx, payment)

	return &dto.PaymentResponse{
		ID:      payment.ID,
		OrderID: payment.OrderID,
		Amount:  payment.Amount,
		Type:    payment.Type,
		Comment: payment.Comment,
		PaidAt:  payment.PaidAt,
	}, nil
}

// pickPaymentType elige determinísticamente el primer código disponible.
// Punto único a cambiar si algún día el tipo se vuelve configurable.
func pickPaymentType(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// findInOrder relee la orden y busca linealmente el pago recién creado en su
// colección embebida (mapa o lista según la versión del CRM).
func (uc *PaymentUseCase) findInOrder(ctx context.Context, orderID, paymentID int) (*entity.Payment, error) {
	full, err := uc.crm.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := mapping.PaymentsFromOrder(full.Order)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == paymentID {
			return &payments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: pago %d en orden %d", domain.ErrPaymentVanished, paymentID, orderID)
}

// mirror copia el pago al esquema espejo, sin afectar la llamada si falla.
func (uc *PaymentUseCase) mirror(ctx context.Context, p *entity.Payment) {
	if uc.shadow == nil {
		return
	}
	if err := uc.shadow.Save(ctx, p); err != nil {
		uc.log.Warn().Err(err).Int("payment_id", p.ID).Msg("espejo local de pago falló")
	}
}
