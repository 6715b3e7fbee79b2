package ports

import (
	"context"

	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
)

// CRMGateway puerto de salida hacia el CRM. Los casos de uso dependen de esta
// interfaz; la implementación real es retailcrm.Client y los tests inyectan
// un mock con contadores de llamadas.
type CRMGateway interface {
	GetCustomers(ctx context.Context, q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error)
	CreateCustomer(ctx context.Context, payload retailcrm.CustomerPayload) (*retailcrm.CreateEnvelope, error)
	GetCustomer(ctx context.Context, id int) (*retailcrm.CustomerEnvelope, error)

	GetOrders(ctx context.Context, customerID, page, limit int) (*retailcrm.OrdersEnvelope, error)
	CreateOrder(ctx context.Context, payload retailcrm.OrderPayload) (*retailcrm.CreateEnvelope, error)
	GetOrder(ctx context.Context, id int) (*retailcrm.OrderEnvelope, error)

	GetProducts(ctx context.Context, externalID string) ([]retailcrm.Product, error)
	BatchCreateProducts(ctx context.Context, products []retailcrm.ProductPayload) ([]int, error)

	GetPaymentTypes(ctx context.Context) ([]string, error)
	CreatePayment(ctx context.Context, payload retailcrm.PaymentPayload) (*retailcrm.CreateEnvelope, error)
}

// Verificar en tiempo de compilación que el cliente real implementa el puerto.
var _ CRMGateway = (*retailcrm.Client)(nil)
