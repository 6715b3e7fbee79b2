package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/application/usecase"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock del gateway con contadores de llamadas
// ──────────────────────────────────────────────────────────────────────────────

type gatewayMock struct {
	getCustomersFn    func(retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error)
	createCustomerFn  func(retailcrm.CustomerPayload) (*retailcrm.CreateEnvelope, error)
	getCustomerFn     func(int) (*retailcrm.CustomerEnvelope, error)
	getOrdersFn       func(int, int, int) (*retailcrm.OrdersEnvelope, error)
	createOrderFn     func(retailcrm.OrderPayload) (*retailcrm.CreateEnvelope, error)
	getOrderFn        func(int) (*retailcrm.OrderEnvelope, error)
	getPaymentTypesFn func() ([]string, error)
	createPaymentFn   func(retailcrm.PaymentPayload) (*retailcrm.CreateEnvelope, error)

	getCustomersCalls   int
	createCustomerCalls int
	createOrderCalls    int
	getOrderCalls       int
	createPaymentCalls  int
}

func (m *gatewayMock) GetCustomers(_ context.Context, q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
	m.getCustomersCalls++
	if m.getCustomersFn != nil {
		return m.getCustomersFn(q)
	}
	return &retailcrm.CustomersEnvelope{Success: true}, nil
}

func (m *gatewayMock) CreateCustomer(_ context.Context, p retailcrm.CustomerPayload) (*retailcrm.CreateEnvelope, error) {
	m.createCustomerCalls++
	if m.createCustomerFn != nil {
		return m.createCustomerFn(p)
	}
	return &retailcrm.CreateEnvelope{Success: true, ID: 1}, nil
}

func (m *gatewayMock) GetCustomer(_ context.Context, id int) (*retailcrm.CustomerEnvelope, error) {
	if m.getCustomerFn != nil {
		return m.getCustomerFn(id)
	}
	return &retailcrm.CustomerEnvelope{Success: true, Customer: rawCustomer(id, "x@example.com", "")}, nil
}

func (m *gatewayMock) GetOrders(_ context.Context, customerID, page, limit int) (*retailcrm.OrdersEnvelope, error) {
	if m.getOrdersFn != nil {
		return m.getOrdersFn(customerID, page, limit)
	}
	return &retailcrm.OrdersEnvelope{Success: true}, nil
}

func (m *gatewayMock) CreateOrder(_ context.Context, p retailcrm.OrderPayload) (*retailcrm.CreateEnvelope, error) {
	m.createOrderCalls++
	if m.createOrderFn != nil {
		return m.createOrderFn(p)
	}
	return &retailcrm.CreateEnvelope{Success: true, ID: 1}, nil
}

func (m *gatewayMock) GetOrder(_ context.Context, id int) (*retailcrm.OrderEnvelope, error) {
	m.getOrderCalls++
	if m.getOrderFn != nil {
		return m.getOrderFn(id)
	}
	return &retailcrm.OrderEnvelope{Success: true, Order: json.RawMessage(`{}`)}, nil
}

func (m *gatewayMock) GetProducts(_ context.Context, _ string) ([]retailcrm.Product, error) {
	return nil, nil
}

func (m *gatewayMock) BatchCreateProducts(_ context.Context, _ []retailcrm.ProductPayload) ([]int, error) {
	return nil, nil
}

func (m *gatewayMock) GetPaymentTypes(_ context.Context) ([]string, error) {
	if m.getPaymentTypesFn != nil {
		return m.getPaymentTypesFn()
	}
	return nil, nil
}

func (m *gatewayMock) CreatePayment(_ context.Context, p retailcrm.PaymentPayload) (*retailcrm.CreateEnvelope, error) {
	m.createPaymentCalls++
	if m.createPaymentFn != nil {
		return m.createPaymentFn(p)
	}
	return &retailcrm.CreateEnvelope{Success: true, ID: 1}, nil
}

// rawCustomer arma un registro crudo de cliente como lo devuelve el CRM.
func rawCustomer(id int, email, phone string) json.RawMessage {
	phones := "[]"
	if phone != "" {
		phones = fmt.Sprintf(`[{"number": %q}]`, phone)
	}
	return json.RawMessage(fmt.Sprintf(
		`{"id": %d, "firstName": "Cliente", "email": %q, "phones": %s, "createdAt": "2025-04-24 18:35:18"}`,
		id, email, phones,
	))
}

// ──────────────────────────────────────────────────────────────────────────────
// CustomerUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Un email ya registrado debe fallar con Conflict ANTES de intentar la
// escritura en el CRM.
func TestCustomerCreate_EmailDuplicado(t *testing.T) {
	crm := &gatewayMock{
		getCustomersFn: func(q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
			require.Equal(t, "ana@example.com", q.Email)
			return &retailcrm.CustomersEnvelope{
				Success:   true,
				Customers: []json.RawMessage{rawCustomer(8, "ana@example.com", "")},
			}, nil
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, crm.createCustomerCalls, "no debe llegar ninguna escritura al CRM")
}

func TestCustomerCreate_TelefonoDuplicado(t *testing.T) {
	crm := &gatewayMock{
		getCustomersFn: func(q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
			if q.Email != "" {
				// Pre-chequeo por email: sin coincidencias
				return &retailcrm.CustomersEnvelope{Success: true}, nil
			}
			// Escaneo de página para teléfonos
			return &retailcrm.CustomersEnvelope{
				Success:   true,
				Customers: []json.RawMessage{rawCustomer(8, "otro@example.com", "+57 300 111 2233")},
			}, nil
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Phone:     "+57 300 111 2233",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, crm.createCustomerCalls)
}

// Tras crear, el cliente se relee por id: la respuesta de creación del CRM es
// mínima y no se usa para armar la representación.
func TestCustomerCreate_ReleeTrasCrear(t *testing.T) {
	crm := &gatewayMock{
		createCustomerFn: func(p retailcrm.CustomerPayload) (*retailcrm.CreateEnvelope, error) {
			assert.Equal(t, "Ana", p.FirstName)
			require.Len(t, p.Phones, 1)
			return &retailcrm.CreateEnvelope{Success: true, ID: 42}, nil
		},
		getCustomerFn: func(id int) (*retailcrm.CustomerEnvelope, error) {
			require.Equal(t, 42, id)
			return &retailcrm.CustomerEnvelope{
				Success:  true,
				Customer: rawCustomer(42, "ana@example.com", "+57 300 111 2233"),
			}, nil
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	got, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Phone:     "+57 300 111 2233",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+57 300 111 2233", *got.Phone)
}

func TestCustomerCreate_Validacion(t *testing.T) {
	crm := &gatewayMock{}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	cases := []dto.CreateCustomerRequest{
		{Email: "sin-nombre@example.com"},
		{FirstName: "Sin Email"},
		{FirstName: "Mal Email", Email: "no-es-email"},
	}
	for _, req := range cases {
		_, err := uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, crm.getCustomersCalls, "la validación falla antes de tocar el CRM")
}

// Un registro que no mapea se descarta sin tumbar el listado completo.
func TestCustomerList_DescartaRegistroCorrupto(t *testing.T) {
	crm := &gatewayMock{
		getCustomersFn: func(q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
			return &retailcrm.CustomersEnvelope{
				Success: true,
				Customers: []json.RawMessage{
					rawCustomer(1, "a@example.com", ""),
					json.RawMessage(`{"firstName": "Sin ID", "createdAt": "corrupto"}`),
					rawCustomer(3, "c@example.com", ""),
				},
			}, nil
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	got, err := uc.List(context.Background(), dto.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

// Sin lista de teléfonos el campo queda null en la respuesta, nunca error.
func TestCustomerList_TelefonoAusenteEsNull(t *testing.T) {
	crm := &gatewayMock{
		getCustomersFn: func(q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
			return &retailcrm.CustomersEnvelope{
				Success:   true,
				Customers: []json.RawMessage{rawCustomer(1, "a@example.com", "")},
			}, nil
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	got, err := uc.List(context.Background(), dto.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Phone)
}

func TestCustomerList_FallaUpstream(t *testing.T) {
	crm := &gatewayMock{
		getCustomersFn: func(q retailcrm.CustomerQuery) (*retailcrm.CustomersEnvelope, error) {
			return nil, fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable)
		},
	}
	uc := usecase.NewCustomerUseCase(crm, nil, logger.Nop())

	_, err := uc.List(context.Background(), dto.CustomerFilter{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderUseCase
// ──────────────────────────────────────────────────────────────────────────────

var orderNumRe = regexp.MustCompile(`^ORD-\d{14}-[0-9A-F]{6}$`)

func TestOrderCreate_GeneraNumeroLocal(t *testing.T) {
	var sentNumber string
	crm := &gatewayMock{
		createOrderFn: func(p retailcrm.OrderPayload) (*retailcrm.CreateEnvelope, error) {
			sentNumber = p.Number
			assert.Equal(t, 42, p.Customer.ID)
			return &retailcrm.CreateEnvelope{Success: true, ID: 100}, nil
		},
		getOrderFn: func(id int) (*retailcrm.OrderEnvelope, error) {
			require.Equal(t, 100, id)
			raw := fmt.Sprintf(`{
				"id": 100, "number": %q, "createdAt": "2025-04-24 18:35:18",
				"customer": {"id": 42},
				"items": [{"quantity": 2, "initialPrice": 19.90}]
			}`, sentNumber)
			return &retailcrm.OrderEnvelope{Success: true, Order: json.RawMessage(raw)}, nil
		},
	}
	uc := usecase.NewOrderUseCase(crm, nil, logger.Nop())

	got, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 42,
		Items:      []dto.OrderItemRequest{{Quantity: 2, Price: decimal.NewFromFloat(19.90)}},
	})

	require.NoError(t, err)
	assert.Regexp(t, orderNumRe, sentNumber, "el número se genera localmente antes de enviar")
	assert.Equal(t, sentNumber, got.OrderNumber)
	assert.Equal(t, 100, got.ID)
	require.Len(t, got.Items, 1)
}

func TestOrderCreate_Validacion(t *testing.T) {
	crm := &gatewayMock{}
	uc := usecase.NewOrderUseCase(crm, nil, logger.Nop())

	item := dto.OrderItemRequest{Quantity: 1, Price: decimal.NewFromInt(1)}
	cases := []dto.CreateOrderRequest{
		{CustomerID: 0, Items: []dto.OrderItemRequest{item}},
		{CustomerID: 42},
		{CustomerID: 42, Items: []dto.OrderItemRequest{{Quantity: 0, Price: decimal.NewFromInt(1)}}},
		{CustomerID: 42, Items: []dto.OrderItemRequest{{Quantity: 1, Price: decimal.NewFromInt(-5)}}},
	}
	for _, req := range cases {
		_, err := uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, crm.createOrderCalls)
}

// La falla de un detalle no aborta el lote: las otras órdenes se devuelven.
func TestOrderListByCustomer_FallaParcial(t *testing.T) {
	crm := &gatewayMock{
		getOrdersFn: func(customerID, page, limit int) (*retailcrm.OrdersEnvelope, error) {
			return &retailcrm.OrdersEnvelope{
				Success: true,
				Orders: []json.RawMessage{
					json.RawMessage(`{"id": 1}`),
					json.RawMessage(`{"id": 2}`),
					json.RawMessage(`{"id": 3}`),
				},
			}, nil
		},
		getOrderFn: func(id int) (*retailcrm.OrderEnvelope, error) {
			if id == 2 {
				return nil, fmt.Errorf("%w: timeout", domain.ErrUpstreamUnavailable)
			}
			raw := fmt.Sprintf(`{"id": %d, "number": "N-%d", "createdAt": "2025-04-24 18:35:18", "customer": {"id": 42}, "items": []}`, id, id)
			return &retailcrm.OrderEnvelope{Success: true, Order: json.RawMessage(raw)}, nil
		},
	}
	uc := usecase.NewOrderUseCase(crm, nil, logger.Nop())

	got, err := uc.ListByCustomer(context.Background(), 42, 1, 20)

	require.NoError(t, err, "la falla parcial no debe propagarse")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, 3, crm.getOrderCalls, "cada orden del resumen intenta su detalle")
}

// ──────────────────────────────────────────────────────────────────────────────
// PaymentUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Sin tipos de pago configurados la operación falla ANTES de crear el pago.
func TestPaymentCreate_SinTipos(t *testing.T) {
	crm := &gatewayMock{
		getPaymentTypesFn: func() ([]string, error) { return []string{}, nil },
	}
	uc := usecase.NewPaymentUseCase(crm, nil, logger.Nop())

	_, err := uc.Create(context.Background(), 200, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(50)})

	assert.ErrorIs(t, err, domain.ErrNoPaymentTypes)
	assert.Zero(t, crm.createPaymentCalls, "no debe llegar ninguna creación de pago al CRM")
}

// El tipo de pago es siempre el primer código disponible de la referencia.
func TestPaymentCreate_UsaPrimerTipo(t *testing.T) {
	crm := &gatewayMock{
		getPaymentTypesFn: func() ([]string, error) { return []string{"cash", "card"}, nil },
		createPaymentFn: func(p retailcrm.PaymentPayload) (*retailcrm.CreateEnvelope, error) {
			assert.Equal(t, "cash", p.Type)
			assert.Equal(t, 200, p.OrderID)
			return &retailcrm.CreateEnvelope{Success: true, ID: 301}, nil
		},
		getOrderFn: func(id int) (*retailcrm.OrderEnvelope, error) {
			raw := `{
				"id": 200,
				"payments": {"301": {"id": 301, "amount": 50.00, "type": "cash", "comment": "abono", "paidAt": "2025-04-24 18:40:00"}}
			}`
			return &retailcrm.OrderEnvelope{Success: true, Order: json.RawMessage(raw)}, nil
		},
	}
	uc := usecase.NewPaymentUseCase(crm, nil, logger.Nop())

	got, err := uc.Create(context.Background(), 200, dto.CreatePaymentRequest{
		Amount:  decimal.NewFromInt(50),
		Comment: "abono",
	})

	require.NoError(t, err)
	assert.Equal(t, 301, got.ID)
	assert.Equal(t, 200, got.OrderID)
	assert.Equal(t, "cash", got.Type)
	assert.Equal(t, "abono", got.Comment)
}

// Si tras crear el pago no aparece al releer la orden, es una condición
// propia y distinta de las fallas upstream.
func TestPaymentCreate_PagoDesaparecido(t *testing.T) {
	crm := &gatewayMock{
		getPaymentTypesFn: func() ([]string, error) { return []string{"cash"}, nil },
		createPaymentFn: func(p retailcrm.PaymentPayload) (*retailcrm.CreateEnvelope, error) {
			return &retailcrm.CreateEnvelope{Success: true, ID: 301}, nil
		},
		getOrderFn: func(id int) (*retailcrm.OrderEnvelope, error) {
			return &retailcrm.OrderEnvelope{Success: true, Order: json.RawMessage(`{"id": 200, "payments": []}`)}, nil
		},
	}
	uc := usecase.NewPaymentUseCase(crm, nil, logger.Nop())

	_, err := uc.Create(context.Background(), 200, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(50)})

	assert.ErrorIs(t, err, domain.ErrPaymentVanished)
}

func TestPaymentCreate_MontoInvalido(t *testing.T) {
	crm := &gatewayMock{}
	uc := usecase.NewPaymentUseCase(crm, nil, logger.Nop())

	_, err := uc.Create(context.Background(), 200, dto.CreatePaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), 200, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
