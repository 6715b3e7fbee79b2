package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/application/mapping"
	"github.com/jhoicas/retailcrm-bff/internal/application/ports"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
	"github.com/jhoicas/retailcrm-bff/internal/infrastructure/retailcrm"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
)

// duplicateScanLimit página de clientes existentes que se revisa para detectar
// teléfonos duplicados; el CRM no expone un filtro por teléfono.
const duplicateScanLimit = 100

// CustomerUseCase casos de uso de clientes contra el CRM.
type CustomerUseCase struct {
	crm    ports.CRMGateway
	shadow repository.CustomerShadow // nil desactiva el espejo local
	log    *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(crm ports.CRMGateway, shadow repository.CustomerShadow, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{crm: crm, shadow: shadow, log: log}
}

// List reenvía los filtros al CRM y mapea cada registro por separado. Un
// registro que no mapea se descarta sin fallar el listado; los descartes se
// cuentan y se registran.
func (uc *CustomerUseCase) List(ctx context.Context, f dto.CustomerFilter) ([]dto.CustomerResponse, error) {
	page, limit := dto.ClampPage(f.Page, f.Limit)
	env, err := uc.crm.GetCustomers(ctx, crmCustomerQuery(f, page, limit))
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerResponse, 0, len(env.Customers))
	skipped := 0
	for _, raw := range env.Customers {
		c, err := mapping.Customer(raw)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, customerResponse(c))
	}
	if skipped > 0 {
		uc.log.Warn().
			Int("skipped", skipped).
			Str("email", f.Email).
			Str("name", f.Name).
			Msg("clientes descartados por datos corruptos del CRM")
	}
	return out, nil
}

// Create valida, verifica duplicados por email (y por teléfono cuando viene
// uno), escribe en el CRM y relee el cliente creado: la respuesta de creación
// del CRM es más escueta que la de lectura y no se confía en ella.
func (uc *CustomerUseCase) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.FirstName == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: first_name y email son requeridos", domain.ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: email no válido", domain.ErrInvalidInput)
	}

	inUse, err := uc.emailInUse(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, fmt.Errorf("%w: ya existe un cliente con email %s", domain.ErrConflict, req.Email)
	}

	if req.Phone != "" {
		inUse, err := uc.phoneInUse(ctx, req.Phone)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, fmt.Errorf("%w: ya existe un cliente con teléfono %s", domain.ErrConflict, req.Phone)
		}
	}

	created, err := uc.crm.CreateCustomer(ctx, mapping.CustomerPayload(req))
	if err != nil {
		return nil, err
	}
	if created.ID <= 0 {
		return nil, fmt.Errorf("%w: creación de cliente sin id", domain.ErrMalformedUpstreamData)
	}

	full, err := uc.crm.GetCustomer(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	customer, err := mapping.Customer(full.Customer)
	if err != nil {
		return nil, err
	}

	uc.mirror(ctx, customer)

	resp := customerResponse(customer)
	return &resp, nil
}

// emailInUse consulta el filtro exacto por email del CRM.
func (uc *CustomerUseCase) emailInUse(ctx context.Context, email string) (bool, error) {
	env, err := uc.crm.GetCustomers(ctx, crmCustomerQuery(dto.CustomerFilter{Email: email}, 1, 1))
	if err != nil {
		return false, err
	}
	return len(env.Customers) > 0, nil
}

// phoneInUse recorre una página de clientes existentes comparando el número
// primario. El CRM no ofrece un filtro por teléfono; si algún día lo expone,
// este método es el único punto a reemplazar.
func (uc *CustomerUseCase) phoneInUse(ctx context.Context, phone string) (bool, error) {
	env, err := uc.crm.GetCustomers(ctx, crmCustomerQuery(dto.CustomerFilter{}, 1, duplicateScanLimit))
	if err != nil {
		return false, err
	}
	for _, raw := range env.Customers {
		c, err := mapping.Customer(raw)
		if err != nil {
			continue
		}
		if c.Phone != "" && c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// mirror copia el cliente al esquema espejo; cualquier falla se registra y se
// descarta, el CRM ya es la autoridad.
func (uc *CustomerUseCase) mirror(ctx context.Context, c *entity.Customer) {
	if uc.shadow == nil {
		return
	}
	if err := uc.shadow.Save(ctx, c); err != nil {
		uc.log.Warn().Err(err).Int("customer_id", c.ID).Msg("espejo local de cliente falló")
	}
}

func crmCustomerQuery(f dto.CustomerFilter, page, limit int) retailcrm.CustomerQuery {
	return retailcrm.CustomerQuery{
		Name:           f.Name,
		Email:          f.Email,
		RegisteredFrom: f.RegisteredFrom,
		RegisteredTo:   f.RegisteredTo,
		Page:           page,
		Limit:          limit,
	}
}

func customerResponse(c *entity.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		RegisteredAt: c.RegisteredAt,
	}
	if c.Phone != "" {
		phone := c.Phone
		resp.Phone = &phone
	}
	return resp
}
