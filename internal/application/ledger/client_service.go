package ledger

import (
	"context"
	"errors"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService handles client registration and contact data. Balances are
// owned by the invoice lifecycle and the balance repair pass, never mutated
// here.
type ClientService struct {
	clientRepo ledger.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo ledger.ClientRepository, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{clientRepo: clientRepo, logger: logger}
}

// Create registers a new client with a zero balance
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	if req.TaxID != "" {
		existing, err := s.clientRepo.FindByTaxID(ctx, req.TaxID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this tax ID already exists")
		}
	}

	client, err := ledger.NewClient(req.Name, req.TaxID, req.Address, req.Email, req.Phone, req.Country, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	logDomainEvents(s.logger, client)

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.DefaultFilter()
	repoFilter.Page = filter.Page
	repoFilter.PageSize = filter.PageSize
	repoFilter.Search = filter.Search

	clients, err := s.clientRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses, total, nil
}

// Update changes a client's contact attributes
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := client.Name
	if req.Name != nil {
		name = *req.Name
	}
	taxID := client.TaxID
	if req.TaxID != nil {
		taxID = *req.TaxID
	}
	address := client.Address
	if req.Address != nil {
		address = *req.Address
	}
	email := client.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := client.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	country := client.Country
	if req.Country != nil {
		country = *req.Country
	}
	city := client.City
	if req.City != nil {
		city = *req.City
	}

	if err := client.UpdateContact(name, taxID, address, email, phone, country, city); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client and, by cascade, every invoice that references it
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
