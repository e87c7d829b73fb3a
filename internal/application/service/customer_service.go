package service

import (
	"context"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/pkg/apperror"
	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles the customer directory
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// UpsertCustomer records a customer under their normalized name, refreshing
// the phone number when the name is already known.
func (s *CustomerService) UpsertCustomer(ctx context.Context, name, phone string) (*entity.Customer, error) {
	normalized := entity.NormalizeName(name)
	if normalized == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	customer := &entity.Customer{Name: normalized, Phone: phone}
	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// FindByName looks a customer up by their normalized name.
func (s *CustomerService) FindByName(ctx context.Context, name string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByName(ctx, entity.NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// DeleteCustomer removes a customer from the directory
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers returns customers with pagination and optional name search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pg), nil
}
