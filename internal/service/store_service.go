package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
)

type StoreService interface {
	Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.StoreResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StoreResponse, error)
	List(ctx context.Context) ([]dto.StoreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type storeService struct {
	repo repository.StoreRepository
}

func NewStoreService(repo repository.StoreRepository) StoreService {
	return &storeService{repo: repo}
}

func (s *storeService) Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	st := &model.Store{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Active:  true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	resp := storeToResponse(st)
	return &resp, nil
}

func (s *storeService) Get(ctx context.Context, id uuid.UUID) (*dto.StoreResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: store %s", apierror.ErrNotFound, id)
	}
	resp := storeToResponse(st)
	return &resp, nil
}

func (s *storeService) List(ctx context.Context) ([]dto.StoreResponse, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StoreResponse, len(stores))
	for i := range stores {
		resp[i] = storeToResponse(&stores[i])
	}
	return resp, nil
}

func (s *storeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: store %s", apierror.ErrNotFound, id)
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.Email != nil {
		st.Email = req.Email
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	resp := storeToResponse(st)
	return &resp, nil
}

func (s *storeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func storeToResponse(st *model.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:      st.ID.String(),
		Name:    st.Name,
		Address: st.Address,
		Phone:   st.Phone,
		Email:   st.Email,
		Active:  st.Active,
	}
}
