package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-multitenant/internal/application/dto"
	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// RoleRequestUseCase gestiona las solicitudes de ascenso USER → MANAGER.
// El usuario crea la solicitud; un COMPANY_ADMIN de su empresa la aprueba
// (promoviendo el rol) o la rechaza. Solo una PENDING por usuario.
type RoleRequestUseCase struct {
	requests repository.RoleRequestRepository
	users    repository.UserRepository
	log      *logger.Logger
}

// NewRoleRequestUseCase crea el caso de uso de solicitudes de ascenso.
func NewRoleRequestUseCase(requests repository.RoleRequestRepository, users repository.UserRepository, log *logger.Logger) *RoleRequestUseCase {
	return &RoleRequestUseCase{requests: requests, users: users, log: log}
}

// Create abre una solicitud de ascenso a MANAGER para el propio principal.
func (uc *RoleRequestUseCase) Create(p access.Principal, in dto.CreateRoleRequestRequest) (*dto.RoleRequestResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(scope, p.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleManager || user.Role == entity.RoleCompanyAdmin {
		return nil, fmt.Errorf("%w: ya tiene rol de manager o admin", domain.ErrInvalidInput)
	}

	pending, err := uc.requests.HasPendingForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: ya existe una solicitud pendiente", domain.ErrConflict)
	}

	now := time.Now()
	req := &entity.RoleUpgradeRequest{
		ID:            uuid.NewString(),
		CompanyID:     user.CompanyID,
		UserID:        user.ID,
		CurrentRole:   user.Role,
		RequestedRole: entity.RoleManager,
		Status:        entity.RoleRequestStatusPending,
		Reason:        in.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.requests.Create(req); err != nil {
		return nil, err
	}

	uc.log.Info().Str("request_id", req.ID).Str("user_id", user.ID).Msg("solicitud de ascenso creada")
	resp := roleRequestToResponse(req)
	return &resp, nil
}

// ListMine devuelve las solicitudes del propio principal.
func (uc *RoleRequestUseCase) ListMine(p access.Principal, in dto.RoleRequestListRequest) (*dto.RoleRequestListResponse, error) {
	in.UserID = p.UserID
	return uc.List(p, in)
}

// List solicitudes visibles bajo el alcance del principal.
func (uc *RoleRequestUseCase) List(p access.Principal, in dto.RoleRequestListRequest) (*dto.RoleRequestListResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	reqs, total, err := uc.requests.List(scope, repository.RoleRequestFilter{
		UserID: in.UserID,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.RoleRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, roleRequestToResponse(r))
	}
	return &dto.RoleRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Total: total, Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Approve cierra la solicitud como APPROVED y asciende al usuario a MANAGER.
func (uc *RoleRequestUseCase) Approve(p access.Principal, id string, in dto.ReviewRoleRequestRequest) (*dto.RoleRequestResponse, error) {
	return uc.review(p, id, entity.RoleRequestStatusApproved, in.ReviewNotes)
}

// Reject cierra la solicitud como REJECTED sin tocar el rol del usuario.
func (uc *RoleRequestUseCase) Reject(p access.Principal, id string, in dto.ReviewRoleRequestRequest) (*dto.RoleRequestResponse, error) {
	return uc.review(p, id, entity.RoleRequestStatusRejected, in.ReviewNotes)
}

func (uc *RoleRequestUseCase) review(p access.Principal, id, verdict, notes string) (*dto.RoleRequestResponse, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	req, err := uc.requests.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: la solicitud ya fue revisada (%s)", domain.ErrInvalidTransition, req.Status)
	}

	now := time.Now()
	req.Status = verdict
	req.ReviewedBy = p.UserID
	req.ReviewedAt = &now
	req.ReviewNotes = notes
	req.UpdatedAt = now
	if err := uc.requests.Update(req); err != nil {
		return nil, err
	}

	if verdict == entity.RoleRequestStatusApproved {
		user, err := uc.users.GetByID(scope, req.UserID)
		if err != nil {
			return nil, err
		}
		user.Role = req.RequestedRole
		user.UpdatedAt = now
		if err := uc.users.Update(user); err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("request_id", req.ID).Str("status", req.Status).Str("reviewed_by", p.UserID).Msg("solicitud de ascenso revisada")
	resp := roleRequestToResponse(req)
	return &resp, nil
}

func roleRequestToResponse(r *entity.RoleUpgradeRequest) dto.RoleRequestResponse {
	return dto.RoleRequestResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		UserID:        r.UserID,
		CurrentRole:   r.CurrentRole,
		RequestedRole: r.RequestedRole,
		Status:        r.Status,
		Reason:        r.Reason,
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		ReviewNotes:   r.ReviewNotes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
