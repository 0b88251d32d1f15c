package master

import (
	"context"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/campaign"
	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/role"
)

// MasterService aggregates the campaign and role metadata operations.
type MasterService interface {
	ListCampaigns(ctx context.Context) ([]campaign.CampaignResponse, error)
	CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest) (campaign.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, req campaign.UpdateCampaignRequest) (campaign.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, id string) error

	ListRoles(ctx context.Context) ([]role.RoleResponse, error)
	CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error)
	UpdateRole(ctx context.Context, req role.UpdateRoleRequest) (role.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

type MasterServiceImpl struct {
	campaignRepo campaign.CampaignRepository
	roleRepo     role.RoleRepository
}

func NewMasterService(campaignRepo campaign.CampaignRepository, roleRepo role.RoleRepository) MasterService {
	return &MasterServiceImpl{
		campaignRepo: campaignRepo,
		roleRepo:     roleRepo,
	}
}

// ListCampaigns implements MasterService.
func (s *MasterServiceImpl) ListCampaigns(ctx context.Context) ([]campaign.CampaignResponse, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]campaign.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		responses = append(responses, campaign.ToResponse(c))
	}
	return responses, nil
}

// CreateCampaign implements MasterService.
func (s *MasterServiceImpl) CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest) (campaign.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return campaign.CampaignResponse{}, err
	}

	created, err := s.campaignRepo.Create(ctx, campaign.Campaign{Name: req.Name})
	if err != nil {
		return campaign.CampaignResponse{}, err
	}
	return campaign.ToResponse(created), nil
}

// UpdateCampaign implements MasterService.
func (s *MasterServiceImpl) UpdateCampaign(ctx context.Context, req campaign.UpdateCampaignRequest) (campaign.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return campaign.CampaignResponse{}, err
	}

	updated, err := s.campaignRepo.Update(ctx, req.ID, req.Name)
	if err != nil {
		return campaign.CampaignResponse{}, err
	}
	return campaign.ToResponse(updated), nil
}

// DeleteCampaign implements MasterService.
func (s *MasterServiceImpl) DeleteCampaign(ctx context.Context, id string) error {
	return s.campaignRepo.Delete(ctx, id)
}

// ListRoles implements MasterService.
func (s *MasterServiceImpl) ListRoles(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, role.ToResponse(r))
	}
	return responses, nil
}

// CreateRole implements MasterService.
func (s *MasterServiceImpl) CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	created, err := s.roleRepo.Create(ctx, role.Role{Name: req.Name})
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(created), nil
}

// UpdateRole implements MasterService.
func (s *MasterServiceImpl) UpdateRole(ctx context.Context, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	updated, err := s.roleRepo.Update(ctx, req.ID, req.Name)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(updated), nil
}

// DeleteRole implements MasterService.
func (s *MasterServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.roleRepo.Delete(ctx, id)
}
