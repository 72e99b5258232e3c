package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

type TenantService struct {
	store *repository.Store
}

func NewTenantService(store *repository.Store) *TenantService {
	return &TenantService{store: store}
}

// Details returns a tenant with their active contracts, each contract's
// property, address and building, and the jobs on those properties.
func (s *TenantService) Details(ctx context.Context, tenantID string) (*models.TenantDetails, error) {
	if tenantID == "" {
		return nil, utils.BadRequest("Tenant id is required")
	}
	user, err := s.store.FindUser(ctx, tenantID)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}
	if user.UserType != models.UserTypeTenant {
		return nil, utils.NotFound("Tenant not found")
	}

	contracts, err := s.store.ActiveContractsForUser(ctx, tenantID)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}
	propertyIDs := make([]string, 0, len(contracts))
	for _, c := range contracts {
		propertyIDs = append(propertyIDs, c.PropertyID)
	}
	properties, err := s.store.PropertiesByID(ctx, propertyIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}

	var addressIDs, buildingIDs []string
	for _, p := range properties {
		addressIDs = append(addressIDs, p.AddressID)
		buildingIDs = append(buildingIDs, p.BuildingID)
	}
	addresses, err := s.store.AddressesByID(ctx, addressIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}
	buildings, err := s.store.BuildingsByID(ctx, buildingIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}
	var ownerIDs []string
	for _, b := range buildings {
		ownerIDs = append(ownerIDs, b.OwnerID)
	}
	owners, err := s.store.UsersByID(ctx, ownerIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}
	jobs, err := s.store.JobsForProperties(ctx, propertyIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get tenant details failed")
	}

	out := &models.TenantDetails{
		User:             user.Sanitized(),
		TenancyContracts: make([]models.TenancyContractView, 0, len(contracts)),
		Jobs:             jobs,
	}
	for _, c := range contracts {
		view := models.TenancyContractView{TenancyContract: c}
		if p, ok := properties[c.PropertyID]; ok {
			pv := &models.PropertyView{Property: p}
			if a, ok := addresses[p.AddressID]; ok {
				pv.Address = &a
			}
			if b, ok := buildings[p.BuildingID]; ok {
				bv := &models.BuildingView{Building: b}
				if o, ok := owners[b.OwnerID]; ok {
					summary := o.Summary()
					bv.Owner = &summary
				}
				pv.Building = bv
			}
			view.Property = pv
		}
		out.TenancyContracts = append(out.TenancyContracts, view)
	}
	return out, nil
}
