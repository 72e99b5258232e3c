package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

// CompanyService manages companies, their categories and the property
// overview of a company.
type CompanyService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewCompanyService(store *repository.Store, logger *zap.Logger) *CompanyService {
	return &CompanyService{store: store, logger: logger}
}

// CreateCompanyInput is a company with its optional address.
type CreateCompanyInput struct {
	models.Company
	Address *models.Address `json:"address"`
}

// Create stores the company and its address, makes the invoker the owner
// and moves the invoker into the company, all in one transaction.
func (s *CompanyService) Create(ctx context.Context, invokerID string, in CreateCompanyInput) (*models.Company, error) {
	company := in.Company
	company.ID = ""
	company.OwnerID = invokerID
	company.Status = models.CompanyStatusActive
	company.DeletedAt = nil

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.FindUser(ctx, invokerID); err != nil {
			return err
		}
		if err := tx.CreateCompany(ctx, &company); err != nil {
			return err
		}
		if in.Address != nil {
			addr := *in.Address
			addr.ID = ""
			addr.RefID = company.ID
			if err := tx.CreateAddress(ctx, &addr); err != nil {
				return err
			}
			updated, err := tx.UpdateCompany(ctx, company.ID, models.CompanyPatch{AddressID: models.Some(addr.ID)})
			if err != nil {
				return err
			}
			company = *updated
		}
		_, err := tx.UpdateUser(ctx, invokerID, models.UserPatch{CompanyID: models.Some(company.ID)})
		return err
	})
	if err != nil {
		return nil, utils.Wrap(err, "Create company failed")
	}
	s.logger.Info("Company created", zap.String("company_id", company.ID), zap.String("owner_id", invokerID))
	return &company, nil
}

// Get returns one company view. Soft-deleted companies are still returned.
func (s *CompanyService) Get(ctx context.Context, id string) (*models.CompanyView, error) {
	company, err := s.store.FindCompany(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Get companies failed")
	}
	views, err := s.views(ctx, []models.Company{*company})
	if err != nil {
		return nil, utils.Wrap(err, "Get companies failed")
	}
	return &views[0], nil
}

func (s *CompanyService) List(ctx context.Context, includeDeleted bool) ([]models.CompanyView, error) {
	companies, err := s.store.ListCompanies(ctx, includeDeleted)
	if err != nil {
		return nil, utils.Wrap(err, "Get companies failed")
	}
	views, err := s.views(ctx, companies)
	if err != nil {
		return nil, utils.Wrap(err, "Get companies failed")
	}
	return views, nil
}

// views attaches address, owner and owner profile with one query per
// collection.
func (s *CompanyService) views(ctx context.Context, companies []models.Company) ([]models.CompanyView, error) {
	addressIDs := make([]string, 0, len(companies))
	ownerIDs := make([]string, 0, len(companies))
	for _, c := range companies {
		addressIDs = append(addressIDs, c.AddressID)
		ownerIDs = append(ownerIDs, c.OwnerID)
	}
	addresses, err := s.store.AddressesByID(ctx, addressIDs)
	if err != nil {
		return nil, err
	}
	owners, err := s.store.UsersByID(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := s.store.ProfilesForUsers(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.CompanyView, 0, len(companies))
	for _, c := range companies {
		v := models.CompanyView{Company: c}
		if a, ok := addresses[c.AddressID]; ok {
			v.Address = &a
		}
		if o, ok := owners[c.OwnerID]; ok {
			clean := o.Sanitized()
			v.OwnerInfo = &clean
		}
		if p, ok := profiles[c.OwnerID]; ok {
			v.UserProfile = &p
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	c, err := s.store.UpdateCompany(ctx, id, patch)
	if err != nil {
		return nil, utils.Wrap(err, "Update company failed")
	}
	return c, nil
}

// Delete marks the company deleted.
func (s *CompanyService) Delete(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.store.UpdateCompany(ctx, id, models.CompanyPatch{DeletedAt: models.SoftDelete()})
	if err != nil {
		return nil, utils.Wrap(err, "Delete company failed")
	}
	s.logger.Info("Company soft deleted", zap.String("company_id", id))
	return c, nil
}

// PropertiesInfo lists the company's properties with their tenancy
// contracts and the tenant on each contract.
func (s *CompanyService) PropertiesInfo(ctx context.Context, companyID string) ([]models.PropertyInfo, error) {
	if companyID == "" {
		return nil, utils.BadRequest("companyId is required")
	}
	properties, err := s.store.CompanyProperties(ctx, companyID)
	if err != nil {
		return nil, utils.Wrap(err, "Get properties info failed")
	}
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}
	contracts, err := s.store.ContractsForProperties(ctx, ids)
	if err != nil {
		return nil, utils.Wrap(err, "Get properties info failed")
	}
	var tenantIDs []string
	for _, cs := range contracts {
		for _, c := range cs {
			tenantIDs = append(tenantIDs, c.UserID)
		}
	}
	tenants, err := s.store.UsersByID(ctx, tenantIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get properties info failed")
	}

	out := make([]models.PropertyInfo, 0, len(properties))
	for _, p := range properties {
		info := models.PropertyInfo{Property: p, TenancyContracts: []models.TenancyContractWithUser{}}
		for _, c := range contracts[p.ID] {
			row := models.TenancyContractWithUser{TenancyContract: c}
			if u, ok := tenants[c.UserID]; ok {
				summary := u.Summary()
				row.UserDetails = &summary
			}
			info.TenancyContracts = append(info.TenancyContracts, row)
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *CompanyService) CreateCategory(ctx context.Context, c models.CompanyCategory) (*models.CompanyCategory, error) {
	if c.Name == "" {
		return nil, utils.BadRequest("name is required")
	}
	c.ID = ""
	if err := s.store.CreateCompanyCategory(ctx, &c); err != nil {
		return nil, utils.Wrap(err, "Create company category failed")
	}
	return &c, nil
}

func (s *CompanyService) GetCategory(ctx context.Context, id string) (*models.CompanyCategory, error) {
	c, err := s.store.FindCompanyCategory(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Get company category failed")
	}
	return c, nil
}

func (s *CompanyService) ListCategories(ctx context.Context) ([]models.CompanyCategory, error) {
	rows, err := s.store.ListCompanyCategories(ctx)
	if err != nil {
		return nil, utils.Wrap(err, "Get company categories failed")
	}
	return rows, nil
}

func (s *CompanyService) UpdateCategory(ctx context.Context, id string, patch models.CompanyCategoryPatch) (*models.CompanyCategory, error) {
	c, err := s.store.UpdateCompanyCategory(ctx, id, patch)
	if err != nil {
		return nil, utils.Wrap(err, "Update company category failed")
	}
	return c, nil
}

func (s *CompanyService) DeleteCategory(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteCompanyCategory(ctx, id), "Delete company category failed")
}
