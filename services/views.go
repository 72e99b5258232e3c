package services

import (
	"context"
	"errors"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"golang.org/x/sync/errgroup"
)

// ViewBuilder assembles the denormalized user views.
type ViewBuilder struct {
	store *repository.Store
	roles *RoleService
}

func NewViewBuilder(store *repository.Store, roles *RoleService) *ViewBuilder {
	return &ViewBuilder{store: store, roles: roles}
}

// CurrentUser returns everything known about a live user. Unresolvable
// references are reported in DanglingRefs rather than failing the call.
func (b *ViewBuilder) CurrentUser(ctx context.Context, userID string) (*models.CurrentUserView, error) {
	return b.currentUser(ctx, b.store, userID)
}

func (b *ViewBuilder) currentUser(ctx context.Context, store *repository.Store, userID string) (*models.CurrentUserView, error) {
	if userID == "" {
		return nil, utils.NotFound("User not found")
	}
	user, err := store.FindUser(ctx, userID)
	if err != nil {
		return nil, utils.Wrap(err, "Get current user failed")
	}
	if user.DeletedAt != nil {
		return nil, utils.NotFound("User not found")
	}

	view := &models.CurrentUserView{User: user.Sanitized()}

	profile, err := store.FindProfileByUserID(ctx, user.ID)
	switch {
	case err == nil:
		view.UserProfile = profile
	case !utils.IsNotFound(err):
		return nil, utils.Wrap(err, "Get current user failed")
	}

	var address models.Address
	if ok, err := resolveOptional(ctx, store, user.AddressRef(), &address, view); err != nil {
		return nil, utils.Wrap(err, "Get current user failed")
	} else if ok {
		view.AddressInfo = &address
	}

	var company models.Company
	if ok, err := resolveOptional(ctx, store, user.CompanyRef(), &company, view); err != nil {
		return nil, utils.Wrap(err, "Get current user failed")
	} else if ok {
		view.CompanyInfo = &company
	}

	resolved, err := b.roles.ResolveUserRoles(ctx, store, user.ID)
	if err != nil {
		return nil, utils.Wrap(err, "Get current user failed")
	}
	view.Roles = resolved.Roles
	view.Permissions = resolved.Permissions
	view.DanglingRefs = append(view.DanglingRefs, resolved.Dangling...)
	return view, nil
}

// resolveOptional loads ref into dst. An empty ref is not an error; a
// dangling one is recorded on the view.
func resolveOptional(ctx context.Context, store *repository.Store, ref models.Ref, dst any, view *models.CurrentUserView) (bool, error) {
	err := store.Resolve(ctx, ref, dst)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrEmptyRef):
		return false, nil
	case repository.IsDangling(err):
		view.DanglingRefs = append(view.DanglingRefs, ref)
		return false, nil
	}
	return false, err
}

// CompanyUsersPage returns a filtered page of a company's users, excluding
// the requester, with each row enriched by a fixed number of batched lookups.
func (b *ViewBuilder) CompanyUsersPage(ctx context.Context, companyID, requesterID string, f models.UserFilter) (*models.CompanyUsersPage, error) {
	if companyID == "" {
		return nil, utils.BadRequest("companyId is required")
	}
	f = repository.NormalizeFilter(f)
	users, total, err := b.store.CompanyUsers(ctx, companyID, requesterID, f)
	if err != nil {
		return nil, utils.Wrap(err, "Get company users failed")
	}

	page := &models.CompanyUsersPage{
		Pagination: models.NewPagination(total, f.Skip, f.Limit),
		Data:       make([]models.CompanyUserRow, 0, len(users)),
	}
	if len(users) == 0 {
		return page, nil
	}

	e, err := b.enrich(ctx, users)
	if err != nil {
		return nil, utils.Wrap(err, "Get company users failed")
	}
	for _, u := range users {
		page.Data = append(page.Data, e.row(u))
	}
	return page, nil
}

type enrichment struct {
	addresses      map[string]models.Address
	companies      map[string]models.Company
	contracts      map[string]models.TenancyContract
	properties     map[string]models.Property
	buildings      map[string]models.Building
	owners         map[string]models.User
	assignments    map[string][]models.UserRoleAssignment
	roles          map[string]models.Role
	permissions    map[string]models.Permission
	propertyCounts map[string]int64
	jobCounts      map[string]int64
}

func (b *ViewBuilder) enrich(ctx context.Context, users []models.User) (*enrichment, error) {
	e := &enrichment{}
	userIDs := make([]string, 0, len(users))
	companyIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
		companyIDs = append(companyIDs, u.CompanyID)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		e.companies, err = b.store.CompaniesByID(gctx, companyIDs)
		return err
	})
	g.Go(func() (err error) {
		e.contracts, err = b.store.LatestContracts(gctx, userIDs)
		return err
	})
	g.Go(func() (err error) {
		e.assignments, err = b.store.AssignmentsForUsers(gctx, userIDs)
		return err
	})
	g.Go(func() (err error) {
		e.propertyCounts, err = b.store.PropertyCounts(gctx, userIDs)
		return err
	})
	g.Go(func() (err error) {
		e.jobCounts, err = b.store.ActiveJobCounts(gctx, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	propertyIDs := make([]string, 0, len(e.contracts))
	for _, c := range e.contracts {
		propertyIDs = append(propertyIDs, c.PropertyID)
	}
	var err error
	if e.properties, err = b.store.PropertiesByID(ctx, propertyIDs); err != nil {
		return nil, err
	}

	addressIDs := make([]string, 0, len(users)+len(e.properties))
	for _, u := range users {
		addressIDs = append(addressIDs, u.AddressID)
	}
	buildingIDs := make([]string, 0, len(e.properties))
	for _, p := range e.properties {
		addressIDs = append(addressIDs, p.AddressID)
		buildingIDs = append(buildingIDs, p.BuildingID)
	}
	if e.addresses, err = b.store.AddressesByID(ctx, addressIDs); err != nil {
		return nil, err
	}
	if e.buildings, err = b.store.BuildingsByID(ctx, buildingIDs); err != nil {
		return nil, err
	}
	ownerIDs := make([]string, 0, len(e.buildings))
	for _, bl := range e.buildings {
		ownerIDs = append(ownerIDs, bl.OwnerID)
	}
	if e.owners, err = b.store.UsersByID(ctx, ownerIDs); err != nil {
		return nil, err
	}

	roleIDs := []string{}
	for _, list := range e.assignments {
		for _, a := range list {
			roleIDs = append(roleIDs, a.RoleID)
		}
	}
	if e.roles, err = b.store.RolesByID(ctx, roleIDs); err != nil {
		return nil, err
	}
	permissionIDs := []string{}
	for _, r := range e.roles {
		permissionIDs = append(permissionIDs, r.PermissionIDs...)
	}
	if e.permissions, err = b.store.PermissionsByID(ctx, permissionIDs); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *enrichment) row(u models.User) models.CompanyUserRow {
	row := models.CompanyUserRow{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		UserType:        u.UserType,
		Status:          u.Status,
		Skills:          u.Skills,
		Specializations: u.Specializations,
		UpdatedAt:       u.UpdatedAt,
		AwayCompanyName: u.AwayCompanyName,
		AwayCompanyURL:  u.AwayCompanyURL,
		PropertyCount:   e.propertyCounts[u.ID],
		ActiveJobCount:  e.jobCounts[u.ID],
		UserRoles:       []models.UserRoleSummary{},
	}
	if a, ok := e.addresses[u.AddressID]; ok {
		row.Address = &a
	}
	if c, ok := e.companies[u.CompanyID]; ok {
		row.CompanyInfo = &models.CompanySummary{ID: c.ID, Name: c.Name}
	}
	if c, ok := e.contracts[u.ID]; ok {
		row.TenancyContract = e.contract(c)
	}
	for _, a := range e.assignments[u.ID] {
		summary := models.UserRoleSummary{ID: a.ID, RoleID: a.RoleID, PropertyID: a.PropertyID}
		if r, ok := e.roles[a.RoleID]; ok {
			info := &models.RoleSummary{ID: r.ID, Name: r.Name, Permissions: []models.PermissionName{}}
			for _, pid := range r.PermissionIDs {
				if p, ok := e.permissions[pid]; ok {
					info.Permissions = append(info.Permissions, models.PermissionName{Name: p.Name})
				}
			}
			summary.RoleInfo = info
		}
		row.UserRoles = append(row.UserRoles, summary)
	}
	return row
}

func (e *enrichment) contract(c models.TenancyContract) *models.TenancyContractView {
	view := &models.TenancyContractView{TenancyContract: c}
	p, ok := e.properties[c.PropertyID]
	if !ok {
		return view
	}
	pv := &models.PropertyView{Property: p}
	if a, ok := e.addresses[p.AddressID]; ok {
		pv.Address = &a
	}
	if bl, ok := e.buildings[p.BuildingID]; ok {
		bv := &models.BuildingView{Building: bl}
		if owner, ok := e.owners[bl.OwnerID]; ok {
			summary := owner.Summary()
			bv.Owner = &summary
		}
		pv.Building = bv
	}
	view.Property = pv
	return view
}
