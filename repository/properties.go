package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

// Properties, contracts, buildings and jobs are written by other services.
// Lookups here are batched so page enrichment costs a fixed number of
// queries regardless of page size.

// LatestContracts returns each user's tenancy contract with the latest start
// date.
func (s *Store) LatestContracts(ctx context.Context, userIDs []string) (map[string]models.TenancyContract, error) {
	out := make(map[string]models.TenancyContract, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []models.TenancyContract
	err := s.conn(ctx).Where("user_id IN ?", userIDs).
		Order("start_date DESC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		if _, ok := out[c.UserID]; !ok {
			out[c.UserID] = c
		}
	}
	return out, nil
}

// ActiveContractsForUser returns the ACTIVE contracts of one tenant.
func (s *Store) ActiveContractsForUser(ctx context.Context, userID string) ([]models.TenancyContract, error) {
	var rows []models.TenancyContract
	err := s.conn(ctx).Where("user_id = ? AND status = ?", userID, models.TenancyContractActive).
		Order("start_date DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// ContractsForProperties groups tenancy contracts by property id.
func (s *Store) ContractsForProperties(ctx context.Context, propertyIDs []string) (map[string][]models.TenancyContract, error) {
	out := make(map[string][]models.TenancyContract, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return out, nil
	}
	var rows []models.TenancyContract
	err := s.conn(ctx).Where("property_id IN ?", propertyIDs).
		Order("start_date DESC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.PropertyID] = append(out[c.PropertyID], c)
	}
	return out, nil
}

func (s *Store) CompanyProperties(ctx context.Context, companyID string) ([]models.Property, error) {
	var rows []models.Property
	err := s.conn(ctx).Where("company_id = ?", companyID).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) PropertiesByID(ctx context.Context, ids []string) (map[string]models.Property, error) {
	return byIDs[models.Property](ctx, s, ids, func(p models.Property) string { return p.ID })
}

func (s *Store) BuildingsByID(ctx context.Context, ids []string) (map[string]models.Building, error) {
	return byIDs[models.Building](ctx, s, ids, func(b models.Building) string { return b.ID })
}

func (s *Store) AddressesByID(ctx context.Context, ids []string) (map[string]models.Address, error) {
	return byIDs[models.Address](ctx, s, ids, func(a models.Address) string { return a.ID })
}

func (s *Store) UsersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	return byIDs[models.User](ctx, s, ids, func(u models.User) string { return u.ID })
}

func (s *Store) CompaniesByID(ctx context.Context, ids []string) (map[string]models.Company, error) {
	return byIDs[models.Company](ctx, s, ids, func(c models.Company) string { return c.ID })
}

func (s *Store) RolesByID(ctx context.Context, ids []string) (map[string]models.Role, error) {
	return byIDs[models.Role](ctx, s, ids, func(r models.Role) string { return r.ID })
}

func (s *Store) PermissionsByID(ctx context.Context, ids []string) (map[string]models.Permission, error) {
	return byIDs[models.Permission](ctx, s, ids, func(p models.Permission) string { return p.ID })
}

// PropertyCounts counts user_properties links per user.
func (s *Store) PropertyCounts(ctx context.Context, userIDs []string) (map[string]int64, error) {
	return countBy(ctx, s, &models.UserProperty{}, "user_id", userIDs, "")
}

// ActiveJobCounts counts ACTIVE jobs per assignee.
func (s *Store) ActiveJobCounts(ctx context.Context, userIDs []string) (map[string]int64, error) {
	return countBy(ctx, s, &models.Job{}, "assigned_to", userIDs, "status = 'ACTIVE'")
}

// JobsForProperties returns every job on the given properties.
func (s *Store) JobsForProperties(ctx context.Context, propertyIDs []string) ([]models.Job, error) {
	if len(propertyIDs) == 0 {
		return []models.Job{}, nil
	}
	var rows []models.Job
	err := s.conn(ctx).Where("property_id IN ?", propertyIDs).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func byIDs[T any](ctx context.Context, s *Store, ids []string, idOf func(T) string) (map[string]T, error) {
	out := make(map[string]T, len(ids))
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var rows []T
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[idOf(row)] = row
	}
	return out, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

func countBy(ctx context.Context, s *Store, model any, column string, keys []string, extra string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	keys = compactIDs(keys)
	if len(keys) == 0 {
		return out, nil
	}
	db := s.conn(ctx).Model(model).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys)
	if extra != "" {
		db = db.Where(extra)
	}
	var rows []groupCount
	if err := db.Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out, nil
}

func compactIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
