package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// dbOr returns tx when the caller is already inside a transaction and the
// base handle otherwise.
func (s *Store) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

// --- connections -------------------------------------------------------------

func (s *Store) CreateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) (int64, error) {
	if s == nil || s.db == nil || item == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"name":                  item.Name,
			"base_url":              item.BaseURL,
			"authentication_method": item.AuthMethod,
			"authentication_place":  item.AuthPlace,
			"key_field":             item.KeyField,
			"value_field":           item.ValueField,
			"value_field_set":       item.ValueFieldSet,
			"is_default":            item.IsDefault,
			"version":               item.Version + 1,
		})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteConnectionTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).Delete(&models.Connection{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) GetConnectionByID(ctx context.Context, id uint64) (*models.Connection, error) {
	return getByID[models.Connection](ctx, s.db, id)
}

func (s *Store) FindConnectionByName(ctx context.Context, name string) (*models.Connection, error) {
	return findByNameFold[models.Connection](ctx, s.db, name)
}

func (s *Store) CountConnectionsByNameExcluding(ctx context.Context, name string, excludeID uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count, err
}

func (s *Store) GetDefaultConnectionTx(ctx context.Context, tx *gorm.DB) (*models.Connection, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Connection
	err := s.dbOr(tx).WithContext(ctx).Where("is_default = ?", true).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ClearDefaultConnectionTx(ctx context.Context, tx *gorm.DB, exceptID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).
		Model(&models.Connection{}).
		Where("is_default = ? AND id <> ?", true, exceptID).
		Updates(map[string]any{"is_default": false, "version": gorm.Expr("version + 1")}).Error
}

func (s *Store) ListConnections(ctx context.Context, params repository.ListConnectionsParams) ([]models.Connection, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.connectionQuery(ctx, params).Order("name asc")
	limit := normalizeLimit(params.Limit, 20)
	offset := normalizeOffset(params.Offset)
	var items []models.Connection
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountConnections(ctx context.Context, params repository.ListConnectionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.connectionQuery(ctx, params).Count(&count).Error
	return count, err
}

func (s *Store) connectionQuery(ctx context.Context, params repository.ListConnectionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Connection{})
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	return query
}

// --- planners ----------------------------------------------------------------

func (s *Store) CreatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) UpdatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) (int64, error) {
	if s == nil || s.db == nil || item == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).
		Model(&models.Planner{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"name":          item.Name,
			"description":   item.Description,
			"planner_type":  item.PlannerType,
			"status":        item.Status,
			"connection_id": item.ConnectionID,
			"finished_at":   item.FinishedAt,
			"version":       item.Version + 1,
		})
	return res.RowsAffected, res.Error
}

func (s *Store) DeletePlannerTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	db := s.dbOr(tx).WithContext(ctx)
	sourceIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.PlannerSource{}).
		Select("id").
		Where("planner_id = ?", id)
	if err := db.Where("planner_source_id IN (?)", sourceIDs).Delete(&models.PlannerRun{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("planner_source_id IN (?)", sourceIDs).Delete(&models.PlannerReport{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("planner_id = ?", id).Delete(&models.PlannerSource{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("planner_id = ?", id).Delete(&models.PlannerFund{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Planner{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) GetPlannerByID(ctx context.Context, id uint64) (*models.Planner, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Planner
	err := s.db.WithContext(ctx).
		Preload("Connection").
		Preload("Funds", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Funds.Fund").
		Preload("Funds.FundAlias").
		Preload("Sources", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc, id asc") }).
		Preload("Sources.SourceName").
		Preload("Sources.Runs", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc, id asc") }).
		Preload("Sources.Runs.RunName").
		Preload("Sources.Reports", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc, id asc") }).
		Preload("Sources.Reports.ReportType").
		Preload("Sources.Reports.ReportName").
		First(&item, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) PlannerExists(ctx context.Context, id uint64) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Planner{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Store) ListPlanners(ctx context.Context, params repository.ListPlannersParams) ([]models.Planner, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.plannerQuery(ctx, params).Preload("Connection").Order("created_at desc")
	limit := normalizeLimit(params.Limit, 20)
	offset := normalizeOffset(params.Offset)
	var items []models.Planner
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPlanners(ctx context.Context, params repository.ListPlannersParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.plannerQuery(ctx, params).Count(&count).Error
	return count, err
}

func (s *Store) plannerQuery(ctx context.Context, params repository.ListPlannersParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Planner{})
	if q := strings.TrimSpace(params.Query); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

// --- planner children --------------------------------------------------------

func (s *Store) PlannerFundExists(ctx context.Context, plannerID, fundID uint64) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PlannerFund{}).
		Where("planner_id = ? AND fund_id = ?", plannerID, fundID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreatePlannerFundTx(ctx context.Context, tx *gorm.DB, item *models.PlannerFund) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) DeletePlannerFundTx(ctx context.Context, tx *gorm.DB, plannerID, fundID uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).
		Where("planner_id = ? AND fund_id = ?", plannerID, fundID).
		Delete(&models.PlannerFund{})
	return res.RowsAffected, res.Error
}

func (s *Store) GetPlannerSourceByID(ctx context.Context, id uint64) (*models.PlannerSource, error) {
	return getByID[models.PlannerSource](ctx, s.db, id)
}

func (s *Store) CreatePlannerSourceTx(ctx context.Context, tx *gorm.DB, item *models.PlannerSource) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) DeletePlannerSourceTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	db := s.dbOr(tx).WithContext(ctx)
	if err := db.Where("planner_source_id = ?", id).Delete(&models.PlannerRun{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("planner_source_id = ?", id).Delete(&models.PlannerReport{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.PlannerSource{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) MaxSourceDisplayOrder(ctx context.Context, plannerID uint64) (int, error) {
	return maxOrder(ctx, s.db, &models.PlannerSource{}, "planner_id", plannerID)
}

func (s *Store) SourceDisplayOrderTaken(ctx context.Context, plannerID uint64, order int) (bool, error) {
	return orderTaken(ctx, s.db, &models.PlannerSource{}, "planner_id", plannerID, order)
}

func (s *Store) CreatePlannerRunTx(ctx context.Context, tx *gorm.DB, item *models.PlannerRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) DeletePlannerRunTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).Delete(&models.PlannerRun{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) MaxRunDisplayOrder(ctx context.Context, sourceID uint64) (int, error) {
	return maxOrder(ctx, s.db, &models.PlannerRun{}, "planner_source_id", sourceID)
}

func (s *Store) RunDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error) {
	return orderTaken(ctx, s.db, &models.PlannerRun{}, "planner_source_id", sourceID, order)
}

func (s *Store) CreatePlannerReportTx(ctx context.Context, tx *gorm.DB, item *models.PlannerReport) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.dbOr(tx).WithContext(ctx).Create(item).Error
}

func (s *Store) DeletePlannerReportTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.dbOr(tx).WithContext(ctx).Delete(&models.PlannerReport{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) MaxReportDisplayOrder(ctx context.Context, sourceID uint64) (int, error) {
	return maxOrder(ctx, s.db, &models.PlannerReport{}, "planner_source_id", sourceID)
}

func (s *Store) ReportDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error) {
	return orderTaken(ctx, s.db, &models.PlannerReport{}, "planner_source_id", sourceID, order)
}

// --- master data -------------------------------------------------------------

func (s *Store) ListSourceNames(ctx context.Context) ([]models.SourceName, error) {
	return listByName[models.SourceName](ctx, s.db)
}

func (s *Store) GetSourceNameByID(ctx context.Context, id uint64) (*models.SourceName, error) {
	return getByID[models.SourceName](ctx, s.db, id)
}

func (s *Store) FindSourceNameByName(ctx context.Context, name string) (*models.SourceName, error) {
	return findByNameFold[models.SourceName](ctx, s.db, name)
}

func (s *Store) CreateSourceName(ctx context.Context, item *models.SourceName) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteSourceName(ctx context.Context, id uint64) (int64, error) {
	return deleteByID[models.SourceName](ctx, s.db, id)
}

func (s *Store) ListRunNames(ctx context.Context) ([]models.RunName, error) {
	return listByName[models.RunName](ctx, s.db)
}

func (s *Store) GetRunNameByID(ctx context.Context, id uint64) (*models.RunName, error) {
	return getByID[models.RunName](ctx, s.db, id)
}

func (s *Store) FindRunNameByName(ctx context.Context, name string) (*models.RunName, error) {
	return findByNameFold[models.RunName](ctx, s.db, name)
}

func (s *Store) CreateRunName(ctx context.Context, item *models.RunName) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteRunName(ctx context.Context, id uint64) (int64, error) {
	return deleteByID[models.RunName](ctx, s.db, id)
}

func (s *Store) ListReportTypes(ctx context.Context) ([]models.ReportType, error) {
	return listByName[models.ReportType](ctx, s.db)
}

func (s *Store) GetReportTypeByID(ctx context.Context, id uint64) (*models.ReportType, error) {
	return getByID[models.ReportType](ctx, s.db, id)
}

func (s *Store) FindReportTypeByName(ctx context.Context, name string) (*models.ReportType, error) {
	return findByNameFold[models.ReportType](ctx, s.db, name)
}

func (s *Store) CreateReportType(ctx context.Context, item *models.ReportType) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteReportType(ctx context.Context, id uint64) (int64, error) {
	return deleteByID[models.ReportType](ctx, s.db, id)
}

func (s *Store) ListReportNames(ctx context.Context) ([]models.ReportName, error) {
	return listByName[models.ReportName](ctx, s.db)
}

func (s *Store) ListReportNamesByType(ctx context.Context, typeID uint64) ([]models.ReportName, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ReportName
	err := s.db.WithContext(ctx).
		Where("report_type_id = ?", typeID).
		Order("name asc").
		Find(&items).Error
	return items, err
}

func (s *Store) GetReportNameByID(ctx context.Context, id uint64) (*models.ReportName, error) {
	return getByID[models.ReportName](ctx, s.db, id)
}

func (s *Store) FindReportNameByName(ctx context.Context, name string) (*models.ReportName, error) {
	return findByNameFold[models.ReportName](ctx, s.db, name)
}

func (s *Store) CreateReportName(ctx context.Context, item *models.ReportName) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteReportName(ctx context.Context, id uint64) (int64, error) {
	return deleteByID[models.ReportName](ctx, s.db, id)
}

func (s *Store) ListFunds(ctx context.Context) ([]models.Fund, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Fund
	err := s.db.WithContext(ctx).
		Preload("Aliases", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		Order("name asc").
		Find(&items).Error
	return items, err
}

func (s *Store) GetFundByID(ctx context.Context, id uint64) (*models.Fund, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Fund
	err := s.db.WithContext(ctx).
		Preload("Aliases", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		First(&item, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) FindFundByName(ctx context.Context, name string) (*models.Fund, error) {
	return findByNameFold[models.Fund](ctx, s.db, name)
}

func (s *Store) CreateFund(ctx context.Context, item *models.Fund) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteFundTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	db := s.dbOr(tx).WithContext(ctx)
	if err := db.Where("fund_id = ?", id).Delete(&models.FundAlias{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Fund{}, id)
	return res.RowsAffected, res.Error
}

func (s *Store) GetFundAliasByID(ctx context.Context, id uint64) (*models.FundAlias, error) {
	return getByID[models.FundAlias](ctx, s.db, id)
}

func (s *Store) FindFundAliasByName(ctx context.Context, fundID uint64, name string) (*models.FundAlias, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.FundAlias
	err := s.db.WithContext(ctx).
		Where("fund_id = ? AND LOWER(name) = LOWER(?)", fundID, strings.TrimSpace(name)).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateFundAlias(ctx context.Context, item *models.FundAlias) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteFundAlias(ctx context.Context, id uint64) (int64, error) {
	return deleteByID[models.FundAlias](ctx, s.db, id)
}

// --- activity log ------------------------------------------------------------

func (s *Store) InsertActivityLog(ctx context.Context, item *models.ActivityLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListActivityLogs(ctx context.Context, params repository.ListActivityParams) ([]models.ActivityLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ActivityLog{})
	if t := strings.TrimSpace(params.EntityType); t != "" {
		query = query.Where("entity_type = ?", t)
	}
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.ActivityLog
	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (s *Store) DeleteActivityLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("created_at < ?", before).Delete(&models.ActivityLog{})
	return res.RowsAffected, res.Error
}

// --- statistics --------------------------------------------------------------

func (s *Store) RecordCounts(ctx context.Context) (map[string]int64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	tables := map[string]any{
		"connections":     &models.Connection{},
		"planners":        &models.Planner{},
		"funds":           &models.Fund{},
		"fund_aliases":    &models.FundAlias{},
		"source_names":    &models.SourceName{},
		"run_names":       &models.RunName{},
		"report_types":    &models.ReportType{},
		"report_names":    &models.ReportName{},
		"planner_funds":   &models.PlannerFund{},
		"planner_sources": &models.PlannerSource{},
	}
	counts := make(map[string]int64, len(tables))
	for name, model := range tables {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, nil
}

// --- helpers -----------------------------------------------------------------

func listByName[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	if db == nil {
		return nil, nil
	}
	var items []T
	err := db.WithContext(ctx).Order("name asc").Find(&items).Error
	return items, err
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uint64) (*T, error) {
	if db == nil {
		return nil, nil
	}
	var item T
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func findByNameFold[T any](ctx context.Context, db *gorm.DB, name string) (*T, error) {
	if db == nil {
		return nil, nil
	}
	var item T
	err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint64) (int64, error) {
	if db == nil {
		return 0, nil
	}
	var model T
	res := db.WithContext(ctx).Delete(&model, id)
	return res.RowsAffected, res.Error
}

func maxOrder(ctx context.Context, db *gorm.DB, model any, parentColumn string, parentID uint64) (int, error) {
	if db == nil {
		return 0, nil
	}
	var max int
	err := db.WithContext(ctx).
		Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	return max, err
}

func orderTaken(ctx context.Context, db *gorm.DB, model any, parentColumn string, parentID uint64, order int) (bool, error) {
	if db == nil {
		return false, nil
	}
	var count int64
	err := db.WithContext(ctx).
		Model(model).
		Where(parentColumn+" = ? AND display_order = ?", parentID, order).
		Count(&count).Error
	return count > 0, err
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
