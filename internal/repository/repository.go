package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"connplanner/internal/models"
)

// ListConnectionsParams filters the connection listing. Search is a
// case-insensitive substring match on name.
type ListConnectionsParams struct {
	Search string
	Limit  int
	Offset int
}

// ListPlannersParams filters the planner listing. Query and Status apply
// conjunctively when both are set.
type ListPlannersParams struct {
	Query  string
	Status string
	Limit  int
	Offset int
}

type ListActivityParams struct {
	EntityType string
	Limit      int
	Offset     int
}

// ConnectionRepository is the persistence boundary for the connection
// registry. Tx-suffixed methods run against the supplied transaction so a
// default swap and the triggering write commit as one unit.
type ConnectionRepository interface {
	CreateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) error
	// UpdateConnectionTx writes item only when the stored version still
	// matches item.Version, then increments it. Returns rows affected.
	UpdateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) (int64, error)
	DeleteConnectionTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)
	GetConnectionByID(ctx context.Context, id uint64) (*models.Connection, error)
	FindConnectionByName(ctx context.Context, name string) (*models.Connection, error)
	CountConnectionsByNameExcluding(ctx context.Context, name string, excludeID uint64) (int64, error)
	GetDefaultConnectionTx(ctx context.Context, tx *gorm.DB) (*models.Connection, error)
	ClearDefaultConnectionTx(ctx context.Context, tx *gorm.DB, exceptID uint64) error
	ListConnections(ctx context.Context, params ListConnectionsParams) ([]models.Connection, error)
	CountConnections(ctx context.Context, params ListConnectionsParams) (int64, error)
}

// PlannerRepository persists the planner aggregate and its owned children.
type PlannerRepository interface {
	// CreatePlannerTx inserts the planner together with any nested funds,
	// sources, runs and reports carried on the struct.
	CreatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) error
	// UpdatePlannerTx overwrites scalar fields and the connection reference
	// under a version check. Returns rows affected.
	UpdatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) (int64, error)
	// DeletePlannerTx removes the planner and, explicitly, every owned
	// child: reports and runs first, then sources, fund links, the root.
	DeletePlannerTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)
	GetPlannerByID(ctx context.Context, id uint64) (*models.Planner, error)
	PlannerExists(ctx context.Context, id uint64) (bool, error)
	ListPlanners(ctx context.Context, params ListPlannersParams) ([]models.Planner, error)
	CountPlanners(ctx context.Context, params ListPlannersParams) (int64, error)

	PlannerFundExists(ctx context.Context, plannerID, fundID uint64) (bool, error)
	CreatePlannerFundTx(ctx context.Context, tx *gorm.DB, item *models.PlannerFund) error
	DeletePlannerFundTx(ctx context.Context, tx *gorm.DB, plannerID, fundID uint64) (int64, error)

	GetPlannerSourceByID(ctx context.Context, id uint64) (*models.PlannerSource, error)
	CreatePlannerSourceTx(ctx context.Context, tx *gorm.DB, item *models.PlannerSource) error
	// DeletePlannerSourceTx removes the source and its runs and reports.
	DeletePlannerSourceTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)
	MaxSourceDisplayOrder(ctx context.Context, plannerID uint64) (int, error)
	SourceDisplayOrderTaken(ctx context.Context, plannerID uint64, order int) (bool, error)

	CreatePlannerRunTx(ctx context.Context, tx *gorm.DB, item *models.PlannerRun) error
	DeletePlannerRunTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)
	MaxRunDisplayOrder(ctx context.Context, sourceID uint64) (int, error)
	RunDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error)

	CreatePlannerReportTx(ctx context.Context, tx *gorm.DB, item *models.PlannerReport) error
	DeletePlannerReportTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)
	MaxReportDisplayOrder(ctx context.Context, sourceID uint64) (int, error)
	ReportDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error)
}

// MasterDataRepository covers the lookup catalog: funds with their
// aliases plus the four name tables. Listings are alphabetical.
type MasterDataRepository interface {
	ListSourceNames(ctx context.Context) ([]models.SourceName, error)
	GetSourceNameByID(ctx context.Context, id uint64) (*models.SourceName, error)
	FindSourceNameByName(ctx context.Context, name string) (*models.SourceName, error)
	CreateSourceName(ctx context.Context, item *models.SourceName) error
	DeleteSourceName(ctx context.Context, id uint64) (int64, error)

	ListRunNames(ctx context.Context) ([]models.RunName, error)
	GetRunNameByID(ctx context.Context, id uint64) (*models.RunName, error)
	FindRunNameByName(ctx context.Context, name string) (*models.RunName, error)
	CreateRunName(ctx context.Context, item *models.RunName) error
	DeleteRunName(ctx context.Context, id uint64) (int64, error)

	ListReportTypes(ctx context.Context) ([]models.ReportType, error)
	GetReportTypeByID(ctx context.Context, id uint64) (*models.ReportType, error)
	FindReportTypeByName(ctx context.Context, name string) (*models.ReportType, error)
	CreateReportType(ctx context.Context, item *models.ReportType) error
	DeleteReportType(ctx context.Context, id uint64) (int64, error)

	ListReportNames(ctx context.Context) ([]models.ReportName, error)
	ListReportNamesByType(ctx context.Context, typeID uint64) ([]models.ReportName, error)
	GetReportNameByID(ctx context.Context, id uint64) (*models.ReportName, error)
	FindReportNameByName(ctx context.Context, name string) (*models.ReportName, error)
	CreateReportName(ctx context.Context, item *models.ReportName) error
	DeleteReportName(ctx context.Context, id uint64) (int64, error)

	ListFunds(ctx context.Context) ([]models.Fund, error)
	GetFundByID(ctx context.Context, id uint64) (*models.Fund, error)
	FindFundByName(ctx context.Context, name string) (*models.Fund, error)
	CreateFund(ctx context.Context, item *models.Fund) error
	// DeleteFundTx removes the fund and its aliases.
	DeleteFundTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error)

	GetFundAliasByID(ctx context.Context, id uint64) (*models.FundAlias, error)
	FindFundAliasByName(ctx context.Context, fundID uint64, name string) (*models.FundAlias, error)
	CreateFundAlias(ctx context.Context, item *models.FundAlias) error
	DeleteFundAlias(ctx context.Context, id uint64) (int64, error)
}

// Repository is the unified persistence boundary handed to the services.
type Repository interface {
	// InTx runs fn inside one transaction; every write of a logical
	// operation goes through it so partial aggregate writes cannot commit.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	ConnectionRepository
	PlannerRepository
	MasterDataRepository

	InsertActivityLog(ctx context.Context, item *models.ActivityLog) error
	ListActivityLogs(ctx context.Context, params ListActivityParams) ([]models.ActivityLog, error)
	DeleteActivityLogsBefore(ctx context.Context, before time.Time) (int64, error)

	// RecordCounts returns per-table row counts for the statistics snapshot.
	RecordCounts(ctx context.Context) (map[string]int64, error)
}
