package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

// MasterDataService manages the lookup catalog: funds (with aliases),
// source names, run names, report types and report names. Uniqueness is
// by name, case-insensitive; listings are alphabetical.
type MasterDataService struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	Activity *ActivityService
}

// --- source names ------------------------------------------------------------

func (s *MasterDataService) ListSourceNames(ctx context.Context) ([]models.SourceName, error) {
	return s.Repo.ListSourceNames(ctx)
}

func (s *MasterDataService) CreateSourceName(ctx context.Context, in MasterDataInput) (*models.SourceName, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindSourceNameByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "source name", Name: name}
	}
	item := &models.SourceName{Name: name}
	if err := s.Repo.CreateSourceName(ctx, item); err != nil {
		return nil, translateDuplicate(err, "source name", name)
	}
	s.logCreated(ctx, "source name", item.ID, name)
	return item, nil
}

func (s *MasterDataService) DeleteSourceName(ctx context.Context, id uint64) error {
	rows, err := s.Repo.DeleteSourceName(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound("source name", id)
	}
	s.Activity.Record(ctx, "source_name", id, "delete", nil)
	return nil
}

// --- run names ---------------------------------------------------------------

func (s *MasterDataService) ListRunNames(ctx context.Context) ([]models.RunName, error) {
	return s.Repo.ListRunNames(ctx)
}

func (s *MasterDataService) CreateRunName(ctx context.Context, in MasterDataInput) (*models.RunName, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindRunNameByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "run name", Name: name}
	}
	item := &models.RunName{Name: name}
	if err := s.Repo.CreateRunName(ctx, item); err != nil {
		return nil, translateDuplicate(err, "run name", name)
	}
	s.logCreated(ctx, "run name", item.ID, name)
	return item, nil
}

func (s *MasterDataService) DeleteRunName(ctx context.Context, id uint64) error {
	rows, err := s.Repo.DeleteRunName(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound("run name", id)
	}
	s.Activity.Record(ctx, "run_name", id, "delete", nil)
	return nil
}

// --- report types ------------------------------------------------------------

func (s *MasterDataService) ListReportTypes(ctx context.Context) ([]models.ReportType, error) {
	return s.Repo.ListReportTypes(ctx)
}

func (s *MasterDataService) CreateReportType(ctx context.Context, in MasterDataInput) (*models.ReportType, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindReportTypeByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "report type", Name: name}
	}
	item := &models.ReportType{Name: name}
	if err := s.Repo.CreateReportType(ctx, item); err != nil {
		return nil, translateDuplicate(err, "report type", name)
	}
	s.logCreated(ctx, "report type", item.ID, name)
	return item, nil
}

func (s *MasterDataService) DeleteReportType(ctx context.Context, id uint64) error {
	rows, err := s.Repo.DeleteReportType(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound("report type", id)
	}
	s.Activity.Record(ctx, "report_type", id, "delete", nil)
	return nil
}

// --- report names ------------------------------------------------------------

func (s *MasterDataService) ListReportNames(ctx context.Context) ([]models.ReportName, error) {
	return s.Repo.ListReportNames(ctx)
}

func (s *MasterDataService) ListReportNamesByType(ctx context.Context, typeID uint64) ([]models.ReportName, error) {
	rt, err := s.Repo.GetReportTypeByID(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, notFound("report type", typeID)
	}
	return s.Repo.ListReportNamesByType(ctx, typeID)
}

func (s *MasterDataService) CreateReportName(ctx context.Context, in MasterDataInput) (*models.ReportName, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindReportNameByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "report name", Name: name}
	}
	item := &models.ReportName{Name: name}
	if in.ReportTypeID != nil {
		rt, err := s.Repo.GetReportTypeByID(ctx, *in.ReportTypeID)
		if err != nil {
			return nil, err
		}
		if rt == nil {
			return nil, notFound("report type", *in.ReportTypeID)
		}
		item.ReportTypeID = in.ReportTypeID
	}
	if err := s.Repo.CreateReportName(ctx, item); err != nil {
		return nil, translateDuplicate(err, "report name", name)
	}
	s.logCreated(ctx, "report name", item.ID, name)
	return item, nil
}

func (s *MasterDataService) DeleteReportName(ctx context.Context, id uint64) error {
	rows, err := s.Repo.DeleteReportName(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound("report name", id)
	}
	s.Activity.Record(ctx, "report_name", id, "delete", nil)
	return nil
}

// --- funds and aliases -------------------------------------------------------

func (s *MasterDataService) ListFunds(ctx context.Context) ([]models.Fund, error) {
	return s.Repo.ListFunds(ctx)
}

func (s *MasterDataService) CreateFund(ctx context.Context, in MasterDataInput) (*models.Fund, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindFundByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "fund", Name: name}
	}
	item := &models.Fund{Name: name}
	if err := s.Repo.CreateFund(ctx, item); err != nil {
		return nil, translateDuplicate(err, "fund", name)
	}
	s.logCreated(ctx, "fund", item.ID, name)
	return item, nil
}

// DeleteFund drops the fund and its aliases in one transaction.
func (s *MasterDataService) DeleteFund(ctx context.Context, id uint64) error {
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeleteFundTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("fund", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Activity.Record(ctx, "fund", id, "delete", nil)
	return nil
}

// CreateFundAlias attaches an alias to a fund; alias names are unique
// within their fund.
func (s *MasterDataService) CreateFundAlias(ctx context.Context, fundID uint64, in MasterDataInput) (*models.FundAlias, error) {
	fund, err := s.Repo.GetFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund == nil {
		return nil, notFound("fund", fundID)
	}
	name := strings.TrimSpace(in.Name)
	existing, err := s.Repo.FindFundAliasByName(ctx, fundID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "fund alias", Name: name}
	}
	item := &models.FundAlias{FundID: fundID, Name: name}
	if err := s.Repo.CreateFundAlias(ctx, item); err != nil {
		return nil, translateDuplicate(err, "fund alias", name)
	}
	s.logCreated(ctx, "fund alias", item.ID, name)
	return item, nil
}

func (s *MasterDataService) DeleteFundAlias(ctx context.Context, id uint64) error {
	rows, err := s.Repo.DeleteFundAlias(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound("fund alias", id)
	}
	s.Activity.Record(ctx, "fund_alias", id, "delete", nil)
	return nil
}

func (s *MasterDataService) logCreated(ctx context.Context, entity string, id uint64, name string) {
	if s.Logger != nil {
		s.Logger.Info("master data created",
			zap.String("entity", entity),
			zap.Uint64("id", id),
			zap.String("name", name))
	}
	s.Activity.Record(ctx, strings.ReplaceAll(entity, " ", "_"), id, "create", map[string]any{"name": name})
}
