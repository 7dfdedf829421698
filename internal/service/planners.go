package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

// PlannerService owns the planner aggregate: atomic creation of the
// nested entity graph, the status-driven finished-at stamp, child
// ordering, and reference resolution against the lookup catalog and the
// connection registry. Nested children are accepted on create; after
// that, children change only through the dedicated add/remove operations.
type PlannerService struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	Activity *ActivityService
	// Now is the clock for the finished-at stamp; tests override it.
	Now func() time.Time
}

func (s *PlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *PlannerService) FindAll(ctx context.Context, status string, page, size int) (PagedResult[PlannerDTO], error) {
	return s.list(ctx, repository.ListPlannersParams{Status: strings.TrimSpace(status)}, page, size)
}

// Search matches the name substring case-insensitively; a status filter
// applies conjunctively.
func (s *PlannerService) Search(ctx context.Context, query, status string, page, size int) (PagedResult[PlannerDTO], error) {
	return s.list(ctx, repository.ListPlannersParams{
		Query:  strings.TrimSpace(query),
		Status: strings.TrimSpace(status),
	}, page, size)
}

func (s *PlannerService) list(ctx context.Context, params repository.ListPlannersParams, page, size int) (PagedResult[PlannerDTO], error) {
	page, size = normalizePage(page, size)
	params.Limit = size
	params.Offset = page * size

	items, err := s.Repo.ListPlanners(ctx, params)
	if err != nil {
		return PagedResult[PlannerDTO]{}, err
	}
	total, err := s.Repo.CountPlanners(ctx, params)
	if err != nil {
		return PagedResult[PlannerDTO]{}, err
	}
	dtos := make([]PlannerDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toPlannerDTO(&items[i]))
	}
	return newPagedResult(dtos, page, size, total), nil
}

func (s *PlannerService) FindByID(ctx context.Context, id uint64) (*PlannerDTO, error) {
	item, err := s.Repo.GetPlannerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("planner", id)
	}
	return toPlannerDTO(item), nil
}

// Create builds the whole aggregate in one transaction. Any reference
// that fails to resolve discards the entire write.
func (s *PlannerService) Create(ctx context.Context, in PlannerInput) (*PlannerDTO, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, invalidInput("unknown planner status %q", status)
	}

	item := &models.Planner{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PlannerType: in.PlannerType,
		Status:      status,
	}
	if status == models.StatusFinished {
		now := s.now()
		item.FinishedAt = &now
	}

	if in.ConnectionID != nil {
		conn, err := s.Repo.GetConnectionByID(ctx, *in.ConnectionID)
		if err != nil {
			return nil, err
		}
		if conn == nil {
			return nil, notFound("connection", *in.ConnectionID)
		}
		item.ConnectionID = in.ConnectionID
	}

	funds, err := s.resolveFunds(ctx, in.Funds)
	if err != nil {
		return nil, err
	}
	item.Funds = funds

	sources, err := s.resolveSources(ctx, in.Sources)
	if err != nil {
		return nil, err
	}
	item.Sources = sources

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreatePlannerTx(ctx, tx, item)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateAssociationError{PlannerID: item.ID}
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("planner created", zap.Uint64("id", item.ID), zap.String("name", item.Name))
	}
	s.Activity.Record(ctx, "planner", item.ID, "create", map[string]any{"name": item.Name, "status": item.Status})
	return s.FindByID(ctx, item.ID)
}

// Update overwrites scalar fields and re-resolves the connection
// reference; a nil connection id clears it. Moving to Finished stamps
// finished-at exactly once; later transitions leave the stamp in place.
func (s *PlannerService) Update(ctx context.Context, id uint64, in PlannerInput) (*PlannerDTO, error) {
	existing, err := s.Repo.GetPlannerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("planner", id)
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = existing.Status
	}
	if !models.ValidStatus(status) {
		return nil, invalidInput("unknown planner status %q", status)
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = in.Description
	existing.PlannerType = in.PlannerType
	existing.Status = status

	if in.ConnectionID != nil {
		conn, err := s.Repo.GetConnectionByID(ctx, *in.ConnectionID)
		if err != nil {
			return nil, err
		}
		if conn == nil {
			return nil, notFound("connection", *in.ConnectionID)
		}
		existing.ConnectionID = in.ConnectionID
	} else {
		existing.ConnectionID = nil
	}

	if status == models.StatusFinished && existing.FinishedAt == nil {
		now := s.now()
		existing.FinishedAt = &now
	}

	if in.Version != nil {
		existing.Version = *in.Version
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.UpdatePlannerTx(ctx, tx, existing)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("planner updated", zap.Uint64("id", id), zap.String("status", status))
	}
	s.Activity.Record(ctx, "planner", id, "update", map[string]any{"status": status})
	return s.FindByID(ctx, id)
}

// Delete cascades through reports, runs, sources and fund links before
// removing the root; nothing owned survives.
func (s *PlannerService) Delete(ctx context.Context, id uint64) error {
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeletePlannerTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("planner", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("planner deleted", zap.Uint64("id", id))
	}
	s.Activity.Record(ctx, "planner", id, "delete", nil)
	return nil
}

func (s *PlannerService) AddFund(ctx context.Context, plannerID uint64, in PlannerFundInput) (*PlannerDTO, error) {
	if err := s.assertPlanner(ctx, plannerID); err != nil {
		return nil, err
	}
	exists, err := s.Repo.PlannerFundExists(ctx, plannerID, in.FundID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &DuplicateAssociationError{PlannerID: plannerID, FundID: in.FundID}
	}
	link, err := s.resolveFund(ctx, in)
	if err != nil {
		return nil, err
	}
	link.PlannerID = plannerID

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreatePlannerFundTx(ctx, tx, &link)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateAssociationError{PlannerID: plannerID, FundID: in.FundID}
		}
		return nil, err
	}
	s.Activity.Record(ctx, "planner", plannerID, "add_fund", map[string]any{"fund_id": in.FundID})
	return s.FindByID(ctx, plannerID)
}

func (s *PlannerService) RemoveFund(ctx context.Context, plannerID, fundID uint64) error {
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeletePlannerFundTx(ctx, tx, plannerID, fundID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("planner fund", fundID)
		}
		s.Activity.Record(ctx, "planner", plannerID, "remove_fund", map[string]any{"fund_id": fundID})
		return nil
	})
}

func (s *PlannerService) AddSource(ctx context.Context, plannerID uint64, in PlannerSourceInput) (*PlannerDTO, error) {
	if err := s.assertPlanner(ctx, plannerID); err != nil {
		return nil, err
	}
	if in.SourceNameID != nil {
		name, err := s.Repo.GetSourceNameByID(ctx, *in.SourceNameID)
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, notFound("source name", *in.SourceNameID)
		}
	}
	order, err := s.nextOrder(ctx, in.DisplayOrder,
		func() (int, error) { return s.Repo.MaxSourceDisplayOrder(ctx, plannerID) },
		func(o int) (bool, error) { return s.Repo.SourceDisplayOrderTaken(ctx, plannerID, o) })
	if err != nil {
		return nil, err
	}

	item := &models.PlannerSource{
		PlannerID:    plannerID,
		SourceNameID: in.SourceNameID,
		DisplayOrder: order,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreatePlannerSourceTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, "planner", plannerID, "add_source", map[string]any{"source_id": item.ID})
	return s.FindByID(ctx, plannerID)
}

func (s *PlannerService) RemoveSource(ctx context.Context, sourceID uint64) error {
	source, err := s.Repo.GetPlannerSourceByID(ctx, sourceID)
	if err != nil {
		return err
	}
	if source == nil {
		return notFound("planner source", sourceID)
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		_, err := s.Repo.DeletePlannerSourceTx(ctx, tx, sourceID)
		return err
	})
	if err != nil {
		return err
	}
	s.Activity.Record(ctx, "planner", source.PlannerID, "remove_source", map[string]any{"source_id": sourceID})
	return nil
}

func (s *PlannerService) AddRun(ctx context.Context, sourceID uint64, in PlannerRunInput) (*PlannerDTO, error) {
	source, err := s.Repo.GetPlannerSourceByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, notFound("planner source", sourceID)
	}
	if in.RunNameID != nil {
		name, err := s.Repo.GetRunNameByID(ctx, *in.RunNameID)
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, notFound("run name", *in.RunNameID)
		}
	}
	order, err := s.nextOrder(ctx, in.DisplayOrder,
		func() (int, error) { return s.Repo.MaxRunDisplayOrder(ctx, sourceID) },
		func(o int) (bool, error) { return s.Repo.RunDisplayOrderTaken(ctx, sourceID, o) })
	if err != nil {
		return nil, err
	}

	item := &models.PlannerRun{
		PlannerSourceID: sourceID,
		RunNameID:       in.RunNameID,
		DisplayOrder:    order,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreatePlannerRunTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, "planner", source.PlannerID, "add_run", map[string]any{"run_id": item.ID})
	return s.FindByID(ctx, source.PlannerID)
}

func (s *PlannerService) RemoveRun(ctx context.Context, runID uint64) error {
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeletePlannerRunTx(ctx, tx, runID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("planner run", runID)
		}
		return nil
	})
}

func (s *PlannerService) AddReport(ctx context.Context, sourceID uint64, in PlannerReportInput) (*PlannerDTO, error) {
	source, err := s.Repo.GetPlannerSourceByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, notFound("planner source", sourceID)
	}
	if in.ReportTypeID != nil {
		rt, err := s.Repo.GetReportTypeByID(ctx, *in.ReportTypeID)
		if err != nil {
			return nil, err
		}
		if rt == nil {
			return nil, notFound("report type", *in.ReportTypeID)
		}
	}
	if in.ReportNameID != nil {
		rn, err := s.Repo.GetReportNameByID(ctx, *in.ReportNameID)
		if err != nil {
			return nil, err
		}
		if rn == nil {
			return nil, notFound("report name", *in.ReportNameID)
		}
	}
	order, err := s.nextOrder(ctx, in.DisplayOrder,
		func() (int, error) { return s.Repo.MaxReportDisplayOrder(ctx, sourceID) },
		func(o int) (bool, error) { return s.Repo.ReportDisplayOrderTaken(ctx, sourceID, o) })
	if err != nil {
		return nil, err
	}

	item := &models.PlannerReport{
		PlannerSourceID: sourceID,
		ReportTypeID:    in.ReportTypeID,
		ReportNameID:    in.ReportNameID,
		DisplayOrder:    order,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreatePlannerReportTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, "planner", source.PlannerID, "add_report", map[string]any{"report_id": item.ID})
	return s.FindByID(ctx, source.PlannerID)
}

func (s *PlannerService) RemoveReport(ctx context.Context, reportID uint64) error {
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeletePlannerReportTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("planner report", reportID)
		}
		return nil
	})
}

// --- resolution helpers ------------------------------------------------------

func (s *PlannerService) assertPlanner(ctx context.Context, id uint64) error {
	exists, err := s.Repo.PlannerExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("planner", id)
	}
	return nil
}

func (s *PlannerService) resolveFunds(ctx context.Context, inputs []PlannerFundInput) ([]models.PlannerFund, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	seen := make(map[uint64]struct{}, len(inputs))
	out := make([]models.PlannerFund, 0, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.FundID]; dup {
			return nil, &DuplicateAssociationError{FundID: in.FundID}
		}
		seen[in.FundID] = struct{}{}
		link, err := s.resolveFund(ctx, in)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, nil
}

func (s *PlannerService) resolveFund(ctx context.Context, in PlannerFundInput) (models.PlannerFund, error) {
	fund, err := s.Repo.GetFundByID(ctx, in.FundID)
	if err != nil {
		return models.PlannerFund{}, err
	}
	if fund == nil {
		return models.PlannerFund{}, notFound("fund", in.FundID)
	}
	link := models.PlannerFund{FundID: in.FundID}
	if in.FundAliasID != nil {
		alias, err := s.Repo.GetFundAliasByID(ctx, *in.FundAliasID)
		if err != nil {
			return models.PlannerFund{}, err
		}
		if alias == nil || alias.FundID != in.FundID {
			return models.PlannerFund{}, notFound("fund alias", *in.FundAliasID)
		}
		link.FundAliasID = in.FundAliasID
	}
	return link, nil
}

func (s *PlannerService) resolveSources(ctx context.Context, inputs []PlannerSourceInput) ([]models.PlannerSource, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	used := make(map[int]struct{}, len(inputs))
	next := 1
	out := make([]models.PlannerSource, 0, len(inputs))
	for _, in := range inputs {
		if in.SourceNameID != nil {
			name, err := s.Repo.GetSourceNameByID(ctx, *in.SourceNameID)
			if err != nil {
				return nil, err
			}
			if name == nil {
				return nil, notFound("source name", *in.SourceNameID)
			}
		}
		order, err := claimOrder(used, &next, in.DisplayOrder, "planner")
		if err != nil {
			return nil, err
		}

		source := models.PlannerSource{SourceNameID: in.SourceNameID, DisplayOrder: order}
		runs, err := s.resolveRuns(ctx, in.Runs)
		if err != nil {
			return nil, err
		}
		source.Runs = runs
		reports, err := s.resolveReports(ctx, in.Reports)
		if err != nil {
			return nil, err
		}
		source.Reports = reports
		out = append(out, source)
	}
	return out, nil
}

func (s *PlannerService) resolveRuns(ctx context.Context, inputs []PlannerRunInput) ([]models.PlannerRun, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	used := make(map[int]struct{}, len(inputs))
	next := 1
	out := make([]models.PlannerRun, 0, len(inputs))
	for _, in := range inputs {
		if in.RunNameID != nil {
			name, err := s.Repo.GetRunNameByID(ctx, *in.RunNameID)
			if err != nil {
				return nil, err
			}
			if name == nil {
				return nil, notFound("run name", *in.RunNameID)
			}
		}
		order, err := claimOrder(used, &next, in.DisplayOrder, "source")
		if err != nil {
			return nil, err
		}
		out = append(out, models.PlannerRun{RunNameID: in.RunNameID, DisplayOrder: order})
	}
	return out, nil
}

func (s *PlannerService) resolveReports(ctx context.Context, inputs []PlannerReportInput) ([]models.PlannerReport, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	used := make(map[int]struct{}, len(inputs))
	next := 1
	out := make([]models.PlannerReport, 0, len(inputs))
	for _, in := range inputs {
		if in.ReportTypeID != nil {
			rt, err := s.Repo.GetReportTypeByID(ctx, *in.ReportTypeID)
			if err != nil {
				return nil, err
			}
			if rt == nil {
				return nil, notFound("report type", *in.ReportTypeID)
			}
		}
		if in.ReportNameID != nil {
			rn, err := s.Repo.GetReportNameByID(ctx, *in.ReportNameID)
			if err != nil {
				return nil, err
			}
			if rn == nil {
				return nil, notFound("report name", *in.ReportNameID)
			}
		}
		order, err := claimOrder(used, &next, in.DisplayOrder, "source")
		if err != nil {
			return nil, err
		}
		out = append(out, models.PlannerReport{
			ReportTypeID: in.ReportTypeID,
			ReportNameID: in.ReportNameID,
			DisplayOrder: order,
		})
	}
	return out, nil
}

// claimOrder hands out the requested display order, or the next free
// integer when none was given. A repeated explicit order is a bad request.
func claimOrder(used map[int]struct{}, next *int, requested int, scope string) (int, error) {
	if requested > 0 {
		if _, taken := used[requested]; taken {
			return 0, invalidInput("display order %d used twice within the %s", requested, scope)
		}
		used[requested] = struct{}{}
		return requested, nil
	}
	for {
		if _, taken := used[*next]; !taken {
			break
		}
		*next++
	}
	used[*next] = struct{}{}
	return *next, nil
}

// nextOrder is the single-append variant: it consults the store for the
// current maximum and for collisions.
func (s *PlannerService) nextOrder(ctx context.Context, requested int, max func() (int, error), taken func(int) (bool, error)) (int, error) {
	if requested <= 0 {
		current, err := max()
		if err != nil {
			return 0, err
		}
		return current + 1, nil
	}
	used, err := taken(requested)
	if err != nil {
		return 0, err
	}
	if used {
		return 0, invalidInput("display order %d is already in use", requested)
	}
	return requested, nil
}
