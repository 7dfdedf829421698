package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Writes mirror the store's semantics closely enough for the service
// invariants under test: version checks, uniqueness, cascades.
type stubRepo struct {
	seq uint64

	connections map[uint64]*models.Connection
	planners    map[uint64]*models.Planner
	fundLinks   map[uint64]*models.PlannerFund
	sources     map[uint64]*models.PlannerSource
	runs        map[uint64]*models.PlannerRun
	reports     map[uint64]*models.PlannerReport

	sourceNames map[uint64]*models.SourceName
	runNames    map[uint64]*models.RunName
	reportTypes map[uint64]*models.ReportType
	reportNames map[uint64]*models.ReportName
	funds       map[uint64]*models.Fund
	aliases     map[uint64]*models.FundAlias

	activity []models.ActivityLog
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		connections: map[uint64]*models.Connection{},
		planners:    map[uint64]*models.Planner{},
		fundLinks:   map[uint64]*models.PlannerFund{},
		sources:     map[uint64]*models.PlannerSource{},
		runs:        map[uint64]*models.PlannerRun{},
		reports:     map[uint64]*models.PlannerReport{},
		sourceNames: map[uint64]*models.SourceName{},
		runNames:    map[uint64]*models.RunName{},
		reportTypes: map[uint64]*models.ReportType{},
		reportNames: map[uint64]*models.ReportName{},
		funds:       map[uint64]*models.Fund{},
		aliases:     map[uint64]*models.FundAlias{},
	}
}

func (s *stubRepo) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- connections -------------------------------------------------------------

func (s *stubRepo) CreateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) error {
	for _, c := range s.connections {
		if strings.EqualFold(c.Name, item.Name) {
			return gorm.ErrDuplicatedKey
		}
		if item.IsDefault && c.IsDefault {
			return gorm.ErrDuplicatedKey
		}
	}
	item.ID = s.nextID()
	item.CreatedAt = time.Now().UTC()
	cp := *item
	s.connections[item.ID] = &cp
	return nil
}

func (s *stubRepo) UpdateConnectionTx(ctx context.Context, tx *gorm.DB, item *models.Connection) (int64, error) {
	stored, ok := s.connections[item.ID]
	if !ok || stored.Version != item.Version {
		return 0, nil
	}
	cp := *item
	cp.Version = item.Version + 1
	s.connections[item.ID] = &cp
	return 1, nil
}

func (s *stubRepo) DeleteConnectionTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.connections[id]; !ok {
		return 0, nil
	}
	delete(s.connections, id)
	for _, p := range s.planners {
		if p.ConnectionID != nil && *p.ConnectionID == id {
			p.ConnectionID = nil
		}
	}
	return 1, nil
}

func (s *stubRepo) GetConnectionByID(ctx context.Context, id uint64) (*models.Connection, error) {
	if c, ok := s.connections[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindConnectionByName(ctx context.Context, name string) (*models.Connection, error) {
	for _, c := range s.connections {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CountConnectionsByNameExcluding(ctx context.Context, name string, excludeID uint64) (int64, error) {
	var n int64
	for _, c := range s.connections {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) GetDefaultConnectionTx(ctx context.Context, tx *gorm.DB) (*models.Connection, error) {
	for _, c := range s.connections {
		if c.IsDefault {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ClearDefaultConnectionTx(ctx context.Context, tx *gorm.DB, exceptID uint64) error {
	for _, c := range s.connections {
		if c.IsDefault && c.ID != exceptID {
			c.IsDefault = false
			c.Version++
		}
	}
	return nil
}

func (s *stubRepo) ListConnections(ctx context.Context, params repository.ListConnectionsParams) ([]models.Connection, error) {
	var out []models.Connection
	for _, c := range s.connections {
		if params.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return slicePage(out, params.Limit, params.Offset), nil
}

func (s *stubRepo) CountConnections(ctx context.Context, params repository.ListConnectionsParams) (int64, error) {
	items, _ := s.ListConnections(ctx, repository.ListConnectionsParams{Search: params.Search})
	return int64(len(items)), nil
}

// --- planners ----------------------------------------------------------------

func (s *stubRepo) CreatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) error {
	item.ID = s.nextID()
	item.CreatedAt = time.Now().UTC()
	root := *item
	root.Funds = nil
	root.Sources = nil
	s.planners[item.ID] = &root

	for i := range item.Funds {
		link := item.Funds[i]
		link.ID = s.nextID()
		link.PlannerID = item.ID
		for _, existing := range s.fundLinks {
			if existing.PlannerID == item.ID && existing.FundID == link.FundID {
				return gorm.ErrDuplicatedKey
			}
		}
		s.fundLinks[link.ID] = &link
	}
	for i := range item.Sources {
		src := item.Sources[i]
		src.ID = s.nextID()
		src.PlannerID = item.ID
		for j := range src.Runs {
			run := src.Runs[j]
			run.ID = s.nextID()
			run.PlannerSourceID = src.ID
			s.runs[run.ID] = &run
		}
		for j := range src.Reports {
			rep := src.Reports[j]
			rep.ID = s.nextID()
			rep.PlannerSourceID = src.ID
			s.reports[rep.ID] = &rep
		}
		src.Runs = nil
		src.Reports = nil
		s.sources[src.ID] = &src
	}
	return nil
}

func (s *stubRepo) UpdatePlannerTx(ctx context.Context, tx *gorm.DB, item *models.Planner) (int64, error) {
	stored, ok := s.planners[item.ID]
	if !ok || stored.Version != item.Version {
		return 0, nil
	}
	cp := *item
	cp.Funds = nil
	cp.Sources = nil
	cp.Version = item.Version + 1
	s.planners[item.ID] = &cp
	return 1, nil
}

func (s *stubRepo) DeletePlannerTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.planners[id]; !ok {
		return 0, nil
	}
	for sid, src := range s.sources {
		if src.PlannerID != id {
			continue
		}
		for rid, run := range s.runs {
			if run.PlannerSourceID == sid {
				delete(s.runs, rid)
			}
		}
		for rid, rep := range s.reports {
			if rep.PlannerSourceID == sid {
				delete(s.reports, rid)
			}
		}
		delete(s.sources, sid)
	}
	for lid, link := range s.fundLinks {
		if link.PlannerID == id {
			delete(s.fundLinks, lid)
		}
	}
	delete(s.planners, id)
	return 1, nil
}

func (s *stubRepo) GetPlannerByID(ctx context.Context, id uint64) (*models.Planner, error) {
	stored, ok := s.planners[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	if cp.ConnectionID != nil {
		if conn, ok := s.connections[*cp.ConnectionID]; ok {
			c := *conn
			cp.Connection = &c
		}
	}
	for _, link := range s.fundLinks {
		if link.PlannerID == id {
			cp.Funds = append(cp.Funds, *link)
		}
	}
	sort.Slice(cp.Funds, func(i, j int) bool { return cp.Funds[i].ID < cp.Funds[j].ID })
	for _, src := range s.sources {
		if src.PlannerID != id {
			continue
		}
		sc := *src
		for _, run := range s.runs {
			if run.PlannerSourceID == sc.ID {
				sc.Runs = append(sc.Runs, *run)
			}
		}
		sort.Slice(sc.Runs, func(i, j int) bool {
			if sc.Runs[i].DisplayOrder != sc.Runs[j].DisplayOrder {
				return sc.Runs[i].DisplayOrder < sc.Runs[j].DisplayOrder
			}
			return sc.Runs[i].ID < sc.Runs[j].ID
		})
		for _, rep := range s.reports {
			if rep.PlannerSourceID == sc.ID {
				sc.Reports = append(sc.Reports, *rep)
			}
		}
		sort.Slice(sc.Reports, func(i, j int) bool {
			if sc.Reports[i].DisplayOrder != sc.Reports[j].DisplayOrder {
				return sc.Reports[i].DisplayOrder < sc.Reports[j].DisplayOrder
			}
			return sc.Reports[i].ID < sc.Reports[j].ID
		})
		cp.Sources = append(cp.Sources, sc)
	}
	sort.Slice(cp.Sources, func(i, j int) bool {
		if cp.Sources[i].DisplayOrder != cp.Sources[j].DisplayOrder {
			return cp.Sources[i].DisplayOrder < cp.Sources[j].DisplayOrder
		}
		return cp.Sources[i].ID < cp.Sources[j].ID
	})
	return &cp, nil
}

func (s *stubRepo) PlannerExists(ctx context.Context, id uint64) (bool, error) {
	_, ok := s.planners[id]
	return ok, nil
}

func (s *stubRepo) ListPlanners(ctx context.Context, params repository.ListPlannersParams) ([]models.Planner, error) {
	var out []models.Planner
	for _, p := range s.planners {
		if params.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Query)) {
			continue
		}
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return slicePage(out, params.Limit, params.Offset), nil
}

func (s *stubRepo) CountPlanners(ctx context.Context, params repository.ListPlannersParams) (int64, error) {
	items, _ := s.ListPlanners(ctx, repository.ListPlannersParams{Query: params.Query, Status: params.Status})
	return int64(len(items)), nil
}

func (s *stubRepo) PlannerFundExists(ctx context.Context, plannerID, fundID uint64) (bool, error) {
	for _, link := range s.fundLinks {
		if link.PlannerID == plannerID && link.FundID == fundID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) CreatePlannerFundTx(ctx context.Context, tx *gorm.DB, item *models.PlannerFund) error {
	for _, link := range s.fundLinks {
		if link.PlannerID == item.PlannerID && link.FundID == item.FundID {
			return gorm.ErrDuplicatedKey
		}
	}
	item.ID = s.nextID()
	cp := *item
	s.fundLinks[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeletePlannerFundTx(ctx context.Context, tx *gorm.DB, plannerID, fundID uint64) (int64, error) {
	for id, link := range s.fundLinks {
		if link.PlannerID == plannerID && link.FundID == fundID {
			delete(s.fundLinks, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubRepo) GetPlannerSourceByID(ctx context.Context, id uint64) (*models.PlannerSource, error) {
	if src, ok := s.sources[id]; ok {
		cp := *src
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) CreatePlannerSourceTx(ctx context.Context, tx *gorm.DB, item *models.PlannerSource) error {
	item.ID = s.nextID()
	cp := *item
	s.sources[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeletePlannerSourceTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.sources[id]; !ok {
		return 0, nil
	}
	for rid, run := range s.runs {
		if run.PlannerSourceID == id {
			delete(s.runs, rid)
		}
	}
	for rid, rep := range s.reports {
		if rep.PlannerSourceID == id {
			delete(s.reports, rid)
		}
	}
	delete(s.sources, id)
	return 1, nil
}

func (s *stubRepo) MaxSourceDisplayOrder(ctx context.Context, plannerID uint64) (int, error) {
	max := 0
	for _, src := range s.sources {
		if src.PlannerID == plannerID && src.DisplayOrder > max {
			max = src.DisplayOrder
		}
	}
	return max, nil
}

func (s *stubRepo) SourceDisplayOrderTaken(ctx context.Context, plannerID uint64, order int) (bool, error) {
	for _, src := range s.sources {
		if src.PlannerID == plannerID && src.DisplayOrder == order {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) CreatePlannerRunTx(ctx context.Context, tx *gorm.DB, item *models.PlannerRun) error {
	item.ID = s.nextID()
	cp := *item
	s.runs[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeletePlannerRunTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.runs[id]; !ok {
		return 0, nil
	}
	delete(s.runs, id)
	return 1, nil
}

func (s *stubRepo) MaxRunDisplayOrder(ctx context.Context, sourceID uint64) (int, error) {
	max := 0
	for _, run := range s.runs {
		if run.PlannerSourceID == sourceID && run.DisplayOrder > max {
			max = run.DisplayOrder
		}
	}
	return max, nil
}

func (s *stubRepo) RunDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error) {
	for _, run := range s.runs {
		if run.PlannerSourceID == sourceID && run.DisplayOrder == order {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) CreatePlannerReportTx(ctx context.Context, tx *gorm.DB, item *models.PlannerReport) error {
	item.ID = s.nextID()
	cp := *item
	s.reports[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeletePlannerReportTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.reports[id]; !ok {
		return 0, nil
	}
	delete(s.reports, id)
	return 1, nil
}

func (s *stubRepo) MaxReportDisplayOrder(ctx context.Context, sourceID uint64) (int, error) {
	max := 0
	for _, rep := range s.reports {
		if rep.PlannerSourceID == sourceID && rep.DisplayOrder > max {
			max = rep.DisplayOrder
		}
	}
	return max, nil
}

func (s *stubRepo) ReportDisplayOrderTaken(ctx context.Context, sourceID uint64, order int) (bool, error) {
	for _, rep := range s.reports {
		if rep.PlannerSourceID == sourceID && rep.DisplayOrder == order {
			return true, nil
		}
	}
	return false, nil
}

// --- master data -------------------------------------------------------------

func (s *stubRepo) ListSourceNames(ctx context.Context) ([]models.SourceName, error) {
	var out []models.SourceName
	for _, v := range s.sourceNames {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) GetSourceNameByID(ctx context.Context, id uint64) (*models.SourceName, error) {
	if v, ok := s.sourceNames[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindSourceNameByName(ctx context.Context, name string) (*models.SourceName, error) {
	for _, v := range s.sourceNames {
		if strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateSourceName(ctx context.Context, item *models.SourceName) error {
	item.ID = s.nextID()
	cp := *item
	s.sourceNames[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteSourceName(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.sourceNames[id]; !ok {
		return 0, nil
	}
	delete(s.sourceNames, id)
	return 1, nil
}

func (s *stubRepo) ListRunNames(ctx context.Context) ([]models.RunName, error) {
	var out []models.RunName
	for _, v := range s.runNames {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) GetRunNameByID(ctx context.Context, id uint64) (*models.RunName, error) {
	if v, ok := s.runNames[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindRunNameByName(ctx context.Context, name string) (*models.RunName, error) {
	for _, v := range s.runNames {
		if strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateRunName(ctx context.Context, item *models.RunName) error {
	item.ID = s.nextID()
	cp := *item
	s.runNames[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteRunName(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.runNames[id]; !ok {
		return 0, nil
	}
	delete(s.runNames, id)
	return 1, nil
}

func (s *stubRepo) ListReportTypes(ctx context.Context) ([]models.ReportType, error) {
	var out []models.ReportType
	for _, v := range s.reportTypes {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) GetReportTypeByID(ctx context.Context, id uint64) (*models.ReportType, error) {
	if v, ok := s.reportTypes[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindReportTypeByName(ctx context.Context, name string) (*models.ReportType, error) {
	for _, v := range s.reportTypes {
		if strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateReportType(ctx context.Context, item *models.ReportType) error {
	item.ID = s.nextID()
	cp := *item
	s.reportTypes[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteReportType(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.reportTypes[id]; !ok {
		return 0, nil
	}
	delete(s.reportTypes, id)
	for _, rn := range s.reportNames {
		if rn.ReportTypeID != nil && *rn.ReportTypeID == id {
			rn.ReportTypeID = nil
		}
	}
	return 1, nil
}

func (s *stubRepo) ListReportNames(ctx context.Context) ([]models.ReportName, error) {
	var out []models.ReportName
	for _, v := range s.reportNames {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) ListReportNamesByType(ctx context.Context, typeID uint64) ([]models.ReportName, error) {
	var out []models.ReportName
	for _, v := range s.reportNames {
		if v.ReportTypeID != nil && *v.ReportTypeID == typeID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) GetReportNameByID(ctx context.Context, id uint64) (*models.ReportName, error) {
	if v, ok := s.reportNames[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindReportNameByName(ctx context.Context, name string) (*models.ReportName, error) {
	for _, v := range s.reportNames {
		if strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateReportName(ctx context.Context, item *models.ReportName) error {
	item.ID = s.nextID()
	cp := *item
	s.reportNames[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteReportName(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.reportNames[id]; !ok {
		return 0, nil
	}
	delete(s.reportNames, id)
	return 1, nil
}

func (s *stubRepo) ListFunds(ctx context.Context) ([]models.Fund, error) {
	var out []models.Fund
	for _, v := range s.funds {
		cp := *v
		for _, a := range s.aliases {
			if a.FundID == cp.ID {
				cp.Aliases = append(cp.Aliases, *a)
			}
		}
		sort.Slice(cp.Aliases, func(i, j int) bool { return cp.Aliases[i].Name < cp.Aliases[j].Name })
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubRepo) GetFundByID(ctx context.Context, id uint64) (*models.Fund, error) {
	if v, ok := s.funds[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindFundByName(ctx context.Context, name string) (*models.Fund, error) {
	for _, v := range s.funds {
		if strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateFund(ctx context.Context, item *models.Fund) error {
	item.ID = s.nextID()
	cp := *item
	cp.Aliases = nil
	s.funds[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteFundTx(ctx context.Context, tx *gorm.DB, id uint64) (int64, error) {
	if _, ok := s.funds[id]; !ok {
		return 0, nil
	}
	for aid, a := range s.aliases {
		if a.FundID == id {
			delete(s.aliases, aid)
		}
	}
	delete(s.funds, id)
	return 1, nil
}

func (s *stubRepo) GetFundAliasByID(ctx context.Context, id uint64) (*models.FundAlias, error) {
	if v, ok := s.aliases[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) FindFundAliasByName(ctx context.Context, fundID uint64, name string) (*models.FundAlias, error) {
	for _, v := range s.aliases {
		if v.FundID == fundID && strings.EqualFold(v.Name, name) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreateFundAlias(ctx context.Context, item *models.FundAlias) error {
	item.ID = s.nextID()
	cp := *item
	s.aliases[item.ID] = &cp
	return nil
}

func (s *stubRepo) DeleteFundAlias(ctx context.Context, id uint64) (int64, error) {
	if _, ok := s.aliases[id]; !ok {
		return 0, nil
	}
	delete(s.aliases, id)
	return 1, nil
}

// --- activity / stats --------------------------------------------------------

func (s *stubRepo) InsertActivityLog(ctx context.Context, item *models.ActivityLog) error {
	item.ID = s.nextID()
	item.CreatedAt = time.Now().UTC()
	s.activity = append(s.activity, *item)
	return nil
}

func (s *stubRepo) ListActivityLogs(ctx context.Context, params repository.ListActivityParams) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	for i := len(s.activity) - 1; i >= 0; i-- {
		if params.EntityType != "" && s.activity[i].EntityType != params.EntityType {
			continue
		}
		out = append(out, s.activity[i])
	}
	return slicePage(out, params.Limit, params.Offset), nil
}

func (s *stubRepo) DeleteActivityLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := s.activity[:0]
	var removed int64
	for _, entry := range s.activity {
		if entry.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.activity = kept
	return removed, nil
}

func (s *stubRepo) RecordCounts(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{
		"connections":     int64(len(s.connections)),
		"planners":        int64(len(s.planners)),
		"planner_funds":   int64(len(s.fundLinks)),
		"planner_sources": int64(len(s.sources)),
		"planner_runs":    int64(len(s.runs)),
		"planner_reports": int64(len(s.reports)),
	}, nil
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
