package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"connplanner/internal/models"
)

func newPlannerService(repo *stubRepo) *PlannerService {
	return &PlannerService{Repo: repo}
}

func seedFund(t *testing.T, repo *stubRepo, name string) uint64 {
	t.Helper()
	fund := &models.Fund{Name: name}
	if err := repo.CreateFund(context.Background(), fund); err != nil {
		t.Fatalf("seed fund %s: %v", name, err)
	}
	return fund.ID
}

func seedSourceName(t *testing.T, repo *stubRepo, name string) uint64 {
	t.Helper()
	sn := &models.SourceName{Name: name}
	if err := repo.CreateSourceName(context.Background(), sn); err != nil {
		t.Fatalf("seed source name %s: %v", name, err)
	}
	return sn.ID
}

func TestPlannerCreate_NestedAggregate(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	fundID := seedFund(t, repo, "Global Fund")
	sourceNameID := seedSourceName(t, repo, "Bloomberg")
	runName := &models.RunName{Name: "Nightly"}
	if err := repo.CreateRunName(ctx, runName); err != nil {
		t.Fatalf("seed run name: %v", err)
	}

	created, err := svc.Create(ctx, PlannerInput{
		Name: "Q3 Load",
		Funds: []PlannerFundInput{
			{FundID: fundID},
		},
		Sources: []PlannerSourceInput{
			{
				SourceNameID: &sourceNameID,
				Runs: []PlannerRunInput{
					{RunNameID: &runName.ID},
					{RunNameID: &runName.ID},
				},
			},
			{},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.StatusDraft {
		t.Fatalf("expected default Draft status, got %q", created.Status)
	}
	if len(created.Funds) != 1 || created.Funds[0].FundID != fundID {
		t.Fatalf("expected one fund link, got %+v", created.Funds)
	}
	if len(created.Sources) != 2 {
		t.Fatalf("expected two sources, got %d", len(created.Sources))
	}
	if created.Sources[0].DisplayOrder != 1 || created.Sources[1].DisplayOrder != 2 {
		t.Fatalf("expected contiguous source order, got %d and %d",
			created.Sources[0].DisplayOrder, created.Sources[1].DisplayOrder)
	}
	runs := created.Sources[0].Runs
	if len(runs) != 2 || runs[0].DisplayOrder != 1 || runs[1].DisplayOrder != 2 {
		t.Fatalf("expected two ordered runs, got %+v", runs)
	}
}

func TestPlannerCreate_UnknownStatus(t *testing.T) {
	svc := newPlannerService(newStubRepo())
	_, err := svc.Create(context.Background(), PlannerInput{Name: "x", Status: "Archived"})
	var inv *InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestPlannerCreate_DuplicateFundInRequest(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	fundID := seedFund(t, repo, "Global Fund")

	_, err := svc.Create(context.Background(), PlannerInput{
		Name: "dup",
		Funds: []PlannerFundInput{
			{FundID: fundID},
			{FundID: fundID},
		},
	})
	var dup *DuplicateAssociationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateAssociationError, got %v", err)
	}
	if len(repo.planners) != 0 {
		t.Fatalf("failed create must not leave a planner behind")
	}
}

func TestPlannerCreate_AliasMustBelongToFund(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	fundA := seedFund(t, repo, "Fund A")
	fundB := seedFund(t, repo, "Fund B")
	alias := &models.FundAlias{FundID: fundB, Name: "B-ALT"}
	if err := repo.CreateFundAlias(ctx, alias); err != nil {
		t.Fatalf("seed alias: %v", err)
	}

	_, err := svc.Create(ctx, PlannerInput{
		Name: "mismatch",
		Funds: []PlannerFundInput{
			{FundID: fundA, FundAliasID: &alias.ID},
		},
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for foreign alias, got %v", err)
	}
}

func TestPlannerFinishedAt_StampedOnce(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return clock }

	created, err := svc.Create(ctx, PlannerInput{Name: "job"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.FinishedAt != nil {
		t.Fatalf("draft planner must not carry a finished stamp")
	}

	finished, err := svc.Update(ctx, created.ID, PlannerInput{Name: "job", Status: models.StatusFinished})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if finished.FinishedAt == nil || !finished.FinishedAt.Equal(clock) {
		t.Fatalf("expected finished stamp %v, got %v", clock, finished.FinishedAt)
	}

	// Leaving Finished and coming back must not move the stamp.
	clock = clock.Add(48 * time.Hour)
	if _, err := svc.Update(ctx, created.ID, PlannerInput{Name: "job", Status: models.StatusFailed}); err != nil {
		t.Fatalf("fail: %v", err)
	}
	again, err := svc.Update(ctx, created.ID, PlannerInput{Name: "job", Status: models.StatusFinished})
	if err != nil {
		t.Fatalf("re-finish: %v", err)
	}
	if !again.FinishedAt.Equal(clock.Add(-48 * time.Hour)) {
		t.Fatalf("finished stamp moved on re-finish: %v", again.FinishedAt)
	}
}

func TestPlannerCreate_FinishedStampsImmediately(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	clock := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time { return clock }

	created, err := svc.Create(context.Background(), PlannerInput{Name: "done", Status: models.StatusFinished})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.FinishedAt == nil || !created.FinishedAt.Equal(clock) {
		t.Fatalf("planner created Finished must stamp finished-at, got %v", created.FinishedAt)
	}
}

func TestPlannerUpdate_VersionConflict(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, PlannerInput{Name: "job"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, PlannerInput{Name: "job v2"}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	stale := created.Version
	_, err = svc.Update(ctx, created.ID, PlannerInput{Name: "job stale", Version: &stale})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPlannerDelete_CascadesChildren(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	fundID := seedFund(t, repo, "Global Fund")
	created, err := svc.Create(ctx, PlannerInput{
		Name:  "to-delete",
		Funds: []PlannerFundInput{{FundID: fundID}},
		Sources: []PlannerSourceInput{
			{
				Runs:    []PlannerRunInput{{}},
				Reports: []PlannerReportInput{{}},
			},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.planners) != 0 || len(repo.sources) != 0 || len(repo.runs) != 0 ||
		len(repo.reports) != 0 || len(repo.fundLinks) != 0 {
		t.Fatalf("cascade left orphans: planners=%d sources=%d runs=%d reports=%d links=%d",
			len(repo.planners), len(repo.sources), len(repo.runs), len(repo.reports), len(repo.fundLinks))
	}
	if len(repo.funds) != 1 {
		t.Fatalf("master fund record must survive the cascade")
	}
}

func TestPlannerSearch_Conjunctive(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	seed := []struct {
		name   string
		status string
	}{
		{"alpha sync", models.StatusDraft},
		{"alpha sync", models.StatusFinished},
		{"beta sync", models.StatusDraft},
	}
	for _, s := range seed {
		if _, err := svc.Create(ctx, PlannerInput{Name: s.name, Status: s.status}); err != nil {
			t.Fatalf("create %s: %v", s.name, err)
		}
	}

	page, err := svc.Search(ctx, "ALPHA", models.StatusDraft, 0, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected 1 match, got %d", page.TotalElements)
	}
	if page.Content[0].Name != "alpha sync" || page.Content[0].Status != models.StatusDraft {
		t.Fatalf("wrong match: %+v", page.Content[0])
	}
}

func TestPlannerAddFund_Duplicate(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	fundID := seedFund(t, repo, "Global Fund")
	created, err := svc.Create(ctx, PlannerInput{Name: "job"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddFund(ctx, created.ID, PlannerFundInput{FundID: fundID}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err = svc.AddFund(ctx, created.ID, PlannerFundInput{FundID: fundID})
	var dup *DuplicateAssociationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateAssociationError, got %v", err)
	}
}

func TestPlannerAddSource_DisplayOrder(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, PlannerInput{Name: "job"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Omitted order appends after the current maximum.
	after, err := svc.AddSource(ctx, created.ID, PlannerSourceInput{DisplayOrder: 5})
	if err != nil {
		t.Fatalf("add explicit: %v", err)
	}
	after, err = svc.AddSource(ctx, created.ID, PlannerSourceInput{})
	if err != nil {
		t.Fatalf("add implicit: %v", err)
	}
	if got := after.Sources[len(after.Sources)-1].DisplayOrder; got != 6 {
		t.Fatalf("expected appended order 6, got %d", got)
	}

	// An explicit collision is rejected.
	_, err = svc.AddSource(ctx, created.ID, PlannerSourceInput{DisplayOrder: 5})
	var inv *InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestPlannerRemoveSource_DropsRunsAndReports(t *testing.T) {
	repo := newStubRepo()
	svc := newPlannerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, PlannerInput{
		Name: "job",
		Sources: []PlannerSourceInput{
			{
				Runs:    []PlannerRunInput{{}, {}},
				Reports: []PlannerReportInput{{}},
			},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sourceID := created.Sources[0].ID

	if err := svc.RemoveSource(ctx, sourceID); err != nil {
		t.Fatalf("remove source: %v", err)
	}
	if len(repo.runs) != 0 || len(repo.reports) != 0 {
		t.Fatalf("source removal left runs=%d reports=%d", len(repo.runs), len(repo.reports))
	}
}

func TestPlannerFindByID_BlankConnectionSummary(t *testing.T) {
	repo := newStubRepo()
	connSvc := newConnectionService(repo)
	plannerSvc := newPlannerService(repo)
	ctx := context.Background()

	in := connInput("prod")
	in.ValueField = strp("secret")
	conn, err := connSvc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create connection: %v", err)
	}

	created, err := plannerSvc.Create(ctx, PlannerInput{Name: "job", ConnectionID: &conn.ID})
	if err != nil {
		t.Fatalf("create planner: %v", err)
	}
	if created.Connection == nil || created.Connection.ID != conn.ID {
		t.Fatalf("expected connection summary, got %+v", created.Connection)
	}
	if created.Planner.Connection != nil {
		t.Fatalf("raw connection must not ride along on the planner view")
	}
}
