package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/testutil"
)

type testServices struct {
	db         *sql.DB
	activities ActivityService
	deps       DependencyService
	milestones MilestoneService
	board      BoardService
	observer   *recordingObserver
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	actRepo := repository.NewSQLiteActivityRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	msRepo := repository.NewSQLiteMilestoneRepo(database)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}

	return &testServices{
		db:         database,
		activities: NewActivityService(actRepo, uow, obs),
		deps:       NewDependencyService(depRepo, actRepo, obs),
		milestones: NewMilestoneService(msRepo, actRepo, obs),
		board:      NewBoardService(uow),
		observer:   obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func strPtr(s string) *string { return &s }
