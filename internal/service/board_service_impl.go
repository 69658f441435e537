package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/repository"
)

type boardService struct {
	uow db.UnitOfWork
}

func NewBoardService(uow db.UnitOfWork) BoardService {
	return &boardService{uow: uow}
}

// Load fetches all three collections from one read snapshot, so a
// dependency never names an activity the same load did not return.
// Activities come back in sibling sort order with insertion order breaking
// ties.
func (s *boardService) Load(ctx context.Context) (*board.Snapshot, error) {
	snap := &board.Snapshot{}
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap.Activities, err = repository.NewSQLiteActivityRepo(tx).List(ctx)
		if err != nil {
			return fmt.Errorf("loading activities: %w", err)
		}
		snap.Dependencies, err = repository.NewSQLiteDependencyRepo(tx).List(ctx)
		if err != nil {
			return fmt.Errorf("loading dependencies: %w", err)
		}
		snap.Milestones, err = repository.NewSQLiteMilestoneRepo(tx).List(ctx)
		if err != nil {
			return fmt.Errorf("loading milestones: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
