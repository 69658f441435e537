package gesture

import "github.com/alexanderramin/gantt/internal/service"

// The store services satisfy the controller's ports directly.
var (
	_ ActivityMutator   = service.ActivityService(nil)
	_ DependencyMutator = service.DependencyService(nil)
	_ MilestoneMutator  = service.MilestoneService(nil)
	_ Loader            = service.BoardService(nil)
)
