package cmd

import (
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/redispub"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  redispub.NewRedisEventPublisher(redisClient, config.RedisEventsChannel),
	}
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	return commands.NewAllocateOrderCommandHandler(c.allocationUoWFactory())
}

func (c *CompositionRoot) CreateAllocateOrdersCommandHandler() commands.AllocateOrdersCommandHandler {
	return commands.NewAllocateOrdersCommandHandler(c.allocationUoWFactory())
}

func (c *CompositionRoot) CreateReleaseAllocationsCommandHandler() commands.ReleaseAllocationsCommandHandler {
	return commands.NewReleaseAllocationsCommandHandler(c.allocationUoWFactory())
}

func (c *CompositionRoot) CreateCreatePickingTaskCommandHandler() commands.CreatePickingTaskCommandHandler {
	return commands.NewCreatePickingTaskCommandHandler(c.pickingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRecordItemCompletionCommandHandler() commands.RecordItemCompletionCommandHandler {
	return commands.NewRecordItemCompletionCommandHandler(c.pickingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateStartTaskCommandHandler() commands.StartTaskCommandHandler {
	return commands.NewStartTaskCommandHandler(c.pickingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSkipItemCommandHandler() commands.SkipItemCommandHandler {
	return commands.NewSkipItemCommandHandler(c.pickingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRecordShortPickCommandHandler() commands.RecordShortPickCommandHandler {
	return commands.NewRecordShortPickCommandHandler(c.shortPickUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAssignTaskCommandHandler() commands.AssignTaskCommandHandler {
	return commands.NewAssignTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePauseTaskCommandHandler() commands.PauseTaskCommandHandler {
	return commands.NewPauseTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateResumeTaskCommandHandler() commands.ResumeTaskCommandHandler {
	return commands.NewResumeTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateBlockTaskCommandHandler() commands.BlockTaskCommandHandler {
	return commands.NewBlockTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateUnblockTaskCommandHandler() commands.UnblockTaskCommandHandler {
	return commands.NewUnblockTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelTaskCommandHandler() commands.CancelTaskCommandHandler {
	return commands.NewCancelTaskCommandHandler(c.taskUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreatePickBinCommandHandler() commands.CreatePickBinCommandHandler {
	return commands.NewCreatePickBinCommandHandler(c.binUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateVerifyBinItemCommandHandler() commands.VerifyBinItemCommandHandler {
	return commands.NewVerifyBinItemCommandHandler(c.binUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelPickBinCommandHandler() commands.CancelPickBinCommandHandler {
	return commands.NewCancelPickBinCommandHandler(c.binUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetBackorderedOrdersQueryHandler() queries.GetBackorderedOrdersQueryHandler {
	return queries.NewGetBackorderedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveTasksQueryHandler() queries.GetActiveTasksQueryHandler {
	return queries.NewGetActiveTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) allocationUoWFactory() commands.AllocationUoWFactory {
	return FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) taskUoWFactory() commands.TaskUoWFactory {
	return FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pickingUoWFactory() commands.PickingUoWFactory {
	return FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shortPickUoWFactory() commands.ShortPickUoWFactory {
	return FuncShortPickUoWFactory(func() commands.ShortPickUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) binUoWFactory() commands.BinUoWFactory {
	return FuncBinUoWFactory(func() commands.BinUoW {
		return c.uowFactory.Create()
	})
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncPickingUoWFactory func() commands.PickingUoW

func (f FuncPickingUoWFactory) Create() commands.PickingUoW {
	return f()
}

type FuncShortPickUoWFactory func() commands.ShortPickUoW

func (f FuncShortPickUoWFactory) Create() commands.ShortPickUoW {
	return f()
}

type FuncBinUoWFactory func() commands.BinUoW

func (f FuncBinUoWFactory) Create() commands.BinUoW {
	return f()
}
