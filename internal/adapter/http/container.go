package http

import (
	"taskboard/internal/adapter/http/handler"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/adapter/validation"
	"taskboard/internal/core/port"
	"taskboard/internal/core/service"
)

// Repositories groups the storage-backed dependencies the container wires,
// whichever driver produced them.
type Repositories struct {
	Users port.UserRepository
	Tasks port.TaskRepository
}

type Container struct {
	UserRepo   port.UserRepository
	TaskRepo   port.TaskRepository
	TokenCache port.TokenCache

	AccountService port.AccountService
	TaskService    port.TaskService

	AccountHandler *handler.AccountHandler
	TaskHandler    *handler.TaskHandler
}

// NewContainer builds services and handlers on top of the given
// repositories. tokens may be nil when redis is disabled.
func NewContainer(repos Repositories, tokens port.TokenCache, metrics *telemetry.AppMetrics) *Container {
	validator := validation.New()

	accountSvc := service.NewAccountService(repos.Users, validator, tokens)
	taskSvc := service.NewTaskService(repos.Tasks, validator)

	return &Container{
		UserRepo:   repos.Users,
		TaskRepo:   repos.Tasks,
		TokenCache: tokens,

		AccountService: accountSvc,
		TaskService:    taskSvc,

		AccountHandler: handler.NewAccountHandler(accountSvc, metrics),
		TaskHandler:    handler.NewTaskHandler(taskSvc, metrics),
	}
}
