package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkravets/go-task-api/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleToken(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleTopPriorityTasks(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	tasks  services.TaskService

	topPriorityDefault int
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	topPriorityDefault int,
) Handler {
	return &handlerImpl{
		logger:             logger,
		auth:               authService,
		tasks:              taskService,
		topPriorityDefault: topPriorityDefault,
	}
}
