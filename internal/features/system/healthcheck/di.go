package system_healthcheck

import (
	"time"

	workspaces_services "workspaces-backend/internal/features/workspaces/services"
	"workspaces-backend/internal/util/logger"
)

var healthcheckService = NewHealthcheckService(
	workspaces_services.GetWorkspaceRepository(),
	time.Now().UTC(),
	logger.GetLogger(),
)

var healthcheckController = &HealthcheckController{healthcheckService}

func GetHealthcheckService() *HealthcheckService {
	return healthcheckService
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
