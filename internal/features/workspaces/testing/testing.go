package workspaces_testing

import (
	"fmt"
	"net/http"
	"testing"

	users_middleware "workspaces-backend/internal/features/users/middleware"
	users_services "workspaces-backend/internal/features/users/services"
	users_testing "workspaces-backend/internal/features/users/testing"
	workspaces_dto "workspaces-backend/internal/features/workspaces/dto"
	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"
	test_utils "workspaces-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestImageContent is a minimal payload accepted by every image host.
var TestImageContent = []byte("\x89PNG\r\n\x1a\ntest-image")

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetTokenService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

// GetUniqueWorkspaceName keeps names distinct across tests sharing a store.
func GetUniqueWorkspaceName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

func CreateTestWorkspaceViaAPI(
	t *testing.T,
	router *gin.Engine,
	name string,
	owner *users_testing.TestUser,
) *workspaces_dto.WorkspaceResponseDTO {
	var response workspaces_dto.WorkspaceResponseDTO

	test_utils.MakeMultipartRequestAndUnmarshal(
		t,
		router,
		test_utils.MultipartOptions{
			Method:    http.MethodPost,
			URL:       "/api/v1/workspaces",
			AuthToken: owner.GetAuthHeader(),
			Fields: map[string]string{
				"name":        name,
				"description": "Test description",
				"theme":       "Test theme",
			},
			Files: []test_utils.MultipartFile{
				{FieldName: "image", FileName: "image.png", Content: TestImageContent},
			},
			ExpectedStatus: http.StatusCreated,
		},
		&response,
	)

	return &response
}

func AddMemberViaAPI(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	owner *users_testing.TestUser,
	member *users_testing.TestUser,
	role workspaces_enums.WorkspaceRole,
) *workspaces_dto.WorkspaceMemberResponseDTO {
	var response workspaces_dto.WorkspaceMemberResponseDTO

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/memberships/%s/members", workspaceID),
		owner.GetAuthHeader(),
		workspaces_dto.AddMemberRequestDTO{
			UserID:   member.User.ID,
			UserName: member.User.Name,
			Role:     role,
		},
		http.StatusOK,
		&response,
	)

	return &response
}

func GetWorkspaceViaAPI(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	requester *users_testing.TestUser,
) *workspaces_dto.WorkspaceResponseDTO {
	var response workspaces_dto.WorkspaceResponseDTO

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspaceID.String(),
		requester.GetAuthHeader(),
		http.StatusOK,
		&response,
	)

	return &response
}
