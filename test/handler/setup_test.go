package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/soujanya-006/intervuai/internal/config"
	"github.com/soujanya-006/intervuai/internal/filestore"
	"github.com/soujanya-006/intervuai/internal/handler"
	"github.com/soujanya-006/intervuai/internal/middleware"
	"github.com/soujanya-006/intervuai/internal/repo"
	"github.com/soujanya-006/intervuai/internal/service"
	"github.com/soujanya-006/intervuai/test/testutil"
)

type apiResponse struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func setupRouter(t *testing.T) (http.Handler, *testutil.FakeGenerator, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	fileRepo := repo.NewFileRepo(db)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	jwtSecret := []byte("test-secret")
	generator := testutil.NewFakeGenerator("Could you walk me through that project?")
	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	interviewService := service.NewInterviewService(fileRepo, store, testutil.NewFakeEmbedder(), generator, service.InterviewConfig{
		ChunkSize:    200,
		ChunkOverlap: 20,
		TopK:         1,
		MaxSessions:  8,
		SessionTTL:   time.Minute,
	})
	resumeService := service.NewResumeService(fileRepo, store, interviewService)

	deps := handler.RouterDeps{
		Meta:       handler.NewMetaHandler(),
		Auth:       handler.NewAuthHandler(authService),
		Resumes:    handler.NewResumeHandler(resumeService, store, 1024*1024),
		Interviews: handler.NewInterviewHandler(interviewService),
		JWTSecret:  jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, generator, cleanup
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var parsed apiResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &parsed)
	return resp, parsed
}

func registerAndLogin(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	resp, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"first_name":    "Test",
		"last_name":     "User",
		"date_of_birth": "1995-05-05",
		"email":         email,
		"password":      "secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := parsed.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func uploadResume(t *testing.T, router http.Handler, token, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
