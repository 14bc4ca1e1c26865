package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soujanya-006/intervuai/internal/pkg/errcode"
)

func TestInterviewFlow(t *testing.T) {
	router, generator, cleanup := setupRouter(t)
	defer cleanup()
	token := registerAndLogin(t, router, "candidate@example.com")

	resp := uploadResume(t, router, token, "resume.txt", "Experienced backend engineer. Built a payments service in Go.")
	require.Equal(t, http.StatusOK, resp.Code)

	openResp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/interview/sessions", token, map[string]string{
		"file_name": "resume.txt",
	})
	require.Equal(t, http.StatusOK, openResp.Code)
	require.Equal(t, 0, parsed.Code)
	sessionID, _ := parsed.Data["session_id"].(string)
	require.NotEmpty(t, sessionID)

	sendResp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/interview/sessions/"+sessionID+"/messages", token, map[string]string{
		"message": "Tell me about the payments service.",
	})
	require.Equal(t, http.StatusOK, sendResp.Code)
	require.Equal(t, 0, parsed.Code)
	require.Equal(t, "Could you walk me through that project?", parsed.Data["reply"])
	require.Contains(t, generator.LastPrompt(), "payments service")

	histResp, parsed := doJSON(t, router, http.MethodGet, "/api/v1/interview/sessions/"+sessionID+"/messages", token, nil)
	require.Equal(t, http.StatusOK, histResp.Code)
	messages, _ := parsed.Data["messages"].([]interface{})
	require.Len(t, messages, 2)

	closeResp, parsed := doJSON(t, router, http.MethodDelete, "/api/v1/interview/sessions/"+sessionID, token, nil)
	require.Equal(t, http.StatusOK, closeResp.Code)
	require.Equal(t, 0, parsed.Code)

	_, parsed = doJSON(t, router, http.MethodGet, "/api/v1/interview/sessions/"+sessionID+"/messages", token, nil)
	require.Equal(t, errcode.ErrNotFound, parsed.Code)
}

func TestInterviewOpenUnknownResume(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()
	token := registerAndLogin(t, router, "missing@example.com")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/interview/sessions", token, map[string]string{
		"file_name": "nope.txt",
	})
	require.Equal(t, errcode.ErrNotFound, parsed.Code)
}

func TestInterviewSessionIsolation(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()
	owner := registerAndLogin(t, router, "one@example.com")
	intruder := registerAndLogin(t, router, "two@example.com")

	resp := uploadResume(t, router, owner, "resume.txt", "Backend engineer.")
	require.Equal(t, http.StatusOK, resp.Code)

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/interview/sessions", owner, map[string]string{
		"file_name": "resume.txt",
	})
	sessionID, _ := parsed.Data["session_id"].(string)
	require.NotEmpty(t, sessionID)

	_, parsed = doJSON(t, router, http.MethodPost, "/api/v1/interview/sessions/"+sessionID+"/messages", intruder, map[string]string{
		"message": "hello",
	})
	require.Equal(t, errcode.ErrForbidden, parsed.Code)
}
