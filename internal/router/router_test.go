package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenmed/records-api/internal/email"
	"github.com/havenmed/records-api/internal/handler"
	adminHandler "github.com/havenmed/records-api/internal/handler/admin"
	authHandler "github.com/havenmed/records-api/internal/handler/auth"
	casefolderHandler "github.com/havenmed/records-api/internal/handler/casefolder"
	clinicalHandler "github.com/havenmed/records-api/internal/handler/clinical"
	patientHandler "github.com/havenmed/records-api/internal/handler/patient"
	"github.com/havenmed/records-api/internal/middleware"
	"github.com/havenmed/records-api/internal/repository/memory"
	"github.com/havenmed/records-api/internal/router"
	authService "github.com/havenmed/records-api/internal/service/auth"
	casefolderService "github.com/havenmed/records-api/internal/service/casefolder"
	clinicalService "github.com/havenmed/records-api/internal/service/clinical"
	patientService "github.com/havenmed/records-api/internal/service/patient"
	userService "github.com/havenmed/records-api/internal/service/user"
	"github.com/havenmed/records-api/pkg/auth"
	"github.com/havenmed/records-api/pkg/metrics"
	"github.com/havenmed/records-api/pkg/security"
	"github.com/havenmed/records-api/pkg/validator"
)

const testAdminKey = "test-admin-key"

type apiResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	List    []interface{}          `json:"-"`
}

type testAPI struct {
	t      *testing.T
	engine http.Handler
	store  *memory.Store
	authMW *middleware.AuthMiddleware
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	require.NoError(t, validator.RegisterCustom())

	store := memory.NewStore()
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "records-api-test",
	})
	hasher := security.NewBcryptHasher(4)
	emailSvc := email.NewNoopService()

	authSvc := authService.NewService(store.Users(), memory.NewTokenBlacklist(), jwtSvc, hasher, emailSvc)
	userSvc := userService.NewService(store.Users(), emailSvc)
	patientSvc := patientService.NewService(store.Patients())
	folderSvc := casefolderService.NewService(store.CaseFolders(), store.Patients())
	clinicalSvc := clinicalService.NewService(store.CaseFolders(), store.Histories(),
		store.Diagnoses(), store.Vitals(), store.Notes())

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics("records_api_test", registry)
	authMW := middleware.NewAuthMiddleware(jwtSvc, store.Users(), m)

	r := router.NewRouter(
		authMW,
		authHandler.NewHandler(authSvc, m),
		handler.NewHealthHandler(nil, registry),
		adminHandler.NewHandler(userSvc, authMW),
		patientHandler.NewHandler(patientSvc, m),
		casefolderHandler.NewHandler(folderSvc, m),
		clinicalHandler.NewHandler(clinicalSvc, m),
		m,
		router.Config{
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
			CORS:           middleware.DefaultCORSConfig(),
			AdminKey:       testAdminKey,
		},
	)
	r.Setup()

	return &testAPI{t: t, engine: r.Engine(), store: store, authMW: authMW}
}

func (a *testAPI) request(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, *apiResponse) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	resp := &apiResponse{}
	var raw struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err == nil {
		resp.Status = raw.Status
		resp.Message = raw.Message
		if len(raw.Data) > 0 {
			if raw.Data[0] == '[' {
				_ = json.Unmarshal(raw.Data, &resp.List)
			} else if raw.Data[0] == '{' {
				_ = json.Unmarshal(raw.Data, &resp.Data)
			}
		}
	}
	return w, resp
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func adminHeaders() map[string]string {
	return map[string]string{middleware.HeaderXAdminKey: testAdminKey}
}

// registerAndLogin creates an account, authorizes it through the admin
// surface and returns the access token plus the account ID.
func (a *testAPI) registerAndLogin(username, role string) (token, userID string) {
	a.t.Helper()

	w, resp := a.request(http.MethodPost, "/auth/register", map[string]interface{}{
		"username":         username,
		"email":            username + "@example.com",
		"first_name":       "Test",
		"last_name":        "Staff",
		"role":             role,
		"phone":            "08012345678",
		"password":         "password123",
		"password_confirm": "password123",
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	userID = resp.Data["id"].(string)

	w, _ = a.request(http.MethodPost, fmt.Sprintf("/admin/users/%s/authorize", userID), nil, adminHeaders())
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w, resp = a.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": username,
		"password": "password123",
	}, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	token = resp.Data["access_token"].(string)
	return token, userID
}

func TestAuthorizationGate(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.request(http.MethodPost, "/auth/register", map[string]interface{}{
		"username":         "nurse1",
		"email":            "nurse1@example.com",
		"first_name":       "Ngozi",
		"last_name":        "Eze",
		"role":             "NURSE",
		"phone":            "08012345678",
		"password":         "password123",
		"password_confirm": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, resp.Data["authorized"])
	userID := resp.Data["id"].(string)

	// correct credentials, but not yet authorized
	w, resp = api.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "nurse1",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, resp.Message, "not yet authorized")

	// authorize endpoint rejects a missing admin key
	w, _ = api.request(http.MethodPost, "/admin/users/"+userID+"/authorize", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.request(http.MethodPost, "/admin/users/"+userID+"/authorize", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = api.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "nurse1",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.Data["access_token"])
	assert.NotEmpty(t, resp.Data["refresh_token"])

	// refresh token also lands in a cookie
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "refreshToken" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "refresh cookie not set")
}

func TestLoginResponsesDoNotEnumerateAccounts(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin("nurse1", "NURSE")

	_, unknownResp := api.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "ghostuser",
		"password": "password123",
	}, nil)
	_, wrongPassResp := api.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "nurse1",
		"password": "wrongpassword",
	}, nil)

	assert.Equal(t, unknownResp.Message, wrongPassResp.Message)
}

func TestRecordFlow(t *testing.T) {
	api := newTestAPI(t)

	himToken, himID := api.registerAndLogin("records1", "HIM")
	nurseToken, nurseID := api.registerAndLogin("nurse1", "NURSE")
	doctorToken, _ := api.registerAndLogin("doctor1", "DOCTOR")
	pharmToken, _ := api.registerAndLogin("pharm1", "PHARMACY")

	// only HIM may create patients
	patientBody := map[string]interface{}{
		"first_name":      "Ada",
		"last_name":       "Obi",
		"dob":             "2001-04-12",
		"gender":          "F",
		"matric_no":       "HAV/20/1234",
		"jamb_no":         "20345678AB",
		"address":         "12 College Road",
		"phone":           "08012345678",
		"email":           "ada.obi@example.com",
		"xray_no":         "XR-0042",
		"religion":        "CHRISTIAN",
		"state_of_origin": "Enugu",
		"tribe":           "Igbo",
	}

	w, _ := api.request(http.MethodPost, "/patients", patientBody, bearer(nurseToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := api.request(http.MethodPost, "/patients", patientBody, bearer(himToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	patientID := resp.Data["id"].(string)
	assert.Equal(t, himID, resp.Data["created_by"], "creator must be the authenticated caller")

	// HIM opens a case folder
	w, resp = api.request(http.MethodPost, "/casefolders", map[string]interface{}{
		"patient_id":    patientID,
		"folder_number": "HAV/2026/0001",
	}, bearer(himToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	folderID := resp.Data["id"].(string)

	// doctors can read folder detail, nurses cannot
	w, _ = api.request(http.MethodGet, "/casefolders/"+folderID, nil, bearer(doctorToken))
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = api.request(http.MethodGet, "/casefolders/"+folderID, nil, bearer(nurseToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// listing folders stays with HIM even though doctors read detail
	w, _ = api.request(http.MethodGet, "/casefolders", nil, bearer(doctorToken))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = api.request(http.MethodGet, "/patients/"+patientID+"/casefolders", nil, bearer(doctorToken))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, resp = api.request(http.MethodGet, "/patients/"+patientID+"/casefolders", nil, bearer(himToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, resp.List, 1)

	// nurse records vitals; the recorder is stamped server-side
	w, resp = api.request(http.MethodPost, "/casefolders/"+folderID+"/vitals", map[string]interface{}{
		"blood_pressure": "120/80",
		"pulse":          "72",
		"weight":         "64kg",
		"height":         "1.68m",
		"urine_albumin":  "negative",
		"urine_sugar":    "negative",
	}, bearer(nurseToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, nurseID, resp.Data["recorded_by"])

	// malformed blood pressure is rejected by validation
	w, _ = api.request(http.MethodPost, "/casefolders/"+folderID+"/vitals", map[string]interface{}{
		"blood_pressure": "high",
		"pulse":          "72",
		"weight":         "64kg",
		"height":         "1.68m",
		"urine_albumin":  "negative",
		"urine_sugar":    "negative",
	}, bearer(nurseToken))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// doctor writes a note; the role tag reflects the real role
	w, resp = api.request(http.MethodPost, "/casefolders/"+folderID+"/notes", map[string]interface{}{
		"surname":     "Obi",
		"other_names": "Ada",
		"date":        time.Now().Format(time.RFC3339),
		"notes":       "patient stable, continue observation",
	}, bearer(doctorToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "DOCTOR", resp.Data["author_role"])

	// pharmacy has no clinical record access
	w, _ = api.request(http.MethodGet, "/casefolders/"+folderID+"/notes", nil, bearer(pharmToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// HIM cannot touch clinical records either
	w, _ = api.request(http.MethodPost, "/casefolders/"+folderID+"/medical-history", map[string]interface{}{
		"hypertension": true,
	}, bearer(himToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// medical history is 1:1 per folder
	w, _ = api.request(http.MethodPost, "/casefolders/"+folderID+"/medical-history", map[string]interface{}{
		"hypertension": true,
		"diabetes":     true,
	}, bearer(nurseToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = api.request(http.MethodPost, "/casefolders/"+folderID+"/medical-history", map[string]interface{}{
		"measles": true,
	}, bearer(doctorToken))
	assert.Equal(t, http.StatusConflict, w.Code)

	// children under a missing folder are 404
	w, _ = api.request(http.MethodGet, "/casefolders/00000000-0000-0000-0000-000000000001/vitals", nil, bearer(nurseToken))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting the patient cascades to the folder and its records
	w, _ = api.request(http.MethodDelete, "/patients/"+patientID, nil, bearer(himToken))
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.request(http.MethodGet, "/casefolders/"+folderID, nil, bearer(doctorToken))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.request(http.MethodGet, "/patients", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.request(http.MethodGet, "/patients", nil, bearer("garbage-token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeauthorizedAccountLosesAccessAfterInvalidation(t *testing.T) {
	api := newTestAPI(t)
	token, id := api.registerAndLogin("nurse7", "NURSE")

	vitalsPath := "/casefolders/" + uuid.New().String() + "/vitals"
	w, _ := api.request(http.MethodGet, vitalsPath, nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code, "authenticated, folder absent")

	userID, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NoError(t, api.store.Users().SetAuthorized(context.Background(), userID, false))

	// the short-lived account cache still holds the old state
	w, _ = api.request(http.MethodGet, vitalsPath, nil, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.authMW.InvalidateUser(userID)
	w, _ = api.request(http.MethodGet, vitalsPath, nil, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.request(http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.request(http.MethodGet, "/health/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// no database wired here, so readiness must report unavailable rather than panic
	w, _ = api.request(http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
