package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminEndpointsRejectBadToken(t *testing.T) {
	r, _ := newTestServer(t)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/access/roles", nil), "not-a-session")
	res := doRequest(r, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "invalid or expired session")
}

func TestAdminEndpointsRejectExpiredToken(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	token := st.openSession(admin)
	st.sessions[token].IsValid = false

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/access/roles", nil), token)
	res := doRequest(r, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminEndpointsRejectNonAdmin(t *testing.T) {
	r, st := newTestServer(t)
	alice := st.addUser(t, "alice@example.com", "secret", model.RoleUser)
	token := st.openSession(alice)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/access/roles", nil), token)
	res := doRequest(r, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestAdminEndpointsRejectAnonymous(t *testing.T) {
	r, _ := newTestServer(t)

	res := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/access/roles", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminListsRoles(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	st.addRole("manager")
	token := st.openSession(admin)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/access/roles", nil), token)
	res := doRequest(r, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "manager")
}

func TestAdminCreatesRoleAndElement(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	token := st.openSession(admin)

	roleReq := withSession(httptest.NewRequest(http.MethodPost, "/api/access/roles", strings.NewReader(`{"name":"auditor"}`)), token)
	roleReq.Header.Set("Content-Type", "application/json")
	roleRes := doRequest(r, roleReq)
	require.Equal(t, http.StatusCreated, roleRes.Code)
	_, ok := st.roles["auditor"]
	assert.True(t, ok)

	elementReq := withSession(httptest.NewRequest(http.MethodPost, "/api/access/business-elements", strings.NewReader(`{"name":"invoice"}`)), token)
	elementReq.Header.Set("Content-Type", "application/json")
	elementRes := doRequest(r, elementReq)
	require.Equal(t, http.StatusCreated, elementRes.Code)
	require.Len(t, st.elements, 1)
	assert.Equal(t, "invoice", st.elements[0].Name)
}

func TestAdminCreatesRule(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	role := st.addRole("manager")
	element := st.addElement("order")
	token := st.openSession(admin)

	body := fmt.Sprintf(`{"role_id":%q,"element_id":%q,"can_read_own":true,"can_create":true}`, role.ID, element.ID)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/access/rules", strings.NewReader(body)), token)
	req.Header.Set("Content-Type", "application/json")
	res := doRequest(r, req)

	require.Equal(t, http.StatusCreated, res.Code)
	require.Len(t, st.rules, 1)
	assert.True(t, st.rules[0].CanReadOwn)
	assert.True(t, st.rules[0].CanCreate)
	assert.False(t, st.rules[0].CanReadAll)

	var payload struct {
		Data struct {
			RoleName    string `json:"role_name"`
			ElementName string `json:"element_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "manager", payload.Data.RoleName)
	assert.Equal(t, "order", payload.Data.ElementName)
}

func TestAdminRejectsDuplicateRule(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	role := st.addRole("manager")
	element := st.addElement("order")
	st.addRule(role, element, model.AccessRule{CanReadOwn: true})
	token := st.openSession(admin)

	body := fmt.Sprintf(`{"role_id":%q,"element_id":%q,"can_read_all":true}`, role.ID, element.ID)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/access/rules", strings.NewReader(body)), token)
	req.Header.Set("Content-Type", "application/json")
	res := doRequest(r, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Len(t, st.rules, 1)
}

func TestAdminRuleUnknownRole(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	element := st.addElement("order")
	token := st.openSession(admin)

	body := fmt.Sprintf(`{"role_id":"a2f6f1f6-0a6e-4a87-9a43-35f9c94f7b11","element_id":%q}`, element.ID)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/access/rules", strings.NewReader(body)), token)
	req.Header.Set("Content-Type", "application/json")
	res := doRequest(r, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Empty(t, st.rules)
}

func TestAdminGetsRuleByID(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	role := st.addRole("manager")
	element := st.addElement("order")
	rule := st.addRule(role, element, model.AccessRule{CanReadOwn: true})
	token := st.openSession(admin)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/access/rules/"+rule.ID.String(), nil), token)
	res := doRequest(r, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "manager")
	assert.Contains(t, res.Body.String(), "order")

	missing := withSession(httptest.NewRequest(http.MethodGet, "/api/access/roles/"+uuid.NewString(), nil), token)
	assert.Equal(t, http.StatusNotFound, doRequest(r, missing).Code)
}

func TestAdminDeletesRule(t *testing.T) {
	r, st := newTestServer(t)
	admin := st.addUser(t, "admin@example.com", "secret", model.RoleAdmin)
	role := st.addRole("manager")
	element := st.addElement("order")
	rule := st.addRule(role, element, model.AccessRule{CanReadOwn: true})
	token := st.openSession(admin)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/access/rules/"+rule.ID.String(), nil), token)
	res := doRequest(r, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, st.rules)
}
