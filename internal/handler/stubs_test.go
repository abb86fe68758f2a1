package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// store is the in-memory database shared by the stub repositories, so the
// handlers run against real services and real middleware without postgres.
type store struct {
	users    []*model.User
	sessions map[string]*model.Session
	roles    map[string]*model.Role
	elements []*model.BusinessElement
	rules    []*model.AccessRule
}

func newStore() *store {
	return &store{
		sessions: map[string]*model.Session{},
		roles:    map[string]*model.Role{},
	}
}

func (st *store) elementByID(id uuid.UUID) *model.BusinessElement {
	for _, element := range st.elements {
		if element.ID == id {
			return element
		}
	}
	return nil
}

func (st *store) roleByID(id uuid.UUID) *model.Role {
	for _, role := range st.roles {
		if role.ID == id {
			return role
		}
	}
	return nil
}

// --- repositories over the store ---

type usersRepo struct{ st *store }

func (r *usersRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.st.users = append(r.st.users, user)
	return nil
}

func (r *usersRepo) GetActiveByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, user := range r.st.users {
		if user.ID == id && user.IsActive {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *usersRepo) GetActiveByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.st.users {
		if user.Email == email && user.IsActive {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *usersRepo) ListActive(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var active []model.User
	for _, user := range r.st.users {
		if user.IsActive {
			active = append(active, *user)
		}
	}
	total := int64(len(active))
	if offset >= len(active) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

func (r *usersRepo) Update(_ context.Context, user *model.User) error { return nil }

func (r *usersRepo) SoftDelete(_ context.Context, user *model.User) error {
	now := time.Now()
	user.IsActive = false
	user.DeletedAt = &now
	return nil
}

type sessionsRepo struct{ st *store }

func (r *sessionsRepo) Create(_ context.Context, session *model.Session) error {
	if _, exists := r.st.sessions[session.Token]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.st.sessions[session.Token] = session
	return nil
}

func (r *sessionsRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	session, ok := r.st.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *session
	for _, user := range r.st.users {
		if user.ID == copied.UserID {
			copied.User = *user
			break
		}
	}
	return &copied, nil
}

func (r *sessionsRepo) Invalidate(_ context.Context, token string) error {
	session, ok := r.st.sessions[token]
	if !ok || !session.IsValid {
		return gorm.ErrRecordNotFound
	}
	session.IsValid = false
	return nil
}

type rolesRepo struct{ st *store }

func (r *rolesRepo) Create(_ context.Context, role *model.Role) error {
	if _, exists := r.st.roles[role.Name]; exists {
		return gorm.ErrDuplicatedKey
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.st.roles[role.Name] = role
	return nil
}

func (r *rolesRepo) Update(_ context.Context, role *model.Role) error { return nil }

func (r *rolesRepo) Delete(_ context.Context, id uuid.UUID) error {
	for name, role := range r.st.roles {
		if role.ID == id {
			delete(r.st.roles, name)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *rolesRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	if role := r.st.roleByID(id); role != nil {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *rolesRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	if role, ok := r.st.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *rolesRepo) GetOrCreate(_ context.Context, name string) (*model.Role, error) {
	if role, ok := r.st.roles[name]; ok {
		return role, nil
	}
	role := &model.Role{ID: uuid.New(), Name: name}
	r.st.roles[name] = role
	return role, nil
}

func (r *rolesRepo) ListAll(_ context.Context) ([]model.Role, error) {
	var roles []model.Role
	for _, role := range r.st.roles {
		roles = append(roles, *role)
	}
	return roles, nil
}

type elementsRepo struct{ st *store }

func (r *elementsRepo) Create(_ context.Context, element *model.BusinessElement) error {
	if element.ID == uuid.Nil {
		element.ID = uuid.New()
	}
	r.st.elements = append(r.st.elements, element)
	return nil
}

func (r *elementsRepo) Update(_ context.Context, element *model.BusinessElement) error { return nil }

func (r *elementsRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, element := range r.st.elements {
		if element.ID == id {
			r.st.elements = append(r.st.elements[:i], r.st.elements[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *elementsRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BusinessElement, error) {
	if element := r.st.elementByID(id); element != nil {
		return element, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *elementsRepo) FindByName(_ context.Context, name string) (*model.BusinessElement, error) {
	for _, element := range r.st.elements {
		if element.Name == name {
			return element, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *elementsRepo) ListAll(_ context.Context) ([]model.BusinessElement, error) {
	var elements []model.BusinessElement
	for _, element := range r.st.elements {
		elements = append(elements, *element)
	}
	return elements, nil
}

type rulesRepo struct{ st *store }

func (r *rulesRepo) GetRule(_ context.Context, roleID uuid.UUID, resourceName string) (*model.AccessRule, error) {
	for _, rule := range r.st.rules {
		element := r.st.elementByID(rule.ElementID)
		if rule.RoleID == roleID && element != nil && element.Name == resourceName {
			return rule, nil
		}
	}
	return nil, nil
}

func (r *rulesRepo) Create(_ context.Context, rule *model.AccessRule) error {
	for _, existing := range r.st.rules {
		if existing.RoleID == rule.RoleID && existing.ElementID == rule.ElementID {
			return gorm.ErrDuplicatedKey
		}
	}
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	r.st.rules = append(r.st.rules, rule)
	return nil
}

func (r *rulesRepo) Update(_ context.Context, rule *model.AccessRule) error { return nil }

func (r *rulesRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rule := range r.st.rules {
		if rule.ID == id {
			r.st.rules = append(r.st.rules[:i], r.st.rules[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *rulesRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AccessRule, error) {
	for _, rule := range r.st.rules {
		if rule.ID == id {
			copied := *rule
			if role := r.st.roleByID(rule.RoleID); role != nil {
				copied.Role = *role
			}
			if element := r.st.elementByID(rule.ElementID); element != nil {
				copied.Element = *element
			}
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *rulesRepo) ListAll(_ context.Context) ([]model.AccessRule, error) {
	var rules []model.AccessRule
	for _, rule := range r.st.rules {
		loaded, _ := r.FindByID(context.Background(), rule.ID)
		rules = append(rules, *loaded)
	}
	return rules, nil
}

// interface conformance
var (
	_ repository.UserRepository    = (*usersRepo)(nil)
	_ repository.SessionRepository = (*sessionsRepo)(nil)
	_ repository.RoleRepository    = (*rolesRepo)(nil)
	_ repository.ElementRepository = (*elementsRepo)(nil)
	_ repository.RuleRepository    = (*rulesRepo)(nil)
)

// --- wiring ---

// newTestServer builds the full router over the in-memory store: real
// middleware, real services, stub persistence.
func newTestServer(t *testing.T) (*gin.Engine, *store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := newStore()
	users := &usersRepo{st: st}
	sessions := &sessionsRepo{st: st}
	roles := &rolesRepo{st: st}
	elements := &elementsRepo{st: st}
	rules := &rulesRepo{st: st}

	mw := middleware.NewAccessMiddleware(sessions, roles, rules)
	authService := service.NewAuthService(users, sessions, roles, time.Hour)
	userService := service.NewUserService(users)
	accessService := service.NewAccessAdminService(roles, elements, rules)

	r := gin.New()
	r.Use(mw.ResolveIdentity())
	handler.NewAuthHandler(authService, mw).RegisterRoutes(r.Group(""))
	handler.NewUserHandler(userService, authService, mw).RegisterRoutes(r.Group(""))
	handler.NewAccessHandler(accessService, mw).RegisterRoutes(r.Group(""))
	handler.NewMockHandler(mw).RegisterRoutes(r.Group(""))

	return r, st
}

// --- fixtures ---

func (st *store) addRole(name string) *model.Role {
	if role, ok := st.roles[name]; ok {
		return role
	}
	role := &model.Role{ID: uuid.New(), Name: name}
	st.roles[name] = role
	return role
}

func (st *store) addElement(name string) *model.BusinessElement {
	element := &model.BusinessElement{ID: uuid.New(), Name: name}
	st.elements = append(st.elements, element)
	return element
}

func (st *store) addRule(role *model.Role, element *model.BusinessElement, flags model.AccessRule) *model.AccessRule {
	rule := flags
	rule.ID = uuid.New()
	rule.RoleID = role.ID
	rule.ElementID = element.ID
	st.rules = append(st.rules, &rule)
	return &rule
}

func (st *store) addUser(t *testing.T, email, password, roleName string) *model.User {
	t.Helper()
	role := st.addRole(roleName)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		ID: uuid.New(), Email: email, PasswordHash: string(hash),
		FirstName: "Test", LastName: "User", IsActive: true,
		RoleID: role.ID, Role: *role,
	}
	st.users = append(st.users, user)
	return user
}

func (st *store) openSession(user *model.User) string {
	token := model.NewSessionToken()
	st.sessions[token] = &model.Session{
		ID: uuid.New(), UserID: user.ID, User: *user,
		Token: token, ExpiresAt: time.Now().Add(time.Hour), IsValid: true,
	}
	return token
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	return req
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}
