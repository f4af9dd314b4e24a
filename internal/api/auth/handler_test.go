package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artifolio/config"
	"artifolio/database"
	"artifolio/internal/app/http/middleware"
	"artifolio/internal/domain/users"
	"artifolio/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"
	db := testutil.OpenDB(t)
	database.DB = db

	r := gin.New()
	r.POST("/register", Register)
	r.POST("/login", Login)
	authed := r.Group("/", middleware.AuthMiddleware())
	authed.GET("/me", Me)
	authed.POST("/change-password", ChangePassword)
	return r, db
}

func postJSON(r *gin.Engine, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Token == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}
	return body.Token
}

func TestRegisterLoginMe(t *testing.T) {
	r, db := setup(t)

	w := postJSON(r, "/register", `{"name":"Ada","email":"Ada@Example.com","password":"sketch123"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d %s", w.Code, w.Body.String())
	}

	var u users.User
	if err := db.First(&u).Error; err != nil {
		t.Fatal(err)
	}
	if u.Email != "ada@example.com" || u.Password == nil || *u.Password == "sketch123" {
		t.Fatalf("stored user = %+v", u)
	}

	w = postJSON(r, "/register", `{"name":"Ada","email":"ada@example.com","password":"sketch123"}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register = %d", w.Code)
	}

	w = postJSON(r, "/login", `{"email":"ada@example.com","password":"wrong1234"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d", w.Code)
	}

	w = postJSON(r, "/login", `{"email":"ada@example.com","password":"sketch123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d %s", w.Code, w.Body.String())
	}
	token := tokenFrom(t, w)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"email":"ada@example.com"`) {
		t.Fatalf("me = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	r, _ := setup(t)
	w := postJSON(r, "/register", `{"name":"Ada","email":"ada@example.com","password":"short"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("weak password = %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	r, _ := setup(t)
	token := tokenFrom(t, postJSON(r, "/register", `{"name":"Ada","email":"ada@example.com","password":"sketch123"}`, ""))

	w := postJSON(r, "/change-password", `{"old_password":"nope","new_password":"canvas456"}`, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong old password = %d", w.Code)
	}

	w = postJSON(r, "/change-password", `{"old_password":"sketch123","new_password":"canvas456"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("change = %d %s", w.Code, w.Body.String())
	}

	if w := postJSON(r, "/login", `{"email":"ada@example.com","password":"canvas456"}`, ""); w.Code != http.StatusOK {
		t.Fatalf("login with new password = %d", w.Code)
	}
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	db := testutil.OpenDB(t)
	local := testutil.CreateUser(t, db, "ada@example.com")

	linked, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "g-1", Email: "Ada@example.com", EmailVerified: true})
	if err != nil {
		t.Fatal(err)
	}
	if linked.ID != local.ID || linked.GoogleSub == nil || *linked.GoogleSub != "g-1" {
		t.Fatalf("linked = %+v", linked)
	}

	again, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "g-1", Email: "changed@example.com"})
	if err != nil || again.ID != local.ID {
		t.Fatalf("lookup by subject = %+v %v", again, err)
	}

	fresh, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "g-2", Email: "grace@example.com", Name: "Grace"})
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID == local.ID || fresh.AuthProvider != users.ProviderGoogle || fresh.Password != nil || fresh.Name != "Grace" {
		t.Fatalf("created = %+v", fresh)
	}
}
