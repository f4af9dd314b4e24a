package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"artifolio/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWT_SECRET))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "email": c.GetString("email")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := authRouter()

	valid := signed(t, jwt.MapClaims{"user_id": 7, "email": "u@example.com", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(-time.Hour).Unix()})
	noExp := signed(t, jwt.MapClaims{"user_id": 7})
	noUser := signed(t, jwt.MapClaims{"email": "u@example.com", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Token " + valid, http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"no exp", "Bearer " + noExp, http.StatusUnauthorized},
		{"no user", "Bearer " + noUser, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK && !strings.Contains(w.Body.String(), `"user_id":7`) {
				t.Fatalf("body = %s", w.Body.String())
			}
		})
	}
}

func sanitizeRouter(read func(c *gin.Context) any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, read(c))
	})
	return r
}

func TestSanitizeJSON(t *testing.T) {
	r := sanitizeRouter(func(c *gin.Context) any {
		var body map[string]any
		c.ShouldBindJSON(&body)
		return body
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"text":"<script>x</script>hi","nested":{"t":"<b>bold</b>"},"n":3}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["text"] != "hi" {
		t.Errorf("text = %v", body["text"])
	}
	if nested, _ := body["nested"].(map[string]any); nested["t"] != "bold" {
		t.Errorf("nested = %v", body["nested"])
	}
	if body["n"] != float64(3) {
		t.Errorf("n = %v", body["n"])
	}
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	r := sanitizeRouter(func(c *gin.Context) any { return gin.H{} })
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"text":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSanitizeForms(t *testing.T) {
	r := sanitizeRouter(func(c *gin.Context) any {
		_, hasFile := c.Request.MultipartForm.File["final_image"]
		return gin.H{"title": c.PostForm("title"), "file": hasFile}
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", `<img src=x onerror=alert(1)>Dunes`)
	fw, _ := mw.CreateFormFile("final_image", "a.png")
	fw.Write([]byte("<b>binary stays</b>"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"title":"Dunes"`) || !strings.Contains(w.Body.String(), `"file":true`) {
		t.Fatalf("multipart body = %s", w.Body.String())
	}

	r = sanitizeRouter(func(c *gin.Context) any { return gin.H{"text": c.PostForm("text")} })
	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(url.Values{"text": {"<i>plain</i>"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"text":"plain"`) {
		t.Fatalf("urlencoded body = %s", w.Body.String())
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "pong" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestSanitizeKeepsPlainTextCharacters(t *testing.T) {
	r := sanitizeRouter(func(c *gin.Context) any { return gin.H{"text": c.PostForm("text")} })
	form := url.Values{"text": {`Salt & Pepper's "<b>study</b>" 1 < 2`}}
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if want := `Salt & Pepper's "study" 1 < 2`; body["text"] != want {
		t.Fatalf("text = %q, want %q", body["text"], want)
	}
}
