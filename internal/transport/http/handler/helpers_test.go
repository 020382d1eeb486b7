package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

var testJWT = &auth.JWTer{Secret: []byte("test-secret"), Issuer: "shop-test", TTL: time.Hour}

type apiModule interface {
	MountAPI(public, authed *gin.RouterGroup)
}

func newAPI(mods ...apiModule) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(testJWT, ""))
	for _, m := range mods {
		m.MountAPI(api, authed)
	}
	return r
}

func tokenFor(t *testing.T, id uint, role domain.Role) string {
	t.Helper()
	tok, err := testJWT.Issue(id, role)
	require.NoError(t, err)
	return tok
}

func call(r http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, resp.Resp) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func dataMap(t *testing.T, b resp.Resp) map[string]any {
	t.Helper()
	m, ok := b.Data.(map[string]any)
	require.True(t, ok, "data is %T", b.Data)
	return m
}
