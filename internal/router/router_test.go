package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weibaohui/pagecraft/config"
	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/eventbus"
	"github.com/weibaohui/pagecraft/internal/handler"
	"github.com/weibaohui/pagecraft/internal/pkg/cachemanager"
	"github.com/weibaohui/pagecraft/internal/pkg/database"
	"github.com/weibaohui/pagecraft/internal/repository"
	"github.com/weibaohui/pagecraft/internal/service"
	"github.com/weibaohui/pagecraft/internal/subscriber"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	registry := component.Default()
	templateRepo := repository.NewTemplateRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	bus := eventbus.NewInstanceEventBus()
	events := subscriber.NewInstanceEventSubscriber()
	events.Register(bus)

	cfg := config.Default()
	cfg.Server.Mode = "debug"
	cache := cachemanager.NewInMemoryCacheManager[[]byte]("render", time.Minute, time.Minute)

	return Setup(cfg,
		handler.NewComponentHandler(service.NewComponentService(registry)),
		handler.NewTemplateHandler(service.NewTemplateService(templateRepo, registry)),
		handler.NewInstanceHandler(service.NewInstanceService(cfg.Render, templateRepo, instanceRepo, registry, cache, bus, events)),
	)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestRouterTemplateRenderFlow(t *testing.T) {
	r := newTestRouter(t)

	code, body := do(t, r, http.MethodPost, "/api/templates", `{
		"name": "welcome",
		"document": {"tree": [{"id": "root", "type": "container", "children": [
			{"id": "title", "type": "heading", "properties": {"content": {"$bind": "title"}, "level": 2}}
		]}]}
	}`)
	require.Equal(t, http.StatusCreated, code, body)
	tpl := body["data"].(map[string]any)
	assert.Equal(t, float64(2), tpl["node_count"])
	id := int(tpl["id"].(float64))
	base := "/api/templates/" + strconv.Itoa(id)

	code, body = do(t, r, http.MethodPost, base+"/render", `{"data":{"title":"Welcome"}}`)
	require.Equal(t, http.StatusCreated, code, body)
	instance := body["data"].(map[string]any)
	assert.Equal(t, "rendered", instance["status"])
	roots := instance["rendered_output"].(map[string]any)["roots"].([]any)
	heading := roots[0].(map[string]any)["children"].([]any)[0].(map[string]any)
	output := heading["output"].(map[string]any)
	assert.Equal(t, "Welcome", output["text"])
	assert.Equal(t, "h2", output["element"])

	code, body = do(t, r, http.MethodPost, base+"/render", `{"data":{}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "unbound_reference", body["kind"])
	assert.Equal(t, "title", body["node_id"])
	failed := body["data"].(map[string]any)
	assert.Equal(t, "error", failed["status"])
	assert.Nil(t, failed["rendered_output"])

	code, body = do(t, r, http.MethodGet, base+"/instances", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]any), 2)

	code, body = do(t, r, http.MethodGet, "/api/instances/"+strconv.Itoa(int(failed["id"].(float64))), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "content", body["data"].(map[string]any)["error"].(map[string]any)["property"])

	code, body = do(t, r, http.MethodGet, "/api/instances/stats", "")
	require.Equal(t, http.StatusOK, code)
	byStatus := body["data"].(map[string]any)["by_status"].(map[string]any)
	assert.Equal(t, float64(1), byStatus["rendered"])
	assert.Equal(t, float64(1), byStatus["error"])

	code, _ = do(t, r, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouterRejectsUnknownComponent(t *testing.T) {
	r := newTestRouter(t)

	code, body := do(t, r, http.MethodPost, "/api/templates", `{"name":"c","document":{"tree":[{"type":"carousel"}]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, body["violations"])

	code, body = do(t, r, http.MethodPost, "/api/templates/validate", `{"document":{"tree":[{"type":"carousel"}]}}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["data"].(map[string]any)["valid"])

	code, _ = do(t, r, http.MethodPost, "/api/templates/validate", `{"document":"not a document"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouterComponentCatalog(t *testing.T) {
	r := newTestRouter(t)

	code, body := do(t, r, http.MethodGet, "/api/components", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]any), len(component.Default().List()))

	code, body = do(t, r, http.MethodGet, "/api/components/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"layout", "text", "media", "shape", "decoration", "code"}, body["data"])

	code, body = do(t, r, http.MethodGet, "/api/components/image", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "media", body["data"].(map[string]any)["category"])

	code, body = do(t, r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, _ = do(t, r, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, code)
}
