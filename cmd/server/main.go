package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/weibaohui/pagecraft/config"
	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/eventbus"
	"github.com/weibaohui/pagecraft/internal/handler"
	"github.com/weibaohui/pagecraft/internal/pkg/cachemanager"
	"github.com/weibaohui/pagecraft/internal/pkg/database"
	"github.com/weibaohui/pagecraft/internal/repository"
	"github.com/weibaohui/pagecraft/internal/router"
	"github.com/weibaohui/pagecraft/internal/service"
	"github.com/weibaohui/pagecraft/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 组件注册表在启动时构建一次，之后只读
	registry := component.Default()
	klog.V(6).Infof("组件注册表已加载: components=%d, categories=%v", len(registry.List()), registry.ListCategories())

	// 初始化 Repository
	templateRepo := repository.NewTemplateRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)

	// 事件总线
	instanceBus := eventbus.NewInstanceEventBus()
	instanceSubscriber := subscriber.NewInstanceEventSubscriber()
	instanceSubscriber.Register(instanceBus)

	renderCache := cachemanager.NewInMemoryCacheManager[[]byte]("render", cfg.Render.CacheTTL, cfg.Render.CacheCleanup)

	// 初始化 Service
	componentService := service.NewComponentService(registry)
	templateService := service.NewTemplateService(templateRepo, registry)
	instanceService := service.NewInstanceService(cfg.Render, templateRepo, instanceRepo, registry, renderCache, instanceBus, instanceSubscriber)

	// 初始化 Handler
	componentHandler := handler.NewComponentHandler(componentService)
	templateHandler := handler.NewTemplateHandler(templateService)
	instanceHandler := handler.NewInstanceHandler(instanceService)

	// 设置路由
	r := router.Setup(cfg, componentHandler, templateHandler, instanceHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
