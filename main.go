package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pocket-pic-server/internal/blob"
	"pocket-pic-server/internal/config"
	"pocket-pic-server/internal/consts"
	"pocket-pic-server/internal/db"
	"pocket-pic-server/internal/middleware"
	"pocket-pic-server/internal/modules"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	imagerepo "pocket-pic-server/internal/modules/image/repo"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/router"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "", "配置文件目录")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()

	blobStore, err := blob.NewLocalStore(config.Get().Upload.Path)
	if err != nil {
		log.Fatal("❌ 无法初始化文件存储: ", err)
	}

	appService := platformservice.NewAppService()
	appModules := modules.New(
		appService,
		userrepo.NewUserRepository(db.DB),
		categoryrepo.NewCategoryRepository(db.DB),
		imagerepo.NewImageRepository(db.DB),
		blobStore,
	)

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	router.NewRouter(appModules, appService).Init(r)

	// 带缓存控制地对外提供已上传的图片
	r.Group(config.Get().Upload.URLPrefix, middleware.StaticCacheMiddleware()).
		StaticFS("", gin.Dir(blobStore.Root(), false))

	printWelcomeMessage()

	// 停机配置
	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		// 服务连接
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}
	log.Println("✅ 服务已退出")
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}
