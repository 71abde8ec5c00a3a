package main

import (
	"UserAccountBackend/config/server"
	"UserAccountBackend/internal/handler"
	"UserAccountBackend/internal/mediastore"
	"UserAccountBackend/internal/notifier"
	"UserAccountBackend/internal/repository"
	"UserAccountBackend/internal/security"
	"UserAccountBackend/internal/service"
	"context"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("не удалось загрузить конфигурацию: %v", err)
	}

	database, err := server.SetupDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("не удалось подключиться к БД: %v", err)
	}
	defer database.Close()

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("не удалось создать JWT сервис: %v", err)
	}

	mediaStore, err := mediastore.NewS3MediaStore(&cfg.Media)
	if err != nil {
		log.Fatalf("не удалось создать медиахранилище: %v", err)
	}

	webhookTimeout, err := time.ParseDuration(cfg.Webhook.Timeout)
	if err != nil {
		webhookTimeout = 5 * time.Second
	}

	userRepository := repository.NewUserRepository(database)
	accountService := service.NewAccountService(
		userRepository,
		jwtService,
		security.NewPasswordHasher(),
		mediaStore,
		notifier.NewWebhookNotifier(cfg.Webhook.URL, webhookTimeout),
	)
	accountHandler := handler.NewAccountHandler(accountService, cfg.Server.TempDir)

	httpServer, router := server.SetupServer(&cfg.Server, &cfg.CORS)

	basePath := cfg.Server.BasePath
	if basePath == "" {
		basePath = "/api-users"
	}

	router.Route(basePath, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
			r.Post("/refresh-token", accountHandler.RefreshToken)
		})
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Get("/me", accountHandler.GetCurrentUser)
			r.Post("/logout", accountHandler.Logout)
			r.Post("/change-password", accountHandler.ChangePassword)
			r.Patch("/update-profile", accountHandler.UpdateProfile)
			r.Patch("/update-avatar", accountHandler.UpdateAvatar)
			r.Patch("/update-cover-image", accountHandler.UpdateCoverImage)
		})
	})

	runServer(ctx, httpServer)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
