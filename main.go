package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "kosbackend/internal/config"
	"kosbackend/internal/gateway"
	router "kosbackend/internal/http"
	h "kosbackend/internal/http/handlers"
	"kosbackend/internal/storage"
	"kosbackend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	st := store.New(db)
	if err := st.LoadAll(); err != nil {
		log.Fatalf("Gagal memuat data awal: %v", err)
	}
	defer st.Clear()

	// periodic reload keeps the mirror converging with writes applied
	// outside this process
	sched := cron.New()
	if _, err := sched.AddFunc("@hourly", func() {
		if err := st.LoadAll(); err != nil {
			log.Printf("reload mirror gagal: %v", err)
		}
	}); err != nil {
		log.Fatalf("Gagal mendaftarkan jadwal reload: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	var images *storage.BucketClient
	if env.StorageURL != "" {
		images = storage.NewBucketClient(env.StorageURL, env.StorageKey, env.StorageBucket)
	}

	handler := h.New(env, st, gateway.NewXenditClient(env.XenditSecretKey), images)
	r := router.NewRouter(env, handler)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
