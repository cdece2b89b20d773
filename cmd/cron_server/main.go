package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/rrtools/settlement-ledger/consts"
	"github.com/rrtools/settlement-ledger/handler"
	"github.com/rrtools/settlement-ledger/infra/locker"
	reconcileUsecase "github.com/rrtools/settlement-ledger/usecase/reconcile"
)

type CronWorkerConfig struct {
	Interval time.Duration
	Workers  int
}

func (cfg CronWorkerConfig) startRunExecutorWorker(h *handler.ReconHandler, workerID int) {
	for {
		ctx := context.Background()
		if err := h.RunExecution(ctx); err != nil {
			log.Errorf("[Worker %d] error: %s", workerID, err.Error())
		}

		time.Sleep(cfg.Interval)
	}
}

type App struct {
	DB     *gorm.DB
	Locker *locker.Locker
}

func (a *App) startCronWorker(cfg CronWorkerConfig) {
	var wg sync.WaitGroup

	uc := reconcileUsecase.NewRunUsecase(a.DB, a.Locker,
		envOr("UPLOAD_DIR", consts.DefaultUploadDir),
		envOr("OUTPUT_DIR", consts.DefaultOutputDir))
	h := handler.NewReconHandler(uc)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			log.Infof("spawn [Worker %d]", workerID)
			cfg.startRunExecutorWorker(h, workerID)
		}(i + 1)
	}
	wg.Wait()
}

func (a *App) Initialize(dbHost, dbPort, dbUser, dbName, dbPassword string) {
	var err error
	dbURI := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		dbHost, dbPort, dbUser, dbName, dbPassword)

	a.DB, err = gorm.Open("postgres", dbURI)
	if err != nil {
		log.Fatalf("cannot connect to database %s: %v", dbName, err)
	}
	log.Infof("connected to database %s", dbName)

	a.Locker = locker.New()
}

func (a *App) RunServer() {
	a.startCronWorker(CronWorkerConfig{
		Workers:  envIntOr("WORKER_NUM", consts.DefaultWorkerNumber),
		Interval: time.Duration(envIntOr("POLL_INTERVAL_SEC", consts.DefaultIntervalInSec)) * time.Second,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	app := App{}
	app.Initialize(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PASSWORD"))

	app.RunServer()
}
