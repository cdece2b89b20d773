package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" //postgres
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/rrtools/settlement-ledger/consts"
	"github.com/rrtools/settlement-ledger/handler"
	"github.com/rrtools/settlement-ledger/infra/db/model"
	"github.com/rrtools/settlement-ledger/middlewares"
	reconcileUsecase "github.com/rrtools/settlement-ledger/usecase/reconcile"
)

type App struct {
	DB     *gorm.DB
	Router *mux.Router
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

	a.DB.AutoMigrate(
		&model.ReconRun{},
		&model.ReconRunAsset{},
	)

	a.Router = mux.NewRouter().StrictSlash(true)
	a.initializeRoutes()
}

func (a *App) initializeRoutes() {
	a.Router.Use(middlewares.RequestLogMiddleware)
	a.Router.Use(middlewares.SetContentTypeMiddleware)

	uc := reconcileUsecase.NewRunUsecase(a.DB, nil,
		envOr("UPLOAD_DIR", consts.DefaultUploadDir),
		envOr("OUTPUT_DIR", consts.DefaultOutputDir))
	h := handler.NewReconHandler(uc)

	a.Router.HandleFunc("/process_reconciliation", h.ProcessReconciliation).Methods("POST")
	a.Router.HandleFunc("/get_result", h.GetResult).Methods("GET")
	a.Router.HandleFunc("/download", h.DownloadResult).Methods("GET")
}

func (a *App) RunServer() {
	port := envOr("PORT", "8080")
	log.Infof("server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, a.Router))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
