package main

import (
	"context"
	"net/http"

	"truckore/config"
	"truckore/db"
	"truckore/db/mongo"
	"truckore/db/postgres"
	"truckore/handlers"
	"truckore/repository"
	"truckore/routes"
	"truckore/scale"
	"truckore/weighment"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()
	log := config.Logger()

	dbType, err := db.ParseType(cfg.DBType)
	if err != nil {
		log.Fatal(err)
	}

	var (
		ticketRepo  repository.TicketRepository
		billRepo    repository.BillRepository
		tareRepo    repository.TareRepository
		serialRepo  repository.SerialRepository
		stationRepo repository.StationRepository
		weighRepo   repository.WeighmentRepository
	)

	switch dbType {
	case db.Postgres:
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			log.Fatal(err)
		}
		defer pg.Disconnect()

		ticketRepo = repository.NewPostgresTicketRepo(pg.Conn)
		billRepo = repository.NewPostgresBillRepo(pg.Conn)
		tareRepo = repository.NewPostgresTareRepo(pg.Conn)
		serialRepo = repository.NewPostgresSerialRepo(pg.Conn)
		stationRepo = repository.NewPostgresStationRepo(pg.Conn)
		weighRepo = repository.NewPostgresWeighmentRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			log.Fatal(err)
		}
		defer mg.Disconnect()

		ticketRepo = repository.NewMongoTicketRepo(mg.Client)
		billRepo = repository.NewMongoBillRepo(mg.Client)
		tareRepo = repository.NewMongoTareRepo(mg.Client)
		serialRepo = repository.NewMongoSerialRepo(mg.Client)
		stationRepo = repository.NewMongoStationRepo(mg.Client)
		weighRepo = repository.NewMongoWeighmentRepo(mg.Client)
	}

	// Core engine wiring
	serialGen := weighment.NewSerialGenerator(cfg.SerialPrefix, cfg.SerialPadding, cfg.SerialStart, serialRepo, log)
	tareStore := weighment.NewTareStore(tareRepo, cfg.TareValidityDays)
	engine := weighment.NewEngine(ticketRepo, billRepo, weighRepo, serialGen, tareStore, log)

	// Live scale feed
	hub := scale.NewHub(log)
	sim := scale.NewSimulator(log)
	simCtx, stopSim := context.WithCancel(context.Background())
	defer stopSim()
	go sim.Run(simCtx, hub.Publish)

	// Handlers
	weighmentHandler := &handlers.WeighmentHandler{Engine: engine}
	ticketHandler := &handlers.TicketHandler{Repo: ticketRepo}
	billHandler := &handlers.BillHandler{Repo: billRepo, Engine: engine}
	tareHandler := &handlers.TareHandler{Tares: tareStore}
	stationHandler := &handlers.StationHandler{Repo: stationRepo}
	scaleHandler := &handlers.ScaleHandler{Hub: hub}

	// PDF handler with combined repository
	pdfRepo := repository.NewPDFRepository(billRepo, stationRepo)
	pdfHandler := &handlers.PDFHandler{
		Repo:     pdfRepo,
		Bills:    billRepo,
		SavePath: cfg.PDFSavePath,
	}

	routes.SetupRoutes(weighmentHandler, ticketHandler, billHandler, tareHandler, stationHandler, pdfHandler, scaleHandler)

	log.Infof("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatal(err)
	}
}
