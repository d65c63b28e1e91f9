package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/cocopuff2234/airline-ops/internal/activities"
	"github.com/cocopuff2234/airline-ops/internal/database"
	"github.com/cocopuff2234/airline-ops/internal/handlers"
	"github.com/cocopuff2234/airline-ops/internal/models"
	"github.com/cocopuff2234/airline-ops/internal/router"
	"github.com/cocopuff2234/airline-ops/internal/service"
	"github.com/cocopuff2234/airline-ops/internal/websocket"
	"github.com/cocopuff2234/airline-ops/internal/workflows"
)

const (
	DefaultPort         = "8080"
	DefaultTemporalHost = "localhost:7233"
)

// The worker runs inside the API process: the reservation registry is in
// memory, so expiry activities must share the process that owns it.
func main() {
	ctx := context.Background()

	port := getEnv("API_PORT", DefaultPort)
	temporalHost := getEnv("TEMPORAL_HOST", DefaultTemporalHost)
	dbURL := os.Getenv("DATABASE_URL")

	// Database is optional; without it the core runs purely in memory.
	var repo *database.Repository
	if dbURL != "" {
		log.Println("Connecting to database...")
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		repo = database.NewRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		log.Println("Connected to database")
	}

	// Temporal is optional too; without it pending reservations simply
	// never expire on their own.
	var temporalClient client.Client
	c, err := client.Dial(client.Options{HostPort: temporalHost})
	if err != nil {
		log.Printf("Temporal unavailable at %s, reservation holds disabled: %v", temporalHost, err)
	} else {
		temporalClient = c
		defer c.Close()
		log.Printf("Connected to Temporal at %s", temporalHost)
	}

	hub := websocket.NewHub()
	go hub.Run()

	var store service.Store
	if repo != nil {
		store = repo
	}
	bookingService := service.NewBookingService(temporalClient, store, hub)

	if temporalClient != nil {
		w := worker.New(temporalClient, service.TaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.ReservationHoldWorkflow)

		var recorder activities.EventRecorder
		if repo != nil {
			recorder = repo
		}
		acts := activities.NewActivities(bookingService, recorder)
		w.RegisterActivityWithOptions(acts.ExpireReservation, activity.RegisterOptions{Name: "ExpireReservation"})

		go func() {
			log.Println("Starting Temporal worker...")
			if err := w.Run(worker.InterruptCh()); err != nil {
				log.Fatalf("Worker failed: %v", err)
			}
		}()
	}

	seedDemoData(ctx, bookingService)

	h := handlers.NewHandler(bookingService)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedDemoData loads a small starter dataset so the API is usable out of
// the box
func seedDemoData(ctx context.Context, svc service.BookingService) {
	_, err := svc.CreateAirport(ctx, &models.CreateAirportRequest{
		ID: "JFK", Name: "John F. Kennedy International",
		Terminals: []string{"T1", "T4", "T8"},
		Gates:     []string{"A1", "A2", "A12", "B3", "B7"},
	})
	if err != nil {
		log.Printf("Seed: %v", err)
		return
	}
	_, _ = svc.CreateAirport(ctx, &models.CreateAirportRequest{
		ID: "LAX", Name: "Los Angeles International",
		Terminals: []string{"T2", "TBIT"},
		Gates:     []string{"20", "21", "23B"},
	})

	now := time.Now()
	departure := now.Add(24 * time.Hour).Truncate(time.Minute)

	flights := []*models.CreateFlightRequest{
		{
			FlightNumber: "AA100", Airline: "American",
			Origin: "JFK", Destination: "LAX", AircraftType: "A321",
			DepartureTime: departure, ArrivalTime: departure.Add(6 * time.Hour),
			Capacity: 190, FirstPrice: 650, EconomyPrice: 220, MinAttendants: 4,
		},
		{
			FlightNumber: "DL200", Airline: "Delta",
			Origin: "LAX", Destination: "JFK", AircraftType: "B787",
			DepartureTime: departure.Add(2 * time.Hour), ArrivalTime: departure.Add(7 * time.Hour),
			Capacity: 240, FirstPrice: 900, EconomyPrice: 310, MinAttendants: 6,
		},
	}
	for _, req := range flights {
		if _, err := svc.CreateFlight(ctx, req); err != nil {
			log.Printf("Seed flight %s: %v", req.FlightNumber, err)
		}
	}

	pilots := []*models.RegisterPilotRequest{
		{EmployeeID: "P100", FullName: "Dana Reyes", BaseAirport: "JFK", Rank: "CAPTAIN", TypeRatings: []string{"A320", "A321"}, FlightHours: 9200, HiredOn: now.AddDate(-12, 0, 0)},
		{EmployeeID: "P101", FullName: "Lee Okafor", BaseAirport: "JFK", Rank: "FIRST_OFFICER", TypeRatings: []string{"A320", "A321"}, FlightHours: 3100, HiredOn: now.AddDate(-4, 0, 0)},
	}
	for _, req := range pilots {
		if _, err := svc.RegisterPilot(ctx, req); err != nil {
			log.Printf("Seed pilot %s: %v", req.EmployeeID, err)
		}
	}

	attendants := []string{"FA100", "FA101", "FA102", "FA103"}
	for i, id := range attendants {
		position := "JUNIOR"
		if i == 0 {
			position = "LEAD"
		}
		_, err := svc.RegisterCabinCrew(ctx, &models.RegisterCabinCrewRequest{
			EmployeeID: id, FullName: "Crew " + id, BaseAirport: "JFK",
			Position: position, Qualifications: []string{"A320", "A321"},
			HiredOn: now.AddDate(-2, 0, 0),
		})
		if err != nil {
			log.Printf("Seed attendant %s: %v", id, err)
		}
	}

	_ = svc.AssignCaptain(ctx, "AA100", "P100")
	_ = svc.AssignFirstOfficer(ctx, "AA100", "P101")
	for _, id := range attendants {
		_ = svc.AddAttendant(ctx, "AA100", id)
	}

	_, _ = svc.CreateCustomer(ctx, &models.CreateCustomerRequest{ID: "C100", Name: "Alex Moreau"})

	log.Println("Seeded demo airports, flights, crew and customer")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
