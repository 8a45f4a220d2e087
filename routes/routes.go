package routes

import (
	"net/http"
	"strings"

	"truckore/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	weighmentHandler *handlers.WeighmentHandler,
	ticketHandler *handlers.TicketHandler,
	billHandler *handlers.BillHandler,
	tareHandler *handlers.TareHandler,
	stationHandler *handlers.StationHandler,
	pdfHandler *handlers.PDFHandler,
	scaleHandler *handlers.ScaleHandler,
) {
	// Weighment routes
	http.Handle("/weighments", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			weighmentHandler.Execute(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))
	http.Handle("/serial/next", withCORS(http.HandlerFunc(handlers.RecoverWrapper(weighmentHandler.NextSerial))))

	// Ticket routes
	http.Handle("/tickets", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ticketHandler.GetAllTickets(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Get ticket by ID
	http.Handle("/tickets/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/tickets/"):]
		if id != "" && r.Method == http.MethodGet {
			ticketHandler.GetTicketByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Bill routes
	http.Handle("/bills", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			billHandler.GetAllBills(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))
	http.Handle("/bills/pdf", withCORS(http.HandlerFunc(handlers.RecoverWrapper(pdfHandler.SlipPDF))))

	// Get bill by ID / mark printed
	http.Handle("/bills/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		rest := r.URL.Path[len("/bills/"):]
		if id, found := strings.CutSuffix(rest, "/printed"); found {
			if id != "" && r.Method == http.MethodPost {
				billHandler.MarkPrinted(w, r, id)
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if rest != "" && r.Method == http.MethodGet {
			billHandler.GetBillByID(w, r, rest)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))

	// Stored tare lookup
	http.Handle("/tare", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tareHandler.GetTare(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Station setup routes
	http.Handle("/station", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			stationHandler.SaveStation(w, r)
		case http.MethodGet:
			stationHandler.GetStation(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Live scale feed
	http.Handle("/scale/live", withCORS(http.HandlerFunc(handlers.RecoverWrapper(scaleHandler.LiveFeed))))
	http.Handle("/scale/reading", withCORS(http.HandlerFunc(handlers.RecoverWrapper(scaleHandler.CurrentReading))))
}
