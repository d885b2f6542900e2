package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/app/endpoints"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	httptransport "github.com/skylinedemo/skyline-console/internal/pkg/transport/http"
)

// SystemService is the health/stress slice served outside the JSON API
// endpoint layer.
type SystemService interface {
	Health(ctx context.Context) (dto.HealthStatus, error)
	Ready(ctx context.Context) (dto.ReadyStatus, error)
	SystemInfo(ctx context.Context) (dto.SystemInfo, error)
	StressCPU(ctx context.Context, seconds int) (dto.CPUStressResult, error)
	StressMemory(ctx context.Context, sizeMB int) (dto.MemoryStressResult, error)
	Metrics(ctx context.Context) (string, error)
}

// MakeHTTPRouter builds the stub backend router over the full Skyline
// contract.
func MakeHTTPRouter(endpts endpoints.Endpoints, system SystemService) *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		httptransport.RequestID(),
		httptransport.CORSMiddleware(),
		httptransport.Recoverer(slog.Default()),
	)

	router.Get("/health", systemHandler(func(ctx context.Context) (interface{}, error) {
		return system.Health(ctx)
	}))
	router.Get("/ready", systemHandler(func(ctx context.Context) (interface{}, error) {
		return system.Ready(ctx)
	}))

	router.Route("/stress", func(router chi.Router) {
		router.Get("/info", systemHandler(func(ctx context.Context) (interface{}, error) {
			return system.SystemInfo(ctx)
		}))
		router.Get("/cpu", func(w http.ResponseWriter, r *http.Request) {
			seconds := queryInt(r, "seconds", 5)

			result, err := system.StressCPU(r.Context(), seconds)
			if err != nil {
				httptransport.ErrorResponse(r.Context(), err, w)

				return
			}

			_ = httptransport.ResponseWithBody(r.Context(), w, result)
		})
		router.Get("/memory", func(w http.ResponseWriter, r *http.Request) {
			sizeMB := queryInt(r, "sizeMB", 100)

			result, err := system.StressMemory(r.Context(), sizeMB)
			if err != nil {
				httptransport.ErrorResponse(r.Context(), err, w)

				return
			}

			_ = httptransport.ResponseWithBody(r.Context(), w, result)
		})
	})

	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		body, err := system.Metrics(r.Context())
		if err != nil {
			httptransport.ErrorResponse(r.Context(), err, w)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})

	router.Route("/api/flights", func(router chi.Router) {
		router.Use(render.SetContentType(render.ContentTypeJSON))

		router.Get("/", httptransport.MakeHandlerFunc(
			endpts.ListFlights, decodeEmpty, httptransport.ResponseWithBody))
		router.Get("/search", httptransport.MakeHandlerFunc(
			endpts.SearchFlights, decodeSearchCriteria, httptransport.ResponseWithBody))
		router.Get("/available", httptransport.MakeHandlerFunc(
			endpts.AvailableFlights, decodeEmpty, httptransport.ResponseWithBody))
		router.Get("/departure/{code}", httptransport.MakeHandlerFunc(
			endpts.FlightsByDeparture, decodeAirportCode, httptransport.ResponseWithBody))
		router.Get("/arrival/{code}", httptransport.MakeHandlerFunc(
			endpts.FlightsByArrival, decodeAirportCode, httptransport.ResponseWithBody))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpts.GetFlight, decodeID, httptransport.ResponseWithBody))
	})

	router.Route("/api/reservations", func(router chi.Router) {
		router.Use(render.SetContentType(render.ContentTypeJSON))

		router.Get("/", httptransport.MakeHandlerFunc(
			endpts.ListReservations, decodeEmpty, httptransport.ResponseWithBody))
		router.Post("/", httptransport.MakeHandlerFunc(
			endpts.CreateReservation, decodeReservationRequest, httptransport.ResponseWithBody))
		router.Get("/email/{email}", httptransport.MakeHandlerFunc(
			endpts.ReservationsByEmail, decodeEmail, httptransport.ResponseWithBody))
		router.Get("/flight/{flightId}", httptransport.MakeHandlerFunc(
			endpts.ReservationsByFlight, decodeFlightID, httptransport.ResponseWithBody))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpts.GetReservation, decodeID, httptransport.ResponseWithBody))
		router.Put("/{id}", httptransport.MakeHandlerFunc(
			endpts.UpdateReservation, decodeUpdateReservation, httptransport.ResponseWithBody))
		router.Patch("/{id}/cancel", httptransport.MakeHandlerFunc(
			endpts.CancelReservation, decodeID, httptransport.NoContentResponse))
		router.Delete("/{id}", httptransport.MakeHandlerFunc(
			endpts.DeleteReservation, decodeID, httptransport.NoContentResponse))
	})

	return router
}

func systemHandler(call func(ctx context.Context) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := call(r.Context())
		if err != nil {
			httptransport.ErrorResponse(r.Context(), err, w)

			return
		}

		_ = httptransport.ResponseWithBody(r.Context(), w, response)
	}
}

func decodeEmpty(_ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodeID(r *http.Request) (interface{}, error) {
	return pathID(r, "id")
}

func decodeFlightID(r *http.Request) (interface{}, error) {
	return pathID(r, "flightId")
}

func pathID(r *http.Request, param string) (interface{}, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return nil, exception.BusinessError{
			Message:    "invalid " + param,
			StatusCode: http.StatusBadRequest,
		}
	}

	return endpoints.IDRequest{ID: id}, nil
}

func decodeAirportCode(r *http.Request) (interface{}, error) {
	return endpoints.CodeRequest{Code: chi.URLParam(r, "code")}, nil
}

func decodeEmail(r *http.Request) (interface{}, error) {
	return endpoints.EmailRequest{Email: chi.URLParam(r, "email")}, nil
}

func decodeSearchCriteria(r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	return dto.SearchCriteria{
		From: query.Get("from"),
		To:   query.Get("to"),
		Date: query.Get("date"),
	}, nil
}

func decodeReservationRequest(r *http.Request) (interface{}, error) {
	var req dto.ReservationRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, exception.BusinessError{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		}
	}

	return req, nil
}

func decodeUpdateReservation(r *http.Request) (interface{}, error) {
	idReq, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}

	var req dto.ReservationRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, exception.BusinessError{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		}
	}

	return endpoints.UpdateReservationRequest{
		ID:      idReq.(endpoints.IDRequest).ID,
		Request: req,
	}, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
