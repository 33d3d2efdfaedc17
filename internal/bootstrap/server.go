package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avelora/flightreserve/api"
	"github.com/avelora/flightreserve/config"
	"github.com/avelora/flightreserve/internal/service/flights"
	"github.com/avelora/flightreserve/internal/service/reservations"
	"github.com/avelora/flightreserve/internal/service/users"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, reservationSvc reservations.ReservationUseCase, userSvc users.UserUseCase) error {
	router := NewRouter(cfg, flightSvc, reservationSvc, userSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, flightSvc flights.FlightUseCase, reservationSvc reservations.ReservationUseCase, userSvc users.UserUseCase) *gin.Engine {
	router := gin.Default()
	router.Use(api.RequestID())
	router.Use(api.ResolveActor(userSvc))

	flightHandler := api.NewFlightHandler(flightSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	checkInHandler := api.NewCheckInHandler(reservationSvc)
	userHandler := api.NewUserHandler(userSvc)

	flightsGroup := router.Group("/flights")
	flightHandler.Register(flightsGroup)
	reservationHandler.RegisterSeatMap(flightsGroup)

	reservationHandler.Register(router.Group("/reservations"))
	checkInHandler.Register(router.Group("/checkin"))
	userHandler.Register(router.Group("/users"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger/openapi.json", cfg.HTTP.SwaggerDir+"/openapi.json")
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, "/swagger/openapi.json")
		})
	}

	return router
}

func renderSwaggerUI(w http.ResponseWriter, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
