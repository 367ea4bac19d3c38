package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/villains-api/internal/middleware"
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/validation"
)

// Handler carries the shared dependencies concrete handlers embed.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Request is satisfied by a pointer to a request struct. Handle allocates
// a fresh Req for every call so concurrent requests never share one.
type Request[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps fn with bind/validate, logging and New Relic attributes and
// writes its result as JSON with status.
//
//	r.POST("/villains", handler.Handle(h.Handler, h.CreateVillain, http.StatusCreated))
func Handle[Req any, PReq Request[Req], Res any](
	h Handler,
	fn func(c echo.Context, req PReq) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))

		result, err := handleRequest(c, req, func(c echo.Context, req PReq) (any, error) {
			return fn(c, req)
		})
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

func handleRequest[PReq validation.Validatable](
	c echo.Context,
	req PReq,
	fn func(c echo.Context, req PReq) (any, error),
) (any, error) {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", c.Path()).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return nil, err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if txn != nil {
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler returned error")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
		}
		return nil, err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed")

	return result, nil
}
