package api

import (
	"time"

	models "PaisaPulse/internal/domain/models"
	domrepo "PaisaPulse/internal/domain/repository"
	"PaisaPulse/internal/service/metrics"
	"PaisaPulse/internal/usecase"
	xhttp "PaisaPulse/pkg/http"
	xlogger "PaisaPulse/pkg/logger"
	"PaisaPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// AdvisorEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AdvisorEchoHandler struct {
	logger   *xlogger.Logger
	advisor  *usecase.RiskAdvisor
	advice   *usecase.AdviceAggregateUseCase
	series   *usecase.IncomeSeriesUseCase
	ingestor *usecase.MessageIngestor
	alerts   *usecase.AlertLifecycle
	ledger   domrepo.Ledger
}

func NewAdvisorEchoHandler(
	logger *xlogger.Logger,
	advisor *usecase.RiskAdvisor,
	advice *usecase.AdviceAggregateUseCase,
	series *usecase.IncomeSeriesUseCase,
	ingestor *usecase.MessageIngestor,
	alerts *usecase.AlertLifecycle,
	ledger domrepo.Ledger,
) *AdvisorEchoHandler {
	metrics.Register()
	return &AdvisorEchoHandler{
		logger:   logger,
		advisor:  advisor,
		advice:   advice,
		series:   series,
		ingestor: ingestor,
		alerts:   alerts,
		ledger:   ledger,
	}
}

func (h *AdvisorEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/profile", h.Profile)
	g.GET("/forecast", h.Forecast)
	g.GET("/income", h.Income)
	g.GET("/loan", h.Loan)
	g.GET("/investment", h.Investment)
	g.GET("/sip", h.SIP)
	g.GET("/advice", h.Advice)
	g.GET("/alerts", h.Alerts)
	g.POST("/messages", h.IngestMessage)
	g.POST("/alerts/reply", h.AlertReply)
}

func (h *AdvisorEchoHandler) Health(c echo.Context) error {
	if err := h.ledger.Health(c.Request().Context()); err != nil {
		h.logger.Error("health ledger error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *AdvisorEchoHandler) Profile(c echo.Context) error {
	defer h.observe("profile", time.Now())
	req := &models.ProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advisor.Stability(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("profile usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("profile").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Forecast(c echo.Context) error {
	defer h.observe("forecast", time.Now())
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advisor.Forecast(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("forecast").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Income(c echo.Context) error {
	defer h.observe("income", time.Now())
	req := &models.IncomeSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.series.GetSeries(c.Request().Context(), usecase.GetSeriesParams{
		UserID:      req.UserID,
		From:        util.ParseTimeDefault(req.From, time.Time{}),
		To:          util.ParseTimeDefault(req.To, time.Time{}),
		Granularity: domrepo.NormalizeGranularity(req.Granularity),
	})
	if err != nil {
		h.logger.Error("income usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("income").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Loan(c echo.Context) error {
	defer h.observe("loan", time.Now())
	req := &models.LoanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advisor.Loan(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("loan usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("loan").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Investment(c echo.Context) error {
	defer h.observe("investment", time.Now())
	req := &models.InvestmentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	advice, guard, err := h.advisor.Investment(c.Request().Context(), req.UserID, req.CurrentSIP)
	if err != nil {
		h.logger.Error("investment usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("investment").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"investment": advice,
		"guard":      guard,
	})
}

func (h *AdvisorEchoHandler) SIP(c echo.Context) error {
	defer h.observe("sip", time.Now())
	req := &models.SIPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advisor.SIP(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("sip usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("sip").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Advice(c echo.Context) error {
	defer h.observe("advice", time.Now())
	req := &models.AdviceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.advice.GetAdvice(c.Request().Context(), usecase.GetAdviceParams{
		UserID:     req.UserID,
		CurrentSIP: req.CurrentSIP,
	})
	if err != nil {
		h.logger.Error("advice usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("advice").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) Alerts(c echo.Context) error {
	defer h.observe("alerts", time.Now())
	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.alerts.List(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("alerts usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("alerts").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}

func (h *AdvisorEchoHandler) IngestMessage(c echo.Context) error {
	defer h.observe("messages", time.Now())
	req := &models.IngestMessageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.ingestor.Ingest(c.Request().Context(), &models.InboundMessage{
		UserID:    req.UserID,
		Text:      req.Text,
		Timestamp: util.ParseTimeDefault(req.TS, time.Time{}),
	})
	if err != nil {
		h.logger.Error("ingest usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("messages").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, res)
}

func (h *AdvisorEchoHandler) AlertReply(c echo.Context) error {
	defer h.observe("alert_reply", time.Now())
	req := &models.AlertReplyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.alerts.HandleReply(c.Request().Context(), req.UserID, req.Reply)
	if err != nil {
		h.logger.Error("alert reply usecase error", xlogger.Error(err))
		metrics.AdvisorErrors.WithLabelValues("alert_reply").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) observe(endpoint string, start time.Time) {
	metrics.AdvisorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
