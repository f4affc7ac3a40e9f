package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/detection"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type thresholdRequest struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type strategyRequest struct {
	Strategy string `json:"strategy"`
}

type simulationRequest struct {
	Interval string `json:"interval"`
}

func Register(app *fiber.App, svcs *service.Services) {
	m := svcs.Monitor
	g := app.Group("/api")

	g.Get("status", func(c *fiber.Ctx) error {
		return c.JSON(m.Status())
	})

	g.Get("telemetry", func(c *fiber.Ctx) error {
		return c.JSON(m.Snapshot())
	})
	g.Post("telemetry", func(c *fiber.Ctx) error {
		if err := svcs.Readings.Record("http", c.Body()); err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(m.Snapshot().CurrentValues)
	})
	g.Post("telemetry/tick", func(c *fiber.Ctx) error {
		p, v, err := m.Tick()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"parameter": p, "value": v})
	})

	g.Put("thresholds/:parameter", func(c *fiber.Ctx) error {
		p, err := domain.ParseParameter(c.Params("parameter"))
		if err != nil {
			return fail(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		}
		var req thresholdRequest
		if err := c.BodyParser(&req); err != nil || req.Value == nil {
			return fail(c, fmt.Errorf("%w: body must carry a numeric value", domain.ErrInvalidInput))
		}
		if err := m.UpdateThreshold(p, domain.ThresholdField(req.Field), *req.Value); err != nil {
			return fail(c, err)
		}
		return c.JSON(m.Snapshot().Thresholds[p])
	})

	g.Post("simulation/start", func(c *fiber.Ctx) error {
		var req simulationRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fail(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
			}
		}
		var interval time.Duration
		if req.Interval != "" {
			d, err := time.ParseDuration(req.Interval)
			if err != nil || d <= 0 {
				return fail(c, fmt.Errorf("%w: invalid interval %q", domain.ErrInvalidInput, req.Interval))
			}
			interval = d
		}
		m.StartSimulation(interval)
		return c.JSON(m.Status())
	})
	g.Post("simulation/stop", func(c *fiber.Ctx) error {
		m.StopSimulation()
		return c.JSON(m.Status())
	})

	g.Get("strategy", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"strategy": m.Strategy()})
	})
	g.Put("strategy", func(c *fiber.Ctx) error {
		var req strategyRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		}
		method, err := detection.ParseMethod(req.Strategy)
		if err != nil {
			return fail(c, err)
		}
		if err := m.SetStrategy(method); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"strategy": method})
	})

	g.Post("detect/:strategy", func(c *fiber.Ctx) error {
		method, err := detection.ParseMethod(c.Params("strategy"))
		if err != nil {
			return fail(c, err)
		}
		found := m.RunDetection(method, m.Snapshot())
		if found == nil {
			found = []domain.Anomaly{}
		}
		return c.JSON(found)
	})

	g.Get("anomalies", func(c *fiber.Ctx) error {
		return c.JSON(m.Anomalies())
	})
	g.Get("anomalies/:id/explanation", func(c *fiber.Ctx) error {
		exp, err := m.Explain(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(exp)
	})
	g.Get("root-causes", func(c *fiber.Ctx) error {
		return c.JSON(m.RootCauses())
	})

	g.Get("lifetimes", func(c *fiber.Ctx) error {
		return c.JSON(m.PredictLifetimes())
	})
	g.Get("reliability", func(c *fiber.Ctx) error {
		iterations := c.QueryInt("iterations", 0)
		if iterations < 0 {
			return fail(c, fmt.Errorf("%w: iterations must not be negative", domain.ErrInvalidInput))
		}
		return c.JSON(m.SimulateReliability(iterations))
	})
	g.Get("maintenance", func(c *fiber.Ctx) error {
		plan := m.MaintenancePlan()
		if plan == nil {
			plan = []domain.MaintenanceRecommendation{}
		}
		return c.JSON(plan)
	})
	g.Get("insights/:parameter", func(c *fiber.Ctx) error {
		return c.JSON(m.ModelInsights(domain.Parameter(c.Params("parameter"))))
	})
}

func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
