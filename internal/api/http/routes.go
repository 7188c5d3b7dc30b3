package httpapi

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/temperature-chart/internal/chart"
	"github.com/i474232898/temperature-chart/internal/dashboard"
	"github.com/i474232898/temperature-chart/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		state, err := service.Current()
		if err != nil {
			return chartError(err)
		}

		page, err := renderPage(state)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
		}

		c.Type("html", "utf-8")
		return c.Send(page)
	})

	app.Get("/chart.svg", func(c *fiber.Ctx) error {
		var q chartQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var buf bytes.Buffer
		state, err := service.Render(&buf, q.City, q.MaxMonth)
		if err != nil {
			return chartError(err)
		}

		c.Set("X-Chart-Version", state.Version)
		c.Set(fiber.HeaderContentType, "image/svg+xml")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/chart", func(c *fiber.Ctx) error {
		var q chartQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		state, sel, err := service.Select(q.City, q.MaxMonth)
		if err != nil {
			return chartError(err)
		}

		plot := chart.Layout(state, sel)
		var buf bytes.Buffer
		if err := chart.WriteSVG(&buf, plot); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}

		return c.JSON(fiber.Map{
			"version":    state.Version,
			"city":       q.City,
			"maxMonth":   q.MaxMonth,
			"monthLabel": chart.MonthLabel(q.MaxMonth),
			"svg":        inlineSVG(buf.Bytes()),
			"lines":      plot.Lines,
		})
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		state, err := service.Current()
		if err != nil {
			return chartError(err)
		}
		return c.JSON(chart.CityOptions(state))
	})

	v1.Get("/series", func(c *fiber.Ctx) error {
		state, err := service.Current()
		if err != nil {
			return chartError(err)
		}

		series := make([]seriesResponse, 0, len(state.Series))
		for _, s := range state.Series {
			resp := seriesResponse{City: s.City, Color: state.Colors.Color(s.City)}
			for _, v := range s.Values {
				resp.Values = append(resp.Values, monthlyResponse{Month: v.Month, AvgTemp: finite(v.AvgTemp)})
			}
			series = append(series, resp)
		}

		return c.JSON(fiber.Map{
			"version":  state.Version,
			"loadedAt": state.LoadedAt,
			"yDomain":  state.Y.Domain,
			"series":   series,
		})
	})

	v1.Get("/loads", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		states, err := service.History(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no loads in requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch load history")
		}

		loads := make([]loadResponse, 0, len(states))
		for _, st := range states {
			loads = append(loads, newLoadResponse(st))
		}

		return c.JSON(fiber.Map{
			"from":  req.From,
			"to":    req.To,
			"loads": loads,
		})
	})

	v1.Post("/reload", func(c *fiber.Ctx) error {
		res, err := service.Load(c.UserContext())
		if err != nil {
			log.Errorf("manual reload failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "reload failed: "+err.Error())
		}

		return c.JSON(fiber.Map{
			"changed": res.Changed,
			"load":    newLoadResponse(res.State),
		})
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// chartError maps service errors onto HTTP errors.
func chartError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusServiceUnavailable, "chart data not loaded yet")
	case errors.Is(err, chart.ErrUnknownCity):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}
}

// chartQuery holds the filter controls: dropdown value and month slider.
type chartQuery struct {
	City     string
	MaxMonth int `validate:"min=1,max=12"`
}

func (q *chartQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city", chart.AllCities)
	q.MaxMonth = chart.LastMonth

	if s := c.Query("maxMonth"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("maxMonth must be an integer between 1 and 12")
		}
		q.MaxMonth = m
	}

	return validate.Struct(q)
}

// historyQuery holds query parameters for the load history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

// bind reads from/to, defaulting to the epoch and now.
func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.From = time.Unix(0, 0).UTC()
	h.To = time.Now().UTC()

	if s := c.Query("from"); s != "" {
		from, err := parseTime(s)
		if err != nil {
			return err
		}
		h.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := parseTime(s)
		if err != nil {
			return err
		}
		h.To = to
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

type monthlyResponse struct {
	Month   int      `json:"month"`
	AvgTemp *float64 `json:"avgTemp"` // nil when the month had no numeric readings
}

type seriesResponse struct {
	City   string            `json:"city"`
	Color  string            `json:"color"`
	Values []monthlyResponse `json:"values"`
}

type loadResponse struct {
	Version  string         `json:"version"`
	LoadedAt time.Time      `json:"loadedAt"`
	Cities   int            `json:"cities"`
	Meta     chart.LoadMeta `json:"meta"`
}

func newLoadResponse(st *chart.State) loadResponse {
	return loadResponse{
		Version:  st.Version,
		LoadedAt: st.LoadedAt,
		Cities:   len(st.Series),
		Meta:     st.Meta,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
