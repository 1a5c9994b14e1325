package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/service/booking"
	"github.com/Domenick1991/airbooking-web/internal/service/flights"
	"github.com/Domenick1991/airbooking-web/internal/service/results"
	"github.com/Domenick1991/airbooking-web/internal/service/search"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

var sortKeys = []results.SortKey{results.SortPrice, results.SortTime, results.SortDuration}

type FlightHandler struct {
	renderer
	service   flights.FlightUseCase
	formatter *results.Formatter
	validator *validate.Validator
}

func NewFlightHandler(service flights.FlightUseCase, fm *results.Formatter, v *validate.Validator, log *zap.Logger) *FlightHandler {
	return &FlightHandler{renderer: newRenderer(log), service: service, formatter: fm, validator: v}
}

func (h *FlightHandler) Register(router gin.IRoutes) {
	router.GET("/home", h.list)
	router.POST("/home/search", h.search)
	router.GET("/flight/:id", h.get)
}

func sessionID(c *gin.Context) string {
	if a := gate.Accessor(c); a != nil {
		return a.ID()
	}
	return ""
}

// list serves the result page. A sort change reorders what is already on
// screen; everything else fetches the requested page.
func (h *FlightHandler) list(c *gin.Context) {
	sid := sessionID(c)
	_, pageSet := c.GetQuery("page")
	if sortParam, ok := c.GetQuery("sort"); ok && !pageSet {
		if view, ok := h.service.Resort(sid, results.ParseSortKey(sortParam)); ok {
			h.results(c, http.StatusOK, h.formFor(view), nil, view)
			return
		}
	}

	page, _ := strconv.Atoi(c.Query("page"))
	view, err := h.service.List(c.Request.Context(), sid, page)
	if err != nil {
		h.fail(c, err, "home.html", h.homeData(search.NewForm(h.now()), nil))
		return
	}
	if sortParam, ok := c.GetQuery("sort"); ok {
		key := results.ParseSortKey(sortParam)
		if resorted, ok := h.service.Resort(sid, key); ok {
			view = resorted
		} else {
			view.Sort = key
		}
	}
	h.results(c, http.StatusOK, search.NewForm(h.now()), nil, view)
}

// search handles the form: stepper and swap ops re-render it, submit runs the query.
func (h *FlightHandler) search(c *gin.Context) {
	sid := sessionID(c)
	form := search.NewForm(h.now())
	_ = c.ShouldBindWith(&form, binding.Form)

	if op := c.PostForm("op"); op != "" {
		if err := form.Apply(op); err != nil {
			h.log.Debug("ignored form op", zap.String("op", op), zap.Error(err))
		}
		h.formOnly(c, http.StatusOK, form, nil)
		return
	}

	if _, err := form.Submit(h.validator); err != nil {
		errs, _ := validate.AsErrors(err)
		h.formOnly(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	view, err := h.service.Search(c.Request.Context(), sid, form)
	if err != nil {
		h.fail(c, err, "home.html", h.homeData(form, nil))
		return
	}
	h.results(c, http.StatusOK, form, nil, view)
}

// formOnly re-renders the form above whatever results are already on screen.
func (h *FlightHandler) formOnly(c *gin.Context, status int, form search.Form, errs validate.Errors) {
	if view, ok := h.service.Current(sessionID(c)); ok {
		h.results(c, status, form, errs, view)
		return
	}
	h.page(c, status, "home.html", h.homeData(form, errs))
}

// formFor is the form shown above a re-sorted view: the one that ran the
// search, or a fresh one for the listing.
func (h *FlightHandler) formFor(view results.View) search.Form {
	if view.Form != nil {
		return *view.Form
	}
	return search.NewForm(h.now())
}

func (h *FlightHandler) homeData(form search.Form, errs validate.Errors) gin.H {
	return gin.H{
		"Title":      "Flights",
		"Form":       form,
		"FormErrors": errs,
		"Passengers": form.Total(),
		"SortKeys":   sortKeys,
		"Sort":       results.SortPrice,
		"Pager":      results.Pager{},
	}
}

func (h *FlightHandler) results(c *gin.Context, status int, form search.Form, errs validate.Errors, view results.View) {
	sorted := view.Sorted()
	data := h.homeData(form, errs)
	data["HasResults"] = true
	data["Searching"] = view.Search != nil
	data["Cards"] = results.Cards(sorted, h.formatter)
	data["Count"] = len(sorted)
	data["Pager"] = results.NewPager(view.Page.Pagination)
	data["Sort"] = view.Sort
	if view.Search != nil {
		data["Passengers"] = view.Search.Passengers
	}
	h.page(c, status, "home.html", data)
}

// get shows one flight with the passenger stepper taken from ?passengers=.
func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "error.html", gin.H{"Title": "Flight"})
		return
	}
	count, _ := strconv.Atoi(c.DefaultQuery("passengers", "1"))
	h.page(c, http.StatusOK, "flight.html", flightData(flight, count))
}

func flightData(f *domain.Flight, passengers int) gin.H {
	stepper := booking.NewStepper(passengers, f.AvailableSeats)
	return gin.H{
		"Title":   f.Airline + " " + f.FlightNumber,
		"Flight":  f,
		"Stepper": stepper,
		"Total":   booking.Total(f.Price, stepper.Count),
		"Badge":   results.Scarcity(f.AvailableSeats, f.TotalSeats),
	}
}
