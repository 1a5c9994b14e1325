package api

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/gate"
	"github.com/Domenick1991/airbooking-web/internal/service/booking"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const historyPath = "/my-bookings"

type BookingHandler struct {
	renderer
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase, log *zap.Logger) *BookingHandler {
	return &BookingHandler{renderer: newRenderer(log), service: service}
}

func (h *BookingHandler) Register(router gin.IRoutes) {
	router.GET("/booking-confirmation", h.confirmation)
	router.POST("/booking-confirmation", h.create)
	router.GET(historyPath, h.history)
}

// confirmation fetches the flight again and shows one form per passenger.
func (h *BookingHandler) confirmation(c *gin.Context) {
	adults, _ := strconv.Atoi(c.DefaultQuery("adults", "1"))
	conf, err := h.service.Prepare(c.Request.Context(), c.Query("flightId"), adults)
	if err != nil {
		h.failPrepare(c, err)
		return
	}
	h.page(c, http.StatusOK, "booking.html", bookingData(conf))
}

// create prices the draft from a fresh copy of the flight, fills in what the
// user typed and submits it. On failure the form comes back populated.
func (h *BookingHandler) create(c *gin.Context) {
	adults, _ := strconv.Atoi(c.PostForm("adults"))
	conf, err := h.service.Prepare(c.Request.Context(), c.PostForm("flightId"), adults)
	if err != nil {
		h.failPrepare(c, err)
		return
	}
	bindDraft(c, &conf.Draft)

	if _, err := h.service.Submit(c.Request.Context(), conf.Draft); err != nil {
		h.fail(c, err, "booking.html", bookingData(conf))
		return
	}
	gate.Redirect(c, historyPath)
}

func (h *BookingHandler) failPrepare(c *gin.Context, err error) {
	data := gin.H{"Title": "Booking"}
	if errors.Is(err, booking.ErrSoldOut) {
		data["Error"] = "This flight is sold out."
		h.page(c, http.StatusConflict, "error.html", data)
		return
	}
	h.fail(c, err, "error.html", data)
}

func (h *BookingHandler) history(c *gin.Context) {
	filter := booking.ParseFilter(c.Query("filter"))
	hist, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err, "bookings.html", gin.H{"Title": "My Bookings", "History": &booking.History{Filter: filter}})
		return
	}
	h.page(c, http.StatusOK, "bookings.html", gin.H{"Title": "My Bookings", "History": hist})
}

func bookingData(conf *booking.Confirmation) gin.H {
	return gin.H{
		"Title":   "Confirm booking",
		"Flight":  conf.Flight,
		"Draft":   conf.Draft,
		"Genders": booking.Genders,
	}
}

// bindDraft copies the contact and passenger fields of the posted form into d.
// Passenger fields are named "passengers.<i>.<field>".
func bindDraft(c *gin.Context, d *domain.BookingDraft) {
	d.ContactEmail = c.PostForm("contactEmail")
	d.ContactPhone = c.PostForm("contactPhone")
	for i := range d.Passengers {
		p := &d.Passengers[i]
		prefix := "passengers." + strconv.Itoa(i) + "."
		p.FirstName = c.PostForm(prefix + "firstName")
		p.LastName = c.PostForm(prefix + "lastName")
		if age, err := strconv.Atoi(strings.TrimSpace(c.PostForm(prefix + "age"))); err == nil {
			p.Age = age
		}
		if g := strings.ToUpper(c.PostForm(prefix + "gender")); slices.Contains(booking.Genders, g) {
			p.Gender = g
		}
	}
}
