package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
	"github.com/ekaraca/cinebook/internal/mailer"
	"github.com/ekaraca/cinebook/internal/mocks"
	"github.com/ekaraca/cinebook/internal/seatmap"
)

type FlowTestSuite struct {
	suite.Suite
	app         *application
	movieRepo   *mocks.MockMovieRepo
	theaterRepo *mocks.MockTheaterRepo
	bookingRepo *mocks.MockBookingRepo
	mailer      *mailer.MockMailer
}

func (s *FlowTestSuite) SetupTest() {
	s.movieRepo = new(mocks.MockMovieRepo)
	s.theaterRepo = new(mocks.MockTheaterRepo)
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.mailer = mailer.NewMockMailer()

	s.app = newTestApplication(func(a *application) {
		a.movieRepo = s.movieRepo
		a.theaterRepo = s.theaterRepo
		a.bookingRepo = s.bookingRepo
		a.mailer = s.mailer
		// Every generated seat is open unless a test overrides this.
		a.seatMaps = seatmap.NewGenerator(seatmap.Config{})
	})
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func (s *FlowTestSuite) flowAtSeatSelection() *domain.BookingFlow {
	flow := domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"})
	s.Require().NoError(flow.SelectShowtime(testTheaters()[0], "7:00 PM"))

	return flow
}

func (s *FlowTestSuite) flowAtConfirmation() *domain.BookingFlow {
	flow := s.flowAtSeatSelection()

	seats := []domain.Seat{
		{Row: "A", Number: 5, Category: domain.CategoryPremium, Available: true},
		{Row: "A", Number: 6, Category: domain.CategoryGold, Available: true},
	}
	for _, seat := range seats {
		_, err := flow.ToggleSeat(seat)
		s.Require().NoError(err)
	}

	s.Require().NoError(flow.Proceed())

	return flow
}

func (s *FlowTestSuite) decodeFlow(w *httptest.ResponseRecorder) api.Flow {
	var resp api.FlowResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

	return resp.Flow
}

func (s *FlowTestSuite) TestStartFlowHandler() {
	tests := []struct {
		name           string
		input          api.StartFlowRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when the movie id is missing",
			input:          api.StartFlowRequest{},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:  "should return 404 for an unknown movie",
			input: api.StartFlowRequest{MovieId: 42},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 42).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "should open a flow at showtime selection",
			input: api.StartFlowRequest{MovieId: 3},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 3).
					Return(&domain.Movie{ID: 3, Title: "Gravity Well"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/flow", tt.input)
			r = withSession(s.T(), s.app, r, nil)

			s.app.StartFlowHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusCreated {
				flow := s.decodeFlow(w)
				s.NotEmpty(flow.Id)
				s.Equal(string(domain.StepShowtimeSelection), flow.Step)
				s.Equal(3, flow.MovieId)
				s.Equal(domain.MaxSeatsPerBooking, flow.MaxSeats)

				stored, err := s.app.getFlow(r)
				s.Require().NoError(err)
				s.Equal(flow.Id, stored.ID)
			}

			s.movieRepo.AssertExpectations(s.T())
		})
	}
}

func (s *FlowTestSuite) TestGetFlowHandler() {
	s.Run("should point the caller back to the movies page without a flow", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodGet, "/flow", nil)
		r = withSession(s.T(), s.app, r, nil)

		s.app.GetFlowHandler(w, r)

		checkMissingFlowState(s.T(), w)
	})

	s.Run("should return the flow in progress", func() {
		s.SetupTest()
		flow := s.flowAtSeatSelection()

		w, r := executeRequest(s.T(), http.MethodGet, "/flow", nil)
		r = withSession(s.T(), s.app, r, flow)

		s.app.GetFlowHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		got := s.decodeFlow(w)
		s.Equal(flow.ID, got.Id)
		s.Equal(string(domain.StepSeatSelection), got.Step)
		s.Equal("7:00 PM", got.Showtime)
	})
}

func (s *FlowTestSuite) TestCancelFlowHandler() {
	s.Run("should discard the flow", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodDelete, "/flow", nil)
		r = withSession(s.T(), s.app, r, s.flowAtSeatSelection())

		s.app.CancelFlowHandler(w, r)

		s.Equal(http.StatusNoContent, w.Code)

		_, err := s.app.getFlow(r)
		s.ErrorIs(err, domain.ErrMissingFlowState)
	})

	s.Run("should be idempotent", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodDelete, "/flow", nil)
		r = withSession(s.T(), s.app, r, nil)

		s.app.CancelFlowHandler(w, r)

		s.Equal(http.StatusNoContent, w.Code)
	})
}

func (s *FlowTestSuite) TestSelectShowtimeHandler() {
	tests := []struct {
		name           string
		flow           *domain.BookingFlow
		input          api.SelectShowtimeRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "should fail without a flow in progress",
			input:      api.SelectShowtimeRequest{TheaterId: 1, Showtime: "7:00 PM"},
			wantStatus: http.StatusConflict,
		},
		{
			name:           "should fail on a malformed showtime",
			flow:           domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"}),
			input:          api.SelectShowtimeRequest{TheaterId: 1, Showtime: "19:00"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a clock time like 7:00 PM",
		},
		{
			name:  "should return 404 for an unknown theater",
			flow:  domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"}),
			input: api.SelectShowtimeRequest{TheaterId: 42, Showtime: "7:00 PM"},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 42).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "should reject a showtime the theater does not schedule",
			flow:  domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"}),
			input: api.SelectShowtimeRequest{TheaterId: 1, Showtime: "11:45 PM"},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 1).
					Return(testTheaters()[0], nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "should advance the flow to seat selection",
			flow:  domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"}),
			input: api.SelectShowtimeRequest{TheaterId: 1, Showtime: "7:00 PM"},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 1).
					Return(testTheaters()[0], nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPut, "/flow/showtime", tt.input)
			r = withSession(s.T(), s.app, r, tt.flow)

			s.app.SelectShowtimeHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusOK {
				flow := s.decodeFlow(w)
				s.Equal(string(domain.StepSeatSelection), flow.Step)
				s.Equal("CineBook Grand Central", flow.TheaterName)
				// Evening base plus IMAX and Dolby Atmos surcharges.
				s.True(flow.ShowtimePrice.Equal(decimal.NewFromInt(24)),
					"showtime price = %s", flow.ShowtimePrice)
			}

			s.theaterRepo.AssertExpectations(s.T())
		})
	}
}

func (s *FlowTestSuite) TestToggleSeatHandler() {
	tests := []struct {
		name           string
		flow           *domain.BookingFlow
		input          api.ToggleSeatRequest
		seatConfig     *seatmap.Config
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantSelected   bool
	}{
		{
			name:       "should fail before a showtime is chosen",
			flow:       domain.NewBookingFlow(&domain.Movie{ID: 3, Title: "Gravity Well"}),
			input:      api.ToggleSeatRequest{Row: "A", Number: 5},
			wantStatus: http.StatusConflict,
		},
		{
			name:           "should fail on a lowercase row label",
			flow:           s.flowAtSeatSelection(),
			input:          api.ToggleSeatRequest{Row: "a", Number: 5},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be an uppercase row label like A",
		},
		{
			name:  "should reject a seat outside the theater grid",
			flow:  s.flowAtSeatSelection(),
			input: api.ToggleSeatRequest{Row: "Z", Number: 1},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 1).
					Return(testTheaters()[0], nil)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "seat Z1 does not exist in this theater",
		},
		{
			name:       "should reject a booked seat",
			flow:       s.flowAtSeatSelection(),
			input:      api.ToggleSeatRequest{Row: "A", Number: 5},
			seatConfig: &seatmap.Config{BookedRate: 1},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 1).
					Return(testTheaters()[0], nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:  "should select an open seat",
			flow:  s.flowAtSeatSelection(),
			input: api.ToggleSeatRequest{Row: "A", Number: 5},
			setupMocks: func() {
				s.theaterRepo.On("GetById", mock.Anything, 1).
					Return(testTheaters()[0], nil)
			},
			wantStatus:   http.StatusOK,
			wantSelected: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.seatConfig != nil {
				s.app.seatMaps = seatmap.NewGenerator(*tt.seatConfig)
			}
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/flow/seats", tt.input)
			r = withSession(s.T(), s.app, r, tt.flow)

			s.app.ToggleSeatHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantSelected {
				flow := s.decodeFlow(w)
				s.Require().Len(flow.Seats, 1)
				s.Equal("A", flow.Seats[0].Row)
				s.Equal(5, flow.Seats[0].Number)
				s.True(flow.Total.Equal(flow.Seats[0].Price))

				stored, err := s.app.getFlow(r)
				s.Require().NoError(err)
				s.Len(stored.Seats, 1)
			}

			s.theaterRepo.AssertExpectations(s.T())
		})
	}

	s.Run("should deselect a previously selected seat", func() {
		s.SetupTest()
		s.theaterRepo.On("GetById", mock.Anything, 1).Return(testTheaters()[0], nil)

		flow := s.flowAtSeatSelection()
		input := api.ToggleSeatRequest{Row: "A", Number: 5}

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/seats", input)
		r = withSession(s.T(), s.app, r, flow)
		s.app.ToggleSeatHandler(w, r)
		s.Require().Equal(http.StatusOK, w.Code)

		w, r2 := executeRequest(s.T(), http.MethodPost, "/flow/seats", input)
		r2 = r2.WithContext(r.Context())
		s.app.ToggleSeatHandler(w, r2)

		s.Equal(http.StatusOK, w.Code)

		got := s.decodeFlow(w)
		s.Empty(got.Seats)
		s.True(got.Total.IsZero())
	})
}

func (s *FlowTestSuite) TestProceedFlowHandler() {
	s.Run("should reject an empty selection", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodPut, "/flow/step", nil)
		r = withSession(s.T(), s.app, r, s.flowAtSeatSelection())

		s.app.ProceedFlowHandler(w, r)

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("should advance to confirmation", func() {
		s.SetupTest()

		flow := s.flowAtSeatSelection()
		_, err := flow.ToggleSeat(domain.Seat{Row: "A", Number: 5, Category: domain.CategoryPremium, Available: true})
		s.Require().NoError(err)

		w, r := executeRequest(s.T(), http.MethodPut, "/flow/step", nil)
		r = withSession(s.T(), s.app, r, flow)

		s.app.ProceedFlowHandler(w, r)

		s.Equal(http.StatusOK, w.Code)
		s.Equal(string(domain.StepConfirmation), s.decodeFlow(w).Step)
	})
}

func (s *FlowTestSuite) TestConfirmFlowHandler() {
	s.Run("should fail without a flow in progress", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/confirm", nil)
		r = withSession(s.T(), s.app, r, nil)

		s.app.ConfirmFlowHandler(w, r)

		checkMissingFlowState(s.T(), w)
	})

	s.Run("should reject an invalid email", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/confirm",
			api.ConfirmFlowRequest{Email: "not-an-email"})
		r = withSession(s.T(), s.app, r, s.flowAtConfirmation())

		s.app.ConfirmFlowHandler(w, r)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("should persist the booking and clear the flow", func() {
		s.SetupTest()
		s.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
			Return(nil)

		flow := s.flowAtConfirmation()

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/confirm", nil)
		r = withSession(s.T(), s.app, r, flow)

		s.app.ConfirmFlowHandler(w, r)

		s.Equal(http.StatusCreated, w.Code)

		var resp api.BookingResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("Gravity Well", resp.Booking.MovieTitle)
		s.Equal("confirmed", resp.Booking.Status)
		s.Require().Len(resp.Booking.Seats, 2)
		// A premium seat and a gold one.
		s.True(resp.Booking.TotalAmount.Equal(decimal.NewFromInt(43)),
			"total = %s", resp.Booking.TotalAmount)

		_, err := s.app.getFlow(r)
		s.ErrorIs(err, domain.ErrMissingFlowState)

		s.bookingRepo.AssertExpectations(s.T())
	})

	s.Run("should send a confirmation email when one is requested", func() {
		s.SetupTest()
		s.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
			Return(nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/confirm",
			api.ConfirmFlowRequest{Email: "june@example.com"})
		r = withSession(s.T(), s.app, r, s.flowAtConfirmation())

		s.app.ConfirmFlowHandler(w, r)

		s.Equal(http.StatusCreated, w.Code)

		s.Eventually(func() bool {
			emails := s.mailer.SentEmails()
			return len(emails) == 1 && emails[0].Recipient == "june@example.com"
		}, time.Second, 10*time.Millisecond)
	})

	s.Run("should keep the flow for retry when persistence fails", func() {
		s.SetupTest()
		s.bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
			Return(errors.New("boom"))

		flow := s.flowAtConfirmation()

		w, r := executeRequest(s.T(), http.MethodPost, "/flow/confirm", nil)
		r = withSession(s.T(), s.app, r, flow)

		s.app.ConfirmFlowHandler(w, r)

		s.Equal(http.StatusInternalServerError, w.Code)

		stored, err := s.app.getFlow(r)
		s.Require().NoError(err)
		s.Equal(string(domain.StepConfirmation), string(stored.Step))
		s.Len(stored.Seats, 2)
	})
}
