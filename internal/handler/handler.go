package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/repaart/fleet-scheduler/internal/config"
	"github.com/repaart/fleet-scheduler/internal/domain"
	"github.com/repaart/fleet-scheduler/internal/repository"
)

// NotificationQueue is the queue the notifier worker consumes.
const NotificationQueue = "shift_notifications"

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Everything below requires a logged-in user and is scoped to the
	// franchise carried in the token.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/me", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftRecord)
				r.Get("/", h.GetShift)
				r.Patch("/", h.UpdateShift)
				r.Delete("/", h.DeleteShift)
				r.Post("/confirm", h.ConfirmShift)
				r.Post("/change-request", h.RequestShiftChange)
				r.Post("/recurrences", h.ExpandShiftRecurrences)
			})
		})

		r.Route("/quick-fill", func(r chi.Router) {
			r.Post("/", h.QuickFill)
		})
		r.Route("/clone-courier", func(r chi.Router) {
			r.Post("/", h.CloneCourier)
		})

		r.Route("/weeks", func(r chi.Router) {
			r.Get("/view", h.GetWeekView)
			r.Get("/audit", h.GetWeekAudit)
			r.Get("/cost-estimate", h.GetWeekCostEstimate)
		})

		r.Route("/couriers", func(r chi.Router) {
			r.Get("/", h.GetCouriers)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateCourier)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.courierRecord)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateCourier)
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.GetVehicles)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateVehicle)
		})
	})
}
