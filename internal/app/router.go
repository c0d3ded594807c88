package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/myke-awoniran/tally/internal/handler/audit"
	"github.com/myke-awoniran/tally/internal/handler/balance"
	"github.com/myke-awoniran/tally/internal/handler/ledger"
	"github.com/myke-awoniran/tally/internal/handler/middleware"
	"github.com/myke-awoniran/tally/internal/handler/transfer"
	"github.com/myke-awoniran/tally/internal/handler/user"
	"github.com/myke-awoniran/tally/internal/postgres"
	"github.com/myke-awoniran/tally/internal/service"
)

func (app App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(app.Config))

	p := postgres.New(app.DB)
	userService := service.NewUserService(p, app.Config)
	userHandler := userhandler.New(userService)

	accountService := service.NewAccountService(p)
	balanceHandler := balancehandler.New(accountService)

	transferService := service.NewTransferService(p, app.Config)
	transferHandler := transferhandler.New(transferService)

	auditService := service.NewAuditService(p)
	auditHandler := audithandler.New(auditService)

	ledgerHandler := ledgerhandler.New(service.NewReplayService(p), service.NewValidatorService(p))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Get("/balance", balanceHandler.Balance)
		r.Post("/transfer", transferHandler.Transfer)
	})

	r.Route("/api/ledger", func(r chi.Router) {
		r.Get("/account/{accountID}", auditHandler.Account)
		r.Get("/transaction/{transactionID}", auditHandler.Transaction)
		r.Post("/replay", ledgerHandler.Replay)
		r.Get("/validate", ledgerHandler.Validate)
	})

	return r
}
