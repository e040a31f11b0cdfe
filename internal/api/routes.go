package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/yieldward/yield-ward-service/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Post("/v1/stake", registerHandler(handlers.Stake))
	r.Post("/v1/unstake", registerHandler(handlers.Unstake))
	r.Post("/v1/response", registerHandler(handlers.HandleResponse))
	r.Post("/v1/reinit", registerHandler(handlers.RequestReinit))

	r.Get("/v1/config", registerHandler(handlers.GetConfig))
	r.Get("/v1/stats", registerHandler(handlers.GetStats))
	r.Get("/v1/events", registerHandler(handlers.GetEvents))
	r.Get("/v1/tokens", registerHandler(handlers.GetTokens))
	r.Get("/v1/tokens/by-source", registerHandler(handlers.GetTokenBySource))
	r.Get("/v1/tokens/by-lpt", registerHandler(handlers.GetTokenByLpt))
	r.Get("/v1/tokens/{denom}/stake-params", registerHandler(handlers.GetStakeParams))
	r.Get("/v1/tokens/{denom}/unstake-params", registerHandler(handlers.GetUnstakeParams))
	r.Get("/v1/tokens/{denom}/stakes/{id}", registerHandler(handlers.GetStakeItem))
	r.Get("/v1/tokens/{denom}/unstakes/{id}", registerHandler(handlers.GetUnstakeItem))

	r.Route("/v1/admin", func(r chi.Router) {
		r.Post("/tokens", registerHandler(handlers.AddToken))
		r.Put("/tokens/{denom}", registerHandler(handlers.UpdateTokenConfig))
		r.Post("/stakes/fail", registerHandler(handlers.FailStake))
		r.Post("/unstakes/fail", registerHandler(handlers.FailUnstake))
		r.Post("/mint", registerHandler(handlers.MintShares))
		r.Post("/disallow-mint", registerHandler(handlers.DisallowMint))
		r.Put("/config", registerHandler(handlers.UpdateContractConfig))
		r.Put("/bridge-config", registerHandler(handlers.UpdateBridgeConfig))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
