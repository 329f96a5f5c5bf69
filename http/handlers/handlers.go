package handlers

import "donation-gateway/services"

var (
	charges    *services.ChargeService
	tokens     *services.TokenService
	reconciler *services.Reconciler
)

// Init wires the handler package to its services. Called once from main;
// tests swap in services built on fakes.
func Init(c *services.ChargeService, t *services.TokenService, r *services.Reconciler) {
	charges = c
	tokens = t
	reconciler = r
}
