package service

import (
	"tazkara/internal/cart"
	"tazkara/internal/external"
	"tazkara/internal/session"
)

type Services struct {
	Auth     *AuthService
	Events   *EventService
	Wallet   *WalletService
	Tickets  *TicketService
	Checkout *CheckoutService
}

func NewServices(client *external.Client, sessions *session.Manager, carts *cart.Manager) *Services {
	return &Services{
		Auth:     NewAuthService(client, sessions),
		Events:   NewEventService(client, carts),
		Wallet:   NewWalletService(client, sessions),
		Tickets:  NewTicketService(client),
		Checkout: NewCheckoutService(client, sessions, carts),
	}
}
