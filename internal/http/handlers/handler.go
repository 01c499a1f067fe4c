package handlers

import (
	intconfig "kosbackend/internal/config"
	"kosbackend/internal/gateway"
	"kosbackend/internal/http/middleware"
	"kosbackend/internal/services"
	"kosbackend/internal/storage"
	"kosbackend/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler carries every dependency the HTTP layer needs. It is built
// once in main and passed to the router; nothing here is a package
// global.
type Handler struct {
	Env     intconfig.Env
	Store   *store.Store
	Gateway *gateway.XenditClient
	Images  *storage.BucketClient
}

func New(env intconfig.Env, st *store.Store, gw *gateway.XenditClient, img *storage.BucketClient) *Handler {
	return &Handler{Env: env, Store: st, Gateway: gw, Images: img}
}

func (h *Handler) settlement(c *gin.Context) services.SettlementService {
	return services.SettlementService{
		PaymentRepo: h.Store.PaymentRepo,
		BookingRepo: h.Store.BookingRepo,
		HistoryRepo: h.Store.HistoryRepo,
		Mirror:      h.Store,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) checkout(c *gin.Context) services.CheckoutService {
	return services.CheckoutService{
		BookingRepo: h.Store.BookingRepo,
		RoomRepo:    h.Store.RoomRepo,
		PaymentRepo: h.Store.PaymentRepo,
		HistoryRepo: h.Store.HistoryRepo,
		Mirror:      h.Store,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) receipt(c *gin.Context) services.ReceiptService {
	return services.ReceiptService{
		PaymentRepo: h.Store.PaymentRepo,
		BookingRepo: h.Store.BookingRepo,
		Mirror:      h.Store,
		RequestID:   middleware.GetRequestID(c),
	}
}
