package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"micarta/internal/analytics"
	"micarta/internal/domain"
	"micarta/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Cart   service.CartServiceInterface
	Menu   service.MenuServiceInterface
	Stats  analytics.StatsStore
	QR     service.QRGenerator
	Logger *zap.Logger
}

func NewHandler(cart service.CartServiceInterface, menuSvc service.MenuServiceInterface, stats analytics.StatsStore, qr service.QRGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Cart:   cart,
		Menu:   menuSvc,
		Stats:  stats,
		QR:     qr,
		Logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/cart/items/custom", h.addItemWithQuantity).Methods("POST")
	r.HandleFunc("/api/cart/items/{title}", h.removeItem).Methods("DELETE")
	r.HandleFunc("/api/cart/keys/{key}", h.removeItemByKey).Methods("DELETE")
	r.HandleFunc("/api/cart/keys/{key}", h.updateQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/summary", h.cartSummary).Methods("GET")
	r.HandleFunc("/api/cart/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/cart/checkout/qrcode", h.checkoutQRCode).Methods("GET")

	r.HandleFunc("/api/stats/top", h.topItems).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "cart-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Menu.Menu(r.Context())
	if err != nil {
		h.Logger.Error("menu fetch failed", zap.Error(err))
		http.Error(w, "Failed to load menu", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

type cartView struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
	Count float64           `json:"count"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view := cartView{
		Items: h.Cart.Items(),
		Total: h.Cart.Total(),
		Count: h.Cart.TotalItemCount(),
	}
	if view.Items == nil {
		view.Items = []domain.LineItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	Entry domain.MenuEntry `json:"entry"`
	Side  *domain.MenuSide `json:"side,omitempty"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Cart.AddItem(r.Context(), req.Entry, req.Side); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.getCart(w, r)
}

type addCustomRequest struct {
	Entry    domain.MenuEntry `json:"entry"`
	Quantity float64          `json:"quantity"`
}

func (h *Handler) addItemWithQuantity(w http.ResponseWriter, r *http.Request) {
	var req addCustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Cart.AddItemWithQuantity(r.Context(), req.Entry, req.Quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	h.Cart.RemoveItem(r.Context(), title)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeItemByKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	h.Cart.RemoveItemByKey(r.Context(), key)
	w.WriteHeader(http.StatusNoContent)
}

type updateQuantityRequest struct {
	Quantity int `json:"cantidad"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Cart.UpdateQuantity(r.Context(), key, req.Quantity)
	h.getCart(w, r)
}

// cartSummary previews the order message (and the wa.me link when a phone is
// supplied) without publishing anything or touching cart state.
func (h *Handler) cartSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := service.CheckoutRequest{
		Phone:      query.Get("phone"),
		PickupName: query.Get("pickup_name"),
		PickupTime: query.Get("pickup_time"),
		Language:   query.Get("language"),
	}

	response := map[string]string{"message": h.Cart.OrderMessage(req)}
	if req.Phone != "" {
		response["url"] = h.Cart.CheckoutURL(req)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	link, err := h.Cart.Checkout(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrMissingPhone) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Error("checkout failed", zap.Error(err))
		http.Error(w, "Checkout failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": link})
}

func (h *Handler) checkoutQRCode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := service.CheckoutRequest{
		Phone:      query.Get("phone"),
		PickupName: query.Get("pickup_name"),
		PickupTime: query.Get("pickup_time"),
		Language:   query.Get("language"),
	}

	link, err := h.Cart.Checkout(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := h.QR.Generate(link)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (h *Handler) topItems(w http.ResponseWriter, r *http.Request) {
	if h.Stats == nil {
		http.Error(w, "Stats not configured", http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	stats, err := h.Stats.TopItems(r.Context(), limit)
	if err != nil {
		h.Logger.Error("stats read failed", zap.Error(err))
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []domain.ItemStats{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
