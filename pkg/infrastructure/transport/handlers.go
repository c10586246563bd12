package transport

import (
	"encoding/json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"net/http"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
	"sync"
)

// Handler serializes every request on one mutex; the store has a single writer.
type Handler struct {
	mu                sync.Mutex
	store             service.StoreService
	lowStockThreshold int
}

func Router(store service.StoreService, lowStockThreshold int) http.Handler {
	h := &Handler{store: store, lowStockThreshold: lowStockThreshold}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/products", h.locked(h.listProducts)).Methods(http.MethodGet)
	s.HandleFunc("/products", h.locked(h.createProduct)).Methods(http.MethodPost)
	s.HandleFunc("/products/available", h.locked(h.availableProducts)).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.locked(h.updateProduct)).Methods(http.MethodPut)
	s.HandleFunc("/products/{id}", h.locked(h.deleteProduct)).Methods(http.MethodDelete)

	s.HandleFunc("/cart", h.locked(h.getCart)).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.locked(h.clearCart)).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.locked(h.addToCart)).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{productId}", h.locked(h.updateCartQuantity)).Methods(http.MethodPut)
	s.HandleFunc("/cart/items/{productId}", h.locked(h.removeFromCart)).Methods(http.MethodDelete)

	s.HandleFunc("/transactions", h.locked(h.listTransactions)).Methods(http.MethodGet)
	s.HandleFunc("/transactions", h.locked(h.completeTransaction)).Methods(http.MethodPost)
	s.HandleFunc("/reports/today", h.locked(h.todayReport)).Methods(http.MethodGet)

	return logMiddleware(r)
}

func (h *Handler) locked(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		next(w, r)
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toProductsResponse(h.store.Products()))
}

func (h *Handler) availableProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toProductsResponse(h.store.AvailableProducts()))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := h.store.AddProduct(req.Name, req.Price, req.Stock)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, found := h.store.FindProduct(id); !found {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Error())
		return
	}

	if err := h.store.UpdateProduct(id, model.ProductUpdate{Name: req.Name, Price: req.Price, Stock: req.Stock}); err != nil {
		writeInternalError(w, err)
		return
	}
	product, _ := h.store.FindProduct(id)
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, found := h.store.FindProduct(id); !found {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Error())
		return
	}
	if err := h.store.DeleteProduct(id); err != nil {
		writeInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w, http.StatusOK)
}

func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.store.ClearCart()
	h.writeCart(w, http.StatusOK)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	product, found := h.store.FindProduct(req.ProductID)
	if !found {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Error())
		return
	}
	if !h.store.AddToCart(product) {
		writeError(w, http.StatusConflict, "insufficient stock")
		return
	}
	h.writeCart(w, http.StatusOK)
}

func (h *Handler) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.store.UpdateCartQuantity(productID, req.Quantity)
	h.writeCart(w, http.StatusOK)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}
	h.store.RemoveFromCart(productID)
	h.writeCart(w, http.StatusOK)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := h.store.Transactions()
	if r.URL.Query().Get("scope") == "today" {
		transactions = h.store.TodayTransactions()
	}
	writeJSON(w, http.StatusOK, toTransactionsResponse(transactions))
}

func (h *Handler) completeTransaction(w http.ResponseWriter, _ *http.Request) {
	transaction, err := h.store.CompleteTransaction()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if transaction == nil {
		writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}
	log.WithFields(log.Fields{"id": transaction.ID, "total": transaction.Total.String()}).Info("Transaction completed")
	writeJSON(w, http.StatusCreated, toTransactionResponse(*transaction))
}

func (h *Handler) todayReport(w http.ResponseWriter, _ *http.Request) {
	summary := h.store.TodaySummary(h.lowStockThreshold)
	writeJSON(w, http.StatusOK, summaryResponse{
		Date:               summary.Date.Format("2006-01-02"),
		ProductCount:       summary.ProductCount,
		LowStockCount:      summary.LowStockCount,
		TransactionCount:   summary.TransactionCount,
		ItemsSold:          summary.ItemsSold,
		Revenue:            summary.Revenue,
		AverageTransaction: summary.AverageTransaction,
		Transactions:       toTransactionsResponse(h.store.TodayTransactions()),
	})
}

func (h *Handler) writeCart(w http.ResponseWriter, status int) {
	writeJSON(w, status, cartResponse{
		Items: toItemsResponse(h.store.Cart()),
		Total: h.store.CartTotal(),
	})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.WithError(err).Error("Request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
