package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marmitaria/internal/excel"
	"marmitaria/internal/repository"
	"marmitaria/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc *service.Service
	log zerolog.Logger
}

func NewHandler(svc *service.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// flexFloat accepts both a JSON number and its string form; the browser
// forms this API serves submit numeric fields as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*f = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid number: %s", raw)
	}
	*f = flexFloat(value)
	return nil
}

// flexInt is the integer counterpart; an empty string reads as zero,
// which id fields treat as absent.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*f = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer: %s", raw)
	}
	*f = flexInt(value)
	return nil
}

func (f flexInt) optional() (*int64, error) {
	if f < 0 {
		return nil, fmt.Errorf("id must be positive, got %d", int64(f))
	}
	if f == 0 {
		return nil, nil
	}
	value := int64(f)
	return &value, nil
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

type customerRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.svc.CreateCustomer(r.Context(), repository.CustomerCreateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.svc.UpdateCustomer(r.Context(), id, repository.CustomerUpdateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.storeError(w, err, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
		h.storeError(w, err, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

type supplierRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	supplier, err := h.svc.CreateSupplier(r.Context(), repository.SupplierCreateInput{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, supplier)
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	supplier, err := h.svc.UpdateSupplier(r.Context(), id, repository.SupplierUpdateInput{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		h.storeError(w, err, "supplier not found")
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		h.storeError(w, err, "supplier not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

type ingredientRequest struct {
	Name string    `json:"name"`
	Unit string    `json:"unit"`
	Cost flexFloat `json:"cost"`
}

func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ingredient, err := h.svc.CreateIngredient(r.Context(), repository.IngredientCreateInput{
		Name: req.Name,
		Unit: req.Unit,
		Cost: float64(req.Cost),
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, ingredient)
}

func (h *Handler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req ingredientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ingredient, err := h.svc.UpdateIngredient(r.Context(), id, repository.IngredientUpdateInput{
		Name: req.Name,
		Unit: req.Unit,
		Cost: float64(req.Cost),
	})
	if err != nil {
		h.storeError(w, err, "ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteIngredient(r.Context(), id); err != nil {
		h.storeError(w, err, "ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ImportIngredientPrices(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := excel.ParseIngredientPriceRows(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.ImportIngredientPrices(r.Context(), rows)
	if err != nil {
		h.storeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"file_name":       header.Filename,
		"total_rows":      result.TotalRows,
		"matched_rows":    result.MatchedRows,
		"updated":         result.Updated,
		"unmatched_count": result.UnmatchedCount,
		"unmatched_names": result.UnmatchedNames,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.storeError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type productLineRequest struct {
	IngredientID flexInt   `json:"ingredient_id"`
	Quantity     flexFloat `json:"quantity"`
}

type createProductRequest struct {
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Price       flexFloat            `json:"price"`
	Ingredients []productLineRequest `json:"ingredients"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lines := make([]repository.ProductLineInput, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		lines = append(lines, repository.ProductLineInput{
			IngredientID: int64(line.IngredientID),
			Quantity:     float64(line.Quantity),
		})
	}
	product, err := h.svc.CreateProduct(r.Context(), repository.ProductCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       float64(req.Price),
		Ingredients: lines,
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.storeError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

type createExpenseRequest struct {
	Description   string    `json:"description"`
	Amount        flexFloat `json:"amount"`
	SupplierID    flexInt   `json:"supplier_id"`
	PaymentMethod *string   `json:"payment_method"`
	Status        string    `json:"status"`
	DueDate       *string   `json:"due_date"`
	PaidDate      *string   `json:"paid_date"`
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due_date")
		return
	}
	paidDate, err := parseOptionalDate(req.PaidDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid paid_date")
		return
	}
	supplierID, err := req.SupplierID.optional()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid supplier_id")
		return
	}
	expense, err := h.svc.CreateExpense(r.Context(), repository.ExpenseCreateInput{
		Description:   req.Description,
		Amount:        float64(req.Amount),
		SupplierID:    supplierID,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		DueDate:       dueDate,
		PaidDate:      paidDate,
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

type updateExpenseRequest struct {
	Status   string  `json:"status"`
	PaidDate *string `json:"paid_date"`
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	paidDate, err := parseOptionalDate(req.PaidDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid paid_date")
		return
	}
	expense, err := h.svc.UpdateExpenseStatus(r.Context(), id, repository.ExpenseStatusInput{
		Status:   req.Status,
		PaidDate: paidDate,
	})
	if err != nil {
		h.storeError(w, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		h.storeError(w, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

type saleItemRequest struct {
	ProductID flexInt   `json:"product_id"`
	Quantity  flexInt   `json:"quantity"`
	UnitPrice flexFloat `json:"unit_price"`
}

type createSaleRequest struct {
	CustomerID    flexInt           `json:"customer_id"`
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	Items         []saleItemRequest `json:"items"`
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := make([]repository.SaleLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, repository.SaleLineInput{
			ProductID: int64(item.ProductID),
			Quantity:  int(item.Quantity),
			UnitPrice: float64(item.UnitPrice),
		})
	}
	customerID, err := req.CustomerID.optional()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer_id")
		return
	}
	sale, err := h.svc.CreateSale(r.Context(), repository.SaleCreateInput{
		CustomerID:    customerID,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Items:         items,
	})
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (h *Handler) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.FinancialSummary(r.Context())
	if err != nil {
		h.storeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// storeError maps the repository's closed error set onto status codes;
// anything unrecognized is logged and reported as a plain server fault.
func (h *Handler) storeError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if notFoundMessage == "" {
			notFoundMessage = "not found"
		}
		writeError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrConstraint):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Msg("operation failed")
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("invalid date")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
