package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okehris/hris-backend-go/internal/domain/benefit"
	"github.com/okehris/hris-backend-go/internal/handler/http/response"
)

type BenefitHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type benefitHandlerImpl struct {
	benefitService benefit.BenefitService
}

func NewBenefitHandler(benefitService benefit.BenefitService) BenefitHandler {
	return &benefitHandlerImpl{benefitService: benefitService}
}

func (h *benefitHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req benefit.CreateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.benefitService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Benefit created", result)
}

func (h *benefitHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.benefitService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var category *benefit.Category
	if c := r.URL.Query().Get("category"); c != "" {
		cat := benefit.Category(c)
		if !cat.Valid() {
			response.BadRequest(w, "Invalid category", nil)
			return
		}
		category = &cat
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.benefitService.List(r.Context(), category, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req benefit.UpdateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.benefitService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *benefitHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.benefitService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Benefit deactivated", nil)
}
