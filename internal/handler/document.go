package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/segyhp/placement-engine/internal/blob"
	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/service"
	"github.com/segyhp/placement-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type DocumentHandler struct {
	service   *service.ApprovalService
	resolver  blob.Resolver
	validator *validator.Validate
	logger    logrus.FieldLogger
}

func NewDocumentHandler(service *service.ApprovalService, resolver blob.Resolver, logger logrus.FieldLogger) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		resolver:  resolver,
		validator: newValidator(),
		logger:    logger,
	}
}

// Submit handles POST /api/v1/documents
func (h *DocumentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var request domain.SubmitDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	doc, err := h.service.Submit(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, doc)
}

// List handles GET /api/v1/documents?ownerId=&status=
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.DocumentFilter{
		OwnerID: r.URL.Query().Get("ownerId"),
		Status:  domain.DocumentStatus(r.URL.Query().Get("status")),
	}

	if filter.Status != "" && !filter.Status.IsValid() {
		response.BadRequest(w, "Validation failed", fmt.Errorf("unknown status %q", filter.Status))
		return
	}

	docs, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, docs)
}

// Get handles GET /api/v1/documents/{documentId}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	doc, err := h.service.Get(r.Context(), documentID)
	if err != nil {
		writeError(w, err)
		return
	}

	// a missing link should not hide the document
	fileURL, err := h.resolver.URL(r.Context(), doc.FileReference)
	if err != nil {
		h.logger.WithError(err).WithField("documentId", doc.ID).Warn("resolving file url")
		fileURL = ""
	}

	response.Success(w, domain.DocumentResponse{
		Document: doc,
		FileURL:  fileURL,
	})
}

// Review handles POST /api/v1/documents/{documentId}/review
func (h *DocumentHandler) Review(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	var request domain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	doc, err := h.service.Review(r.Context(), documentID, request.Decision, request.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, doc)
}

// MarkPaid handles POST /api/v1/documents/{documentId}/payment
func (h *DocumentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	doc, err := h.service.MarkPaid(r.Context(), documentID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, doc)
}
