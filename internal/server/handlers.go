package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rajkumarptv/ChitLedger/internal/blob"
	"github.com/rajkumarptv/ChitLedger/internal/ledger"
	"github.com/rajkumarptv/ChitLedger/internal/middleware"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/service"
	"github.com/rajkumarptv/ChitLedger/internal/upi"
)

// Handler holds the services the HTTP layer dispatches to.
type Handler struct {
	auth     *service.AuthService
	payments *service.PaymentService
	auctions *service.AuctionService
	members  *service.MemberService
	config   *service.ConfigService
	blobs    blob.Store
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	authSvc *service.AuthService,
	payments *service.PaymentService,
	auctions *service.AuctionService,
	members *service.MemberService,
	config *service.ConfigService,
	blobs blob.Store,
) *Handler {
	return &Handler{
		auth:     authSvc,
		payments: payments,
		auctions: auctions,
		members:  members,
		config:   config,
		blobs:    blobs,
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

// periodParam parses the {period} path segment as a zero-based index.
func periodParam(r *http.Request) (int, error) {
	period, err := strconv.Atoi(chi.URLParam(r, "period"))
	if err != nil {
		return 0, fmt.Errorf("%w: period must be a number", models.ErrValidation)
	}
	return period, nil
}

type loginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.auth.Login(r.Context(), req.Phone, req.PIN)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) periodSummary(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	summary, err := h.auctions.Summary(r.Context(), period)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

type auctionRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) setAuction(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	var req auctionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	auction, err := h.auctions.SetAuction(r.Context(), middleware.ActorFromContext(r.Context()), period, req.Amount)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, auction)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	views, err := h.payments.ListPeriod(r.Context(), period)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, views)
}

type transitionRequest struct {
	Method       string          `json:"method,omitempty"`
	Date         string          `json:"date,omitempty"`
	Note         string          `json:"note,omitempty"`
	ExtraAmount  int64           `json:"extraAmount,omitempty"`
	CustomAmount *int64          `json:"customAmount,omitempty"`
	Receipt      *models.Receipt `json:"receipt,omitempty"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	memberID := chi.URLParam(r, "memberID")

	action, err := ledger.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	// Confirm, reject and undo are legal with no body at all.
	var req transitionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	in := ledger.Input{
		Method:       models.PaymentMethod(req.Method),
		Date:         req.Date,
		Note:         req.Note,
		ExtraAmount:  req.ExtraAmount,
		CustomAmount: req.CustomAmount,
		Receipt:      req.Receipt,
	}

	rec, err := h.payments.Transition(r.Context(), middleware.ActorFromContext(r.Context()), action, memberID, period, in)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rec)
}

func (h *Handler) paymentLink(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	app := upi.App(r.URL.Query().Get("app"))
	link, err := h.payments.PaymentLink(r.Context(), middleware.ActorFromContext(r.Context()), period, app)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"link": link})
}

func (h *Handler) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "multipart field \"file\" required")
		return
	}
	defer file.Close()

	receipt, err := h.blobs.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, receipt)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, members)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var m models.Member
	if err := decodeBody(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.members.Create(r.Context(), middleware.ActorFromContext(r.Context()), &m); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, m)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var m models.Member
	if err := decodeBody(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	m.ID = chi.URLParam(r, "memberID")

	if err := h.members.Update(r.Context(), middleware.ActorFromContext(r.Context()), &m); err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, m)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Get(r.Context())
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cfg)
}

func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	var upd service.ConfigUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cfg, err := h.config.Update(r.Context(), middleware.ActorFromContext(r.Context()), upd)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cfg)
}
