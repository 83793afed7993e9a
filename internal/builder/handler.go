package builder

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/exportgate"
	"resume-builder/internal/exports"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/editor"
	"resume-builder/resume/model"
)

const maxBodySize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches editor, export and assist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.templates)

	rg.GET("/resume", h.get)
	rg.PUT("/resume", h.replace)
	rg.POST("/resume/commands", h.command)
	rg.POST("/resume/reset", h.reset)
	rg.GET("/resume/sections", h.sections)
	rg.GET("/resume/preview", h.preview)
	rg.GET("/resume/print", h.print)

	rg.GET("/exports", h.history)
	rg.GET("/exports/status", h.status)
	rg.POST("/exports/confirm", h.confirm)
	rg.POST("/exports/cancel", h.cancel)
	rg.POST("/exports/:kind", h.export)
	rg.GET("/exports/:id/download", h.download)

	rg.POST("/assist/summary", h.assistSummary)
	rg.POST("/assist/bullet", h.assistBullet)
	rg.POST("/assist/skills", h.assistSkills)
}

func (h *Handler) templates(c *gin.Context) {
	resp := make([]gin.H, 0, len(model.Templates))
	for _, t := range model.Templates {
		resp = append(resp, gin.H{"id": t, "label": t.Label()})
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	data, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, data)
}

func (h *Handler) replace(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read body", nil)
		return
	}
	data, err := model.Decode(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	next, err := h.Svc.Replace(c.Request.Context(), middleware.UserIDFromContext(c), data)
	if err != nil {
		writeError(c, err, "failed to save resume")
		return
	}
	respond.OK(c, next)
}

func (h *Handler) command(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read body", nil)
		return
	}
	cmd, err := editor.DecodeCommand(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	next, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), cmd)
	if err != nil {
		writeError(c, err, "failed to apply command")
		return
	}
	respond.OK(c, next)
}

func (h *Handler) reset(c *gin.Context) {
	data, err := h.Svc.Reset(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to reset resume")
		return
	}
	respond.OK(c, data)
}

func (h *Handler) sections(c *gin.Context) {
	resp := gin.H{"sections": model.Sections()}
	if current := model.Section(c.Query("current")); current != "" {
		resp["current"] = current
		resp["next"] = model.NextSection(current)
		resp["previous"] = model.PreviousSection(current)
	}
	respond.OK(c, resp)
}

func (h *Handler) preview(c *gin.Context) {
	page, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("template"))
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	respond.HTML(c, page)
}

func (h *Handler) print(c *gin.Context) {
	c.Set(middleware.ExportKindKey, string(exportgate.KindPDF))
	res, err := h.Svc.Print(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to render print page")
		return
	}
	if !writeGated(c, res) {
		return
	}
	respond.HTML(c, res.Artifact.Data)
}

func (h *Handler) export(c *gin.Context) {
	kind, err := exportgate.ParseKind(c.Param("kind"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown export kind", nil)
		return
	}
	c.Set(middleware.ExportKindKey, string(kind))
	res, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), kind)
	if err != nil {
		writeError(c, err, "failed to export")
		return
	}
	if !writeGated(c, res) {
		return
	}
	writeArtifact(c, res.Artifact)
}

func (h *Handler) confirm(c *gin.Context) {
	res, err := h.Svc.ConfirmExport(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to confirm export")
		return
	}
	c.Set(middleware.GateStateKey, string(res.Decision.State))
	if res.Artifact == nil {
		respond.OK(c, res.Decision)
		return
	}
	c.Set(middleware.ExportKindKey, string(res.Artifact.Kind))
	writeArtifact(c, res.Artifact)
}

func (h *Handler) cancel(c *gin.Context) {
	decision, err := h.Svc.CancelExport(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to cancel export")
		return
	}
	respond.OK(c, decision)
}

func (h *Handler) status(c *gin.Context) {
	decision, err := h.Svc.ExportStatus(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load export status")
		return
	}
	respond.OK(c, decision)
}

func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	recs, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list exports")
		return
	}
	respond.OK(c, recs)
}

func (h *Handler) download(c *gin.Context) {
	art, err := h.Svc.Download(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to download export")
		return
	}
	writeArtifact(c, art)
}

type bulletRequest struct {
	ExperienceID string `json:"experienceId"`
	Index        int    `json:"index"`
}

func (h *Handler) assistSummary(c *gin.Context) {
	res, err := h.Svc.DraftSummary(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to draft summary")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) assistBullet(c *gin.Context) {
	var req bulletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ExperienceID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "experienceId is required", nil)
		return
	}
	res, err := h.Svc.RewriteBullet(c.Request.Context(), middleware.UserIDFromContext(c), req.ExperienceID, req.Index)
	if err != nil {
		writeError(c, err, "failed to rewrite bullet")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) assistSkills(c *gin.Context) {
	res, names, err := h.Svc.SuggestSkills(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to suggest skills")
		return
	}
	respond.OK(c, gin.H{"data": res.Data, "applied": res.Applied, "suggestions": names})
}

// writeGated answers 402 when the gate held the export back.
func writeGated(c *gin.Context, res ExportResult) bool {
	c.Set(middleware.GateStateKey, string(res.Decision.State))
	if res.Decision.Allowed && res.Artifact != nil {
		return true
	}
	respond.Error(c, http.StatusPaymentRequired, "confirmation_required", "confirm to unlock exports", res.Decision)
	return false
}

func writeArtifact(c *gin.Context, art *Artifact) {
	if art.RecordID != "" {
		c.Header("X-Export-Id", art.RecordID)
	}
	respond.Attachment(c, art.FileName, art.ContentType, art.Data)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, editor.ErrInvalidValue),
		errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, exports.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, editor.ErrUnknownEntry), errors.Is(err, exports.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, exports.ErrArchiveDisabled):
		respond.Error(c, http.StatusNotFound, "not_found", "export archive is not configured", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
