// Package builder is the application service behind the résumé editor: it
// loads and persists the aggregate, renders previews, and runs gated exports.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/assist"
	"resume-builder/internal/exportgate"
	"resume-builder/internal/exports"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/pdf"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/snapshots"
	"resume-builder/resume/editor"
	"resume-builder/resume/layout"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const (
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePDF  = "application/pdf"
	MimeHTML = "text/html; charset=utf-8"
)

// ErrInvalidInput indicates a missing owner or malformed request.
var ErrInvalidInput = errors.New("invalid input")

// Artifact is a rendered export.
type Artifact struct {
	Kind        exportgate.Kind `json:"kind"`
	FileName    string          `json:"fileName"`
	ContentType string          `json:"contentType"`
	Data        []byte          `json:"-"`
	RecordID    string          `json:"recordId,omitempty"`
}

// ExportResult carries the gate decision and, when allowed, the artifact.
type ExportResult struct {
	Decision exportgate.Decision
	Artifact *Artifact
}

// Service coordinates editing, rendering and exports per owner.
type Service struct {
	Store   *snapshots.Store
	Gate    *exportgate.Gate
	Assist  *assist.Service
	PDF     pdf.Renderer
	Archive *exports.Archive
	Policy  render.Policy
	IDs     editor.IDSource

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *Service) lock(ownerID string) func() {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[ownerID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func checkOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("owner id required: %w", ErrInvalidInput)
	}
	return nil
}

// Get returns the stored aggregate, or the default when none was saved.
func (s *Service) Get(ctx context.Context, ownerID string) (model.ResumeData, error) {
	if err := checkOwner(ownerID); err != nil {
		return model.ResumeData{}, err
	}
	return s.Store.LoadResume(ctx, ownerID)
}

// Apply runs cmd against the stored state and persists the full result.
func (s *Service) Apply(ctx context.Context, ownerID string, cmd editor.Command) (model.ResumeData, error) {
	if err := checkOwner(ownerID); err != nil {
		return model.ResumeData{}, err
	}
	unlock := s.lock(ownerID)
	defer unlock()

	current, err := s.Store.LoadResume(ctx, ownerID)
	if err != nil {
		return model.ResumeData{}, err
	}
	next, err := editor.Apply(current, cmd, s.IDs)
	if err != nil {
		return current, err
	}
	if err := s.Store.SaveResume(ctx, ownerID, next); err != nil {
		return current, err
	}
	return next, nil
}

// Replace swaps the whole aggregate.
func (s *Service) Replace(ctx context.Context, ownerID string, data model.ResumeData) (model.ResumeData, error) {
	return s.Apply(ctx, ownerID, editor.Replace{Data: data})
}

// Reset restores the sample résumé.
func (s *Service) Reset(ctx context.Context, ownerID string) (model.ResumeData, error) {
	return s.Replace(ctx, ownerID, model.Default())
}

// Preview renders the on-screen page. A non-empty template overrides the
// stored selection without changing it.
func (s *Service) Preview(ctx context.Context, ownerID string, template string) ([]byte, error) {
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if template != "" {
		t, err := model.ParseTemplate(template)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
		}
		data.Template = t
	}
	return layout.Page(data, layout.PageOptions{Template: data.Template})
}

// Print renders the print page. It is gated like a PDF export.
func (s *Service) Print(ctx context.Context, ownerID string) (ExportResult, error) {
	if err := checkOwner(ownerID); err != nil {
		return ExportResult{}, err
	}
	decision, err := s.Gate.Request(ctx, ownerID, exportgate.KindPDF)
	if err != nil || !decision.Allowed {
		return ExportResult{Decision: decision}, err
	}
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return ExportResult{}, err
	}
	art, err := printArtifact(data)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Decision: decision, Artifact: art}, nil
}

// Export asks the gate and, when allowed, produces the artifact.
func (s *Service) Export(ctx context.Context, ownerID string, kind exportgate.Kind) (ExportResult, error) {
	if err := checkOwner(ownerID); err != nil {
		return ExportResult{}, err
	}
	decision, err := s.Gate.Request(ctx, ownerID, kind)
	if err != nil {
		return ExportResult{Decision: decision}, err
	}
	if !decision.Allowed {
		metrics.IncExportGated()
		return ExportResult{Decision: decision}, nil
	}
	art, err := s.run(ctx, ownerID, kind)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Decision: decision, Artifact: art}, nil
}

// ExportPDF is Export for KindPDF.
func (s *Service) ExportPDF(ctx context.Context, ownerID string) (ExportResult, error) {
	return s.Export(ctx, ownerID, exportgate.KindPDF)
}

// ExportDocx is Export for KindDocx.
func (s *Service) ExportDocx(ctx context.Context, ownerID string) (ExportResult, error) {
	return s.Export(ctx, ownerID, exportgate.KindDocx)
}

// ConfirmExport unlocks exports and runs the pending one, if any.
func (s *Service) ConfirmExport(ctx context.Context, ownerID string) (ExportResult, error) {
	if err := checkOwner(ownerID); err != nil {
		return ExportResult{}, err
	}
	kind, err := s.Gate.Confirm(ctx, ownerID)
	if err != nil {
		return ExportResult{}, err
	}
	decision := exportgate.Decision{Allowed: true, State: exportgate.StateUnlocked}
	if kind == "" {
		return ExportResult{Decision: decision}, nil
	}
	art, err := s.run(ctx, ownerID, kind)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Decision: decision, Artifact: art}, nil
}

// CancelExport keeps the free preview and drops the pending export.
func (s *Service) CancelExport(ctx context.Context, ownerID string) (exportgate.Decision, error) {
	if err := checkOwner(ownerID); err != nil {
		return exportgate.Decision{}, err
	}
	return s.Gate.Cancel(ctx, ownerID)
}

// ExportStatus reports the gate state.
func (s *Service) ExportStatus(ctx context.Context, ownerID string) (exportgate.Decision, error) {
	if err := checkOwner(ownerID); err != nil {
		return exportgate.Decision{}, err
	}
	return s.Gate.Status(ctx, ownerID)
}

func (s *Service) run(ctx context.Context, ownerID string, kind exportgate.Kind) (*Artifact, error) {
	start := time.Now()
	art, err := s.produce(ctx, ownerID, kind)
	if err != nil {
		metrics.IncExport(string(kind), "error")
		return nil, err
	}
	metrics.IncExport(string(kind), "ok")
	metrics.ObserveExportDuration(time.Since(start))
	return art, nil
}

func (s *Service) produce(ctx context.Context, ownerID string, kind exportgate.Kind) (*Artifact, error) {
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var art *Artifact
	switch kind {
	case exportgate.KindDocx:
		raw, err := render.RenderDocx(data, s.Policy)
		if err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		art = &Artifact{Kind: kind, FileName: render.FileName(data.Contact.FullName), ContentType: MimeDocx, Data: raw}
	case exportgate.KindPDF:
		art, err = s.pdfArtifact(ctx, data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", kind, exportgate.ErrUnknownKind)
	}
	s.archive(ctx, ownerID, art)
	telemetry.Info("export.complete", map[string]any{
		"owner_id": ownerID,
		"kind":     string(kind),
		"bytes":    len(art.Data),
		"mime":     art.ContentType,
	})
	return art, nil
}

// pdfArtifact prints through the configured renderer and falls back to the
// print page for the browser's own pipeline when PDF rendering is disabled.
func (s *Service) pdfArtifact(ctx context.Context, data model.ResumeData) (*Artifact, error) {
	if s.PDF == nil {
		return printArtifact(data)
	}
	page, err := layout.Page(data, layout.PageOptions{Print: true, Template: data.Template})
	if err != nil {
		return nil, err
	}
	raw, err := s.PDF.RenderHTMLToPDF(ctx, string(page))
	if errors.Is(err, pdf.ErrPDFDisabled) {
		return printArtifact(data)
	}
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &Artifact{Kind: exportgate.KindPDF, FileName: withExt(data.Contact.FullName, ".pdf"), ContentType: MimePDF, Data: raw}, nil
}

func printArtifact(data model.ResumeData) (*Artifact, error) {
	page, err := layout.Page(data, layout.PageOptions{Print: true, Template: data.Template})
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: exportgate.KindPDF, FileName: withExt(data.Contact.FullName, ".html"), ContentType: MimeHTML, Data: page}, nil
}

func withExt(fullName, ext string) string {
	return strings.TrimSuffix(render.FileName(fullName), ".docx") + ext
}

// archive stores the artifact when an archive is configured. Failures are
// logged; the export itself still succeeds.
func (s *Service) archive(ctx context.Context, ownerID string, art *Artifact) {
	if !s.Archive.Enabled() {
		return
	}
	rec, err := s.Archive.Save(ctx, ownerID, string(art.Kind), art.FileName, art.ContentType, art.Data)
	if err != nil {
		telemetry.Warn("export.archive_failed", map[string]any{"owner_id": ownerID, "kind": string(art.Kind), "err": err})
		return
	}
	art.RecordID = rec.ID
}

// History lists archived exports newest first.
func (s *Service) History(ctx context.Context, ownerID string, limit, offset int) ([]exports.Record, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}
	return s.Archive.List(ctx, ownerID, limit, offset)
}

// Download returns an archived artifact.
func (s *Service) Download(ctx context.Context, ownerID, recordID string) (*Artifact, error) {
	if err := checkOwner(ownerID); err != nil {
		return nil, err
	}
	rec, rc, err := s.Archive.Open(ctx, ownerID, recordID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: exportgate.Kind(rec.Kind), FileName: rec.FileName, ContentType: rec.MimeType, Data: raw, RecordID: rec.ID}, nil
}
