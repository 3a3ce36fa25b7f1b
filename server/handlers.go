package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/ZaguanLabs/menuval"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ValidateRequest struct {
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
	Sheet       string `json:"sheet"`
}

type TranslateRequest struct {
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
	SourceLang  string `json:"source_lang" binding:"required"`
}

type TranslateResponse struct {
	SourceLang     menuval.Language        `json:"source_lang"`
	TargetLang     menuval.Language        `json:"target_lang"`
	Name           string                  `json:"name"`
	NameTag        menuval.SourceTag       `json:"name_tag"`
	Description    string                  `json:"description"`
	DescriptionTag menuval.SourceTag       `json:"description_tag"`
	Detail         menuval.ItemTranslation `json:"detail"`
}

type ProcessRequest struct {
	Items      []menuval.MenuItem `json:"items" binding:"required"`
	Sheet      string             `json:"sheet"`
	Mode       string             `json:"mode"`
	SourceLang string             `json:"source_lang"`
}

type ProcessResponse struct {
	Rows   []menuval.RowResult `json:"rows"`
	Report menuval.BatchReport `json:"report"`
}

type ConfigResponse struct {
	Verified bool                  `json:"verified"`
	LoadedAt time.Time             `json:"loaded_at"`
	Stats    menuval.SnapshotStats `json:"stats"`
	Error    string                `json:"error,omitempty"`
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: err.Error()})
}

// Health reports liveness and whether the configuration is degraded.
func (s *Server) Health(c *gin.Context) {
	snap := s.proc.Store().Peek()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  menuval.FullVersion(),
		"degraded": snap == nil || !snap.Verified,
	})
}

// ConfigStatus describes the snapshot currently served.
func (s *Server) ConfigStatus(c *gin.Context) {
	snap := s.proc.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, configResponse(snap))
}

// RefreshConfig forces a reload from the configuration source.
func (s *Server) RefreshConfig(c *gin.Context) {
	snap, err := s.proc.Store().Refresh(c.Request.Context())
	resp := configResponse(snap)
	if err != nil {
		s.logger.Warn("config refresh failed", zap.Error(err))
		resp.Error = err.Error()
		c.JSON(http.StatusBadGateway, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func configResponse(snap *menuval.Snapshot) ConfigResponse {
	if snap == nil {
		return ConfigResponse{}
	}
	return ConfigResponse{Verified: snap.Verified, LoadedAt: snap.LoadedAt, Stats: snap.Stats}
}

// Validate checks one item.
func (s *Server) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	sheet, err := menuval.ParseSheetType(req.Sheet)
	if err != nil {
		badRequest(c, "INVALID_SHEET", err)
		return
	}

	item := menuval.CleanItem(menuval.MenuItem{Name: req.ItemName, Description: req.Description})
	verdict, err := s.proc.Validate(c.Request.Context(), item, sheet)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// Translate translates one item.
func (s *Server) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	source, err := menuval.ParseLanguage(req.SourceLang)
	if err != nil {
		badRequest(c, "INVALID_LANGUAGE", err)
		return
	}
	target, err := menuval.TargetFor(source)
	if err != nil {
		badRequest(c, "INVALID_LANGUAGE", err)
		return
	}

	item := menuval.CleanItem(menuval.MenuItem{Name: req.ItemName, Description: req.Description})
	tr, err := s.proc.TranslateItem(c.Request.Context(), item, source)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TranslateResponse{
		SourceLang:     source,
		TargetLang:     target,
		Name:           tr.Name.Text,
		NameTag:        tr.Name.Tag,
		Description:    tr.Description.Text,
		DescriptionTag: tr.Description.Tag,
		Detail:         tr,
	})
}

// Process runs a batch.
func (s *Server) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if len(req.Items) > MaxBatchItems {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "TOO_MANY_ITEMS",
			Message: "a batch accepts at most 20000 items",
		})
		return
	}

	opts, err := batchOptions(req)
	if err != nil {
		badRequest(c, "INVALID_OPTIONS", err)
		return
	}

	items := make([]menuval.MenuItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = menuval.CleanItem(it)
	}

	rows, report, err := s.proc.Process(c.Request.Context(), items, opts)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProcessResponse{Rows: rows, Report: report})
}

func batchOptions(req ProcessRequest) (menuval.BatchOptions, error) {
	sheet, err := menuval.ParseSheetType(req.Sheet)
	if err != nil {
		return menuval.BatchOptions{}, err
	}
	mode, err := menuval.ParseMode(req.Mode)
	if err != nil {
		return menuval.BatchOptions{}, err
	}
	opts := menuval.BatchOptions{Sheet: sheet, Mode: mode}
	if req.SourceLang != "" {
		if opts.Source, err = menuval.ParseLanguage(req.SourceLang); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (s *Server) respondError(c *gin.Context, err error) {
	var inputErr *menuval.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "INVALID_INPUT", Message: err.Error()})
	case c.Request.Context().Err() != nil:
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "CANCELLED", Message: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL", Message: err.Error()})
	}
}
