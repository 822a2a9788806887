package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"

	"github.com/gin-gonic/gin"
)

// LinkShortener описывает сервисный слой реестра коротких ссылок.
type LinkShortener interface {
	Create(ctx context.Context, params services.CreateLinkParams) (*models.Link, error)
	// Resolve находит ссылку и атомарно фиксирует переход.
	Resolve(ctx context.Context, shortcode string, click models.Click) (*models.Link, error)
	Stats(ctx context.Context, shortcode string) (*models.Link, error)
}

type createLinkRequest struct {
	URL       string `json:"url" binding:"required"`
	Validity  *int   `json:"validity"`
	Shortcode string `json:"shortcode"`
}

type createLinkResponse struct {
	ShortLink string `json:"shortLink"`
	Expiry    string `json:"expiry"`
}

type clickData struct {
	Timestamp string `json:"timestamp"`
	Referrer  string `json:"referrer"`
	IP        string `json:"ip"`
}

type statsResponse struct {
	URL         string      `json:"url"`
	Expiry      string      `json:"expiry"`
	TotalClicks int         `json:"total_clicks"`
	ClickData   []clickData `json:"click_data"`
}

type ShortLinkController struct {
	linkService LinkShortener
	baseURL     *url.URL
}

func NewShortLinkController(linkService LinkShortener, baseURL *url.URL) *ShortLinkController {
	return &ShortLinkController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// CreateShortLink принимает json запрос на создание короткой ссылки.
// Поле validity опционально (по умолчанию 30 минут), shortcode опционален
// (по умолчанию генерируется).
func (s *ShortLinkController) CreateShortLink(ctx *gin.Context) {
	var req createLinkRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": ErrInvalidRequestBody.Error()})
		return
	}

	validity := models.DefaultValidityMinutes
	if req.Validity != nil {
		validity = *req.Validity
	}

	link, createErr := s.linkService.Create(ctx.Request.Context(), services.CreateLinkParams{
		Target:          req.URL,
		ValidityMinutes: validity,
		Shortcode:       req.Shortcode,
	})
	if createErr != nil {
		if errors.Is(createErr, services.ErrDuplicateShortcode) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrDuplicateShortcode.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusOK, createLinkResponse{
		ShortLink: s.getShortLink(ctx.Request, link.Shortcode),
		Expiry:    link.ExpiresAt.Format(time.RFC3339),
	})
}

// Redirect находит ссылку по коду, фиксирует переход и перенаправляет на
// целевой адрес. Неизвестный код дает 404, истекший — 410.
func (s *ShortLinkController) Redirect(ctx *gin.Context) {
	shortcode := ctx.Param("shortcode")

	click := models.Click{
		Timestamp:  time.Now().UTC(),
		Referrer:   referrerOrUnknown(ctx.Request),
		ClientAddr: ctx.ClientIP(),
	}

	link, err := s.linkService.Resolve(ctx.Request.Context(), shortcode, click)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
		case errors.Is(err, services.ErrLinkExpired):
			ctx.JSON(http.StatusGone, gin.H{"error": ErrLinkExpired.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		}
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, link.Target)
}

// Stats отдает статистику переходов: целевой адрес, срок жизни, количество и
// полный журнал кликов в порядке вставки.
func (s *ShortLinkController) Stats(ctx *gin.Context) {
	shortcode := ctx.Param("shortcode")

	link, err := s.linkService.Stats(ctx.Request.Context(), shortcode)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	data := make([]clickData, 0, len(link.Clicks))
	for _, c := range link.Clicks {
		data = append(data, clickData{
			Timestamp: c.Timestamp.Format(time.RFC3339),
			Referrer:  c.Referrer,
			IP:        c.ClientAddr,
		})
	}

	ctx.JSON(http.StatusOK, statsResponse{
		URL:         link.Target,
		Expiry:      link.ExpiresAt.Format(time.RFC3339),
		TotalClicks: len(link.Clicks),
		ClickData:   data,
	})
}

// getShortLink вспомогательный метод который собирает полную короткую ссылку.
func (s *ShortLinkController) getShortLink(r *http.Request, shortcode string) string {
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if s.baseURL == nil {
		return fmt.Sprintf("%s://%s/%s", scheme, r.Host, shortcode)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, shortcode)
}

// referrerOrUnknown возвращает заголовок Referer запроса либо "unknown".
func referrerOrUnknown(r *http.Request) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return "unknown"
}
