package memstore

import (
	"context"
	"fmt"

	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/models"
)

// LinkRepo представляет собой репозиторий коротких ссылок поверх хранилища в памяти.
// Ключом записи выступает shortcode. Записи никогда не удаляются: реестр живет
// столько же, сколько и процесс.
type LinkRepo struct {
	s *memory.MStorage
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
func NewLinkRepo(store *memory.MStorage) *LinkRepo {
	return &LinkRepo{
		s: store,
	}
}

// Create создает запись ссылки. Если shortcode уже занят (в том числе истекшей
// ссылкой), вернется ошибка repositories.ErrDuplicateKey и запись не изменится.
func (r *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := memory.Set[models.Link](ctx, link.Shortcode, link, r.s); err != nil {
		return fmt.Errorf(
			"failed to create record `%s`: %w",
			link.Shortcode, convertErrorType(err),
		)
	}
	return nil
}

// GetByShortcode получает ссылку по её коду.
func (r *LinkRepo) GetByShortcode(ctx context.Context, shortcode string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, shortcode, r.s)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by shortcode %s: %w",
			shortcode, convertErrorType(err),
		)
	}
	return link, nil
}

// AppendClick атомарно дописывает клик в журнал переходов ссылки и возвращает
// обновленную запись. Журнал только растет, порядок вставки сохраняется.
func (r *LinkRepo) AppendClick(ctx context.Context, shortcode string, click models.Click) (*models.Link, error) {
	link, err := memory.Update[models.Link](ctx, shortcode, r.s, func(l *models.Link) error {
		l.Clicks = append(l.Clicks, click)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to append click to record %s: %w",
			shortcode, convertErrorType(err),
		)
	}
	return link, nil
}
