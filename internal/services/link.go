package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// shortcodeAlphabet алфавит генерируемых кодов.
const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxGenerateAttempts предел повторных попыток генерации уникального кода.
const maxGenerateAttempts = 10

// LinkRepository описывает репозиторий для коротких ссылок.
type LinkRepository interface {
	// Create создает запись в хранилище. Занятый shortcode дает repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.Link) error
	// GetByShortcode находит в хранилище запись по коду ссылки.
	GetByShortcode(ctx context.Context, shortcode string) (*models.Link, error)
	// AppendClick атомарно дописывает клик в журнал записи.
	AppendClick(ctx context.Context, shortcode string, click models.Click) (*models.Link, error)
}

// CreateLinkParams параметры создания короткой ссылки.
type CreateLinkParams struct {
	// Target целевой адрес. Не валидируется: для реестра это непрозрачная строка.
	Target string
	// ValidityMinutes срок жизни в минутах. Ноль и отрицательные значения
	// допустимы и дают сразу истекшую ссылку.
	ValidityMinutes int
	// Shortcode желаемый код. Если пустой, код генерируется.
	Shortcode string
}

// LinkService сервис работает с реестром коротких ссылок.
type LinkService struct {
	linkRepo LinkRepository
	logger   *zap.Logger
}

func NewLinkService(linkRepo LinkRepository, logger *zap.Logger) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

// Create регистрирует новую короткую ссылку и возвращает её запись.
//
// Явно заданный код используется как есть: если он занят, вернется ошибка
// ErrDuplicateShortcode и реестр не изменится. Для сгенерированных кодов
// выполняется ограниченное число повторных попыток на случай коллизии.
func (s *LinkService) Create(ctx context.Context, params CreateLinkParams) (*models.Link, error) {
	now := time.Now().UTC()

	if params.Shortcode != "" {
		link, err := s.create(ctx, params.Shortcode, params, now)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return nil, errors.Wrapf(ErrDuplicateShortcode, "shortcode %s", params.Shortcode)
			}
			return nil, ErrUnknown
		}
		return link, nil
	}

	for range maxGenerateAttempts {
		code, genErr := generateShortcode(models.ShortcodeLength)
		if genErr != nil {
			return nil, ErrUnknown
		}

		link, createErr := s.create(ctx, code, params, now)
		if createErr != nil {
			if errors.Is(createErr, repositories.ErrDuplicateKey) {
				continue
			}
			return nil, ErrUnknown
		}
		return link, nil
	}
	return nil, errors.Wrap(ErrUnknown, "generateShortcode loop limit")
}

func (s *LinkService) create(ctx context.Context, shortcode string, params CreateLinkParams, now time.Time) (*models.Link, error) {
	link := models.Link{
		Shortcode: shortcode,
		Target:    params.Target,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(params.ValidityMinutes) * time.Minute),
		Clicks:    []models.Click{},
	}
	if err := s.linkRepo.Create(ctx, &link); err != nil {
		return nil, err //nolint:wrapcheck
	}

	s.logger.Info("Short link created",
		zap.String("shortcode", link.Shortcode),
		zap.String("target", link.Target),
		zap.Time("expiresAt", link.ExpiresAt),
	)
	return &link, nil
}

// Resolve находит ссылку по коду и атомарно фиксирует переход.
//
// Истекшая ссылка остается в реестре: её код не освобождается, а все
// последующие вызовы возвращают ErrLinkExpired. Клик по истекшей ссылке
// не дописывается. Моментом перехода считается click.Timestamp.
func (s *LinkService) Resolve(ctx context.Context, shortcode string, click models.Click) (*models.Link, error) {
	link, err := s.linkRepo.GetByShortcode(ctx, shortcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "shortcode %s not found", shortcode)
		}
		return nil, ErrUnknown
	}

	// expiresAt неизменяем после создания, поэтому проверка не может устареть
	// между чтением и дописыванием клика.
	if link.IsExpired(click.Timestamp) {
		return nil, errors.Wrapf(ErrLinkExpired, "shortcode %s", shortcode)
	}

	updated, appendErr := s.linkRepo.AppendClick(ctx, shortcode, click)
	if appendErr != nil {
		if errors.Is(appendErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "shortcode %s not found", shortcode)
		}
		return nil, ErrUnknown
	}

	s.logger.Info("Redirect requested",
		zap.String("shortcode", shortcode),
		zap.String("target", updated.Target),
	)
	return updated, nil
}

// Stats возвращает запись ссылки вместе с полным журналом переходов.
// Срок жизни не проверяется: статистика доступна и для истекших ссылок.
func (s *LinkService) Stats(ctx context.Context, shortcode string) (*models.Link, error) {
	link, err := s.linkRepo.GetByShortcode(ctx, shortcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "shortcode %s not found", shortcode)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// generateShortcode генерирует случайный код заданной длины из алфавита [A-Za-z0-9].
func generateShortcode(length int) (string, error) {
	alphabetLen := big.NewInt(int64(len(shortcodeAlphabet)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random index")
		}
		b[i] = shortcodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
