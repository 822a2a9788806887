package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var shortcodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{5}$`)

type LinkServiceSuite struct {
	suite.Suite
	service *LinkService
}

func (s *LinkServiceSuite) SetupTest() {
	repo := memstore.NewLinkRepo(memory.NewMemStorage())
	s.service = NewLinkService(repo, zap.NewNop())
}

func (s *LinkServiceSuite) testClick() models.Click {
	return models.Click{
		Timestamp:  time.Now().UTC(),
		Referrer:   "unknown",
		ClientAddr: "10.0.0.1",
	}
}

func (s *LinkServiceSuite) TestCreate_GeneratedShortcode() {
	target := gofakeit.URL()

	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          target,
		ValidityMinutes: models.DefaultValidityMinutes,
	})
	s.Require().NoError(err)

	s.Regexp(shortcodeRegex, link.Shortcode)
	s.Equal(target, link.Target)
	s.Empty(link.Clicks)
	s.WithinDuration(time.Now().UTC().Add(30*time.Minute), link.ExpiresAt, 5*time.Second)
}

func (s *LinkServiceSuite) TestCreate_ExplicitShortcode() {
	target := gofakeit.URL()

	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          target,
		ValidityMinutes: models.DefaultValidityMinutes,
		Shortcode:       "dup",
	})
	s.Require().NoError(err)
	s.Equal("dup", link.Shortcode)

	// повторное создание с тем же кодом не должно затронуть первую запись
	_, dupErr := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          gofakeit.URL(),
		ValidityMinutes: models.DefaultValidityMinutes,
		Shortcode:       "dup",
	})
	s.Require().ErrorIs(dupErr, ErrDuplicateShortcode)

	got, statsErr := s.service.Stats(s.T().Context(), "dup")
	s.Require().NoError(statsErr)
	s.Equal(target, got.Target)
	s.Empty(got.Clicks)
}

func (s *LinkServiceSuite) TestResolve() {
	target := gofakeit.URL()

	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          target,
		ValidityMinutes: models.DefaultValidityMinutes,
	})
	s.Require().NoError(err)

	const resolves = 3
	for i := 1; i <= resolves; i++ {
		resolved, resolveErr := s.service.Resolve(s.T().Context(), link.Shortcode, s.testClick())
		s.Require().NoError(resolveErr)
		s.Equal(target, resolved.Target)
		s.Len(resolved.Clicks, i)
	}

	got, statsErr := s.service.Stats(s.T().Context(), link.Shortcode)
	s.Require().NoError(statsErr)
	s.Len(got.Clicks, resolves)
}

func (s *LinkServiceSuite) TestResolve_NotFound() {
	_, err := s.service.Resolve(s.T().Context(), "missing", s.testClick())
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *LinkServiceSuite) TestResolve_Expired() {
	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          gofakeit.URL(),
		ValidityMinutes: -1,
	})
	s.Require().NoError(err)

	_, resolveErr := s.service.Resolve(s.T().Context(), link.Shortcode, s.testClick())
	s.Require().ErrorIs(resolveErr, ErrLinkExpired)

	// клик по истекшей ссылке не фиксируется, статистика при этом доступна
	got, statsErr := s.service.Stats(s.T().Context(), link.Shortcode)
	s.Require().NoError(statsErr)
	s.Empty(got.Clicks)
}

func (s *LinkServiceSuite) TestResolve_ExpiryBoundary() {
	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          gofakeit.URL(),
		ValidityMinutes: models.DefaultValidityMinutes,
	})
	s.Require().NoError(err)

	// ровно в момент expiresAt ссылка еще действительна
	atExpiry := s.testClick()
	atExpiry.Timestamp = link.ExpiresAt
	_, okErr := s.service.Resolve(s.T().Context(), link.Shortcode, atExpiry)
	s.Require().NoError(okErr)

	pastExpiry := s.testClick()
	pastExpiry.Timestamp = link.ExpiresAt.Add(time.Nanosecond)
	_, expiredErr := s.service.Resolve(s.T().Context(), link.Shortcode, pastExpiry)
	s.Require().ErrorIs(expiredErr, ErrLinkExpired)
}

func (s *LinkServiceSuite) TestStats_NotFound() {
	_, err := s.service.Stats(s.T().Context(), "missing")
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *LinkServiceSuite) TestStats_ClickLogOrder() {
	link, err := s.service.Create(s.T().Context(), CreateLinkParams{
		Target:          gofakeit.URL(),
		ValidityMinutes: models.DefaultValidityMinutes,
	})
	s.Require().NoError(err)

	referrers := []string{"https://a.com", "unknown", "https://b.com"}
	for _, ref := range referrers {
		click := s.testClick()
		click.Referrer = ref
		_, resolveErr := s.service.Resolve(s.T().Context(), link.Shortcode, click)
		s.Require().NoError(resolveErr)
	}

	got, statsErr := s.service.Stats(s.T().Context(), link.Shortcode)
	s.Require().NoError(statsErr)
	s.Require().Len(got.Clicks, len(referrers))
	for i, ref := range referrers {
		s.Equal(ref, got.Clicks[i].Referrer)
	}
}

func TestLinkServiceSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceSuite))
}

func TestGenerateShortcode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		code, err := generateShortcode(models.ShortcodeLength)
		if err != nil {
			t.Fatal(err)
		}
		if !shortcodeRegex.MatchString(code) {
			t.Errorf("generateShortcode() = %q, want match %s", code, shortcodeRegex)
		}
		seen[code] = struct{}{}
	}
	// 100 кодов из 62^5 вариантов практически не могут совпасть
	if len(seen) < 99 {
		t.Errorf("generateShortcode() produced %d unique codes out of 100", len(seen))
	}
}
