package smocks

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"

	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (m *LinkMock) Create(ctx context.Context, params services.CreateLinkParams) (*models.Link, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkMock) Resolve(ctx context.Context, shortcode string, click models.Click) (*models.Link, error) {
	args := m.Called(ctx, shortcode, click)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkMock) Stats(ctx context.Context, shortcode string) (*models.Link, error) {
	args := m.Called(ctx, shortcode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}
