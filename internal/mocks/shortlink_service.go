package mocks

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"
)

type ShortLinkService struct {
	mock.Mock
}

func (m *ShortLinkService) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *ShortLinkService) Get(ctx context.Context, longURL, slug string) (string, error) {
	args := m.Called(ctx, longURL, slug)
	return args.String(0), args.Error(1)
}

func (m *ShortLinkService) Report(ctx context.Context, report string, query url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, report, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *ShortLinkService) TotalViews(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
