package mocks

import (
	"context"

	"maple-blog/internal/service/email"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNewCommentEmail(ctx context.Context, toEmail string, notice email.NewCommentNotice) error {
	args := m.Called(ctx, toEmail, notice)
	return args.Error(0)
}
