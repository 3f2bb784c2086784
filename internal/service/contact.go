package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"abcip/internal/model"
	"abcip/internal/repository"
)

const (
	DefaultMessagesPerPage = 20
	maxMessageLength       = 5000
)

// MessageListResult is a page of contact messages.
type MessageListResult struct {
	Items []model.ContactMessage `json:"data"`
	Total int                    `json:"total"`
}

type ContactService interface {
	// Submit validates and stores a contact form submission.
	Submit(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)
	List(ctx context.Context, limit, offset int) (*MessageListResult, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func (s *contactService) Submit(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Company = strings.TrimSpace(m.Company)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	if err := required("name", m.Name); err != nil {
		return nil, err
	}
	if err := required("email", m.Email); err != nil {
		return nil, err
	}
	if !validEmail(m.Email) {
		return nil, fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	if err := required("message", m.Message); err != nil {
		return nil, err
	}
	if len([]rune(m.Message)) > maxMessageLength {
		return nil, fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, maxMessageLength)
	}
	return s.repo.Create(ctx, m)
}

func (s *contactService) List(ctx context.Context, limit, offset int) (*MessageListResult, error) {
	if limit <= 0 {
		limit = DefaultMessagesPerPage
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MessageListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *contactService) MarkRead(ctx context.Context, id string, read bool) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.MarkRead(ctx, id, read))
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}
