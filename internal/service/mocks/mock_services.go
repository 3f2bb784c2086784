package mocks

import (
	"context"
	"time"

	"abcip/internal/model"
	"abcip/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockPublicationService struct {
	mock.Mock
}

func (m *MockPublicationService) List(ctx context.Context, activeOnly bool) ([]model.Publication, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationService) Get(ctx context.Context, id string) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Save(ctx context.Context, p *model.Publication, file, cover *service.Upload) (*model.Publication, error) {
	args := m.Called(ctx, p, file, cover)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPublicationService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Site(ctx context.Context) (*model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsService) SaveSite(ctx context.Context, s *model.SiteSettings, logo, favicon *service.Upload) (*model.SiteSettings, error) {
	args := m.Called(ctx, s, logo, favicon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsService) Footer(ctx context.Context) (*model.FooterSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FooterSettings), args.Error(1)
}

func (m *MockSettingsService) SaveFooter(ctx context.Context, f *model.FooterSettings) (*model.FooterSettings, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FooterSettings), args.Error(1)
}

func (m *MockSettingsService) PageBanner(ctx context.Context, page model.PageKey) (*model.PageBanner, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PageBanner), args.Error(1)
}

func (m *MockSettingsService) SavePageBanner(ctx context.Context, b *model.PageBanner, image *service.Upload) (*model.PageBanner, error) {
	args := m.Called(ctx, b, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PageBanner), args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context, limit, offset int) (*service.MessageListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MessageListResult), args.Error(1)
}

func (m *MockContactService) MarkRead(ctx context.Context, id string, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}

func (m *MockContactService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Verify(token string) (*service.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	args := m.Called(ctx, email, password, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) TTL() time.Duration {
	return time.Hour
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, q string) (*service.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

var (
	_ service.PublicationService = (*MockPublicationService)(nil)
	_ service.SettingsService    = (*MockSettingsService)(nil)
	_ service.ContactService     = (*MockContactService)(nil)
	_ service.AuthService        = (*MockAuthService)(nil)
	_ service.SearchService      = (*MockSearchService)(nil)
	_ service.DashboardService   = (*MockDashboardService)(nil)
)
