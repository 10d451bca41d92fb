package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
)

// Cache keys for the public list endpoints. Writes invalidate the key for
// their entity so public reads stay cheap.
const (
	cacheKeyServices     = "content:services"
	cacheKeyCoreValues   = "content:core_values"
	cacheKeySocialMedia  = "content:social_media"
	cacheKeyLeadership   = "content:leadership"
	cacheKeyHeroDiscount = "content:hero_discount"
)

// Service manages the static site content with a read-through cache on the
// public list endpoints.
type Service interface {
	CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.ClinicService, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.ClinicService, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ListServices(ctx context.Context) ([]*model.ClinicService, error)

	CreateCoreValue(ctx context.Context, req *model.CreateCoreValueRequest) (*model.CoreValue, error)
	UpdateCoreValue(ctx context.Context, id uuid.UUID, req *model.UpdateCoreValueRequest) (*model.CoreValue, error)
	DeleteCoreValue(ctx context.Context, id uuid.UUID) error
	ListCoreValues(ctx context.Context) ([]*model.CoreValue, error)

	CreateSocialMedia(ctx context.Context, req *model.CreateSocialMediaRequest) (*model.SocialMedia, error)
	UpdateSocialMedia(ctx context.Context, id uuid.UUID, req *model.UpdateSocialMediaRequest) (*model.SocialMedia, error)
	DeleteSocialMedia(ctx context.Context, id uuid.UUID) error
	ListSocialMedia(ctx context.Context) ([]*model.SocialMedia, error)

	CreateLeadershipTeam(ctx context.Context, req *model.CreateLeadershipTeamRequest) (*model.LeadershipTeam, error)
	UpdateLeadershipTeam(ctx context.Context, id uuid.UUID, req *model.UpdateLeadershipTeamRequest) (*model.LeadershipTeam, error)
	DeleteLeadershipTeam(ctx context.Context, id uuid.UUID) error
	ListLeadershipTeam(ctx context.Context) ([]*model.LeadershipTeam, error)

	GetHeroDiscount(ctx context.Context) (*model.HeroDiscount, error)
	UpdateHeroDiscount(ctx context.Context, req *model.UpdateHeroDiscountRequest) (*model.HeroDiscount, error)
}

type service struct {
	content repository.ContentRepository
	doctors repository.DoctorRepository
	cache   *gocache.Cache
	logger  *logger.Logger
}

func NewService(
	content repository.ContentRepository,
	doctors repository.DoctorRepository,
	log *logger.Logger,
) Service {
	return &service{
		content: content,
		doctors: doctors,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		logger:  log,
	}
}

// Services

func (s *service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.ClinicService, error) {
	svc := &model.ClinicService{
		Base:        model.Base{ID: uuid.New()},
		Title:       req.Title,
		Description: req.Description,
		Perks:       req.Perks,
		BookVia:     req.BookVia,
	}
	if svc.Perks == nil {
		svc.Perks = []string{}
	}
	if err := s.content.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyServices)
	return svc, nil
}

func (s *service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.ClinicService, error) {
	svc, err := s.content.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Perks != nil {
		svc.Perks = req.Perks
	}
	if req.BookVia != nil {
		svc.BookVia = *req.BookVia
	}
	if err := s.content.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyServices)
	return svc, nil
}

func (s *service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeleteService(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeyServices)
	return nil
}

func (s *service) ListServices(ctx context.Context) ([]*model.ClinicService, error) {
	if cached, ok := s.cache.Get(cacheKeyServices); ok {
		return cached.([]*model.ClinicService), nil
	}
	services, err := s.content.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyServices, services)
	return services, nil
}

// Core values

func (s *service) CreateCoreValue(ctx context.Context, req *model.CreateCoreValueRequest) (*model.CoreValue, error) {
	cv := &model.CoreValue{
		Base:        model.Base{ID: uuid.New()},
		IconURL:     req.IconURL,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.content.CreateCoreValue(ctx, cv); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyCoreValues)
	return cv, nil
}

func (s *service) UpdateCoreValue(ctx context.Context, id uuid.UUID, req *model.UpdateCoreValueRequest) (*model.CoreValue, error) {
	cv, err := s.content.GetCoreValue(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IconURL != nil {
		cv.IconURL = *req.IconURL
	}
	if req.Title != nil {
		cv.Title = *req.Title
	}
	if req.Description != nil {
		cv.Description = *req.Description
	}
	if err := s.content.UpdateCoreValue(ctx, cv); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyCoreValues)
	return cv, nil
}

func (s *service) DeleteCoreValue(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeleteCoreValue(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeyCoreValues)
	return nil
}

func (s *service) ListCoreValues(ctx context.Context) ([]*model.CoreValue, error) {
	if cached, ok := s.cache.Get(cacheKeyCoreValues); ok {
		return cached.([]*model.CoreValue), nil
	}
	values, err := s.content.ListCoreValues(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyCoreValues, values)
	return values, nil
}

// Social media

func (s *service) CreateSocialMedia(ctx context.Context, req *model.CreateSocialMediaRequest) (*model.SocialMedia, error) {
	sm := &model.SocialMedia{
		Base:    model.Base{ID: uuid.New()},
		Title:   req.Title,
		IconURL: req.IconURL,
		Href:    req.Href,
	}
	if err := s.content.CreateSocialMedia(ctx, sm); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeySocialMedia)
	return sm, nil
}

func (s *service) UpdateSocialMedia(ctx context.Context, id uuid.UUID, req *model.UpdateSocialMediaRequest) (*model.SocialMedia, error) {
	sm, err := s.content.GetSocialMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		sm.Title = *req.Title
	}
	if req.IconURL != nil {
		sm.IconURL = *req.IconURL
	}
	if req.Href != nil {
		sm.Href = *req.Href
	}
	if err := s.content.UpdateSocialMedia(ctx, sm); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeySocialMedia)
	return sm, nil
}

func (s *service) DeleteSocialMedia(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeleteSocialMedia(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeySocialMedia)
	return nil
}

func (s *service) ListSocialMedia(ctx context.Context) ([]*model.SocialMedia, error) {
	if cached, ok := s.cache.Get(cacheKeySocialMedia); ok {
		return cached.([]*model.SocialMedia), nil
	}
	links, err := s.content.ListSocialMedia(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeySocialMedia, links)
	return links, nil
}

// Leadership team

func (s *service) CreateLeadershipTeam(ctx context.Context, req *model.CreateLeadershipTeamRequest) (*model.LeadershipTeam, error) {
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return nil, apperrors.Validation("invalid member id", err)
	}
	if _, err := s.doctors.Get(ctx, memberID); err != nil {
		return nil, err
	}

	lt := &model.LeadershipTeam{
		Base:        model.Base{ID: uuid.New()},
		Designation: req.Designation,
		MemberID:    memberID,
	}
	if err := s.content.CreateLeadershipTeam(ctx, lt); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyLeadership)
	return lt, nil
}

func (s *service) UpdateLeadershipTeam(ctx context.Context, id uuid.UUID, req *model.UpdateLeadershipTeamRequest) (*model.LeadershipTeam, error) {
	lt, err := s.content.GetLeadershipTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Designation != nil {
		lt.Designation = *req.Designation
	}
	if req.MemberID != nil {
		memberID, err := uuid.Parse(*req.MemberID)
		if err != nil {
			return nil, apperrors.Validation("invalid member id", err)
		}
		if _, err := s.doctors.Get(ctx, memberID); err != nil {
			return nil, err
		}
		lt.MemberID = memberID
	}
	if err := s.content.UpdateLeadershipTeam(ctx, lt); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyLeadership)
	return lt, nil
}

func (s *service) DeleteLeadershipTeam(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeleteLeadershipTeam(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeyLeadership)
	return nil
}

// ListLeadershipTeam expands each entry's doctor. An entry whose doctor has
// since been removed is returned without the member body.
func (s *service) ListLeadershipTeam(ctx context.Context) ([]*model.LeadershipTeam, error) {
	if cached, ok := s.cache.Get(cacheKeyLeadership); ok {
		return cached.([]*model.LeadershipTeam), nil
	}
	entries, err := s.content.ListLeadershipTeam(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		member, err := s.doctors.Get(ctx, entry.MemberID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		entry.Member = member
	}
	s.cache.SetDefault(cacheKeyLeadership, entries)
	return entries, nil
}

// Hero discount

func (s *service) GetHeroDiscount(ctx context.Context) (*model.HeroDiscount, error) {
	if cached, ok := s.cache.Get(cacheKeyHeroDiscount); ok {
		return cached.(*model.HeroDiscount), nil
	}
	hd, err := s.content.GetHeroDiscount(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKeyHeroDiscount, hd)
	return hd, nil
}

// UpdateHeroDiscount upserts the singleton banner row.
func (s *service) UpdateHeroDiscount(ctx context.Context, req *model.UpdateHeroDiscountRequest) (*model.HeroDiscount, error) {
	hd, err := s.content.GetHeroDiscount(ctx)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		hd = &model.HeroDiscount{Base: model.Base{ID: uuid.New()}}
	}
	if req.Discount != nil {
		hd.Discount = *req.Discount
	}
	if req.IsActive != nil {
		hd.IsActive = *req.IsActive
	}
	if err := s.content.UpsertHeroDiscount(ctx, hd); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyHeroDiscount)
	return hd, nil
}
