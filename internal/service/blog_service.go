package service

import (
	"context"

	"portfolio-service/internal/entity"
)

type BlogRepository interface {
	CreateBlog(ctx context.Context, in entity.BlogInput) (*entity.Blog, error)
	GetBlogs(ctx context.Context) ([]*entity.Blog, error)
	GetBlogByID(ctx context.Context, id int) (*entity.Blog, error)
	UpdateBlog(ctx context.Context, id int, in entity.BlogInput) (*entity.Blog, error)
	DeleteBlog(ctx context.Context, id int) (*entity.Blog, error)
	DeleteAllBlogs(ctx context.Context) error
}

type BlogService struct {
	repo   BlogRepository
	events changeNotifier
}

func NewBlogService(repo BlogRepository, pub EventPublisher) *BlogService {
	return &BlogService{repo: repo, events: newChangeNotifier("blog", pub)}
}

func (s *BlogService) CreateBlog(ctx context.Context, in entity.BlogInput) (*entity.Blog, error) {
	blog, err := s.repo.CreateBlog(ctx, in)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating blog")
		return nil, err
	}

	s.events.notify(ctx, "created", blog.ID, blog)
	return blog, nil
}

func (s *BlogService) GetBlogs(ctx context.Context) ([]*entity.Blog, error) {
	blogs, err := s.repo.GetBlogs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting blogs")
		return nil, err
	}
	return blogs, nil
}

func (s *BlogService) GetBlog(ctx context.Context, id int) (*entity.Blog, error) {
	blog, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		logUnexpected(err, "Error getting blog by ID %d", id)
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, id int, in entity.BlogInput) (*entity.Blog, error) {
	blog, err := s.repo.UpdateBlog(ctx, id, in)
	if err != nil {
		logUnexpected(err, "Error updating blog %d", id)
		return nil, err
	}

	s.events.notify(ctx, "updated", blog.ID, blog)
	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id int) (*entity.Blog, error) {
	blog, err := s.repo.DeleteBlog(ctx, id)
	if err != nil {
		logUnexpected(err, "Error deleting blog %d", id)
		return nil, err
	}

	s.events.notify(ctx, "deleted", blog.ID, blog)
	return blog, nil
}

func (s *BlogService) DeleteAllBlogs(ctx context.Context) error {
	if err := s.repo.DeleteAllBlogs(ctx); err != nil {
		logger.Error().Err(err).Msg("Error deleting all blogs")
		return err
	}

	s.events.notify(ctx, "cleared", 0, nil)
	return nil
}
