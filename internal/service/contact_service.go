package service

import (
	"context"

	"portfolio-service/internal/entity"
)

type ContactRepository interface {
	CreateContact(ctx context.Context, in entity.ContactInfoInput) (*entity.ContactInfo, error)
	UpdateContact(ctx context.Context, id int, in entity.ContactInfoInput) (*entity.ContactInfo, error)
	DeleteContact(ctx context.Context, id int) (*entity.ContactInfo, error)
}

type ContactService struct {
	repo   ContactRepository
	events changeNotifier
}

func NewContactService(repo ContactRepository, pub EventPublisher) *ContactService {
	return &ContactService{repo: repo, events: newChangeNotifier("contact", pub)}
}

func (s *ContactService) CreateContact(ctx context.Context, in entity.ContactInfoInput) (*entity.ContactInfo, error) {
	contact, err := s.repo.CreateContact(ctx, in)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating contact")
		return nil, err
	}

	s.events.notify(ctx, "created", contact.ID, contact)
	return contact, nil
}

func (s *ContactService) UpdateContact(ctx context.Context, id int, in entity.ContactInfoInput) (*entity.ContactInfo, error) {
	contact, err := s.repo.UpdateContact(ctx, id, in)
	if err != nil {
		logUnexpected(err, "Error updating contact %d", id)
		return nil, err
	}

	s.events.notify(ctx, "updated", contact.ID, contact)
	return contact, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id int) (*entity.ContactInfo, error) {
	contact, err := s.repo.DeleteContact(ctx, id)
	if err != nil {
		logUnexpected(err, "Error deleting contact %d", id)
		return nil, err
	}

	s.events.notify(ctx, "deleted", contact.ID, contact)
	return contact, nil
}
