package services

import (
	"context"
	"errors"
	"strings"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
)

type ComplaintService struct {
	ComplaintRepo *repositories.ComplaintRepository
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	if strings.TrimSpace(c.Reason) == "" {
		return models.Complaint{}, errors.New("reason is required")
	}
	if c.ListingID == nil && c.TargetUserID == nil {
		return models.Complaint{}, errors.New("complaint must target a listing or a user")
	}
	if c.ListingID != nil {
		if c.ListingType == nil || (*c.ListingType != "property" && *c.ListingType != "service") {
			return models.Complaint{}, errors.New("listing_type must be property or service")
		}
	}
	return s.ComplaintRepo.CreateComplaint(ctx, c)
}

func (s *ComplaintService) GetComplaints(ctx context.Context, onlyOpen bool) ([]models.Complaint, error) {
	return s.ComplaintRepo.GetComplaints(ctx, onlyOpen)
}

func (s *ComplaintService) ResolveComplaint(ctx context.Context, id int) error {
	return s.ComplaintRepo.ResolveComplaint(ctx, id)
}

func (s *ComplaintService) DeleteComplaint(ctx context.Context, id int) error {
	return s.ComplaintRepo.DeleteComplaint(ctx, id)
}
