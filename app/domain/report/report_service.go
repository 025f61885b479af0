package report

import (
	"context"
	"strings"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/common"
)

const maxSubjectLength = 255

type ReportService struct {
	repo ReportRepository
	now  func() time.Time
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo, now: time.Now}
}

func (s *ReportService) List(ctx context.Context, userID uint) ([]*Report, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *ReportService) Add(ctx context.Context, userID uint, subject string, description string) (*Report, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return nil, common.NewValidationError("subject and description are required", "d3a8f1c6-4e2b-4b7d-9c5a-1f6e8b2d0c47")
	}
	if len(subject) > maxSubjectLength {
		return nil, common.NewValidationError("subject is too long", "6f2b9e4a-8c1d-4a3f-b7e6-2d5c0a9f1e38")
	}
	r := &Report{
		UserID:      userID,
		Subject:     subject,
		Description: description,
		Date:        s.now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
