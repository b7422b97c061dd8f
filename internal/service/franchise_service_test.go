package service

import (
	"errors"
	"testing"

	"github.com/petes-coffee/api/internal/config"
	"github.com/petes-coffee/api/internal/models"
	"github.com/petes-coffee/api/internal/queue"
	"github.com/petes-coffee/api/internal/repository"
)

type fakeInquiryRepo struct {
	entries []models.FranchiseInquiry
	fail    error
}

func (f *fakeInquiryRepo) Create(inquiry *models.FranchiseInquiry) error {
	if f.fail != nil {
		return f.fail
	}
	f.entries = append(f.entries, *inquiry)
	return nil
}

func (f *fakeInquiryRepo) List(int) ([]models.FranchiseInquiry, error) {
	return f.entries, nil
}

func newTestFranchiseService(t *testing.T, repo *fakeInquiryRepo, email *fakeEmailSender) *FranchiseService {
	t.Helper()
	qc, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client: %v", err)
	}
	notifier := NewNotificationService(email, &fakeWhatsAppSender{}, nil)
	var inquiryRepo repository.FranchiseInquiryRepository
	if repo != nil {
		inquiryRepo = repo
	}
	return NewFranchiseService(inquiryRepo, notifier, qc)
}

func TestFranchiseSubmit(t *testing.T) {
	repo := &fakeInquiryRepo{}
	email := &fakeEmailSender{configured: true}
	svc := newTestFranchiseService(t, repo, email)

	result, err := svc.Submit(FranchiseInquiryInput{
		Name:       "  Nora ",
		Email:      "nora@example.com",
		Location:   "Austin, TX",
		Investment: "250,000",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Inquiry == nil || result.Inquiry.Name != "Nora" {
		t.Fatalf("result inquiry = %+v", result.Inquiry)
	}
	if !result.Notification.Success {
		t.Fatalf("notification = %+v, want success", result.Notification)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	got := repo.entries[0]
	if got.Name != "Nora" {
		t.Fatalf("name = %q, want trimmed", got.Name)
	}
	if got.Investment == nil || got.Investment.String() != "250000" {
		t.Fatalf("investment = %v", got.Investment)
	}
	if len(email.sent) != 1 || email.sent[0] != "franchise" {
		t.Fatalf("sent = %v, want [franchise]", email.sent)
	}
}

func TestFranchiseSubmitValidation(t *testing.T) {
	svc := newTestFranchiseService(t, &fakeInquiryRepo{}, &fakeEmailSender{})

	cases := []struct {
		input FranchiseInquiryInput
		want  error
	}{
		{FranchiseInquiryInput{Email: "a@b.c", Location: "X"}, ErrInquiryNameRequired},
		{FranchiseInquiryInput{Name: "N", Location: "X"}, ErrInquiryEmailRequired},
		{FranchiseInquiryInput{Name: "N", Email: "a@b.c"}, ErrInquiryLocationRequired},
		{FranchiseInquiryInput{Name: "N", Email: "a@b.c", Location: "X", Investment: "lots"}, ErrInvalidInvestment},
		{FranchiseInquiryInput{Name: "N", Email: "a@b.c", Location: "X", Investment: "-5"}, ErrInvalidInvestment},
	}
	for i, tc := range cases {
		if _, err := svc.Submit(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: err = %v, want %v", i, err, tc.want)
		}
	}
}

func TestFranchiseSubmitSucceedsWhenEmailDown(t *testing.T) {
	repo := &fakeInquiryRepo{}
	svc := newTestFranchiseService(t, repo, &fakeEmailSender{configured: false})

	result, err := svc.Submit(FranchiseInquiryInput{Name: "N", Email: "a@b.c", Location: "X"})
	if err != nil {
		t.Fatalf("submit should succeed when email unconfigured: %v", err)
	}
	if result.Notification.Success {
		t.Fatalf("notification = %+v, want failure when email unconfigured", result.Notification)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
}

func TestFranchiseSubmitWithoutRepo(t *testing.T) {
	svc := newTestFranchiseService(t, nil, &fakeEmailSender{configured: true})
	// file 驱动下 repo 为 nil，只转发邮件
	result, err := svc.Submit(FranchiseInquiryInput{Name: "N", Email: "a@b.c", Location: "X"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Inquiry == nil {
		t.Fatalf("expected inquiry echo even without repository")
	}
}
