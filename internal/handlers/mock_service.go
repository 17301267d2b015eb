package handlers

import (
	"context"

	"lostfound/internal/models"
	"lostfound/internal/service"
)

// ---- Service Mocks ----

type mockAccount struct {
	registerID  int
	registerErr error
	authID      int
	authErr     error
	user        *models.User
	issueToken  string
	issueErr    error
	consumeErr  error

	lastRegisterEmail string
	lastAuthEmail     string
	lastIssueEmail    string
	lastConsumeToken  string
}

func (m *mockAccount) Register(_ context.Context, name, email, password string) (int, error) {
	m.lastRegisterEmail = email
	return m.registerID, m.registerErr
}

func (m *mockAccount) Authenticate(_ context.Context, email, password string) (int, error) {
	m.lastAuthEmail = email
	return m.authID, m.authErr
}

func (m *mockAccount) UserByID(_ context.Context, id int) (*models.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockAccount) IssueResetToken(_ context.Context, email string) (string, error) {
	m.lastIssueEmail = email
	return m.issueToken, m.issueErr
}

func (m *mockAccount) ConsumeResetToken(_ context.Context, token, newPassword, confirmPassword string) error {
	m.lastConsumeToken = token
	return m.consumeErr
}

type mockRegistry struct {
	createID       int
	createErr      error
	mine           []models.Item
	recent         []models.Item
	stats          models.Stats
	item           *models.Item
	getErr         error
	toggleResolved bool
	toggleErr      error
	deleteErr      error

	lastCreate      service.CreateItemParams
	toggleCalls     int
	deleteCalls     int
	lastToggleID    int
	lastRequesterID int
}

func (m *mockRegistry) Create(_ context.Context, p service.CreateItemParams) (int, error) {
	m.lastCreate = p
	return m.createID, m.createErr
}

func (m *mockRegistry) ListMine(_ context.Context, ownerID int) ([]models.Item, error) {
	return m.mine, nil
}

func (m *mockRegistry) ListRecent(_ context.Context) ([]models.Item, error) {
	return m.recent, nil
}

func (m *mockRegistry) Stats(_ context.Context, requesterID int) (models.Stats, error) {
	return m.stats, nil
}

func (m *mockRegistry) Get(_ context.Context, id int) (*models.Item, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.item == nil || m.item.ID != id {
		return nil, service.ErrNotFound
	}
	return m.item, nil
}

func (m *mockRegistry) ToggleResolved(_ context.Context, id, requesterID int) (bool, error) {
	m.toggleCalls++
	m.lastToggleID = id
	m.lastRequesterID = requesterID
	return m.toggleResolved, m.toggleErr
}

func (m *mockRegistry) Delete(_ context.Context, id, requesterID int) error {
	m.deleteCalls++
	m.lastRequesterID = requesterID
	return m.deleteErr
}
