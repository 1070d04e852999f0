package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/commently/commently/internal/dbx"
	"github.com/commently/commently/internal/logging"
	"github.com/commently/commently/internal/server/auth"
	"github.com/commently/commently/internal/server/config"
	"github.com/commently/commently/internal/server/models"
	commentsrepo "github.com/commently/commently/internal/server/repositories/comments"
	usersrepo "github.com/commently/commently/internal/server/repositories/users"
	"github.com/commently/commently/internal/server/services"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeManager struct {
	users    usersrepo.Repository
	comments commentsrepo.Repository
}

func (f *fakeManager) Users(db dbx.DBTX) usersrepo.Repository       { return f.users }
func (f *fakeManager) Comments(db dbx.DBTX) commentsrepo.Repository { return f.comments }
func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	createArg *models.User

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createArg = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeCommentsRepo struct {
	createErr error
	createArg *models.Comment

	getOut *models.Comment
	getErr error

	listOut []*models.Comment
	listErr error

	updateErr    error
	updateCalled bool

	deleteErr    error
	deleteCalled bool
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	f.createArg = c
	if f.createErr != nil {
		return nil, f.createErr
	}
	return c, nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeCommentsRepo) ListByCpaID(ctx context.Context, cpaID string) ([]*models.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCommentsRepo) Update(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	f.updateCalled = true
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return c, nil
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalled = true
	return f.deleteErr
}

// newTestServer wires a Server over fake repositories and a sqlmock DB.
// Transaction expectations (Begin/Commit/Rollback) are set by the caller.
func newTestServer(t *testing.T, ur *fakeUsersRepo, cr *fakeCommentsRepo) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}

	m := &fakeManager{users: ur, comments: cr}
	us := services.NewUserService(db, m, cfg)
	cs := services.NewCommentService(db, m)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return NewServer(":0", logger, us, cs, testSecret, "*"), mock
}

func tokenFor(t *testing.T, email, id string) string {
	t.Helper()
	tok, err := auth.GenerateToken(email, id, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return tok
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}
