package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/commently/commently/internal/common"
	"github.com/commently/commently/internal/dbx"
	"github.com/commently/commently/internal/server/models"
	"github.com/commently/commently/internal/server/repositories/comments"
	"github.com/commently/commently/internal/server/repositories/repomanager"
)

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

// CommentInput carries the client-suppliable fields of a new comment.
// The owner is deliberately not part of it.
type CommentInput struct {
	Name    string
	Content string
	Title   string
	CpaID   string
}

// CommentPatch carries a partial update; nil fields are left unchanged.
type CommentPatch struct {
	Name    *string
	Content *string
	Title   *string
	CpaID   *string
}

func (s *CommentService) ListByCpaID(ctx context.Context, cpaID string) ([]*models.Comment, error) {
	repo := s.repomanager.Comments(s.db)

	result, err := repo.ListByCpaID(ctx, cpaID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// Create persists a new comment owned by userID. The owner always comes
// from the authenticated identity; any value a client may have sent is
// never consulted.
func (s *CommentService) Create(ctx context.Context, userID string, in *CommentInput) (*models.Comment, error) {
	if in.Name == "" || in.Content == "" || in.CpaID == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Comments(s.db)

	comment := &models.Comment{
		Name:    in.Name,
		Content: in.Content,
		Title:   in.Title,
		CpaID:   in.CpaID,
		UserID:  userID,
	}

	comment, err := repo.Create(ctx, comment)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return comment, nil
}

// Update applies patch to the comment with id commentID, provided userID is
// its owner. Load and update run in one transaction so the ownership check
// and the mutation see the same row.
func (s *CommentService) Update(ctx context.Context, userID, commentID string, patch *CommentPatch) (*models.Comment, error) {

	var updated *models.Comment

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Comments(tx)

		comment, err := s.authorizeOwner(ctx, repo, commentID, userID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			comment.Name = *patch.Name
		}
		if patch.Content != nil {
			comment.Content = *patch.Content
		}
		if patch.Title != nil {
			comment.Title = *patch.Title
		}
		if patch.CpaID != nil {
			comment.CpaID = *patch.CpaID
		}

		updated, err = repo.Update(ctx, comment)
		return err
	})

	if err != nil {
		return nil, s.normalizeError(err)
	}

	return updated, nil
}

// Delete removes the comment with id commentID, provided userID is its
// owner. The deleted comment is returned so callers can echo an
// identifying field in their confirmation.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) (*models.Comment, error) {

	var deleted *models.Comment

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Comments(tx)

		comment, err := s.authorizeOwner(ctx, repo, commentID, userID)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, commentID); err != nil {
			return err
		}

		deleted = comment
		return nil
	})

	if err != nil {
		return nil, s.normalizeError(err)
	}

	return deleted, nil
}

// authorizeOwner loads the comment and compares its recorded owner against
// the authenticated identity. An absent comment is reported as
// common.ErrorNotFound before any ownership comparison takes place.
func (s *CommentService) authorizeOwner(ctx context.Context, repo comments.Repository, commentID, userID string) (*models.Comment, error) {
	comment, err := repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, common.ErrorForbidden
	}

	return comment, nil
}

func (s *CommentService) normalizeError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		return common.ErrorInternal
	}
}
