package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

// CommentService handles comments on tasks. Listing and creating require
// workspace membership; editing and deleting are restricted to the author.
type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	guard       *AccessGuard
	emitter     *Emitter
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, userRepo repository.UserRepository, guard *AccessGuard, emitter *Emitter) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		guard:       guard,
		emitter:     emitter,
	}
}

type commentInput struct {
	Content string `validate:"required,max=10000"`
}

// ListComments returns the comments of a task, oldest first.
func (s *CommentService) ListComments(taskID, userID string) ([]models.Comment, error) {
	if _, _, err := s.guard.Task(taskID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment and notifies the task assignee when it is someone else.
func (s *CommentService) CreateComment(taskID, userID, content string) (*models.Comment, []string, error) {
	input := commentInput{Content: strings.TrimSpace(content)}
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	task, _, err := s.guard.Task(taskID, userID)
	if err != nil {
		return nil, nil, err
	}

	comment := &models.Comment{TaskID: task.ID, UserID: userID, Content: input.Content}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, nil, fmt.Errorf("failed to create comment: %w", err)
	}

	var warnings []string
	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		log.Printf("Failed to load comment author %s: %v", userID, err)
	} else {
		comment.User = *author
	}

	if task.AssigneeID != nil && *task.AssigneeID != userID {
		if author == nil {
			warnings = []string{WarningNotificationFailed}
		} else {
			warnings = s.emitter.EmitBestEffort(TaskCommentedEvent(*task.AssigneeID, task.Name, author.Name))
		}
	}

	return comment, warnings, nil
}

// UpdateComment edits the content of a comment. Author only.
func (s *CommentService) UpdateComment(commentID, userID, content string) (*models.Comment, error) {
	input := commentInput{Content: strings.TrimSpace(content)}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	comment, err := s.findAuthored(commentID, userID)
	if err != nil {
		return nil, err
	}

	comment.Content = input.Content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment deletes a comment. Author only.
func (s *CommentService) DeleteComment(commentID, userID string) error {
	if _, err := s.findAuthored(commentID, userID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) findAuthored(commentID, userID string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}
	return comment, nil
}
