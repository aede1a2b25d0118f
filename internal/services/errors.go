package services

import (
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
)

func notFound(message string) *apierrors.DomainError {
	return apierrors.NewDomainError(apierrors.KindNotFound, message)
}

func unauthorized(message string) *apierrors.DomainError {
	return apierrors.NewDomainError(apierrors.KindUnauthorized, message)
}

func invalidInput(message string) *apierrors.DomainError {
	return apierrors.NewDomainError(apierrors.KindInvalidInput, message)
}

func conflict(message string) *apierrors.DomainError {
	return apierrors.NewDomainError(apierrors.KindConflict, message)
}

var (
	ErrUserNotFound         = notFound("user not found")
	ErrWorkspaceNotFound    = notFound("workspace not found")
	ErrProjectNotFound      = notFound("project not found")
	ErrSectionNotFound      = notFound("section not found")
	ErrTaskNotFound         = notFound("task not found")
	ErrParentTaskNotFound   = notFound("parent task not found")
	ErrTagNotFound          = notFound("tag not found")
	ErrCommentNotFound      = notFound("comment not found")
	ErrAttachmentNotFound   = notFound("attachment not found")
	ErrNotificationNotFound = notFound("notification not found")
	ErrMemberNotFound       = notFound("workspace member not found")

	ErrNotWorkspaceMember    = unauthorized("you are not a member of this workspace")
	ErrNotWorkspaceOwner     = unauthorized("only the workspace owner can perform this action")
	ErrNotCommentAuthor      = unauthorized("only the comment author can perform this action")
	ErrNotAttachmentUploader = unauthorized("only the uploader can delete this attachment")
	ErrNotNotificationOwner  = unauthorized("notification belongs to another user")

	ErrAssigneeNotMember     = invalidInput("assignee must be a member of the workspace")
	ErrUnknownTag            = invalidInput("one or more tags do not exist")
	ErrSectionOutsideProject = invalidInput("section does not belong to the project")
	ErrParentOutsideProject  = invalidInput("parent task does not belong to the project")
	ErrNestedSubTask         = invalidInput("a sub-task cannot have sub-tasks")
	ErrInvalidCursor         = invalidInput("invalid cursor")
	ErrUnknownViewType       = invalidInput("unknown view type")

	ErrAlreadyMember = conflict("user is already a member of this workspace")
	ErrTagNameTaken  = conflict("a tag with this name already exists")
	ErrTagInUse      = conflict("tag is used by one or more tasks")
	ErrEmailTaken    = conflict("email is already registered")

	ErrCannotRemoveOwner = apierrors.NewDomainError(apierrors.KindInvalidOperation, "the workspace owner cannot be removed")

	ErrInvalidCredentials = apierrors.NewDomainError(apierrors.KindUnauthenticated, "invalid email or password")

	ErrAIServiceNotConfigured = apierrors.NewDomainError(apierrors.KindUnavailable, "AI service is not configured")
)
