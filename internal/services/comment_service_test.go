package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_NotifiesAssignee(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)
	task := env.newTask(t, tm, "Review PR", &tm.member.ID)
	before := len(env.inbox(t, tm.member.ID))

	comment, warnings, err := env.comments.CreateComment(task.ID, tm.owner.ID, " looks good ")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "looks good", comment.Content)
	assert.Equal(t, "Owner", comment.User.Name)

	inbox := env.inbox(t, tm.member.ID)
	require.Len(t, inbox, before+1)
	assert.Equal(t, "タスクにコメントが追加されました", inbox[len(inbox)-1].Title)
	assert.Contains(t, inbox[len(inbox)-1].Content, "Ownerさん")

	// The assignee commenting on their own task is silent.
	_, _, err = env.comments.CreateComment(task.ID, tm.member.ID, "thanks")
	require.NoError(t, err)
	assert.Len(t, env.inbox(t, tm.member.ID), before+1)

	comments, err := env.comments.ListComments(task.ID, tm.member.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "looks good", comments[0].Content)

	_, _, err = env.comments.CreateComment(task.ID, tm.owner.ID, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content")

	_, _, err = env.comments.CreateComment(task.ID, tm.outsider.ID, "hi")
	assert.ErrorIs(t, err, ErrNotWorkspaceMember)
}

func TestCommentService_AuthorOnly(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)
	task := env.newTask(t, tm, "Review PR", nil)

	comment, _, err := env.comments.CreateComment(task.ID, tm.member.ID, "first")
	require.NoError(t, err)

	_, err = env.comments.UpdateComment(comment.ID, tm.owner.ID, "edited")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
	assert.ErrorIs(t, env.comments.DeleteComment(comment.ID, tm.owner.ID), ErrNotCommentAuthor)

	updated, err := env.comments.UpdateComment(comment.ID, tm.member.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, env.comments.DeleteComment(comment.ID, tm.member.ID))
	assert.ErrorIs(t, env.comments.DeleteComment(comment.ID, tm.member.ID), ErrCommentNotFound)
}

func TestAttachmentService_Lifecycle(t *testing.T) {
	env := newServiceEnv(t)
	tm := env.newTeam(t)
	task := env.newTask(t, tm, "Design", &tm.owner.ID)

	attachment, warnings, err := env.attachments.CreateAttachment(task.ID, tm.member.ID, CreateAttachmentInput{
		FileName: "mock.png",
		FileURL:  "https://files.example.com/mock.png",
		FileSize: 2048,
		FileType: "image/png",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Member", attachment.User.Name)

	inbox := env.inbox(t, tm.owner.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "タスクにファイルが追加されました", inbox[0].Title)
	assert.Contains(t, inbox[0].Content, "mock.png")

	_, _, err = env.attachments.CreateAttachment(task.ID, tm.member.ID, CreateAttachmentInput{FileName: "x", FileURL: "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_url")

	attachments, err := env.attachments.ListAttachments(task.ID, tm.owner.ID)
	require.NoError(t, err)
	assert.Len(t, attachments, 1)

	assert.ErrorIs(t, env.attachments.DeleteAttachment(attachment.ID, tm.owner.ID), ErrNotAttachmentUploader)
	require.NoError(t, env.attachments.DeleteAttachment(attachment.ID, tm.member.ID))
	assert.ErrorIs(t, env.attachments.DeleteAttachment(attachment.ID, tm.member.ID), ErrAttachmentNotFound)
}

func TestAttachmentService_NotificationFailureIsAWarning(t *testing.T) {
	env := newServiceEnvWith(t, failingNotificationRepo{}, nil)
	tm := env.newTeam(t)
	task := env.newTask(t, tm, "Design", &tm.owner.ID)

	_, warnings, err := env.attachments.CreateAttachment(task.ID, tm.member.ID, CreateAttachmentInput{
		FileName: "brief.pdf",
		FileURL:  "https://files.example.com/brief.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{WarningNotificationFailed}, warnings)
}
