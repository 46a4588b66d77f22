package services_test

import (
	"context"
	"testing"

	"hmc-messhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumPost_LifecycleWithinHostel(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	author := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	replier := seedUser(t, db, "s2@test.local", "student", &hostel.ID)
	svc := services.NewForumService(db)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorFor(author), &services.CreatePostInput{
		Title:   "Dinner quality this week",
		Content: "The dal has been watery since Monday.",
	})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, actorFor(replier), post.ID, &services.CreateCommentInput{
		Content: "Agreed, raised it with the mess staff.",
	})
	require.NoError(t, err)

	full, err := svc.GetPost(ctx, actorFor(author), post.ID)
	require.NoError(t, err)
	require.Len(t, full.Comments, 1)
	assert.Equal(t, replier.ID, full.Comments[0].UserID)

	posts, total, err := svc.ListPosts(ctx, actorFor(replier), hostel.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Dinner quality this week", posts[0].Title)
}

func TestForumPost_OtherHostelInvisible(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	author := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	outsider := seedUser(t, db, "s2@test.local", "student", &hostelB.ID)
	svc := services.NewForumService(db)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorFor(author), &services.CreatePostInput{
		Title: "Aravali only", Content: "Hostel board post",
	})
	require.NoError(t, err)

	_, err = svc.GetPost(ctx, actorFor(outsider), post.ID)
	assert.ErrorIs(t, err, services.ErrHostelMismatch)

	_, _, err = svc.ListPosts(ctx, actorFor(outsider), hostelA.ID, 0, 20)
	assert.ErrorIs(t, err, services.ErrHostelMismatch)

	_, err = svc.AddComment(ctx, actorFor(outsider), post.ID, &services.CreateCommentInput{
		Content: "drive-by",
	})
	assert.ErrorIs(t, err, services.ErrHostelMismatch)
}

func TestForumDelete_AuthorOrModerator(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	author := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	bystander := seedUser(t, db, "s2@test.local", "student", &hostelA.ID)
	otherMHMC := seedUser(t, db, "m2@test.local", "mhmc", &hostelB.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	svc := services.NewForumService(db)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorFor(author), &services.CreatePostInput{
		Title: "To be moderated", Content: "content",
	})
	require.NoError(t, err)
	comment, err := svc.AddComment(ctx, actorFor(bystander), post.ID, &services.CreateCommentInput{
		Content: "a reply",
	})
	require.NoError(t, err)

	// Another student cannot remove someone else's post
	assert.ErrorIs(t, svc.DeletePost(ctx, actorFor(bystander), post.ID), services.ErrNotPermitted)
	// A moderator of a different hostel cannot either
	assert.ErrorIs(t, svc.DeletePost(ctx, actorFor(otherMHMC), post.ID), services.ErrNotPermitted)
	// The comment author may remove their own comment
	require.NoError(t, svc.DeleteComment(ctx, actorFor(bystander), comment.ID))

	// The hostel's mhmc removes the post, comments included
	require.NoError(t, svc.DeletePost(ctx, actorFor(mhmc), post.ID))
	_, err = svc.GetPost(ctx, actorFor(author), post.ID)
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestForumPost_BlockedUserCannotWrite(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	author := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	blocked := seedUser(t, db, "s2@test.local", "student", &hostel.ID)
	require.NoError(t, db.Model(blocked.Profile).Update("is_blocked", true).Error)
	svc := services.NewForumService(db)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorFor(author), &services.CreatePostInput{
		Title: "Open thread", Content: "content",
	})
	require.NoError(t, err)

	// Blocking takes effect even while an access token is still live
	_, err = svc.CreatePost(ctx, actorFor(blocked), &services.CreatePostInput{
		Title: "Blocked", Content: "content",
	})
	assert.ErrorIs(t, err, services.ErrUserBlocked)

	_, err = svc.AddComment(ctx, actorFor(blocked), post.ID, &services.CreateCommentInput{
		Content: "still blocked",
	})
	assert.ErrorIs(t, err, services.ErrUserBlocked)
}

func TestForumCreatePost_NeedsHostel(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := services.NewForumService(db)

	_, err := svc.CreatePost(context.Background(), actorFor(admin), &services.CreatePostInput{
		Title: "No board", Content: "content",
	})
	assert.ErrorIs(t, err, services.ErrNoHostelAssigned)
}
