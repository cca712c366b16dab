package reconcile

import (
	"testing"

	"classroom-service/internal/models"
	"classroom-service/internal/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(t *testing.T, tag websocket.EventType, payload interface{}) *websocket.Event {
	t.Helper()
	ev, err := websocket.NewEvent("ev", tag, "session-1", payload)
	require.NoError(t, err)
	return ev
}

func TestPostInsertIsIdempotent(t *testing.T) {
	r := New()
	post := models.PostResponse{ID: 1, SessionID: 1, AuthorID: 7, Content: "hello"}

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, post)))
	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, post)))

	assert.Equal(t, 1, r.Discussion().Len(), "duplicate created events collapse to one entity")
}

func TestPostUpdateTouchesOnlyMutableFields(t *testing.T) {
	r := New()
	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated,
		models.PostResponse{ID: 1, AuthorID: 7, Content: "before", LikeCount: 3})))

	require.NoError(t, r.Apply(event(t, websocket.EventPostUpdated,
		models.PostResponse{ID: 1, Content: "after"})))

	post, ok := r.Discussion().Post(1)
	require.True(t, ok)
	assert.Equal(t, "after", post.Content)
	assert.Equal(t, uint(7), post.AuthorID, "identity fields untouched by updates")
	assert.Equal(t, 3, post.LikeCount, "like state is only changed by like.toggled")
}

func TestUpdateForUnknownEntityIsDropped(t *testing.T) {
	r := New()

	require.NoError(t, r.Apply(event(t, websocket.EventPostUpdated,
		models.PostResponse{ID: 99, Content: "ghost"})))

	assert.Equal(t, 0, r.Discussion().Len())
}

func TestCommentDeleteCascadesToReplies(t *testing.T) {
	r := New()
	d := r.Discussion()

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1, Content: "p"})))
	require.NoError(t, r.Apply(event(t, websocket.EventCommentCreated, models.CommentResponse{ID: 10, PostID: 1, Content: "c"})))
	require.NoError(t, r.Apply(event(t, websocket.EventReplyCreated, models.ReplyResponse{ID: 100, CommentID: 10, Content: "r1"})))
	require.NoError(t, r.Apply(event(t, websocket.EventReplyCreated, models.ReplyResponse{ID: 101, CommentID: 10, Content: "r2"})))

	require.NoError(t, r.Apply(event(t, websocket.EventCommentDeleted,
		websocket.EntityDeletedPayload{ID: 10, ParentID: 1})))

	_, ok := d.Comment(10)
	assert.False(t, ok, "comment removed")
	_, ok = d.Reply(100)
	assert.False(t, ok, "first reply removed with its comment")
	_, ok = d.Reply(101)
	assert.False(t, ok, "second reply removed with its comment")

	posts := d.Posts()
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].Comments)
}

func TestPostDeleteCascadesWholeSubtree(t *testing.T) {
	r := New()
	d := r.Discussion()

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1})))
	require.NoError(t, r.Apply(event(t, websocket.EventCommentCreated, models.CommentResponse{ID: 10, PostID: 1})))
	require.NoError(t, r.Apply(event(t, websocket.EventReplyCreated, models.ReplyResponse{ID: 100, CommentID: 10})))

	require.NoError(t, r.Apply(event(t, websocket.EventPostDeleted, websocket.EntityDeletedPayload{ID: 1})))

	assert.Equal(t, 0, d.Len())
	_, ok := d.Comment(10)
	assert.False(t, ok)
	_, ok = d.Reply(100)
	assert.False(t, ok)
}

func TestOrphanCommentIsDroppedUntilNextFetch(t *testing.T) {
	r := New()

	require.NoError(t, r.Apply(event(t, websocket.EventCommentCreated,
		models.CommentResponse{ID: 10, PostID: 404, Content: "orphan"})))

	_, ok := r.Discussion().Comment(10)
	assert.False(t, ok)
}

func TestLikeCountReplacesNeverIncrements(t *testing.T) {
	r := New()
	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1, LikeCount: 0})))

	// Two concurrent togglers; events arrive out of send order, each
	// carrying the authoritative final state.
	require.NoError(t, r.Apply(event(t, websocket.EventLikeToggled,
		models.LikeResponse{PostID: 1, LikeCount: 2, LikedBy: []uint{7, 8}})))
	require.NoError(t, r.Apply(event(t, websocket.EventLikeToggled,
		models.LikeResponse{PostID: 1, LikeCount: 1, LikedBy: []uint{7}})))

	post, ok := r.Discussion().Post(1)
	require.True(t, ok)
	assert.Equal(t, 1, post.LikeCount, "state is whatever the last processed event carried")
	assert.Equal(t, []uint{7}, post.LikedBy)
}

func TestOptimisticInsertResolvedByRESTResponse(t *testing.T) {
	d := NewDiscussion()

	d.StagePost("tmp-abc", models.PostResponse{TempID: "tmp-abc", Content: "typing..."})
	d.ResolvePost("tmp-abc", models.PostResponse{ID: 5, Content: "typing...", TempID: "tmp-abc"})

	post, ok := d.Post(5)
	require.True(t, ok)
	assert.Equal(t, "typing...", post.Content)
	assert.Equal(t, 1, d.Len())
}

func TestRelayEchoAfterResolveIsDeduplicated(t *testing.T) {
	r := New()
	d := r.Discussion()

	d.StagePost("tmp-abc", models.PostResponse{TempID: "tmp-abc", Content: "hi"})
	d.ResolvePost("tmp-abc", models.PostResponse{ID: 5, Content: "hi", TempID: "tmp-abc"})

	// The relay echo of our own create arrives after the REST response
	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated,
		models.PostResponse{ID: 5, Content: "hi", TempID: "tmp-abc"})))

	assert.Equal(t, 1, d.Len())
}

func TestRelayEchoBeforeResolveStillConverges(t *testing.T) {
	r := New()
	d := r.Discussion()

	d.StagePost("tmp-abc", models.PostResponse{TempID: "tmp-abc", Content: "hi"})

	// Echo wins the race against the REST response
	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated,
		models.PostResponse{ID: 5, Content: "hi", TempID: "tmp-abc"})))
	d.ResolvePost("tmp-abc", models.PostResponse{ID: 5, Content: "hi", TempID: "tmp-abc"})

	assert.Equal(t, 1, d.Len())
}

func TestStagedPostRendersUnderTempIDUntilResolved(t *testing.T) {
	d := NewDiscussion()

	d.StagePost("tmp-abc", models.PostResponse{TempID: "tmp-abc", Content: "typing..."})

	posts := d.Posts()
	require.Len(t, posts, 1, "staged entry renders before the durable id is known")
	assert.Equal(t, "tmp-abc", posts[0].TempID)
	assert.Zero(t, posts[0].ID)
	assert.Equal(t, 1, d.Len())

	d.ResolvePost("tmp-abc", models.PostResponse{ID: 5, Content: "typing...", TempID: "tmp-abc"})

	posts = d.Posts()
	require.Len(t, posts, 1, "resolve swaps the staged entry, never duplicates it")
	assert.Equal(t, uint(5), posts[0].ID)
	assert.Equal(t, 1, d.Len())
}

func TestStagedCommentRendersUnderItsPost(t *testing.T) {
	r := New()
	d := r.Discussion()

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1, Content: "p"})))
	d.StageComment("tmp-c1", models.CommentResponse{TempID: "tmp-c1", PostID: 1, Content: "draft"})

	posts := d.Posts()
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "tmp-c1", posts[0].Comments[0].TempID)

	// The relay echo carries the durable id and retires the staged entry
	require.NoError(t, r.Apply(event(t, websocket.EventCommentCreated,
		models.CommentResponse{ID: 10, PostID: 1, Content: "draft", TempID: "tmp-c1"})))

	posts = d.Posts()
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, uint(10), posts[0].Comments[0].ID)
}

func TestStagedReplyRendersUnderItsComment(t *testing.T) {
	r := New()
	d := r.Discussion()

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1})))
	require.NoError(t, r.Apply(event(t, websocket.EventCommentCreated, models.CommentResponse{ID: 10, PostID: 1})))
	d.StageReply("tmp-r1", models.ReplyResponse{TempID: "tmp-r1", CommentID: 10, Content: "draft"})

	posts := d.Posts()
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	require.Len(t, posts[0].Comments[0].Replies, 1)
	assert.Equal(t, "tmp-r1", posts[0].Comments[0].Replies[0].TempID)

	d.ResolveReply("tmp-r1", models.ReplyResponse{ID: 100, CommentID: 10, Content: "draft", TempID: "tmp-r1"})

	posts = d.Posts()
	require.Len(t, posts[0].Comments[0].Replies, 1)
	assert.Equal(t, uint(100), posts[0].Comments[0].Replies[0].ID)
}

func TestLoadReplacesTree(t *testing.T) {
	r := New()
	d := r.Discussion()

	require.NoError(t, r.Apply(event(t, websocket.EventPostCreated, models.PostResponse{ID: 1, Content: "stale"})))

	d.Load([]models.PostResponse{
		{
			ID: 2, Content: "fresh",
			Comments: []models.CommentResponse{
				{ID: 20, PostID: 2, Content: "c", Replies: []models.ReplyResponse{{ID: 200, CommentID: 20}}},
			},
		},
	})

	_, ok := d.Post(1)
	assert.False(t, ok, "full fetch replaces stale local state")

	posts := d.Posts()
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	require.Len(t, posts[0].Comments[0].Replies, 1)
	assert.Equal(t, uint(200), posts[0].Comments[0].Replies[0].ID)
}

func TestUnknownTagIsIgnored(t *testing.T) {
	r := New()

	err := r.Apply(&websocket.Event{ID: "x", Type: websocket.EventRoomJoin, RoomID: "session-1"})
	assert.NoError(t, err, "non-relayable tags fall through the dispatch table")
}
