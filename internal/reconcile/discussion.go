package reconcile

import (
	"fmt"

	"classroom-service/internal/models"
	"classroom-service/internal/websocket"
)

// Discussion is the local post/comment/reply tree for one session, keyed by
// entity id. It absorbs both full REST fetches (Load) and incremental relay
// events, and stays correct when the two race: the relay echo of an entity
// this client created optimistically is deduplicated by id.
type Discussion struct {
	postOrder []uint
	posts     map[uint]*models.PostResponse
	comments  map[uint]*models.CommentResponse
	replies   map[uint]*models.ReplyResponse

	postComments   map[uint][]uint
	commentReplies map[uint][]uint

	// Optimistic entries keyed by client-generated temp id. They render
	// alongside the durable tree until the durable id is known, then the
	// staged entry is dropped in favor of the real one.
	pendingPosts        map[string]models.PostResponse
	pendingPostOrder    []string
	pendingComments     map[string]models.CommentResponse
	pendingCommentOrder []string
	pendingReplies      map[string]models.ReplyResponse
	pendingReplyOrder   []string
}

func NewDiscussion() *Discussion {
	return &Discussion{
		postOrder:       make([]uint, 0),
		posts:           make(map[uint]*models.PostResponse),
		comments:        make(map[uint]*models.CommentResponse),
		replies:         make(map[uint]*models.ReplyResponse),
		postComments:    make(map[uint][]uint),
		commentReplies:  make(map[uint][]uint),
		pendingPosts:    make(map[string]models.PostResponse),
		pendingComments: make(map[string]models.CommentResponse),
		pendingReplies:  make(map[string]models.ReplyResponse),
	}
}

// Load replaces the whole tree from a full REST fetch. Pending optimistic
// entries survive: their durable counterparts are either in the fetch
// already or will arrive as relay echoes.
func (d *Discussion) Load(posts []models.PostResponse) {
	d.postOrder = d.postOrder[:0]
	d.posts = make(map[uint]*models.PostResponse)
	d.comments = make(map[uint]*models.CommentResponse)
	d.replies = make(map[uint]*models.ReplyResponse)
	d.postComments = make(map[uint][]uint)
	d.commentReplies = make(map[uint][]uint)

	for i := range posts {
		post := posts[i]
		comments := post.Comments
		post.Comments = nil
		d.insertPost(post)
		for j := range comments {
			comment := comments[j]
			replies := comment.Replies
			comment.Replies = nil
			d.insertComment(comment)
			for k := range replies {
				d.insertReply(replies[k])
			}
		}
	}
}

/** -------------------- optimistic staging -------------------- */

// StagePost records an optimistic local insert under a client temp id,
// before the durable id is known. The staged entry renders at the tail of
// Posts until it resolves. Re-staging the same temp id replaces the entry.
func (d *Discussion) StagePost(tempID string, post models.PostResponse) {
	if _, ok := d.pendingPosts[tempID]; !ok {
		d.pendingPostOrder = append(d.pendingPostOrder, tempID)
	}
	d.pendingPosts[tempID] = post
}

// ResolvePost swaps a staged entry for its durable form once the REST
// response supplies the real id. If the relay echo arrived first the entity
// is already in the tree and only the staged entry is dropped.
func (d *Discussion) ResolvePost(tempID string, post models.PostResponse) {
	d.dropPendingPost(tempID)
	if _, ok := d.posts[post.ID]; ok {
		return
	}
	post.Comments = nil
	d.insertPost(post)
}

func (d *Discussion) StageComment(tempID string, comment models.CommentResponse) {
	if _, ok := d.pendingComments[tempID]; !ok {
		d.pendingCommentOrder = append(d.pendingCommentOrder, tempID)
	}
	d.pendingComments[tempID] = comment
}

func (d *Discussion) ResolveComment(tempID string, comment models.CommentResponse) {
	d.dropPendingComment(tempID)
	if _, ok := d.comments[comment.ID]; ok {
		return
	}
	comment.Replies = nil
	d.insertComment(comment)
}

func (d *Discussion) StageReply(tempID string, reply models.ReplyResponse) {
	if _, ok := d.pendingReplies[tempID]; !ok {
		d.pendingReplyOrder = append(d.pendingReplyOrder, tempID)
	}
	d.pendingReplies[tempID] = reply
}

func (d *Discussion) ResolveReply(tempID string, reply models.ReplyResponse) {
	d.dropPendingReply(tempID)
	if _, ok := d.replies[reply.ID]; ok {
		return
	}
	d.insertReply(reply)
}

func (d *Discussion) dropPendingPost(tempID string) {
	if _, ok := d.pendingPosts[tempID]; !ok {
		return
	}
	delete(d.pendingPosts, tempID)
	d.pendingPostOrder = dropTempID(d.pendingPostOrder, tempID)
}

func (d *Discussion) dropPendingComment(tempID string) {
	if _, ok := d.pendingComments[tempID]; !ok {
		return
	}
	delete(d.pendingComments, tempID)
	d.pendingCommentOrder = dropTempID(d.pendingCommentOrder, tempID)
}

func (d *Discussion) dropPendingReply(tempID string) {
	if _, ok := d.pendingReplies[tempID]; !ok {
		return
	}
	delete(d.pendingReplies, tempID)
	d.pendingReplyOrder = dropTempID(d.pendingReplyOrder, tempID)
}

func dropTempID(order []string, tempID string) []string {
	for i, id := range order {
		if id == tempID {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

/** -------------------- event appliers -------------------- */

func (d *Discussion) applyPostCreated(event *websocket.Event) error {
	var post models.PostResponse
	if err := event.DecodePayload(&post); err != nil {
		return fmt.Errorf("post created: %w", err)
	}
	if post.TempID != "" {
		d.dropPendingPost(post.TempID)
	}
	// Idempotent insert: the sender's optimistic copy may already be here
	if _, ok := d.posts[post.ID]; ok {
		return nil
	}
	post.Comments = nil
	d.insertPost(post)
	return nil
}

func (d *Discussion) applyPostUpdated(event *websocket.Event) error {
	var update models.PostResponse
	if err := event.DecodePayload(&update); err != nil {
		return fmt.Errorf("post updated: %w", err)
	}
	post, ok := d.posts[update.ID]
	if !ok {
		// Unknown locally; the full entity arrives with the next fetch
		return nil
	}
	post.Content = update.Content
	post.UpdatedAt = update.UpdatedAt
	return nil
}

func (d *Discussion) applyPostDeleted(event *websocket.Event) error {
	var del websocket.EntityDeletedPayload
	if err := event.DecodePayload(&del); err != nil {
		return fmt.Errorf("post deleted: %w", err)
	}
	if _, ok := d.posts[del.ID]; !ok {
		return nil
	}
	for _, commentID := range d.postComments[del.ID] {
		d.removeCommentCascade(commentID)
	}
	delete(d.postComments, del.ID)
	delete(d.posts, del.ID)
	for i, id := range d.postOrder {
		if id == del.ID {
			d.postOrder = append(d.postOrder[:i], d.postOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Discussion) applyCommentCreated(event *websocket.Event) error {
	var comment models.CommentResponse
	if err := event.DecodePayload(&comment); err != nil {
		return fmt.Errorf("comment created: %w", err)
	}
	if comment.TempID != "" {
		d.dropPendingComment(comment.TempID)
	}
	if _, ok := d.comments[comment.ID]; ok {
		return nil
	}
	if _, ok := d.posts[comment.PostID]; !ok {
		// Parent post unknown locally; dropped until the next fetch
		return nil
	}
	comment.Replies = nil
	d.insertComment(comment)
	return nil
}

func (d *Discussion) applyCommentUpdated(event *websocket.Event) error {
	var update models.CommentResponse
	if err := event.DecodePayload(&update); err != nil {
		return fmt.Errorf("comment updated: %w", err)
	}
	comment, ok := d.comments[update.ID]
	if !ok {
		return nil
	}
	comment.Content = update.Content
	comment.UpdatedAt = update.UpdatedAt
	return nil
}

func (d *Discussion) applyCommentDeleted(event *websocket.Event) error {
	var del websocket.EntityDeletedPayload
	if err := event.DecodePayload(&del); err != nil {
		return fmt.Errorf("comment deleted: %w", err)
	}
	comment, ok := d.comments[del.ID]
	if !ok {
		return nil
	}
	d.removeCommentCascade(del.ID)
	siblings := d.postComments[comment.PostID]
	for i, id := range siblings {
		if id == del.ID {
			d.postComments[comment.PostID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Discussion) applyReplyCreated(event *websocket.Event) error {
	var reply models.ReplyResponse
	if err := event.DecodePayload(&reply); err != nil {
		return fmt.Errorf("reply created: %w", err)
	}
	if reply.TempID != "" {
		d.dropPendingReply(reply.TempID)
	}
	if _, ok := d.replies[reply.ID]; ok {
		return nil
	}
	if _, ok := d.comments[reply.CommentID]; !ok {
		return nil
	}
	d.insertReply(reply)
	return nil
}

func (d *Discussion) applyReplyUpdated(event *websocket.Event) error {
	var update models.ReplyResponse
	if err := event.DecodePayload(&update); err != nil {
		return fmt.Errorf("reply updated: %w", err)
	}
	reply, ok := d.replies[update.ID]
	if !ok {
		return nil
	}
	reply.Content = update.Content
	reply.UpdatedAt = update.UpdatedAt
	return nil
}

// applyLikeToggled replaces the like state wholesale from the authoritative
// payload. Incrementing locally would drift under concurrent togglers.
func (d *Discussion) applyLikeToggled(event *websocket.Event) error {
	var like models.LikeResponse
	if err := event.DecodePayload(&like); err != nil {
		return fmt.Errorf("like toggled: %w", err)
	}
	post, ok := d.posts[like.PostID]
	if !ok {
		return nil
	}
	post.LikeCount = like.LikeCount
	post.LikedBy = like.LikedBy
	return nil
}

/** -------------------- internals -------------------- */

func (d *Discussion) insertPost(post models.PostResponse) {
	d.posts[post.ID] = &post
	d.postOrder = append(d.postOrder, post.ID)
}

func (d *Discussion) insertComment(comment models.CommentResponse) {
	d.comments[comment.ID] = &comment
	d.postComments[comment.PostID] = append(d.postComments[comment.PostID], comment.ID)
}

func (d *Discussion) insertReply(reply models.ReplyResponse) {
	d.replies[reply.ID] = &reply
	d.commentReplies[reply.CommentID] = append(d.commentReplies[reply.CommentID], reply.ID)
}

// removeCommentCascade drops a comment and every reply under it. The caller
// fixes up the parent post's comment list.
func (d *Discussion) removeCommentCascade(commentID uint) {
	for _, replyID := range d.commentReplies[commentID] {
		delete(d.replies, replyID)
	}
	delete(d.commentReplies, commentID)
	delete(d.comments, commentID)
}

/** -------------------- read side -------------------- */

func (d *Discussion) Post(id uint) (models.PostResponse, bool) {
	post, ok := d.posts[id]
	if !ok {
		return models.PostResponse{}, false
	}
	return *post, true
}

func (d *Discussion) Comment(id uint) (models.CommentResponse, bool) {
	comment, ok := d.comments[id]
	if !ok {
		return models.CommentResponse{}, false
	}
	return *comment, true
}

func (d *Discussion) Reply(id uint) (models.ReplyResponse, bool) {
	reply, ok := d.replies[id]
	if !ok {
		return models.ReplyResponse{}, false
	}
	return *reply, true
}

// Posts assembles the tree in insertion order for rendering. Staged
// optimistic entries are included: pending comments and replies render
// under their durable parents, pending posts at the tail under their temp
// ids with a zero id.
func (d *Discussion) Posts() []models.PostResponse {
	result := make([]models.PostResponse, 0, len(d.postOrder)+len(d.pendingPostOrder))
	for _, postID := range d.postOrder {
		post := *d.posts[postID]
		for _, commentID := range d.postComments[postID] {
			comment := *d.comments[commentID]
			for _, replyID := range d.commentReplies[commentID] {
				comment.Replies = append(comment.Replies, *d.replies[replyID])
			}
			for _, tempID := range d.pendingReplyOrder {
				if pending := d.pendingReplies[tempID]; pending.CommentID == commentID {
					comment.Replies = append(comment.Replies, pending)
				}
			}
			post.Comments = append(post.Comments, comment)
		}
		for _, tempID := range d.pendingCommentOrder {
			if pending := d.pendingComments[tempID]; pending.PostID == postID {
				post.Comments = append(post.Comments, pending)
			}
		}
		result = append(result, post)
	}
	for _, tempID := range d.pendingPostOrder {
		result = append(result, d.pendingPosts[tempID])
	}
	return result
}

// Len counts renderable posts, staged entries included.
func (d *Discussion) Len() int {
	return len(d.posts) + len(d.pendingPosts)
}
