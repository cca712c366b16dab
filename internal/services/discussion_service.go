package services

import (
	"errors"

	"classroom-service/internal/models"
	"classroom-service/internal/repositories/postgres"

	"gorm.io/gorm"
)

type DiscussionService struct {
	repo        *postgres.DiscussionRepository
	sessionRepo *postgres.SessionRepository
	userRepo    *postgres.UserRepository
}

func NewDiscussionService(repo *postgres.DiscussionRepository, sessionRepo *postgres.SessionRepository, userRepo *postgres.UserRepository) *DiscussionService {
	return &DiscussionService{repo, sessionRepo, userRepo}
}

/** -------------------- posts -------------------- */

// CreatePost persists a new post and returns its response form. The
// client's temp id travels through untouched so optimistic renderings can
// be resolved against the durable id.
func (s *DiscussionService) CreatePost(sessionID, authorID uint, req *models.PostRequest) (*models.PostResponse, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionEnded {
		return nil, errors.New("session has ended")
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		SessionID: sessionID,
		AuthorID:  authorID,
		Content:   req.Content,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	post.Author = *author

	resp := toPostResponse(post)
	resp.TempID = req.TempID
	return &resp, nil
}

func (s *DiscussionService) UpdatePost(postID, userID uint, content string) (*models.PostResponse, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, errors.New("only the author can edit a post")
	}

	updated, err := s.repo.UpdatePostContent(postID, content)
	if err != nil {
		return nil, err
	}
	resp := toPostResponse(updated)
	return &resp, nil
}

func (s *DiscussionService) DeletePost(postID, userID uint) (*models.Post, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("post not found")
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	// Teachers moderate; students can only remove their own posts
	if post.AuthorID != userID && user.Role != models.RoleTeacher {
		return nil, errors.New("not allowed to delete this post")
	}

	if err := s.repo.DeletePost(postID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *DiscussionService) GetSessionPosts(sessionID uint) ([]models.PostResponse, error) {
	posts, err := s.repo.GetSessionPosts(sessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, toPostResponse(&posts[i]))
	}
	return responses, nil
}

/** -------------------- comments -------------------- */

func (s *DiscussionService) CreateComment(postID, authorID uint, req *models.CommentRequest) (*models.CommentResponse, error) {
	if _, err := s.repo.GetPost(postID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	comment.Author = *author

	resp := toCommentResponse(comment)
	resp.TempID = req.TempID
	return &resp, nil
}

func (s *DiscussionService) UpdateComment(commentID, userID uint, content string) (*models.CommentResponse, error) {
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, errors.New("only the author can edit a comment")
	}

	updated, err := s.repo.UpdateCommentContent(commentID, content)
	if err != nil {
		return nil, err
	}
	resp := toCommentResponse(updated)
	return &resp, nil
}

func (s *DiscussionService) DeleteComment(commentID, userID uint) (*models.Comment, error) {
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("comment not found")
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID && user.Role != models.RoleTeacher {
		return nil, errors.New("not allowed to delete this comment")
	}

	if err := s.repo.DeleteComment(commentID); err != nil {
		return nil, err
	}
	return comment, nil
}

/** -------------------- replies -------------------- */

func (s *DiscussionService) CreateReply(commentID, authorID uint, req *models.ReplyRequest) (*models.ReplyResponse, error) {
	if _, err := s.repo.GetComment(commentID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{
		CommentID: commentID,
		AuthorID:  authorID,
		Content:   req.Content,
	}
	if err := s.repo.CreateReply(reply); err != nil {
		return nil, err
	}
	reply.Author = *author

	resp := toReplyResponse(reply)
	resp.TempID = req.TempID
	return &resp, nil
}

func (s *DiscussionService) UpdateReply(replyID, userID uint, content string) (*models.ReplyResponse, error) {
	reply, err := s.repo.GetReply(replyID)
	if err != nil {
		return nil, err
	}
	if reply.AuthorID != userID {
		return nil, errors.New("only the author can edit a reply")
	}

	updated, err := s.repo.UpdateReplyContent(replyID, content)
	if err != nil {
		return nil, err
	}
	resp := toReplyResponse(updated)
	return &resp, nil
}

/** -------------------- likes -------------------- */

func (s *DiscussionService) ToggleLike(postID, userID uint) (*models.LikeResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	return s.repo.ToggleLike(postID, userID)
}

// PostSessionID resolves which session room a post belongs to, for
// broadcast targeting.
func (s *DiscussionService) PostSessionID(postID uint) (uint, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return 0, err
	}
	return post.SessionID, nil
}

func (s *DiscussionService) CommentSessionID(commentID uint) (uint, error) {
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		return 0, err
	}
	return s.PostSessionID(comment.PostID)
}

/** -------------------- mapping -------------------- */

func toPostResponse(post *models.Post) models.PostResponse {
	likedBy := make([]uint, 0, len(post.Likers))
	for _, liker := range post.Likers {
		likedBy = append(likedBy, liker.ID)
	}

	comments := make([]models.CommentResponse, 0, len(post.Comments))
	for i := range post.Comments {
		comments = append(comments, toCommentResponse(&post.Comments[i]))
	}

	return models.PostResponse{
		ID:         post.ID,
		SessionID:  post.SessionID,
		AuthorID:   post.AuthorID,
		AuthorName: post.Author.Username,
		Content:    post.Content,
		LikeCount:  len(likedBy),
		LikedBy:    likedBy,
		Comments:   comments,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

func toCommentResponse(comment *models.Comment) models.CommentResponse {
	replies := make([]models.ReplyResponse, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, toReplyResponse(&comment.Replies[i]))
	}

	return models.CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.Author.Username,
		Content:    comment.Content,
		Replies:    replies,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
}

func toReplyResponse(reply *models.Reply) models.ReplyResponse {
	return models.ReplyResponse{
		ID:         reply.ID,
		CommentID:  reply.CommentID,
		AuthorID:   reply.AuthorID,
		AuthorName: reply.Author.Username,
		Content:    reply.Content,
		CreatedAt:  reply.CreatedAt,
		UpdatedAt:  reply.UpdatedAt,
	}
}
