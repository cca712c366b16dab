package postgres

import (
	"errors"

	"classroom-service/internal/models"

	"gorm.io/gorm"
)

type DiscussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{db}
}

/** -------------------- posts -------------------- */

func (r *DiscussionRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *DiscussionRepository) UpdatePostContent(postID uint, content string) (*models.Post, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetPost(postID)
}

// DeletePost removes a post together with its comments and replies. Likers
// are detached first so the join rows do not outlive the post.
func (r *DiscussionRepository) DeletePost(postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{Model: gorm.Model{ID: postID}}).Association("Likers").Clear(); err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Post{}, postID).Error
	})
}

func (r *DiscussionRepository) GetPost(postID uint) (*models.Post, error) {
	var p models.Post
	err := r.db.
		Preload("Author").
		Preload("Likers", func(db *gorm.DB) *gorm.DB {
			return db.Select("id")
		}).
		First(&p, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("post not found")
		}
		return nil, err
	}
	return &p, nil
}

// GetSessionPosts returns the full discussion tree of one session, oldest
// posts first, with nested comments and replies preloaded.
func (r *DiscussionRepository) GetSessionPosts(sessionID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").
		Preload("Likers", func(db *gorm.DB) *gorm.DB {
			return db.Select("id")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at ASC")
		}).
		Preload("Comments.Replies.Author").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

/** -------------------- comments -------------------- */

func (r *DiscussionRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *DiscussionRepository) UpdateCommentContent(commentID uint, content string) (*models.Comment, error) {
	result := r.db.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetComment(commentID)
}

// DeleteComment removes the comment and every reply under it.
func (r *DiscussionRepository) DeleteComment(commentID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

func (r *DiscussionRepository) GetComment(commentID uint) (*models.Comment, error) {
	var c models.Comment
	err := r.db.Preload("Author").First(&c, commentID).Error
	return &c, err
}

/** -------------------- replies -------------------- */

func (r *DiscussionRepository) CreateReply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

func (r *DiscussionRepository) UpdateReplyContent(replyID uint, content string) (*models.Reply, error) {
	result := r.db.Model(&models.Reply{}).
		Where("id = ?", replyID).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetReply(replyID)
}

func (r *DiscussionRepository) GetReply(replyID uint) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.Preload("Author").First(&reply, replyID).Error
	return &reply, err
}

/** -------------------- likes -------------------- */

// ToggleLike flips one user's like on a post and returns the resulting
// state. The count and liker list are read back inside the transaction so
// every caller observes an authoritative snapshot, never a local increment.
func (r *DiscussionRepository) ToggleLike(postID uint, userID uint) (*models.LikeResponse, error) {
	var state models.LikeResponse
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Table("post_likes").
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&existing).Error; err != nil {
			return err
		}

		assoc := tx.Model(&post).Association("Likers")
		if existing > 0 {
			if err := assoc.Delete(&models.User{Model: gorm.Model{ID: userID}}); err != nil {
				return err
			}
			state.Liked = false
		} else {
			if err := assoc.Append(&models.User{Model: gorm.Model{ID: userID}}); err != nil {
				return err
			}
			state.Liked = true
		}

		var likerIDs []uint
		if err := tx.Table("post_likes").
			Where("post_id = ?", postID).
			Order("user_id ASC").
			Pluck("user_id", &likerIDs).Error; err != nil {
			return err
		}

		state.PostID = postID
		state.LikeCount = len(likerIDs)
		state.LikedBy = likerIDs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}
