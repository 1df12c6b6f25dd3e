package domain

import (
	"time"

	"github.com/google/uuid"
)

type CommentReport struct {
	ID        int32      `json:"id"`
	CommentID uuid.UUID  `json:"commentId"`
	UserID    uuid.UUID  `json:"userId"`
	Content   string     `json:"content"`
	SolvedBy  *uuid.UUID `json:"solvedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ID 为 0 表示尚未持久化，由数据库分配
func NewCommentReport(commentID, userID uuid.UUID, content string) *CommentReport {
	return &CommentReport{
		CommentID: commentID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *CommentReport) Solved() bool {
	return r.SolvedBy != nil
}

type CommentReportFilter struct {
	Solved *bool
}
